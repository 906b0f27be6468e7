package validation

import (
	"os"
	"testing"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"Empty input", "", DefaultPageLimit},
		{"Valid limit", "50", 50},
		{"Limit of one", "1", 1},
		{"Zero falls back", "0", DefaultPageLimit},
		{"Negative falls back", "-5", DefaultPageLimit},
		{"Over maximum is clamped", "500", MaxPageLimit},
		{"Exactly maximum", "100", 100},
		{"Garbage falls back", "abc", DefaultPageLimit},
		{"Whitespace input", "  25  ", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseLimit(tt.raw)
			if result != tt.expected {
				t.Errorf("ParseLimit(%q) = %d, want %d", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"Empty input", "", 0},
		{"Valid offset", "40", 40},
		{"Zero offset", "0", 0},
		{"Negative falls back", "-1", 0},
		{"Garbage falls back", "ten", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseOffset(tt.raw)
			if result != tt.expected {
				t.Errorf("ParseOffset(%q) = %d, want %d", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestValidateBatchIDs(t *testing.T) {
	os.Unsetenv("MAX_BATCH_IDS")

	big := make([]uint, 101)
	for i := range big {
		big[i] = uint(i + 1)
	}

	tests := []struct {
		name     string
		ids      []uint
		expected bool
	}{
		{"Single id", []uint{1}, true},
		{"Several ids", []uint{1, 2, 3}, true},
		{"Empty batch", nil, false},
		{"Zero id rejected", []uint{1, 0, 3}, false},
		{"Over the cap", big, false},
		{"Exactly the cap", big[:100], true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBatchIDs(tt.ids)
			if result != tt.expected {
				t.Errorf("ValidateBatchIDs(len %d) = %v, want %v", len(tt.ids), result, tt.expected)
			}
		})
	}
}

func TestMaxBatchIDs(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		expected int
	}{
		{"Default", "", 100},
		{"Custom value", "25", 25},
		{"Invalid value", "abc", 100},
		{"Zero value", "0", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env == "" {
				os.Unsetenv("MAX_BATCH_IDS")
			} else {
				os.Setenv("MAX_BATCH_IDS", tt.env)
			}
			defer os.Unsetenv("MAX_BATCH_IDS")

			result := MaxBatchIDs()
			if result != tt.expected {
				t.Errorf("MaxBatchIDs() = %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestTrimAndLimit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"Trims whitespace", "  hello  ", 100, "hello"},
		{"Limits length", "abcdef", 3, "abc"},
		{"No limit when zero", "abcdef", 0, "abcdef"},
		{"Empty input", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimAndLimit(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("TrimAndLimit(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestValidSortKey(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{"Empty is default", "", true},
		{"Newest", "newest", true},
		{"Budget ascending", "budget_asc", true},
		{"Budget descending", "budget_desc", true},
		{"Unknown key", "oldest", false},
		{"Case sensitive", "Newest", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidSortKey(tt.raw)
			if result != tt.expected {
				t.Errorf("ValidSortKey(%q) = %v, want %v", tt.raw, result, tt.expected)
			}
		})
	}
}
