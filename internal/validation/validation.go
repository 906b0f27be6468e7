package validation

import (
	"os"
	"strconv"
	"strings"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ParseLimit clamps the requested page size into [1, MaxPageLimit].
// Empty or malformed input falls back to the default.
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPageLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// ParseOffset rejects negatives and garbage by falling back to zero.
func ParseOffset(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

func MaxBatchIDs() int {
	maxStr := os.Getenv("MAX_BATCH_IDS")
	if maxStr == "" {
		return 100
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 100
	}
	return max
}

// ValidateBatchIDs checks a batch of identifiers against size and value
// constraints. Zero ids are rejected outright rather than silently dropped.
func ValidateBatchIDs(ids []uint) bool {
	if len(ids) == 0 || len(ids) > MaxBatchIDs() {
		return false
	}
	for _, id := range ids {
		if id == 0 {
			return false
		}
	}
	return true
}

func MaxCoverLetterLength() int {
	maxStr := os.Getenv("MAX_COVER_LETTER_LENGTH")
	if maxStr == "" {
		return 4000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 4000
	}
	return max
}

func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}

// ValidSortKey reports whether raw names a supported listing order.
// The empty string is valid and means the default order.
func ValidSortKey(raw string) bool {
	switch raw {
	case "", "newest", "budget_asc", "budget_desc":
		return true
	}
	return false
}
