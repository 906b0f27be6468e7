package cache

import (
	"strings"
	"testing"
)

// The tracker is best-effort: with no Redis behind it every operation is a
// cheap no-op so the read path never has to branch on cache availability.
func TestBrowsingCacheNilSafe(t *testing.T) {
	caches := map[string]*BrowsingCache{
		"nil cache":   nil,
		"nil backend": NewBrowsingCache(nil),
	}

	for name, bc := range caches {
		t.Run(name, func(t *testing.T) {
			if err := bc.Touch(KindEvent, 1, "u:7"); err != nil {
				t.Errorf("Touch returned %v, want nil", err)
			}
			n, err := bc.Count(KindEvent, 1)
			if err != nil {
				t.Errorf("Count returned %v, want nil", err)
			}
			if n != 0 {
				t.Errorf("Count = %d, want 0", n)
			}
			if err := bc.Forget(KindEvent, 1, "u:7"); err != nil {
				t.Errorf("Forget returned %v, want nil", err)
			}
		})
	}
}

func TestPresenceKeys(t *testing.T) {
	key := presenceKey(KindJob, 42, "ip:203.0.113.1")
	if key != "browsing:job:42:ip:203.0.113.1" {
		t.Errorf("presenceKey = %q", key)
	}

	pattern := presencePattern(KindJob, 42)
	if !strings.HasSuffix(pattern, ":*") {
		t.Errorf("pattern %q must end with a wildcard", pattern)
	}
	if !strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
		t.Errorf("key %q must match pattern %q", key, pattern)
	}
}
