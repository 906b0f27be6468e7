package cache

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// BrowsingTTL bounds how long a viewer counts as "browsing now" after their
// last read of an item.
const BrowsingTTL = 60 * time.Second

// ItemKind namespaces browsing keys per listing domain.
type ItemKind string

const (
	KindEvent ItemKind = "event"
	KindJob   ItemKind = "job"
)

// PresenceEntry is the payload stored per (item, viewer) presence key.
type PresenceEntry struct {
	ViewerKey string    `msgpack:"viewer_key"`
	SeenAt    time.Time `msgpack:"seen_at"`
}

// BrowsingCache tracks who is currently looking at an item. One key per
// (item, viewer) with a short TTL; the count is the number of live keys.
// Best-effort only — callers log failures and carry on without the count.
type BrowsingCache struct {
	redis *RedisCache
}

func NewBrowsingCache(redis *RedisCache) *BrowsingCache {
	return &BrowsingCache{redis: redis}
}

func presenceKey(kind ItemKind, itemID uint, viewerKey string) string {
	return fmt.Sprintf("browsing:%s:%d:%s", kind, itemID, viewerKey)
}

func presencePattern(kind ItemKind, itemID uint) string {
	return fmt.Sprintf("browsing:%s:%d:*", kind, itemID)
}

// Touch records that the viewer is looking at the item right now.
func (bc *BrowsingCache) Touch(kind ItemKind, itemID uint, viewerKey string) error {
	if bc == nil || bc.redis == nil {
		return nil
	}
	payload, err := msgpack.Marshal(PresenceEntry{
		ViewerKey: viewerKey,
		SeenAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return bc.redis.Set(presenceKey(kind, itemID, viewerKey), payload, BrowsingTTL)
}

// Count returns how many distinct viewers touched the item within BrowsingTTL.
func (bc *BrowsingCache) Count(kind ItemKind, itemID uint) (int64, error) {
	if bc == nil || bc.redis == nil {
		return 0, nil
	}
	return bc.redis.CountPattern(presencePattern(kind, itemID))
}

// Forget drops the viewer's presence early (e.g. explicit navigation away).
func (bc *BrowsingCache) Forget(kind ItemKind, itemID uint, viewerKey string) error {
	if bc == nil || bc.redis == nil {
		return nil
	}
	return bc.redis.Delete(presenceKey(kind, itemID, viewerKey))
}
