package cache

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/richard-senior/valueodds/internal/logger"
)

// Entry is the persisted envelope for one cached record. Writes always
// replace the whole envelope; entries are never mutated in place.
type Entry struct {
	Ts    int64           `json:"ts"`
	Value json.RawMessage `json:"value"`
}

// Store provides addressable read/write access to serialized entries.
// Implementations must treat a missing address as an error on Read.
type Store interface {
	Read(addr string) ([]byte, error)
	Write(addr string, data []byte) error
}

// Cache is a time-bounded key/value store. Expiry is purely read-time:
// there is no delete or eviction, a stale record simply stops being
// returned. Any storage error degrades to a miss or a discarded write.
type Cache struct {
	store Store
	now   func() time.Time
}

// New creates a cache over the given store
func New(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// NewWithClock creates a cache with an injectable clock, used by tests to
// advance time past a TTL
func NewWithClock(store Store, now func() time.Time) *Cache {
	return &Cache{store: store, now: now}
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeKey maps a free-form cache key to a safe storage address:
// every run of characters outside [a-zA-Z0-9._-] collapses to a single
// underscore and the result is capped at 200 characters. This is
// injective enough for the keys this system produces (player slugs,
// tournament URLs and lowercased names never differ only within a
// punctuation run).
func SanitizeKey(key string) string {
	safe := unsafeKeyChars.ReplaceAllString(key, "_")
	if len(safe) > 200 {
		safe = safe[:200]
	}
	return safe
}

// Get returns the raw cached value for key, or absent when no record
// exists, the record is older than ttl, or the record cannot be read.
// Callers cannot distinguish missing from expired; both mean recompute.
func (c *Cache) Get(key string, ttl time.Duration) (json.RawMessage, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	data, err := c.store.Read(SanitizeKey(key))
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn("Discarding unreadable cache entry", key, err)
		return nil, false
	}
	age := c.now().Sub(time.UnixMilli(entry.Ts))
	if age > ttl || ttl <= 0 {
		return nil, false
	}
	return entry.Value, true
}

// Set stores value under key, unconditionally replacing any previous
// record. Errors are logged and the write is discarded.
func (c *Cache) Set(key string, value any) {
	if c == nil || c.store == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to marshal cache value", key, err)
		return
	}
	entry := Entry{Ts: c.now().UnixMilli(), Value: raw}
	data, err := json.Marshal(entry)
	if err != nil {
		logger.Warn("Failed to marshal cache entry", key, err)
		return
	}
	if err := c.store.Write(SanitizeKey(key), data); err != nil {
		logger.Warn("Failed to write cache entry", key, err)
	}
}

// GetAs returns the cached value for key unmarshaled into T
func GetAs[T any](c *Cache, key string, ttl time.Duration) (T, bool) {
	var out T
	raw, ok := c.Get(key, ttl)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("Cached value does not unmarshal, treating as miss", key, err)
		return out, false
	}
	return out, true
}
