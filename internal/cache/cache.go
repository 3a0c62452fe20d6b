package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache sits in front of the answer pipeline keyed by a normalized form of
// the query. The pipeline itself is deterministic, so serving a cached
// answer is indistinguishable from re-running it.
type Cache interface {
	Get(query string) ([]byte, bool)
	Set(query string, value []byte, ttl time.Duration) error
	Delete(query string) error
	Clear() error
}

// Key normalizes a query (lower-cased, whitespace-collapsed) and hashes it
// to a stable cache key, so "Python vs JS" and "python  vs js " hit the
// same entry.
func Key(query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	hash := sha256.Sum256([]byte(normalized))
	return "velocity:v1:" + hex.EncodeToString(hash[:])
}
