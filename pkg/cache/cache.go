// Package cache provides a small TTL cache used to avoid repeated brew
// process invocations.
//
// Enumerating package details shells out to brew once per formula (tap
// lookups via `brew info --json=v2`), which dominates the runtime of
// detailed listings. Responses change rarely, so they are cached on disk
// with a TTL. The [NullCache] disables caching for tests and --no-cache runs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DefaultTTL is the default lifetime of cached brew query results.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values under string keys with a TTL.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Key builds a namespaced cache key from its components.
// Format: "namespace:hash" so unrelated query types never collide.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%s", namespace, hex.EncodeToString(h.Sum(nil)))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
