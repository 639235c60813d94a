package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores brew query results on disk, one JSON file per entry.
// Entries are grouped into a subdirectory per key namespace (tap lookups
// under tap/, and so on), so `zb-migrate cache clear` can report what it
// removed per query type and a namespace can be inspected with plain ls.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// cacheEntry wraps cached data with its expiration time.
type cacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value. Expired and unreadable entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value. A non-positive ttl means the entry never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, entryData, 0644)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and reports how many were deleted per
// namespace, e.g. {"tap": 42}.
func (c *FileCache) Clear(ctx context.Context) (map[string]int, error) {
	dirs, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, err
	}

	removed := make(map[string]int)
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		namespace := d.Name()
		entries, err := os.ReadDir(filepath.Join(c.dir, namespace))
		if err != nil {
			return removed, err
		}
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return removed, err
			}
			if err := os.Remove(filepath.Join(c.dir, namespace, e.Name())); err != nil {
				return removed, err
			}
			removed[namespace]++
		}
		_ = os.Remove(filepath.Join(c.dir, namespace))
	}
	return removed, nil
}

// Close does nothing for a file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to <dir>/<namespace>/<hash>.json. Keys built with
// [Key] carry their namespace before the colon; anything else lands
// under misc/.
func (c *FileCache) path(key string) string {
	namespace, rest, ok := strings.Cut(key, ":")
	if !ok || namespace == "" {
		namespace, rest = "misc", key
	}
	return filepath.Join(c.dir, namespace, Hash([]byte(rest))+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
