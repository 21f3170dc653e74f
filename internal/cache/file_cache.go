// Package cache stores slow-changing API responses on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const entryExt = ".json"

// FileCache implements a file-based cache with TTL. It is safe for concurrent use.
type FileCache struct {
	mu  sync.Mutex
	dir string
	ttl time.Duration
	now func() time.Time
}

// cacheEntry is the on-disk envelope of a cached response
type cacheEntry struct {
	Key      string    `json:"key"`
	Data     []byte    `json:"data"`
	StoredAt time.Time `json:"stored_at"`
}

// NewFileCache creates a cache in dir, creating the directory if needed
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	return &FileCache{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/abfahrt, falling back to ~/.cache/abfahrt
func DefaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "abfahrt")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "abfahrt-cache")
	}

	return filepath.Join(home, ".cache", "abfahrt")
}

// Dir returns the directory backing the cache
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) path(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+entryExt)
}

// expired reports whether an entry stored at storedAt is past the TTL
func (c *FileCache) expired(storedAt time.Time) bool {
	return c.now().Sub(storedAt) > c.ttl
}

// Get retrieves a value from the cache. Expired or unreadable entries are removed.
func (c *FileCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filename := c.path(key)
	// #nosec G304 -- filename is derived from a hash of the key
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key || c.expired(entry.StoredAt) {
		_ = os.Remove(filename)
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value. The file is written to a temp name and renamed so
// readers never see a partial entry.
func (c *FileCache) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(cacheEntry{Key: key, Data: value, StoredAt: c.now()})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("creating cache entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Clear removes all cache entries and returns how many were removed
func (c *FileCache) Clear() (int, error) {
	return c.sweep(func(cacheEntry, error) bool { return true })
}

// Cleanup removes expired or corrupt entries and returns how many were removed
func (c *FileCache) Cleanup() (int, error) {
	return c.sweep(func(e cacheEntry, err error) bool {
		return err != nil || c.expired(e.StoredAt)
	})
}

func (c *FileCache) sweep(remove func(cacheEntry, error) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() {
			continue
		}
		filename := filepath.Join(c.dir, name)
		if strings.HasSuffix(name, ".tmp") {
			_ = os.Remove(filename)
			continue
		}
		if filepath.Ext(name) != entryExt {
			continue
		}

		var e cacheEntry
		// #nosec G304 -- filename comes from ReadDir within the cache directory
		data, err := os.ReadFile(filename)
		if err == nil {
			err = json.Unmarshal(data, &e)
		}
		if remove(e, err) {
			if os.Remove(filename) == nil {
				removed++
			}
		}
	}

	return removed, nil
}
