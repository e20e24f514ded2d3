// Package cache stores rendered component artifacts so unchanged components
// are not recompiled. Entries are keyed by a hash of the component source
// and the compile options, and evicted least recently used first.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const indexVersion = "1"

// Cache is an on-disk artifact cache. It is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	dir        string
	maxEntries int
	index      *Index
	stats      Stats
}

// Index tracks all cached entries.
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry is one cached compile result.
type Entry struct {
	Key        string    `json:"key"`
	Source     string    `json:"source"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Created    time.Time `json:"created"`
	LastAccess time.Time `json:"last_access"`
	Hits       int       `json:"hits"`
}

// Stats are cache counters for the lifetime of a Cache.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

// Config holds cache configuration.
type Config struct {
	Dir        string // defaults to DefaultDir()
	MaxEntries int    // 0 means unlimited
}

// DefaultDir returns the per-user cache directory for vue2doric.
func DefaultDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "vue2doric")
}

// New opens the cache in cfg.Dir, creating it if needed. A missing or
// unreadable index starts an empty cache.
func New(cfg Config) (*Cache, error) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir()
	}
	if err := os.MkdirAll(filepath.Join(cfg.Dir, "artifacts"), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	c := &Cache{dir: cfg.Dir, maxEntries: cfg.MaxEntries}
	if err := c.loadIndex(); err != nil {
		c.index = newIndex()
	}
	c.stats.Entries = len(c.index.Entries)
	return c, nil
}

func newIndex() *Index {
	return &Index{Version: indexVersion, Entries: make(map[string]*Entry), Updated: time.Now()}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Get returns the data stored under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index.Entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		// artifact file vanished
		c.removeLocked(key)
		c.stats.Misses++
		return nil, false
	}

	entry.LastAccess = time.Now()
	entry.Hits++
	c.stats.Hits++
	return data, true
}

// Put stores data under key, recording the source file it was built from.
func (c *Cache) Put(key, source string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := filepath.Join(c.dir, "artifacts", key)
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	now := time.Now()
	c.index.Entries[key] = &Entry{
		Key:        key,
		Source:     source,
		Path:       path,
		Size:       int64(len(data)),
		Created:    now,
		LastAccess: now,
	}
	c.evictLocked()
	return c.saveIndexLocked()
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index.Entries[key]; !ok {
		return nil
	}
	c.removeLocked(key)
	return c.saveIndexLocked()
}

// InvalidateSource removes every entry built from source and returns how
// many were removed.
func (c *Cache) InvalidateSource(source string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, entry := range c.index.Entries {
		if entry.Source == source {
			c.removeLocked(key)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, c.saveIndexLocked()
}

// Clear removes all entries.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	artifacts := filepath.Join(c.dir, "artifacts")
	if err := os.RemoveAll(artifacts); err != nil {
		return fmt.Errorf("clear artifacts: %w", err)
	}
	if err := os.MkdirAll(artifacts, 0o755); err != nil {
		return fmt.Errorf("clear artifacts: %w", err)
	}
	c.index = newIndex()
	c.stats = Stats{}
	return c.saveIndexLocked()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.index.Entries)
	return s
}

// Flush persists the index, including access times updated by Get.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveIndexLocked()
}

// Key hashes inputs into a cache key. Inputs are length-prefixed, so
// ("ab", "c") and ("a", "bc") differ.
func Key(inputs ...string) string {
	h := sha256.New()
	var n [8]byte
	for _, in := range inputs {
		binary.LittleEndian.PutUint64(n[:], uint64(len(in)))
		h.Write(n[:])
		h.Write([]byte(in))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) removeLocked(key string) {
	entry, ok := c.index.Entries[key]
	if !ok {
		return
	}
	// a leftover file is unreachable once the entry is gone
	_ = os.Remove(entry.Path)
	delete(c.index.Entries, key)
	c.index.Updated = time.Now()
}

// evictLocked drops least recently used entries beyond maxEntries.
func (c *Cache) evictLocked() {
	if c.maxEntries <= 0 {
		return
	}
	for len(c.index.Entries) > c.maxEntries {
		var oldest *Entry
		for _, entry := range c.index.Entries {
			if oldest == nil || entry.LastAccess.Before(oldest.LastAccess) {
				oldest = entry
			}
		}
		c.removeLocked(oldest.Key)
		c.stats.Evictions++
	}
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if err != nil {
		return err
	}
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return err
	}
	if index.Version != indexVersion || index.Entries == nil {
		return fmt.Errorf("cache index version %q not supported", index.Version)
	}
	c.index = &index
	return nil
}

func (c *Cache) saveIndexLocked() error {
	c.index.Updated = time.Now()
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(c.dir, "index.json"), data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
