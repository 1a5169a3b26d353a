// Package assets handles game asset loading and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNotFound is returned when a file is in none of the search directories.
var ErrNotFound = errors.New("asset not found")

// Manager loads files from disk. Relative paths are looked up in the search
// directories, last added first, and then as given.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a search directory.
func (m *Manager) AddDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Load returns the contents of path. Cached contents are reused while the
// file keeps its size and modification time, so edited files are picked up
// on the next load.
func (m *Manager) Load(path string) ([]byte, error) {
	full, info, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	if data, ok := m.cache.Get(full, info); ok {
		return data, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m.cache.Set(full, info, data)
	return data, nil
}

func (m *Manager) resolve(path string) (string, fs.FileInfo, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		m.mu.RLock()
		candidates = candidates[:0]
		for i := len(m.dirs) - 1; i >= 0; i-- {
			candidates = append(candidates, filepath.Join(m.dirs[i], path))
		}
		candidates = append(candidates, path)
		m.mu.RUnlock()
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && info.Mode().IsRegular() {
			return c, info, nil
		}
	}
	return "", nil, fmt.Errorf("%s: %w", path, ErrNotFound)
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops every cached file.
func (m *Manager) Close() {
	m.cache.Clear()
}

type entry struct {
	data    []byte
	size    int64
	modTime time.Time
}

// Cache is an in-memory cache of file contents keyed by path.
type Cache struct {
	data map[string]entry
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]entry),
	}
}

// Get returns the cached contents of key if info still matches the file
// they were read from.
func (c *Cache) Get(key string, info fs.FileInfo) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok && (e.size != info.Size() || !e.modTime.Equal(info.ModTime())) {
		delete(c.data, key)
		ok = false
	}
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e.data, ok
}

// Set stores the contents of key as read at info.
func (c *Cache) Set(key string, info fs.FileInfo, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{data: data, size: info.Size(), modTime: info.ModTime()}
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]entry)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
