// Package assets loads, caches and persists serialized vertex path assets.
package assets

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vertexpath/internal/logger"
	"github.com/Faultbox/vertexpath/pkg/formats"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

// Manager opens .vpa assets into stores. Each file is parsed once; later
// opens of the same path share the cached store.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddRoot adds a directory relative asset paths are resolved against.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) {
	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
}

// Open returns a store holding the asset at path.
func (m *Manager) Open(path string) (*vertexpath.Store, error) {
	resolved := m.Resolve(path)

	if store, ok := m.cache.Get(resolved); ok {
		return store, nil
	}

	vpa, err := formats.ParseVPAFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("opening asset %s: %w", path, err)
	}
	data, err := CommitDataFromVPA(vpa)
	if err != nil {
		return nil, fmt.Errorf("opening asset %s: %w", path, err)
	}

	store := vertexpath.NewStore()
	if err := store.Commit(data); err != nil {
		return nil, fmt.Errorf("opening asset %s: %w", path, err)
	}
	m.cache.Set(resolved, store)

	logger.Debug("asset loaded",
		zap.String("asset", resolved),
		zap.Int("points", len(data.Points)),
		zap.Float64("length", data.Length))
	return store, nil
}

// Resolve maps path to the file Open would read. Relative paths are looked
// up under the roots; when no root holds the file, path is used as given.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.roots[i], path)
		if fileExists(candidate) {
			return candidate
		}
	}
	return filepath.Clean(path)
}

// Close drops every cached store.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roots = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache of opened stores.
type Cache struct {
	data map[string]*vertexpath.Store
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*vertexpath.Store),
	}
}

// Get retrieves a store from cache.
func (c *Cache) Get(key string) (*vertexpath.Store, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return store, ok
}

// Set stores a store in cache.
func (c *Cache) Set(key string, store *vertexpath.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = store
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*vertexpath.Store)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
