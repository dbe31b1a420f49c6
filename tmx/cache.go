/*
   Copyright (c) Utkan Güngördü <utkan@freeconsole.org>

   This program is free software; you can redistribute it and/or modify
   it under the terms of the GNU General Public License as
   published by the Free Software Foundation; either version 3 or
   (at your option) any later version.

   This program is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of

   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the

   GNU General Public License for more details


   You should have received a copy of the GNU General Public
   License along with this program; if not, write to the
   Free Software Foundation, Inc.,
   51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.
*/

package tmx

import "sync"

// ResourceCache stores parsed tilesets and templates by path so that each file is
// parsed at most once per cache lifetime; later requests share the same value.
//
// Implementations are not required to be safe for concurrent use. Embedders
// loading several maps in parallel against one cache must lock around it, for
// instance with SyncCache.
type ResourceCache interface {
	GetTileset(path string) (*Tileset, bool)
	GetOrInsertTileset(path string, produce func() *Tileset) *Tileset
	// TryGetOrInsertTileset is GetOrInsertTileset for a fallible produce. On error
	// nothing is stored and the error is returned as is.
	TryGetOrInsertTileset(path string, produce func() (*Tileset, error)) (*Tileset, error)

	GetTemplate(path string) (*Template, bool)
	GetOrInsertTemplate(path string, produce func() *Template) *Template
	TryGetOrInsertTemplate(path string, produce func() (*Template, error)) (*Template, error)
}

// DefaultCache is an in-memory ResourceCache. The zero value is ready to use.
type DefaultCache struct {
	tilesets  map[string]*Tileset
	templates map[string]*Template
}

func NewDefaultCache() *DefaultCache {
	return &DefaultCache{
		tilesets:  make(map[string]*Tileset),
		templates: make(map[string]*Template),
	}
}

func (c *DefaultCache) GetTileset(path string) (*Tileset, bool) {
	ts, ok := c.tilesets[path]
	return ts, ok
}

func (c *DefaultCache) GetOrInsertTileset(path string, produce func() *Tileset) *Tileset {
	ts, _ := getOrInsert(&c.tilesets, "tileset", path, func() (*Tileset, error) { return produce(), nil })
	return ts
}

func (c *DefaultCache) TryGetOrInsertTileset(path string, produce func() (*Tileset, error)) (*Tileset, error) {
	return getOrInsert(&c.tilesets, "tileset", path, produce)
}

func (c *DefaultCache) GetTemplate(path string) (*Template, bool) {
	t, ok := c.templates[path]
	return t, ok
}

func (c *DefaultCache) GetOrInsertTemplate(path string, produce func() *Template) *Template {
	t, _ := getOrInsert(&c.templates, "template", path, func() (*Template, error) { return produce(), nil })
	return t
}

func (c *DefaultCache) TryGetOrInsertTemplate(path string, produce func() (*Template, error)) (*Template, error) {
	return getOrInsert(&c.templates, "template", path, produce)
}

func getOrInsert[V any](m *map[string]V, kind, path string, produce func() (V, error)) (V, error) {
	if v, ok := (*m)[path]; ok {
		Logger().Debug("tmx: cache hit", "kind", kind, "path", path)
		return v, nil
	}
	Logger().Debug("tmx: cache miss", "kind", kind, "path", path)
	v, err := produce()
	if err != nil {
		var zero V
		return zero, err
	}
	if *m == nil {
		*m = make(map[string]V)
	}
	(*m)[path] = v
	return v, nil
}

// SyncCache guards another ResourceCache with a mutex. The lock is not held while
// produce runs, since producing a template loads its tileset through the same
// cache; two goroutines racing on one path may both parse it, but the first value
// stored wins and is returned to both.
type SyncCache struct {
	mu    sync.Mutex
	cache ResourceCache
}

// NewSyncCache wraps c, or a new DefaultCache when c is nil.
func NewSyncCache(c ResourceCache) *SyncCache {
	if c == nil {
		c = NewDefaultCache()
	}
	return &SyncCache{cache: c}
}

func (s *SyncCache) GetTileset(path string) (*Tileset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.GetTileset(path)
}

func (s *SyncCache) GetOrInsertTileset(path string, produce func() *Tileset) *Tileset {
	ts, _ := s.TryGetOrInsertTileset(path, func() (*Tileset, error) { return produce(), nil })
	return ts
}

func (s *SyncCache) TryGetOrInsertTileset(path string, produce func() (*Tileset, error)) (*Tileset, error) {
	if ts, ok := s.GetTileset(path); ok {
		return ts, nil
	}
	ts, err := produce()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.GetOrInsertTileset(path, func() *Tileset { return ts }), nil
}

func (s *SyncCache) GetTemplate(path string) (*Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.GetTemplate(path)
}

func (s *SyncCache) GetOrInsertTemplate(path string, produce func() *Template) *Template {
	t, _ := s.TryGetOrInsertTemplate(path, func() (*Template, error) { return produce(), nil })
	return t
}

func (s *SyncCache) TryGetOrInsertTemplate(path string, produce func() (*Template, error)) (*Template, error) {
	if t, ok := s.GetTemplate(path); ok {
		return t, nil
	}
	t, err := produce()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.GetOrInsertTemplate(path, func() *Template { return t }), nil
}
