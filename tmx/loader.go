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

import (
	"io"
	"path/filepath"
)

// Loader parses maps, tilesets and templates. Files are fetched through its
// ResourceReader and external tilesets and templates are shared through its
// ResourceCache. A Loader is not safe for concurrent use unless its cache is.
type Loader struct {
	reader ResourceReader
	cache  ResourceCache
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithReader sets where files are read from. The default is FilesystemReader.
func WithReader(r ResourceReader) LoaderOption {
	return func(l *Loader) {
		l.reader = r
	}
}

// WithCache sets the cache shared by every load. The default is a new DefaultCache.
func WithCache(c ResourceCache) LoaderOption {
	return func(l *Loader) {
		l.cache = c
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.reader == nil {
		l.reader = FilesystemReader{}
	}
	if l.cache == nil {
		l.cache = NewDefaultCache()
	}
	return l
}

func (l *Loader) Reader() ResourceReader { return l.reader }
func (l *Loader) Cache() ResourceCache   { return l.cache }

// parser carries the state of one file being parsed.
type parser struct {
	loader *Loader
	// path of the file being parsed; relative references resolve against it.
	path string
	// tilesets GIDs resolve against.
	tilesets []MapTileset
	// template is set while parsing a template: tiles refer to its tileset.
	template bool
	infinite bool
}

func (l *Loader) open(path string) (io.ReadCloser, error) {
	rc, err := l.reader.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	Logger().Debug("tmx: opened resource", "path", path)
	return rc, nil
}

// LoadMap reads and resolves the map at path.
func (l *Loader) LoadMap(path string) (*Map, error) {
	rc, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return l.ReadMap(rc, path)
}

// ReadMap parses a map from r. path names the map file; references in it are
// resolved against its directory.
func (l *Loader) ReadMap(r io.Reader, path string) (*Map, error) {
	p := &parser{loader: l, path: path}
	m, err := p.parseMapFile(newDecoder(r))
	if err != nil {
		return nil, wrapParse(path, err)
	}
	return m, nil
}

// cacheKey is the lexically cleaned path, so that one file reached through
// different relative paths is parsed once. The path handed to the reader and
// stored in Source stays as written.
func cacheKey(path string) string { return filepath.Clean(path) }

// LoadTileset returns the external tileset at path, parsing it on first use.
func (l *Loader) LoadTileset(path string) (*Tileset, error) {
	return l.cache.TryGetOrInsertTileset(cacheKey(path), func() (*Tileset, error) {
		rc, err := l.open(path)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return l.ReadTileset(rc, path)
	})
}

// ReadTileset parses a .tsx document from r without consulting the cache.
func (l *Loader) ReadTileset(r io.Reader, path string) (*Tileset, error) {
	p := &parser{loader: l, path: path}
	ts, err := p.parseTilesetFile(newDecoder(r))
	if err != nil {
		return nil, wrapParse(path, err)
	}
	return ts, nil
}

// LoadTemplate returns the template at path, parsing it on first use.
func (l *Loader) LoadTemplate(path string) (*Template, error) {
	return l.cache.TryGetOrInsertTemplate(cacheKey(path), func() (*Template, error) {
		rc, err := l.open(path)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return l.ReadTemplate(rc, path)
	})
}

// ReadTemplate parses a .tx document from r without consulting the cache.
func (l *Loader) ReadTemplate(r io.Reader, path string) (*Template, error) {
	p := &parser{loader: l, path: path}
	t, err := p.parseTemplateFile(newDecoder(r))
	if err != nil {
		return nil, wrapParse(path, err)
	}
	return t, nil
}

// Load reads the map at path from the filesystem with a new Loader.
func Load(path string) (*Map, error) {
	return NewLoader().LoadMap(path)
}

// Read parses a map from r with a new Loader. path is used to resolve relative
// references and need not exist unless the map has any.
func Read(r io.Reader, path string) (*Map, error) {
	return NewLoader().ReadMap(r, path)
}
