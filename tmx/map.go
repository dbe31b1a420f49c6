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
	"encoding/xml"
	"fmt"
	"iter"
)

// Orientation is the projection of a map.
type Orientation string

const (
	Orthogonal Orientation = "orthogonal"
	Isometric  Orientation = "isometric"
	Staggered  Orientation = "staggered"
	Hexagonal  Orientation = "hexagonal"
)

func parseOrientation(s string) (Orientation, error) {
	switch o := Orientation(s); o {
	case Orthogonal, Isometric, Staggered, Hexagonal:
		return o, nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

// Map is a fully resolved map document. It is built in one pass and not modified
// afterwards. Tilesets are shared with the cache and with templates.
type Map struct {
	Source       string
	Version      string
	TiledVersion string
	Class        string
	Orientation  Orientation
	RenderOrder  string
	Width        int // in tiles
	Height       int
	TileWidth    int // in pixels
	TileHeight   int
	Infinite     bool

	HexSideLength   int
	StaggerAxis     string
	StaggerIndex    string
	ParallaxOriginX float32
	ParallaxOriginY float32
	NextLayerID     uint32
	NextObjectID    uint32

	BackgroundColor *Color
	// Tilesets are in declaration order, which need not be FirstGID order.
	Tilesets   []MapTileset
	Layers     []Layer
	Properties Properties
}

// FindTileset returns the index in m.Tilesets of the tileset owning gid. Flip
// bits are ignored. It reports false for 0 and for GIDs no tileset covers.
func (m *Map) FindTileset(gid GID) (int, bool) {
	if gid.Bare() == 0 {
		return -1, false
	}
	return findTileset(m.Tilesets, gid.Bare())
}

// TilesetOf returns the tileset t belongs to.
func (m *Map) TilesetOf(t *LayerTile) *Tileset {
	switch {
	case t == nil:
		return nil
	case t.TemplateTileset != nil:
		return t.TemplateTileset
	case t.TilesetIndex >= 0 && t.TilesetIndex < len(m.Tilesets):
		return m.Tilesets[t.TilesetIndex].Tileset
	}
	return nil
}

// TileOf returns the tileset data of t. The tileset may not define the tile, in
// which case it reports false.
func (m *Map) TileOf(t *LayerTile) (*Tile, bool) {
	ts := m.TilesetOf(t)
	if ts == nil {
		return nil, false
	}
	return ts.Tile(t.ID)
}

// AllLayers iterates over every layer depth-first in document order, visiting a
// group before its children.
func (m *Map) AllLayers() iter.Seq[*Layer] {
	return func(yield func(*Layer) bool) {
		walkLayers(m.Layers, yield)
	}
}

func walkLayers(layers []Layer, yield func(*Layer) bool) bool {
	for i := range layers {
		l := &layers[i]
		if !yield(l) {
			return false
		}
		if g, ok := l.Data.(*GroupLayer); ok {
			if !walkLayers(g.Layers, yield) {
				return false
			}
		}
	}
	return true
}

func (p *parser) parseMapFile(d *xml.Decoder) (*Map, error) {
	root, err := findRoot(d, "map")
	if err != nil {
		return nil, err
	}
	a := newAttrs(root)
	m := &Map{
		Source:          p.path,
		Version:         a.strOr("version", ""),
		TiledVersion:    a.strOr("tiledversion", ""),
		Class:           a.strOr("class", ""),
		Orientation:     reqAttr(a, "orientation", parseOrientation),
		RenderOrder:     a.strOr("renderorder", "right-down"),
		Width:           reqAttr(a, "width", parseSize),
		Height:          reqAttr(a, "height", parseSize),
		TileWidth:       reqAttr(a, "tilewidth", parseSize),
		TileHeight:      reqAttr(a, "tileheight", parseSize),
		Infinite:        attrOr(a, "infinite", false, parseBool),
		HexSideLength:   attrOr(a, "hexsidelength", 0, parseSize),
		StaggerAxis:     a.strOr("staggeraxis", ""),
		StaggerIndex:    a.strOr("staggerindex", ""),
		ParallaxOriginX: attrOr(a, "parallaxoriginx", 0, parseFloat32),
		ParallaxOriginY: attrOr(a, "parallaxoriginy", 0, parseFloat32),
		NextLayerID:     attrOr(a, "nextlayerid", 0, parseUint32),
		NextObjectID:    attrOr(a, "nextobjectid", 0, parseUint32),
		BackgroundColor: a.optColor("backgroundcolor"),
		Properties:      Properties{},
	}
	if a.err != nil {
		return nil, a.err
	}
	p.infinite = m.Infinite

	err = eachChild(d, func(se xml.StartElement) error {
		switch name := se.Name.Local; {
		case name == "tileset":
			mt, err := p.parseMapTileset(d, se)
			if err != nil {
				return err
			}
			p.tilesets = append(p.tilesets, mt)
		case isLayerElement(name):
			l, err := p.parseLayer(d, se)
			if err != nil {
				return err
			}
			m.Layers = append(m.Layers, l)
		case name == "properties":
			props, err := parseProperties(d)
			if err != nil {
				return err
			}
			m.Properties = props
		default:
			return skipUnknown(d, "map", se)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.Tilesets = p.tilesets
	return m, nil
}
