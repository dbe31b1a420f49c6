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
)

// Tileset is a collection of tiles, backed either by one spritesheet Image or,
// when Image is nil, by one image per tile (an image collection).
type Tileset struct {
	// Source is the file the tileset was read from: the .tsx file for external
	// tilesets, the map or template file for embedded ones.
	Source string

	Name       string
	Class      string
	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int
	TileCount  uint32
	Columns    uint32
	OffsetX    int
	OffsetY    int

	ObjectAlignment string

	Image *Image
	// Tiles holds per-tile data by local id. With a spritesheet every id below
	// TileCount that fits in the image has an entry.
	Tiles      map[ID]*Tile
	WangSets   []WangSet
	Properties Properties
}

// Tile returns the data of the tile with local id, if the tileset has one.
func (ts *Tileset) Tile(id ID) (*Tile, bool) {
	t, ok := ts.Tiles[id]
	return t, ok
}

// isEmbeddedTileset reports whether a <tileset> in a map or template carries its
// own definition rather than a reference to a .tsx file.
func isEmbeddedTileset(a *attrReader) bool {
	return a.has("tilecount") && a.has("tilewidth") && a.has("tileheight")
}

func parseGID(s string) (GID, error) {
	v, err := parseUint32(s)
	return GID(v), err
}

// parseMapTileset reads a <tileset> element of a map or template. Embedded
// definitions are parsed in place; otherwise the element must reference an
// external file through source, which is loaded through the cache.
func (p *parser) parseMapTileset(d *xml.Decoder, se xml.StartElement) (MapTileset, error) {
	a := newAttrs(se)
	firstGID := reqAttr(a, "firstgid", parseGID)
	if isEmbeddedTileset(a) {
		if a.err != nil {
			return MapTileset{}, a.err
		}
		ts, err := p.parseTileset(d, a)
		if err != nil {
			return MapTileset{}, err
		}
		return MapTileset{FirstGID: firstGID, Tileset: ts}, nil
	}

	source := a.reqString("source")
	if a.err != nil {
		return MapTileset{}, a.err
	}
	if err := skip(d); err != nil {
		return MapTileset{}, err
	}
	path, err := resolvePath(p.path, source)
	if err != nil {
		return MapTileset{}, err
	}
	ts, err := p.loader.LoadTileset(path)
	if err != nil {
		return MapTileset{}, err
	}
	return MapTileset{FirstGID: firstGID, Tileset: ts}, nil
}

// parseTileset reads the body of a <tileset> whose attributes are in a.
func (p *parser) parseTileset(d *xml.Decoder, a *attrReader) (*Tileset, error) {
	ts := &Tileset{
		Source:          p.path,
		Name:            a.strOr("name", ""),
		Class:           a.strOr("class", ""),
		TileWidth:       reqAttr(a, "tilewidth", parseSize),
		TileHeight:      reqAttr(a, "tileheight", parseSize),
		TileCount:       reqAttr(a, "tilecount", parseUint32),
		Spacing:         attrOr(a, "spacing", 0, parseSize),
		Margin:          attrOr(a, "margin", 0, parseSize),
		ObjectAlignment: a.strOr("objectalignment", "unspecified"),
		Tiles:           make(map[ID]*Tile),
		Properties:      Properties{},
	}
	columns, hasColumns := optAttr(a, "columns", parseUint32)
	if a.err != nil {
		return nil, a.err
	}

	err := eachChild(d, func(se xml.StartElement) error {
		var err error
		switch se.Name.Local {
		case "image":
			ts.Image, err = parseImage(d, se, p.path)
		case "tileoffset":
			oa := newAttrs(se)
			ts.OffsetX = attrOr(oa, "x", 0, parseInt)
			ts.OffsetY = attrOr(oa, "y", 0, parseInt)
			if err = oa.err; err == nil {
				err = skip(d)
			}
		case "properties":
			ts.Properties, err = parseProperties(d)
		case "tile":
			var (
				id   ID
				tile *Tile
			)
			if id, tile, err = p.parseTile(d, se); err == nil {
				ts.Tiles[id] = tile
			}
		case "wangsets":
			err = eachChild(d, func(se xml.StartElement) error {
				if se.Name.Local != "wangset" {
					return skipUnknown(d, "wangsets", se)
				}
				ws, err := parseWangSet(d, se)
				if err != nil {
					return err
				}
				ts.WangSets = append(ts.WangSets, ws)
				return nil
			})
		default:
			err = skipUnknown(d, "tileset", se)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	switch {
	case hasColumns:
		ts.Columns = columns
	case ts.Image != nil:
		ts.Columns = computeColumns(ts.Image.Width, ts.Margin, ts.Spacing, ts.TileWidth)
	}

	if ts.Image != nil {
		for id := ID(0); id < ID(sheetCapacity(ts)); id++ {
			if _, ok := ts.Tiles[id]; !ok {
				ts.Tiles[id] = &Tile{Probability: 1}
			}
		}
	}
	return ts, nil
}

// computeColumns returns how many tiles fit along one edge of a spritesheet. It
// serves rows as well, given the image height and tile height.
func computeColumns(imageWidth, margin, spacing, tileWidth int) uint32 {
	if tileWidth+spacing <= 0 {
		return 0
	}
	n := (imageWidth - margin + spacing) / (tileWidth + spacing)
	if n < 0 {
		return 0
	}
	return uint32(n)
}

// sheetCapacity is the number of default tiles to create for a spritesheet
// tileset: TileCount, bounded by how many tiles the image can hold.
func sheetCapacity(ts *Tileset) uint32 {
	img := ts.Image
	cols := uint64(computeColumns(img.Width, ts.Margin, ts.Spacing, ts.TileWidth))
	rows := uint64(computeColumns(img.Height, ts.Margin, ts.Spacing, ts.TileHeight))
	return uint32(min(uint64(ts.TileCount), cols*rows))
}

// parseTilesetFile reads a standalone .tsx document.
func (p *parser) parseTilesetFile(d *xml.Decoder) (*Tileset, error) {
	root, err := findRoot(d, "tileset")
	if err != nil {
		return nil, err
	}
	a := newAttrs(root)
	if !isEmbeddedTileset(a) {
		return nil, fmt.Errorf("%w: tileset file must define tilecount, tilewidth and tileheight", ErrMalformedAttributes)
	}
	return p.parseTileset(d, a)
}
