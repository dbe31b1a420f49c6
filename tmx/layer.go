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

// Layer is a node of the layer tree. The fields shared by all layer kinds are
// stored here; the kind-specific payload is in Data.
type Layer struct {
	ID         uint32
	Name       string
	Class      string
	Visible    bool
	OffsetX    float32
	OffsetY    float32
	ParallaxX  float32
	ParallaxY  float32
	Opacity    float32
	TintColor  *Color
	Properties Properties

	Data LayerData
}

// LayerData is one of *FiniteTileLayer, *InfiniteTileLayer, *ObjectLayer,
// *ImageLayer or *GroupLayer.
type LayerData interface {
	isLayerData()
}

// TileLayer is implemented by both tile layer storages.
type TileLayer interface {
	LayerData
	// Tile returns the tile at (x, y), or nil for an empty or out of range cell.
	Tile(x, y int) *LayerTile
}

// FiniteTileLayer is a Width×Height grid addressed as Tiles[x+y*Width]. Tiles
// is nil for a layer without <data>, every cell being empty.
type FiniteTileLayer struct {
	Width, Height int
	Tiles         []*LayerTile
}

func (l *FiniteTileLayer) Tile(x, y int) *LayerTile {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height || len(l.Tiles) == 0 {
		return nil
	}
	return l.Tiles[x+y*l.Width]
}

type ObjectLayer struct {
	Objects   []Object
	Color     *Color
	DrawOrder string // topdown or index
}

type ImageLayer struct {
	Image   *Image
	RepeatX bool
	RepeatY bool
}

// GroupLayer owns its child layers in document order.
type GroupLayer struct {
	Layers []Layer
}

func (*FiniteTileLayer) isLayerData()   {}
func (*InfiniteTileLayer) isLayerData() {}
func (*ObjectLayer) isLayerData()       {}
func (*ImageLayer) isLayerData()        {}
func (*GroupLayer) isLayerData()        {}

// TileLayer returns the tile payload of l, if l is a tile layer.
func (l *Layer) TileLayer() (TileLayer, bool) {
	tl, ok := l.Data.(TileLayer)
	return tl, ok
}

func isLayerElement(name string) bool {
	switch name {
	case "layer", "objectgroup", "imagelayer", "group":
		return true
	}
	return false
}

// parseLayer builds any kind of layer from its element. Group children are
// parsed recursively, including the files they reference, before it returns.
func (p *parser) parseLayer(d *xml.Decoder, se xml.StartElement) (Layer, error) {
	a := newAttrs(se)
	l := Layer{
		ID:        attrOr(a, "id", 0, parseUint32),
		Name:      a.strOr("name", ""),
		Class:     a.strOr("class", ""),
		Visible:   attrOr(a, "visible", true, parseBool),
		OffsetX:   attrOr(a, "offsetx", 0, parseFloat32),
		OffsetY:   attrOr(a, "offsety", 0, parseFloat32),
		ParallaxX: attrOr(a, "parallaxx", 1, parseFloat32),
		ParallaxY: attrOr(a, "parallaxy", 1, parseFloat32),
		Opacity:   attrOr(a, "opacity", 1, parseFloat32),
		TintColor: a.optColor("tintcolor"),
	}
	if a.err != nil {
		return l, a.err
	}

	var err error
	switch se.Name.Local {
	case "layer":
		l.Data, err = p.parseTileLayer(d, a, &l.Properties)
	case "objectgroup":
		l.Data, err = p.parseObjectLayer(d, a, &l.Properties)
	case "imagelayer":
		l.Data, err = p.parseImageLayer(d, a, &l.Properties)
	case "group":
		l.Data, err = p.parseGroupLayer(d, &l.Properties)
	default:
		err = fmt.Errorf("%w: <%s> is not a layer", ErrMalformedAttributes, se.Name.Local)
	}
	if err != nil {
		return l, fmt.Errorf("layer %q: %w", l.Name, err)
	}
	return l, nil
}

// Finiteness comes from the map; a layer cannot choose its own.
func (p *parser) parseTileLayer(d *xml.Decoder, a *attrReader, props *Properties) (TileLayer, error) {
	width := reqAttr(a, "width", parseSize)
	height := reqAttr(a, "height", parseSize)
	if a.err != nil {
		return nil, a.err
	}
	cells, err := cellCount(width, height)
	if err != nil {
		return nil, err
	}

	var (
		gids    []uint32
		chunks  []chunkData
		hasData bool
	)
	err = eachChild(d, func(se xml.StartElement) error {
		var err error
		switch se.Name.Local {
		case "data":
			hasData = true
			gids, chunks, err = parseData(d, se)
		case "properties":
			*props, err = parseProperties(d)
		default:
			err = skipUnknown(d, "layer", se)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if p.infinite {
		if len(gids) > 0 {
			return nil, fmt.Errorf("%w: %d tiles outside any chunk of an infinite layer", ErrInvalidDecodedDataLen, len(gids))
		}
		return p.newInfiniteTileLayer(chunks), nil
	}

	l := &FiniteTileLayer{Width: width, Height: height}
	if !hasData {
		return l, nil
	}
	if len(gids) != cells {
		return nil, fmt.Errorf("%w: %d tiles for a %dx%d layer", ErrInvalidDecodedDataLen, len(gids), width, height)
	}
	l.Tiles = make([]*LayerTile, cells)
	for i, gid := range gids {
		l.Tiles[i] = resolveGID(gid, p.tilesets, p.template)
	}
	return l, nil
}

// parseObjectLayer reads an <objectgroup>. props may be nil when the group has
// nowhere to store its properties, as for tile collision shapes.
func (p *parser) parseObjectLayer(d *xml.Decoder, a *attrReader, props *Properties) (*ObjectLayer, error) {
	l := &ObjectLayer{
		Color:     a.optColor("color"),
		DrawOrder: a.strOr("draworder", "topdown"),
	}
	if a.err != nil {
		return nil, a.err
	}
	err := eachChild(d, func(se xml.StartElement) error {
		switch se.Name.Local {
		case "object":
			o, err := p.parseObject(d, se)
			if err != nil {
				return err
			}
			l.Objects = append(l.Objects, o)
			return nil
		case "properties":
			pp, err := parseProperties(d)
			if props != nil {
				*props = pp
			}
			return err
		}
		return skipUnknown(d, "objectgroup", se)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (p *parser) parseImageLayer(d *xml.Decoder, a *attrReader, props *Properties) (*ImageLayer, error) {
	l := &ImageLayer{
		RepeatX: attrOr(a, "repeatx", false, parseBool),
		RepeatY: attrOr(a, "repeaty", false, parseBool),
	}
	if a.err != nil {
		return nil, a.err
	}
	err := eachChild(d, func(se xml.StartElement) error {
		var err error
		switch se.Name.Local {
		case "image":
			l.Image, err = parseImage(d, se, p.path)
		case "properties":
			*props, err = parseProperties(d)
		default:
			err = skipUnknown(d, "imagelayer", se)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (p *parser) parseGroupLayer(d *xml.Decoder, props *Properties) (*GroupLayer, error) {
	g := &GroupLayer{}
	err := eachChild(d, func(se xml.StartElement) error {
		switch {
		case isLayerElement(se.Name.Local):
			child, err := p.parseLayer(d, se)
			if err != nil {
				return err
			}
			g.Layers = append(g.Layers, child)
			return nil
		case se.Name.Local == "properties":
			var err error
			*props, err = parseProperties(d)
			return err
		}
		return skipUnknown(d, "group", se)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
