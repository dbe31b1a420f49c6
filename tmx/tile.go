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

import "encoding/xml"

// Tile is the per-tile data stored in a tileset.
type Tile struct {
	// Image is set for tiles of image collection tilesets.
	Image      *Image
	Properties Properties
	// Collision holds the shapes drawn in the collision editor.
	Collision   *ObjectLayer
	Animation   []Frame
	Type        string
	Probability float32
}

// Frame is one step of a tile animation.
type Frame struct {
	TileID   ID
	Duration uint32 // milliseconds
}

func (p *parser) parseTile(d *xml.Decoder, se xml.StartElement) (ID, *Tile, error) {
	a := newAttrs(se)
	id := reqAttr(a, "id", parseUint32)
	t := &Tile{
		Type:        a.strOr("type", a.strOr("class", "")),
		Probability: attrOr(a, "probability", float32(1), parseFloat32),
	}
	if a.err != nil {
		return 0, nil, a.err
	}

	err := eachChild(d, func(se xml.StartElement) error {
		var err error
		switch se.Name.Local {
		case "image":
			t.Image, err = parseImage(d, se, p.path)
		case "properties":
			t.Properties, err = parseProperties(d)
		case "objectgroup":
			t.Collision, err = p.parseObjectLayer(d, newAttrs(se), nil)
		case "animation":
			t.Animation, err = parseAnimation(d)
		default:
			err = skipUnknown(d, "tile", se)
		}
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return ID(id), t, nil
}

func parseAnimation(d *xml.Decoder) ([]Frame, error) {
	var frames []Frame
	err := eachChild(d, func(se xml.StartElement) error {
		if se.Name.Local != "frame" {
			return skipUnknown(d, "animation", se)
		}
		a := newAttrs(se)
		f := Frame{
			TileID:   ID(reqAttr(a, "tileid", parseUint32)),
			Duration: reqAttr(a, "duration", parseUint32),
		}
		if a.err != nil {
			return a.err
		}
		frames = append(frames, f)
		return skip(d)
	})
	return frames, err
}
