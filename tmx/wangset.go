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
	"strconv"
	"strings"
)

// WangSet is terrain auto-tiling metadata. It is kept as parsed and not
// interpreted further.
type WangSet struct {
	Name       string
	Class      string
	Type       string // corner, edge or mixed
	Tile       int64  // -1 when unset
	Colors     []WangColor
	Tiles      map[ID]WangID
	Properties Properties
}

type WangColor struct {
	Name        string
	Class       string
	Color       Color
	Tile        int64
	Probability float32
	Properties  Properties
}

// WangID holds the color index of each edge and corner of a tile, clockwise
// starting at the top edge. 0 means no color.
type WangID [8]uint8

// ParseWangID parses the comma separated form "0,1,0,1,0,1,0,1".
func ParseWangID(s string) (WangID, error) {
	var id WangID
	parts := strings.Split(s, ",")
	if len(parts) != len(id) {
		return id, fmt.Errorf("%w: %q", ErrInvalidWangID, s)
	}
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return id, fmt.Errorf("%w: %q", ErrInvalidWangID, s)
		}
		id[i] = uint8(v)
	}
	return id, nil
}

func parseWangSet(d *xml.Decoder, se xml.StartElement) (WangSet, error) {
	a := newAttrs(se)
	ws := WangSet{
		Name:  a.reqString("name"),
		Class: a.strOr("class", ""),
		Type:  a.strOr("type", "mixed"),
		Tile:  attrOr(a, "tile", int64(-1), parseInt64),
		Tiles: make(map[ID]WangID),
	}
	if a.err != nil {
		return ws, a.err
	}

	err := eachChild(d, func(se xml.StartElement) error {
		switch se.Name.Local {
		case "wangcolor":
			c, err := parseWangColor(d, se)
			if err != nil {
				return err
			}
			ws.Colors = append(ws.Colors, c)
		case "wangtile":
			ta := newAttrs(se)
			tileID := reqAttr(ta, "tileid", parseUint32)
			raw := ta.reqString("wangid")
			if ta.err != nil {
				return ta.err
			}
			wid, err := ParseWangID(raw)
			if err != nil {
				return err
			}
			ws.Tiles[ID(tileID)] = wid
			return skip(d)
		case "properties":
			props, err := parseProperties(d)
			if err != nil {
				return err
			}
			ws.Properties = props
		default:
			return skipUnknown(d, "wangset", se)
		}
		return nil
	})
	return ws, err
}

func parseWangColor(d *xml.Decoder, se xml.StartElement) (WangColor, error) {
	a := newAttrs(se)
	c := WangColor{
		Name:        a.reqString("name"),
		Class:       a.strOr("class", ""),
		Color:       reqAttr(a, "color", ParseColor),
		Tile:        attrOr(a, "tile", int64(-1), parseInt64),
		Probability: attrOr(a, "probability", float32(1), parseFloat32),
	}
	if a.err != nil {
		return c, a.err
	}
	err := eachChild(d, func(se xml.StartElement) error {
		if se.Name.Local != "properties" {
			return skipUnknown(d, "wangcolor", se)
		}
		props, err := parseProperties(d)
		c.Properties = props
		return err
	})
	return c, err
}
