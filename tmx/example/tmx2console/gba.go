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

package main

import (
	"encoding/binary"
	"strconv"

	"github.com/salviati/go-tmx/v2/tmx"
)

const (
	GBAHFlip = 1 << 10
	GBAVFlip = 1 << 11
)

// GBA caches layer properties by layer pointer; use a new GBA for each map.
type GBA struct {
	isAffineCache map[*tmx.Layer]bool
	nilTileCache  map[*tmx.Layer]uint16
}

func (g *GBA) MaxTiles(m *tmx.Map, l *tmx.Layer) int {
	// Save one for nil-tile.
	if g.isAffine(l) {
		return 255
	}
	return 511
}

func (g *GBA) isAffine(l *tmx.Layer) bool {
	if g.isAffineCache == nil {
		g.isAffineCache = make(map[*tmx.Layer]bool)
	}

	affine, ok := g.isAffineCache[l]
	if !ok {
		affineString, _ := GetProperty(l.Properties, "Affine")
		affine = affineString == "true"
		g.isAffineCache[l] = affine
	}

	return affine
}

// nilTile is the entry written for empty cells: one past the last tile unless
// the layer sets NilTile.
func (g *GBA) nilTile(l *tmx.Layer, ts *tmx.Tileset) any {
	if g.nilTileCache == nil {
		g.nilTileCache = make(map[*tmx.Layer]uint16)
	}

	nilTile, ok := g.nilTileCache[l]
	if !ok {
		nilTile = uint16(ts.TileCount)
		nilTileString, _ := GetProperty(l.Properties, "NilTile")
		if v, err := strconv.ParseUint(nilTileString, 10, 16); err == nil {
			nilTile = uint16(v)
		}
		g.nilTileCache[l] = nilTile
	}

	if g.isAffine(l) {
		return uint8(nilTile)
	}
	return nilTile
}

func (g *GBA) ScreenblockEntry(m *tmx.Map, l *tmx.Layer, ts *tmx.Tileset, tile *tmx.LayerTile) (any, error) {
	if tile == nil {
		return g.nilTile(l, ts), nil
	}

	tid := uint16(tile.ID)
	if g.isAffine(l) {
		return uint8(tid), nil
	}

	if tile.HorizontalFlip {
		tid |= GBAHFlip
	}
	if tile.VerticalFlip {
		tid |= GBAVFlip
	}
	// TODO(utkan): palette bank
	return tid, nil
}

func (g *GBA) ByteOrder() binary.ByteOrder {
	return binary.LittleEndian
}
