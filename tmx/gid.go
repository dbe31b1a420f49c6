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

// Flag bits stored in the top three bits of a GID.
const (
	GIDHorizontalFlip GID = 0x80000000
	GIDVerticalFlip   GID = 0x40000000
	GIDDiagonalFlip   GID = 0x20000000
	GIDFlip               = GIDHorizontalFlip | GIDVerticalFlip | GIDDiagonalFlip
	GIDMask           GID = 0x1fffffff
)

type (
	// GID is a global tile identifier as it appears in layer data and object gid attributes.
	GID uint32
	// ID is a tile identifier local to a tileset.
	ID uint32
)

// Bare returns g without its flip bits.
func (g GID) Bare() GID { return g & GIDMask }

func (g GID) HorizontalFlip() bool { return g&GIDHorizontalFlip != 0 }
func (g GID) VerticalFlip() bool   { return g&GIDVerticalFlip != 0 }
func (g GID) DiagonalFlip() bool   { return g&GIDDiagonalFlip != 0 }

// DecodeGID splits a raw 32-bit value into the bare GID and its three flip flags.
// Every value is valid; a bare GID of 0 means "no tile".
func DecodeGID(raw uint32) (gid GID, flipH, flipV, flipD bool) {
	g := GID(raw)
	return g.Bare(), g.HorizontalFlip(), g.VerticalFlip(), g.DiagonalFlip()
}

// EncodeGID is the inverse of DecodeGID.
func EncodeGID(gid GID, flipH, flipV, flipD bool) uint32 {
	g := gid.Bare()
	if flipH {
		g |= GIDHorizontalFlip
	}
	if flipV {
		g |= GIDVerticalFlip
	}
	if flipD {
		g |= GIDDiagonalFlip
	}
	return uint32(g)
}

// MapTileset binds a tileset to the first GID it occupies in a map or template.
type MapTileset struct {
	FirstGID GID
	Tileset  *Tileset
}

// findTileset returns the index of the tileset owning gid: the one with the largest
// FirstGID not exceeding it. The list does not need to be sorted.
func findTileset(tilesets []MapTileset, gid GID) (int, bool) {
	best := -1
	for i := len(tilesets) - 1; i >= 0; i-- {
		first := tilesets[i].FirstGID
		if first > gid {
			continue
		}
		if best < 0 || first > tilesets[best].FirstGID {
			best = i
		}
	}
	return best, best >= 0
}

// LayerTile is a reference to a tile from a tile layer cell or a tile object.
type LayerTile struct {
	// TilesetIndex indexes the owning map's Tilesets. It is only meaningful when
	// TemplateTileset is nil.
	TilesetIndex int
	// TemplateTileset is set when the tile comes from an object template; the
	// template binds exactly one tileset.
	TemplateTileset *Tileset

	ID             ID
	HorizontalFlip bool
	VerticalFlip   bool
	DiagonalFlip   bool
}

// resolveGID turns a raw GID into a LayerTile against tilesets. It returns nil for
// empty cells and for GIDs below every declared first GID.
func resolveGID(raw uint32, tilesets []MapTileset, template bool) *LayerTile {
	gid, h, v, d := DecodeGID(raw)
	if gid == 0 {
		return nil
	}
	i, ok := findTileset(tilesets, gid)
	if !ok {
		return nil
	}
	t := &LayerTile{
		TilesetIndex:   i,
		ID:             ID(gid - tilesets[i].FirstGID),
		HorizontalFlip: h,
		VerticalFlip:   v,
		DiagonalFlip:   d,
	}
	if template {
		t.TemplateTileset = tilesets[i].Tileset
	}
	return t
}
