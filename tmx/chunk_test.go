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

import "testing"

func TestChunkOrigin(t *testing.T) {
	tests := []struct {
		x, y, w, h int
		origin     ChunkPos
		dx, dy     int
	}{
		{0, 0, 16, 16, ChunkPos{0, 0}, 0, 0},
		{15, 15, 16, 16, ChunkPos{0, 0}, 15, 15},
		{16, 0, 16, 16, ChunkPos{16, 0}, 0, 0},
		{-1, 0, 32, 32, ChunkPos{-32, 0}, 31, 0},
		{-32, -33, 32, 32, ChunkPos{-32, -64}, 0, 31},
		{40, -1, 16, 8, ChunkPos{32, -8}, 8, 7},
	}
	for _, tt := range tests {
		origin, dx, dy := ChunkOrigin(tt.x, tt.y, tt.w, tt.h)
		if origin != tt.origin || dx != tt.dx || dy != tt.dy {
			t.Errorf("ChunkOrigin(%d, %d, %d, %d) = %v, %d, %d, want %v, %d, %d",
				tt.x, tt.y, tt.w, tt.h, origin, dx, dy, tt.origin, tt.dx, tt.dy)
		}
	}
}

func TestInfiniteTileLayerEmpty(t *testing.T) {
	p := &parser{}
	l := p.newInfiniteTileLayer(nil)
	if l.ChunkWidth != ChunkSize || l.ChunkHeight != ChunkSize {
		t.Errorf("chunk size = %dx%d, want %d", l.ChunkWidth, l.ChunkHeight, ChunkSize)
	}
	if got := l.Tile(3, -7); got != nil {
		t.Errorf("Tile on an empty layer = %+v", got)
	}
}

func TestInfiniteTileLayerPartialChunk(t *testing.T) {
	p := &parser{tilesets: []MapTileset{{FirstGID: 1, Tileset: &Tileset{}}}}
	l := p.newInfiniteTileLayer([]chunkData{
		{X: 0, Y: 0, Width: 4, Height: 4, GIDs: make([]uint32, 16)},
		{X: 4, Y: 0, Width: 2, Height: 2, GIDs: []uint32{0, 1, 2, 3}},
	})
	if got := l.Tile(5, 1); got == nil || got.ID != 2 {
		t.Errorf("Tile(5, 1) = %+v, want id 2", got)
	}
	if got := l.Tile(6, 0); got != nil {
		t.Errorf("Tile(6, 0) outside the short chunk = %+v", got)
	}
	if got := l.Tile(1, 1); got != nil {
		t.Errorf("Tile(1, 1) = %+v, want empty", got)
	}
}
