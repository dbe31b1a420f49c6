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

// ChunkSize is the chunk edge length the editor uses by default.
const ChunkSize = 16

// ChunkPos is the origin of a chunk in tile coordinates.
type ChunkPos struct{ X, Y int }

// Chunk is a rectangular block of an infinite layer, stored row-major.
type Chunk struct {
	Width, Height int
	Tiles         []*LayerTile
}

// InfiniteTileLayer stores tiles sparsely in chunks keyed by their origin. Chunk
// origins are multiples of ChunkWidth and ChunkHeight.
type InfiniteTileLayer struct {
	ChunkWidth, ChunkHeight int
	Chunks                  map[ChunkPos]*Chunk
}

// ChunkOrigin splits tile coordinates into the origin of the chunk containing
// them and the offset inside that chunk. It uses floor division, so (-1, 0) with
// 32×32 chunks lies in the chunk at (-32, 0), at offset (31, 0).
func ChunkOrigin(x, y, chunkWidth, chunkHeight int) (origin ChunkPos, dx, dy int) {
	origin = ChunkPos{X: floorDiv(x, chunkWidth) * chunkWidth, Y: floorDiv(y, chunkHeight) * chunkHeight}
	return origin, x - origin.X, y - origin.Y
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (l *InfiniteTileLayer) Tile(x, y int) *LayerTile {
	if l.ChunkWidth <= 0 || l.ChunkHeight <= 0 {
		return nil
	}
	origin, dx, dy := ChunkOrigin(x, y, l.ChunkWidth, l.ChunkHeight)
	c, ok := l.Chunks[origin]
	if !ok || dx >= c.Width || dy >= c.Height {
		return nil
	}
	return c.Tiles[dx+dy*c.Width]
}

func (p *parser) newInfiniteTileLayer(chunks []chunkData) *InfiniteTileLayer {
	l := &InfiniteTileLayer{
		ChunkWidth:  ChunkSize,
		ChunkHeight: ChunkSize,
		Chunks:      make(map[ChunkPos]*Chunk, len(chunks)),
	}
	if len(chunks) > 0 {
		l.ChunkWidth, l.ChunkHeight = chunks[0].Width, chunks[0].Height
	}
	for _, cd := range chunks {
		c := &Chunk{Width: cd.Width, Height: cd.Height, Tiles: make([]*LayerTile, len(cd.GIDs))}
		for i, gid := range cd.GIDs {
			c.Tiles[i] = resolveGID(gid, p.tilesets, p.template)
		}
		l.Chunks[ChunkPos{X: cd.X, Y: cd.Y}] = c
	}
	return l
}
