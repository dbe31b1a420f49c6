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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/salviati/go-tmx/v2/tmx"
)

var (
	ErrWrongFileExtension  = errors.New("the file extension must be .tmx")
	ErrCompressionDisabled = errors.New("layer compression is not supported by this build")
	ErrTooManyTiles        = errors.New("too many tiles in the tileset")
)

var (
	ErrMultipleTilesets = errors.New("a layer must use tiles from only one tileset")
	ErrEmptyLayer       = errors.New("layer is empty; tileset cannot be determined")
)

const (
	TMXExt = ".tmx"
)

type Console interface {
	MaxTiles(m *tmx.Map, l *tmx.Layer) int // Maximum number of allowed tiles
	// ScreenblockEntry converts a cell to the machine-specific screenblock entry.
	// tile is nil for empty cells.
	ScreenblockEntry(m *tmx.Map, l *tmx.Layer, ts *tmx.Tileset, tile *tmx.LayerTile) (any, error)
	ByteOrder() binary.ByteOrder
}

// Do converts a tmx file to a console-specific format. Each finite tile layer is
// written to its own file next to the map.
func Do(c Console, loader *tmx.Loader, filename string) error {
	ext := filepath.Ext(filename)
	if ext != TMXExt {
		return ErrWrongFileExtension
	}
	filenameBare := strings.TrimSuffix(filename, ext)

	m, err := loader.LoadMap(filename)
	if err != nil {
		return err
	}

	for l := range m.AllLayers() {
		if _, ok := l.Data.(*tmx.FiniteTileLayer); !ok {
			slog.Debug("skipping layer", "map", filename, "layer", l.Name, "kind", fmt.Sprintf("%T", l.Data))
			continue
		}

		var buf bytes.Buffer
		if err := EncodeLayer(c, m, l, &buf); err != nil {
			return fmt.Errorf("%s: layer %q: %w", filename, l.Name, err)
		}
		name := filenameBare + "." + l.Name + ".layer"
		if err := os.WriteFile(name, buf.Bytes(), 0666); err != nil {
			return err
		}
		slog.Info("wrote layer", "file", name, "size", humanize.Bytes(uint64(buf.Len())))
	}
	return nil
}

// EncodeLayer writes the cells of the finite tile layer l to w, either as
// screenblock entries or, when the layer has Bitmap=true, as a 1-bit-per-tile
// occupancy stream.
func EncodeLayer(c Console, m *tmx.Map, l *tmx.Layer, w io.Writer) error {
	tl, ok := l.Data.(*tmx.FiniteTileLayer)
	if !ok {
		return fmt.Errorf("%T is not a finite tile layer", l.Data)
	}
	if bitmap, _ := GetProperty(l.Properties, "Bitmap"); bitmap == "true" {
		return saveLayerBitmap(tl, w)
	}
	return saveLayer(c, m, l, tl, w)
}

func saveLayer(c Console, m *tmx.Map, l *tmx.Layer, tl *tmx.FiniteTileLayer, w io.Writer) error {
	ts, err := layerTileset(m, tl)
	if err != nil {
		return err
	}
	if int(ts.TileCount) > c.MaxTiles(m, l) {
		return ErrTooManyTiles
	}

	if compression, _ := GetProperty(l.Properties, "Compression"); compression != "" {
		return fmt.Errorf("%w: %s", ErrCompressionDisabled, compression)
	}

	for y := 0; y < tl.Height; y++ {
		for x := 0; x < tl.Width; x++ {
			entry, err := c.ScreenblockEntry(m, l, ts, tl.Tile(x, y))
			if err != nil {
				return err
			}
			if err := binary.Write(w, c.ByteOrder(), entry); err != nil {
				return err
			}
		}
	}
	return nil
}

// saveLayerBitmap packs one bit per cell, least significant bit first. A
// trailing partial byte is zero padded.
func saveLayerBitmap(tl *tmx.FiniteTileLayer, w io.Writer) error {
	var (
		d uint8
		i uint
	)
	for y := 0; y < tl.Height; y++ {
		for x := 0; x < tl.Width; x++ {
			if tl.Tile(x, y) != nil {
				d |= 1 << i
			}
			i++
			if i == 8 {
				if _, err := w.Write([]byte{d}); err != nil {
					return err
				}
				d, i = 0, 0
			}
		}
	}
	if i > 0 {
		_, err := w.Write([]byte{d})
		return err
	}
	return nil
}
