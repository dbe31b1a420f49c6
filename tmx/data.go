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
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Tile data encodings and compressions accepted in <data>.
const (
	EncodingCSV    = "csv"
	EncodingBase64 = "base64"

	CompressionZlib = "zlib"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// DecodeTileData decodes the text of a <data> or <chunk> element into raw GIDs.
// encoding is "csv" or "base64"; compression is "", "zlib", "gzip" or "zstd" and
// only applies to base64.
func DecodeTileData(encoding, compression string, text []byte) ([]uint32, error) {
	switch {
	case encoding == EncodingCSV && compression == "":
		return decodeCSV(text)
	case encoding == EncodingBase64:
		switch compression {
		case "", CompressionZlib, CompressionGzip, CompressionZstd:
			return decodeBase64(compression, text)
		}
	}
	return nil, &EncodingError{Encoding: encoding, Compression: compression}
}

func decodeCSV(text []byte) ([]uint32, error) {
	fields := strings.FieldsFunc(string(text), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
	gids := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, malformed("invalid csv tile %q", f)
		}
		gids[i] = uint32(v)
	}
	return gids, nil
}

func decodeBase64(compression string, text []byte) ([]uint32, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(raw, bytes.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBase64Decoding, err)
	}
	data, err := decompress(compression, raw[:n])
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of tiles", ErrInvalidDecodedDataLen, len(data))
	}
	gids := make([]uint32, len(data)/4)
	for i := range gids {
		gids[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return gids, nil
}

func decompress(compression string, raw []byte) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch compression {
	case "":
		return raw, nil
	case CompressionZlib:
		var r io.ReadCloser
		if r, err = zlib.NewReader(bytes.NewReader(raw)); err == nil {
			out, err = io.ReadAll(r)
			r.Close()
		}
	case CompressionGzip:
		var r *gzip.Reader
		if r, err = gzip.NewReader(bytes.NewReader(raw)); err == nil {
			out, err = io.ReadAll(r)
			r.Close()
		}
	case CompressionZstd:
		var dec *zstd.Decoder
		if dec, err = zstd.NewReader(nil); err == nil {
			out, err = dec.DecodeAll(raw, nil)
			dec.Close()
		}
	default:
		return nil, &EncodingError{Encoding: EncodingBase64, Compression: compression}
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrDecompression, compression, err)
	}
	return out, nil
}

type chunkData struct {
	X, Y          int
	Width, Height int
	GIDs          []uint32
}

// parseData reads a <data> element. Finite layers get their GIDs; infinite
// layers get chunks. Without an encoding attribute the legacy form with one
// <tile gid=".."/> per cell is expected.
func parseData(d *xml.Decoder, se xml.StartElement) ([]uint32, []chunkData, error) {
	a := newAttrs(se)
	encoding := a.strOr("encoding", "")
	compression := a.strOr("compression", "")
	return readTileContent(d, "data", encoding, compression, true)
}

func readTileContent(d *xml.Decoder, elem, encoding, compression string, chunksAllowed bool) ([]uint32, []chunkData, error) {
	var (
		text   bytes.Buffer
		tiles  []uint32
		chunks []chunkData
	)
loop:
	for {
		tok, err := nextToken(d)
		if err != nil {
			return nil, nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			switch {
			case t.Name.Local == "chunk" && chunksAllowed:
				c, err := parseChunk(d, t, encoding, compression)
				if err != nil {
					return nil, nil, err
				}
				chunks = append(chunks, c)
			case t.Name.Local == "tile":
				ta := newAttrs(t)
				gid := attrOr(ta, "gid", 0, parseUint32)
				if ta.err != nil {
					return nil, nil, ta.err
				}
				if err := skip(d); err != nil {
					return nil, nil, err
				}
				tiles = append(tiles, gid)
			default:
				if err := skipUnknown(d, elem, t); err != nil {
					return nil, nil, err
				}
			}
		case xml.EndElement:
			break loop
		}
	}

	if len(chunks) > 0 {
		return nil, chunks, nil
	}
	if encoding == "" && compression == "" {
		return tiles, nil, nil
	}
	gids, err := DecodeTileData(encoding, compression, text.Bytes())
	if err != nil {
		return nil, nil, err
	}
	return gids, nil, nil
}

func parseChunk(d *xml.Decoder, se xml.StartElement, encoding, compression string) (chunkData, error) {
	a := newAttrs(se)
	c := chunkData{
		X:      reqAttr(a, "x", parseInt),
		Y:      reqAttr(a, "y", parseInt),
		Width:  reqAttr(a, "width", parseSize),
		Height: reqAttr(a, "height", parseSize),
	}
	if a.err != nil {
		return c, a.err
	}
	if c.Width == 0 || c.Height == 0 {
		return c, malformed("chunk (%d,%d) has size %dx%d", c.X, c.Y, c.Width, c.Height)
	}
	cells, err := cellCount(c.Width, c.Height)
	if err != nil {
		return c, err
	}
	gids, _, err := readTileContent(d, "chunk", encoding, compression, false)
	if err != nil {
		return c, err
	}
	if len(gids) != cells {
		return c, fmt.Errorf("%w: chunk (%d,%d) has %d tiles, want %d",
			ErrInvalidDecodedDataLen, c.X, c.Y, len(gids), c.Width*c.Height)
	}
	c.GIDs = gids
	return c, nil
}
