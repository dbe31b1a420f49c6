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
	"encoding/base64"
	"errors"
	"slices"
	"testing"
)

func TestDecodeTileData(t *testing.T) {
	gids := []uint32{0, 1, 2, 0x80000003, 70000, 0}
	tests := []struct {
		encoding, compression string
	}{
		{EncodingCSV, ""},
		{EncodingBase64, ""},
		{EncodingBase64, CompressionZlib},
		{EncodingBase64, CompressionGzip},
		{EncodingBase64, CompressionZstd},
	}
	for _, tt := range tests {
		text := encodeGIDs(t, tt.encoding, tt.compression, gids)
		got, err := DecodeTileData(tt.encoding, tt.compression, []byte(text))
		if err != nil {
			t.Errorf("%s/%s: %v", tt.encoding, tt.compression, err)
			continue
		}
		if !slices.Equal(got, gids) {
			t.Errorf("%s/%s: got %v, want %v", tt.encoding, tt.compression, got, gids)
		}
	}
}

func TestDecodeCSVLegacyRows(t *testing.T) {
	got, err := DecodeTileData(EncodingCSV, "", []byte("\n1,2,\n3,4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []uint32{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := DecodeTileData(EncodingCSV, "", []byte("1,x")); !errors.Is(err, ErrMalformedAttributes) {
		t.Errorf("invalid csv error = %v, want ErrMalformedAttributes", err)
	}
}

func TestDecodeTileDataUnsupported(t *testing.T) {
	tests := []struct {
		encoding, compression string
	}{
		{EncodingCSV, CompressionZlib},
		{"xml", ""},
		{EncodingBase64, "lzma"},
		{"", CompressionGzip},
	}
	for _, tt := range tests {
		_, err := DecodeTileData(tt.encoding, tt.compression, nil)
		if !errors.Is(err, ErrUnsupportedEncoding) {
			t.Errorf("%q/%q: error = %v, want ErrUnsupportedEncoding", tt.encoding, tt.compression, err)
			continue
		}
		var ee *EncodingError
		if !errors.As(err, &ee) || ee.Encoding != tt.encoding || ee.Compression != tt.compression {
			t.Errorf("%q/%q: error = %#v, want both fields reported", tt.encoding, tt.compression, err)
		}
	}
}

func TestDecodeTileDataCodecErrors(t *testing.T) {
	if _, err := DecodeTileData(EncodingBase64, "", []byte("!!!not base64")); !errors.Is(err, ErrBase64Decoding) {
		t.Errorf("bad base64 error = %v, want ErrBase64Decoding", err)
	}

	garbage := []byte(base64.StdEncoding.EncodeToString([]byte("definitely not compressed")))
	for _, c := range []string{CompressionZlib, CompressionGzip, CompressionZstd} {
		if _, err := DecodeTileData(EncodingBase64, c, garbage); !errors.Is(err, ErrDecompression) {
			t.Errorf("%s: error = %v, want ErrDecompression", c, err)
		}
	}

	short := []byte(base64.StdEncoding.EncodeToString([]byte{1, 2, 3}))
	if _, err := DecodeTileData(EncodingBase64, "", short); !errors.Is(err, ErrInvalidDecodedDataLen) {
		t.Errorf("short data error = %v, want ErrInvalidDecodedDataLen", err)
	}
}
