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
	"io"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zstd"
)

// encodeGIDs renders gids as the text of a <data> element.
func encodeGIDs(t *testing.T, encoding, compression string, gids []uint32) string {
	t.Helper()
	if encoding == EncodingCSV {
		parts := make([]string, len(gids))
		for i, g := range gids {
			parts[i] = strconv.FormatUint(uint64(g), 10)
		}
		return "\n" + strings.Join(parts, ",") + "\n"
	}

	raw := make([]byte, 4*len(gids))
	for i, g := range gids {
		binary.LittleEndian.PutUint32(raw[i*4:], g)
	}
	var buf bytes.Buffer
	switch compression {
	case "":
		buf.Write(raw)
	case CompressionZlib:
		w := zlib.NewWriter(&buf)
		w.Write(raw)
		w.Close()
	case CompressionGzip:
		w := gzip.NewWriter(&buf)
		w.Write(raw)
		w.Close()
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(enc.EncodeAll(raw, nil))
		enc.Close()
	default:
		t.Fatalf("unknown compression %q", compression)
	}
	return "\n   " + base64.StdEncoding.EncodeToString(buf.Bytes()) + "\n  "
}

// recordingReader serves files from an in-memory filesystem and records every
// path it was asked for.
type recordingReader struct {
	fs     fstest.MapFS
	opened []string
}

func (r *recordingReader) Open(path string) (io.ReadCloser, error) {
	r.opened = append(r.opened, path)
	return FSReader{FS: r.fs}.Open(path)
}

func (r *recordingReader) count(path string) int {
	n := 0
	for _, p := range r.opened {
		if p == path {
			n++
		}
	}
	return n
}

func newRecordingReader(files map[string]string) *recordingReader {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return &recordingReader{fs: fsys}
}

const sharedTilesTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" tiledversion="1.10.2" name="tiles" tilewidth="16" tileheight="16" spacing="1" margin="1" tilecount="12">
 <image source="tiles.png" width="69" height="52"/>
 <tile id="3" type="wall">
  <properties>
   <property name="solid" type="bool" value="true"/>
  </properties>
  <objectgroup draworder="index">
   <object id="1" x="0" y="0" width="16" height="8"/>
  </objectgroup>
  <animation>
   <frame tileid="3" duration="100"/>
   <frame tileid="4" duration="200"/>
  </animation>
 </tile>
</tileset>
`

const chestTX = `<?xml version="1.0" encoding="UTF-8"?>
<template>
 <tileset firstgid="1" source="../shared/tiles.tsx"/>
 <object name="chest" type="container" gid="4" width="16" height="16">
  <properties>
   <property name="a" value="x"/>
   <property name="b" value="y"/>
  </properties>
 </object>
</template>
`

// levelGIDs is the 4x3 ground layer of level1.tmx: firstgid 1 is tiles.tsx and
// firstgid 13 the embedded tileset.
var levelGIDs = []uint32{
	1, 2, 0, 14,
	EncodeGID(3, true, false, false), 0, 0, 4,
	16, 12, 13, EncodeGID(5, false, true, true),
}

func levelTMX(t *testing.T, encoding, compression string) string {
	t.Helper()
	compressionAttr := ""
	if compression != "" {
		compressionAttr = ` compression="` + compression + `"`
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="7" nextobjectid="14" backgroundcolor="#336699">
 <editorsettings>
  <export target="level1.json" format="json"/>
 </editorsettings>
 <properties>
  <property name="title" value="Level 1"/>
 </properties>
 <tileset firstgid="1" source="../shared/tiles.tsx"/>
 <tileset firstgid="13" name="embedded" tilewidth="16" tileheight="16" tilecount="4" columns="2">
  <image source="embedded.png" width="32" height="32"/>
 </tileset>
 <layer id="1" name="ground" width="4" height="3">
  <data encoding="` + encoding + `"` + compressionAttr + `>` + encodeGIDs(t, encoding, compression, levelGIDs) + `</data>
 </layer>
 <objectgroup id="2" name="things" color="#a0a0a4">
  <object id="7" template="../templates/chest.tx" x="32" y="48">
   <properties>
    <property name="a" value="z"/>
   </properties>
  </object>
  <object id="8" template="../templates/chest.tx" name="big" x="0" y="0" width="32" height="40"/>
  <object id="9" name="zone" type="trigger" x="1" y="2" width="3" height="4"><ellipse/></object>
  <object id="10" x="0" y="0"><polygon points="0,0 10,0 10,-5.5"/></object>
  <object id="11" x="5" y="5" visible="0"><point/></object>
  <object id="12" gid="2147483650" x="0" y="0" width="16" height="16" rotation="90"/>
  <object id="13" x="0" y="0" width="100" height="20"><text wrap="1" color="#ff0000">Hello</text></object>
 </objectgroup>
 <group id="3" name="g" opacity="0.5" offsetx="4">
  <imagelayer id="4" name="bg" repeatx="1">
   <image source="../bg.png" width="10" height="10"/>
  </imagelayer>
  <group id="5" name="inner" visible="0">
   <layer id="6" name="deep" width="4" height="3" parallaxx="0.5" tintcolor="#80ff0000">
    <data encoding="csv">0,0,0,0,0,0,0,0,0,0,0,14</data>
   </layer>
  </group>
 </group>
</map>
`
}

func levelFiles(t *testing.T, encoding, compression string) map[string]string {
	return map[string]string{
		"levels/level1.tmx":  levelTMX(t, encoding, compression),
		"shared/tiles.tsx":   sharedTilesTSX,
		"templates/chest.tx": chestTX,
	}
}
