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
	"strings"
	"testing"
	"testing/fstest"

	"github.com/salviati/go-tmx/v2/tmx"
	"gopkg.in/yaml.v3"
)

const tilesTSX = `<tileset name="tiles" tilewidth="16" tileheight="16" tilecount="1200" columns="40">
 <image source="tiles.png" width="640" height="480"/>
</tileset>`

func mapTMX(title string) string {
	return `<map orientation="orthogonal" width="2" height="2" tilewidth="16" tileheight="16">
 <properties>
  <property name="title" value="` + title + `"/>
  <property name="music" type="file" value="../music/a.ogg"/>
 </properties>
 <tileset firstgid="1" source="../shared/tiles.tsx"/>
 <layer name="ground" width="2" height="2"><data encoding="csv">1,0,3,4</data></layer>
 <group name="decor">
  <objectgroup name="spawns" visible="0"><object id="1" x="0" y="0"/><object id="2" x="1" y="1"/></objectgroup>
  <imagelayer name="sky"><image source="../sky.png" width="8" height="8"/></imagelayer>
 </group>
</map>`
}

func newTestLoader() (*tmx.Loader, *tmx.CountingReader) {
	fsys := fstest.MapFS{
		"levels/one.tmx":   {Data: []byte(mapTMX("One"))},
		"levels/two.tmx":   {Data: []byte(mapTMX("Two"))},
		"shared/tiles.tsx": {Data: []byte(tilesTSX)},
	}
	counter := &tmx.CountingReader{Reader: tmx.FSReader{FS: fsys}}
	return tmx.NewLoader(tmx.WithReader(counter)), counter
}

func TestSummarize(t *testing.T) {
	l, counter := newTestLoader()

	one, err := Summarize(l, counter, "levels/one.tmx")
	if err != nil {
		t.Fatal(err)
	}
	if one.Width != 2 || one.Orientation != "orthogonal" || one.FilesRead != 2 || one.BytesRead <= 0 {
		t.Errorf("summary = %+v", one)
	}
	if one.Properties["title"] != "One" || one.Properties["music"] != "../music/a.ogg" {
		t.Errorf("properties = %v", one.Properties)
	}
	if len(one.Tilesets) != 1 {
		t.Fatalf("tilesets = %+v", one.Tilesets)
	}
	want := TilesetSummary{FirstGID: 1, Name: "tiles", Source: "levels/../shared/tiles.tsx", Tiles: 1200, Columns: 40, Image: "levels/../shared/tiles.png"}
	if one.Tilesets[0] != want {
		t.Errorf("tileset = %+v, want %+v", one.Tilesets[0], want)
	}

	wantLayers := []LayerSummary{
		{Name: "ground", Kind: "tiles", Tiles: 3},
		{Name: "decor", Kind: "group"},
		{Name: "spawns", Kind: "objects", Depth: 1, Hidden: true, Objects: 2},
		{Name: "sky", Kind: "image", Depth: 1, Image: "levels/../sky.png"},
	}
	if len(one.Layers) != len(wantLayers) {
		t.Fatalf("layers = %+v", one.Layers)
	}
	for i := range wantLayers {
		if one.Layers[i] != wantLayers[i] {
			t.Errorf("layer %d = %+v, want %+v", i, one.Layers[i], wantLayers[i])
		}
	}

	two, err := Summarize(l, counter, "levels/two.tmx")
	if err != nil {
		t.Fatal(err)
	}
	if two.FilesRead != 1 {
		t.Errorf("second map read %d files, want only itself", two.FilesRead)
	}
}

func TestWriteYAML(t *testing.T) {
	l, counter := newTestLoader()
	var summaries []*Summary
	for _, path := range []string{"levels/one.tmx", "levels/two.tmx"} {
		s, err := Summarize(l, counter, path)
		if err != nil {
			t.Fatal(err)
		}
		summaries = append(summaries, s)
	}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, summaries); err != nil {
		t.Fatal(err)
	}

	dec := yaml.NewDecoder(&buf)
	var got []Summary
	for {
		var s Summary
		if err := dec.Decode(&s); err != nil {
			break
		}
		got = append(got, s)
	}
	if len(got) != 2 || got[0].File != "levels/one.tmx" || got[1].Properties["title"] != "Two" {
		t.Errorf("decoded %+v", got)
	}
	if len(got) > 0 && (len(got[0].Layers) != 4 || got[0].Tilesets[0].FirstGID != 1) {
		t.Errorf("decoded layers and tilesets = %+v, %+v", got[0].Layers, got[0].Tilesets)
	}
}

func TestWriteText(t *testing.T) {
	l, counter := newTestLoader()
	s, err := Summarize(l, counter, "levels/one.tmx")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, []*Summary{s}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"levels/one.tmx: orthogonal 2x2",
		"1,200 tiles",
		`tiles    "ground" 3 tiles`,
		`objects  "spawns" 2 objects (hidden)`,
		"property title = One",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestSummarizeMissingMap(t *testing.T) {
	l, counter := newTestLoader()
	if _, err := Summarize(l, counter, "levels/three.tmx"); err == nil {
		t.Error("missing map should fail")
	}
}
