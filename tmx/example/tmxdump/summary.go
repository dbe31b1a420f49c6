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
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/salviati/go-tmx/v2/tmx"
	"gopkg.in/yaml.v3"
)

// Summary is the overview of one map printed by tmxdump.
type Summary struct {
	File        string            `yaml:"file"`
	Orientation string            `yaml:"orientation"`
	Width       int               `yaml:"width"`
	Height      int               `yaml:"height"`
	TileWidth   int               `yaml:"tile_width"`
	TileHeight  int               `yaml:"tile_height"`
	Infinite    bool              `yaml:"infinite,omitempty"`
	Tilesets    []TilesetSummary  `yaml:"tilesets"`
	Layers      []LayerSummary    `yaml:"layers"`
	Properties  map[string]string `yaml:"properties,omitempty"`
	FilesRead   int               `yaml:"files_read"`
	BytesRead   int64             `yaml:"bytes_read"`
}

type TilesetSummary struct {
	FirstGID uint32 `yaml:"first_gid"`
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Tiles    uint32 `yaml:"tiles"`
	Columns  uint32 `yaml:"columns"`
	Image    string `yaml:"image,omitempty"`
}

type LayerSummary struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Depth   int    `yaml:"depth,omitempty"`
	Hidden  bool   `yaml:"hidden,omitempty"`
	Tiles   int    `yaml:"tiles,omitempty"`
	Chunks  int    `yaml:"chunks,omitempty"`
	Objects int    `yaml:"objects,omitempty"`
	Image   string `yaml:"image,omitempty"`
}

// Summarize loads the map at path through l and describes it. reader must be
// the reader l was built with; its counters are reported as read statistics.
func Summarize(l *tmx.Loader, reader *tmx.CountingReader, path string) (*Summary, error) {
	files, bytes := reader.Files, reader.Bytes
	m, err := l.LoadMap(path)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		File:        path,
		Orientation: string(m.Orientation),
		Width:       m.Width,
		Height:      m.Height,
		TileWidth:   m.TileWidth,
		TileHeight:  m.TileHeight,
		Infinite:    m.Infinite,
		Properties:  propertyStrings(m.Properties),
		FilesRead:   reader.Files - files,
		BytesRead:   reader.Bytes - bytes,
	}
	for _, mt := range m.Tilesets {
		ts := TilesetSummary{
			FirstGID: uint32(mt.FirstGID),
			Name:     mt.Tileset.Name,
			Source:   mt.Tileset.Source,
			Tiles:    mt.Tileset.TileCount,
			Columns:  mt.Tileset.Columns,
		}
		if mt.Tileset.Image != nil {
			ts.Image = mt.Tileset.Image.Source
		}
		s.Tilesets = append(s.Tilesets, ts)
	}
	s.Layers = summarizeLayers(nil, m.Layers, 0)
	return s, nil
}

func summarizeLayers(out []LayerSummary, layers []tmx.Layer, depth int) []LayerSummary {
	for i := range layers {
		l := &layers[i]
		ls := LayerSummary{Name: l.Name, Depth: depth, Hidden: !l.Visible}
		switch d := l.Data.(type) {
		case *tmx.FiniteTileLayer:
			ls.Kind = "tiles"
			for _, t := range d.Tiles {
				if t != nil {
					ls.Tiles++
				}
			}
		case *tmx.InfiniteTileLayer:
			ls.Kind = "infinite"
			ls.Chunks = len(d.Chunks)
			for _, c := range d.Chunks {
				for _, t := range c.Tiles {
					if t != nil {
						ls.Tiles++
					}
				}
			}
		case *tmx.ObjectLayer:
			ls.Kind = "objects"
			ls.Objects = len(d.Objects)
		case *tmx.ImageLayer:
			ls.Kind = "image"
			if d.Image != nil {
				ls.Image = d.Image.Source
			}
		case *tmx.GroupLayer:
			ls.Kind = "group"
			out = append(out, ls)
			out = summarizeLayers(out, d.Layers, depth+1)
			continue
		}
		out = append(out, ls)
	}
	return out
}

func propertyStrings(p tmx.Properties) map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for name, v := range p {
		out[name] = propertyString(v)
	}
	return out
}

func propertyString(v tmx.PropertyValue) string {
	switch v := v.(type) {
	case tmx.StringValue:
		return string(v)
	case tmx.FileValue:
		return string(v)
	case tmx.BoolValue:
		return strconv.FormatBool(bool(v))
	case tmx.IntValue:
		return strconv.FormatInt(int64(v), 10)
	case tmx.FloatValue:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case tmx.ColorValue:
		return tmx.Color(v).String()
	case tmx.ObjectValue:
		return "object " + strconv.FormatUint(uint64(v), 10)
	case tmx.ClassValue:
		return fmt.Sprintf("%s with %d members", v.PropertyType, len(v.Properties))
	}
	return fmt.Sprint(v)
}

// WriteYAML writes summaries as a YAML stream, one document per map.
func WriteYAML(w io.Writer, summaries []*Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, s := range summaries {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return enc.Close()
}

// WriteText writes summaries for a terminal.
func WriteText(w io.Writer, summaries []*Summary) error {
	for _, s := range summaries {
		fmt.Fprintf(w, "%s: %s %dx%d, %dx%d px tiles", s.File, s.Orientation, s.Width, s.Height, s.TileWidth, s.TileHeight)
		if s.Infinite {
			fmt.Fprint(w, ", infinite")
		}
		fmt.Fprintf(w, " (%s in %d files)\n", humanize.Bytes(uint64(s.BytesRead)), s.FilesRead)

		for _, ts := range s.Tilesets {
			fmt.Fprintf(w, "  tileset %-16q gid %-6d %s tiles  %s\n",
				ts.Name, ts.FirstGID, humanize.Comma(int64(ts.Tiles)), ts.Source)
		}
		for _, l := range s.Layers {
			fmt.Fprintf(w, "  %*s%-8s %q", 2*l.Depth, "", l.Kind, l.Name)
			switch {
			case l.Kind == "tiles" || l.Kind == "infinite":
				fmt.Fprintf(w, " %s tiles", humanize.Comma(int64(l.Tiles)))
			case l.Kind == "objects":
				fmt.Fprintf(w, " %s objects", humanize.Comma(int64(l.Objects)))
			case l.Image != "":
				fmt.Fprintf(w, " %s", l.Image)
			}
			if l.Hidden {
				fmt.Fprint(w, " (hidden)")
			}
			fmt.Fprintln(w)
		}
		for _, name := range slices.Sorted(maps.Keys(s.Properties)) {
			fmt.Fprintf(w, "  property %s = %s\n", name, s.Properties[name])
		}
	}
	return nil
}
