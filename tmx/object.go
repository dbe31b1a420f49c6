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
	"encoding/xml"
	"strings"
)

// Object is an instance placed in an object layer, a tile's collision shapes or a
// template. Attributes absent from the instance come from its Template.
type Object struct {
	ID uint32
	// Tile is set for tile objects. It is nil for plain shapes and for gids that
	// no tileset covers.
	Tile       *LayerTile
	Name       string
	Type       string
	X, Y       float32
	Rotation   float32
	Visible    bool
	Shape      Shape
	Properties Properties
	Template   *Template
}

// Shape is one of *RectShape, *EllipseShape, *PolylineShape, *PolygonShape,
// *PointShape or *TextShape.
type Shape interface {
	isShape()
}

type RectShape struct{ Width, Height float32 }

type EllipseShape struct{ Width, Height float32 }

// PolylineShape points are relative to the object position.
type PolylineShape struct{ Points []Point }

type PolygonShape struct{ Points []Point }

type PointShape struct{}

type TextShape struct {
	Width, Height float32
	Content       string
	FontFamily    string
	PixelSize     int
	Wrap          bool
	Color         Color
	Bold          bool
	Italic        bool
	Underline     bool
	Strikeout     bool
	Kerning       bool
	HAlign        string
	VAlign        string
}

func (*RectShape) isShape()     {}
func (*EllipseShape) isShape()  {}
func (*PolylineShape) isShape() {}
func (*PolygonShape) isShape()  {}
func (*PointShape) isShape()    {}
func (*TextShape) isShape()     {}

type Point struct{ X, Y float32 }

// shapeSize returns the size carried by s, if it has one.
func shapeSize(s Shape) (w, h float32) {
	switch s := s.(type) {
	case *RectShape:
		return s.Width, s.Height
	case *EllipseShape:
		return s.Width, s.Height
	case *TextShape:
		return s.Width, s.Height
	}
	return 0, 0
}

// sized returns a copy of s with its size set to w×h. Shapes without a size are
// returned unchanged.
func sized(s Shape, w, h float32) Shape {
	switch s := s.(type) {
	case nil, *RectShape:
		return &RectShape{Width: w, Height: h}
	case *EllipseShape:
		return &EllipseShape{Width: w, Height: h}
	case *TextShape:
		t := *s
		t.Width, t.Height = w, h
		return &t
	}
	return s
}

func (p *parser) parseObject(d *xml.Decoder, se xml.StartElement) (Object, error) {
	a := newAttrs(se)

	base := Object{Visible: true}
	if src, ok := a.str("template"); ok {
		path, err := resolvePath(p.path, src)
		if err != nil {
			return Object{}, err
		}
		tmpl, err := p.loader.LoadTemplate(path)
		if err != nil {
			return Object{}, err
		}
		base = tmpl.Object
		base.Template = tmpl
	}

	obj := base
	obj.ID = attrOr(a, "id", base.ID, parseUint32)
	obj.Name = a.strOr("name", base.Name)
	obj.Type = a.strOr("type", a.strOr("class", base.Type))
	obj.X = attrOr(a, "x", base.X, parseFloat32)
	obj.Y = attrOr(a, "y", base.Y, parseFloat32)
	obj.Rotation = attrOr(a, "rotation", base.Rotation, parseFloat32)
	obj.Visible = attrOr(a, "visible", base.Visible, parseBool)
	if gid, ok := optAttr(a, "gid", parseUint32); ok {
		obj.Tile = resolveGID(gid, p.tilesets, p.template)
	}
	baseW, baseH := shapeSize(base.Shape)
	w := attrOr(a, "width", baseW, parseFloat32)
	h := attrOr(a, "height", baseH, parseFloat32)
	if a.err != nil {
		return Object{}, a.err
	}

	var (
		shape Shape
		props Properties
	)
	err := eachChild(d, func(se xml.StartElement) error {
		var err error
		switch se.Name.Local {
		case "ellipse":
			shape = &EllipseShape{}
			err = skip(d)
		case "point":
			shape = &PointShape{}
			err = skip(d)
		case "polyline", "polygon":
			var points []Point
			pa := newAttrs(se)
			if points = reqAttr(pa, "points", parsePoints); pa.err != nil {
				return pa.err
			}
			if se.Name.Local == "polygon" {
				shape = &PolygonShape{Points: points}
			} else {
				shape = &PolylineShape{Points: points}
			}
			err = skip(d)
		case "text":
			shape, err = parseText(d, se)
		case "properties":
			props, err = parseProperties(d)
		default:
			err = skipUnknown(d, "object", se)
		}
		return err
	})
	if err != nil {
		return Object{}, err
	}

	if shape == nil {
		shape = base.Shape
	}
	obj.Shape = sized(shape, w, h)
	obj.Properties = props.withDefaults(base.Properties)
	return obj, nil
}

// parsePoints parses "x1,y1 x2,y2 ...".
func parsePoints(s string) ([]Point, error) {
	fields := strings.Fields(s)
	points := make([]Point, len(fields))
	for i, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, malformed("invalid point %q", f)
		}
		x, err := parseFloat32(xs)
		if err != nil {
			return nil, malformed("invalid point %q", f)
		}
		y, err := parseFloat32(ys)
		if err != nil {
			return nil, malformed("invalid point %q", f)
		}
		points[i] = Point{X: x, Y: y}
	}
	return points, nil
}

func parseText(d *xml.Decoder, se xml.StartElement) (*TextShape, error) {
	a := newAttrs(se)
	t := &TextShape{
		FontFamily: a.strOr("fontfamily", "sans-serif"),
		PixelSize:  attrOr(a, "pixelsize", 16, parseInt),
		Wrap:       attrOr(a, "wrap", false, parseBool),
		Color:      attrOr(a, "color", Color{Alpha: 0xff}, ParseColor),
		Bold:       attrOr(a, "bold", false, parseBool),
		Italic:     attrOr(a, "italic", false, parseBool),
		Underline:  attrOr(a, "underline", false, parseBool),
		Strikeout:  attrOr(a, "strikeout", false, parseBool),
		Kerning:    attrOr(a, "kerning", true, parseBool),
		HAlign:     a.strOr("halign", "left"),
		VAlign:     a.strOr("valign", "top"),
	}
	if a.err != nil {
		return nil, a.err
	}
	content, err := readText(d)
	if err != nil {
		return nil, err
	}
	t.Content = content
	return t, nil
}
