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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/text/encoding/htmlindex"
)

// attrReader gives typed access to the attributes of one element. The first
// missing or unparsable attribute is remembered and reported by err.
type attrReader struct {
	elem string
	m    map[string]string
	err  error
}

func newAttrs(se xml.StartElement) *attrReader {
	m := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		m[a.Name.Local] = a.Value
	}
	return &attrReader{elem: se.Name.Local, m: m}
}

func (a *attrReader) has(name string) bool {
	_, ok := a.m[name]
	return ok
}

func (a *attrReader) str(name string) (string, bool) {
	v, ok := a.m[name]
	return v, ok
}

func (a *attrReader) strOr(name, def string) string {
	if v, ok := a.m[name]; ok {
		return v
	}
	return def
}

func (a *attrReader) reqString(name string) string {
	v, ok := a.m[name]
	if !ok {
		a.missing(name)
	}
	return v
}

func (a *attrReader) missing(name string) {
	if a.err == nil {
		a.err = malformed("<%s> requires attribute %q", a.elem, name)
	}
}

func (a *attrReader) invalid(name, value string, err error) {
	if a.err == nil {
		a.err = malformed("<%s> attribute %q has invalid value %q: %v", a.elem, name, value, err)
	}
}

func (a *attrReader) optColor(name string) *Color {
	c, ok := optAttr(a, name, ParseColor)
	if !ok {
		return nil
	}
	return &c
}

func optAttr[T any](a *attrReader, name string, parse func(string) (T, error)) (T, bool) {
	var zero T
	s, ok := a.m[name]
	if !ok {
		return zero, false
	}
	v, err := parse(s)
	if err != nil {
		a.invalid(name, s, err)
		return zero, false
	}
	return v, true
}

func reqAttr[T any](a *attrReader, name string, parse func(string) (T, error)) T {
	v, ok := optAttr(a, name, parse)
	if !ok && !a.has(name) {
		a.missing(name)
	}
	return v
}

func attrOr[T any](a *attrReader, name string, def T, parse func(string) (T, error)) T {
	if v, ok := optAttr(a, name, parse); ok {
		return v
	}
	return def
}

func parseInt(s string) (int, error) { return strconv.Atoi(s) }

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// parseSize parses a width or height. Sizes are never negative and fit in 31 bits.
func parseSize(s string) (int, error) {
	v, err := strconv.ParseUint(s, 10, 31)
	return int(v), err
}

// cellCount returns width*height, failing when the product does not fit an int.
func cellCount(width, height int) (int, error) {
	if width != 0 && height > math.MaxInt/width {
		return 0, malformed("%dx%d cells do not fit in memory", width, height)
	}
	return width * height, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

// parseBool accepts the "0"/"1" form written by the editor as well as "true"/"false".
func parseBool(s string) (bool, error) { return strconv.ParseBool(s) }

// newDecoder returns an XML decoder that also understands documents declaring a
// non UTF-8 encoding in their prolog.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	return d
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(input), nil
}

// xmlError classifies an error returned by the tokenizer.
func xmlError(err error) error {
	if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrPrematureEnd
	}
	var se *xml.SyntaxError
	if errors.As(err, &se) && se.Msg == "unexpected EOF" {
		return fmt.Errorf("%w (line %d)", ErrPrematureEnd, se.Line)
	}
	return fmt.Errorf("%w: %w", ErrXMLDecoding, err)
}

func nextToken(d *xml.Decoder) (xml.Token, error) {
	tok, err := d.Token()
	if err != nil {
		return nil, xmlError(err)
	}
	return tok, nil
}

// findRoot scans forward to the first <name> element.
func findRoot(d *xml.Decoder, name string) (xml.StartElement, error) {
	for {
		tok, err := nextToken(d)
		if err != nil {
			return xml.StartElement{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == name {
			return se, nil
		}
		if err := skip(d); err != nil {
			return xml.StartElement{}, err
		}
	}
}

// eachChild calls fn for every child element of the element whose start tag was
// just read. fn must consume the child, either by parsing it or through skip.
func eachChild(d *xml.Decoder, fn func(se xml.StartElement) error) error {
	for {
		tok, err := nextToken(d)
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func skip(d *xml.Decoder) error {
	if err := d.Skip(); err != nil {
		return xmlError(err)
	}
	return nil
}

// skipUnknown drops an element this package does not model.
func skipUnknown(d *xml.Decoder, parent string, se xml.StartElement) error {
	Logger().Debug("tmx: skipping unknown element", "parent", parent, "element", se.Name.Local)
	return skip(d)
}

// readText returns the character data of the current element and consumes it.
// Nested elements are skipped.
func readText(d *xml.Decoder) (string, error) {
	var buf bytes.Buffer
	for {
		tok, err := nextToken(d)
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if err := skip(d); err != nil {
				return "", err
			}
		case xml.EndElement:
			return buf.String(), nil
		}
	}
}
