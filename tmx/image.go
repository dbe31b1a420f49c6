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

import "encoding/xml"

// Image references an image file. Source is resolved against the file that
// declared the image but is not canonicalized.
type Image struct {
	Source      string
	Width       int
	Height      int
	Transparent *Color
}

// parseImage reads an <image>. Inline image data is not supported; an <image>
// without a source is reported as malformed.
func parseImage(d *xml.Decoder, se xml.StartElement, path string) (*Image, error) {
	a := newAttrs(se)
	source := a.reqString("source")
	img := &Image{
		Width:       reqAttr(a, "width", parseSize),
		Height:      reqAttr(a, "height", parseSize),
		Transparent: a.optColor("trans"),
	}
	if a.err != nil {
		return nil, a.err
	}
	if err := skip(d); err != nil {
		return nil, err
	}
	src, err := resolvePath(path, source)
	if err != nil {
		return nil, err
	}
	img.Source = src
	return img, nil
}
