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

// Template is an object prototype loaded from a .tx file.
type Template struct {
	Source string
	// Tileset is the tileset the template's tile object refers to, if any.
	Tileset *Tileset
	Object  Object
}

// parseTemplateFile reads a <template> document. Tile references inside it
// resolve against the single tileset it declares.
func (p *parser) parseTemplateFile(d *xml.Decoder) (*Template, error) {
	if _, err := findRoot(d, "template"); err != nil {
		return nil, err
	}
	p.template = true

	tmpl := &Template{Source: p.path}
	var obj *Object
	err := eachChild(d, func(se xml.StartElement) error {
		switch se.Name.Local {
		case "tileset":
			mt, err := p.parseMapTileset(d, se)
			if err != nil {
				return err
			}
			p.tilesets = []MapTileset{mt}
			tmpl.Tileset = mt.Tileset
		case "object":
			o, err := p.parseObject(d, se)
			if err != nil {
				return err
			}
			obj = &o
		default:
			return skipUnknown(d, "template", se)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrTemplateHasNoObject
	}
	tmpl.Object = *obj
	return tmpl, nil
}
