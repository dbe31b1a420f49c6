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
	"errors"
	"strconv"

	"github.com/salviati/go-tmx/v2/tmx"
)

var (
	PropertyUnavailable = errors.New("property does not exist")
	PropertyNotScalar   = errors.New("property has no string form")
)

// GetProperty returns the named property in its textual form, so that a bool
// property and a string property holding "true" read the same.
func GetProperty(properties tmx.Properties, name string) (value string, err error) {
	v, ok := properties.Get(name)
	if !ok {
		return "", PropertyUnavailable
	}

	switch v := v.(type) {
	case tmx.StringValue:
		return string(v), nil
	case tmx.FileValue:
		return string(v), nil
	case tmx.BoolValue:
		return strconv.FormatBool(bool(v)), nil
	case tmx.IntValue:
		return strconv.FormatInt(int64(v), 10), nil
	case tmx.FloatValue:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case tmx.ObjectValue:
		return strconv.FormatUint(uint64(v), 10), nil
	case tmx.ColorValue:
		return tmx.Color(v).String(), nil
	}
	return "", PropertyNotScalar
}

// layerTileset returns the single tileset every non-empty cell of tl refers to.
func layerTileset(m *tmx.Map, tl *tmx.FiniteTileLayer) (*tmx.Tileset, error) {
	index := -1
	for _, t := range tl.Tiles {
		if t == nil {
			continue
		}
		if index >= 0 && t.TilesetIndex != index {
			return nil, ErrMultipleTilesets
		}
		index = t.TilesetIndex
	}
	if index < 0 {
		return nil, ErrEmptyLayer
	}
	return m.Tilesets[index].Tileset, nil
}
