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
	"fmt"
	"maps"
	"strconv"
)

// Property value types as written in the type attribute of <property>.
const (
	PropertyString = "string"
	PropertyInt    = "int"
	PropertyFloat  = "float"
	PropertyBool   = "bool"
	PropertyColor  = "color"
	PropertyFile   = "file"
	PropertyObject = "object"
	PropertyClass  = "class"
)

// PropertyValue is one of BoolValue, IntValue, FloatValue, ColorValue,
// StringValue, FileValue, ObjectValue or ClassValue.
type PropertyValue interface {
	isPropertyValue()
}

type (
	BoolValue   bool
	IntValue    int32
	FloatValue  float32
	ColorValue  Color
	StringValue string
	// FileValue is a path exactly as written, relative to the file declaring it.
	FileValue string
	// ObjectValue is the id of an object in the same map; 0 means none.
	ObjectValue uint32
	// ClassValue holds the members of a custom class property.
	ClassValue struct {
		PropertyType string
		Properties   Properties
	}
)

func (BoolValue) isPropertyValue()   {}
func (IntValue) isPropertyValue()    {}
func (FloatValue) isPropertyValue()  {}
func (ColorValue) isPropertyValue()  {}
func (StringValue) isPropertyValue() {}
func (FileValue) isPropertyValue()   {}
func (ObjectValue) isPropertyValue() {}
func (ClassValue) isPropertyValue()  {}

// Properties maps custom property names to their values.
type Properties map[string]PropertyValue

// Get returns the value stored under name.
func (p Properties) Get(name string) (PropertyValue, bool) {
	v, ok := p[name]
	return v, ok
}

// String returns the named property if it is a string or file property.
func (p Properties) String(name string) (string, bool) {
	switch v := p[name].(type) {
	case StringValue:
		return string(v), true
	case FileValue:
		return string(v), true
	}
	return "", false
}

func (p Properties) Int(name string) (int32, bool) {
	v, ok := p[name].(IntValue)
	return int32(v), ok
}

func (p Properties) Float(name string) (float32, bool) {
	v, ok := p[name].(FloatValue)
	return float32(v), ok
}

func (p Properties) Bool(name string) (bool, bool) {
	v, ok := p[name].(BoolValue)
	return bool(v), ok
}

// withDefaults returns p completed with the keys of defaults it does not define.
// Keys present in p win.
func (p Properties) withDefaults(defaults Properties) Properties {
	if len(defaults) == 0 {
		return p
	}
	out := maps.Clone(defaults)
	maps.Copy(out, p)
	return out
}

func parseProperties(d *xml.Decoder) (Properties, error) {
	props := Properties{}
	err := eachChild(d, func(se xml.StartElement) error {
		if se.Name.Local != "property" {
			return skipUnknown(d, "properties", se)
		}
		name, v, err := parseProperty(d, se)
		if err != nil {
			return err
		}
		props[name] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

func parseProperty(d *xml.Decoder, se xml.StartElement) (string, PropertyValue, error) {
	a := newAttrs(se)
	name := a.reqString("name")
	typ := a.strOr("type", PropertyString)
	value, hasValue := a.str("value")
	if a.err != nil {
		return "", nil, a.err
	}

	if typ == PropertyClass {
		cv := ClassValue{PropertyType: a.strOr("propertytype", ""), Properties: Properties{}}
		err := eachChild(d, func(se xml.StartElement) error {
			if se.Name.Local != "properties" {
				return skipUnknown(d, "property", se)
			}
			props, err := parseProperties(d)
			if err != nil {
				return err
			}
			cv.Properties = props
			return nil
		})
		return name, cv, err
	}

	// Multi-line strings are stored as element text instead of an attribute.
	text, err := readText(d)
	if err != nil {
		return "", nil, err
	}
	if !hasValue {
		value = text
	}
	v, err := newPropertyValue(typ, value)
	if err != nil {
		return "", nil, fmt.Errorf("property %q: %w", name, err)
	}
	return name, v, nil
}

func newPropertyValue(typ, value string) (PropertyValue, error) {
	invalid := func(err error) error {
		return fmt.Errorf("%w: %q is not a valid %s: %v", ErrInvalidPropertyValue, value, typ, err)
	}
	switch typ {
	case PropertyString:
		return StringValue(value), nil
	case PropertyFile:
		return FileValue(value), nil
	case PropertyInt:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return IntValue(v), nil
	case PropertyFloat:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return FloatValue(v), nil
	case PropertyBool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalid(err)
		}
		return BoolValue(v), nil
	case PropertyColor:
		if value == "" {
			return ColorValue{}, nil
		}
		c, err := ParseColor(value)
		if err != nil {
			return nil, invalid(err)
		}
		return ColorValue(c), nil
	case PropertyObject:
		if value == "" {
			return ObjectValue(0), nil
		}
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return ObjectValue(v), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPropertyType, typ)
}
