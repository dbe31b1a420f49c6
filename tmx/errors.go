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
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of these
// through errors.Is, whatever context it was wrapped in.
var (
	ErrMalformedAttributes   = errors.New("tmx: malformed attributes")
	ErrXMLDecoding           = errors.New("tmx: xml decoding error")
	ErrBase64Decoding        = errors.New("tmx: base64 decoding error")
	ErrDecompression         = errors.New("tmx: decompression error")
	ErrUnsupportedEncoding   = errors.New("tmx: unsupported encoding scheme")
	ErrPrematureEnd          = errors.New("tmx: premature end of document")
	ErrResourceLoading       = errors.New("tmx: resource loading error")
	ErrPathIsNotFile         = errors.New("tmx: path is not inside a directory")
	ErrTemplateHasNoObject   = errors.New("tmx: template has no object")
	ErrInvalidWangID         = errors.New("tmx: invalid wang id")
	ErrInvalidPropertyValue  = errors.New("tmx: invalid property value")
	ErrUnknownPropertyType   = errors.New("tmx: unknown property type")
	ErrInvalidDecodedDataLen = errors.New("tmx: invalid decoded data length")
)

// EncodingError reports a <data> encoding/compression pair that cannot be decoded.
type EncodingError struct {
	Encoding    string
	Compression string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("tmx: unsupported encoding %q with compression %q", e.Encoding, e.Compression)
}

func (e *EncodingError) Is(target error) bool { return target == ErrUnsupportedEncoding }

// ResourceError wraps a failure of the ResourceReader for Path.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("tmx: loading %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() []error { return []error{ErrResourceLoading, e.Err} }

// ParseError attaches the file being parsed to an error raised while parsing it.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedAttributes}, args...)...)
}

func wrapParse(path string, err error) error {
	if err == nil {
		return nil
	}
	var re *ResourceError
	if errors.As(err, &re) && re.Path == path {
		return err
	}
	return &ParseError{Path: path, Err: err}
}
