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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ResourceReader fetches the bytes of a map, tileset, template or any other file
// referenced from one. Every cross-file load goes through it, so virtual
// filesystems and in-memory fixtures can stand in for the disk. Cancellation, if
// needed, belongs in the implementation.
type ResourceReader interface {
	Open(path string) (io.ReadCloser, error)
}

// ReaderFunc adapts a function to a ResourceReader.
type ReaderFunc func(path string) (io.ReadCloser, error)

func (f ReaderFunc) Open(path string) (io.ReadCloser, error) { return f(path) }

// FilesystemReader reads from the operating system's filesystem.
type FilesystemReader struct{}

func (FilesystemReader) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

// FSReader reads from an fs.FS. Paths are cleaned for the lookup only; an
// fs.FS does not accept ".." elements nor a leading slash.
type FSReader struct {
	FS fs.FS
}

func (r FSReader) Open(name string) (io.ReadCloser, error) {
	clean := strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "/")
	if !fs.ValidPath(clean) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return r.FS.Open(clean)
}

// CountingReader wraps a ResourceReader and records how many files were opened
// and how many bytes were read from them. It is not safe for concurrent use.
type CountingReader struct {
	Reader ResourceReader
	Files  int
	Bytes  int64
}

func (c *CountingReader) Open(path string) (io.ReadCloser, error) {
	rc, err := c.Reader.Open(path)
	if err != nil {
		return nil, err
	}
	c.Files++
	return &countingReadCloser{ReadCloser: rc, n: &c.Bytes}, nil
}

type countingReadCloser struct {
	io.ReadCloser
	n *int64
}

func (c *countingReadCloser) Read(p []byte) (int, error) {
	n, err := c.ReadCloser.Read(p)
	*c.n += int64(n)
	return n, err
}

const separators = `/` + string(filepath.Separator)

// parentDir returns the directory part of p without cleaning it. A bare file
// name yields "". Paths with no parent, such as "" or "/", are rejected.
func parentDir(p string) (string, error) {
	trimmed := strings.TrimRight(p, separators)
	if trimmed == "" || trimmed == filepath.VolumeName(p) {
		return "", fmt.Errorf("%w: %q", ErrPathIsNotFile, p)
	}
	i := strings.LastIndexAny(trimmed, separators)
	switch {
	case i < 0:
		return "", nil
	case i == 0:
		return trimmed[:1], nil
	}
	return trimmed[:i], nil
}

// resolvePath resolves rel against the directory of the file at base. The result
// is not canonicalized: "levels/level1.tmx" and "../shared/tiles.tsx" give
// "levels/../shared/tiles.tsx".
func resolvePath(base, rel string) (string, error) {
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return rel, nil
	}
	dir, err := parentDir(base)
	if err != nil {
		return "", err
	}
	switch {
	case dir == "":
		return rel, nil
	case strings.ContainsAny(dir[len(dir)-1:], separators):
		return dir + rel, nil
	}
	return dir + "/" + rel, nil
}
