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

// A Go library that reads Tiled's TMX files.
//
// A Loader parses a map together with the external tilesets and object
// templates it references, fetching files through a ResourceReader and sharing
// parsed tilesets and templates through a ResourceCache. Load and Read cover
// the common case with a default Loader.
//
// The package is silent unless SetLogger is given a logger. It then emits
// Debug records when a file is opened, when the cache is hit or missed for a
// path, and when an element it does not model is skipped. Errors are never
// logged; they are returned.
package tmx
