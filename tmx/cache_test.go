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
	"sync"
	"testing"
)

func TestDefaultCache(t *testing.T) {
	var c DefaultCache // zero value

	if _, ok := c.GetTileset("a.tsx"); ok {
		t.Fatal("empty cache reported a hit")
	}
	calls := 0
	produce := func() *Tileset {
		calls++
		return &Tileset{Name: "a"}
	}
	first := c.GetOrInsertTileset("a.tsx", produce)
	second := c.GetOrInsertTileset("a.tsx", produce)
	if first != second || calls != 1 {
		t.Errorf("got %p and %p after %d produce calls", first, second, calls)
	}
	if got, ok := c.GetTileset("a.tsx"); !ok || got != first {
		t.Error("GetTileset should return the stored tileset")
	}

	tmpl := c.GetOrInsertTemplate("a.tx", func() *Template { return &Template{Source: "a.tx"} })
	if got, ok := c.GetTemplate("a.tx"); !ok || got != tmpl {
		t.Error("GetTemplate should return the stored template")
	}
}

func TestCacheErrorsAreNotStored(t *testing.T) {
	boom := errors.New("boom")
	for _, c := range []ResourceCache{NewDefaultCache(), NewSyncCache(nil)} {
		_, err := c.TryGetOrInsertTileset("x.tsx", func() (*Tileset, error) { return nil, boom })
		if !errors.Is(err, boom) {
			t.Errorf("%T: error = %v, want the produce error", c, err)
		}
		if _, ok := c.GetTileset("x.tsx"); ok {
			t.Errorf("%T: failed tileset was stored", c)
		}
		ts, err := c.TryGetOrInsertTileset("x.tsx", func() (*Tileset, error) { return &Tileset{}, nil })
		if err != nil || ts == nil {
			t.Errorf("%T: retry = %v, %v", c, ts, err)
		}

		_, err = c.TryGetOrInsertTemplate("x.tx", func() (*Template, error) { return nil, boom })
		if !errors.Is(err, boom) {
			t.Errorf("%T: template error = %v", c, err)
		}
		if _, ok := c.GetTemplate("x.tx"); ok {
			t.Errorf("%T: failed template was stored", c)
		}
	}
}

func TestSyncCacheConcurrent(t *testing.T) {
	c := NewSyncCache(nil)
	const workers = 16
	results := make([]*Tileset, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.GetOrInsertTileset("shared.tsx", func() *Tileset { return &Tileset{} })
		}()
	}
	wg.Wait()

	for i, ts := range results {
		if ts != results[0] {
			t.Fatalf("worker %d got a different tileset", i)
		}
	}
}

func TestSyncCacheRecursiveProduce(t *testing.T) {
	c := NewSyncCache(nil)
	tmpl, err := c.TryGetOrInsertTemplate("t.tx", func() (*Template, error) {
		ts := c.GetOrInsertTileset("t.tsx", func() *Tileset { return &Tileset{} })
		return &Template{Tileset: ts}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if ts, _ := c.GetTileset("t.tsx"); ts != tmpl.Tileset {
		t.Error("nested insert should share the tileset")
	}
}

func TestLoaderWithSyncCache(t *testing.T) {
	files := levelFiles(t, EncodingBase64, CompressionZstd)
	cache := NewSyncCache(nil)
	l := NewLoader(WithReader(FSReader{FS: newRecordingReader(files).fs}), WithCache(cache))

	var wg sync.WaitGroup
	maps := make([]*Map, 4)
	errs := make([]error, 4)
	for i := range maps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			maps[i], errs[i] = l.LoadMap("levels/level1.tmx")
		}()
	}
	wg.Wait()

	for i := range maps {
		if errs[i] != nil {
			t.Fatalf("load %d: %v", i, errs[i])
		}
		if maps[i].Tilesets[0].Tileset != maps[0].Tilesets[0].Tileset {
			t.Errorf("load %d got its own copy of tiles.tsx", i)
		}
	}
}
