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
	"math"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"16", 16, false},
		{"2147483647", math.MaxInt32, false},
		{"2147483648", 0, true},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("parseSize(%q) = %d, %v, want %d (error %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestCellCount(t *testing.T) {
	if n, err := cellCount(40, 30); err != nil || n != 1200 {
		t.Errorf("cellCount(40, 30) = %d, %v", n, err)
	}
	if n, err := cellCount(0, math.MaxInt); err != nil || n != 0 {
		t.Errorf("cellCount(0, MaxInt) = %d, %v", n, err)
	}
	if _, err := cellCount(math.MaxInt/2+1, 2); !errors.Is(err, ErrMalformedAttributes) {
		t.Errorf("overflowing cellCount error = %v, want ErrMalformedAttributes", err)
	}
}
