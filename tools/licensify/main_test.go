// seehuhn.de/go/annotflip - mirror the geometry of PDF annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import "testing"

func TestCheck(t *testing.T) {
	cases := []struct {
		body string
		want status
	}{
		{header + "package main\n", statusOK},
		{"package main\n", statusMissing},
		{"//go:build ignore\n\npackage main\n", statusUnknown},
		{"", statusUnknown},
	}
	for i, c := range cases {
		if got := check([]byte(c.body)); got != c.want {
			t.Errorf("%d: got %d, want %d", i, got, c.want)
		}
	}
}

func TestSkipDir(t *testing.T) {
	cases := map[string]bool{
		".":                false,
		"pdfdoc":           false,
		"tools/pdf-flip":   false,
		"_examples":        true,
		".git":             true,
		"recfile/testdata": true,
		"tools/internal":   false,
	}
	for path, want := range cases {
		if got := skipDir(path); got != want {
			t.Errorf("skipDir(%q) = %t, want %t", path, got, want)
		}
	}
}
