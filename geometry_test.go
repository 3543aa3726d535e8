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

package annotflip

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

var allFlips = []Flip{
	{},
	{Horizontal: true},
	{Vertical: true},
	{Horizontal: true, Vertical: true},
}

func TestReflectPoint(t *testing.T) {
	p := Page{Width: 200, Height: 100}
	pt := vec.Vec2{X: 30, Y: 10}
	cases := []struct {
		f    Flip
		want vec.Vec2
	}{
		{Flip{}, vec.Vec2{X: 30, Y: 10}},
		{Flip{Horizontal: true}, vec.Vec2{X: 170, Y: 10}},
		{Flip{Vertical: true}, vec.Vec2{X: 30, Y: 90}},
		{Flip{Horizontal: true, Vertical: true}, vec.Vec2{X: 170, Y: 90}},
	}
	for _, c := range cases {
		got := ReflectPoint(pt, p, c.f)
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.f, got, c.want)
		}
	}
}

func TestReflectPoints(t *testing.T) {
	p := Page{Width: 10, Height: 10}
	in := []vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}
	orig := append([]vec.Vec2(nil), in...)

	got := ReflectPoints(in, p, Flip{Horizontal: true})
	want := []vec.Vec2{{X: 9, Y: 2}, {X: 7, Y: 4}, {X: 5, Y: 6}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
	if d := cmp.Diff(orig, in); d != "" {
		t.Errorf("input was modified (-want +got):\n%s", d)
	}

	if ReflectPoints(nil, p, Flip{Horizontal: true}) != nil {
		t.Error("nil input should give nil output")
	}
}

// A rectangle close to the left edge moves close to the right edge.
func TestReflectRectEdge(t *testing.T) {
	p := Page{Width: 100, Height: 100}
	r := rect.Rect{LLx: 10, LLy: 20, URx: 30, URy: 40}

	got := ReflectRect(r, p, Flip{Horizontal: true})
	want := rect.Rect{LLx: 70, LLy: 20, URx: 90, URy: 40}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReflectRectOrdering(t *testing.T) {
	p := Page{Width: 612, Height: 792}
	rects := []rect.Rect{
		{LLx: 10, LLy: 20, URx: 30, URy: 40},
		{LLx: 30, LLy: 40, URx: 10, URy: 20}, // corners in the wrong order
		{LLx: 0, LLy: 0, URx: 612, URy: 792},
		{LLx: 5, LLy: 5, URx: 5, URy: 5},
		{LLx: -10, LLy: 700, URx: 700, URy: 900}, // outside the page
	}
	for _, r := range rects {
		for _, f := range allFlips {
			got := ReflectRect(r, p, f)
			if got.LLx > got.URx || got.LLy > got.URy {
				t.Errorf("%s %v: corners out of order: %v", f, r, got)
			}
		}
	}
}

func TestReflectRectTwice(t *testing.T) {
	p := Page{Width: 595, Height: 842}
	r := rect.Rect{LLx: 72, LLy: 100.5, URx: 300.25, URy: 120}
	for _, f := range allFlips {
		got := ReflectRect(ReflectRect(r, p, f), p, f)
		if got != r {
			t.Errorf("%s: got %v, want %v", f, got, r)
		}
	}
}

func TestReflectMargins(t *testing.T) {
	m := Margins{Left: 1, Bottom: 2, Right: 3, Top: 4}
	cases := []struct {
		f    Flip
		want Margins
	}{
		{Flip{}, Margins{Left: 1, Bottom: 2, Right: 3, Top: 4}},
		{Flip{Horizontal: true}, Margins{Left: 3, Bottom: 2, Right: 1, Top: 4}},
		{Flip{Vertical: true}, Margins{Left: 1, Bottom: 4, Right: 3, Top: 2}},
		{Flip{Horizontal: true, Vertical: true}, Margins{Left: 3, Bottom: 4, Right: 1, Top: 2}},
	}
	for _, c := range cases {
		got := ReflectMargins(m, c.f)
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.f, got, c.want)
		}
		if back := ReflectMargins(got, c.f); back != m {
			t.Errorf("%s: second flip gave %v", c.f, back)
		}
	}
}

func TestFlipMatrix(t *testing.T) {
	p := Page{Width: 300, Height: 400}
	pt := vec.Vec2{X: 12, Y: 345}
	for _, f := range allFlips {
		want := pt
		if f.Horizontal {
			want.X = p.Width - pt.X
		}
		if f.Vertical {
			want.Y = p.Height - pt.Y
		}
		got := apply(f.Matrix(p), pt)
		if got != want {
			t.Errorf("%s: got %v, want %v", f, got, want)
		}
	}
}

func TestPageCheck(t *testing.T) {
	good := []Page{{Width: 1, Height: 1}, {Width: 612, Height: 792}}
	for _, p := range good {
		if err := p.Check(); err != nil {
			t.Errorf("%v: unexpected error %v", p, err)
		}
	}

	bad := []Page{
		{},
		{Width: -1, Height: 10},
		{Width: 10, Height: 0},
		{Width: math.NaN(), Height: 10},
		{Width: 10, Height: math.Inf(1)},
	}
	for _, p := range bad {
		err := p.Check()
		if _, ok := err.(*PageSizeError); !ok {
			t.Errorf("%v: expected PageSizeError, got %v", p, err)
		}
	}
}

func FuzzReflectRect(f *testing.F) {
	f.Add(100.0, 100.0, 10.0, 20.0, 30.0, 40.0, true, false)
	f.Add(595.0, 842.0, 0.1, 0.2, 594.9, 841.8, true, true)
	f.Add(612.0, 792.0, 300.0, 10.0, 20.0, 500.0, false, true)
	f.Fuzz(func(t *testing.T, w, h, x0, y0, x1, y1 float64, horizontal, vertical bool) {
		p := Page{Width: w, Height: h}
		if p.Check() != nil {
			return
		}
		for _, x := range []float64{x0, y0, x1, y1} {
			if !isFinite(x) || math.Abs(x) > 1e6 {
				return
			}
		}
		if w > 1e6 || h > 1e6 {
			return
		}
		fl := Flip{Horizontal: horizontal, Vertical: vertical}
		r := rect.Rect{LLx: x0, LLy: y0, URx: x1, URy: y1}

		once := ReflectRect(r, p, fl)
		if once.LLx > once.URx || once.LLy > once.URy {
			t.Fatalf("corners out of order: %v", once)
		}

		twice := ReflectRect(once, p, fl)
		want := ReflectRect(r, p, Flip{}) // r with sorted corners
		approx := cmpopts.EquateApprox(0, 1e-9*(w+h+1))
		if d := cmp.Diff(want, twice, approx); d != "" {
			t.Errorf("double flip (-want +got):\n%s", d)
		}
	})
}
