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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ReflectPoint mirrors a single point.
//
// The x coordinate is replaced by Width-x if f.Horizontal is set,
// the y coordinate by Height-y if f.Vertical is set.
func ReflectPoint(pt vec.Vec2, p Page, f Flip) vec.Vec2 {
	return apply(f.Matrix(p), pt)
}

// ReflectPoints mirrors every point of a sequence.
// The result is a new slice, the order of the points is not changed.
func ReflectPoints(pts []vec.Vec2, p Page, f Flip) []vec.Vec2 {
	if pts == nil {
		return nil
	}
	m := f.Matrix(p)
	res := make([]vec.Vec2, len(pts))
	for i, pt := range pts {
		res[i] = apply(m, pt)
	}
	return res
}

// apply maps a point through the affine transformation m.
func apply(m matrix.Matrix, pt vec.Vec2) vec.Vec2 {
	x, y := m.Apply(pt.X, pt.Y)
	return vec.Vec2{X: x, Y: y}
}

// ReflectRect mirrors a rectangle.
//
// Both corners are reflected, and the coordinates are then sorted again so
// that LLx <= URx and LLy <= URy holds for the result.
func ReflectRect(r rect.Rect, p Page, f Flip) rect.Rect {
	a := ReflectPoint(vec.Vec2{X: r.LLx, Y: r.LLy}, p, f)
	b := ReflectPoint(vec.Vec2{X: r.URx, Y: r.URy}, p, f)
	return rect.Rect{
		LLx: math.Min(a.X, b.X),
		LLy: math.Min(a.Y, b.Y),
		URx: math.Max(a.X, b.X),
		URy: math.Max(a.Y, b.Y),
	}
}

// ReflectMargins mirrors the inner margins of an annotation (the /RD entry).
// A horizontal flip exchanges the left and right margins, a vertical flip
// exchanges the top and bottom margins.
func ReflectMargins(m Margins, f Flip) Margins {
	if f.Horizontal {
		m.Left, m.Right = m.Right, m.Left
	}
	if f.Vertical {
		m.Bottom, m.Top = m.Top, m.Bottom
	}
	return m
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func finitePoints(pts []vec.Vec2) bool {
	for _, pt := range pts {
		if !isFinite(pt.X) || !isFinite(pt.Y) {
			return false
		}
	}
	return true
}
