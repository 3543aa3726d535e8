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
	"slices"

	"seehuhn.de/go/geom/vec"
)

// NeedsReversal reports whether a reflected point sequence of length n
// must be reversed to keep its winding direction.
func NeedsReversal(n int, f Flip) bool {
	return f.SingleAxis() && n > 2
}

// ReorderSequence mirrors a polygon, polyline or ink stroke.
//
// Every point is reflected.  If exactly one axis is flipped and the sequence
// has more than two points, the order of the points is reversed so that the
// winding direction is preserved.  The result is a new slice of the same
// length.  The second return value reports whether the sequence was
// reversed.
func ReorderSequence(pts []vec.Vec2, p Page, f Flip) ([]vec.Vec2, bool) {
	res := ReflectPoints(pts, p, f)
	if !NeedsReversal(len(res), f) {
		return res, false
	}
	slices.Reverse(res)
	return res, true
}

// ReorderQuad mirrors one quadrilateral of a text markup annotation.
//
// The points are reflected individually.  On a single axis flip the
// left and right points are then exchanged, so that the quadrilateral
// [p0, p1, p2, p3] becomes [p1', p0', p3', p2'].
func ReorderQuad(q Quad, p Page, f Flip) Quad {
	m := f.Matrix(p)
	var res Quad
	for i, pt := range q {
		res[i] = apply(m, pt)
	}
	if f.SingleAxis() {
		res = Quad{res[1], res[0], res[3], res[2]}
	}
	return res
}
