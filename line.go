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

	"seehuhn.de/go/geom/vec"
)

// LineAngleTolerance is the largest difference, in degrees, between the
// direction of a reflected line and its expected direction for which the
// endpoints of the line are kept in their original order.
const LineAngleTolerance = 10

// ResolveLine mirrors the endpoints of a line annotation.
//
// After reflecting both endpoints, the direction of the new line is compared
// to the direction which the reflection of the original line should have.
// If the two differ by more than [LineAngleTolerance] degrees, the endpoints
// are exchanged, together with the line ending styles.  The second return
// value reports whether this exchange took place.
//
// This is a heuristic.  For lines of non-zero length the reflected
// endpoints always point in the expected direction, but for degenerate
// lines (both endpoints equal) the direction is undefined and the
// endpoints are exchanged on horizontal flips.
func ResolveLine(l Line, p Page, f Flip) (Line, bool) {
	origAngle := direction(l.P0, l.P1)

	res := Line{
		P0: ReflectPoint(l.P0, p, f),
		P1: ReflectPoint(l.P1, p, f),
	}
	if l.EndStyles != nil {
		styles := *l.EndStyles
		res.EndStyles = &styles
	}

	newAngle := direction(res.P0, res.P1)
	expected := expectedAngle(origAngle, f)

	diff := math.Abs(floorMod(newAngle-expected+180, 360) - 180)
	if diff <= LineAngleTolerance {
		return res, false
	}

	res.P0, res.P1 = res.P1, res.P0
	if res.EndStyles != nil {
		res.EndStyles[0], res.EndStyles[1] = res.EndStyles[1], res.EndStyles[0]
	}
	return res, true
}

// direction returns the angle of the line from a to b in degrees,
// in the range [-180, 180].
func direction(a, b vec.Vec2) float64 {
	d := b.Sub(a)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// expectedAngle returns the direction, in degrees, which a line with
// direction orig has after the reflection f.  The result is normalised
// to the range (-180, 180].
func expectedAngle(orig float64, f Flip) float64 {
	var a float64
	switch {
	case f.Horizontal && f.Vertical:
		a = 180 + orig
	case f.Horizontal:
		a = 180 - orig
	case f.Vertical:
		a = -orig
	default:
		a = orig
	}
	return 180 - floorMod(180-a, 360)
}

// floorMod returns x modulo m, with the sign of m.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
