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
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// The functions in this file convert between the flat number arrays used in
// PDF annotation dictionaries and the typed fields of a [Record].

// PointsFromCoords converts an array [x1 y1 x2 y2 ...] into a list of points.
// The field name is used in error messages.
// A nil input gives a nil result.
func PointsFromCoords(field string, coords []float64) ([]vec.Vec2, error) {
	if coords == nil {
		return nil, nil
	}
	if len(coords)%2 != 0 {
		return nil, &MalformedFieldError{Field: field, Err: errOddLength}
	}
	pts := make([]vec.Vec2, len(coords)/2)
	for i := range pts {
		pts[i] = vec.Vec2{X: coords[2*i], Y: coords[2*i+1]}
	}
	return pts, nil
}

// Coords converts a list of points into an array [x1 y1 x2 y2 ...].
func Coords(pts []vec.Vec2) []float64 {
	if pts == nil {
		return nil
	}
	res := make([]float64, 0, 2*len(pts))
	for _, pt := range pts {
		res = append(res, pt.X, pt.Y)
	}
	return res
}

// QuadsFromCoords converts a /QuadPoints array into a list of quadrilaterals.
// The length of the array must be a multiple of 8.
func QuadsFromCoords(coords []float64) ([]Quad, error) {
	if coords == nil {
		return nil, nil
	}
	if len(coords)%8 != 0 {
		return nil, &MalformedFieldError{
			Field: "QuadPoints",
			Err:   fmt.Errorf("%d numbers is not a multiple of 8", len(coords)),
		}
	}
	quads := make([]Quad, len(coords)/8)
	for i := range quads {
		for j := range 4 {
			quads[i][j] = vec.Vec2{X: coords[8*i+2*j], Y: coords[8*i+2*j+1]}
		}
	}
	return quads, nil
}

// QuadCoords converts a list of quadrilaterals into a /QuadPoints array.
func QuadCoords(quads []Quad) []float64 {
	if quads == nil {
		return nil
	}
	res := make([]float64, 0, 8*len(quads))
	for _, q := range quads {
		for _, pt := range q {
			res = append(res, pt.X, pt.Y)
		}
	}
	return res
}

// LineFromCoords converts an /L array [x1 y1 x2 y2] into a line.
func LineFromCoords(coords []float64) (*Line, error) {
	if len(coords) != 4 {
		return nil, &MalformedFieldError{
			Field: "L",
			Err:   fmt.Errorf("expected 4 numbers, got %d", len(coords)),
		}
	}
	l := &Line{
		P0: vec.Vec2{X: coords[0], Y: coords[1]},
		P1: vec.Vec2{X: coords[2], Y: coords[3]},
	}
	return l, nil
}

// Coords returns the /L array [x1 y1 x2 y2] for the line.
func (l *Line) Coords() []float64 {
	return []float64{l.P0.X, l.P0.Y, l.P1.X, l.P1.Y}
}
