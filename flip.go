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
)

// Page describes the page an annotation is placed on.
//
// Reflections are taken across the lines x = Width/2 and y = Height/2.
type Page struct {
	// Width is the sum of the left and right edge coordinates of the
	// page box, i.e. twice the x coordinate of the vertical midline.
	// This equals the box width only if the box starts at x = 0.
	Width float64

	// Height is the sum of the bottom and top edge coordinates of the
	// page box, i.e. twice the y coordinate of the horizontal midline.
	Height float64
}

// Check returns a [*PageSizeError] if the page size cannot be used
// for reflections.
func (p Page) Check() error {
	if !(p.Width > 0) || !(p.Height > 0) || math.IsInf(p.Width, 0) || math.IsInf(p.Height, 0) {
		return &PageSizeError{Width: p.Width, Height: p.Height}
	}
	return nil
}

// Flip selects the axes along which annotations are mirrored.
//
// A horizontal flip reflects across the vertical midline of the page
// (left and right are exchanged), a vertical flip reflects across the
// horizontal midline.  Setting both is equivalent to a rotation by 180
// degrees, setting neither leaves all coordinates unchanged.
type Flip struct {
	Horizontal bool
	Vertical   bool
}

// IsIdentity reports whether f leaves all coordinates unchanged.
func (f Flip) IsIdentity() bool {
	return !f.Horizontal && !f.Vertical
}

// SingleAxis reports whether exactly one axis is flipped.
// Only in this case the reflection reverses orientation.
func (f Flip) SingleAxis() bool {
	return f.Horizontal != f.Vertical
}

// Matrix returns the reflection as a transformation matrix in
// PDF default user space.
func (f Flip) Matrix(p Page) matrix.Matrix {
	m := matrix.Identity
	if f.Horizontal {
		m[0] = -1
		m[4] = p.Width
	}
	if f.Vertical {
		m[3] = -1
		m[5] = p.Height
	}
	return m
}

func (f Flip) String() string {
	switch {
	case f.Horizontal && f.Vertical:
		return "horizontal+vertical"
	case f.Horizontal:
		return "horizontal"
	case f.Vertical:
		return "vertical"
	default:
		return "none"
	}
}
