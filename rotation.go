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

import "strconv"

// Align is the text alignment of a free text annotation.
// The values correspond to the /Q entry in the annotation dictionary.
type Align int

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "Align(" + strconv.Itoa(int(a)) + ")"
	}
}

// MapRotation returns the rotation (in degrees) of a mirrored annotation.
//
// The result is always in the range [0, 360).  Input values outside this
// range are reduced modulo 360 first.
func MapRotation(r int, f Flip) int {
	switch {
	case f.Horizontal && f.Vertical:
		r = 180 + r
	case f.Horizontal:
		r = 360 - r
	case f.Vertical:
		r = 180 - r
	}
	r %= 360
	if r < 0 {
		r += 360
	}
	return r
}

// MapAlign returns the text alignment of a mirrored annotation.
// Left and right alignment are exchanged on horizontal flips,
// all other values are returned unchanged.
func MapAlign(a Align, f Flip) Align {
	if !f.Horizontal {
		return a
	}
	switch a {
	case AlignLeft:
		return AlignRight
	case AlignRight:
		return AlignLeft
	default:
		return a
	}
}
