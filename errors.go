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
	"errors"
	"strconv"
)

// MalformedFieldError is returned when a geometric entry of an annotation
// does not have the expected shape, for example when a coordinate list has
// an odd number of elements.
type MalformedFieldError struct {
	// Field is the name of the entry in the annotation dictionary,
	// e.g. "Vertices".
	Field string

	Err error
}

func (err *MalformedFieldError) Error() string {
	msg := "malformed /" + err.Field + " entry"
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *MalformedFieldError) Unwrap() error {
	return err.Err
}

// PageSizeError is returned when the annotations on a page cannot be
// mirrored, because the page size is not usable.
type PageSizeError struct {
	Width, Height float64
}

func (err *PageSizeError) Error() string {
	return "invalid page size " +
		strconv.FormatFloat(err.Width, 'g', -1, 64) + "x" +
		strconv.FormatFloat(err.Height, 'g', -1, 64)
}

var (
	errOddLength = errors.New("odd number of coordinates")
	errNotFinite = errors.New("coordinate is not finite")
	errNoRecord  = errors.New("missing annotation record")
)
