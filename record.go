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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Subtype is the annotation type, as given by the /Subtype entry
// of the annotation dictionary.
type Subtype string

// Annotation subtypes with special geometry.
// All other subtypes only have their /Rect and /QuadPoints entries mirrored.
const (
	SubtypeText      Subtype = "Text"
	SubtypeFreeText  Subtype = "FreeText"
	SubtypeLine      Subtype = "Line"
	SubtypeSquare    Subtype = "Square"
	SubtypeCircle    Subtype = "Circle"
	SubtypePolygon   Subtype = "Polygon"
	SubtypePolyLine  Subtype = "PolyLine"
	SubtypeHighlight Subtype = "Highlight"
	SubtypeUnderline Subtype = "Underline"
	SubtypeSquiggly  Subtype = "Squiggly"
	SubtypeStrikeOut Subtype = "StrikeOut"
	SubtypeCaret     Subtype = "Caret"
	SubtypeStamp     Subtype = "Stamp"
	SubtypeInk       Subtype = "Ink"
)

// HasRotation reports whether the /Rotate and /Q entries are
// mirrored for annotations of this type.
func (s Subtype) HasRotation() bool {
	return s == SubtypeFreeText || s == SubtypeText || s == SubtypeStamp
}

// HasMargins reports whether the /RD entry is mirrored for
// annotations of this type.
func (s Subtype) HasMargins() bool {
	switch s {
	case SubtypeSquare, SubtypeCircle, SubtypeCaret, SubtypeFreeText,
		SubtypePolygon, SubtypePolyLine:
		return true
	}
	return false
}

// LineEndingStyle is the name of a line ending style,
// as used in the /LE entry of line annotations.
type LineEndingStyle string

const (
	LineEndingStyleSquare       LineEndingStyle = "Square"
	LineEndingStyleCircle       LineEndingStyle = "Circle"
	LineEndingStyleDiamond      LineEndingStyle = "Diamond"
	LineEndingStyleOpenArrow    LineEndingStyle = "OpenArrow"
	LineEndingStyleClosedArrow  LineEndingStyle = "ClosedArrow"
	LineEndingStyleNone         LineEndingStyle = "None"
	LineEndingStyleButt         LineEndingStyle = "Butt"
	LineEndingStyleROpenArrow   LineEndingStyle = "ROpenArrow"
	LineEndingStyleRClosedArrow LineEndingStyle = "RClosedArrow"
	LineEndingStyleSlash        LineEndingStyle = "Slash"
)

// Line holds the geometry of a line annotation.
type Line struct {
	// P0 and P1 are the start and end point of the line.
	// This corresponds to the /L entry in the annotation dictionary.
	P0, P1 vec.Vec2

	// EndStyles (optional) gives the line ending styles for P0 and P1.
	// This corresponds to the /LE entry in the annotation dictionary.
	EndStyles *[2]LineEndingStyle
}

// Quad is one quadrilateral of a text markup annotation.  The points are
// listed in the order top-left, top-right, bottom-left, bottom-right.
type Quad [4]vec.Vec2

// Margins are the distances between the /Rect of an annotation and the
// rectangle in which the annotation is drawn.
// This corresponds to the /RD entry in the annotation dictionary.
type Margins struct {
	Left, Bottom, Right, Top float64
}

// Record holds the geometric entries of one annotation.
//
// All fields except Subtype and HasAppearance are optional.  A nil value
// indicates that the corresponding entry is not present in the annotation
// dictionary.  Transformations never change which fields are present.
type Record struct {
	Subtype Subtype

	// Rect is the annotation rectangle (/Rect).
	Rect *rect.Rect

	// Line is used for line annotations (/L and /LE).
	Line *Line

	// Vertices is used for polygon and polyline annotations (/Vertices).
	Vertices []vec.Vec2

	// Quads is used for text markup annotations (/QuadPoints).
	Quads []Quad

	// Ink is used for ink annotations (/InkList).
	// Each element is one stroke.
	Ink [][]vec.Vec2

	// Callout is the callout line of a free text annotation (/CL).
	Callout []vec.Vec2

	// Margins gives the inner margins of the annotation (/RD).
	Margins *Margins

	// Rotation is the rotation of the annotation in degrees (/Rotate).
	Rotation *int

	// Align is the text alignment of a free text annotation (/Q).
	Align *Align

	// HasAppearance is true if the annotation has a cached appearance
	// stream (/AP).  Transformations clear this field, to indicate that the
	// appearance needs to be regenerated from the new geometry.
	HasAppearance bool
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	res := &Record{
		Subtype:       r.Subtype,
		Vertices:      slices.Clone(r.Vertices),
		Quads:         slices.Clone(r.Quads),
		Callout:       slices.Clone(r.Callout),
		HasAppearance: r.HasAppearance,
	}
	if r.Rect != nil {
		rect := *r.Rect
		res.Rect = &rect
	}
	if r.Line != nil {
		line := *r.Line
		if line.EndStyles != nil {
			styles := *line.EndStyles
			line.EndStyles = &styles
		}
		res.Line = &line
	}
	if r.Ink != nil {
		res.Ink = make([][]vec.Vec2, len(r.Ink))
		for i, stroke := range r.Ink {
			res.Ink[i] = slices.Clone(stroke)
		}
	}
	if r.Margins != nil {
		m := *r.Margins
		res.Margins = &m
	}
	if r.Rotation != nil {
		rot := *r.Rotation
		res.Rotation = &rot
	}
	if r.Align != nil {
		a := *r.Align
		res.Align = &a
	}
	return res
}
