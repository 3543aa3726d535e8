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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Engine mirrors annotations.
//
// An Engine is not modified by its methods and can be used
// concurrently from several goroutines.
type Engine struct {
	Flip Flip

	// Trace, if non-nil, is called for every step of every transformation.
	Trace func(Event)
}

// Transform mirrors the geometry of one annotation on a page of size p.
//
// Which entries are changed depends on the entries present in rec, and for
// some entries on rec.Subtype:
//   - Rect and Quads are mirrored for all subtypes.
//   - Line is only used for line annotations.
//   - Vertices are only used for polygon and polyline annotations.
//   - Ink is only used for ink annotations.
//   - Rotation and Align are only used for free text, text and stamp
//     annotations.
//   - Callout is only used for free text annotations.
//   - Margins are used for square, circle, caret, free text, polygon and
//     polyline annotations.
//
// HasAppearance is always cleared.
//
// If an error is returned, rec is left unchanged.
func (e *Engine) Transform(rec *Record, p Page) error {
	return e.transform(rec, p, -1, -1)
}

func (e *Engine) transform(rec *Record, p Page, pageNo, index int) error {
	if err := p.Check(); err != nil {
		return err
	}
	if err := checkFinite(rec); err != nil {
		return err
	}

	t := &tracer{
		trace:   e.Trace,
		page:    pageNo,
		index:   index,
		subtype: rec.Subtype,
	}
	f := e.Flip
	out := rec.Clone()

	if out.Rect != nil {
		r := ReflectRect(*out.Rect, p, f)
		t.emit(EventRect, "%s -> %s", fmtRect(*out.Rect), fmtRect(r))
		out.Rect = &r
	}

	if out.Subtype == SubtypeLine {
		if out.Line != nil {
			l, swapped := ResolveLine(*out.Line, p, f)
			t.emit(EventLine, "%s -> %s", fmtLine(out.Line), fmtLine(&l))
			if swapped {
				t.emit(EventLineSwap, "endpoints exchanged")
			}
			out.Line = &l
		} else {
			t.emit(EventSkip, "no /L entry")
		}
	}

	if out.Subtype == SubtypePolygon || out.Subtype == SubtypePolyLine {
		if out.Vertices != nil {
			pts, reversed := ReorderSequence(out.Vertices, p, f)
			t.emit(EventVertices, "%d vertices", len(pts))
			if reversed {
				t.emit(EventReverse, "vertex order reversed")
			}
			out.Vertices = pts
		} else {
			t.emit(EventSkip, "no /Vertices entry")
		}
	}

	if out.Quads != nil {
		quads := make([]Quad, len(out.Quads))
		for i, q := range out.Quads {
			quads[i] = ReorderQuad(q, p, f)
		}
		t.emit(EventQuads, "%d quadrilaterals", len(quads))
		out.Quads = quads
	}

	if out.Subtype == SubtypeInk {
		if out.Ink != nil {
			strokes := make([][]vec.Vec2, len(out.Ink))
			for i, stroke := range out.Ink {
				pts, reversed := ReorderSequence(stroke, p, f)
				if reversed {
					t.emit(EventReverse, "stroke %d reversed", i)
				}
				strokes[i] = pts
			}
			t.emit(EventInk, "%d strokes", len(strokes))
			out.Ink = strokes
		} else {
			t.emit(EventSkip, "no /InkList entry")
		}
	}

	if out.Subtype.HasRotation() {
		if out.Rotation != nil {
			r := MapRotation(*out.Rotation, f)
			t.emit(EventRotation, "%d -> %d", *out.Rotation, r)
			out.Rotation = &r
		}
		if out.Align != nil {
			a := MapAlign(*out.Align, f)
			if a != *out.Align {
				t.emit(EventAlign, "%s -> %s", *out.Align, a)
			}
			out.Align = &a
		}
	}

	if out.Subtype == SubtypeFreeText && out.Callout != nil {
		out.Callout = ReflectPoints(out.Callout, p, f)
		t.emit(EventCallout, "%d points", len(out.Callout))
	}

	if out.Margins != nil && out.Subtype.HasMargins() {
		m := ReflectMargins(*out.Margins, f)
		t.emit(EventMargins, "%v -> %v", *out.Margins, m)
		out.Margins = &m
	}

	if out.HasAppearance {
		t.emit(EventAppearance, "appearance stream invalidated")
		out.HasAppearance = false
	}

	*rec = *out
	return nil
}

// checkFinite makes sure that all coordinates in rec are finite numbers.
func checkFinite(rec *Record) error {
	bad := func(field string) error {
		return &MalformedFieldError{Field: field, Err: errNotFinite}
	}

	if r := rec.Rect; r != nil {
		if !isFinite(r.LLx) || !isFinite(r.LLy) || !isFinite(r.URx) || !isFinite(r.URy) {
			return bad("Rect")
		}
	}
	if l := rec.Line; l != nil && !finitePoints([]vec.Vec2{l.P0, l.P1}) {
		return bad("L")
	}
	if !finitePoints(rec.Vertices) {
		return bad("Vertices")
	}
	for _, q := range rec.Quads {
		if !finitePoints(q[:]) {
			return bad("QuadPoints")
		}
	}
	for _, stroke := range rec.Ink {
		if !finitePoints(stroke) {
			return bad("InkList")
		}
	}
	if !finitePoints(rec.Callout) {
		return bad("CL")
	}
	if m := rec.Margins; m != nil {
		if !isFinite(m.Left) || !isFinite(m.Bottom) || !isFinite(m.Right) || !isFinite(m.Top) {
			return bad("RD")
		}
	}
	return nil
}

type tracer struct {
	trace   func(Event)
	page    int
	index   int
	subtype Subtype
}

func (t *tracer) emit(kind EventKind, format string, args ...any) {
	if t.trace == nil {
		return
	}
	t.trace(Event{
		Page:    t.page,
		Index:   t.index,
		Subtype: t.subtype,
		Kind:    kind,
		Detail:  fmt.Sprintf(format, args...),
	})
}

func fmtRect(r rect.Rect) string {
	return fmt.Sprintf("[%g %g %g %g]", r.LLx, r.LLy, r.URx, r.URy)
}

func fmtLine(l *Line) string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", l.P0.X, l.P0.Y, l.P1.X, l.P1.Y)
}
