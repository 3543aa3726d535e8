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

package pdfdoc

import (
	"fmt"
	"maps"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/annotflip"
)

// Decode extracts the geometric entries of an annotation dictionary.
//
// Entries which are not mirrored for the given annotation type are not
// read, so that a malformed entry which is not used does not prevent the
// annotation from being processed.
func Decode(r pdf.Getter, dict pdf.Dict) (*annotflip.Record, error) {
	subtype, err := pdf.GetName(r, dict["Subtype"])
	if err != nil {
		return nil, malformed("Subtype", err)
	}
	rec := &annotflip.Record{
		Subtype: annotflip.Subtype(subtype),
	}

	// Rect (required)
	if _, ok := dict["Rect"]; ok {
		box, err := pdf.GetRectangle(r, dict["Rect"])
		if err != nil {
			return nil, malformed("Rect", err)
		}
		if box != nil {
			rec.Rect = &rect.Rect{LLx: box.LLx, LLy: box.LLy, URx: box.URx, URy: box.URy}
		}
	}

	// QuadPoints (any subtype)
	if coords, err := getCoords(r, dict, "QuadPoints"); err != nil {
		return nil, err
	} else if rec.Quads, err = annotflip.QuadsFromCoords(coords); err != nil {
		return nil, err
	}

	switch rec.Subtype {
	case annotflip.SubtypeLine:
		if err := decodeLine(r, dict, rec); err != nil {
			return nil, err
		}

	case annotflip.SubtypePolygon, annotflip.SubtypePolyLine:
		coords, err := getCoords(r, dict, "Vertices")
		if err != nil {
			return nil, err
		}
		rec.Vertices, err = annotflip.PointsFromCoords("Vertices", coords)
		if err != nil {
			return nil, err
		}

	case annotflip.SubtypeInk:
		if err := decodeInk(r, dict, rec); err != nil {
			return nil, err
		}

	case annotflip.SubtypeFreeText:
		coords, err := getCoords(r, dict, "CL")
		if err != nil {
			return nil, err
		}
		rec.Callout, err = annotflip.PointsFromCoords("CL", coords)
		if err != nil {
			return nil, err
		}
	}

	// RD (optional; PDF 1.5)
	if rec.Subtype.HasMargins() {
		coords, err := getCoords(r, dict, "RD")
		if err != nil {
			return nil, err
		}
		if coords != nil {
			if len(coords) != 4 {
				return nil, malformed("RD", fmt.Errorf("expected 4 numbers, got %d", len(coords)))
			}
			rec.Margins = &annotflip.Margins{
				Left:   coords[0],
				Bottom: coords[1],
				Right:  coords[2],
				Top:    coords[3],
			}
		}
	}

	if rec.Subtype.HasRotation() {
		if obj, ok := dict["Rotate"]; ok {
			rot, err := pdf.GetNumber(r, obj)
			if err != nil {
				return nil, malformed("Rotate", err)
			}
			deg := int(math.Round(float64(rot)))
			rec.Rotation = &deg
		}
		if obj, ok := dict["Q"]; ok {
			q, err := getInteger(r, obj)
			if err != nil {
				return nil, malformed("Q", err)
			}
			align := annotflip.Align(q)
			rec.Align = &align
		}
	}

	ap, err := pdf.Resolve(r, dict["AP"])
	if err != nil {
		return nil, malformed("AP", err)
	}
	rec.HasAppearance = ap != nil

	return rec, nil
}

func decodeLine(r pdf.Getter, dict pdf.Dict, rec *annotflip.Record) error {
	coords, err := getCoords(r, dict, "L")
	if err != nil || coords == nil {
		return err
	}
	rec.Line, err = annotflip.LineFromCoords(coords)
	if err != nil {
		return err
	}

	// LE (optional; PDF 1.4)
	le, err := pdf.GetArray(r, dict["LE"])
	if err != nil {
		return malformed("LE", err)
	}
	if len(le) == 2 {
		var styles [2]annotflip.LineEndingStyle
		for i, obj := range le {
			name, err := pdf.GetName(r, obj)
			if err != nil {
				return malformed("LE", err)
			}
			styles[i] = annotflip.LineEndingStyle(name)
		}
		rec.Line.EndStyles = &styles
	}
	return nil
}

func decodeInk(r pdf.Getter, dict pdf.Dict, rec *annotflip.Record) error {
	inkList, err := pdf.GetArray(r, dict["InkList"])
	if err != nil {
		return malformed("InkList", err)
	}
	if inkList == nil {
		return nil
	}

	strokes := make([][]vec.Vec2, len(inkList))
	for i, obj := range inkList {
		coords, err := getFloatArray(r, obj)
		if err != nil {
			return malformed("InkList", err)
		}
		if coords == nil {
			coords = []float64{}
		}
		strokes[i], err = annotflip.PointsFromCoords("InkList", coords)
		if err != nil {
			return err
		}
	}
	rec.Ink = strokes
	return nil
}

// getCoords reads an optional array of numbers.  The result is nil if the
// entry is absent or null.
func getCoords(r pdf.Getter, dict pdf.Dict, key pdf.Name) ([]float64, error) {
	obj, ok := dict[key]
	if !ok {
		return nil, nil
	}
	coords, err := getFloatArray(r, obj)
	if err != nil {
		return nil, malformed(string(key), err)
	}
	return coords, nil
}

// getFloatArray reads an array of numbers.  The result is nil if obj is
// null.
func getFloatArray(r pdf.Getter, obj pdf.Object) ([]float64, error) {
	a, err := pdf.GetArray(r, obj)
	if err != nil || a == nil {
		return nil, err
	}
	res := make([]float64, len(a))
	for i, elem := range a {
		x, err := pdf.GetNumber(r, elem)
		if err != nil {
			return nil, err
		}
		res[i] = float64(x)
	}
	return res, nil
}

// getInteger reads an integer.  Unlike pdf.GetInteger, real numbers are
// not rounded but rejected.
func getInteger(r pdf.Getter, obj pdf.Object) (pdf.Integer, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	x, ok := obj.(pdf.Integer)
	if !ok {
		return 0, fmt.Errorf("expected integer but got %T", obj)
	}
	return x, nil
}

func malformed(field string, err error) error {
	return &annotflip.MalformedFieldError{Field: field, Err: err}
}

// Encode returns a copy of the annotation dictionary orig, with the
// geometric entries replaced by the values from rec.
//
// Only entries which are present in rec are written, all other entries are
// copied unchanged.  If rec.HasAppearance is false, the /AP entry is
// removed so that PDF viewers regenerate the appearance of the annotation.
func Encode(rec *annotflip.Record, orig pdf.Dict) pdf.Dict {
	dict := maps.Clone(orig)
	if dict == nil {
		dict = pdf.Dict{}
	}

	if r := rec.Rect; r != nil {
		dict["Rect"] = numbers([]float64{r.LLx, r.LLy, r.URx, r.URy})
	}
	if l := rec.Line; l != nil {
		dict["L"] = numbers(l.Coords())
		if l.EndStyles != nil {
			dict["LE"] = pdf.Array{pdf.Name(l.EndStyles[0]), pdf.Name(l.EndStyles[1])}
		}
	}
	if rec.Vertices != nil {
		dict["Vertices"] = numbers(annotflip.Coords(rec.Vertices))
	}
	if rec.Quads != nil {
		dict["QuadPoints"] = numbers(annotflip.QuadCoords(rec.Quads))
	}
	if rec.Ink != nil {
		inkList := make(pdf.Array, len(rec.Ink))
		for i, stroke := range rec.Ink {
			inkList[i] = numbers(annotflip.Coords(stroke))
		}
		dict["InkList"] = inkList
	}
	if rec.Callout != nil {
		dict["CL"] = numbers(annotflip.Coords(rec.Callout))
	}
	if m := rec.Margins; m != nil {
		dict["RD"] = numbers([]float64{m.Left, m.Bottom, m.Right, m.Top})
	}
	if rec.Rotation != nil {
		dict["Rotate"] = pdf.Integer(*rec.Rotation)
	}
	if rec.Align != nil {
		dict["Q"] = pdf.Integer(*rec.Align)
	}
	if !rec.HasAppearance {
		delete(dict, "AP")
	}

	return dict
}

func numbers(xx []float64) pdf.Array {
	res := make(pdf.Array, len(xx))
	for i, x := range xx {
		res[i] = pdf.Number(x)
	}
	return res
}
