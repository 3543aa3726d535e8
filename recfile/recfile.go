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

// Package recfile reads and writes annotation records as YAML.
//
// A record file is a plain text stand-in for a PDF document: it lists the
// page sizes and, for every annotation, the geometric entries of the
// annotation dictionary.  Coordinate lists use the same flat layout as in
// PDF files.
//
//	pages:
//	  - width: 612
//	    height: 792
//	    annotations:
//	      - subtype: Highlight
//	        rect: [10, 40, 40, 50]
//	        quad_points: [10, 50, 40, 50, 10, 40, 40, 40]
//	        appearance: true
package recfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotflip"
)

// File is the contents of a record file.
type File struct {
	Pages []*Page `yaml:"pages"`
}

// Page describes one page of a record file.
type Page struct {
	Width       float64       `yaml:"width"`
	Height      float64       `yaml:"height"`
	Annotations []*Annotation `yaml:"annotations,omitempty"`
}

// Annotation holds the geometric entries of one annotation.
type Annotation struct {
	Subtype     string      `yaml:"subtype"`
	Rect        []float64   `yaml:"rect,flow,omitempty"`
	Line        []float64   `yaml:"line,flow,omitempty"`
	LineEndings []string    `yaml:"line_endings,flow,omitempty"`
	Vertices    []float64   `yaml:"vertices,flow,omitempty"`
	QuadPoints  []float64   `yaml:"quad_points,flow,omitempty"`
	InkList     [][]float64 `yaml:"ink_list,flow,omitempty"`
	Callout     []float64   `yaml:"callout,flow,omitempty"`
	RD          []float64   `yaml:"rd,flow,omitempty"`
	Rotate      *int        `yaml:"rotate,omitempty"`
	Align       *int        `yaml:"align,omitempty"`
	Appearance  bool        `yaml:"appearance,omitempty"`
}

var _ annotflip.Document = (*File)(nil)

// Read decodes a record file.
func Read(r io.Reader) (*File, error) {
	f := &File{}
	err := yaml.NewDecoder(r).Decode(f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return f, nil
}

// Load reads the named record file.
func Load(fname string) (*File, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd)
}

// Write encodes the record file as YAML.
func (f *File) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(f)
	if err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the record file to the named file.
// If an error occurs, the output file is removed.
func (f *File) Save(fname string) (err error) {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := fd.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(fname)
		}
	}()
	return f.Write(fd)
}

// NumPages returns the number of pages in the file.
func (f *File) NumPages() int {
	return len(f.Pages)
}

// Page decodes the annotations on the given page.
func (f *File) Page(pageNo int) (*annotflip.PageData, error) {
	if pageNo < 0 || pageNo >= len(f.Pages) {
		return nil, fmt.Errorf("page %d not found", pageNo)
	}
	p := f.Pages[pageNo]
	if p == nil {
		return nil, nil
	}

	data := &annotflip.PageData{
		Size: annotflip.Page{Width: p.Width, Height: p.Height},
	}
	for _, a := range p.Annotations {
		if a == nil {
			data.Annots = append(data.Annots, annotflip.Annot{})
			continue
		}
		rec, err := a.Decode()
		data.Annots = append(data.Annots, annotflip.Annot{Record: rec, Err: err})
	}
	return data, nil
}

// Update replaces the annotations of a page with the transformed records.
// Annotations with a non-nil Err are left unchanged.
func (f *File) Update(pageNo int, data *annotflip.PageData) error {
	if pageNo < 0 || pageNo >= len(f.Pages) || f.Pages[pageNo] == nil {
		return fmt.Errorf("page %d not found", pageNo)
	}
	p := f.Pages[pageNo]
	if len(data.Annots) != len(p.Annotations) {
		return fmt.Errorf("page %d: expected %d annotations, got %d",
			pageNo, len(p.Annotations), len(data.Annots))
	}
	for i, a := range data.Annots {
		if a.Err != nil || a.Record == nil {
			continue
		}
		p.Annotations[i] = Encode(a.Record)
	}
	return nil
}

// Decode converts the annotation into a record.
func (a *Annotation) Decode() (*annotflip.Record, error) {
	rec := &annotflip.Record{
		Subtype:       annotflip.Subtype(a.Subtype),
		HasAppearance: a.Appearance,
	}

	if a.Rect != nil {
		if len(a.Rect) != 4 {
			return nil, malformed("Rect", len(a.Rect))
		}
		rec.Rect = &rect.Rect{
			LLx: math.Min(a.Rect[0], a.Rect[2]),
			LLy: math.Min(a.Rect[1], a.Rect[3]),
			URx: math.Max(a.Rect[0], a.Rect[2]),
			URy: math.Max(a.Rect[1], a.Rect[3]),
		}
	}

	var err error
	if a.Line != nil {
		rec.Line, err = annotflip.LineFromCoords(a.Line)
		if err != nil {
			return nil, err
		}
		if len(a.LineEndings) == 2 {
			rec.Line.EndStyles = &[2]annotflip.LineEndingStyle{
				annotflip.LineEndingStyle(a.LineEndings[0]),
				annotflip.LineEndingStyle(a.LineEndings[1]),
			}
		}
	}

	rec.Vertices, err = annotflip.PointsFromCoords("Vertices", a.Vertices)
	if err != nil {
		return nil, err
	}
	rec.Quads, err = annotflip.QuadsFromCoords(a.QuadPoints)
	if err != nil {
		return nil, err
	}
	if a.InkList != nil {
		rec.Ink = make([][]vec.Vec2, len(a.InkList))
		for i, stroke := range a.InkList {
			if stroke == nil {
				stroke = []float64{}
			}
			rec.Ink[i], err = annotflip.PointsFromCoords("InkList", stroke)
			if err != nil {
				return nil, err
			}
		}
	}
	rec.Callout, err = annotflip.PointsFromCoords("CL", a.Callout)
	if err != nil {
		return nil, err
	}

	if a.RD != nil {
		if len(a.RD) != 4 {
			return nil, malformed("RD", len(a.RD))
		}
		rec.Margins = &annotflip.Margins{
			Left:   a.RD[0],
			Bottom: a.RD[1],
			Right:  a.RD[2],
			Top:    a.RD[3],
		}
	}

	if a.Rotate != nil {
		r := *a.Rotate
		rec.Rotation = &r
	}
	if a.Align != nil {
		q := annotflip.Align(*a.Align)
		rec.Align = &q
	}

	return rec, nil
}

// Encode converts a record into its YAML form.
func Encode(rec *annotflip.Record) *Annotation {
	a := &Annotation{
		Subtype:    string(rec.Subtype),
		Appearance: rec.HasAppearance,
	}
	if r := rec.Rect; r != nil {
		a.Rect = []float64{r.LLx, r.LLy, r.URx, r.URy}
	}
	if l := rec.Line; l != nil {
		a.Line = l.Coords()
		if l.EndStyles != nil {
			a.LineEndings = []string{string(l.EndStyles[0]), string(l.EndStyles[1])}
		}
	}
	a.Vertices = annotflip.Coords(rec.Vertices)
	a.QuadPoints = annotflip.QuadCoords(rec.Quads)
	if rec.Ink != nil {
		a.InkList = make([][]float64, len(rec.Ink))
		for i, stroke := range rec.Ink {
			a.InkList[i] = annotflip.Coords(stroke)
		}
	}
	a.Callout = annotflip.Coords(rec.Callout)
	if m := rec.Margins; m != nil {
		a.RD = []float64{m.Left, m.Bottom, m.Right, m.Top}
	}
	if rec.Rotation != nil {
		r := *rec.Rotation
		a.Rotate = &r
	}
	if rec.Align != nil {
		q := int(*rec.Align)
		a.Align = &q
	}
	return a
}

func malformed(field string, n int) error {
	return &annotflip.MalformedFieldError{
		Field: field,
		Err:   fmt.Errorf("expected 4 numbers, got %d", n),
	}
}
