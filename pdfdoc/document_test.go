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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/annotflip"
)

// testObjects are the objects of a one-page PDF file.  The media box is
// inherited from the page tree root.
var testObjects = []string{
	"<< /Type /Catalog /Pages 2 0 R >>",
	"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 200 100] >>",
	"<< /Type /Page /Parent 2 0 R /Annots [4 0 R 5 0 R << /Type /Annot /Subtype /Square /Rect [0 0 1 1] >> 6 0 R] >>",
	"<< /Type /Annot /Subtype /Square /Rect [10 20 30 40] /AP << /N << >> >> >>",
	"<< /Type /Annot /Subtype /Line /Rect [0 0 200 100] /L [10 10 50 10] /LE [/OpenArrow /None] >>",
	"<< /Type /Annot /Subtype /Highlight /Rect [0 0 10 10] /QuadPoints [1 2 3] >>",
}

// writeTestFile writes a PDF file containing the given objects, numbered
// consecutively starting from 1.  The first object is the catalog.
func writeTestFile(t *testing.T, objects []string) string {
	t.Helper()

	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.7\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefPos := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offs := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", offs)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	fmt.Fprintf(buf, "startxref\n%d\n%%%%EOF\n", xrefPos)

	fname := filepath.Join(t.TempDir(), "in.pdf")
	err := os.WriteFile(fname, buf.Bytes(), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestDocument(t *testing.T) {
	in := writeTestFile(t, testObjects)
	doc, err := Open(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	if n := doc.NumPages(); n != 1 {
		t.Fatalf("expected 1 page, got %d", n)
	}

	e := &annotflip.Engine{Flip: annotflip.Flip{Horizontal: true}}
	rep, err := e.Run(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if n := rep.Processed(); n != 2 {
		t.Errorf("expected 2 processed annotations, got %d", n)
	}
	failed := rep.Failed()
	if len(failed) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failed))
	}
	if !errors.Is(failed[0].Err, errDirect) || failed[0].Index != 2 {
		t.Errorf("unexpected failure %v", failed[0])
	}
	var malformed *annotflip.MalformedFieldError
	if !errors.As(failed[1].Err, &malformed) || malformed.Field != "QuadPoints" {
		t.Errorf("unexpected failure %v", failed[1])
	}
	if n := doc.Changed(); n != 2 {
		t.Errorf("expected 2 changed annotations, got %d", n)
	}

	out := filepath.Join(t.TempDir(), "out.pdf")
	err = doc.Write(out)
	if err != nil {
		t.Fatal(err)
	}

	r, err := pdf.Open(out, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	pages, err := pagetree.FindPages(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	pageDict, err := pdf.GetDict(r, pages[0])
	if err != nil {
		t.Fatal(err)
	}
	annots, err := pdf.GetArray(r, pageDict["Annots"])
	if err != nil {
		t.Fatal(err)
	}
	if len(annots) != 4 {
		t.Fatalf("expected 4 annotations, got %d", len(annots))
	}

	square, err := pdf.GetDict(r, annots[0])
	if err != nil {
		t.Fatal(err)
	}
	box, err := pdf.GetRectangle(r, square["Rect"])
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(&pdf.Rectangle{LLx: 170, LLy: 20, URx: 190, URy: 40}, box); d != "" {
		t.Errorf("unexpected square /Rect (-want +got):\n%s", d)
	}
	if _, hasAP := square["AP"]; hasAP {
		t.Error("appearance stream was not removed")
	}

	line, err := pdf.GetDict(r, annots[1])
	if err != nil {
		t.Fatal(err)
	}
	l, err := getFloatArray(r, line["L"])
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{190, 10, 150, 10}, l); d != "" {
		t.Errorf("unexpected line /L (-want +got):\n%s", d)
	}

	// failed annotations are copied unchanged
	highlight, err := pdf.GetDict(r, annots[3])
	if err != nil {
		t.Fatal(err)
	}
	qp, err := getFloatArray(r, highlight["QuadPoints"])
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{1, 2, 3}, qp); d != "" {
		t.Errorf("unexpected /QuadPoints (-want +got):\n%s", d)
	}
}

func TestPageSize(t *testing.T) {
	in := writeTestFile(t, testObjects)
	doc, err := Open(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	data, err := doc.Page(0)
	if err != nil {
		t.Fatal(err)
	}
	if data.Size != (annotflip.Page{Width: 200, Height: 100}) {
		t.Errorf("unexpected page size %v", data.Size)
	}
	if len(data.Annots) != 4 {
		t.Errorf("expected 4 annotations, got %d", len(data.Annots))
	}

	if _, err := doc.Page(1); err == nil {
		t.Error("expected an error for a missing page")
	}
}

func TestUpdateMismatch(t *testing.T) {
	in := writeTestFile(t, testObjects)
	doc, err := Open(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	err = doc.Update(0, &annotflip.PageData{})
	if err == nil {
		t.Error("expected an error for a page which was not read")
	}

	data, err := doc.Page(0)
	if err != nil {
		t.Fatal(err)
	}
	data.Annots = data.Annots[:1]
	err = doc.Update(0, data)
	if err == nil {
		t.Error("expected an error for a wrong number of annotations")
	}
}

func TestRepeatedAnnotation(t *testing.T) {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] /Annots [4 0 R 4 0 R] >>",
		"<< /Type /Annot /Subtype /Square /Rect [10 20 30 40] >>",
	}
	in := writeTestFile(t, objects)
	doc, err := Open(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	e := &annotflip.Engine{Flip: annotflip.Flip{Horizontal: true}}
	rep, err := e.Run(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if n := rep.Processed(); n != 1 {
		t.Errorf("expected 1 processed annotation, got %d", n)
	}
	failed := rep.Failed()
	if len(failed) != 1 || failed[0].Index != 1 || !errors.Is(failed[0].Err, errRepeated) {
		t.Fatalf("unexpected failures %v", failed)
	}
	if n := doc.Changed(); n != 1 {
		t.Errorf("expected 1 changed annotation, got %d", n)
	}

	out := filepath.Join(t.TempDir(), "out.pdf")
	err = doc.Write(out)
	if err != nil {
		t.Fatal(err)
	}
	r, err := pdf.Open(out, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	pages, err := pagetree.FindPages(r)
	if err != nil {
		t.Fatal(err)
	}
	pageDict, err := pdf.GetDict(r, pages[0])
	if err != nil {
		t.Fatal(err)
	}
	annots, err := pdf.GetArray(r, pageDict["Annots"])
	if err != nil {
		t.Fatal(err)
	}
	square, err := pdf.GetDict(r, annots[0])
	if err != nil {
		t.Fatal(err)
	}
	box, err := getFloatArray(r, square["Rect"])
	if err != nil {
		t.Fatal(err)
	}
	// mirrored exactly once
	if d := cmp.Diff([]float64{170, 20, 190, 40}, box); d != "" {
		t.Errorf("unexpected /Rect (-want +got):\n%s", d)
	}
}

func TestPageSizeOffset(t *testing.T) {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [10 20 210 120] /Annots [4 0 R] >>",
		"<< /Type /Annot /Subtype /Square /Rect [10 20 30 40] >>",
	}
	in := writeTestFile(t, objects)
	doc, err := Open(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	data, err := doc.Page(0)
	if err != nil {
		t.Fatal(err)
	}
	// the box is 200x100, but the midlines are at x = 110 and y = 70
	if data.Size != (annotflip.Page{Width: 220, Height: 140}) {
		t.Errorf("unexpected page size %v", data.Size)
	}

	e := &annotflip.Engine{Flip: annotflip.Flip{Horizontal: true, Vertical: true}}
	rec := data.Annots[0].Record
	err = e.Transform(rec, data.Size)
	if err != nil {
		t.Fatal(err)
	}
	want := &rect.Rect{LLx: 190, LLy: 100, URx: 210, URy: 120}
	if d := cmp.Diff(want, rec.Rect); d != "" {
		t.Errorf("unexpected rectangle (-want +got):\n%s", d)
	}
}
