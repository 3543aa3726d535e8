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

// Package pdfdoc gives access to the annotations of a PDF file.
//
// A [Document] implements [annotflip.Document].  Modified annotation
// dictionaries are kept in memory until [Document.Write] is called, which
// writes a copy of the input file with the new annotations to a new file.
package pdfdoc

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"

	"seehuhn.de/go/annotflip"
)

// Document is a PDF file opened for annotation processing.
type Document struct {
	r     pdf.Getter
	close func() error

	pages []pdf.Reference

	// refs[pageNo][i] is the reference of the i-th annotation on the page,
	// or 0 if the annotation cannot be written back.
	refs    map[int][]pdf.Reference
	orig    map[pdf.Reference]pdf.Dict
	owner   map[pdf.Reference]int
	changed map[pdf.Reference]pdf.Dict
}

var _ annotflip.Document = (*Document)(nil)

var (
	errDirect     = errors.New("direct annotation dictionary")
	errInlinePage = errors.New("inline page dictionary")
	errRepeated   = errors.New("annotation listed twice on the same page")
)

// Open opens the named PDF file.  Close must be called after use.
func Open(fname string, opt *pdf.ReaderOptions) (*Document, error) {
	r, err := pdf.Open(fname, opt)
	if err != nil {
		return nil, err
	}
	doc, err := New(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	doc.close = r.Close
	return doc, nil
}

// New returns a Document which reads from r.
// The caller is responsible for closing r.
func New(r pdf.Getter) (*Document, error) {
	pages, err := pagetree.FindPages(r)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		r:       r,
		pages:   pages,
		refs:    make(map[int][]pdf.Reference),
		orig:    make(map[pdf.Reference]pdf.Dict),
		owner:   make(map[pdf.Reference]int),
		changed: make(map[pdf.Reference]pdf.Dict),
	}
	return doc, nil
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page decodes the annotations of the given page.
//
// Problems with individual annotations are reported via [annotflip.Annot.Err],
// the returned error is only used for problems which affect the whole page.
func (d *Document) Page(pageNo int) (*annotflip.PageData, error) {
	if pageNo < 0 || pageNo >= len(d.pages) {
		return nil, fmt.Errorf("page %d not found", pageNo)
	}
	pageRef := d.pages[pageNo]
	if pageRef == 0 {
		return nil, errInlinePage
	}
	pageDict, err := pdf.GetDict(d.r, pageRef)
	if err != nil {
		return nil, err
	}

	annots, err := pdf.GetArray(d.r, pageDict["Annots"])
	if err != nil {
		return nil, err
	}

	data := &annotflip.PageData{
		Size: d.pageSize(pageDict),
	}
	refs := make([]pdf.Reference, len(annots))
	onPage := make(map[pdf.Reference]bool, len(annots))
	for i, obj := range annots {
		ref, isRef := obj.(pdf.Reference)
		if !isRef {
			data.Annots = append(data.Annots, annotflip.Annot{Err: errDirect})
			continue
		}
		if onPage[ref] {
			err := fmt.Errorf("annotation %s: %w", ref, errRepeated)
			data.Annots = append(data.Annots, annotflip.Annot{Err: err})
			continue
		}
		onPage[ref] = true
		if other, seen := d.owner[ref]; seen && other != pageNo {
			err := fmt.Errorf("annotation %s is shared with page %d", ref, other)
			data.Annots = append(data.Annots, annotflip.Annot{Err: err})
			continue
		}

		dict, err := pdf.GetDict(d.r, ref)
		if err != nil {
			data.Annots = append(data.Annots, annotflip.Annot{Err: err})
			continue
		}
		rec, err := Decode(d.r, dict)
		data.Annots = append(data.Annots, annotflip.Annot{Record: rec, Err: err})
		if err != nil {
			continue
		}

		refs[i] = ref
		d.orig[ref] = dict
		d.owner[ref] = pageNo
	}
	d.refs[pageNo] = refs

	return data, nil
}

// Update stores the transformed annotations of a page.
// Annotations with a non-nil Err are left unchanged.
func (d *Document) Update(pageNo int, data *annotflip.PageData) error {
	refs, ok := d.refs[pageNo]
	if !ok {
		return fmt.Errorf("page %d was not read", pageNo)
	}
	if len(refs) != len(data.Annots) {
		return fmt.Errorf("page %d: expected %d annotations, got %d",
			pageNo, len(refs), len(data.Annots))
	}

	for i, a := range data.Annots {
		ref := refs[i]
		if a.Err != nil || a.Record == nil || ref == 0 {
			continue
		}
		d.changed[ref] = Encode(a.Record, d.orig[ref])
	}
	return nil
}

// Changed returns the number of annotation dictionaries which will be
// replaced when the document is written.
func (d *Document) Changed() int {
	return len(d.changed)
}

// Write writes a copy of the document, including all updated annotations,
// to the named file.  If an error occurs, the output file is removed.
func (d *Document) Write(fname string) (err error) {
	w, err := pdf.Create(fname, pdf.GetVersion(d.r), nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			w.Close()
			os.Remove(fname)
		}
	}()

	c := pdfcopy.NewCopier(w, d.r)

	// Redirect all modified annotations first, so that references to them
	// from page dictionaries or popup annotations point to the new versions.
	refs := slices.Sorted(maps.Keys(d.changed))
	newRefs := make([]pdf.Reference, len(refs))
	for i, ref := range refs {
		newRefs[i] = w.Alloc()
		c.Redirect(ref, newRefs[i])
	}
	for i, ref := range refs {
		dict, err := c.CopyDict(d.changed[ref])
		if err != nil {
			return fmt.Errorf("annotation %s: %w", ref, err)
		}
		err = w.Put(newRefs[i], dict)
		if err != nil {
			return err
		}
	}

	metaIn := d.r.GetMeta()
	metaOut := w.GetMeta()
	newCatalog, err := pdfcopy.CopyStruct(c, metaIn.Catalog)
	if err != nil {
		return err
	}
	metaOut.Catalog = newCatalog
	if metaIn.Info != nil {
		newInfo, err := pdfcopy.CopyStruct(c, metaIn.Info)
		if err != nil {
			return err
		}
		metaOut.Info = newInfo
	}
	metaOut.ID = metaIn.ID

	return w.Close()
}

// Close closes the underlying file.
func (d *Document) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// pageSize returns the size of the page, as given by the (possibly
// inherited) media box.  Annotations are mirrored across the centre lines of
// the media box.  If the media box is missing or invalid, the zero size is
// returned.
func (d *Document) pageSize(pageDict pdf.Dict) annotflip.Page {
	node := pageDict
	for range maxTreeDepth {
		if obj, ok := node["MediaBox"]; ok {
			box, err := pdf.GetRectangle(d.r, obj)
			if err != nil || box == nil {
				return annotflip.Page{}
			}
			return annotflip.Page{
				Width:  box.LLx + box.URx,
				Height: box.LLy + box.URy,
			}
		}

		parent, err := pdf.GetDict(d.r, node["Parent"])
		if err != nil || parent == nil {
			break
		}
		node = parent
	}
	return annotflip.Page{}
}

const maxTreeDepth = 64
