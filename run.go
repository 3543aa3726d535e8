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
	"context"
	"fmt"
)

// Document gives access to the annotations of a document, page by page.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// Page returns the page size and the annotations of page pageNo.
	// Pages are numbered starting from 0.  A page without annotations
	// is represented by a PageData with an empty Annots list.
	Page(pageNo int) (*PageData, error)

	// Update stores the transformed annotations of page pageNo.  Annotations
	// with a non-nil Err field have not been changed.
	Update(pageNo int, data *PageData) error
}

// PageData holds the annotations of one page.
type PageData struct {
	Size   Page
	Annots []Annot
}

// Annot is one entry in the annotation list of a page.
type Annot struct {
	// Record is the decoded annotation.  This is nil if the annotation
	// could not be decoded.
	Record *Record

	// Err records why the annotation could not be decoded or
	// transformed.
	Err error
}

// Outcome is the result of processing one annotation.
type Outcome struct {
	Page    int // zero-based page number
	Index   int // position in the annotation list of the page
	Subtype Subtype
	Err     error
}

func (o Outcome) String() string {
	subtype := string(o.Subtype)
	if subtype == "" {
		subtype = "unknown"
	}
	s := fmt.Sprintf("page %d, annotation %d (%s)", o.Page+1, o.Index+1, subtype)
	if o.Err != nil {
		s += ": " + o.Err.Error()
	}
	return s
}

// Report collects the outcomes of a run.
type Report struct {
	Outcomes []Outcome
}

// Processed returns the number of annotations which were transformed
// successfully.
func (r *Report) Processed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes of all annotations which could not be
// transformed.
func (r *Report) Failed() []Outcome {
	var res []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			res = append(res, o)
		}
	}
	return res
}

// Run mirrors all annotations of a document.
//
// The pages are processed in order.  Each annotation is transformed
// independently, and failures are recorded in the returned report without
// stopping the run.  An error is only returned if the document itself
// cannot be read or updated, or if ctx is cancelled.  In this case the
// document may be partially updated and must not be saved.
func (e *Engine) Run(ctx context.Context, doc Document) (*Report, error) {
	rep := &Report{}
	n := doc.NumPages()
	for pageNo := range n {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		data, err := doc.Page(pageNo)
		if err != nil {
			return rep, fmt.Errorf("page %d: %w", pageNo+1, err)
		}
		if data == nil || len(data.Annots) == 0 {
			continue
		}

		for i := range data.Annots {
			a := &data.Annots[i]
			o := Outcome{Page: pageNo, Index: i}
			if a.Record != nil {
				o.Subtype = a.Record.Subtype
			}
			switch {
			case a.Err != nil:
				// decoding failed, leave the annotation alone
			case a.Record == nil:
				a.Err = errNoRecord
			default:
				a.Err = e.transform(a.Record, data.Size, pageNo, i)
			}
			o.Err = a.Err
			rep.Outcomes = append(rep.Outcomes, o)
		}

		err = doc.Update(pageNo, data)
		if err != nil {
			return rep, fmt.Errorf("page %d: %w", pageNo+1, err)
		}
	}
	return rep, nil
}
