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

// Package annotflip mirrors the geometry of PDF annotations.
//
// Given the size of a page and a [Flip], the functions in this package
// rewrite the geometric entries of an annotation (the /Rect rectangle, line
// endpoints, polygon vertices, quad points, ink strokes, rotation and text
// alignment) so that the annotation ends up in the mirrored position on the
// mirrored page.  Naive reflection of every coordinate is not enough: line
// endings, polygon winding and the reading order of text markup quads depend
// on the order in which points are listed, and this order is corrected after
// the reflection.
//
// The package works on in-memory [Record] values only.  Reading annotations
// from a PDF file and writing them back is done by the
// [seehuhn.de/go/annotflip/pdfdoc] package.
//
// A single annotation is transformed using [Engine.Transform]:
//
//	e := &annotflip.Engine{Flip: annotflip.Flip{Horizontal: true}}
//	err := e.Transform(rec, annotflip.Page{Width: 595, Height: 842})
//
// A whole document is processed using [Engine.Run], which reports the
// outcome for every annotation separately.  A failure to transform one
// annotation does not stop the processing of the others.
package annotflip
