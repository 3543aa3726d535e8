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

// EventKind identifies the step of a transformation reported by an [Event].
type EventKind int

const (
	EventRect       EventKind = iota + 1 // /Rect was mirrored
	EventLine                            // /L was mirrored
	EventLineSwap                        // line endpoints were exchanged
	EventVertices                        // /Vertices were mirrored
	EventReverse                         // a point sequence was reversed
	EventQuads                           // /QuadPoints were mirrored
	EventInk                             // /InkList was mirrored
	EventCallout                         // /CL was mirrored
	EventMargins                         // /RD was mirrored
	EventRotation                        // /Rotate was changed
	EventAlign                           // /Q was changed
	EventAppearance                      // the appearance stream was invalidated
	EventSkip                            // an entry implied by the subtype is missing
)

func (k EventKind) String() string {
	switch k {
	case EventRect:
		return "rect"
	case EventLine:
		return "line"
	case EventLineSwap:
		return "line-swap"
	case EventVertices:
		return "vertices"
	case EventReverse:
		return "reverse"
	case EventQuads:
		return "quads"
	case EventInk:
		return "ink"
	case EventCallout:
		return "callout"
	case EventMargins:
		return "margins"
	case EventRotation:
		return "rotation"
	case EventAlign:
		return "align"
	case EventAppearance:
		return "appearance"
	case EventSkip:
		return "skip"
	default:
		return "EventKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Event describes one step in the transformation of an annotation.
// Events are passed to [Engine.Trace], if set.
type Event struct {
	// Page is the zero-based page number, or -1 if the annotation
	// was transformed outside of [Engine.Run].
	Page int

	// Index is the position of the annotation in the annotation list
	// of the page, or -1.
	Index int

	Subtype Subtype
	Kind    EventKind

	// Detail is a short, human-readable description of the change.
	Detail string
}
