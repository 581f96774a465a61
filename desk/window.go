// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/window.go
// Summary: Floating window state, resize edges and hit regions.

package desk

import "strings"

// Window is a floating frame embedding the page of a window-mode shortcut.
// Its ID is the originating widget's ID.
type Window struct {
	ID              string
	URL             string
	Title           string
	Icon            string
	IconText        string
	BackgroundColor string
	Position        Point
	Size            Size
	Minimized       bool
	Maximized       bool
	ZIndex          int
}

// Frame returns the rectangle the window occupies on screen. A maximized
// window fills the viewport while its stored geometry is kept for restore.
func (w *Window) Frame(viewport Size) Rect {
	if w.Maximized {
		return Rect{W: viewport.Width, H: viewport.Height}
	}
	return RectAt(w.Position, w.Size)
}

// Edge is a bit set of window edges grabbed by a resize gesture.
type Edge uint8

const (
	EdgeN Edge = 1 << iota
	EdgeS
	EdgeE
	EdgeW
)

// ParseEdges converts a direction string such as "se" or "nw" into edges.
func ParseEdges(dir string) Edge {
	var e Edge
	for _, r := range strings.ToLower(dir) {
		switch r {
		case 'n':
			e |= EdgeN
		case 's':
			e |= EdgeS
		case 'e':
			e |= EdgeE
		case 'w':
			e |= EdgeW
		}
	}
	return e
}

// Has reports whether all edges in other are set.
func (e Edge) Has(other Edge) bool { return e&other == other && other != 0 }

func (e Edge) String() string {
	var b strings.Builder
	if e&EdgeN != 0 {
		b.WriteByte('n')
	}
	if e&EdgeS != 0 {
		b.WriteByte('s')
	}
	if e&EdgeE != 0 {
		b.WriteByte('e')
	}
	if e&EdgeW != 0 {
		b.WriteByte('w')
	}
	return b.String()
}

// Region identifies the part of a window under the pointer.
type Region int

const (
	RegionNone Region = iota
	RegionContent
	RegionTitle
	RegionEdge
	RegionMinimize
	RegionMaximize
	RegionClose
)

func (r Region) String() string {
	switch r {
	case RegionContent:
		return "content"
	case RegionTitle:
		return "title"
	case RegionEdge:
		return "edge"
	case RegionMinimize:
		return "minimize"
	case RegionMaximize:
		return "maximize"
	case RegionClose:
		return "close"
	default:
		return "none"
	}
}

// Hit is the result of a window hit test.
type Hit struct {
	WindowID string
	Region   Region
	Edges    Edge
}

// Window chrome in shell pixels.
const (
	TitleBarHeight   = 36
	TitleButtonWidth = 28
	ResizeHandle     = 4
	CornerHandle     = 16
)

// regionAt classifies p against a window frame. Edges are only reported for
// windows that are not maximized.
func regionAt(frame Rect, p Point, maximized bool, handles Handles) (Region, Edge) {
	if !frame.Contains(p) {
		return RegionNone, 0
	}
	if !maximized {
		var edges Edge
		cornerW := max(CornerHandle, handles.X)
		cornerH := max(CornerHandle, handles.Y)
		if p.X >= frame.Right()-cornerW && p.Y >= frame.Bottom()-cornerH {
			edges = EdgeS | EdgeE
		}
		if p.Y < frame.Y+handles.Y {
			edges |= EdgeN
		}
		if p.Y >= frame.Bottom()-handles.Y {
			edges |= EdgeS
		}
		if p.X < frame.X+handles.X {
			edges |= EdgeW
		}
		if p.X >= frame.Right()-handles.X {
			edges |= EdgeE
		}
		if edges != 0 {
			return RegionEdge, edges
		}
	}
	if p.Y < frame.Y+TitleBarHeight {
		fromRight := frame.Right() - p.X
		switch {
		case fromRight <= TitleButtonWidth:
			return RegionClose, 0
		case fromRight <= 2*TitleButtonWidth:
			return RegionMaximize, 0
		case fromRight <= 3*TitleButtonWidth:
			return RegionMinimize, 0
		}
		return RegionTitle, 0
	}
	return RegionContent, 0
}
