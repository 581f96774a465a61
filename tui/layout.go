// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/layout.go
// Summary: Mapping between terminal cells and shell pixel coordinates.
// Usage: A cell stands for CellW x CellH shell pixels; hit tests use cell centers.

package tui

import "nbtab/desk"

// SidebarCols is the width of the desktop switcher column.
const SidebarCols = 5

// Layout describes the screen split: sidebar on the left, one footer row at
// the bottom, desktop area elsewhere.
type Layout struct {
	CellW, CellH int
	Cols, Rows   int
}

// DesktopCols returns the width of the desktop area in cells.
func (l Layout) DesktopCols() int { return max(l.Cols-SidebarCols, 0) }

// DesktopRows returns the height of the desktop area in cells.
func (l Layout) DesktopRows() int { return max(l.Rows-1, 0) }

// FooterRow returns the row of the quote footer.
func (l Layout) FooterRow() int { return l.Rows - 1 }

// Viewport returns the desktop area in shell pixels.
func (l Layout) Viewport() desk.Size {
	return desk.Size{Width: l.DesktopCols() * l.CellW, Height: l.DesktopRows() * l.CellH}
}

// InDesktop reports whether a screen cell belongs to the desktop area.
func (l Layout) InDesktop(col, row int) bool {
	return col >= SidebarCols && col < l.Cols && row >= 0 && row < l.DesktopRows()
}

// ToShell maps a screen cell to the shell pixel at its center.
func (l Layout) ToShell(col, row int) desk.Point {
	return desk.Point{
		X: (col-SidebarCols)*l.CellW + l.CellW/2,
		Y: row*l.CellH + l.CellH/2,
	}
}

// ToShellClamped maps a cell and clamps it into the desktop area, so
// gestures dragged over the sidebar or footer keep tracking.
func (l Layout) ToShellClamped(col, row int) desk.Point {
	col = min(max(col, SidebarCols), max(l.Cols-1, SidebarCols))
	row = min(max(row, 0), max(l.DesktopRows()-1, 0))
	return l.ToShell(col, row)
}

// CellRect is a rectangle in screen cells.
type CellRect struct {
	Col, Row, W, H int
}

// Contains reports whether the cell lies inside r.
func (r CellRect) Contains(col, row int) bool {
	return col >= r.Col && col < r.Col+r.W && row >= r.Row && row < r.Row+r.H
}

// ToCells returns the screen cells whose centers fall inside a shell rect.
// Rects narrower than a cell still get one cell so nothing disappears.
func (l Layout) ToCells(r desk.Rect) CellRect {
	col, w := cellSpan(r.X, r.W, l.CellW)
	row, h := cellSpan(r.Y, r.H, l.CellH)
	return CellRect{Col: col + SidebarCols, Row: row, W: w, H: h}
}

// cellSpan returns the first cell whose center lies in [start,start+length)
// and the number of such cells, at least one.
func cellSpan(start, length, unit int) (int, int) {
	first := ceilDiv(start-unit/2, unit)
	end := ceilDiv(start+length-unit/2, unit)
	n := end - first
	if n < 1 {
		n = 1
		first = floorDiv(start, unit)
	}
	return first, n
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
