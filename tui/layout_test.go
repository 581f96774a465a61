// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"testing"

	"nbtab/desk"
)

func TestCellSpan(t *testing.T) {
	cases := []struct {
		start, length, unit int
		first, n            int
	}{
		{0, 80, 8, 0, 10},
		{50, 80, 8, 6, 10},
		{3, 2, 8, 0, 1},
		{-20, 40, 8, -3, 5},
		{350, 80, 16, 22, 5},
	}
	for _, c := range cases {
		first, n := cellSpan(c.start, c.length, c.unit)
		if first != c.first || n != c.n {
			t.Errorf("cellSpan(%d,%d,%d) = (%d,%d), want (%d,%d)", c.start, c.length, c.unit, first, n, c.first, c.n)
		}
	}
}

func TestFloorAndCeilDiv(t *testing.T) {
	if got := floorDiv(-1, 8); got != -1 {
		t.Fatalf("floorDiv(-1,8) = %d", got)
	}
	if got := floorDiv(15, 8); got != 1 {
		t.Fatalf("floorDiv(15,8) = %d", got)
	}
	if got := ceilDiv(-24, 8); got != -3 {
		t.Fatalf("ceilDiv(-24,8) = %d", got)
	}
	if got := ceilDiv(17, 8); got != 3 {
		t.Fatalf("ceilDiv(17,8) = %d", got)
	}
}

func TestLayoutMapsCellCentersIntoRects(t *testing.T) {
	l := Layout{CellW: 8, CellH: 16, Cols: 130, Rows: 51}
	if v := l.Viewport(); v != (desk.Size{Width: 1000, Height: 800}) {
		t.Fatalf("viewport = %+v", v)
	}
	r := desk.Rect{X: 50, Y: 50, W: 80, H: 80}
	cells := l.ToCells(r)
	if cells.Col != 11 || cells.W != 10 {
		t.Fatalf("columns = %+v", cells)
	}
	for col := cells.Col; col < cells.Col+cells.W; col++ {
		for row := cells.Row; row < cells.Row+cells.H; row++ {
			if !r.Contains(l.ToShell(col, row)) {
				t.Fatalf("cell (%d,%d) maps outside %+v", col, row, r)
			}
		}
	}
	if r.Contains(l.ToShell(cells.Col-1, cells.Row)) || r.Contains(l.ToShell(cells.Col+cells.W, cells.Row)) {
		t.Fatalf("neighbouring cells should fall outside %+v", r)
	}
}

func TestLayoutClampsIntoDesktopArea(t *testing.T) {
	l := Layout{CellW: 8, CellH: 16, Cols: 130, Rows: 51}
	if l.InDesktop(2, 10) || l.InDesktop(20, 50) {
		t.Fatalf("sidebar and footer are not desktop cells")
	}
	if !l.InDesktop(5, 0) {
		t.Fatalf("first desktop column should be inside")
	}
	got := l.ToShellClamped(0, 60)
	if got != (desk.Point{X: 4, Y: 792}) {
		t.Fatalf("clamped = %+v", got)
	}
}
