// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/menu.go
// Summary: Single transient context menu bound to the background or a widget.

package desk

// MenuAction is an entry of the context menu.
type MenuAction int

const (
	ActionAdd MenuAction = iota
	ActionSetWallpaper
	ActionEdit
	ActionResize
	ActionDelete
)

func (a MenuAction) String() string {
	switch a {
	case ActionAdd:
		return "Add App"
	case ActionSetWallpaper:
		return "Wallpaper"
	case ActionEdit:
		return "Edit"
	case ActionResize:
		return "Resize"
	case ActionDelete:
		return "Delete"
	default:
		return "unknown"
	}
}

// Menu geometry in shell pixels.
const (
	MenuWidth      = 176
	MenuItemHeight = 32
	MenuPadding    = 4
)

var (
	backgroundActions = []MenuAction{ActionAdd, ActionSetWallpaper}
	widgetActions     = []MenuAction{ActionEdit, ActionResize, ActionDelete}
)

// ContextMenu is the menu state. TargetID is empty for the background menu.
type ContextMenu struct {
	Visible  bool
	X, Y     int
	TargetID string
}

// Open shows the menu at p, replacing any menu already visible.
func (m *ContextMenu) Open(p Point, targetID string) {
	*m = ContextMenu{Visible: true, X: p.X, Y: p.Y, TargetID: targetID}
}

// Close hides the menu.
func (m *ContextMenu) Close() {
	m.Visible = false
}

// Actions returns the entries for the current target.
func (m ContextMenu) Actions() []MenuAction {
	if m.TargetID != "" {
		return widgetActions
	}
	return backgroundActions
}

// Bounds returns the menu rectangle.
func (m ContextMenu) Bounds() Rect {
	return Rect{
		X: m.X,
		Y: m.Y,
		W: MenuWidth,
		H: len(m.Actions())*MenuItemHeight + 2*MenuPadding,
	}
}

// ActionAt returns the entry under p.
func (m ContextMenu) ActionAt(p Point) (MenuAction, bool) {
	if !m.Visible {
		return 0, false
	}
	b := m.Bounds()
	if !b.Contains(p) {
		return 0, false
	}
	row := (p.Y - b.Y - MenuPadding) / MenuItemHeight
	if p.Y-b.Y < MenuPadding || row < 0 || row >= len(m.Actions()) {
		return 0, false
	}
	return m.Actions()[row], true
}
