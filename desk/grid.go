// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/grid.go
// Summary: Free-positioning widget grid with drag gestures and z-order.
// Usage: One Grid per desktop, driven by the Shell's pointer routing.

package desk

import "sort"

// GridZFloor is the lowest z value handed out by BringToFront on a grid.
const GridZFloor = 1

// nextZ returns a value strictly greater than every z in zs and than floor.
func nextZ(floor int, zs []int) int {
	top := floor
	for _, z := range zs {
		if z > top {
			top = z
		}
	}
	return top + 1
}

type dragGesture struct {
	active        bool
	widgetID      string
	pointerOrigin Point
	widgetOrigin  Point
	moved         bool
}

// DragResult describes a finished widget gesture.
type DragResult struct {
	WidgetID string
	From     Point
	To       Point
	// Moved is true when the pointer changed position at any time during the
	// gesture. A gesture that did not move is a click.
	Moved bool
}

// Grid holds the widgets of one desktop in insertion order.
type Grid struct {
	widgets []*Widget
	drag    dragGesture
}

// NewGrid copies widgets into a new grid. Widgets with an empty or duplicate
// id are dropped.
func NewGrid(widgets []Widget) *Grid {
	g := &Grid{widgets: make([]*Widget, 0, len(widgets))}
	for _, w := range widgets {
		g.Add(w)
	}
	return g
}

func (g *Grid) find(id string) (*Widget, int) {
	for i, w := range g.widgets {
		if w.ID == id {
			return w, i
		}
	}
	return nil, -1
}

// Len returns the number of widgets.
func (g *Grid) Len() int { return len(g.widgets) }

// Widgets returns copies of all widgets in insertion order.
func (g *Grid) Widgets() []Widget {
	out := make([]Widget, len(g.widgets))
	for i, w := range g.widgets {
		out[i] = w.clone()
	}
	return out
}

// PaintOrder returns copies of all widgets from bottom to top. Equal z values
// keep insertion order, so later widgets paint above earlier ones.
func (g *Grid) PaintOrder() []Widget {
	out := g.Widgets()
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Widget returns a copy of the widget with the given id.
func (g *Grid) Widget(id string) (Widget, bool) {
	w, _ := g.find(id)
	if w == nil {
		return Widget{}, false
	}
	return w.clone(), true
}

// Add appends a widget. It fails on an empty or already used id.
func (g *Grid) Add(w Widget) bool {
	if w.ID == "" {
		return false
	}
	if existing, _ := g.find(w.ID); existing != nil {
		return false
	}
	clone := w.clone()
	g.widgets = append(g.widgets, &clone)
	return true
}

// Remove deletes a widget. A drag in progress on it is abandoned.
func (g *Grid) Remove(id string) bool {
	_, idx := g.find(id)
	if idx < 0 {
		return false
	}
	g.widgets = append(g.widgets[:idx], g.widgets[idx+1:]...)
	if g.drag.active && g.drag.widgetID == id {
		g.drag = dragGesture{}
	}
	return true
}

// Update merges an editor patch into a widget.
func (g *Grid) Update(id string, patch WidgetPatch) bool {
	w, _ := g.find(id)
	if w == nil {
		return false
	}
	patch.Apply(w)
	return true
}

// CycleSize advances small -> medium -> large -> small. Memo widgets store
// the new size but keep their fixed footprint.
func (g *Grid) CycleSize(id string) bool {
	w, _ := g.find(id)
	if w == nil {
		return false
	}
	w.Size = w.Size.Next()
	return true
}

// SetPosition moves a widget without a gesture.
func (g *Grid) SetPosition(id string, p Point) bool {
	w, _ := g.find(id)
	if w == nil {
		return false
	}
	w.Position = p
	return true
}

// MaxZ returns the highest z value in the grid, or 0 when empty.
func (g *Grid) MaxZ() int {
	top := 0
	for _, w := range g.widgets {
		if w.ZIndex > top {
			top = w.ZIndex
		}
	}
	return top
}

// BringToFront raises a widget above every other widget of the grid.
func (g *Grid) BringToFront(id string) (int, bool) {
	w, _ := g.find(id)
	if w == nil {
		return 0, false
	}
	zs := make([]int, len(g.widgets))
	for i, other := range g.widgets {
		zs[i] = other.ZIndex
	}
	w.ZIndex = nextZ(GridZFloor, zs)
	return w.ZIndex, true
}

// WidgetAt returns the topmost widget under p.
func (g *Grid) WidgetAt(p Point) (string, bool) {
	var hit *Widget
	for _, w := range g.widgets {
		if !w.Bounds().Contains(p) {
			continue
		}
		if hit == nil || w.ZIndex >= hit.ZIndex {
			hit = w
		}
	}
	if hit == nil {
		return "", false
	}
	return hit.ID, true
}

// Press starts a drag gesture on a widget and brings it to the front.
func (g *Grid) Press(id string, pointer Point) bool {
	w, _ := g.find(id)
	if w == nil {
		return false
	}
	g.BringToFront(id)
	g.drag = dragGesture{
		active:        true,
		widgetID:      id,
		pointerOrigin: pointer,
		widgetOrigin:  w.Position,
	}
	return true
}

// Drag moves the dragged widget to its origin plus the cumulative pointer
// displacement. It is a no-op while idle.
func (g *Grid) Drag(pointer Point) {
	if !g.drag.active {
		return
	}
	w, _ := g.find(g.drag.widgetID)
	if w == nil {
		g.drag = dragGesture{}
		return
	}
	if pointer != g.drag.pointerOrigin {
		g.drag.moved = true
	}
	w.Position = g.drag.widgetOrigin.Add(pointer.Sub(g.drag.pointerOrigin))
}

// Release commits the gesture at the release pointer and returns to idle.
func (g *Grid) Release(pointer Point) (DragResult, bool) {
	if !g.drag.active {
		return DragResult{}, false
	}
	g.Drag(pointer)
	res := DragResult{
		WidgetID: g.drag.widgetID,
		From:     g.drag.widgetOrigin,
		Moved:    g.drag.moved,
	}
	if w, _ := g.find(g.drag.widgetID); w != nil {
		res.To = w.Position
	}
	g.drag = dragGesture{}
	return res, true
}

// CancelDrag abandons the active gesture, leaving the widget where it is.
func (g *Grid) CancelDrag() {
	g.drag = dragGesture{}
}

// Dragging reports the widget currently being dragged.
func (g *Grid) Dragging() (string, bool) {
	return g.drag.widgetID, g.drag.active
}

// AddTodo appends a checklist entry to a memo widget.
func (g *Grid) AddTodo(widgetID, todoID, text string) bool {
	w, _ := g.find(widgetID)
	if w == nil {
		return false
	}
	return w.addTodo(todoID, text)
}

// ToggleTodo flips the completed flag of a memo entry.
func (g *Grid) ToggleTodo(widgetID, todoID string) bool {
	w, _ := g.find(widgetID)
	if w == nil {
		return false
	}
	return w.toggleTodo(todoID)
}

// DeleteTodo removes a memo entry.
func (g *Grid) DeleteTodo(widgetID, todoID string) bool {
	w, _ := g.find(widgetID)
	if w == nil {
		return false
	}
	return w.deleteTodo(todoID)
}
