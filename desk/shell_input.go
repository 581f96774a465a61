// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/shell_input.go
// Summary: Pointer routing from raw button masks to menu, windows and grid.

package desk

import "github.com/gdamore/tcell/v2"

// Route names the surface that consumed a pointer sample.
type Route int

const (
	RouteNone Route = iota
	RouteMenu
	RouteWindow
	RouteChat
	RouteWidget
	RouteBackground
	RouteScroll
)

func (r Route) String() string {
	switch r {
	case RouteMenu:
		return "menu"
	case RouteWindow:
		return "window"
	case RouteChat:
		return "chat"
	case RouteWidget:
		return "widget"
	case RouteBackground:
		return "background"
	case RouteScroll:
		return "scroll"
	default:
		return "none"
	}
}

// InputResult reports where a pointer sample went. ID is the widget or
// window involved, if any.
type InputResult struct {
	Route Route
	ID    string
}

type inputState struct {
	prevButtons tcell.ButtonMask
	last        Point
}

// Capturing reports whether a drag or resize owns the pointer.
func (s *Shell) Capturing() bool {
	if s.windows.Capturing() {
		return true
	}
	_, dragging := s.Grid().Dragging()
	return dragging
}

// ChatPanelBounds returns the chat overlay rectangle in shell pixels.
func (s *Shell) ChatPanelBounds() Rect {
	w := min(ChatPanelWidth, s.viewport.Width)
	return Rect{X: s.viewport.Width - w, Y: 0, W: w, H: s.viewport.Height}
}

// HandleMouse routes one pointer sample. Press and release are derived from
// the change in button state since the previous sample.
func (s *Shell) HandleMouse(p Point, buttons tcell.ButtonMask) InputResult {
	prev := s.input.prevButtons

	if dy := wheelDelta(buttons); dy != 0 {
		// Wheel samples do not report held buttons reliably; keep prevButtons.
		s.input.last = p
		return s.handleWheel(p, dy)
	}

	s.input.prevButtons = buttons
	s.input.last = p

	leftDown := buttons&tcell.Button1 != 0
	leftPressed := leftDown && prev&tcell.Button1 == 0
	rightPressed := buttons&tcell.Button2 != 0 && prev&tcell.Button2 == 0

	if res, ok := s.continueGesture(p, leftDown); ok {
		return res
	}
	if leftPressed {
		return s.handlePress(p)
	}
	if rightPressed {
		return s.handleContextPress(p)
	}
	return InputResult{}
}

func (s *Shell) continueGesture(p Point, down bool) (InputResult, bool) {
	if id, ok := s.windows.CapturingWindow(); ok {
		s.windows.Move(p)
		if !down {
			s.windows.Release()
		}
		s.emit(EventWindowsChanged, id)
		return InputResult{Route: RouteWindow, ID: id}, true
	}
	grid := s.Grid()
	id, dragging := grid.Dragging()
	if !dragging {
		return InputResult{}, false
	}
	if down {
		grid.Drag(p)
		s.emit(EventWidgetsChanged, s.registry.ActiveID())
		return InputResult{Route: RouteWidget, ID: id}, true
	}
	res, _ := grid.Release(p)
	s.widgetsChanged()
	if !res.Moved {
		s.ActivateWidget(res.WidgetID)
	}
	return InputResult{Route: RouteWidget, ID: res.WidgetID}, true
}

func (s *Shell) handleWheel(p Point, dy int) InputResult {
	if id, ok := s.Grid().WidgetAt(p); ok {
		if w, _ := s.Grid().Widget(id); w.Kind == KindMemo {
			return InputResult{Route: RouteWidget, ID: id}
		}
	}
	if s.Scroll(dy) {
		return InputResult{Route: RouteScroll, ID: s.registry.ActiveID()}
	}
	return InputResult{}
}

func (s *Shell) handlePress(p Point) InputResult {
	if s.menu.Visible {
		if action, ok := s.menu.ActionAt(p); ok {
			s.DispatchMenuAction(action)
			return InputResult{Route: RouteMenu}
		}
		if s.menu.Bounds().Contains(p) {
			return InputResult{Route: RouteMenu}
		}
		s.CloseContextMenu()
		return InputResult{Route: RouteBackground}
	}
	if s.modal != ModalNone {
		return InputResult{}
	}
	if hit, ok := s.windows.HitTest(p); ok {
		s.handleWindowPress(hit, p)
		return InputResult{Route: RouteWindow, ID: hit.WindowID}
	}
	if s.chatOpen && s.ChatPanelBounds().Contains(p) {
		return InputResult{Route: RouteChat}
	}
	if id, ok := s.Grid().WidgetAt(p); ok {
		s.Grid().Press(id, p)
		s.emit(EventWidgetsChanged, s.registry.ActiveID())
		return InputResult{Route: RouteWidget, ID: id}
	}
	return InputResult{Route: RouteBackground}
}

func (s *Shell) handleWindowPress(hit Hit, p Point) {
	id := hit.WindowID
	switch hit.Region {
	case RegionClose:
		s.CloseWindow(id)
	case RegionMinimize:
		s.MinimizeWindow(id)
	case RegionMaximize:
		s.MaximizeWindow(id)
	case RegionEdge:
		s.windows.BeginResize(id, hit.Edges, p)
		s.emit(EventWindowsChanged, id)
	case RegionTitle:
		now := s.now()
		if s.lastTitleWindow == id && now.Sub(s.lastTitleClick) <= s.doubleClick {
			s.lastTitleWindow = ""
			s.MaximizeWindow(id)
			return
		}
		s.lastTitleWindow = id
		s.lastTitleClick = now
		if !s.windows.BeginDrag(id, p) {
			s.FocusWindow(id)
			return
		}
		s.emit(EventWindowsChanged, id)
	default:
		s.FocusWindow(id)
	}
}

func (s *Shell) handleContextPress(p Point) InputResult {
	if s.modal != ModalNone {
		return InputResult{}
	}
	if _, ok := s.windows.HitTest(p); ok {
		return InputResult{Route: RouteWindow}
	}
	if s.chatOpen && s.ChatPanelBounds().Contains(p) {
		return InputResult{Route: RouteChat}
	}
	if id, ok := s.Grid().WidgetAt(p); ok {
		s.OpenContextMenu(p, id)
		return InputResult{Route: RouteMenu, ID: id}
	}
	s.OpenContextMenu(p, "")
	return InputResult{Route: RouteMenu}
}

func wheelDelta(mask tcell.ButtonMask) int {
	dy := 0
	if mask&tcell.WheelUp != 0 {
		dy--
	}
	if mask&tcell.WheelDown != 0 {
		dy++
	}
	return dy
}

// LastPointer returns the position of the most recent pointer sample.
func (s *Shell) LastPointer() Point { return s.input.last }
