// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/input.go
// Summary: Keyboard and mouse handling for the terminal front end.
// Usage: Chrome (sidebar, search line, memo rows) is handled here; every
// other pointer sample goes to the shell in pixel coordinates.

package tui

import (
	"github.com/gdamore/tcell/v2"

	"nbtab/desk"
)

const (
	searchRow      = 4
	searchMaxWidth = 56
)

func (a *App) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		a.Stop()
		return
	}
	if a.form != nil {
		switch a.form.HandleKey(ev) {
		case formCancelled:
			a.shell.CancelModal()
			a.form = nil
		case formSubmitted:
			a.form = nil
		}
		return
	}
	if a.shell.Menu().Visible && ev.Key() == tcell.KeyEscape {
		a.shell.CloseContextMenu()
		return
	}
	a.setStatus("")
	switch a.focus {
	case focusSearch:
		a.handleSearchKey(ev)
	case focusChat:
		a.handleChatKey(ev)
	case focusMemo:
		a.handleMemoKey(ev)
	default:
		a.handleCommandKey(ev)
	}
}

func (a *App) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.focus = focusDesktop
	case tcell.KeyTab:
		cat := a.shell.Catalog()
		a.shell.SelectEngine(cat.NextEngine(a.shell.Engine().Name).Name)
	case tcell.KeyEnter:
		if a.shell.Search(a.search.String()) {
			a.search.Reset()
			a.focus = focusDesktop
		}
	default:
		a.search.HandleKey(ev)
	}
}

func (a *App) handleChatKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.shell.CloseChat()
	case tcell.KeyEnter:
		a.sendChat()
	default:
		a.chatInput.HandleKey(ev)
	}
}

func (a *App) handleMemoKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.blurMemo()
	case tcell.KeyEnter:
		if a.shell.AddTodo(a.memoID, a.memoInput.String()) {
			a.memoInput.Reset()
		}
	default:
		a.memoInput.HandleKey(ev)
	}
}

func (a *App) handleCommandKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyPgUp:
		a.shell.Scroll(-1)
		return
	case tcell.KeyPgDn:
		a.shell.Scroll(1)
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch r := ev.Rune(); {
	case r == 'q':
		a.Stop()
	case r == '/':
		a.focus = focusSearch
	case r == 'c':
		a.shell.ToggleChat()
	case r == 'a':
		a.shell.OpenEditor(desk.EditorAdd, "")
	case r == 'n':
		a.shell.RequestAddDesktop()
	case r == 'w':
		a.shell.RequestWallpaperChange()
	case r == 'o':
		if w, ok := a.topWindow(); ok {
			a.OpenURL(w.URL)
		}
	case r == 'x':
		if w, ok := a.topWindow(); ok {
			a.shell.CloseWindow(w.ID)
		}
	case r >= '1' && r <= '9':
		desktops := a.shell.Registry().Desktops()
		if i := int(r - '1'); i < len(desktops) {
			a.shell.SwitchDesktop(desktops[i].ID)
		}
	}
}

func (a *App) topWindow() (desk.Window, bool) {
	order := a.shell.Windows().PaintOrder()
	if len(order) == 0 {
		return desk.Window{}, false
	}
	return order[len(order)-1], true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	buttons := ev.Buttons()
	wheel := buttons&(tcell.WheelUp|tcell.WheelDown) != 0

	prev := a.prevButtons
	if !wheel {
		a.prevButtons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	}
	leftDown := buttons&tcell.Button1 != 0
	leftPressed := leftDown && prev&tcell.Button1 == 0
	leftReleased := !leftDown && prev&tcell.Button1 != 0 && !wheel
	rightPressed := buttons&tcell.Button2 != 0 && prev&tcell.Button2 == 0

	if a.consumed {
		if !wheel && buttons&(tcell.Button1|tcell.Button2) == 0 {
			a.consumed = false
		}
		return
	}

	if (leftPressed || rightPressed) && !a.shell.Capturing() {
		if !a.layout.InDesktop(col, row) {
			a.consumed = true
			if leftPressed {
				a.shell.CloseContextMenu()
				if a.shell.Modal() == desk.ModalNone {
					a.clickChrome(col, row)
				}
			}
			return
		}
		if leftPressed && a.clickSearch(col, row) {
			a.consumed = true
			return
		}
	}

	if leftPressed {
		a.setStatus("")
		if a.focus == focusSearch {
			a.focus = focusDesktop
		}
	}

	res := a.shell.HandleMouse(a.layout.ToShellClamped(col, row), buttons)

	switch {
	case leftPressed:
		a.memoPress = memoPress{}
		if res.Route == desk.RouteWidget && a.isMemo(res.ID) {
			a.memoPress = memoPress{id: res.ID, col: col, row: row}
		} else if a.focus == focusMemo {
			a.blurMemo()
		}
		if res.Route == desk.RouteChat {
			a.clickChat(col, row)
		}
	case leftReleased:
		mp := a.memoPress
		a.memoPress = memoPress{}
		if res.Route == desk.RouteWidget && mp.id != "" && res.ID == mp.id && mp.col == col && mp.row == row {
			a.clickMemo(mp.id, col, row)
		}
	}
}

func (a *App) isMemo(id string) bool {
	w, ok := a.shell.Grid().Widget(id)
	return ok && w.Kind == desk.KindMemo
}

// sidebar

type sidebarKind int

const (
	itemDesktop sidebarKind = iota
	itemAddDesktop
	itemMinimized
	itemChat
)

type sidebarItem struct {
	kind sidebarKind
	id   string
	row  int
}

func (a *App) sidebarItems() []sidebarItem {
	var items []sidebarItem
	row := 1
	for _, d := range a.shell.Registry().Desktops() {
		items = append(items, sidebarItem{kind: itemDesktop, id: d.ID, row: row})
		row += 2
	}
	items = append(items, sidebarItem{kind: itemAddDesktop, row: row})
	row += 2
	for _, w := range a.shell.Windows().Minimized() {
		items = append(items, sidebarItem{kind: itemMinimized, id: w.ID, row: row})
		row += 2
	}
	if chatRow := a.layout.DesktopRows() - 2; chatRow >= row {
		items = append(items, sidebarItem{kind: itemChat, row: chatRow})
	}
	return items
}

func (a *App) clickChrome(col, row int) {
	if col >= SidebarCols {
		return
	}
	for _, item := range a.sidebarItems() {
		if item.row != row {
			continue
		}
		switch item.kind {
		case itemDesktop:
			a.shell.SwitchDesktop(item.id)
		case itemAddDesktop:
			a.shell.RequestAddDesktop()
		case itemMinimized:
			a.shell.FocusWindow(item.id)
		case itemChat:
			a.shell.ToggleChat()
		}
		return
	}
}

// search line

func (a *App) searchRect() CellRect {
	w := min(searchMaxWidth, a.layout.DesktopCols()-4)
	if w < 10 {
		return CellRect{}
	}
	return CellRect{Col: SidebarCols + (a.layout.DesktopCols()-w)/2, Row: searchRow, W: w, H: 1}
}

func (a *App) engineLabel() string {
	return "[" + a.shell.Engine().Name + "]"
}

// clickSearch focuses the search line when it is the topmost thing under the
// pointer. A click on the engine label cycles the engine.
func (a *App) clickSearch(col, row int) bool {
	r := a.searchRect()
	if !r.Contains(col, row) {
		return false
	}
	s := a.shell
	p := a.layout.ToShell(col, row)
	if s.Menu().Visible || s.Modal() != desk.ModalNone {
		return false
	}
	if _, ok := s.Windows().HitTest(p); ok {
		return false
	}
	if _, ok := s.Grid().WidgetAt(p); ok {
		return false
	}
	if s.ChatOpen() && s.ChatPanelBounds().Contains(p) {
		return false
	}
	if col < r.Col+len([]rune(a.engineLabel())) {
		s.SelectEngine(s.Catalog().NextEngine(s.Engine().Name).Name)
	}
	a.focus = focusSearch
	return true
}

// memo rows: header, one row per todo, the add row last.

func (a *App) clickMemo(id string, col, row int) {
	w, ok := a.shell.Grid().Widget(id)
	if !ok {
		return
	}
	r := a.layout.ToCells(w.Bounds())
	last := r.Row + r.H - 1
	if row == last {
		a.focus = focusMemo
		if a.memoID != id {
			a.memoInput.Reset()
		}
		a.memoID = id
		return
	}
	idx := row - r.Row - 1
	if idx < 0 || idx >= len(w.Todos) || idx >= r.H-2 {
		return
	}
	todo := w.Todos[idx]
	if col == r.Col+r.W-2 {
		a.shell.DeleteTodo(id, todo.ID)
		return
	}
	a.shell.ToggleTodo(id, todo.ID)
}

func (a *App) chatRect() CellRect {
	return a.layout.ToCells(a.shell.ChatPanelBounds())
}

func (a *App) clickChat(col, row int) {
	r := a.chatRect()
	if row == r.Row && col == r.Col+r.W-2 {
		a.shell.CloseChat()
		return
	}
	a.focus = focusChat
}
