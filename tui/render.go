// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/render.go
// Summary: Draws the shell state onto the screen each frame.

package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"nbtab/assistant"
	"nbtab/desk"
)

var (
	styleDesktop  = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 41, 59)).Foreground(tcell.ColorWhite)
	styleDim      = styleDesktop.Foreground(tcell.ColorGray)
	styleSidebar  = tcell.StyleDefault.Background(tcell.NewRGBColor(15, 23, 42)).Foreground(tcell.ColorSilver)
	styleActive   = styleSidebar.Background(tcell.NewRGBColor(59, 130, 246)).Foreground(tcell.ColorWhite).Bold(true)
	styleFooter   = tcell.StyleDefault.Background(tcell.NewRGBColor(15, 23, 42)).Foreground(tcell.ColorSilver).Italic(true)
	styleInput    = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleMemo     = tcell.StyleDefault.Background(tcell.NewRGBColor(254, 249, 195)).Foreground(tcell.ColorBlack)
	styleMemoDone = styleMemo.Foreground(tcell.ColorGray).StrikeThrough(true)
	styleWindow   = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleTitle    = tcell.StyleDefault.Background(tcell.NewRGBColor(229, 231, 235)).Foreground(tcell.ColorBlack)
	styleTitleTop = styleTitle.Background(tcell.NewRGBColor(191, 219, 254)).Bold(true)
	styleMenu     = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleDelete   = styleMenu.Foreground(tcell.ColorRed)
	styleChat     = tcell.StyleDefault.Background(tcell.NewRGBColor(17, 24, 39)).Foreground(tcell.ColorWhite)
	styleChatUser = styleChat.Foreground(tcell.NewRGBColor(147, 197, 253))
	styleForm     = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleFormErr  = styleForm.Foreground(tcell.ColorRed)
)

// painter writes cells clipped to a rectangle.
type painter struct {
	screen ScreenDriver
	clip   CellRect
}

func (p painter) put(col, row int, r rune, style tcell.Style) {
	if !p.clip.Contains(col, row) {
		return
	}
	p.screen.SetContent(col, row, r, nil, style)
}

func (p painter) fill(r CellRect, ch rune, style tcell.Style) {
	for y := r.Row; y < r.Row+r.H; y++ {
		for x := r.Col; x < r.Col+r.W; x++ {
			p.put(x, y, ch, style)
		}
	}
}

// text draws s truncated to maxW columns and returns the columns used.
func (p painter) text(col, row, maxW int, s string, style tcell.Style) int {
	if maxW <= 0 {
		return 0
	}
	if runewidth.StringWidth(s) > maxW {
		s = runewidth.Truncate(s, maxW, "…")
	}
	x := col
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.put(x, row, r, style)
		x += w
	}
	return x - col
}

// centered draws s centred in [col,col+width).
func (p painter) centered(col, row, width int, s string, style tcell.Style) {
	sw := min(runewidth.StringWidth(s), width)
	p.text(col+(width-sw)/2, row, width, s, style)
}

func (a *App) screenPainter() painter {
	return painter{screen: a.screen, clip: CellRect{W: a.layout.Cols, H: a.layout.Rows}}
}

func (a *App) desktopPainter() painter {
	return painter{screen: a.screen, clip: CellRect{Col: SidebarCols, W: a.layout.DesktopCols(), H: a.layout.DesktopRows()}}
}

func (a *App) draw() {
	a.cursor = nil
	l := a.layout
	if l.Cols <= 0 || l.Rows <= 0 {
		return
	}
	a.screenPainter().fill(CellRect{W: l.Cols, H: l.Rows}, ' ', styleDesktop)

	a.drawBackground()
	a.drawWidgets()
	a.drawWindows()
	a.drawChat()
	a.drawMenu()
	a.flash.Apply(a.screen, CellRect{Col: SidebarCols, W: l.DesktopCols(), H: l.DesktopRows()}, a.now())
	a.drawSidebar()
	a.drawFooter()
	a.drawForm()

	if a.cursor != nil {
		a.screen.ShowCursor(a.cursor[0], a.cursor[1])
	} else {
		a.screen.HideCursor()
	}
	a.screen.Show()
}

func (a *App) setCursor(col, row int) {
	a.cursor = &[2]int{col, row}
}

func (a *App) drawBackground() {
	p := a.desktopPainter()
	l := a.layout
	active := a.shell.Registry().Active()
	cat := a.shell.Catalog()

	p.text(SidebarCols+1, 0, l.DesktopCols()-2, cat.Glyph(active.Icon)+" "+active.Label, styleDesktop.Bold(true))

	now := a.now()
	p.centered(SidebarCols, 1, l.DesktopCols(), now.Format("15:04"), styleDesktop.Bold(true))
	p.centered(SidebarCols, 2, l.DesktopCols(), now.Format("Monday, January 2"), styleDim)

	if r := a.searchRect(); r.W > 0 {
		p.fill(r, ' ', styleInput)
		label := a.engineLabel()
		x := r.Col + p.text(r.Col, r.Row, r.W, label, styleInput.Bold(true)) + 1
		avail := r.Col + r.W - x
		query := a.search.String()
		switch {
		case query != "" || a.focus == focusSearch:
			p.text(x, r.Row, avail, query, styleInput)
		default:
			p.text(x, r.Row, avail, a.shell.Engine().Placeholder, styleInput.Foreground(tcell.ColorGray))
		}
		if a.focus == focusSearch {
			a.setCursor(x+min(runewidth.StringWidth(string(a.search.runes[:a.search.cursor])), avail-1), r.Row)
		}
	}

	if rows := l.DesktopRows(); rows > 0 {
		label := "wallpaper " + active.Wallpaper
		w := min(runewidth.StringWidth(label), l.DesktopCols()-2)
		p.text(SidebarCols+l.DesktopCols()-w-1, rows-1, w, label, styleDim)
	}
}

func (a *App) widgetStyle(w desk.Widget) tcell.Style {
	cat := a.shell.Catalog()
	c, ok := cat.ColorByValue(w.BackgroundColor)
	if !ok {
		c = cat.DefaultColor()
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if c.Hex != "" {
		style = style.Background(tcell.GetColor(c.Hex))
	}
	if c.Name == "white" {
		style = style.Foreground(tcell.ColorBlack)
	}
	return style
}

func (a *App) drawWidgets() {
	p := a.desktopPainter()
	dragID, dragging := a.shell.Grid().Dragging()
	for _, w := range a.shell.Grid().PaintOrder() {
		r := a.layout.ToCells(w.Bounds())
		if w.Kind == desk.KindMemo {
			a.drawMemo(p, w, r)
			continue
		}
		style := a.widgetStyle(w)
		if dragging && dragID == w.ID {
			style = style.Reverse(true)
		}
		p.fill(r, ' ', style)
		p.centered(r.Col, r.Row+r.H/2, r.W, w.Glyph(), style.Bold(true))
		if w.OpenMethod == desk.OpenWindow {
			p.put(r.Col+r.W-1, r.Row, '▫', style)
		}
		p.centered(r.Col-2, r.Row+r.H, r.W+4, w.Title, styleDesktop)
	}
}

func (a *App) drawMemo(p painter, w desk.Widget, r CellRect) {
	p.fill(r, ' ', styleMemo)
	done := 0
	for _, t := range w.Todos {
		if t.Completed {
			done++
		}
	}
	title := w.Title
	if title == "" {
		title = "Memo"
	}
	p.text(r.Col+1, r.Row, r.W-2, title, styleMemo.Bold(true))
	count := fmt.Sprintf("%d/%d", done, len(w.Todos))
	p.text(r.Col+r.W-1-len(count), r.Row, len(count), count, styleMemo)

	for i, t := range w.Todos {
		row := r.Row + 1 + i
		if i >= r.H-2 {
			break
		}
		box, style := "[ ] ", styleMemo
		if t.Completed {
			box, style = "[x] ", styleMemoDone
		}
		x := r.Col + 1 + p.text(r.Col+1, row, r.W-3, box, styleMemo)
		p.text(x, row, r.Col+r.W-3-x, t.Text, style)
		p.put(r.Col+r.W-2, row, '✕', styleMemo.Foreground(tcell.ColorGray))
	}

	last := r.Row + r.H - 1
	focused := a.focus == focusMemo && a.memoID == w.ID
	x := r.Col + 1 + p.text(r.Col+1, last, r.W-2, "+ ", styleMemo.Bold(true))
	switch {
	case focused:
		in := a.memoInput
		p.text(x, last, r.Col+r.W-1-x, in.String(), styleMemo)
		if p.clip.Contains(x, last) {
			a.setCursor(x+min(runewidth.StringWidth(string(in.runes[:in.cursor])), r.Col+r.W-2-x), last)
		}
	default:
		p.text(x, last, r.Col+r.W-1-x, "Add a task", styleMemo.Foreground(tcell.ColorGray))
	}
}

func (a *App) drawWindows() {
	p := a.desktopPainter()
	l := a.layout
	order := a.shell.Windows().PaintOrder()
	viewport := a.shell.Viewport()
	for i, w := range order {
		frame := w.Frame(viewport)
		r := l.ToCells(frame)
		p.fill(r, ' ', styleWindow)

		title := styleTitle
		if i == len(order)-1 {
			title = styleTitleTop
		}
		_, barRows := cellSpan(frame.Y, desk.TitleBarHeight, l.CellH)
		barRows = min(barRows, r.H)
		p.fill(CellRect{Col: r.Col, Row: r.Row, W: r.W, H: barRows}, ' ', title)
		name := w.Title
		if name == "" {
			name = w.URL
		}
		p.text(r.Col+1, r.Row, r.W-3*desk.TitleButtonWidth/l.CellW-2, name, title)
		for k, glyph := range []rune{'✕', '□', '_'} {
			x := frame.Right() - k*desk.TitleButtonWidth - desk.TitleButtonWidth/2
			p.put(floorDiv(x, l.CellW)+SidebarCols, r.Row, glyph, title)
		}

		body := r.Row + barRows
		p.text(r.Col+1, body, r.W-2, w.URL, styleWindow.Underline(true))
		if i == len(order)-1 {
			p.text(r.Col+1, body+1, r.W-2, "o open in browser · x close", styleWindow.Foreground(tcell.ColorGray))
		}
	}
}

type chatLine struct {
	text  string
	style tcell.Style
}

func (a *App) drawChat() {
	if !a.shell.ChatOpen() {
		return
	}
	p := a.desktopPainter()
	r := a.chatRect()
	p.fill(r, ' ', styleChat)
	p.text(r.Col+1, r.Row, r.W-3, "AI Assistant", styleChat.Bold(true))
	p.put(r.Col+r.W-2, r.Row, '✕', styleChat)

	inputRow := r.Row + r.H - 1
	var lines []chatLine
	width := max(r.W-2, 1)
	for _, m := range a.chat.Messages() {
		style, prefix := styleChat, ""
		if m.Role == assistant.RoleUser {
			style, prefix = styleChatUser, "you: "
		}
		for _, line := range wrapText(prefix+m.Text, width) {
			lines = append(lines, chatLine{line, style})
		}
		lines = append(lines, chatLine{"", styleChat})
	}
	if a.chat.Pending() {
		lines = append(lines, chatLine{"…", styleChat.Foreground(tcell.ColorGray)})
	}
	avail := inputRow - r.Row - 2
	if len(lines) > avail {
		lines = lines[len(lines)-max(avail, 0):]
	}
	for i, line := range lines {
		p.text(r.Col+1, r.Row+2+i, width, line.text, line.style)
	}

	in := a.chatInput
	p.fill(CellRect{Col: r.Col, Row: inputRow, W: r.W, H: 1}, ' ', styleInput)
	x := r.Col + 1 + p.text(r.Col+1, inputRow, 2, "> ", styleInput)
	p.text(x, inputRow, r.Col+r.W-1-x, in.String(), styleInput)
	if a.focus == focusChat && a.form == nil {
		a.setCursor(x+min(runewidth.StringWidth(string(in.runes[:in.cursor])), r.Col+r.W-2-x), inputRow)
	}
}

func (a *App) drawMenu() {
	m := a.shell.Menu()
	if !m.Visible {
		return
	}
	p := a.desktopPainter()
	r := a.layout.ToCells(m.Bounds())
	p.fill(r, ' ', styleMenu)
	drawn := make(map[desk.MenuAction]bool)
	for row := r.Row; row < r.Row+r.H; row++ {
		action, ok := m.ActionAt(a.layout.ToShell(r.Col+r.W/2, row))
		if !ok || drawn[action] {
			continue
		}
		drawn[action] = true
		style := styleMenu
		if action == desk.ActionDelete {
			style = styleDelete
		}
		p.text(r.Col+1, row, r.W-2, action.String(), style)
	}
}

func (a *App) drawSidebar() {
	p := a.screenPainter()
	l := a.layout
	p.fill(CellRect{W: SidebarCols, H: l.Rows}, ' ', styleSidebar)
	cat := a.shell.Catalog()
	activeID := a.shell.Registry().ActiveID()
	desktops := make(map[string]desk.Desktop)
	for _, d := range a.shell.Registry().Desktops() {
		desktops[d.ID] = d
	}
	windows := make(map[string]desk.Window)
	for _, w := range a.shell.Windows().Minimized() {
		windows[w.ID] = w
	}
	for _, item := range a.sidebarItems() {
		if item.row >= l.DesktopRows() {
			continue
		}
		style := styleSidebar
		label := ""
		switch item.kind {
		case itemDesktop:
			d := desktops[item.id]
			label = cat.Glyph(d.Icon)
			if item.id == activeID {
				style = styleActive
			}
		case itemAddDesktop:
			label = "+"
		case itemMinimized:
			w := windows[item.id]
			label = (&desk.Widget{Title: w.Title, IconText: w.IconText}).Glyph()
			style = styleSidebar.Underline(true)
		case itemChat:
			label = "AI"
			if a.shell.ChatOpen() {
				style = styleActive
			}
		}
		p.fill(CellRect{Col: 0, Row: item.row, W: SidebarCols, H: 1}, ' ', style)
		p.centered(0, item.row, SidebarCols, label, style)
	}
}

func (a *App) drawFooter() {
	p := a.screenPainter()
	l := a.layout
	row := l.FooterRow()
	p.fill(CellRect{Row: row, W: l.Cols, H: 1}, ' ', styleFooter)
	hints := "/ search · c chat · a add · n desktop · q quit"
	hw := runewidth.StringWidth(hints)
	if hw+10 > l.Cols {
		hints, hw = "", 0
	}
	p.text(1, row, l.Cols-hw-3, a.footerText(), styleFooter)
	if hw > 0 {
		p.text(l.Cols-hw-1, row, hw, hints, styleFooter.Italic(false))
	}
}

func (a *App) drawForm() {
	f := a.form
	if f == nil {
		return
	}
	p := a.screenPainter()
	l := a.layout
	w := min(64, l.Cols-4)
	h := len(f.fields) + 5
	if w < 20 || h > l.Rows {
		return
	}
	r := CellRect{Col: (l.Cols - w) / 2, Row: (l.Rows - h) / 2, W: w, H: h}
	p.fill(r, ' ', styleForm)
	p.text(r.Col+2, r.Row, r.W-4, f.title, styleForm.Bold(true))

	labelW := 0
	for _, fld := range f.fields {
		labelW = max(labelW, runewidth.StringWidth(fld.label))
	}
	for i, fld := range f.fields {
		row := r.Row + 2 + i
		p.text(r.Col+2, row, labelW, fld.label, styleForm)
		x := r.Col + 3 + labelW
		avail := r.Col + r.W - 2 - x
		style := styleForm
		if i == f.focus {
			style = styleInput.Reverse(true)
			if fld.kind == fieldText {
				style = styleTitleTop
			}
		}
		p.fill(CellRect{Col: x, Row: row, W: avail, H: 1}, ' ', style)
		p.text(x, row, avail, fld.Display(), style)
		if i == f.focus && fld.kind == fieldText {
			in := fld.input
			a.setCursor(x+min(runewidth.StringWidth(string(in.runes[:in.cursor])), avail-1), row)
		}
	}
	if f.err != "" {
		p.text(r.Col+2, r.Row+h-2, r.W-4, f.err, styleFormErr)
	}
	p.text(r.Col+2, r.Row+h-1, r.W-4, f.hint, styleForm.Foreground(tcell.ColorGray))
}

// wrapText breaks s into lines of at most width columns.
func wrapText(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for runewidth.StringWidth(word) > width {
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					head = string([]rune(word)[:1])
				}
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, head)
				word = word[len(head):]
			}
			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
