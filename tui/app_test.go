// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"nbtab/assistant"
	"nbtab/desk"
	"nbtab/storage"
)

type stubAssistant struct {
	reply string
	quote string
}

func (s stubAssistant) Chat(ctx context.Context, history []assistant.Message, message string) string {
	return s.reply
}

func (s stubAssistant) DailyQuote(ctx context.Context) string { return s.quote }

type recordingOpener struct {
	mu     sync.Mutex
	opened []string
}

func (o *recordingOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, url)
	return nil
}

func (o *recordingOpener) urls() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

type testApp struct {
	*App
	screen tcell.SimulationScreen
	opener *recordingOpener
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	opener := &recordingOpener{}
	app := NewApp(NewTcellScreenDriver(screen), Options{
		Shell:     desk.Options{Store: storage.NewMemoryStore()},
		Assistant: stubAssistant{reply: "hi there", quote: "Stay curious."},
		Opener:    opener,
		Now:       func() time.Time { return time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC) },
	})
	if err := app.Init(); err != nil {
		t.Fatalf("init app: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(130, 51)
	app.resize()
	return &testApp{App: app, screen: screen, opener: opener}
}

func (a *testApp) mouse(col, row int, buttons tcell.ButtonMask) {
	a.handleEvent(tcell.NewEventMouse(col, row, buttons, tcell.ModNone))
}

func (a *testApp) click(col, row int) {
	a.mouse(col, row, tcell.Button1)
	a.mouse(col, row, tcell.ButtonNone)
}

func (a *testApp) rightClick(col, row int) {
	a.mouse(col, row, tcell.Button2)
	a.mouse(col, row, tcell.ButtonNone)
}

func (a *testApp) key(k tcell.Key) {
	a.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (a *testApp) typeText(s string) {
	for _, r := range s {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (a *testApp) row(row int) string {
	a.draw()
	return readScreenLine(a.screen, 0, row, 130)
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes = append(runes, ch)
	}
	return strings.TrimRight(string(runes), " ")
}

func TestAppSizesShellToScreen(t *testing.T) {
	a := newTestApp(t)
	if v := a.Shell().Viewport(); v != (desk.Size{Width: 1000, Height: 800}) {
		t.Fatalf("viewport = %+v", v)
	}
	a.screen.SetSize(80, 25)
	a.handleEvent(tcell.NewEventResize(80, 25))
	if v := a.Shell().Viewport(); v != (desk.Size{Width: 600, Height: 384}) {
		t.Fatalf("viewport after resize = %+v", v)
	}
}

func TestAppDrawsClockAndDefaults(t *testing.T) {
	a := newTestApp(t)
	if got := a.row(1); !strings.Contains(got, "09:26") {
		t.Fatalf("clock row = %q", got)
	}
	// The memo covers the engine label; the placeholder tail stays visible.
	if got := a.row(searchRow); !strings.Contains(got, "Bing...") {
		t.Fatalf("search row = %q", got)
	}
	if got := a.row(4); !strings.Contains(got, "Review PRs") {
		t.Fatalf("memo row = %q", got)
	}
}

func TestSidebarSwitchesAndAddsDesktops(t *testing.T) {
	a := newTestApp(t)
	if _, ok := a.Shell().AddDesktop("Work", "Code"); !ok {
		t.Fatalf("add desktop failed")
	}
	a.click(2, 1)
	if got := a.Shell().Registry().ActiveID(); got != desk.HomeDesktopID {
		t.Fatalf("active = %q, want home", got)
	}

	a.click(2, 5)
	if a.Shell().Modal() != desk.ModalAddDesktop || a.form == nil {
		t.Fatalf("expected the new desktop form")
	}
	a.key(tcell.KeyEnter)
	if a.form == nil || a.form.err == "" {
		t.Fatalf("blank name should keep the form open with an error")
	}
	a.typeText("Play")
	a.key(tcell.KeyEnter)
	if a.form != nil || a.Shell().Modal() != desk.ModalNone {
		t.Fatalf("form should close after creating the desktop")
	}
	if a.Shell().Registry().Len() != 3 || a.Shell().Registry().Active().Label != "Play" {
		t.Fatalf("desktops = %+v", a.Shell().Registry().Desktops())
	}
}

func TestContextMenuWallpaperFlow(t *testing.T) {
	a := newTestApp(t)
	a.rightClick(100, 40)
	if !a.Shell().Menu().Visible || a.Shell().Menu().TargetID != "" {
		t.Fatalf("expected background menu, got %+v", a.Shell().Menu())
	}
	if got := a.row(43); !strings.Contains(got, "Wallpaper") {
		t.Fatalf("menu row = %q", got)
	}

	a.click(100, 43)
	if a.form == nil || a.form.kind != desk.ModalWallpaper {
		t.Fatalf("expected wallpaper form")
	}
	a.key(tcell.KeyCtrlU)
	a.typeText("https://example.com/bg.jpg")
	a.key(tcell.KeyEnter)
	if a.form != nil {
		t.Fatalf("form should close on save")
	}
	if got := a.Shell().Registry().Active().Wallpaper; got != "https://example.com/bg.jpg" {
		t.Fatalf("wallpaper = %q", got)
	}
}

func TestFormEscapeCancelsModal(t *testing.T) {
	a := newTestApp(t)
	a.typeText("w")
	if a.Shell().Modal() != desk.ModalWallpaper {
		t.Fatalf("expected wallpaper modal")
	}
	before := a.Shell().Registry().Active().Wallpaper
	a.key(tcell.KeyEscape)
	if a.form != nil || a.Shell().Modal() != desk.ModalNone {
		t.Fatalf("escape should cancel the modal")
	}
	if a.Shell().Registry().Active().Wallpaper != before {
		t.Fatalf("cancel must not change the wallpaper")
	}
}

func TestEditorAddsShortcutThatOpensInBrowser(t *testing.T) {
	a := newTestApp(t)
	a.typeText("a")
	if a.form == nil || a.form.kind != desk.ModalEditor {
		t.Fatalf("expected editor form")
	}
	a.typeText("https://go.dev")
	a.key(tcell.KeyTab)
	a.typeText("Go")
	a.key(tcell.KeyEnter)
	if a.form != nil {
		t.Fatalf("editor should close on save")
	}

	var added desk.Widget
	for _, w := range a.Shell().Grid().Widgets() {
		if w.URL == "https://go.dev" {
			added = w
		}
	}
	if added.ID == "" || added.Position != (desk.Point{X: 450, Y: 350}) {
		t.Fatalf("added widget = %+v", added)
	}
	a.draw()
	if ch, _, _, _ := a.screen.GetContent(65, 24); ch != 'G' {
		t.Fatalf("glyph cell = %q", ch)
	}

	a.click(65, 24)
	if got := a.opener.urls(); len(got) != 1 || got[0] != "https://go.dev" {
		t.Fatalf("opened = %v", got)
	}
	if !strings.Contains(a.footerText(), "https://go.dev") {
		t.Fatalf("footer = %q", a.footerText())
	}
}

func TestEditorFaviconKey(t *testing.T) {
	a := newTestApp(t)
	a.typeText("a")
	a.typeText("https://example.org/page")
	a.key(tcell.KeyF2)
	a.key(tcell.KeyEnter)
	for _, w := range a.Shell().Grid().Widgets() {
		if w.URL == "https://example.org/page" {
			if w.Icon != "https://www.google.com/s2/favicons?domain=example.org&sz=64" {
				t.Fatalf("icon = %q", w.Icon)
			}
			return
		}
	}
	t.Fatalf("widget not added")
}

func TestDraggingShortcutDoesNotOpenIt(t *testing.T) {
	a := newTestApp(t)
	// Gradient shortcut covers columns 52-61, rows 10-14.
	a.mouse(55, 12, tcell.Button1)
	a.mouse(2, 12, tcell.Button1)
	a.mouse(2, 12, tcell.ButtonNone)
	w, _ := a.Shell().Grid().Widget("theme-1")
	if w.Position.X >= 380 {
		t.Fatalf("widget should have moved left, got %+v", w.Position)
	}
	if len(a.opener.urls()) != 0 {
		t.Fatalf("drag must not open the shortcut")
	}
}

func openWindowWidget(t *testing.T, a *testApp) string {
	t.Helper()
	s := a.Shell()
	s.OpenEditor(desk.EditorAdd, "")
	url, title, method := "https://pkg.go.dev", "Docs", desk.OpenWindow
	id, ok := s.SaveWidget(desk.WidgetPatch{URL: &url, Title: &title, OpenMethod: &method})
	if !ok {
		t.Fatalf("save widget failed")
	}
	if !s.ActivateWidget(id) {
		t.Fatalf("activate failed")
	}
	return id
}

func TestWindowKeysAndScrollSuppression(t *testing.T) {
	a := newTestApp(t)
	a.Shell().AddDesktop("Work", "")
	a.typeText("1")
	openWindowWidget(t, a)
	if a.Shell().Windows().Len() != 1 {
		t.Fatalf("expected one window")
	}

	a.key(tcell.KeyPgDn)
	if a.Shell().Registry().ActiveID() != desk.HomeDesktopID {
		t.Fatalf("scroll should be ignored while a window is open")
	}

	a.typeText("o")
	if got := a.opener.urls(); len(got) != 1 || got[0] != "https://pkg.go.dev" {
		t.Fatalf("opened = %v", got)
	}
	a.typeText("x")
	if a.Shell().Windows().Len() != 0 {
		t.Fatalf("x should close the top window")
	}
	a.key(tcell.KeyPgDn)
	if a.Shell().Registry().Active().Label != "Work" {
		t.Fatalf("scroll should switch once windows are gone")
	}
}

func TestWindowTitleButtonsByCell(t *testing.T) {
	a := newTestApp(t)
	id := openWindowWidget(t, a)
	// 600x560 at (200,120): minimize sits at column 94, close at 101, title row 8.
	a.click(94, 8)
	if w, _ := a.Shell().Windows().Window(id); !w.Minimized {
		t.Fatalf("expected minimized window")
	}
	a.draw()
	if got := readScreenLine(a.screen, 0, 5, SidebarCols); got != "  D" {
		t.Fatalf("sidebar should list the minimized window, row = %q", got)
	}
	a.click(2, 5)
	if w, _ := a.Shell().Windows().Window(id); w.Minimized {
		t.Fatalf("sidebar click should restore the window")
	}
	a.click(101, 8)
	if a.Shell().Windows().Len() != 0 {
		t.Fatalf("close button should close the window")
	}
}

func (a *testApp) drag(fromCol, fromRow, toCol, toRow int) {
	a.mouse(fromCol, fromRow, tcell.Button1)
	a.mouse(toCol, toRow, tcell.Button1)
	a.mouse(toCol, toRow, tcell.ButtonNone)
}

func TestWindowBorderCellsResize(t *testing.T) {
	a := newTestApp(t)
	id := openWindowWidget(t, a)
	// 600x560 at (200,120) covers columns 30..104 and rows 7..41.
	a.drag(30, 20, 20, 20)
	w, _ := a.Shell().Windows().Window(id)
	if w.Position != (desk.Point{X: 120, Y: 120}) || w.Size != (desk.Size{Width: 680, Height: 560}) {
		t.Fatalf("west resize: pos %+v size %+v", w.Position, w.Size)
	}

	a.drag(60, 41, 60, 44)
	w, _ = a.Shell().Windows().Window(id)
	if w.Position != (desk.Point{X: 120, Y: 120}) || w.Size != (desk.Size{Width: 680, Height: 608}) {
		t.Fatalf("south resize: pos %+v size %+v", w.Position, w.Size)
	}
}

func TestChromeClicksCloseContextMenu(t *testing.T) {
	a := newTestApp(t)
	a.rightClick(100, 30)
	if !a.Shell().Menu().Visible {
		t.Fatalf("expected context menu")
	}
	a.click(60, a.layout.FooterRow())
	if a.Shell().Menu().Visible {
		t.Fatalf("footer click should close the menu")
	}

	a.rightClick(100, 30)
	a.click(2, 40)
	if a.Shell().Menu().Visible {
		t.Fatalf("empty sidebar click should close the menu")
	}
	if a.Shell().Modal() != desk.ModalNone {
		t.Fatalf("empty sidebar row should not open anything")
	}
}

func TestMemoRowsToggleDeleteAndAdd(t *testing.T) {
	a := newTestApp(t)
	// Memo spans columns 11-46 and rows 3-18; row 4 is the first todo.
	a.click(20, 4)
	w, _ := a.Shell().Grid().Widget("memo-1")
	if !w.Todos[0].Completed {
		t.Fatalf("click should toggle the first todo")
	}

	a.click(45, 4)
	w, _ = a.Shell().Grid().Widget("memo-1")
	if len(w.Todos) != 2 || w.Todos[0].ID == "1" {
		t.Fatalf("delete cell should remove the first todo, got %+v", w.Todos)
	}

	a.click(20, 18)
	if a.focus != focusMemo || a.memoID != "memo-1" {
		t.Fatalf("add row should focus the memo input")
	}
	a.typeText("buy milk")
	a.key(tcell.KeyEnter)
	w, _ = a.Shell().Grid().Widget("memo-1")
	if last := w.Todos[len(w.Todos)-1]; last.Text != "buy milk" {
		t.Fatalf("last todo = %+v", last)
	}
	a.key(tcell.KeyEscape)
	if a.focus != focusDesktop {
		t.Fatalf("escape should leave the memo input")
	}
}

func TestSearchLineSubmitsToEngine(t *testing.T) {
	a := newTestApp(t)
	a.click(59, searchRow)
	if a.focus != focusSearch {
		t.Fatalf("click should focus search")
	}
	a.typeText("go tips")
	a.key(tcell.KeyEnter)
	if got := a.opener.urls(); len(got) != 1 || got[0] != "https://www.bing.com/search?q=go%20tips" {
		t.Fatalf("opened = %v", got)
	}
	if a.focus != focusDesktop {
		t.Fatalf("submit should leave the search line")
	}

	a.typeText("/")
	a.key(tcell.KeyTab)
	if a.Shell().Engine().Name != "Baidu" {
		t.Fatalf("tab should cycle the engine, got %q", a.Shell().Engine().Name)
	}
	a.key(tcell.KeyEscape)
	a.Shell().Grid().SetPosition("memo-1", desk.Point{X: 50, Y: 400})
	r := a.searchRect()
	a.click(r.Col, r.Row)
	if a.Shell().Engine().Name != "Google" {
		t.Fatalf("engine label click should cycle, got %q", a.Shell().Engine().Name)
	}
}

func TestChatPanelRoundTrip(t *testing.T) {
	a := newTestApp(t)
	a.typeText("c")
	if !a.Shell().ChatOpen() || a.focus != focusChat {
		t.Fatalf("c should open and focus chat")
	}
	a.typeText("hello")
	a.key(tcell.KeyEnter)

	deadline := time.Now().Add(2 * time.Second)
	for a.chat.Pending() {
		if time.Now().After(deadline) {
			t.Fatalf("chat reply never arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}
	msgs := a.chat.Messages()
	if len(msgs) != 3 || msgs[1].Text != "hello" || msgs[2].Text != "hi there" {
		t.Fatalf("messages = %+v", msgs)
	}

	a.key(tcell.KeyEscape)
	if a.Shell().ChatOpen() || a.focus != focusDesktop {
		t.Fatalf("escape should close chat")
	}
}

func TestQuoteShownInFooter(t *testing.T) {
	a := newTestApp(t)
	a.fetchQuote(context.Background())
	if got := a.row(a.layout.FooterRow()); !strings.Contains(got, "Stay curious.") {
		t.Fatalf("footer = %q", got)
	}
}

func startRun(t *testing.T, ctx context.Context) (*App, chan error) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	app := NewApp(NewTcellScreenDriver(screen), Options{
		Shell:     desk.Options{Store: storage.NewMemoryStore()},
		Assistant: stubAssistant{},
		Opener:    &recordingOpener{},
	})
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	return app, done
}

func waitRun(t *testing.T, done chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop")
	}
}

func TestRunStopsOnStop(t *testing.T) {
	app, done := startRun(t, context.Background())
	app.Stop()
	app.Stop()
	waitRun(t, done)
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, done := startRun(t, ctx)
	cancel()
	waitRun(t, done)
}
