// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/app.go
// Summary: Terminal front end hosting the desktop shell.
// Usage: cmd/nbtab builds an App around a tcell screen and calls Run.
// Notes: All shell mutations happen on the Run goroutine; network replies
// only touch the chat session and the quote and then request a redraw.

package tui

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"nbtab/assistant"
	"nbtab/desk"
)

// Assistant answers chat messages and supplies the footer quote.
type Assistant interface {
	assistant.Chatter
	DailyQuote(ctx context.Context) string
}

// Options configures an App.
type Options struct {
	// Shell is passed to desk.NewShell. Collaborators and Viewport are
	// owned by the App and overwritten.
	Shell      desk.Options
	CellWidth  int
	CellHeight int
	Assistant  Assistant
	Opener     URLOpener
	Now        func() time.Time
}

type focusTarget int

const (
	focusDesktop focusTarget = iota
	focusSearch
	focusChat
	focusMemo
)

type memoPress struct {
	id       string
	col, row int
}

// App draws the shell on a terminal and feeds it input.
type App struct {
	screen ScreenDriver
	shell  *desk.Shell
	layout Layout
	opener URLOpener
	ai     Assistant
	chat   *assistant.Session
	now    func() time.Time
	ctx    context.Context

	focus     focusTarget
	search    lineInput
	chatInput lineInput
	memoInput lineInput
	memoID    string
	form      *form
	flash     *flashEffect

	prevButtons tcell.ButtonMask
	consumed    bool
	memoPress   memoPress
	cursor      *[2]int

	mu     sync.Mutex
	quote  string
	status string

	refresh  chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
}

// NewApp builds the shell with the App as its collaborator. The screen is
// initialised by Init or Run.
func NewApp(screen ScreenDriver, opts Options) *App {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	if opts.Opener == nil {
		opts.Opener = BrowserOpener{}
	}
	if opts.Assistant == nil {
		opts.Assistant = assistant.New(assistant.Config{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &App{
		screen:  screen,
		layout:  Layout{CellW: opts.CellWidth, CellH: opts.CellHeight},
		opener:  opts.Opener,
		ai:      opts.Assistant,
		chat:    assistant.NewSession(),
		flash:   newFlashEffect(defaultFlashColor, defaultFlashPeak, defaultFlashDuration),
		now:     opts.Now,
		ctx:     context.Background(),
		refresh: make(chan struct{}, 1),
		quit:    make(chan struct{}),
	}
	shellOpts := opts.Shell
	shellOpts.Collaborators = a
	// Resize grips span one cell; pointer samples land on cell centres.
	if shellOpts.Limits.Handles.X <= 0 {
		shellOpts.Limits.Handles.X = opts.CellWidth
	}
	if shellOpts.Limits.Handles.Y <= 0 {
		shellOpts.Limits.Handles.Y = opts.CellHeight
	}
	a.shell = desk.NewShell(shellOpts)
	a.shell.Subscribe(desk.ListenerFunc(a.onShellEvent))
	return a
}

// Shell returns the hosted shell.
func (a *App) Shell() *desk.Shell { return a.shell }

// Init prepares the screen and sizes the shell viewport to it.
func (a *App) Init() error {
	if err := a.screen.Init(); err != nil {
		return err
	}
	a.screen.SetStyle(tcell.StyleDefault)
	a.screen.EnableMouse()
	a.screen.HideCursor()
	a.resize()
	return nil
}

func (a *App) resize() {
	a.layout.Cols, a.layout.Rows = a.screen.Size()
	a.shell.SetViewport(a.layout.Viewport())
}

// Run initialises the screen and processes events until ctx is done or the
// user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}
	defer a.screen.Fini()
	a.ctx = ctx

	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-a.quit:
				return
			}
		}
	}()
	go a.fetchQuote(ctx)

	clock := time.NewTicker(time.Second)
	defer clock.Stop()
	frame := time.NewTicker(16 * time.Millisecond)
	defer frame.Stop()

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			a.handleEvent(ev)
		case <-a.refresh:
		case <-clock.C:
		case <-frame.C:
			if !a.flash.Active() {
				continue
			}
		case <-ctx.Done():
			return nil
		case <-a.quit:
			return nil
		}
		a.draw()
	}
}

// Stop ends Run.
func (a *App) Stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

func (a *App) requestRefresh() {
	select {
	case a.refresh <- struct{}{}:
	default:
	}
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Clear()
		a.resize()
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
}

func (a *App) fetchQuote(ctx context.Context) {
	q := a.ai.DailyQuote(ctx)
	a.mu.Lock()
	a.quote = q
	a.mu.Unlock()
	a.requestRefresh()
}

func (a *App) setStatus(msg string) {
	a.mu.Lock()
	a.status = msg
	a.mu.Unlock()
}

func (a *App) footerText() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != "" {
		return a.status
	}
	if a.quote != "" {
		return "“" + a.quote + "”"
	}
	return ""
}

func (a *App) sendChat() {
	text := a.chatInput.String()
	if a.chat.Send(a.ctx, a.ai, text, a.requestRefresh) {
		a.chatInput.Reset()
	}
}

func (a *App) onShellEvent(ev desk.Event) {
	switch ev.Type {
	case desk.EventModalChanged:
		if kind, _ := ev.Payload.(desk.ModalKind); kind == desk.ModalNone {
			a.form = nil
		}
	case desk.EventChatToggled:
		if open, _ := ev.Payload.(bool); open {
			a.focus = focusChat
		} else if a.focus == focusChat {
			a.focus = focusDesktop
		}
	case desk.EventDesktopSwitched:
		a.flash.Trigger(a.now())
		if a.focus == focusMemo {
			a.blurMemo()
		}
	case desk.EventWidgetsChanged:
		if a.focus == focusMemo {
			if _, ok := a.shell.Grid().Widget(a.memoID); !ok {
				a.blurMemo()
			}
		}
	}
	a.requestRefresh()
}

func (a *App) blurMemo() {
	a.focus = focusDesktop
	a.memoID = ""
	a.memoInput.Reset()
}

// RequestWallpaperChange opens the wallpaper form.
func (a *App) RequestWallpaperChange(current string) {
	a.form = newWallpaperForm(a.shell, current)
}

// RequestAddDesktop opens the new-desktop form.
func (a *App) RequestAddDesktop() {
	a.form = newDesktopForm(a.shell, a.shell.Catalog())
}

// OpenWidgetEditor opens the shortcut editor form.
func (a *App) OpenWidgetEditor(mode desk.EditorMode, w *desk.Widget) {
	a.form = newEditorForm(a.shell, a.shell.Catalog(), mode, w)
}

// OpenURL hands a URL to the browser.
func (a *App) OpenURL(url string) {
	if err := a.opener.Open(url); err != nil {
		log.Printf("App: Failed to open %s: %v", url, err)
		a.setStatus("Could not open " + url)
		return
	}
	log.Printf("App: Opened %s", url)
	a.setStatus("Opened " + url)
}
