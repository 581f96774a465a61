// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/shell.go
// Summary: Shell coordinator owning desktops, per-desktop grids, the context
// menu, floating windows and the overlay/modal flags.
// Usage: Front ends feed pointer samples through HandleMouse and call the
// mutation methods; every persisted slice is written on change.
// Notes: A Shell is not safe for concurrent use. It is owned by one event loop.

package desk

import (
	"log"
	"time"

	"github.com/google/uuid"

	"nbtab/catalog"
)

// DefaultScrollDebounce separates two scroll-triggered desktop switches.
const DefaultScrollDebounce = 500 * time.Millisecond

// DefaultDoubleClick is the window for a title bar double click.
const DefaultDoubleClick = 400 * time.Millisecond

// ChatPanelWidth is the width of the chat overlay docked on the right edge.
const ChatPanelWidth = 384

// ModalKind identifies the modal collecting input from the user.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalWallpaper
	ModalAddDesktop
	ModalEditor
)

// EditorMode tells the widget editor whether it creates or edits.
type EditorMode int

const (
	EditorAdd EditorMode = iota
	EditorEdit
)

func (m EditorMode) String() string {
	if m == EditorEdit {
		return "edit"
	}
	return "add"
}

// Collaborators are the outer surfaces the shell asks for input or actions.
// Results come back through SetWallpaper, AddDesktop and SaveWidget.
type Collaborators interface {
	RequestWallpaperChange(current string)
	RequestAddDesktop()
	OpenWidgetEditor(mode EditorMode, widget *Widget)
	OpenURL(url string)
}

type noCollaborators struct{}

func (noCollaborators) RequestWallpaperChange(string)         {}
func (noCollaborators) RequestAddDesktop()                    {}
func (noCollaborators) OpenWidgetEditor(EditorMode, *Widget) {}
func (noCollaborators) OpenURL(string)                        {}

// Options configures a Shell.
type Options struct {
	Store            Store
	Collaborators    Collaborators
	Catalog          *catalog.Catalog
	Viewport         Size
	DefaultWallpaper string
	ScrollDebounce   time.Duration
	DoubleClick      time.Duration
	Limits           WindowLimits
	Now              func() time.Time
	NewID            func() string
}

type editorState struct {
	mode     EditorMode
	targetID string
}

// Shell is the application state owner.
type Shell struct {
	store    Store
	collab   Collaborators
	catalog  *catalog.Catalog
	registry *Registry
	grids    map[string]*Grid
	menu     ContextMenu
	windows  *WindowManager
	engine   string

	chatOpen bool
	modal    ModalKind
	editor   editorState

	viewport         Size
	scrollDebounce   time.Duration
	lastScrollSwitch time.Time
	doubleClick      time.Duration
	lastTitleClick   time.Time
	lastTitleWindow  string
	now              func() time.Time
	newID            func() string

	input      inputState
	dispatcher *EventDispatcher
}

// NewShell loads persisted state from opts.Store and returns a ready shell.
func NewShell(opts Options) *Shell {
	if opts.Collaborators == nil {
		opts.Collaborators = noCollaborators{}
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.DefaultWallpaper == "" {
		opts.DefaultWallpaper = DefaultWallpaper
	}
	if opts.ScrollDebounce <= 0 {
		opts.ScrollDebounce = DefaultScrollDebounce
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = DefaultDoubleClick
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	snap := LoadSnapshot(opts.Store, opts.DefaultWallpaper)
	reg := NewRegistry(snap.Desktops, snap.ActiveID, opts.DefaultWallpaper)
	reg.newID = opts.NewID

	s := &Shell{
		store:          opts.Store,
		collab:         opts.Collaborators,
		catalog:        opts.Catalog,
		registry:       reg,
		grids:          make(map[string]*Grid),
		windows:        NewWindowManager(opts.Viewport, opts.Limits),
		engine:         opts.Catalog.ResolveEngine(snap.Engine).Name,
		viewport:       opts.Viewport,
		scrollDebounce: opts.ScrollDebounce,
		doubleClick:    opts.DoubleClick,
		now:            opts.Now,
		newID:          opts.NewID,
		dispatcher:     NewEventDispatcher(),
	}
	for _, d := range reg.Desktops() {
		s.grids[d.ID] = NewGrid(snap.Widgets[d.ID])
	}

	for _, key := range snap.Migrated {
		if key == KeyDesktops {
			s.persistDesktops()
			continue
		}
		for _, d := range reg.Desktops() {
			if WidgetsKey(d.ID) == key {
				s.persistWidgets(d.ID)
			}
		}
	}
	if snap.ActiveID != reg.ActiveID() {
		s.persistActive()
	}

	log.Printf("Shell: Loaded %d desktops, active=%s, engine=%s", reg.Len(), reg.ActiveID(), s.engine)
	return s
}

// Subscribe registers a listener for shell events.
func (s *Shell) Subscribe(l Listener) {
	s.dispatcher.Subscribe(l)
}

func (s *Shell) emit(t EventType, payload interface{}) {
	s.dispatcher.Broadcast(Event{Type: t, Payload: payload})
}

// --- persistence ---

func (s *Shell) write(key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(key, value); err != nil {
		log.Printf("Shell: Failed to persist %s: %v", key, err)
	}
}

func (s *Shell) writeJSON(key string, v interface{}) {
	data, err := encodeJSON(key, v)
	if err != nil {
		log.Printf("Shell: %v", err)
		return
	}
	s.write(key, data)
}

func (s *Shell) persistDesktops() {
	s.writeJSON(KeyDesktops, s.registry.Desktops())
}

func (s *Shell) persistActive() {
	s.write(KeyActiveDesktop, s.registry.ActiveID())
}

func (s *Shell) persistWidgets(desktopID string) {
	g, ok := s.grids[desktopID]
	if !ok {
		return
	}
	s.writeJSON(WidgetsKey(desktopID), g.Widgets())
}

func (s *Shell) widgetsChanged() {
	id := s.registry.ActiveID()
	s.persistWidgets(id)
	s.emit(EventWidgetsChanged, id)
}

// --- read access ---

// Registry exposes the desktop registry for rendering.
func (s *Shell) Registry() *Registry { return s.registry }

// Windows exposes the window manager.
func (s *Shell) Windows() *WindowManager { return s.windows }

// Catalog returns the lookup tables in use.
func (s *Shell) Catalog() *catalog.Catalog { return s.catalog }

// Grid returns the widget grid of the active desktop.
func (s *Shell) Grid() *Grid {
	return s.GridFor(s.registry.ActiveID())
}

// GridFor returns the grid of a desktop, creating an empty one if needed.
func (s *Shell) GridFor(desktopID string) *Grid {
	g, ok := s.grids[desktopID]
	if !ok {
		g = NewGrid(nil)
		s.grids[desktopID] = g
	}
	return g
}

// Menu returns the context menu state.
func (s *Shell) Menu() ContextMenu { return s.menu }

// ChatOpen reports whether the chat overlay is visible.
func (s *Shell) ChatOpen() bool { return s.chatOpen }

// Modal returns the open modal.
func (s *Shell) Modal() ModalKind { return s.modal }

// Editor returns the pending editor mode and target.
func (s *Shell) Editor() (EditorMode, string) { return s.editor.mode, s.editor.targetID }

// Viewport returns the shell viewport size.
func (s *Shell) Viewport() Size { return s.viewport }

// SetViewport updates the viewport used for windows and new widgets.
func (s *Shell) SetViewport(v Size) {
	s.viewport = v
	s.windows.SetViewport(v)
	s.emit(EventWindowsChanged, nil)
}

// --- desktop registry ---

// SwitchDesktop activates a desktop and dismisses the chat overlay.
func (s *Shell) SwitchDesktop(id string) bool {
	prev := s.registry.ActiveID()
	if !s.registry.Switch(id) {
		return false
	}
	s.endGestures(prev)
	s.GridFor(id)
	s.closeChat()
	s.menu.Close()
	s.persistActive()
	s.emit(EventDesktopSwitched, id)
	return true
}

// endGestures commits a widget drag left running on the desktop being left.
func (s *Shell) endGestures(desktopID string) {
	g, ok := s.grids[desktopID]
	if !ok {
		return
	}
	if _, dragging := g.Dragging(); dragging {
		g.CancelDrag()
		s.persistWidgets(desktopID)
	}
}

// RequestAddDesktop opens the new-desktop modal.
func (s *Shell) RequestAddDesktop() {
	s.setModal(ModalAddDesktop)
	s.collab.RequestAddDesktop()
}

// AddDesktop creates a desktop, gives it an empty grid and switches to it.
func (s *Shell) AddDesktop(label, icon string) (Desktop, bool) {
	if icon == "" {
		icon = catalog.DefaultIconKey
	}
	prev := s.registry.ActiveID()
	d, ok := s.registry.Add(label, icon)
	if !ok {
		return Desktop{}, false
	}
	s.endGestures(prev)
	s.grids[d.ID] = NewGrid(nil)
	if s.modal == ModalAddDesktop {
		s.setModal(ModalNone)
	}
	s.persistDesktops()
	s.persistWidgets(d.ID)
	s.closeChat()
	s.menu.Close()
	s.persistActive()
	s.emit(EventDesktopsChanged, d.ID)
	s.emit(EventDesktopSwitched, d.ID)
	return d, true
}

// RequestWallpaperChange opens the wallpaper modal for the active desktop.
func (s *Shell) RequestWallpaperChange() {
	s.setModal(ModalWallpaper)
	s.collab.RequestWallpaperChange(s.registry.Active().Wallpaper)
}

// SetWallpaper changes the active desktop's wallpaper.
func (s *Shell) SetWallpaper(url string) bool {
	if s.modal == ModalWallpaper {
		s.setModal(ModalNone)
	}
	if !s.registry.SetWallpaper(url) {
		return false
	}
	s.persistDesktops()
	s.emit(EventDesktopsChanged, s.registry.ActiveID())
	return true
}

// Scroll turns a wheel step into a desktop switch. It is ignored while a
// window, the chat overlay or a modal is open, and within the debounce
// interval of the previous successful switch.
func (s *Shell) Scroll(deltaY int) bool {
	if deltaY == 0 || s.windows.Len() > 0 || s.chatOpen || s.modal != ModalNone {
		return false
	}
	now := s.now()
	if !s.lastScrollSwitch.IsZero() && now.Sub(s.lastScrollSwitch) < s.scrollDebounce {
		return false
	}
	step := 1
	if deltaY < 0 {
		step = -1
	}
	id, ok := s.registry.Step(step)
	if !ok {
		return false
	}
	if !s.SwitchDesktop(id) {
		return false
	}
	s.lastScrollSwitch = now
	return true
}

// --- overlays and modals ---

// ToggleChat shows or hides the chat overlay.
func (s *Shell) ToggleChat() {
	s.chatOpen = !s.chatOpen
	s.emit(EventChatToggled, s.chatOpen)
}

// CloseChat hides the chat overlay.
func (s *Shell) CloseChat() {
	s.closeChat()
}

func (s *Shell) closeChat() {
	if !s.chatOpen {
		return
	}
	s.chatOpen = false
	s.emit(EventChatToggled, false)
}

func (s *Shell) setModal(kind ModalKind) {
	if s.modal == kind {
		return
	}
	s.modal = kind
	s.emit(EventModalChanged, kind)
}

// CancelModal closes whichever modal is open without applying it.
func (s *Shell) CancelModal() {
	s.editor = editorState{}
	s.setModal(ModalNone)
}

// --- context menu ---

// OpenContextMenu shows the menu at p for a widget, or for the background
// when targetID is empty. Unknown targets fall back to the background menu.
func (s *Shell) OpenContextMenu(p Point, targetID string) {
	if targetID != "" {
		if _, ok := s.Grid().Widget(targetID); !ok {
			targetID = ""
		}
	}
	s.menu.Open(p, targetID)
	s.emit(EventMenuChanged, targetID)
}

// CloseContextMenu hides the menu.
func (s *Shell) CloseContextMenu() {
	if !s.menu.Visible {
		return
	}
	s.menu.Close()
	s.emit(EventMenuChanged, nil)
}

// DispatchMenuAction runs an action against the menu target and closes the
// menu.
func (s *Shell) DispatchMenuAction(action MenuAction) {
	target := s.menu.TargetID
	s.CloseContextMenu()
	switch action {
	case ActionAdd:
		s.OpenEditor(EditorAdd, "")
	case ActionSetWallpaper:
		s.RequestWallpaperChange()
	case ActionEdit:
		if target != "" {
			s.OpenEditor(EditorEdit, target)
		}
	case ActionResize:
		if target != "" && s.Grid().CycleSize(target) {
			s.widgetsChanged()
		}
	case ActionDelete:
		if target != "" && s.Grid().Remove(target) {
			s.widgetsChanged()
		}
	}
}

// --- widgets ---

// OpenEditor opens the widget editor. Edit mode requires a known widget.
func (s *Shell) OpenEditor(mode EditorMode, targetID string) bool {
	var current *Widget
	if mode == EditorEdit {
		w, ok := s.Grid().Widget(targetID)
		if !ok {
			return false
		}
		current = &w
	} else {
		targetID = ""
	}
	s.editor = editorState{mode: mode, targetID: targetID}
	s.setModal(ModalEditor)
	s.collab.OpenWidgetEditor(mode, current)
	return true
}

// SaveWidget applies the editor result and closes the editor. In add mode a
// new small shortcut is created near the viewport center.
func (s *Shell) SaveWidget(patch WidgetPatch) (string, bool) {
	ed := s.editor
	s.editor = editorState{}
	if s.modal == ModalEditor {
		s.setModal(ModalNone)
	}
	grid := s.Grid()
	switch ed.mode {
	case EditorAdd:
		w := Widget{
			ID:       s.newID(),
			Kind:     KindShortcut,
			Size:     SizeSmall,
			Position: Point{X: s.viewport.Width/2 - 50, Y: s.viewport.Height/2 - 50},
			ZIndex:   10,
		}
		patch.Apply(&w)
		if !grid.Add(w) {
			return "", false
		}
		s.widgetsChanged()
		return w.ID, true
	case EditorEdit:
		if ed.targetID == "" || !grid.Update(ed.targetID, patch) {
			return "", false
		}
		s.widgetsChanged()
		return ed.targetID, true
	}
	return "", false
}

// ActivateWidget performs a widget's click action: tab-mode shortcuts open
// their URL, window-mode shortcuts open or refocus their window.
func (s *Shell) ActivateWidget(id string) bool {
	w, ok := s.Grid().Widget(id)
	if !ok || w.Kind != KindShortcut || w.URL == "" {
		return false
	}
	switch w.OpenMethod {
	case OpenWindow:
		s.windows.Open(w)
		s.emit(EventWindowsChanged, id)
	default:
		s.collab.OpenURL(w.URL)
	}
	return true
}

// AddTodo appends an entry to a memo widget on the active desktop.
func (s *Shell) AddTodo(widgetID, text string) bool {
	if !s.Grid().AddTodo(widgetID, s.newID(), text) {
		return false
	}
	s.widgetsChanged()
	return true
}

// ToggleTodo flips a memo entry.
func (s *Shell) ToggleTodo(widgetID, todoID string) bool {
	if !s.Grid().ToggleTodo(widgetID, todoID) {
		return false
	}
	s.widgetsChanged()
	return true
}

// DeleteTodo removes a memo entry.
func (s *Shell) DeleteTodo(widgetID, todoID string) bool {
	if !s.Grid().DeleteTodo(widgetID, todoID) {
		return false
	}
	s.widgetsChanged()
	return true
}

// --- windows ---

// OpenWindow opens the window of a widget on the active desktop regardless
// of its open method.
func (s *Shell) OpenWindow(widgetID string) bool {
	w, ok := s.Grid().Widget(widgetID)
	if !ok {
		return false
	}
	s.windows.Open(w)
	s.emit(EventWindowsChanged, widgetID)
	return true
}

// CloseWindow discards a window.
func (s *Shell) CloseWindow(id string) bool {
	return s.windowOp(id, s.windows.Close)
}

// MinimizeWindow hides a window, keeping it restorable.
func (s *Shell) MinimizeWindow(id string) bool {
	return s.windowOp(id, s.windows.Minimize)
}

// MaximizeWindow toggles a window's maximized state.
func (s *Shell) MaximizeWindow(id string) bool {
	return s.windowOp(id, s.windows.ToggleMaximize)
}

// FocusWindow raises and restores a window.
func (s *Shell) FocusWindow(id string) bool {
	return s.windowOp(id, s.windows.Focus)
}

func (s *Shell) windowOp(id string, op func(string) bool) bool {
	if !op(id) {
		return false
	}
	s.emit(EventWindowsChanged, id)
	return true
}

// --- search engine ---

// Engine returns the active search engine.
func (s *Shell) Engine() catalog.SearchEngine {
	return s.catalog.ResolveEngine(s.engine)
}

// SelectEngine makes a known engine active and persists its name.
func (s *Shell) SelectEngine(name string) bool {
	e, ok := s.catalog.EngineByName(name)
	if !ok {
		return false
	}
	s.engine = e.Name
	s.write(KeyActiveEngine, e.Name)
	s.emit(EventEngineChanged, e.Name)
	return true
}

// Search opens the active engine's result page for q.
func (s *Shell) Search(q string) bool {
	target, ok := s.Engine().QueryURL(q)
	if !ok {
		return false
	}
	s.collab.OpenURL(target)
	return true
}
