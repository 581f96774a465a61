// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/window_manager.go
// Summary: Floating window collection with drag, edge resize and z-order.
// Usage: Owned by the Shell; windows are ephemeral and never persisted.

package desk

// WindowZFloor keeps every window above the desktop content.
const WindowZFloor = 60

// Handles is the thickness of the resize grips along each axis.
type Handles struct {
	X, Y int
}

// WindowLimits configures the window manager.
type WindowLimits struct {
	MinWidth  int
	MinHeight int
	ZFloor    int
	Default   WindowConfig
	Handles   Handles
}

// DefaultWindowLimits returns the stock limits.
func DefaultWindowLimits() WindowLimits {
	return WindowLimits{
		MinWidth:  300,
		MinHeight: 200,
		ZFloor:    WindowZFloor,
		Default:   WindowConfig{WidthPercent: 60, HeightPercent: 70},
		Handles:   Handles{X: ResizeHandle, Y: ResizeHandle},
	}
}

func (l WindowLimits) normalized() WindowLimits {
	def := DefaultWindowLimits()
	if l.MinWidth <= 0 {
		l.MinWidth = def.MinWidth
	}
	if l.MinHeight <= 0 {
		l.MinHeight = def.MinHeight
	}
	if l.ZFloor <= 0 {
		l.ZFloor = def.ZFloor
	}
	if l.Default.WidthPercent == 0 {
		l.Default.WidthPercent = def.Default.WidthPercent
	}
	if l.Default.HeightPercent == 0 {
		l.Default.HeightPercent = def.Default.HeightPercent
	}
	l.Default = l.Default.Clamped()
	if l.Handles.X <= 0 {
		l.Handles.X = def.Handles.X
	}
	if l.Handles.Y <= 0 {
		l.Handles.Y = def.Handles.Y
	}
	return l
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
)

type windowGesture struct {
	kind          gestureKind
	windowID      string
	edges         Edge
	pointerOrigin Point
	origin        Point
	originSize    Size
}

// WindowManager owns the open windows in creation order.
type WindowManager struct {
	windows  []*Window
	viewport Size
	limits   WindowLimits
	gesture  windowGesture
}

// NewWindowManager creates an empty manager for the given viewport.
func NewWindowManager(viewport Size, limits WindowLimits) *WindowManager {
	return &WindowManager{
		viewport: viewport,
		limits:   limits.normalized(),
	}
}

// SetViewport updates the viewport used for centering and maximizing.
func (m *WindowManager) SetViewport(viewport Size) {
	m.viewport = viewport
}

// Viewport returns the current viewport size.
func (m *WindowManager) Viewport() Size { return m.viewport }

// Limits returns the effective limits.
func (m *WindowManager) Limits() WindowLimits { return m.limits }

func (m *WindowManager) find(id string) (*Window, int) {
	for i, w := range m.windows {
		if w.ID == id {
			return w, i
		}
	}
	return nil, -1
}

// Len returns the number of windows, minimized ones included.
func (m *WindowManager) Len() int { return len(m.windows) }

// Window returns a copy of a window.
func (m *WindowManager) Window(id string) (Window, bool) {
	w, _ := m.find(id)
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// Windows returns copies of all windows in creation order.
func (m *WindowManager) Windows() []Window {
	out := make([]Window, len(m.windows))
	for i, w := range m.windows {
		out[i] = *w
	}
	return out
}

// Minimized returns the windows currently offered for restore.
func (m *WindowManager) Minimized() []Window {
	var out []Window
	for _, w := range m.windows {
		if w.Minimized {
			out = append(out, *w)
		}
	}
	return out
}

// PaintOrder returns the visible windows from bottom to top.
func (m *WindowManager) PaintOrder() []Window {
	out := make([]Window, 0, len(m.windows))
	for _, w := range m.windows {
		if !w.Minimized {
			out = append(out, *w)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ZIndex < out[j-1].ZIndex; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (m *WindowManager) raise(w *Window) {
	zs := make([]int, len(m.windows))
	for i, other := range m.windows {
		zs[i] = other.ZIndex
	}
	w.ZIndex = nextZ(m.limits.ZFloor, zs)
}

// Open shows the window for a widget. An existing window for the same id is
// restored and raised instead of duplicated.
func (m *WindowManager) Open(src Widget) Window {
	if w, _ := m.find(src.ID); w != nil {
		w.Minimized = false
		m.raise(w)
		return *w
	}
	cfg := src.EffectiveWindowConfig(m.limits.Default)
	size := Size{
		Width:  m.viewport.Width * cfg.WidthPercent / 100,
		Height: m.viewport.Height * cfg.HeightPercent / 100,
	}
	w := &Window{
		ID:              src.ID,
		URL:             src.URL,
		Title:           src.Title,
		Icon:            src.Icon,
		IconText:        src.IconText,
		BackgroundColor: src.BackgroundColor,
		Position: Point{
			X: (m.viewport.Width - size.Width) / 2,
			Y: (m.viewport.Height - size.Height) / 2,
		},
		Size: size,
	}
	m.raise(w)
	m.windows = append(m.windows, w)
	return *w
}

// Close discards a window and its geometry.
func (m *WindowManager) Close(id string) bool {
	_, idx := m.find(id)
	if idx < 0 {
		return false
	}
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	if m.gesture.windowID == id {
		m.gesture = windowGesture{}
	}
	return true
}

// Minimize hides a window while keeping it restorable.
func (m *WindowManager) Minimize(id string) bool {
	w, _ := m.find(id)
	if w == nil {
		return false
	}
	w.Minimized = true
	if m.gesture.windowID == id {
		m.gesture = windowGesture{}
	}
	return true
}

// ToggleMaximize flips the maximized flag. Stored geometry is untouched.
func (m *WindowManager) ToggleMaximize(id string) bool {
	w, _ := m.find(id)
	if w == nil {
		return false
	}
	w.Maximized = !w.Maximized
	if m.gesture.windowID == id {
		m.gesture = windowGesture{}
	}
	return true
}

// Focus raises a window and clears its minimized flag.
func (m *WindowManager) Focus(id string) bool {
	w, _ := m.find(id)
	if w == nil {
		return false
	}
	w.Minimized = false
	m.raise(w)
	return true
}

// UpdateGeometry applies a partial position and/or size update.
func (m *WindowManager) UpdateGeometry(id string, pos *Point, size *Size) bool {
	w, _ := m.find(id)
	if w == nil {
		return false
	}
	if pos != nil {
		w.Position = *pos
	}
	if size != nil {
		w.Size = *size
	}
	return true
}

// HitTest returns the topmost visible window under p.
func (m *WindowManager) HitTest(p Point) (Hit, bool) {
	order := m.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		region, edges := regionAt(w.Frame(m.viewport), p, w.Maximized, m.limits.Handles)
		if region != RegionNone {
			return Hit{WindowID: w.ID, Region: region, Edges: edges}, true
		}
	}
	return Hit{}, false
}

func (m *WindowManager) begin(kind gestureKind, id string, edges Edge, pointer Point) bool {
	w, _ := m.find(id)
	if w == nil || w.Maximized || w.Minimized {
		return false
	}
	m.raise(w)
	m.gesture = windowGesture{
		kind:          kind,
		windowID:      id,
		edges:         edges,
		pointerOrigin: pointer,
		origin:        w.Position,
		originSize:    w.Size,
	}
	return true
}

// BeginDrag starts a title bar drag. Maximized windows cannot be dragged.
func (m *WindowManager) BeginDrag(id string, pointer Point) bool {
	return m.begin(gestureDrag, id, 0, pointer)
}

// BeginResize starts an edge resize. Maximized windows cannot be resized.
func (m *WindowManager) BeginResize(id string, edges Edge, pointer Point) bool {
	if edges == 0 {
		return false
	}
	return m.begin(gestureResize, id, edges, pointer)
}

// Move updates the active gesture from the cumulative pointer displacement.
func (m *WindowManager) Move(pointer Point) {
	if m.gesture.kind == gestureNone {
		return
	}
	g := m.gesture
	delta := pointer.Sub(g.pointerOrigin)
	switch g.kind {
	case gestureDrag:
		pos := g.origin.Add(delta)
		m.UpdateGeometry(g.windowID, &pos, nil)
	case gestureResize:
		pos, size := resizeFrame(g.origin, g.originSize, delta, g.edges, m.limits)
		m.UpdateGeometry(g.windowID, &pos, &size)
	}
}

// Release ends the active gesture.
func (m *WindowManager) Release() {
	m.gesture = windowGesture{}
}

// Capturing reports whether a drag or resize is in progress. While it is,
// pointer input must not reach embedded content.
func (m *WindowManager) Capturing() bool {
	return m.gesture.kind != gestureNone
}

// CapturingWindow returns the window owning the active gesture.
func (m *WindowManager) CapturingWindow() (string, bool) {
	return m.gesture.windowID, m.gesture.kind != gestureNone
}

// resizeFrame computes the geometry for an edge resize. Each edge is computed
// independently against the minimum size; the west and north edges keep the
// opposite edge fixed.
func resizeFrame(origin Point, size Size, delta Point, edges Edge, limits WindowLimits) (Point, Size) {
	pos := origin
	out := size
	if edges&EdgeE != 0 {
		out.Width = max(limits.MinWidth, size.Width+delta.X)
	}
	if edges&EdgeS != 0 {
		out.Height = max(limits.MinHeight, size.Height+delta.Y)
	}
	if edges&EdgeW != 0 {
		out.Width = max(limits.MinWidth, size.Width-delta.X)
		pos.X = origin.X + (size.Width - out.Width)
	}
	if edges&EdgeN != 0 {
		out.Height = max(limits.MinHeight, size.Height-delta.Y)
		pos.Y = origin.Y + (size.Height - out.Height)
	}
	return pos, out
}
