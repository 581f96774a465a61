// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/widget.go
// Summary: Widget model for the desktop grid (shortcuts and memo checklists).
// Usage: Widgets are owned by a Grid; the Shell persists them per desktop.

package desk

import (
	"fmt"
	"strings"
)

// WidgetKind is the closed set of widget variants.
type WidgetKind int

const (
	KindShortcut WidgetKind = iota
	KindMemo
)

func (k WidgetKind) String() string {
	switch k {
	case KindShortcut:
		return "shortcut"
	case KindMemo:
		return "memo"
	default:
		return "unknown"
	}
}

func (k WidgetKind) MarshalText() ([]byte, error) {
	switch k {
	case KindShortcut, KindMemo:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("invalid widget kind %d", int(k))
}

func (k *WidgetKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "shortcut", "":
		*k = KindShortcut
	case "memo":
		*k = KindMemo
	default:
		return fmt.Errorf("unknown widget type %q", text)
	}
	return nil
}

// WidgetSize selects one of the fixed shortcut footprints.
type WidgetSize int

const (
	SizeSmall WidgetSize = iota
	SizeMedium
	SizeLarge
)

// Next returns the following size in the small -> medium -> large cycle.
func (s WidgetSize) Next() WidgetSize {
	switch s {
	case SizeSmall:
		return SizeMedium
	case SizeMedium:
		return SizeLarge
	default:
		return SizeSmall
	}
}

func (s WidgetSize) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

func (s WidgetSize) MarshalText() ([]byte, error) {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid widget size %d", int(s))
}

func (s *WidgetSize) UnmarshalText(text []byte) error {
	switch string(text) {
	case "small", "":
		*s = SizeSmall
	case "medium":
		*s = SizeMedium
	case "large":
		*s = SizeLarge
	default:
		return fmt.Errorf("unknown widget size %q", text)
	}
	return nil
}

// OpenMethod decides what activating a shortcut does.
type OpenMethod int

const (
	OpenTab OpenMethod = iota
	OpenWindow
)

func (m OpenMethod) String() string {
	if m == OpenWindow {
		return "window"
	}
	return "tab"
}

func (m OpenMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *OpenMethod) UnmarshalText(text []byte) error {
	switch string(text) {
	case "tab", "":
		*m = OpenTab
	case "window":
		*m = OpenWindow
	default:
		return fmt.Errorf("unknown open method %q", text)
	}
	return nil
}

// Footprint constants in shell pixels.
const (
	WidgetUnit = 80
	MemoWidth  = 288
	MemoHeight = 256

	MinWindowPercent = 20
	MaxWindowPercent = 100
)

// WindowConfig sizes the window a shortcut opens, as viewport percentages.
type WindowConfig struct {
	WidthPercent  int `json:"widthPercent"`
	HeightPercent int `json:"heightPercent"`
}

// Clamped returns the config with both percentages limited to [20,100].
func (c WindowConfig) Clamped() WindowConfig {
	return WindowConfig{
		WidthPercent:  clampInt(c.WidthPercent, MinWindowPercent, MaxWindowPercent),
		HeightPercent: clampInt(c.HeightPercent, MinWindowPercent, MaxWindowPercent),
	}
}

// TodoItem is a single entry of a memo checklist.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Widget is a freely positioned element of a desktop grid.
type Widget struct {
	ID              string        `json:"id"`
	Kind            WidgetKind    `json:"type"`
	Title           string        `json:"title,omitempty"`
	URL             string        `json:"url,omitempty"`
	Icon            string        `json:"icon,omitempty"`
	IconText        string        `json:"iconText,omitempty"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
	Position        Point         `json:"position"`
	Size            WidgetSize    `json:"size"`
	ZIndex          int           `json:"zIndex"`
	OpenMethod      OpenMethod    `json:"openMethod,omitempty"`
	WindowConfig    *WindowConfig `json:"windowConfig,omitempty"`
	Todos           []TodoItem    `json:"todos,omitempty"`
}

// Footprint returns the rendered size. Memos ignore Size.
func (w *Widget) Footprint() Size {
	switch w.Kind {
	case KindMemo:
		return Size{Width: MemoWidth, Height: MemoHeight}
	case KindShortcut:
		switch w.Size {
		case SizeMedium:
			return Size{Width: WidgetUnit * 3 / 2, Height: WidgetUnit * 3 / 2}
		case SizeLarge:
			return Size{Width: WidgetUnit * 2, Height: WidgetUnit * 2}
		}
	}
	return Size{Width: WidgetUnit, Height: WidgetUnit}
}

// Bounds returns the widget rectangle at its current position.
func (w *Widget) Bounds() Rect {
	return RectAt(w.Position, w.Footprint())
}

// SetIcon sets the image icon and clears the text label.
func (w *Widget) SetIcon(url string) {
	w.Icon = url
	if url != "" {
		w.IconText = ""
	}
}

// SetIconText sets the text label and clears the image icon.
func (w *Widget) SetIconText(text string) {
	w.IconText = text
	if text != "" {
		w.Icon = ""
	}
}

// Glyph is the short label drawn when the widget has no image icon.
func (w *Widget) Glyph() string {
	if w.IconText != "" {
		return w.IconText
	}
	if title := strings.TrimSpace(w.Title); title != "" {
		return string([]rune(title)[:1])
	}
	return "A"
}

// EffectiveWindowConfig returns the clamped window config or the defaults.
func (w *Widget) EffectiveWindowConfig(defaults WindowConfig) WindowConfig {
	if w.WindowConfig == nil {
		return defaults.Clamped()
	}
	cfg := *w.WindowConfig
	if cfg.WidthPercent == 0 {
		cfg.WidthPercent = defaults.WidthPercent
	}
	if cfg.HeightPercent == 0 {
		cfg.HeightPercent = defaults.HeightPercent
	}
	return cfg.Clamped()
}

func (w *Widget) addTodo(id, text string) bool {
	text = strings.TrimSpace(text)
	if w.Kind != KindMemo || text == "" {
		return false
	}
	w.Todos = append(w.Todos, TodoItem{ID: id, Text: text})
	return true
}

func (w *Widget) toggleTodo(id string) bool {
	for i := range w.Todos {
		if w.Todos[i].ID == id {
			w.Todos[i].Completed = !w.Todos[i].Completed
			return true
		}
	}
	return false
}

func (w *Widget) deleteTodo(id string) bool {
	for i := range w.Todos {
		if w.Todos[i].ID == id {
			w.Todos = append(w.Todos[:i], w.Todos[i+1:]...)
			return true
		}
	}
	return false
}

func (w Widget) clone() Widget {
	if w.WindowConfig != nil {
		cfg := *w.WindowConfig
		w.WindowConfig = &cfg
	}
	if w.Todos != nil {
		w.Todos = append([]TodoItem(nil), w.Todos...)
	}
	return w
}

// WidgetPatch is a partial widget update produced by the editor. Nil fields
// are left untouched.
type WidgetPatch struct {
	Title           *string
	URL             *string
	Icon            *string
	IconText        *string
	BackgroundColor *string
	OpenMethod      *OpenMethod
	WindowConfig    *WindowConfig
}

// Apply merges the patch into w. When a patch carries both a non-empty icon
// and icon text, the image icon wins.
func (p WidgetPatch) Apply(w *Widget) {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.URL != nil {
		w.URL = *p.URL
	}
	if p.BackgroundColor != nil {
		w.BackgroundColor = *p.BackgroundColor
	}
	if p.IconText != nil {
		w.SetIconText(*p.IconText)
	}
	if p.Icon != nil {
		w.SetIcon(*p.Icon)
	}
	if p.OpenMethod != nil {
		w.OpenMethod = *p.OpenMethod
	}
	if p.WindowConfig != nil {
		cfg := p.WindowConfig.Clamped()
		w.WindowConfig = &cfg
	}
}

// DefaultWidgets returns the starter widgets of a fresh home desktop.
func DefaultWidgets() []Widget {
	return []Widget{
		{
			ID:       "memo-1",
			Kind:     KindMemo,
			Position: Point{X: 50, Y: 50},
			Size:     SizeLarge,
			ZIndex:   1,
			Todos: []TodoItem{
				{ID: "1", Text: "Review PRs for Q3 release"},
				{ID: "2", Text: "Gemini API Integration", Completed: true},
				{ID: "3", Text: "Update system metadata"},
			},
		},
		{
			ID:              "theme-1",
			Kind:            KindShortcut,
			Title:           "Gradient",
			URL:             "#",
			IconText:        "G",
			BackgroundColor: "linear-gradient(135deg, #22d3ee 0%, #2563eb 100%)",
			Position:        Point{X: 380, Y: 160},
			Size:            SizeSmall,
			ZIndex:          1,
		},
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
