// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/form.go
// Summary: Single-line inputs and the modal forms built from them.
// Usage: The shell asks for a wallpaper, a desktop or a widget; the app
// opens one of these forms and applies it back on submit.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"nbtab/catalog"
	"nbtab/desk"
)

// lineInput is an editable single line of text.
type lineInput struct {
	runes  []rune
	cursor int
}

func newLineInput(text string) lineInput {
	r := []rune(text)
	return lineInput{runes: r, cursor: len(r)}
}

func (in *lineInput) String() string { return string(in.runes) }

func (in *lineInput) Set(text string) {
	*in = newLineInput(text)
}

func (in *lineInput) Reset() { in.Set("") }

// HandleKey applies an editing key. It returns false for keys it does not
// edit with.
func (in *lineInput) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		in.runes = append(in.runes[:in.cursor], append([]rune{ev.Rune()}, in.runes[in.cursor:]...)...)
		in.cursor++
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if in.cursor > 0 {
			in.runes = append(in.runes[:in.cursor-1], in.runes[in.cursor:]...)
			in.cursor--
		}
	case tcell.KeyDelete:
		if in.cursor < len(in.runes) {
			in.runes = append(in.runes[:in.cursor], in.runes[in.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if in.cursor > 0 {
			in.cursor--
		}
	case tcell.KeyRight:
		if in.cursor < len(in.runes) {
			in.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		in.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		in.cursor = len(in.runes)
	case tcell.KeyCtrlU:
		in.Reset()
	default:
		return false
	}
	return true
}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
)

type formField struct {
	label   string
	kind    fieldKind
	input   lineInput
	choices []string
	labels  []string
	choice  int
}

func textField(label, value string) *formField {
	return &formField{label: label, kind: fieldText, input: newLineInput(value)}
}

func choiceField(label string, choices, labels []string, selected string) *formField {
	f := &formField{label: label, kind: fieldChoice, choices: choices, labels: labels}
	for i, c := range choices {
		if c == selected {
			f.choice = i
		}
	}
	return f
}

// Value returns the text or the selected choice.
func (f *formField) Value() string {
	if f.kind == fieldChoice {
		if len(f.choices) == 0 {
			return ""
		}
		return f.choices[f.choice]
	}
	return f.input.String()
}

// Display returns what the field shows next to its label.
func (f *formField) Display() string {
	if f.kind == fieldChoice {
		if len(f.choices) == 0 {
			return ""
		}
		label := f.choices[f.choice]
		if f.choice < len(f.labels) {
			label = f.labels[f.choice]
		}
		return "< " + label + " >"
	}
	return f.input.String()
}

func (f *formField) cycle(delta int) {
	if n := len(f.choices); n > 0 {
		f.choice = ((f.choice+delta)%n + n) % n
	}
}

// form is an open modal. submit returns an error message to keep the form
// open, or "" once the result has been applied.
type form struct {
	kind   desk.ModalKind
	title  string
	hint   string
	fields []*formField
	focus  int
	err    string
	submit func(f *form) string
	// extra handles form specific keys before the generic ones.
	extra func(f *form, ev *tcell.EventKey) bool
}

func (f *form) field(label string) *formField {
	for _, fld := range f.fields {
		if fld.label == label {
			return fld
		}
	}
	return nil
}

func (f *form) focused() *formField {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	return f.fields[f.focus]
}

type formOutcome int

const (
	formContinue formOutcome = iota
	formSubmitted
	formCancelled
)

// HandleKey feeds a key to the form.
func (f *form) HandleKey(ev *tcell.EventKey) formOutcome {
	if f.extra != nil && f.extra(f, ev) {
		return formContinue
	}
	cur := f.focused()
	switch ev.Key() {
	case tcell.KeyEscape:
		return formCancelled
	case tcell.KeyEnter:
		if msg := f.submit(f); msg != "" {
			f.err = msg
			return formContinue
		}
		return formSubmitted
	case tcell.KeyTab, tcell.KeyDown:
		f.focus = (f.focus + 1) % len(f.fields)
		return formContinue
	case tcell.KeyBacktab, tcell.KeyUp:
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
		return formContinue
	}
	if cur == nil {
		return formContinue
	}
	if cur.kind == fieldChoice {
		switch {
		case ev.Key() == tcell.KeyLeft:
			cur.cycle(-1)
		case ev.Key() == tcell.KeyRight, ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			cur.cycle(1)
		}
		return formContinue
	}
	if cur.input.HandleKey(ev) {
		f.err = ""
	}
	return formContinue
}

func newWallpaperForm(s *desk.Shell, current string) *form {
	return &form{
		kind:   desk.ModalWallpaper,
		title:  "Change Wallpaper",
		hint:   "Enter save · Esc cancel",
		fields: []*formField{textField("Image URL", current)},
		submit: func(f *form) string {
			url := strings.TrimSpace(f.fields[0].Value())
			if url == "" {
				return "Enter an image URL"
			}
			s.SetWallpaper(url)
			return ""
		},
	}
}

func newDesktopForm(s *desk.Shell, cat *catalog.Catalog) *form {
	keys := cat.IconKeys()
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = cat.Glyph(k) + " " + k
	}
	return &form{
		kind:  desk.ModalAddDesktop,
		title: "New Desktop",
		hint:  "Enter create · ←/→ icon · Esc cancel",
		fields: []*formField{
			textField("Name", ""),
			choiceField("Icon", keys, labels, catalog.DefaultIconKey),
		},
		submit: func(f *form) string {
			if _, ok := s.AddDesktop(f.fields[0].Value(), f.fields[1].Value()); !ok {
				return "Enter a name"
			}
			return ""
		},
	}
}

// Editor field labels.
const (
	fieldTitle    = "Title"
	fieldURL      = "Link"
	fieldIcon     = "Icon URL"
	fieldIconText = "Icon text"
	fieldColor    = "Color"
	fieldOpen     = "Open in"
	fieldWidth    = "Width %"
	fieldHeight   = "Height %"
)

func newEditorForm(s *desk.Shell, cat *catalog.Catalog, mode desk.EditorMode, w *desk.Widget) *form {
	cur := desk.Widget{BackgroundColor: cat.DefaultColor().Value}
	cfg := s.Windows().Limits().Default
	if w != nil {
		cur = *w
		if cur.BackgroundColor == "" {
			cur.BackgroundColor = cat.DefaultColor().Value
		}
		if cur.WindowConfig != nil {
			cfg = *cur.WindowConfig
		}
	}

	colorValues := make([]string, len(cat.Colors))
	colorLabels := make([]string, len(cat.Colors))
	for i, c := range cat.Colors {
		colorValues[i] = c.Value
		colorLabels[i] = c.Label
	}

	title := "Add Shortcut"
	if mode == desk.EditorEdit {
		title = "Edit Shortcut"
	}
	return &form{
		kind:  desk.ModalEditor,
		title: title,
		hint:  "Enter save · F2 favicon · Esc cancel",
		fields: []*formField{
			textField(fieldURL, cur.URL),
			textField(fieldTitle, cur.Title),
			textField(fieldIcon, cur.Icon),
			textField(fieldIconText, cur.IconText),
			choiceField(fieldColor, colorValues, colorLabels, cur.BackgroundColor),
			choiceField(fieldOpen, []string{desk.OpenTab.String(), desk.OpenWindow.String()},
				[]string{"New tab", "Window"}, cur.OpenMethod.String()),
			textField(fieldWidth, strconv.Itoa(cfg.WidthPercent)),
			textField(fieldHeight, strconv.Itoa(cfg.HeightPercent)),
		},
		extra: func(f *form, ev *tcell.EventKey) bool {
			if ev.Key() != tcell.KeyF2 {
				return false
			}
			if icon, ok := catalog.FaviconURL(f.field(fieldURL).Value()); ok {
				f.field(fieldIcon).input.Set(icon)
				f.field(fieldIconText).input.Reset()
			}
			return true
		},
		submit: func(f *form) string {
			patch, err := editorPatch(f)
			if err != nil {
				return err.Error()
			}
			s.SaveWidget(patch)
			return ""
		},
	}
}

func editorPatch(f *form) (desk.WidgetPatch, error) {
	width, err := percentField(f.field(fieldWidth))
	if err != nil {
		return desk.WidgetPatch{}, err
	}
	height, err := percentField(f.field(fieldHeight))
	if err != nil {
		return desk.WidgetPatch{}, err
	}
	var method desk.OpenMethod
	if err := method.UnmarshalText([]byte(f.field(fieldOpen).Value())); err != nil {
		return desk.WidgetPatch{}, err
	}
	title := f.field(fieldTitle).Value()
	url := strings.TrimSpace(f.field(fieldURL).Value())
	icon := strings.TrimSpace(f.field(fieldIcon).Value())
	iconText := f.field(fieldIconText).Value()
	color := f.field(fieldColor).Value()
	return desk.WidgetPatch{
		Title:           &title,
		URL:             &url,
		Icon:            &icon,
		IconText:        &iconText,
		BackgroundColor: &color,
		OpenMethod:      &method,
		WindowConfig:    &desk.WindowConfig{WidthPercent: width, HeightPercent: height},
	}, nil
}

func percentField(f *formField) (int, error) {
	v := strings.TrimSpace(f.Value())
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", f.label)
	}
	return n, nil
}
