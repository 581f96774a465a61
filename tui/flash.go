// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/flash.go
// Summary: Brief tint over the desktop area when the active desktop changes.
// Usage: The app triggers it on desktop switches and applies it after drawing.

package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	defaultFlashDuration = 250 * time.Millisecond
	defaultFlashPeak     = 0.35
)

var defaultFlashColor = tcell.NewRGBColor(255, 255, 255)

type fadeTimeline struct {
	initialized bool
	current     float32
	start       float32
	target      float32
	startTime   time.Time
	duration    time.Duration
	animating   bool
}

func (t *fadeTimeline) valueAt(now time.Time) (float32, bool) {
	if !t.initialized {
		return t.current, false
	}
	if !t.animating {
		t.current = t.target
		return t.current, false
	}
	if t.duration <= 0 {
		t.current = t.target
		t.animating = false
		return t.current, false
	}
	if now.Before(t.startTime) {
		return t.start, true
	}
	elapsed := now.Sub(t.startTime)
	if elapsed >= t.duration {
		t.current = t.target
		t.animating = false
		return t.current, false
	}
	progress := float32(elapsed) / float32(t.duration)
	// smoothstep
	progress = progress * progress * (3.0 - 2.0*progress)
	t.current = t.start + (t.target-t.start)*progress
	return t.current, true
}

func (t *fadeTimeline) startAnimation(current, target float32, duration time.Duration, when time.Time) {
	t.initialized = true
	t.start = current
	t.current = current
	t.target = target
	t.startTime = when
	t.duration = duration
	t.animating = current != target
	if duration <= 0 {
		t.current = target
		t.animating = false
	}
}

// flashEffect ramps a tint up to peak and back down to zero.
type flashEffect struct {
	color    tcell.Color
	peak     float32
	duration time.Duration
	timeline fadeTimeline
}

func newFlashEffect(color tcell.Color, peak float32, duration time.Duration) *flashEffect {
	if duration < 0 {
		duration = 0
	}
	return &flashEffect{color: color, peak: peak, duration: duration}
}

// Active reports whether the effect still changes the frame.
func (e *flashEffect) Active() bool {
	return e.timeline.animating || e.timeline.current > 0
}

// Trigger starts a flash from the current intensity.
func (e *flashEffect) Trigger(now time.Time) {
	current, _ := e.timeline.valueAt(now)
	e.timeline.startAnimation(current, e.peak, e.duration, now)
}

// Apply tints the cells of area. Once the peak is reached the fade out
// starts.
func (e *flashEffect) Apply(screen ScreenDriver, area CellRect, now time.Time) {
	intensity, _ := e.timeline.valueAt(now)
	if intensity <= 0 {
		return
	}
	for row := area.Row; row < area.Row+area.H; row++ {
		for col := area.Col; col < area.Col+area.W; col++ {
			mainc, combc, style, _ := screen.GetContent(col, row)
			screen.SetContent(col, row, mainc, combc, tintStyle(style, e.color, intensity))
		}
	}
	if !e.timeline.animating {
		e.timeline.startAnimation(intensity, 0, e.duration, now)
	}
}

func tintStyle(style tcell.Style, overlay tcell.Color, intensity float32) tcell.Style {
	if intensity <= 0 {
		return style
	}
	fg, bg, attrs := style.Decompose()
	if !fg.Valid() {
		fg = tcell.ColorWhite
	}
	if !bg.Valid() {
		bg = tcell.ColorBlack
	}
	return tcell.StyleDefault.Foreground(blendColor(fg, overlay, intensity)).
		Background(blendColor(bg, overlay, intensity)).
		Bold(attrs&tcell.AttrBold != 0).
		Underline(attrs&tcell.AttrUnderline != 0).
		Reverse(attrs&tcell.AttrReverse != 0).
		Dim(attrs&tcell.AttrDim != 0).
		Italic(attrs&tcell.AttrItalic != 0).
		StrikeThrough(attrs&tcell.AttrStrikeThrough != 0)
}

func blendColor(base, overlay tcell.Color, intensity float32) tcell.Color {
	if !overlay.Valid() || intensity <= 0 {
		return base
	}
	if !base.Valid() {
		return overlay
	}
	br, bg, bb := base.RGB()
	or, og, ob := overlay.RGB()
	blend := func(bc, oc int32) int32 {
		return int32(float32(bc)*(1-intensity) + float32(oc)*intensity)
	}
	return tcell.NewRGBColor(blend(br, or), blend(bg, og), blend(bb, ob))
}
