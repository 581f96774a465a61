// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestFlashRampsUpAndFadesOut(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 2)
	driver := NewTcellScreenDriver(screen)
	base := tcell.StyleDefault.Background(tcell.NewRGBColor(0, 0, 0)).Foreground(tcell.NewRGBColor(0, 0, 0))
	area := CellRect{W: 10, H: 2}

	fx := newFlashEffect(tcell.NewRGBColor(255, 255, 255), 0.5, 100*time.Millisecond)
	if fx.Active() {
		t.Fatalf("new effect should be idle")
	}
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fx.Trigger(t0)
	if !fx.Active() {
		t.Fatalf("trigger should activate the effect")
	}

	if v, animating := fx.timeline.valueAt(t0.Add(50 * time.Millisecond)); !animating || v <= 0 || v >= 0.5 {
		t.Fatalf("mid ramp = %v animating=%v", v, animating)
	}

	screen.SetContent(0, 0, 'x', nil, base)
	fx.Apply(driver, area, t0.Add(100*time.Millisecond))
	ch, _, style, _ := screen.GetContent(0, 0)
	if ch != 'x' {
		t.Fatalf("flash must keep cell content, got %q", ch)
	}
	_, bg, _ := style.Decompose()
	if r, _, _ := bg.RGB(); r < 100 || r > 150 {
		t.Fatalf("tinted background red = %d", r)
	}
	if !fx.timeline.animating {
		t.Fatalf("reaching the peak should start the fade out")
	}

	if v, _ := fx.timeline.valueAt(t0.Add(250 * time.Millisecond)); v != 0 {
		t.Fatalf("after fade = %v", v)
	}
	if fx.Active() {
		t.Fatalf("effect should be idle after the fade")
	}
}

func TestBlendColor(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)
	if got := blendColor(black, white, 0); got != black {
		t.Fatalf("zero intensity should keep base")
	}
	r, g, b := blendColor(black, white, 1).RGB()
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("full intensity = %d,%d,%d", r, g, b)
	}
}
