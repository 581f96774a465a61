package desk

import "testing"

func TestMenuActionsDependOnTarget(t *testing.T) {
	var m ContextMenu
	m.Open(Point{X: 10, Y: 10}, "")
	if got := m.Actions(); len(got) != 2 || got[0] != ActionAdd || got[1] != ActionSetWallpaper {
		t.Fatalf("unexpected background actions %v", got)
	}
	m.Open(Point{X: 20, Y: 20}, "w1")
	if got := m.Actions(); len(got) != 3 || got[0] != ActionEdit || got[2] != ActionDelete {
		t.Fatalf("unexpected widget actions %v", got)
	}
	if m.X != 20 || m.TargetID != "w1" {
		t.Fatalf("second open should replace the first: %+v", m)
	}
}

func TestMenuActionAt(t *testing.T) {
	var m ContextMenu
	m.Open(Point{X: 100, Y: 100}, "w1")
	cases := []struct {
		p    Point
		want MenuAction
		ok   bool
	}{
		{Point{X: 110, Y: 100 + MenuPadding}, ActionEdit, true},
		{Point{X: 110, Y: 100 + MenuPadding + MenuItemHeight}, ActionResize, true},
		{Point{X: 110, Y: 100 + MenuPadding + 2*MenuItemHeight + 5}, ActionDelete, true},
		{Point{X: 110, Y: 101}, 0, false},
		{Point{X: 99, Y: 120}, 0, false},
		{Point{X: 100 + MenuWidth, Y: 120}, 0, false},
	}
	for _, tc := range cases {
		got, ok := m.ActionAt(tc.p)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("at %+v expected %v/%v, got %v/%v", tc.p, tc.want, tc.ok, got, ok)
		}
	}
	m.Close()
	if _, ok := m.ActionAt(Point{X: 110, Y: 110}); ok {
		t.Fatalf("closed menu should not hit")
	}
}
