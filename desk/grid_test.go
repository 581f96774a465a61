package desk

import "testing"

func threeWidgets() []Widget {
	return []Widget{
		{ID: "a", Kind: KindShortcut, Position: Point{X: 0, Y: 0}, ZIndex: 1},
		{ID: "b", Kind: KindShortcut, Position: Point{X: 40, Y: 40}, ZIndex: 5},
		{ID: "c", Kind: KindShortcut, Position: Point{X: 400, Y: 400}, ZIndex: 3},
	}
}

func TestBringToFrontIsStrictlyTopmost(t *testing.T) {
	g := NewGrid(threeWidgets())
	sequence := []string{"a", "c", "a", "b", "b", "c", "a"}
	for _, id := range sequence {
		z, ok := g.BringToFront(id)
		if !ok {
			t.Fatalf("bring %s to front failed", id)
		}
		for _, w := range g.Widgets() {
			if w.ID != id && w.ZIndex >= z {
				t.Fatalf("after raising %s (z=%d), %s has z=%d", id, z, w.ID, w.ZIndex)
			}
		}
	}
}

func TestDragUsesAnchorDeltaWithoutClamping(t *testing.T) {
	g := NewGrid(threeWidgets())
	if !g.Press("c", Point{X: 410, Y: 410}) {
		t.Fatalf("press failed")
	}
	g.Drag(Point{X: 300, Y: 200})
	g.Drag(Point{X: -800, Y: 20})
	res, ok := g.Release(Point{X: -790, Y: 30})
	if !ok {
		t.Fatalf("expected a gesture to end")
	}
	want := Point{X: 400 - 1200, Y: 400 - 380}
	if res.To != want {
		t.Fatalf("expected final position %+v, got %+v", want, res.To)
	}
	if w, _ := g.Widget("c"); w.Position != want {
		t.Fatalf("widget not committed: %+v", w.Position)
	}
	if !res.Moved {
		t.Fatalf("expected gesture to be marked as moved")
	}
	if _, dragging := g.Dragging(); dragging {
		t.Fatalf("expected idle after release")
	}
}

func TestReleaseWithoutMovementIsClick(t *testing.T) {
	g := NewGrid(threeWidgets())
	g.Press("a", Point{X: 10, Y: 10})
	res, _ := g.Release(Point{X: 10, Y: 10})
	if res.Moved {
		t.Fatalf("stationary gesture should not count as moved")
	}

	g.Press("a", Point{X: 10, Y: 10})
	g.Drag(Point{X: 11, Y: 10})
	res, _ = g.Release(Point{X: 10, Y: 10})
	if !res.Moved {
		t.Fatalf("any movement during the gesture should suppress the click")
	}
}

func TestReleaseWhileIdleIsNoop(t *testing.T) {
	g := NewGrid(threeWidgets())
	if _, ok := g.Release(Point{X: 1, Y: 1}); ok {
		t.Fatalf("release without press should report no gesture")
	}
	g.Drag(Point{X: 50, Y: 50})
	if w, _ := g.Widget("a"); w.Position != (Point{}) {
		t.Fatalf("drag while idle moved widget to %+v", w.Position)
	}
}

func TestCycleSizeWrapsAfterThree(t *testing.T) {
	g := NewGrid(threeWidgets())
	for i := 0; i < 3; i++ {
		g.CycleSize("a")
		w, _ := g.Widget("a")
		if w.Size < SizeSmall || w.Size > SizeLarge {
			t.Fatalf("size out of range: %v", w.Size)
		}
	}
	if w, _ := g.Widget("a"); w.Size != SizeSmall {
		t.Fatalf("expected wrap back to small, got %v", w.Size)
	}
	if g.CycleSize("missing") {
		t.Fatalf("unknown id should be a no-op")
	}
}

func TestWidgetAtPrefersHighestZ(t *testing.T) {
	g := NewGrid(threeWidgets())
	id, ok := g.WidgetAt(Point{X: 50, Y: 50})
	if !ok || id != "b" {
		t.Fatalf("expected b on top, got %q", id)
	}
	g.BringToFront("a")
	if id, _ := g.WidgetAt(Point{X: 50, Y: 50}); id != "a" {
		t.Fatalf("expected a after raise, got %q", id)
	}
	if _, ok := g.WidgetAt(Point{X: 300, Y: 300}); ok {
		t.Fatalf("expected background hit")
	}
}

func TestRemoveAbandonsDrag(t *testing.T) {
	g := NewGrid(threeWidgets())
	g.Press("b", Point{X: 45, Y: 45})
	if !g.Remove("b") {
		t.Fatalf("remove failed")
	}
	if _, dragging := g.Dragging(); dragging {
		t.Fatalf("drag should end with its widget")
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 widgets, got %d", g.Len())
	}
}

func TestNewGridDropsDuplicateIDs(t *testing.T) {
	g := NewGrid([]Widget{{ID: "a"}, {ID: "a"}, {ID: ""}, {ID: "b"}})
	if g.Len() != 2 {
		t.Fatalf("expected 2 widgets, got %d", g.Len())
	}
}

func TestMemoTodos(t *testing.T) {
	g := NewGrid(DefaultWidgets())
	if !g.AddTodo("memo-1", "t4", "  write tests ") {
		t.Fatalf("add todo failed")
	}
	if g.AddTodo("memo-1", "t5", "   ") {
		t.Fatalf("blank todo should be rejected")
	}
	if g.AddTodo("theme-1", "t6", "nope") {
		t.Fatalf("shortcut cannot hold todos")
	}
	g.ToggleTodo("memo-1", "t4")
	w, _ := g.Widget("memo-1")
	last := w.Todos[len(w.Todos)-1]
	if last.Text != "write tests" || !last.Completed {
		t.Fatalf("unexpected todo %+v", last)
	}
	if !g.DeleteTodo("memo-1", "t4") || g.DeleteTodo("memo-1", "t4") {
		t.Fatalf("delete should succeed once")
	}
}

func TestWidgetsReturnsCopies(t *testing.T) {
	g := NewGrid(DefaultWidgets())
	ws := g.Widgets()
	ws[0].Todos[0].Text = "changed"
	ws[0].Position = Point{X: 999}
	w, _ := g.Widget(ws[0].ID)
	if w.Todos[0].Text == "changed" || w.Position.X == 999 {
		t.Fatalf("grid state leaked through Widgets()")
	}
}
