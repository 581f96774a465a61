package desk

import (
	"encoding/json"
	"testing"
)

func TestLoadSnapshotFreshStore(t *testing.T) {
	snap := LoadSnapshot(newMemStore(), DefaultWallpaper)
	if len(snap.Desktops) != 1 || snap.Desktops[0].ID != HomeDesktopID {
		t.Fatalf("expected home desktop, got %+v", snap.Desktops)
	}
	if len(snap.Widgets[HomeDesktopID]) != len(DefaultWidgets()) {
		t.Fatalf("expected default widgets, got %d", len(snap.Widgets[HomeDesktopID]))
	}
	if len(snap.Migrated) != 2 {
		t.Fatalf("expected desktops and widgets to be written back, got %v", snap.Migrated)
	}
}

func TestLoadSnapshotMigratesLegacyKeys(t *testing.T) {
	store := newMemStore()
	store.data[KeyLegacyWallpaper] = "https://example.com/old.jpg"
	store.data[KeyLegacyWidgets] = `[{"id":"x","type":"shortcut","title":"X","url":"https://x.test","position":{"x":1,"y":2},"size":"medium","zIndex":4}]`

	snap := LoadSnapshot(store, DefaultWallpaper)
	if snap.Desktops[0].Wallpaper != "https://example.com/old.jpg" {
		t.Fatalf("legacy wallpaper not migrated: %+v", snap.Desktops[0])
	}
	widgets := snap.Widgets[HomeDesktopID]
	if len(widgets) != 1 || widgets[0].ID != "x" || widgets[0].Size != SizeMedium {
		t.Fatalf("legacy widgets not migrated: %+v", widgets)
	}
}

func TestLoadSnapshotMalformedFallsBack(t *testing.T) {
	store := newMemStore()
	store.data[KeyDesktops] = "{not json"
	snap := LoadSnapshot(store, DefaultWallpaper)
	if len(snap.Desktops) != 1 || snap.Desktops[0].ID != HomeDesktopID {
		t.Fatalf("expected default registry, got %+v", snap.Desktops)
	}

	store = newMemStore()
	store.data[KeyDesktops] = `[{"id":"a","label":"A"}]`
	store.data[WidgetsKey("a")] = "[[["
	snap = LoadSnapshot(store, DefaultWallpaper)
	if len(snap.Widgets["a"]) != len(DefaultWidgets()) {
		t.Fatalf("expected default widgets for malformed entry")
	}
}

func TestLoadSnapshotPerDesktopWidgets(t *testing.T) {
	store := newMemStore()
	desktops, _ := json.Marshal([]Desktop{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}})
	store.data[KeyDesktops] = string(desktops)
	store.data[KeyActiveDesktop] = "b"
	store.data[WidgetsKey("a")] = `[{"id":"w1","type":"shortcut"}]`

	snap := LoadSnapshot(store, DefaultWallpaper)
	if snap.ActiveID != "b" {
		t.Fatalf("expected active b, got %q", snap.ActiveID)
	}
	if len(snap.Widgets["a"]) != 1 || len(snap.Widgets["b"]) != 0 {
		t.Fatalf("widgets leaked across desktops: %+v", snap.Widgets)
	}
	if len(snap.Migrated) != 0 {
		t.Fatalf("nothing should need migration, got %v", snap.Migrated)
	}
}
