// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/persist.go
// Summary: Store keys, load-time migration and serialization of shell state.
// Usage: The Shell reads every slice once at start and writes it on change.

package desk

import (
	"encoding/json"
	"fmt"
	"log"
)

// Store is the string key/value store the shell persists to.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Persisted keys.
const (
	KeyDesktops        = "nbtab_desktops"
	KeyActiveDesktop   = "nbtab_active_desktop"
	KeyActiveEngine    = "nbtab_active_engine"
	keyWidgetsPrefix   = "nbtab_widgets:"
	KeyLegacyWidgets   = "nbtab_widgets"
	KeyLegacyWallpaper = "nbtab_wallpaper"
)

// WidgetsKey returns the key of a desktop's widget collection.
func WidgetsKey(desktopID string) string {
	return keyWidgetsPrefix + desktopID
}

// Snapshot is the persisted shell state after migration and fallbacks.
type Snapshot struct {
	Desktops []Desktop
	ActiveID string
	Widgets  map[string][]Widget
	Engine   string
	// Migrated lists the keys synthesized at load time that should be written
	// back to the store.
	Migrated []string
}

// LoadSnapshot reads the shell state. Missing or malformed entries fall back
// to defaults; nothing here is fatal.
func LoadSnapshot(store Store, defaultWallpaper string) Snapshot {
	snap := Snapshot{Widgets: make(map[string][]Widget)}

	raw, ok := readKey(store, KeyDesktops)
	switch {
	case ok:
		if err := json.Unmarshal([]byte(raw), &snap.Desktops); err != nil {
			log.Printf("Persist: Malformed %s, using default desktop: %v", KeyDesktops, err)
			snap.Desktops = nil
		}
	default:
		wallpaper := defaultWallpaper
		if legacy, ok := readKey(store, KeyLegacyWallpaper); ok && legacy != "" {
			wallpaper = legacy
			log.Printf("Persist: Migrating legacy wallpaper into home desktop")
		}
		snap.Desktops = []Desktop{HomeDesktop(wallpaper)}
		snap.Migrated = append(snap.Migrated, KeyDesktops)
	}
	if len(snap.Desktops) == 0 {
		snap.Desktops = []Desktop{HomeDesktop(defaultWallpaper)}
		snap.Migrated = append(snap.Migrated, KeyDesktops)
	}

	snap.ActiveID, _ = readKey(store, KeyActiveDesktop)

	for i, d := range snap.Desktops {
		key := WidgetsKey(d.ID)
		raw, ok := readKey(store, key)
		if ok {
			widgets, err := decodeWidgets(raw)
			if err == nil {
				snap.Widgets[d.ID] = widgets
				continue
			}
			log.Printf("Persist: Malformed %s, using defaults: %v", key, err)
			snap.Widgets[d.ID] = DefaultWidgets()
			snap.Migrated = append(snap.Migrated, key)
			continue
		}
		if i != 0 {
			snap.Widgets[d.ID] = []Widget{}
			continue
		}
		snap.Widgets[d.ID] = DefaultWidgets()
		if legacy, ok := readKey(store, KeyLegacyWidgets); ok {
			if widgets, err := decodeWidgets(legacy); err == nil {
				log.Printf("Persist: Migrating %d legacy widgets into desktop %s", len(widgets), d.ID)
				snap.Widgets[d.ID] = widgets
			} else {
				log.Printf("Persist: Ignoring malformed legacy widgets: %v", err)
			}
		}
		snap.Migrated = append(snap.Migrated, key)
	}

	snap.Engine, _ = readKey(store, KeyActiveEngine)
	return snap
}

func readKey(store Store, key string) (string, bool) {
	if store == nil {
		return "", false
	}
	val, ok, err := store.Get(key)
	if err != nil {
		log.Printf("Persist: Failed to read %s: %v", key, err)
		return "", false
	}
	return val, ok
}

func decodeWidgets(raw string) ([]Widget, error) {
	var widgets []Widget
	if err := json.Unmarshal([]byte(raw), &widgets); err != nil {
		return nil, err
	}
	if widgets == nil {
		widgets = []Widget{}
	}
	return widgets, nil
}

func encodeJSON(key string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return string(data), nil
}
