// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/registry.go
// Summary: Ordered desktop list with an active-desktop pointer.

package desk

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultWallpaper is the built-in wallpaper for new desktops.
const DefaultWallpaper = "https://images.unsplash.com/photo-1635326444826-06c8f7110110?q=80&w=2940&auto=format&fit=crop"

// HomeDesktopID is the id of the seeded first desktop.
const HomeDesktopID = "home"

// Desktop is a named, wallpapered workspace.
type Desktop struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Wallpaper string `json:"wallpaper"`
}

// HomeDesktop returns the seed desktop using the given wallpaper.
func HomeDesktop(wallpaper string) Desktop {
	if wallpaper == "" {
		wallpaper = DefaultWallpaper
	}
	return Desktop{ID: HomeDesktopID, Label: "Home", Icon: "Home", Wallpaper: wallpaper}
}

// Registry holds the desktops in creation order.
type Registry struct {
	desktops         []Desktop
	activeID         string
	defaultWallpaper string
	newID            func() string
}

// NewRegistry builds a registry. An empty list is seeded with the home
// desktop; an unknown active id falls back to the first desktop.
func NewRegistry(desktops []Desktop, activeID, defaultWallpaper string) *Registry {
	if defaultWallpaper == "" {
		defaultWallpaper = DefaultWallpaper
	}
	r := &Registry{
		defaultWallpaper: defaultWallpaper,
		newID:            uuid.NewString,
	}
	seen := make(map[string]bool, len(desktops))
	for _, d := range desktops {
		if d.ID == "" || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		r.desktops = append(r.desktops, d)
	}
	if len(r.desktops) == 0 {
		r.desktops = []Desktop{HomeDesktop(defaultWallpaper)}
	}
	r.activeID = r.desktops[0].ID
	if seen[activeID] {
		r.activeID = activeID
	}
	return r
}

// Desktops returns a copy of the desktop list.
func (r *Registry) Desktops() []Desktop {
	return append([]Desktop(nil), r.desktops...)
}

// Len returns the number of desktops.
func (r *Registry) Len() int { return len(r.desktops) }

func (r *Registry) index(id string) int {
	for i, d := range r.desktops {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Desktop returns the desktop with the given id.
func (r *Registry) Desktop(id string) (Desktop, bool) {
	if i := r.index(id); i >= 0 {
		return r.desktops[i], true
	}
	return Desktop{}, false
}

// ActiveID returns the active desktop id.
func (r *Registry) ActiveID() string { return r.activeID }

// ActiveIndex returns the position of the active desktop.
func (r *Registry) ActiveIndex() int { return r.index(r.activeID) }

// Active returns the active desktop.
func (r *Registry) Active() Desktop {
	return r.desktops[r.ActiveIndex()]
}

// Switch activates a desktop. Unknown ids are ignored.
func (r *Registry) Switch(id string) bool {
	if r.index(id) < 0 {
		return false
	}
	r.activeID = id
	return true
}

// Step returns the id of the desktop delta positions away from the active
// one, clamped to the list bounds. ok is false when no move is possible.
func (r *Registry) Step(delta int) (string, bool) {
	cur := r.ActiveIndex()
	next := clampInt(cur+delta, 0, len(r.desktops)-1)
	if next == cur {
		return "", false
	}
	return r.desktops[next].ID, true
}

// Add appends a desktop with a fresh id and the default wallpaper and makes
// it active. Blank labels are rejected.
func (r *Registry) Add(label, icon string) (Desktop, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Desktop{}, false
	}
	id := r.newID()
	for r.index(id) >= 0 {
		id = r.newID()
	}
	d := Desktop{ID: id, Label: label, Icon: icon, Wallpaper: r.defaultWallpaper}
	r.desktops = append(r.desktops, d)
	r.activeID = id
	return d, true
}

// SetWallpaper changes the wallpaper of the active desktop only.
func (r *Registry) SetWallpaper(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	r.desktops[r.ActiveIndex()].Wallpaper = url
	return true
}
