package desk

import (
	"fmt"
	"testing"
	"time"
)

type memStore struct {
	data   map[string]string
	writes map[string]int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string), writes: make(map[string]int)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.data[key] = value
	m.writes[key]++
	return nil
}

type recordingCollaborators struct {
	wallpaperRequests []string
	addRequests       int
	editorModes       []EditorMode
	editorWidgets     []*Widget
	opened            []string
}

func (r *recordingCollaborators) RequestWallpaperChange(current string) {
	r.wallpaperRequests = append(r.wallpaperRequests, current)
}

func (r *recordingCollaborators) RequestAddDesktop() { r.addRequests++ }

func (r *recordingCollaborators) OpenWidgetEditor(mode EditorMode, w *Widget) {
	r.editorModes = append(r.editorModes, mode)
	r.editorWidgets = append(r.editorWidgets, w)
}

func (r *recordingCollaborators) OpenURL(url string) { r.opened = append(r.opened, url) }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type shellFixture struct {
	shell  *Shell
	store  *memStore
	collab *recordingCollaborators
	clock  *fakeClock
}

var testViewport = Size{Width: 1000, Height: 800}

func newShellFixture(t *testing.T, store *memStore) *shellFixture {
	t.Helper()
	if store == nil {
		store = newMemStore()
	}
	f := &shellFixture{
		store:  store,
		collab: &recordingCollaborators{},
		clock:  &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.shell = NewShell(Options{
		Store:         store,
		Collaborators: f.collab,
		Viewport:      testViewport,
		Now:           f.clock.Now,
		NewID:         sequentialIDs(),
	})
	return f
}

func strPtr(s string) *string { return &s }
