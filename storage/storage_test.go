package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := s.Set("nbtab_desktops", `[{"id":"home"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("nbtab_active_desktop", "home"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("nbtab_active_desktop", "work"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.Get("nbtab_active_desktop")
	if err != nil || !ok || v != "work" {
		t.Fatalf("expected last write to win, got %q ok=%v err=%v", v, ok, err)
	}
	keys, err := s.Keys()
	if err != nil || strings.Join(keys, ",") != "nbtab_active_desktop,nbtab_desktops" {
		t.Fatalf("unexpected keys %v err=%v", keys, err)
	}
	if err := s.Delete("nbtab_desktops"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get("nbtab_desktops"); ok {
		t.Fatalf("deleted key still present")
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set("nbtab_widgets:home", "[]")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("write should be debounced, stat err=%v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if v, ok, _ := reopened.Get("nbtab_widgets:home"); !ok || v != "[]" {
		t.Fatalf("value lost across reopen: %q ok=%v", v, ok)
	}
}

func TestFileStoreDebouncedFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	s.SetFlushDebounce(10 * time.Millisecond)
	s.Set("a", "1")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && strings.Contains(string(data), `"a"`) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("debounced flush never reached disk")
}

func TestFileStoreCorruptedFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{oops"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("corrupted file should not fail open: %v", err)
	}
	defer s.Close()
	if keys, _ := s.Keys(); len(keys) != 0 {
		t.Fatalf("expected empty store, got %v", keys)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set("nbtab_active_engine", "Google")
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if v, ok, _ := reopened.Get("nbtab_active_engine"); !ok || v != "Google" {
		t.Fatalf("value lost across reopen: %q", v)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	s, err := Open(BackendMemory, "")
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	s.Close()
}
