// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: storage/file.go
// Summary: JSON file store with an in-memory cache and debounced flushing.
// Usage: Default backend; state lives in ~/.nbtab/state.json.

package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// DefaultFlushDebounce delays disk writes after a change.
const DefaultFlushDebounce = 2 * time.Second

// FileStore implements Store on top of a single JSON object file.
type FileStore struct {
	path string
	mu   sync.RWMutex

	cache map[string]string
	dirty bool

	flushDebounce time.Duration
	flushTimer    *time.Timer
	flushMu       sync.Mutex

	closed bool
}

// NewFileStore opens or creates the store at path. A corrupted file is
// logged and replaced on the next flush.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	s := &FileStore{
		path:          path,
		cache:         make(map[string]string),
		flushDebounce: DefaultFlushDebounce,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetFlushDebounce changes the delay between a write and the disk flush.
// Zero flushes synchronously on every write.
func (s *FileStore) SetFlushDebounce(d time.Duration) {
	s.flushMu.Lock()
	s.flushDebounce = d
	s.flushMu.Unlock()
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read storage file: %w", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		log.Printf("Storage: Corrupted %s, starting fresh: %v", s.path, err)
		return nil
	}
	if values != nil {
		s.cache = values
	}
	return nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.cache[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if cur, ok := s.cache[key]; ok && cur == value {
		s.mu.Unlock()
		return nil
	}
	s.cache[key] = value
	s.dirty = true
	s.mu.Unlock()
	return s.scheduleFlush()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if _, ok := s.cache[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.cache, key)
	s.dirty = true
	s.mu.Unlock()
	return s.scheduleFlush()
}

func (s *FileStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Flush writes the cache to disk if it changed.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	s.dirty = false
	return nil
}

// Close stops the pending flush and writes outstanding changes.
func (s *FileStore) Close() error {
	s.flushMu.Lock()
	if s.flushTimer != nil {
		s.flushTimer.Stop()
		s.flushTimer = nil
	}
	s.flushMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	err := s.flushLocked()
	s.closed = true
	return err
}

func (s *FileStore) scheduleFlush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	if s.flushDebounce <= 0 {
		return s.Flush()
	}
	if s.flushTimer != nil {
		s.flushTimer.Stop()
	}
	s.flushTimer = time.AfterFunc(s.flushDebounce, func() {
		if err := s.Flush(); err != nil {
			log.Printf("Storage: Flush failed: %v", err)
		}
	})
	return nil
}
