// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Typed views over the nbtab.json sections.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ShellSettings is the "shell" section.
type ShellSettings struct {
	ScrollDebounce   time.Duration
	DoubleClick      time.Duration
	DefaultWallpaper string
	WindowZFloor     int
}

// WindowSettings is the "window" section.
type WindowSettings struct {
	MinWidth             int
	MinHeight            int
	DefaultWidthPercent  int
	DefaultHeightPercent int
}

// TerminalSettings is the "terminal" section. Cells are mapped to shell
// pixels with these dimensions.
type TerminalSettings struct {
	CellWidth  int
	CellHeight int
}

// StorageSettings is the "storage" section.
type StorageSettings struct {
	Backend string
	Path    string
}

// AssistantSettings is the "assistant" section.
type AssistantSettings struct {
	Endpoint     string
	Model        string
	APIKeyEnv    string
	Timeout      time.Duration
	SystemPrompt string
}

// Shell returns the shell settings.
func (c Config) Shell() ShellSettings {
	return ShellSettings{
		ScrollDebounce:   c.GetDuration("shell", "scroll_debounce_ms", 500*time.Millisecond),
		DoubleClick:      c.GetDuration("shell", "double_click_ms", 400*time.Millisecond),
		DefaultWallpaper: c.GetString("shell", "default_wallpaper", ""),
		WindowZFloor:     c.GetInt("shell", "window_z_floor", 60),
	}
}

// Window returns the window settings.
func (c Config) Window() WindowSettings {
	return WindowSettings{
		MinWidth:             c.GetInt("window", "min_width", 300),
		MinHeight:            c.GetInt("window", "min_height", 200),
		DefaultWidthPercent:  c.GetInt("window", "default_width_percent", 60),
		DefaultHeightPercent: c.GetInt("window", "default_height_percent", 70),
	}
}

// Terminal returns the terminal settings with non-positive cells replaced.
func (c Config) Terminal() TerminalSettings {
	t := TerminalSettings{
		CellWidth:  c.GetInt("terminal", "cell_width", 8),
		CellHeight: c.GetInt("terminal", "cell_height", 16),
	}
	if t.CellWidth <= 0 {
		t.CellWidth = 8
	}
	if t.CellHeight <= 0 {
		t.CellHeight = 16
	}
	return t
}

// Storage returns the storage settings.
func (c Config) Storage() StorageSettings {
	return StorageSettings{
		Backend: strings.ToLower(c.GetString("storage", "backend", "file")),
		Path:    c.GetString("storage", "path", ""),
	}
}

// ResolvePath returns the configured path, or the backend's default file
// inside stateDir. A leading ~ is expanded.
func (s StorageSettings) ResolvePath(stateDir string) string {
	if s.Path != "" {
		if strings.HasPrefix(s.Path, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				return filepath.Join(home, s.Path[2:])
			}
		}
		return s.Path
	}
	if s.Backend == "sqlite" {
		return filepath.Join(stateDir, "state.db")
	}
	return filepath.Join(stateDir, "state.json")
}

// Assistant returns the assistant settings.
func (c Config) Assistant() AssistantSettings {
	return AssistantSettings{
		Endpoint:     c.GetString("assistant", "endpoint", "https://generativelanguage.googleapis.com/v1beta"),
		Model:        c.GetString("assistant", "model", "gemini-2.5-flash"),
		APIKeyEnv:    c.GetString("assistant", "api_key_env", "API_KEY"),
		Timeout:      c.GetDuration("assistant", "timeout_ms", 30*time.Second),
		SystemPrompt: c.GetString("assistant", "system_prompt", ""),
	}
}

// APIKey reads the key from the configured environment variable.
func (a AssistantSettings) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(a.APIKeyEnv))
}
