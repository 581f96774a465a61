// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Migration from the pre-JSON nbtab.toml config.

package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var legacySections = []string{"shell", "window", "terminal", "storage", "assistant"}

func readLegacyTOML(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return Config(raw), true, nil
}

func migrateSystemFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	legacyPath, err := legacyConfigPath()
	if err != nil {
		return false, err
	}
	legacy, exists, err := readLegacyTOML(legacyPath)
	if err != nil || !exists {
		return false, err
	}
	migrated := false
	for _, name := range legacySections {
		if copySection(cfg, legacy, name) {
			migrated = true
		}
	}
	// The first TOML release kept the wallpaper at the top level.
	if wp, ok := legacy["wallpaper"].(string); ok && wp != "" {
		cfg.RegisterDefaults("shell", Section{"default_wallpaper": wp})
		migrated = true
	}
	return migrated, nil
}

func copySection(dst Config, src Config, name string) bool {
	if dst == nil || src == nil || name == "" {
		return false
	}
	if _, ok := dst[name]; ok {
		return false
	}
	if section := src.Section(name); section != nil {
		out := make(Section, len(section))
		for k, v := range section {
			out[k] = v
		}
		dst[name] = out
		return true
	}
	return false
}
