// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/overrides.go
// Summary: Extends the catalog from a user catalog.toml file.

package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Overrides is the catalog.toml layout. Entries whose key matches a built-in
// entry replace it; new keys are appended.
type Overrides struct {
	Icons   []Icon         `toml:"icons"`
	Colors  []Color        `toml:"colors"`
	Engines []SearchEngine `toml:"engines"`
}

// LoadOverrides reads path. A missing file is not an error.
func LoadOverrides(path string) (Overrides, error) {
	var o Overrides
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return o, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return o, nil
}

// Apply merges o into c.
func (c *Catalog) Apply(o Overrides) {
	for _, icon := range o.Icons {
		if icon.Key == "" {
			continue
		}
		if icon.Glyph == "" {
			icon.Glyph = string([]rune(icon.Key)[:1])
		}
		replaced := false
		for i := range c.Icons {
			if c.Icons[i].Key == icon.Key {
				c.Icons[i] = icon
				replaced = true
			}
		}
		if !replaced {
			c.Icons = append(c.Icons, icon)
		}
	}
	for _, col := range o.Colors {
		if col.Name == "" || col.Value == "" {
			continue
		}
		replaced := false
		for i := range c.Colors {
			if c.Colors[i].Name == col.Name {
				c.Colors[i] = col
				replaced = true
			}
		}
		if !replaced {
			c.Colors = append(c.Colors, col)
		}
	}
	for _, e := range o.Engines {
		if e.Name == "" || e.URL == "" {
			continue
		}
		replaced := false
		for i := range c.Engines {
			if c.Engines[i].Name == e.Name {
				c.Engines[i] = e
				replaced = true
			}
		}
		if !replaced {
			c.Engines = append(c.Engines, e)
		}
	}
}
