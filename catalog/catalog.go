// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/catalog.go
// Summary: Static lookup tables for desktop icons, widget colors and search engines.
// Usage: Default() returns the built-in catalog; LoadOverrides extends it from catalog.toml.

package catalog

import (
	"net/url"
	"strings"
)

// SearchEngine is a search provider the search bar can submit to.
type SearchEngine struct {
	Name        string `toml:"name"`
	URL         string `toml:"url"`
	Icon        string `toml:"icon"`
	Placeholder string `toml:"placeholder"`
}

// QueryURL returns the search URL for q. Blank queries yield false.
func (e SearchEngine) QueryURL(q string) (string, bool) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", false
	}
	return e.URL + strings.ReplaceAll(url.QueryEscape(q), "+", "%20"), true
}

// Color is a widget background swatch.
type Color struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
	Label string `toml:"label"`
	// Hex is the terminal approximation of Value.
	Hex string `toml:"hex"`
}

// Icon is a desktop icon key with the glyph drawn for it in the terminal.
type Icon struct {
	Key   string `toml:"key"`
	Glyph string `toml:"glyph"`
}

// Catalog groups the lookup tables.
type Catalog struct {
	Icons   []Icon
	Colors  []Color
	Engines []SearchEngine
}

// DefaultIconKey is used for unknown desktop icons.
const DefaultIconKey = "Home"

// Default returns a fresh copy of the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Icons: []Icon{
			{Key: "Home", Glyph: "⌂"},
			{Key: "Briefcase", Glyph: "B"},
			{Key: "Code", Glyph: "<"},
			{Key: "Design", Glyph: "✎"},
			{Key: "Game", Glyph: "G"},
			{Key: "Life", Glyph: "☕"},
			{Key: "Music", Glyph: "♪"},
			{Key: "Video", Glyph: "▶"},
			{Key: "Study", Glyph: "S"},
			{Key: "Web", Glyph: "@"},
			{Key: "Tools", Glyph: "T"},
			{Key: "Zap", Glyph: "⚡"},
		},
		Colors: []Color{
			{Name: "white", Value: "rgba(255, 255, 255, 0.95)", Label: "White", Hex: "#f5f5f5"},
			{Name: "blue", Value: "rgba(59, 130, 246, 0.9)", Label: "Blue", Hex: "#3b82f6"},
			{Name: "green", Value: "rgba(34, 197, 94, 0.9)", Label: "Green", Hex: "#22c55e"},
			{Name: "orange", Value: "rgba(245, 158, 11, 0.9)", Label: "Orange", Hex: "#f59e0b"},
			{Name: "red", Value: "rgba(239, 68, 68, 0.9)", Label: "Red", Hex: "#ef4444"},
			{Name: "transparent", Value: "rgba(255, 255, 255, 0.1)", Label: "Glass", Hex: "#3a3a3a"},
		},
		Engines: []SearchEngine{
			{
				Name:        "Bing",
				URL:         "https://www.bing.com/search?q=",
				Icon:        "https://upload.wikimedia.org/wikipedia/commons/9/9c/Bing_Fluent_Logo.svg",
				Placeholder: "Search Bing...",
			},
			{
				Name:        "Baidu",
				URL:         "https://www.baidu.com/s?wd=",
				Icon:        "https://www.baidu.com/favicon.ico",
				Placeholder: "百度一下...",
			},
			{
				Name:        "Google",
				URL:         "https://www.google.com/search?q=",
				Icon:        "https://upload.wikimedia.org/wikipedia/commons/2/2f/Google_2015_logo.svg",
				Placeholder: "Search Google...",
			},
			{
				Name:        "DuckDuckGo",
				URL:         "https://duckduckgo.com/?q=",
				Icon:        "https://upload.wikimedia.org/wikipedia/commons/d/d2/DuckDuckGo_Logo.svg",
				Placeholder: "Search DuckDuckGo...",
			},
		},
	}
}

// IconKeys returns the available desktop icon keys in display order.
func (c *Catalog) IconKeys() []string {
	keys := make([]string, len(c.Icons))
	for i, icon := range c.Icons {
		keys[i] = icon.Key
	}
	return keys
}

// Glyph returns the terminal glyph for an icon key, falling back to Home.
func (c *Catalog) Glyph(key string) string {
	for _, icon := range c.Icons {
		if icon.Key == key {
			return icon.Glyph
		}
	}
	for _, icon := range c.Icons {
		if icon.Key == DefaultIconKey {
			return icon.Glyph
		}
	}
	return "?"
}

// DefaultColor is the swatch preselected by the widget editor.
func (c *Catalog) DefaultColor() Color {
	if len(c.Colors) > 1 {
		return c.Colors[1]
	}
	if len(c.Colors) == 1 {
		return c.Colors[0]
	}
	return Color{}
}

// ColorByValue finds the swatch whose CSS value matches v.
func (c *Catalog) ColorByValue(v string) (Color, bool) {
	for _, col := range c.Colors {
		if col.Value == v {
			return col, true
		}
	}
	return Color{}, false
}

// EngineByName looks up a search engine.
func (c *Catalog) EngineByName(name string) (SearchEngine, bool) {
	for _, e := range c.Engines {
		if e.Name == name {
			return e, true
		}
	}
	return SearchEngine{}, false
}

// ResolveEngine returns the named engine or the first one when unknown.
func (c *Catalog) ResolveEngine(name string) SearchEngine {
	if e, ok := c.EngineByName(name); ok {
		return e
	}
	if len(c.Engines) > 0 {
		return c.Engines[0]
	}
	return SearchEngine{}
}

// NextEngine returns the engine after name, wrapping around.
func (c *Catalog) NextEngine(name string) SearchEngine {
	for i, e := range c.Engines {
		if e.Name == name {
			return c.Engines[(i+1)%len(c.Engines)]
		}
	}
	return c.ResolveEngine("")
}

// FaviconURL returns the favicon service URL for a page.
func FaviconURL(pageURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return "https://www.google.com/s2/favicons?domain=" + u.Hostname() + "&sz=64", true
}
