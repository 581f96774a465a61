// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("shell", Section{
		"scroll_debounce_ms": 500,
		"default_wallpaper":  "https://images.unsplash.com/photo-1635326444826-06c8f7110110?q=80&w=2940&auto=format&fit=crop",
		"window_z_floor":     60,
		"double_click_ms":    400,
	})
	cfg.RegisterDefaults("window", Section{
		"min_width":              300,
		"min_height":             200,
		"default_width_percent":  60,
		"default_height_percent": 70,
	})
	cfg.RegisterDefaults("terminal", Section{
		"cell_width":  8,
		"cell_height": 16,
	})
	cfg.RegisterDefaults("storage", Section{
		"backend": "file",
		"path":    "",
	})
	cfg.RegisterDefaults("assistant", Section{
		"endpoint":      "https://generativelanguage.googleapis.com/v1beta",
		"model":         "gemini-2.5-flash",
		"api_key_env":   "API_KEY",
		"timeout_ms":    30000,
		"system_prompt": "You are a helpful, concise AI assistant integrated into a browser start page. Keep answers brief and helpful.",
	})
}
