// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Copy helper so callers never share section maps with the store.

package config

// Clone copies the config one level deep: every section map is duplicated,
// values inside sections are shared.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		section := asSection(raw)
		if section == nil {
			out[name] = raw
			continue
		}
		dup := make(Section, len(section))
		for k, v := range section {
			dup[k] = v
		}
		out[name] = dup
	}
	return out
}
