// Package config loads and validates multicaret settings.
//
// Settings come from, lowest priority first:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. MULTICARET_* environment variables
//
// A missing file is not an error; the defaults apply.
//
// # Example
//
//	[engine]
//	max_cursors = 100
//	max_pattern_length = 256
//	case_sensitive = false
//
//	[keymap]
//	select_next = "ctrl+d"
//	select_all = "alt+d"
//
//	[mouse]
//	add_cursor = "ctrl"
//	column_select = "alt"
//
//	[logging]
//	level = "info"
//
// # Sub-packages
//
//   - loader: TOML and YAML decoding
//   - watcher: fsnotify file watching for live reload
//
// # Live Reload
//
// Watch delivers a freshly loaded and validated Config whenever the file
// changes. A file that fails to load or validate is reported to the error
// callback and the caller keeps its previous Config.
package config
