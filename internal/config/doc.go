// Package config loads the settings and rule list of the styledtext tool.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← STYLEDTEXT_LOG_LEVEL, STYLEDTEXT_OUTPUT_FORMAT
//	├─────────────────────────────┤
//	│  2. Rule File               │  ← TOML, may include other rule files
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A rule file looks like:
//
//	[logging]
//	level = "info"
//
//	[output]
//	format = "markup"
//
//	[[rules]]
//	kind = "replace"
//	pattern = '(\w+), (\w+)'
//	with_markup = '<b>\2</b> \1'
//
//	[[rules]]
//	kind = "sentence"
//
// Load merges the layers and validates the result. Command line flags are
// applied by the caller on top of the returned Config.
package config
