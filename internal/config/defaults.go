package config

import (
	_ "embed"
)

//go:embed defaults/tetrix.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration, used as the final
// fallback if the embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			ShowGhost: true,
			ShowNext:  true,
		},
		Session: SessionConfig{
			Autosave: true,
			Slot:     "default",
		},
	}
}
