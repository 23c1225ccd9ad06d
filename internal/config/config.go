// Package config provides YAML-based configuration loading for the tetrix
// platform.
package config

// Config contains all platform configuration. Gameplay rules (board size,
// scoring, gravity curve) are fixed by the engine and deliberately not
// configurable; everything here is presentation and session behavior.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Session SessionConfig `yaml:"session"`
}

// DisplayConfig controls optional visual aids.
type DisplayConfig struct {
	ShowGhost bool `yaml:"show_ghost"` // Landing-position preview
	ShowNext  bool `yaml:"show_next"`  // Upcoming-piece preview
}

// SessionConfig controls save/resume behavior.
type SessionConfig struct {
	Autosave bool   `yaml:"autosave"` // Save the game on quit
	Slot     string `yaml:"slot"`     // Session slot name
}
