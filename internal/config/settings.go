package config

import (
	"fmt"
	"sync/atomic"
)

// Settings holds the admin-reloadable part of the configuration. Requests
// read a snapshot; the only writer is the explicit reload triggered by an
// admin, which re-reads the config file, validates it and swaps the value
// wholesale.
type Settings struct {
	configPath string
	grading    atomic.Pointer[GradingConfig]
}

// NewSettings creates a Settings holder seeded from the loaded config.
func NewSettings(configPath string, initial GradingConfig) *Settings {
	s := &Settings{configPath: configPath}
	s.grading.Store(&initial)
	return s
}

// Grading returns the current grading cut table snapshot.
func (s *Settings) Grading() GradingConfig {
	return *s.grading.Load()
}

// Reload re-reads the configuration file and replaces the grading table.
// An invalid file leaves the current settings untouched.
func (s *Settings) Reload() (GradingConfig, error) {
	cfg, err := LoadConfig(s.configPath)
	if err != nil {
		return GradingConfig{}, fmt.Errorf("settings reload failed: %w", err)
	}

	grading := cfg.Grading
	s.grading.Store(&grading)
	return grading, nil
}
