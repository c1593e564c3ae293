// Package config reads runtime settings from BEAGLE_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/sethgrid/beagle/internal/logging"
)

const Prefix = "beagle"

// Settings are the environment-level knobs. Command line flags override
// them and they override pet.toml.
type Settings struct {
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogDev        bool   `envconfig:"LOG_DEV" default:"false"`
	Touch         bool   `envconfig:"TOUCH" default:"false"`
	ReducedMotion bool   `envconfig:"REDUCED_MOTION" default:"false"`
	Mute          bool   `envconfig:"MUTE" default:"false"`
	FPS           int    `envconfig:"FPS" default:"0"`
	Page          string `envconfig:"PAGE"`
}

// Load reads settings from the environment.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process(Prefix, &s); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &s, nil
}

// LoadOrDefault reads settings, falling back to the defaults on error.
func LoadOrDefault() *Settings {
	s, err := Load()
	if err != nil {
		return Default()
	}
	return s
}

func Default() *Settings {
	return &Settings{LogLevel: "info"}
}

// Logging returns the logger configuration.
func (s *Settings) Logging() logging.Config {
	return logging.Config{
		Level:       s.LogLevel,
		Development: s.LogDev,
		File:        s.LogFile,
	}
}
