package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/sethgrid/beagle/internal/discovery"
	"github.com/sethgrid/beagle/internal/pet"
)

// Session is what survives between runs.
type Session struct {
	AmbientPlaying bool      `toml:"ambientPlaying"`
	SavedAt        time.Time `toml:"savedAt"`
}

// LoadConfig reads a pet.toml. Keys missing from the file keep their
// built-in values.
func LoadConfig(path string) (pet.PetConfig, error) {
	config := pet.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.FillDefaults()
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes a pet.toml, creating its directory.
func SaveConfig(config pet.PetConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return writeFile(path, data)
}

// InitConfig creates baseDir/.beagle/pet.toml for a new pet and returns its
// path. An existing config is only replaced with force.
func InitConfig(baseDir, name string, now time.Time, force bool) (string, error) {
	configPath := filepath.Join(baseDir, discovery.DirName, discovery.ConfigFile)
	if _, err := os.Stat(configPath); err == nil && !force {
		return "", fmt.Errorf("failed to init pet: %s: %w", configPath, os.ErrExist)
	}

	config := pet.DefaultConfig()
	if name != "" {
		config.Name = name
	}
	config.ID = uuid.NewString()
	config.CreatedAt = now.UTC().Truncate(time.Second)

	if err := SaveConfig(config, configPath); err != nil {
		return "", err
	}
	return configPath, nil
}

// LoadSession reads a session file. A missing file is an empty session, not
// an error.
func LoadSession(path string) (Session, error) {
	var s Session
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	return s, nil
}

// SaveSession writes a session file, creating its directory.
func SaveSession(s Session, path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
