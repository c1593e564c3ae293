package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DirName     = ".beagle"
	ConfigFile  = "pet.toml"
	SessionFile = "session.toml"
)

// FindConfigFile walks up from startDir looking for .beagle/pet.toml.
func FindConfigFile(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		configPath := filepath.Join(dir, DirName, ConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", false, nil
}

func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DirName)
}

func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), ConfigFile)
}

// SessionPathFor returns the session file kept next to a pet config. With
// no config the session lives in the global directory.
func SessionPathFor(configPath string) string {
	if configPath == "" {
		return filepath.Join(GlobalDir(), SessionFile)
	}
	return filepath.Join(filepath.Dir(configPath), SessionFile)
}

// Resolve picks the pet config to use: an explicit path must exist,
// otherwise the nearest project config wins over the global one. found is
// false when no config exists and the defaults apply.
func Resolve(explicit, cwd string) (path string, found bool, err error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", false, fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, true, nil
	}

	path, found, err = FindConfigFile(cwd)
	if err != nil || found {
		return path, found, err
	}

	global := GlobalConfigPath()
	if _, err := os.Stat(global); err == nil {
		return global, true, nil
	}
	return "", false, nil
}
