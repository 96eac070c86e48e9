package shell

import (
	"os"
	"path/filepath"
)

// HistoryPath returns the default path of the history database, under
// $XDG_STATE_HOME/squeak. The directory is created if needed.
func HistoryPath() (string, error) {
	return dataPath("XDG_STATE_HOME", defaultStateHome, "history.db")
}

// ConfigPath returns the default path of the configuration file, under
// $XDG_CONFIG_HOME/squeak. The file may not exist.
func ConfigPath() (string, error) {
	dir, err := homeDir("XDG_CONFIG_HOME", defaultConfigHome)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "squeak", "config.yaml"), nil
}

func dataPath(envName string, fallback func() (string, error), name string) (string, error) {
	dir, err := homeDir(envName, fallback)
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "squeak")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func homeDir(envName string, fallback func() (string, error)) (string, error) {
	if dir := os.Getenv(envName); dir != "" {
		return dir, nil
	}
	return fallback()
}
