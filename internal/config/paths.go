package config

import (
	"os"
	"path/filepath"
)

type Paths struct {
	Home     string
	Config   string
	UserFile string
	LogDir   string
}

// ResolvePaths picks the home directory the same way LoadConfig does
// (explicit override, then BPTREE_HOME, then ~/.local/share/bptreekv)
// and makes sure it and its log subdirectory exist.
func ResolvePaths(homeOverride, configOverride string) (*Paths, error) {
	home := homeOverride
	if home == "" {
		home = os.Getenv("BPTREE_HOME")
	}

	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".local", "share", "bptreekv")
	}

	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, err
	}

	cfgPath := configOverride
	if cfgPath == "" {
		cfgPath = filepath.Join(home, "config.yaml")
	}

	logDir := filepath.Join(home, "log")
	userFile := filepath.Join(home, "users.db")

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	return &Paths{
		Home:     home,
		Config:   cfgPath,
		UserFile: userFile,
		LogDir:   logDir,
	}, nil
}
