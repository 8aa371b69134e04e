package config

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config holds the server's resolved settings. DataDir and UserFile are
// kept even though this port's engine and user catalog are in-memory
// only (no on-disk page format, no persistence): they round out the
// schema a future persistent backend would need, and config.yaml
// overrides still apply to them even when unused.
type Config struct {
	Addr     string `yaml:"addr"`
	Home     string `yaml:"home"`
	DataDir  string `yaml:"data_dir"`
	LogDir   string `yaml:"log_dir"`
	UserFile string `yaml:"user_file"`
}

func LoadConfig(homeOverride, configOverride string) (*Config, error) {
	paths, err := ResolvePaths(homeOverride, configOverride)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:     "127.0.0.1:57083",
		Home:     paths.Home,
		DataDir:  filepath.Join(paths.Home, "data"),
		LogDir:   paths.LogDir,
		UserFile: paths.UserFile,
	}

	if f, err := os.Open(paths.Config); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
