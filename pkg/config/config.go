// Package config loads the optional zb-migrate configuration file.
//
// The file lives at ~/.config/zb-migrate/config.toml and lets users tune
// the built-in risk denylist and a few paths without flags:
//
//	[denylist]
//	add = ["my-internal-tool"]
//	remove = ["tmux"]
//
//	[installer]
//	command = "/usr/local/bin/zb"
//
//	[paths]
//	state = "/tmp/migration_state.json"
//	cache = "/tmp/zb-migrate-cache"
//
// A missing file is not an error; everything has a working default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/zerobrew/zb-migrate/pkg/analysis"
	"github.com/zerobrew/zb-migrate/pkg/errors"
)

// Config holds the parsed configuration file.
type Config struct {
	Denylist  DenylistConfig  `toml:"denylist"`
	Installer InstallerConfig `toml:"installer"`
	Paths     PathsConfig     `toml:"paths"`
}

// DenylistConfig adjusts the built-in problematic package list.
type DenylistConfig struct {
	Add    []string `toml:"add"`
	Remove []string `toml:"remove"`
}

// InstallerConfig overrides how zb is invoked.
type InstallerConfig struct {
	Command string `toml:"command"`
}

// PathsConfig overrides file locations.
type PathsConfig struct {
	State string `toml:"state"`
	Cache string `toml:"cache"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "zb-migrate", "config.toml"), nil
}

// Load reads the config file at path. If path is empty the default
// location is used; a missing file yields the zero Config.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return &cfg, nil
}

// BuildDenylist applies the configured additions and removals to the
// built-in denylist. Removals win over additions for the same name.
func (c *Config) BuildDenylist() analysis.Denylist {
	return analysis.DefaultDenylist().
		With(c.Denylist.Add...).
		Without(c.Denylist.Remove...)
}
