// Package config handles the .symctl configuration file.
//
// The file is searched in the home directory, the user config
// directory and the working directory. Settings found later
// override earlier ones. Finally the environment variables
// SYMCTL_LOG_LEVEL, SYMCTL_MAX_DEPTH and SYMCTL_FEEDS
// (comma separated list of feed files) are applied.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/symbolic/pkg/utils"
)

const FILENAME = ".symctl"

const (
	ENV_LOG_LEVEL = "SYMCTL_LOG_LEVEL"
	ENV_MAX_DEPTH = "SYMCTL_MAX_DEPTH"
	ENV_FEEDS     = "SYMCTL_FEEDS"
)

type Config struct {
	LogLevel *string  `json:"logLevel,omitempty"`
	MaxDepth *int     `json:"maxDepth,omitempty"`
	Feeds    []string `json:"feeds,omitempty"`
}

// Locations returns the config file candidates in
// processing order.
func Locations() []string {
	var list []string

	dir, err := os.UserHomeDir()
	if err == nil {
		list = append(list, filepath.Join(dir, FILENAME))
	}
	dir, err = os.UserConfigDir()
	if err == nil {
		list = append(list, filepath.Join(dir, FILENAME))
	}
	return append(list, FILENAME)
}

// GetConfig reads the config files from the default locations
// and applies the environment.
func GetConfig(fss ...vfs.FileSystem) (*Config, error) {
	return ReadConfigs(utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...), os.Getenv, Locations()...)
}

func ReadConfigs(fs vfs.FileSystem, getenv func(string) string, paths ...string) (*Config, error) {
	var cfg Config

	for _, p := range paths {
		add, err := ReadConfig(fs, p)
		if err != nil {
			return nil, err
		}
		MergeConfig(&cfg, add)
	}
	err := cfg.ApplyEnv(getenv)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadConfig reads a config file. A missing file
// provides no config.
func ReadConfig(fs vfs.FileSystem, path string) (*Config, error) {
	if _, err := fs.Stat(path); err != nil {
		return nil, nil
	}
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return &cfg, nil
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.LogLevel != nil {
		cfg.LogLevel = add.LogLevel
	}
	if add.MaxDepth != nil {
		cfg.MaxDepth = add.MaxDepth
	}
	if add.Feeds != nil {
		cfg.Feeds = add.Feeds
	}
}

func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(ENV_LOG_LEVEL); v != "" {
		c.LogLevel = utils.Pointer(v)
	}
	if v := getenv(ENV_MAX_DEPTH); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid %s %q: non-negative number expected", ENV_MAX_DEPTH, v)
		}
		c.MaxDepth = utils.Pointer(d)
	}
	if v := getenv(ENV_FEEDS); v != "" {
		c.Feeds = nil
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.Feeds = append(c.Feeds, f)
			}
		}
	}
	return nil
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == nil {
		return ""
	}
	return *c.LogLevel
}

func (c *Config) GetMaxDepth() int {
	if c.MaxDepth == nil {
		return 0
	}
	return *c.MaxDepth
}
