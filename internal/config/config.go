// Package config handles loading taskman.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultServerURL is used when no config file names a server.
const DefaultServerURL = "http://localhost:8000/api/v1"

// Config represents the taskman.toml configuration file.
type Config struct {
	Server Server `toml:"server"`
	Output Output `toml:"output"`
}

// Server contains remote-API configuration.
type Server struct {
	// URL is the base URL of the task-manager API.
	URL string `toml:"url"`

	// RequestTimeout bounds each API request, as a Go duration
	// string like "10s". Empty means the client default.
	RequestTimeout string `toml:"request-timeout"`
}

// Output contains terminal-output configuration.
type Output struct {
	// Color forces colored output on or off. Nil means auto-detect.
	Color *bool `toml:"color"`
}

// Load loads configuration from the working directory and the global
// config file. Project values win over global values per-key. Returns
// defaults if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "taskman.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if merged.Server.URL == "" {
		merged.Server.URL = DefaultServerURL
	}
	return merged, nil
}

// Timeout returns the configured request timeout, or zero when unset.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Server.RequestTimeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Server.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse request-timeout %q: %w", c.Server.RequestTimeout, err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("request-timeout %q must be positive", c.Server.RequestTimeout)
	}
	return timeout, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskman", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Server.URL = mergeString(projectMeta.IsDefined("server", "url"), projectCfg.Server.URL, globalCfg.Server.URL)
	merged.Server.RequestTimeout = mergeString(projectMeta.IsDefined("server", "request-timeout"), projectCfg.Server.RequestTimeout, globalCfg.Server.RequestTimeout)
	if projectMeta.IsDefined("output", "color") {
		merged.Output.Color = projectCfg.Output.Color
	} else if globalMeta.IsDefined("output", "color") {
		merged.Output.Color = globalCfg.Output.Color
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
