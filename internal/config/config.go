// Package config loads the websettings binary configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Store   StoreConfig   `yaml:"store"`
	Theme   ThemeConfig   `yaml:"theme"`
	Upload  UploadConfig  `yaml:"upload"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig controls the HTTP listener and document streaming.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ChunkSize    int           `yaml:"chunk_size"`
	RestartDelay time.Duration `yaml:"restart_delay"`
	Metrics      bool          `yaml:"metrics"`
	Title        string        `yaml:"title"`
}

// AuthConfig holds the credentials guarding the mutating routes. An empty
// user disables authentication.
type AuthConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// StoreConfig points at the YAML file holding persisted settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ThemeConfig optionally loads a go-theme manifest for the stylesheet.
type ThemeConfig struct {
	Manifest string `yaml:"manifest"`
	Variant  string `yaml:"variant"`
}

// UploadConfig enables firmware upload into Path.
type UploadConfig struct {
	Path    string `yaml:"path"`
	MaxSize int64  `yaml:"max_size"`
}

// LoggingConfig selects level, output and rotation of the binary's logs.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Console    bool   `yaml:"console"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ChunkSize:    1024,
			RestartDelay: 2 * time.Second,
			Title:        "Device settings",
		},
		Store: StoreConfig{Path: "websettings.yaml"},
		Upload: UploadConfig{
			MaxSize: 16 << 20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.ChunkSize <= 0 {
		return fmt.Errorf("server.chunk_size must be positive")
	}
	if c.Server.RestartDelay < 0 {
		return fmt.Errorf("server.restart_delay must not be negative")
	}
	if c.Auth.User == "" && c.Auth.Password != "" {
		return fmt.Errorf("auth.password set without auth.user")
	}
	if strings.ContainsAny(c.Auth.User, `":`) {
		return fmt.Errorf("auth.user must not contain quotes or colons")
	}
	if c.Upload.MaxSize < 0 {
		return fmt.Errorf("upload.max_size must not be negative")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
