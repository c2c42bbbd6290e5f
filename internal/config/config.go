// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/xonecas/chatterm/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	User    string        `toml:"user"`
	UI      UIConfig      `toml:"ui"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme messages are highlighted with.
	// UI chrome colors are derived from this theme via highlight.ThemePalette.
	SyntaxTheme string `toml:"syntax_theme"`
	// Title is shown on the input box border.
	Title string `toml:"title"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or the default if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return constants.SyntaxTheme
	}
	return u.SyntaxTheme
}

// TitleOrDefault returns the configured input title or "Input".
func (u UIConfig) TitleOrDefault() string {
	if u.Title == "" {
		return "Input"
	}
	return u.Title
}

// HistoryConfig controls message persistence.
type HistoryConfig struct {
	// Disabled turns persistence off; messages then live for the session only.
	Disabled bool   `toml:"disabled"`
	Path     string `toml:"path"`
	Limit    int    `toml:"limit"`
}

// LimitOrDefault returns the configured limit or constants.HistoryLimit.
func (h HistoryConfig) LimitOrDefault() int {
	if h.Limit <= 0 {
		return constants.HistoryLimit
	}
	return h.Limit
}

// LogConfig controls the log file.
type LogConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// LevelOrDefault returns the configured level or "info".
func (l LogConfig) LevelOrDefault() string {
	if l.Level == "" {
		return "info"
	}
	return l.Level
}

// Default returns the configuration used when no file exists. Paths live
// under dataDir.
func Default(dataDir string) *Config {
	return &Config{
		User: defaultUser(),
		History: HistoryConfig{
			Path:  filepath.Join(dataDir, "history.db"),
			Limit: constants.HistoryLimit,
		},
		Log: LogConfig{
			File:       filepath.Join(dataDir, "chatterm.log"),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads configuration from a TOML file on top of Default(dataDir) and
// applies environment variable overrides.
func Load(path, dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	// Config file is required
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	// File must exist
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Load from file
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default otherwise.
// Environment overrides apply in both cases.
func LoadOrDefault(path, dataDir string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default(dataDir)
		applyEnvOverrides(cfg)
		return cfg, cfg.Validate()
	}
	return Load(path, dataDir)
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.User) == "" {
		errs = append(errs, errors.New("user must not be empty"))
	}

	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit=%d must not be negative", c.History.Limit))
	}
	if !c.History.Disabled && c.History.Path == "" {
		errs = append(errs, errors.New("history.path is required unless history.disabled is set"))
	}

	if _, err := zerolog.ParseLevel(c.Log.LevelOrDefault()); err != nil {
		errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		errs = append(errs, errors.New("log.max_size_mb and log.max_backups must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"CHATTERM_USER", func(v string) {
			if v != "" {
				cfg.User = v
			}
		}},
		{"CHATTERM_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "me"
}

// DataDir returns the path to the chatterm data directory (~/.config/chatterm).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
