// Package config loads the TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/hydroxite/hydroxite/theme"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Theme       string `toml:"theme"`
	SyntaxStyle string `toml:"syntax_style"`

	Editor   EditorConfig                `toml:"editor"`
	Vim      VimConfig                   `toml:"vim"`
	Explorer ExplorerConfig              `toml:"explorer"`
	Log      LogConfig                   `toml:"log"`
	Themes   map[string]theme.Definition `toml:"themes"`
}

type EditorConfig struct {
	TabWidth     int  `toml:"tab_width"`
	LineNumbers  bool `toml:"line_numbers"`
	AutoPairs    bool `toml:"auto_pairs"`
	HistoryLimit int  `toml:"history_limit"` // 0: default; negative disables undo
}

type VimConfig struct {
	Enabled       bool `toml:"enabled"`
	ClipboardSync bool `toml:"clipboard_sync"`
}

type ExplorerConfig struct {
	ShowHidden bool `toml:"show_hidden"`
	Width      int  `toml:"width"`
	Watch      bool `toml:"watch"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Default() Config {
	return Config{
		Theme: theme.Default,
		Editor: EditorConfig{
			TabWidth:    4,
			LineNumbers: true,
			AutoPairs:   true,
		},
		Explorer: ExplorerConfig{
			Width: 30,
			Watch: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns <user config dir>/hydroxite/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "hydroxite", "config.toml"), nil
}

// DefaultLogFile returns <user cache dir>/hydroxite/hydroxite.log.
func DefaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, "hydroxite", "hydroxite.log"), nil
}

// Load reads path over the defaults. A missing file is not an error.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys: %s", ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.Theme = strings.TrimSpace(cfg.Theme)
	cfg.Log.Level = strings.TrimSpace(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects out-of-range values and unknown themes.
func (c Config) Validate() error {
	var errs []error
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("%w: editor.tab_width must be 1..16, got %d", ErrInvalid, c.Editor.TabWidth))
	}
	if c.Explorer.Width < 10 || c.Explorer.Width > 200 {
		errs = append(errs, fmt.Errorf("%w: explorer.width must be 10..200, got %d", ErrInvalid, c.Explorer.Width))
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level))
		}
	}
	cat, err := theme.Load(c.Themes)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	} else if c.Theme != "" {
		if _, err := cat.Get(c.Theme); err != nil {
			errs = append(errs, fmt.Errorf("%w: theme: %w", ErrInvalid, err))
		}
	}
	return errors.Join(errs...)
}

// Catalog returns the built-in themes plus the configured ones.
func (c Config) Catalog() (*theme.Catalog, error) {
	return theme.Load(c.Themes)
}
