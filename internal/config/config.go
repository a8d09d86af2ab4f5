// Package config handles configuration loading and validation for booklet.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/metcalfc/booklet/internal/dictionary"
	"github.com/metcalfc/booklet/internal/viewer"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Theme      Theme      `yaml:"theme"`
	Dictionary Dictionary `yaml:"dictionary"`
}

// Theme holds the page colors as hex strings.
type Theme struct {
	Text      string `yaml:"text"`
	Marker    string `yaml:"marker"`
	Selection string `yaml:"selection"`
	Gutter    string `yaml:"gutter"`
	Anchor    string `yaml:"anchor"`   // line number on the anchor row
	Bookmark  string `yaml:"bookmark"` // gutter glyph of bookmarked lines
	Dim       string `yaml:"dim"`      // focus mode fades text towards this
}

// Dictionary configures definition lookups.
type Dictionary struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with the built-in theme and the public
// dictionary service.
func DefaultConfig() Config {
	t := viewer.DefaultTheme()
	return Config{
		Theme: Theme{
			Text:      t.Palette.Text.Hex(),
			Marker:    t.Palette.Marker.Hex(),
			Selection: t.Palette.Selection.Hex(),
			Gutter:    t.Gutter.Hex(),
			Anchor:    t.Anchor.Hex(),
			Bookmark:  t.Bookmark.Hex(),
			Dim:       t.Dim.Hex(),
		},
		Dictionary: Dictionary{
			Endpoint: dictionary.DefaultEndpoint,
			Timeout:  10 * time.Second,
		},
	}
}

// DefaultPath returns XDG_CONFIG_HOME/booklet/config.yaml or
// ~/.config/booklet/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "booklet", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "booklet", "config.yaml")
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills options a config file set to empty values.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	for _, f := range []struct{ v, d *string }{
		{&c.Theme.Text, &defaults.Theme.Text},
		{&c.Theme.Marker, &defaults.Theme.Marker},
		{&c.Theme.Selection, &defaults.Theme.Selection},
		{&c.Theme.Gutter, &defaults.Theme.Gutter},
		{&c.Theme.Anchor, &defaults.Theme.Anchor},
		{&c.Theme.Bookmark, &defaults.Theme.Bookmark},
		{&c.Theme.Dim, &defaults.Theme.Dim},
		{&c.Dictionary.Endpoint, &defaults.Dictionary.Endpoint},
	} {
		if *f.v == "" {
			*f.v = *f.d
		}
	}
	if c.Dictionary.Timeout == 0 {
		c.Dictionary.Timeout = defaults.Dictionary.Timeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if c.Dictionary.Timeout <= 0 {
		errs = errs.Append("dictionary.timeout", fmt.Errorf("must be positive, got %s", c.Dictionary.Timeout))
	}

	return criterio.ValidateStruct(
		criterio.Run("theme.text", c.Theme.Text, hexColor),
		criterio.Run("theme.marker", c.Theme.Marker, hexColor),
		criterio.Run("theme.selection", c.Theme.Selection, hexColor),
		criterio.Run("theme.gutter", c.Theme.Gutter, hexColor),
		criterio.Run("theme.anchor", c.Theme.Anchor, hexColor),
		criterio.Run("theme.bookmark", c.Theme.Bookmark, hexColor),
		criterio.Run("theme.dim", c.Theme.Dim, hexColor),
		criterio.Run("dictionary.endpoint", c.Dictionary.Endpoint, httpURL),
		errs.ToError(),
	)
}

func hexColor(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	return nil
}

func httpURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// ViewerTheme converts the validated theme for the color profile of the
// terminal.
func (c *Config) ViewerTheme(profile termenv.Profile) (viewer.Theme, error) {
	t := viewer.DefaultTheme()
	t.Palette.Profile = profile

	for _, f := range []struct {
		hex string
		dst *colorful.Color
	}{
		{c.Theme.Text, &t.Palette.Text},
		{c.Theme.Marker, &t.Palette.Marker},
		{c.Theme.Selection, &t.Palette.Selection},
		{c.Theme.Gutter, &t.Gutter},
		{c.Theme.Anchor, &t.Anchor},
		{c.Theme.Bookmark, &t.Bookmark},
		{c.Theme.Dim, &t.Dim},
	} {
		col, err := colorful.Hex(f.hex)
		if err != nil {
			return viewer.Theme{}, fmt.Errorf("theme color %q: %w", f.hex, err)
		}
		*f.dst = col
	}
	return t, nil
}
