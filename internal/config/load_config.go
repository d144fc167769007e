package config

import (
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable overriding the config file location.
const EnvConfig = "PERC_CONFIG"

// Config is the process-wide configuration. It is built once at startup and
// never mutated afterwards; accessors hand out copies of anything mutable.
type Config struct {
	palette    map[string]string
	thresholds map[string]Thresholds
	versions   map[string]float64
	support    Support
	keyboard   Keyboard
	wallpaper  Wallpaper
	disk       Disk
}

// Default returns the built-in configuration.
func Default() *Config {
	return build(defaults())
}

// LoadConfig parses YAML configuration from r on top of the built-in defaults.
// Keys absent from the document keep their default values. An empty document
// yields the defaults.
func LoadConfig(r io.Reader) (*Config, error) {
	fc := defaults()
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return build(fc), nil
}

// LoadConfigFile loads the configuration at path. A missing file is not an
// error: the defaults are returned instead.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config file %s", path)
	}
	defer f.Close()

	return LoadConfig(f)
}

// DefaultPath returns $PERC_CONFIG when set, otherwise ~/.config/perc/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return ExpandHome("~/.config/perc/config.yaml")
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func build(fc fileConfig) *Config {
	s := fc.Support
	s.SourceRoot = ExpandHome(s.SourceRoot)
	s.VenvRoot = ExpandHome(s.VenvRoot)
	s.Addons = slices.Clone(s.Addons)
	s.Clipboard = slices.Clone(s.Clipboard)

	w := fc.Wallpaper
	w.Dir = ExpandHome(w.Dir)

	return &Config{
		palette:    maps.Clone(fc.Palette),
		thresholds: maps.Clone(fc.Thresholds),
		versions:   maps.Clone(fc.Versions),
		support:    s,
		keyboard:   fc.Keyboard,
		wallpaper:  w,
		disk:       fc.Disk,
	}
}

// Color returns the display color registered under name, or name itself when
// the palette has no such entry (allowing literal colors like "#ffffff").
func (c *Config) Color(name string) string {
	if v, ok := c.palette[name]; ok {
		return v
	}
	return name
}

// Threshold returns the color band boundaries for the given metric.
func (c *Config) Threshold(metric string) Thresholds {
	return c.thresholds[metric]
}

// Series returns the numeric release series registered for a version token.
func (c *Config) Series(token string) (float64, bool) {
	v, ok := c.versions[token]
	return v, ok
}

// Support returns a copy of the development workflow settings.
func (c *Config) Support() Support {
	s := c.support
	s.Addons = slices.Clone(s.Addons)
	s.Clipboard = slices.Clone(s.Clipboard)
	return s
}

// Keyboard returns the keyboard snippet settings.
func (c *Config) Keyboard() Keyboard { return c.keyboard }

// Wallpaper returns the wallpaper command settings.
func (c *Config) Wallpaper() Wallpaper { return c.wallpaper }

// Disk returns the disk snippet settings.
func (c *Config) Disk() Disk { return c.disk }
