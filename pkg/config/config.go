// Package config persists the user's default citation preferences
// (style, source type, display theme, output format) as YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CutieJi/citation-generator/pkg/citation"
)

// Theme is the display theme used for terminal output.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Output is the rendering used when printing a citation.
type Output string

const (
	OutputANSI Output = "ansi"
	OutputText Output = "text"
	OutputHTML Output = "html"
)

// Settings holds persisted preferences. Blank or unknown values are
// replaced by defaults on load.
type Settings struct {
	// Style is the citation style used when --style is not given.
	Style citation.Style `yaml:"style" json:"style"`

	// Source is the source type used when none is given.
	Source citation.SourceType `yaml:"source" json:"source"`

	// Theme is the terminal colour theme (light or dark).
	Theme Theme `yaml:"theme" json:"theme"`

	// Output is the default rendering (ansi, text or html).
	Output Output `yaml:"output" json:"output"`
}

// Default returns the settings used when no configuration file exists.
func Default() Settings {
	return Settings{
		Style:  citation.StyleAPA,
		Source: citation.SourceBook,
		Theme:  ThemeLight,
		Output: OutputANSI,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/citegen/config.yaml, falling back to
// the platform user config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "citegen", "config.yaml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "citegen", "config.yaml"), nil
}

// Load reads settings from path. A missing file yields Default().
//
// Values that are blank or unknown are reset to their defaults and the
// affected keys are returned, so a single bad value never makes the file
// unusable. Only read and YAML syntax failures are errors.
func Load(path string) (Settings, []string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil, nil
	}
	if err != nil {
		return Settings{}, nil, fmt.Errorf("failed to read config: %w", err)
	}

	settings := Default()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return settings, settings.Repair(), nil
}

// Save writes settings to path, creating the parent directory.
func Save(path string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Repair resets every invalid setting to its default and returns the
// keys it changed.
func (s *Settings) Repair() []string {
	defaults := Default()
	var reset []string
	if !s.Style.Valid() {
		s.Style = defaults.Style
		reset = append(reset, "style")
	}
	if !s.Source.Valid() {
		s.Source = defaults.Source
		reset = append(reset, "source")
	}
	if !s.Theme.Valid() {
		s.Theme = defaults.Theme
		reset = append(reset, "theme")
	}
	if !s.Output.Valid() {
		s.Output = defaults.Output
		reset = append(reset, "output")
	}
	return reset
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Valid reports whether o is a known output format.
func (o Output) Valid() bool {
	switch o {
	case OutputANSI, OutputText, OutputHTML:
		return true
	default:
		return false
	}
}

// Validate checks that every setting holds a known value.
func (s Settings) Validate() error {
	if !s.Style.Valid() {
		return fmt.Errorf("style: %w: %q", citation.ErrUnknownStyle, s.Style)
	}
	if !s.Source.Valid() {
		return fmt.Errorf("source: %w: %q", citation.ErrUnknownSourceType, s.Source)
	}
	if !s.Theme.Valid() {
		return fmt.Errorf("theme: unknown theme %q (want light or dark)", s.Theme)
	}
	if !s.Output.Valid() {
		return fmt.Errorf("output: unknown output %q (want ansi, text or html)", s.Output)
	}
	return nil
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	return []string{"output", "source", "style", "theme"}
}

// Get returns the value of key.
func (s Settings) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "style":
		return string(s.Style), nil
	case "source":
		return string(s.Source), nil
	case "theme":
		return string(s.Theme), nil
	case "output":
		return string(s.Output), nil
	default:
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
}

// Set updates key to value, validating the result.
func (s *Settings) Set(key, value string) error {
	updated := *s
	value = strings.ToLower(strings.TrimSpace(value))
	switch strings.ToLower(key) {
	case "style":
		updated.Style = citation.Style(value)
	case "source":
		updated.Source = citation.SourceType(value)
	case "theme":
		updated.Theme = Theme(value)
	case "output":
		updated.Output = Output(value)
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*s = updated
	return nil
}
