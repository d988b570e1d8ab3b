package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/unitgridgo/internal/diagram"
)

// Settings is the application settings file. Every field is optional; absent
// fields keep their defaults.
type Settings struct {
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
	Locale    string `yaml:"locale"`
	Output    string `yaml:"output"`
	// Units are declared before any diagram is imported.
	Units []diagram.UnitDecl `yaml:"units"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: "text",
		Locale:    "en",
		Output:    "text",
	}
}

// ReadSettingsFile reads a YAML settings file on top of the defaults.
func ReadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	s, err := ReadSettings(f)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return s, nil
}

// ReadSettings decodes YAML settings on top of the defaults. Unknown keys are
// rejected.
func ReadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, err
	}
	return s, nil
}
