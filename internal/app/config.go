package app

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"

	"github.com/specialistvlad/unitgridgo/internal/diagram"
)

// Output formats of the evaluation report.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DiagramPath string // .hcl, .json, .yaml files or a directory of them

	LogFormat string
	LogLevel  string
	Locale    string
	Output    string
	// Units are declared before the diagram is imported.
	Units []diagram.UnitDecl
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DiagramPath == "" {
		return nil, errors.New("DiagramPath is a required configuration field and cannot be empty")
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		return nil, fmt.Errorf("invalid output %q: must be 'text' or 'json'", cfg.Output)
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}
	return &cfg, nil
}

// Language returns the parsed locale. NewConfig has already validated it.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
