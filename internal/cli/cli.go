package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/unitgridgo/internal/app"
	"github.com/specialistvlad/unitgridgo/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flags holds the raw command-line values before they are layered over the
// settings file.
type flags struct {
	diagram   string
	settings  string
	logFormat string
	logLevel  string
	locale    string
	output    string
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cfg *app.Config
	cmd := newRootCommand(func(c *app.Config) { cfg = c })
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		// Help was printed or no diagram was given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func newRootCommand(done func(*app.Config)) *cobra.Command {
	defaults := config.DefaultSettings()
	var f flags

	cmd := &cobra.Command{
		Use:   "unitgrid [flags] [DIAGRAM_PATH]",
		Short: "Evaluate a unit-aware computation diagram.",
		Long: `UnitGridGo - evaluates diagrams of nodes whose values carry physical or custom units.

DIAGRAM_PATH is a single .hcl, .json, .yaml or .yml file, or a directory
searched recursively for them.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := f.diagram
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			slog.Debug("Diagram path determined.", "path", path)
			if path == "" {
				slog.Debug("No diagram path provided, printing usage and exiting.")
				return cmd.Usage()
			}

			settings := defaults
			if f.settings != "" {
				s, err := config.ReadSettingsFile(f.settings)
				if err != nil {
					return &ExitError{Code: 2, Message: err.Error()}
				}
				settings = s
			}
			overlay(cmd, &settings, f)

			c, err := app.NewConfig(app.Config{
				DiagramPath: path,
				LogFormat:   strings.ToLower(settings.LogFormat),
				LogLevel:    strings.ToLower(settings.LogLevel),
				Locale:      settings.Locale,
				Output:      strings.ToLower(settings.Output),
				Units:       settings.Units,
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			slog.Debug("CLI parameter validation complete.")
			done(c)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.diagram, "diagram", "d", "", "Path to the diagram file or directory.")
	fl.StringVar(&f.settings, "config", "", "Path to a YAML settings file.")
	fl.StringVar(&f.logFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	fl.StringVar(&f.logLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fl.StringVar(&f.locale, "locale", defaults.Locale, "BCP 47 locale used to format values.")
	fl.StringVarP(&f.output, "output", "o", defaults.Output, "Report format. Options: 'text' or 'json'.")
	return cmd
}

// overlay copies the flags the user set explicitly over the settings.
func overlay(cmd *cobra.Command, s *config.Settings, f flags) {
	changed := cmd.Flags().Changed
	if changed("log-format") {
		s.LogFormat = f.logFormat
	}
	if changed("log-level") {
		s.LogLevel = f.logLevel
	}
	if changed("locale") {
		s.Locale = f.locale
	}
	if changed("output") {
		s.Output = f.output
	}
}
