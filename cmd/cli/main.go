package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/unitgridgo/internal/app"
	"github.com/specialistvlad/unitgridgo/internal/cli"
	"github.com/specialistvlad/unitgridgo/internal/config"
	"github.com/specialistvlad/unitgridgo/internal/hcl"
)

// main is the entrypoint for the unitgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The report goes to outW and logs to logW.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	// JSON and YAML are read by the file loader itself; HCL goes to the
	// concrete HCL loader.
	loader := config.NewFileLoader(hcl.NewLoader())
	unitgridApp := app.NewApp(outW, logW, appConfig, loader)

	return unitgridApp.Run(context.Background())
}
