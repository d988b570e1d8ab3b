package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/unitgridgo/internal/ctxlog"
)

// Run loads the diagram, evaluates every node and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	d, err := a.LoadDiagram(ctx)
	if err != nil {
		return err
	}

	report, err := d.Evaluate(ctx)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	if len(report.Cycles) > 0 {
		a.logger.Warn("Some nodes could not be resolved because of cycles.", "groups", report.Cycles)
	}

	if err := a.render(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
