package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/unitgridgo/internal/ctxlog"
	"github.com/specialistvlad/unitgridgo/internal/diagram"
	"github.com/specialistvlad/unitgridgo/internal/units"
)

// LoadDiagram reads the configured diagram path and builds the diagram.
// Units from the configuration are declared first, then the units and nodes
// of the diagram files.
func (a *App) LoadDiagram(ctx context.Context) (*diagram.Diagram, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading diagram...", "diagram_path", a.config.DiagramPath)

	model, err := a.loader.Load(ctx, a.config.DiagramPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load diagram: %w", err)
	}
	if len(model.Files) == 0 {
		return nil, fmt.Errorf("no diagram files found in %s", a.config.DiagramPath)
	}

	d := diagram.New(units.NewRegistry(),
		diagram.WithLogger(logger),
		diagram.WithLanguage(a.config.Language()),
	)
	for _, u := range a.config.Units {
		if err := d.DeclareUnit(u.Symbol, u.Aliases...); err != nil {
			return nil, err
		}
	}
	if err := d.Import(model.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to import diagram: %w", err)
	}

	logger.Info("Diagram loaded.", "files", len(model.Files), "nodes", d.Len())
	return d, nil
}
