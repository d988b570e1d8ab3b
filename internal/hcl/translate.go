package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/unitgridgo/internal/ctxlog"
	"github.com/specialistvlad/unitgridgo/internal/diagram"
)

// translateFile converts the decoded blocks of one file into a snapshot.
func (l *Loader) translateFile(ctx context.Context, root *fileRoot) (diagram.Snapshot, error) {
	var s diagram.Snapshot
	for _, u := range root.Units {
		s.Units = append(s.Units, l.translateUnit(u))
	}
	for _, n := range root.Nodes {
		st, err := l.translateNode(ctx, n)
		if err != nil {
			return diagram.Snapshot{}, err
		}
		s.Nodes = append(s.Nodes, st)
	}
	return s, nil
}

// translateUnit converts a unit block into a declaration.
func (l *Loader) translateUnit(u *unitBlock) diagram.UnitDecl {
	return diagram.UnitDecl{Symbol: u.Symbol, Aliases: u.Aliases}
}

// translateNode converts a node block into the stored node state.
func (l *Loader) translateNode(ctx context.Context, n *nodeBlock) (diagram.NodeState, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Translating node block.", "node_id", n.ID)

	value, err := decodeNumber(ctx, n.Value)
	if err != nil {
		return diagram.NodeState{}, fmt.Errorf("node %q: value: %w", n.ID, err)
	}
	temp, err := decodeNumber(ctx, n.TemporaryValue)
	if err != nil {
		return diagram.NodeState{}, fmt.Errorf("node %q: temporary_value: %w", n.ID, err)
	}

	return diagram.NodeState{
		ID:             n.ID,
		Name:           n.Name,
		DisplayName:    n.DisplayName,
		Description:    n.Description,
		Value:          value,
		TemporaryValue: temp,
		Unit:           n.Unit,
		Expression:     n.Expression,
		Operation:      n.Operation,
		Inputs:         n.Inputs,
		Labels:         n.Labels,
		Color:          n.Color,
		Icon:           n.Icon,
	}, nil
}
