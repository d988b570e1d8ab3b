package config

import "github.com/specialistvlad/unitgridgo/internal/diagram"

// Model is the unified representation of every diagram file that was loaded.
type Model struct {
	// Snapshot holds the unit declarations and nodes of all files, in load
	// order.
	Snapshot diagram.Snapshot
	// Files lists the files that contributed to the model.
	Files []string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// Add appends the contents of one file.
func (m *Model) Add(file string, s diagram.Snapshot) {
	m.Snapshot.Units = append(m.Snapshot.Units, s.Units...)
	m.Snapshot.Nodes = append(m.Snapshot.Nodes, s.Nodes...)
	m.Files = append(m.Files, file)
}

// Merge appends another model.
func (m *Model) Merge(o *Model) {
	m.Snapshot.Units = append(m.Snapshot.Units, o.Snapshot.Units...)
	m.Snapshot.Nodes = append(m.Snapshot.Nodes, o.Snapshot.Nodes...)
	m.Files = append(m.Files, o.Files...)
}
