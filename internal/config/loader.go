package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/unitgridgo/internal/ctxlog"
	"github.com/specialistvlad/unitgridgo/internal/diagram"
	"github.com/specialistvlad/unitgridgo/internal/fsutil"
)

// Extensions of the diagram files FileLoader understands.
const (
	ExtJSON = ".json"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtHCL  = ".hcl"
)

// ErrUnsupportedFormat is returned for a file whose extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported diagram format")

// FileLoader loads JSON and YAML diagrams and delegates HCL files to another
// Loader. It implements Loader.
type FileLoader struct {
	hcl Loader
}

var _ Loader = (*FileLoader)(nil)

// NewFileLoader creates a loader. hcl handles .hcl files; when it is nil,
// HCL files are rejected.
func NewFileLoader(hcl Loader) *FileLoader {
	return &FileLoader{hcl: hcl}
}

// Load reads every diagram file under paths. Directories are searched
// recursively. A path that names a single file must have a known extension.
func (l *FileLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Diagram loader started.", "path_count", len(paths))

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		if !info.IsDir() && !fsutil.HasExtension(p, ExtJSON, ExtYAML, ExtYML, ExtHCL) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, p)
		}
	}

	files, err := fsutil.FindFiles(paths, ExtJSON, ExtYAML, ExtYML, ExtHCL)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered diagram files.", "count", len(files))

	model := NewModel()
	for _, file := range files {
		if err := l.loadFile(ctx, model, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("Diagram loading complete.", "files", len(model.Files), "nodes", len(model.Snapshot.Nodes), "units", len(model.Snapshot.Units))
	return model, nil
}

func (l *FileLoader) loadFile(ctx context.Context, model *Model, file string) error {
	ext := strings.ToLower(filepath.Ext(file))
	if ext == ExtHCL {
		if l.hcl == nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
		}
		m, err := l.hcl.Load(ctx, file)
		if err != nil {
			return err
		}
		model.Merge(m)
		return nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read diagram file %s: %w", file, err)
	}

	var s diagram.Snapshot
	switch ext {
	case ExtJSON:
		s, err = diagram.ReadSnapshot(bytes.NewReader(data))
	case ExtYAML, ExtYML:
		s, err = ReadYAMLSnapshot(bytes.NewReader(data))
	}
	if err != nil {
		return fmt.Errorf("failed to decode diagram file %s: %w", file, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded diagram file.", "file", file, "nodes", len(s.Nodes))
	model.Add(file, s)
	return nil
}

// ReadYAMLSnapshot decodes a YAML diagram. It has the same shape as the JSON
// snapshot. Unknown fields are rejected and an empty document is an empty
// diagram.
func ReadYAMLSnapshot(r io.Reader) (diagram.Snapshot, error) {
	var s diagram.Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return diagram.Snapshot{}, err
	}
	return s, nil
}
