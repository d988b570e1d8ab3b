package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/unitgridgo/internal/diagram"
)

func writeHCL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func ptr(v float64) *float64 { return &v }

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "units.hcl", `
unit "widget" {
  aliases = ["widgets"]
}

unit "$" {}
`)
	writeHCL(t, dir, "nodes/main.hcl", `
node "distance" {
  name         = "d"
  display_name = "Distance"
  value        = 1500
  unit         = "m"
  labels       = ["sensor:odometer"]
  color        = "blue"
  icon         = "road.svg"
}

node "time" {
  name            = "t"
  value           = "60"
  temporary_value = 30 * 2
  unit            = "s"
}

node "speed" {
  name        = "v"
  description = "average speed"
  inputs      = ["distance", "time"]
  expression  = "d / t"
  unit        = "km/h"
}

node "total" {
  inputs    = ["distance", "distance"]
  operation = "add"
  value     = null
}
`)
	writeHCL(t, dir, "ignored.json", `{}`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	want := diagram.Snapshot{
		Units: []diagram.UnitDecl{
			{Symbol: "widget", Aliases: []string{"widgets"}},
			{Symbol: "$"},
		},
		Nodes: []diagram.NodeState{
			{
				ID: "distance", Name: "d", DisplayName: "Distance", Value: ptr(1500), Unit: "m",
				Labels: []string{"sensor:odometer"}, Color: "blue", Icon: "road.svg",
			},
			{ID: "time", Name: "t", Value: ptr(60), TemporaryValue: ptr(60), Unit: "s"},
			{
				ID: "speed", Name: "v", Description: "average speed", Inputs: []string{"distance", "time"},
				Expression: "d / t", Unit: "km/h",
			},
			{ID: "total", Inputs: []string{"distance", "distance"}, Operation: "add"},
		},
	}
	if diff := cmp.Diff(want, model.Snapshot); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{filepath.Join(dir, "nodes", "main.hcl"), filepath.Join(dir, "units.hcl")}, model.Files)
}

func TestLoader_LoadedDiagramEvaluates(t *testing.T) {
	path := writeHCL(t, t.TempDir(), "speed.hcl", `
node "distance" {
  name  = "d"
  value = 1500
  unit  = "m"
}

node "time" {
  name  = "t"
  value = 60
  unit  = "s"
}

node "speed" {
  inputs     = ["distance", "time"]
  expression = "d / t"
  unit       = "km/h"
}
`)
	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	d := diagram.New(nil)
	require.NoError(t, d.Import(model.Snapshot))

	v, ok := d.Node("speed").ComputedValue()
	require.True(t, ok)
	assert.InEpsilon(t, 90.0, v, 1e-12)
	assert.Equal(t, "km / h", d.Node("speed").ComputedUnit())
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "syntax error",
			content: "node \"a\" {\n  value = \n",
			want:    "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			content: `step "print" "A" {}`,
			want:    "failed to decode HCL file",
		},
		{
			name:    "unknown attribute",
			content: `node "a" { colour = "red" }`,
			want:    "failed to decode HCL file",
		},
		{
			name:    "missing label",
			content: `node {}`,
			want:    "failed to decode HCL file",
		},
		{
			name:    "value is not a number",
			content: `node "a" { value = "twelve" }`,
			want:    `node "a": value: cannot convert string to required type number`,
		},
		{
			name:    "value references a variable",
			content: `node "a" { value = other.value }`,
			want:    `node "a": value`,
		},
		{
			name:    "temporary value is a list",
			content: `node "a" { temporary_value = [1] }`,
			want:    `node "a": temporary_value`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeHCL(t, t.TempDir(), "main.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoader_MissingPathIsEmpty(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, model.Snapshot.Nodes)
	assert.Empty(t, model.Files)
}
