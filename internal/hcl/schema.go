package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block of a diagram file.
type fileRoot struct {
	Units []*unitBlock `hcl:"unit,block"`
	Nodes []*nodeBlock `hcl:"node,block"`
}

// unitBlock is the schema of a `unit "<symbol>"` block.
type unitBlock struct {
	Symbol  string   `hcl:"symbol,label"`
	Aliases []string `hcl:"aliases,optional"`
}

// nodeBlock is the schema of a `node "<id>"` block.
type nodeBlock struct {
	ID          string `hcl:"id,label"`
	Name        string `hcl:"name,optional"`
	DisplayName string `hcl:"display_name,optional"`
	Description string `hcl:"description,optional"`
	// Value and TemporaryValue stay expressions so that null and computed
	// numbers can be told apart from absent attributes at conversion time.
	Value          hcl.Expression `hcl:"value,optional"`
	TemporaryValue hcl.Expression `hcl:"temporary_value,optional"`
	Unit           string         `hcl:"unit,optional"`
	Expression     string         `hcl:"expression,optional"`
	Operation      string         `hcl:"operation,optional"`
	Inputs         []string       `hcl:"inputs,optional"`
	Labels         []string       `hcl:"labels,optional"`
	Color          string         `hcl:"color,optional"`
	Icon           string         `hcl:"icon,optional"`
}
