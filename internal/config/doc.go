// Package config defines the format-agnostic diagram model the application
// loads, the Loader interface that produces it, and the YAML settings file.
//
// JSON and YAML diagram files are read here directly. HCL files are handed to
// the loader in the `hcl` package, which FileLoader receives at construction.
package config
