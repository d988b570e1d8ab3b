// Package hcl provides the HCL implementation of the config.Loader interface.
// It is responsible for parsing diagram files, translating their blocks into
// the format-agnostic model and converting attribute values with go-cty.
//
// A diagram file holds `unit` and `node` blocks:
//
//	unit "widget" {
//	  aliases = ["widgets"]
//	}
//
//	node "speed" {
//	  name       = "v"
//	  inputs     = ["distance", "time"]
//	  expression = "d / t"
//	  unit       = "km/h"
//	}
//
// Numeric attributes accept any expression that converts to a number. A null
// value is the same as leaving the attribute out.
package hcl
