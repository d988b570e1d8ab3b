package units

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/unit"
)

type prefixSet int

const (
	noPrefixes prefixSet = iota
	shortPrefixes
	longPrefixes
)

var shortPrefixTable = byLongestName([]Prefix{
	{"da", 1e1}, {"h", 1e2}, {"k", 1e3}, {"M", 1e6}, {"G", 1e9}, {"T", 1e12},
	{"P", 1e15}, {"E", 1e18}, {"Z", 1e21}, {"Y", 1e24},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"u", 1e-6}, {"n", 1e-9},
	{"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18}, {"z", 1e-21}, {"y", 1e-24},
})

var longPrefixTable = byLongestName([]Prefix{
	{"deca", 1e1}, {"hecto", 1e2}, {"kilo", 1e3}, {"mega", 1e6}, {"giga", 1e9},
	{"tera", 1e12}, {"deci", 1e-1}, {"centi", 1e-2}, {"milli", 1e-3},
	{"micro", 1e-6}, {"nano", 1e-9}, {"pico", 1e-12},
})

// byLongestName orders prefixes so "da" is tried before "d".
func byLongestName(table []Prefix) []Prefix {
	sort.SliceStable(table, func(i, j int) bool {
		return len(table[i].Name) > len(table[j].Name)
	})
	return table
}

var (
	length      = unit.Dimensions{unit.LengthDim: 1}
	mass        = unit.Dimensions{unit.MassDim: 1}
	duration    = unit.Dimensions{unit.TimeDim: 1}
	current     = unit.Dimensions{unit.CurrentDim: 1}
	temperature = unit.Dimensions{unit.TemperatureDim: 1}
	amount      = unit.Dimensions{unit.MoleDim: 1}
	luminous    = unit.Dimensions{unit.LuminousIntensityDim: 1}
	angle       = unit.Dimensions{unit.AngleDim: 1}
	volume      = unit.Dimensions{unit.LengthDim: 3}
	frequency   = unit.Dimensions{unit.TimeDim: -1}
	force       = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -2}
	energy      = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2}
	power       = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3}
	pressure    = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
	charge      = unit.Dimensions{unit.CurrentDim: 1, unit.TimeDim: 1}
	voltage     = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3, unit.CurrentDim: -1}
)

type builtinGroup struct {
	names    []string
	dims     unit.Dimensions
	scale    float64
	prefixes prefixSet
}

// There is deliberately no "b" (bit): single letters are common input names.
var builtinGroups = []builtinGroup{
	{[]string{"m"}, length, 1, shortPrefixes},
	{[]string{"meter", "meters", "metre", "metres"}, length, 1, longPrefixes},
	{[]string{"in", "inch", "inches"}, length, 0.0254, noPrefixes},
	{[]string{"ft", "foot", "feet"}, length, 0.3048, noPrefixes},
	{[]string{"yd", "yard", "yards"}, length, 0.9144, noPrefixes},
	{[]string{"mi", "mile", "miles"}, length, 1609.344, noPrefixes},

	{[]string{"g"}, mass, 1e-3, shortPrefixes},
	{[]string{"gram", "grams"}, mass, 1e-3, longPrefixes},
	{[]string{"tonne", "tonnes"}, mass, 1e3, noPrefixes},
	{[]string{"lb", "lbs", "pound", "pounds"}, mass, 0.45359237, noPrefixes},
	{[]string{"oz", "ounce", "ounces"}, mass, 0.028349523125, noPrefixes},

	{[]string{"s"}, duration, 1, shortPrefixes},
	{[]string{"second", "seconds"}, duration, 1, longPrefixes},
	{[]string{"min", "minute", "minutes"}, duration, 60, noPrefixes},
	{[]string{"h", "hr", "hrs", "hour", "hours"}, duration, 3600, noPrefixes},
	{[]string{"day", "days"}, duration, 86400, noPrefixes},
	{[]string{"week", "weeks"}, duration, 604800, noPrefixes},
	{[]string{"year", "years"}, duration, 31557600, noPrefixes},

	{[]string{"A"}, current, 1, shortPrefixes},
	{[]string{"ampere", "amperes", "amp", "amps"}, current, 1, longPrefixes},
	{[]string{"K"}, temperature, 1, shortPrefixes},
	{[]string{"kelvin"}, temperature, 1, longPrefixes},
	{[]string{"mol"}, amount, 1, shortPrefixes},
	{[]string{"mole", "moles"}, amount, 1, longPrefixes},
	{[]string{"cd"}, luminous, 1, shortPrefixes},
	{[]string{"candela"}, luminous, 1, longPrefixes},
	{[]string{"rad"}, angle, 1, shortPrefixes},
	{[]string{"radian", "radians"}, angle, 1, longPrefixes},
	{[]string{"deg", "degree", "degrees"}, angle, math.Pi / 180, noPrefixes},

	{[]string{"L", "l"}, volume, 1e-3, shortPrefixes},
	{[]string{"liter", "liters", "litre", "litres"}, volume, 1e-3, longPrefixes},
	{[]string{"gal", "gallon", "gallons"}, volume, 0.003785411784, noPrefixes},
	{[]string{"Hz"}, frequency, 1, shortPrefixes},
	{[]string{"hertz"}, frequency, 1, longPrefixes},
	{[]string{"N"}, force, 1, shortPrefixes},
	{[]string{"newton", "newtons"}, force, 1, longPrefixes},
	{[]string{"J"}, energy, 1, shortPrefixes},
	{[]string{"joule", "joules"}, energy, 1, longPrefixes},
	{[]string{"Wh"}, energy, 3600, shortPrefixes},
	{[]string{"W"}, power, 1, shortPrefixes},
	{[]string{"watt", "watts"}, power, 1, longPrefixes},
	{[]string{"Pa"}, pressure, 1, shortPrefixes},
	{[]string{"pascal", "pascals"}, pressure, 1, longPrefixes},
	{[]string{"bar"}, pressure, 1e5, shortPrefixes},
	{[]string{"psi"}, pressure, 6894.757293168, noPrefixes},
	{[]string{"C"}, charge, 1, shortPrefixes},
	{[]string{"coulomb", "coulombs"}, charge, 1, longPrefixes},
	{[]string{"V"}, voltage, 1, shortPrefixes},
	{[]string{"volt", "volts"}, voltage, 1, longPrefixes},
}

var builtins = func() map[string]*Definition {
	table := make(map[string]*Definition)
	for _, group := range builtinGroups {
		for _, name := range group.names {
			table[name] = &Definition{
				Name:       name,
				Dimensions: group.dims,
				Scale:      group.scale,
				prefixes:   group.prefixes,
			}
		}
	}
	return table
}()

// defaultBase is the unit a base dimension simplifies to when no preference
// has been recorded.
var defaultBase = map[unit.Dimension]Term{
	unit.LengthDim:            {Def: builtin("m"), Power: 1},
	unit.MassDim:              {Def: builtin("g"), Prefix: Prefix{"k", 1e3}, Power: 1},
	unit.TimeDim:              {Def: builtin("s"), Power: 1},
	unit.CurrentDim:           {Def: builtin("A"), Power: 1},
	unit.TemperatureDim:       {Def: builtin("K"), Power: 1},
	unit.MoleDim:              {Def: builtin("mol"), Power: 1},
	unit.LuminousIntensityDim: {Def: builtin("cd"), Power: 1},
	unit.AngleDim:             {Def: builtin("rad"), Power: 1},
}

func builtin(name string) *Definition {
	d, ok := builtins[name]
	if !ok {
		panic("units: unknown builtin " + name)
	}
	return d
}

// IsBuiltin reports whether name is a built-in unit, with or without prefix.
func IsBuiltin(name string) bool {
	_, ok := lookupBuiltin(name)
	return ok
}

func lookupBuiltin(name string) (Term, bool) {
	if d, ok := builtins[name]; ok {
		return Term{Def: d, Power: 1}, true
	}
	for _, set := range []struct {
		kind  prefixSet
		table []Prefix
	}{{shortPrefixes, shortPrefixTable}, {longPrefixes, longPrefixTable}} {
		for _, p := range set.table {
			rest, ok := strings.CutPrefix(name, p.Name)
			if !ok || rest == "" {
				continue
			}
			if d, ok := builtins[rest]; ok && d.prefixes == set.kind {
				return Term{Def: d, Prefix: p, Power: 1}, true
			}
		}
	}
	return Term{}, false
}
