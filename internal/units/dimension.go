package units

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/unit"
)

// gonum keeps a single process-wide table of dimension symbols and panics on
// duplicates, so custom dimensions are created once per symbol and shared by
// every Registry.
var customDimensions = struct {
	sync.Mutex
	bySymbol map[string]unit.Dimension
}{bySymbol: make(map[string]unit.Dimension)}

func customDimension(symbol string) unit.Dimension {
	customDimensions.Lock()
	defer customDimensions.Unlock()

	if d, ok := customDimensions.bySymbol[symbol]; ok {
		return d
	}
	// gonum reserves the SI symbols and prefixes.
	d := unit.NewDimension("unitgrid:" + symbol)
	customDimensions.bySymbol[symbol] = d
	return d
}

// baseOrder is the display order of base dimensions in a simplified unit.
var baseOrder = map[unit.Dimension]int{
	unit.MassDim:              0,
	unit.LengthDim:            1,
	unit.TimeDim:              2,
	unit.CurrentDim:           3,
	unit.TemperatureDim:       4,
	unit.LuminousIntensityDim: 5,
	unit.MoleDim:              6,
	unit.AngleDim:             7,
}

func sortedDimensions(dims unit.Dimensions) []unit.Dimension {
	out := make([]unit.Dimension, 0, len(dims))
	for d := range dims {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iBuiltin := baseOrder[out[i]]
		oj, jBuiltin := baseOrder[out[j]]
		switch {
		case iBuiltin && jBuiltin:
			return oi < oj
		case iBuiltin != jBuiltin:
			return iBuiltin
		default:
			return out[i] < out[j]
		}
	})
	return out
}
