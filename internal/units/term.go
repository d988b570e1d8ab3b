package units

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// Prefix is a decimal scaling prefix such as "k" or "milli".
type Prefix struct {
	Name  string
	Scale float64
}

func (p Prefix) factor() float64 {
	if p.Name == "" {
		return 1
	}
	return p.Scale
}

// Definition describes a single named unit: its dimensions and the SI value
// of one unit. Aliases of a custom unit are separate definitions that share
// the root's dimension.
type Definition struct {
	Name       string
	Dimensions unit.Dimensions
	Scale      float64

	prefixes prefixSet
	custom   bool
	root     *Definition
}

// Custom reports whether the definition was registered at runtime.
func (d *Definition) Custom() bool {
	return d.custom
}

// Root returns the definition an alias belongs to, or d itself.
func (d *Definition) Root() *Definition {
	if d.root != nil {
		return d.root
	}
	return d
}

// baseDimension returns the single dimension of d when d measures exactly one
// base dimension to the first power.
func (d *Definition) baseDimension() (unit.Dimension, bool) {
	if len(d.Dimensions) != 1 {
		return 0, false
	}
	for dim, pow := range d.Dimensions {
		if pow == 1 {
			return dim, true
		}
	}
	return 0, false
}

// Term is one factor of a compound unit, e.g. the "cm^2" in "cm^2 / s".
type Term struct {
	Def    *Definition
	Prefix Prefix
	Power  int
}

// Symbol returns the prefixed unit name without the power.
func (t Term) Symbol() string {
	return t.Prefix.Name + t.Def.Name
}

func (t Term) scale() float64 {
	return math.Pow(t.Def.Scale*t.Prefix.factor(), float64(t.Power))
}

func (t Term) sameUnit(o Term) bool {
	return t.Def == o.Def && t.Prefix.Name == o.Prefix.Name
}

func termsScale(terms []Term) float64 {
	s := 1.0
	for _, t := range terms {
		s *= t.scale()
	}
	return s
}

func termsDimensions(terms []Term) unit.Dimensions {
	dims := make(unit.Dimensions)
	for _, t := range terms {
		for d, p := range t.Def.Dimensions {
			dims[d] += p * t.Power
			if dims[d] == 0 {
				delete(dims, d)
			}
		}
	}
	return dims
}

func cloneTerms(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	out := make([]Term, len(terms))
	copy(out, terms)
	return out
}

func invertTerms(terms []Term) []Term {
	out := cloneTerms(terms)
	for i := range out {
		out[i].Power = -out[i].Power
	}
	return out
}

// mergeTerms sums the powers of repeated units, keeping first-seen order and
// dropping units whose powers cancel.
func mergeTerms(terms []Term) []Term {
	var out []Term
	for _, t := range terms {
		merged := false
		for i := range out {
			if out[i].sameUnit(t) {
				out[i].Power += t.Power
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, t)
		}
	}
	kept := out[:0]
	for _, t := range out {
		if t.Power != 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

// FormatTerms renders a compound unit the way it is shown to users:
// "m", "m^2", "m / s", "(m s) / s", "kg / (m s^2)". Units with only negative
// powers keep their signs ("s^-1"). An empty term list formats as "".
func FormatTerms(terms []Term) string {
	var num, den []string
	for _, t := range terms {
		switch {
		case t.Power > 0:
			num = append(num, termString(t, t.Power))
		case t.Power < 0:
			den = append(den, termString(t, -t.Power))
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return ""
	}
	if len(num) == 0 {
		parts := make([]string, 0, len(terms))
		for _, t := range terms {
			if t.Power != 0 {
				parts = append(parts, termString(t, t.Power))
			}
		}
		return strings.Join(parts, " ")
	}

	n := strings.Join(num, " ")
	if len(den) == 0 {
		return n
	}
	if len(num) > 1 {
		n = "(" + n + ")"
	}
	d := strings.Join(den, " ")
	if len(den) > 1 {
		d = "(" + d + ")"
	}
	return n + " / " + d
}

func termString(t Term, power int) string {
	if power == 1 {
		return t.Symbol()
	}
	return t.Symbol() + "^" + strconv.Itoa(power)
}
