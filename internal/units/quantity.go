package units

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/unit"
)

// Quantity is a magnitude tagged with a compound unit. The magnitude is kept
// in the quantity's own terms, so "999.9 mm" stays exactly 999.9 until it is
// converted. A quantity may also be a bare unit with no magnitude.
//
// Quantities are immutable; every operation returns a new value.
type Quantity struct {
	mag      *unit.Unit
	valued   bool
	terms    []Term
	simplify bool
	system   *System
}

// NewQuantity returns value expressed in terms.
func NewQuantity(value float64, terms []Term) *Quantity {
	return &Quantity{
		mag:    unit.New(value, termsDimensions(terms)),
		valued: true,
		terms:  cloneTerms(terms),
	}
}

// NewUnit returns a bare unit without a magnitude. In products it behaves
// like one of itself.
func NewUnit(terms []Term) *Quantity {
	q := NewQuantity(1, terms)
	q.valued = false
	return q
}

// Bind returns a copy of q that simplifies using the preferences of s.
func (q *Quantity) Bind(s *System) *Quantity {
	c := q.clone()
	c.system = s
	return c
}

func (q *Quantity) clone() *Quantity {
	return &Quantity{
		mag:      unit.New(q.mag.Value(), q.mag.Dimensions()),
		valued:   q.valued,
		terms:    cloneTerms(q.terms),
		simplify: q.simplify,
		system:   q.system,
	}
}

// Value returns the magnitude in the quantity's own terms and whether there
// is one.
func (q *Quantity) Value() (float64, bool) {
	return q.mag.Value(), q.valued
}

// HasValue reports whether q carries a magnitude.
func (q *Quantity) HasValue() bool {
	return q.valued
}

// SIValue returns the magnitude in SI base units.
func (q *Quantity) SIValue() float64 {
	return q.mag.Value() * termsScale(q.terms)
}

// Dimensions returns a copy of the dimensions of q.
func (q *Quantity) Dimensions() unit.Dimensions {
	return q.mag.Dimensions()
}

// Dimensionless reports whether all dimensions of q cancel.
func (q *Quantity) Dimensionless() bool {
	return len(q.mag.Dimensions()) == 0
}

// Add returns q+o in the units of q.
func (q *Quantity) Add(o *Quantity) (*Quantity, error) {
	return q.combine(o, 1, "add")
}

// Sub returns q-o in the units of q.
func (q *Quantity) Sub(o *Quantity) (*Quantity, error) {
	return q.combine(o, -1, "subtract")
}

func (q *Quantity) combine(o *Quantity, sign float64, verb string) (*Quantity, error) {
	if !q.valued || !o.valued {
		return nil, fmt.Errorf("%w: cannot %s %s and %s", ErrMissingValue, verb, q, o)
	}
	if !unit.DimensionsMatch(q.mag, o.mag) {
		return nil, fmt.Errorf("%w: cannot %s %s and %s", ErrIncompatibleUnits, verb, q.FormatUnits(), o.FormatUnits())
	}
	converted := sign * convert(o.mag.Value(), o.terms, q.terms)
	res := q.clone()
	res.mag.Add(unit.New(converted, o.mag.Dimensions()))
	res.system = pickSystem(q, o)
	return res, nil
}

// Mul returns q*o. The unit terms are concatenated without cancelling, so
// (m/s)*s keeps "(m s) / s" until simplified.
func (q *Quantity) Mul(o *Quantity) *Quantity {
	res := q.clone()
	res.mag.Mul(o.mag)
	res.terms = append(res.terms, o.terms...)
	res.valued = q.valued || o.valued
	res.simplify = true
	res.system = pickSystem(q, o)
	return res
}

// Div returns q/o.
func (q *Quantity) Div(o *Quantity) *Quantity {
	res := q.clone()
	res.mag.Div(o.mag)
	res.terms = append(res.terms, invertTerms(o.terms)...)
	res.valued = q.valued || o.valued
	res.simplify = true
	res.system = pickSystem(q, o)
	return res
}

// Scale multiplies q by a plain number. A bare unit becomes f of itself.
func (q *Quantity) Scale(f float64) *Quantity {
	res := q.clone()
	res.mag = unit.New(q.mag.Value()*f, q.mag.Dimensions())
	res.valued = true
	return res
}

// Inverse returns 1/q.
func (q *Quantity) Inverse() *Quantity {
	dims := q.mag.Dimensions()
	for d, p := range dims {
		dims[d] = -p
	}
	return &Quantity{
		mag:      unit.New(1/q.mag.Value(), dims),
		valued:   q.valued,
		terms:    invertTerms(q.terms),
		simplify: true,
		system:   q.system,
	}
}

// Neg returns -q.
func (q *Quantity) Neg() *Quantity {
	res := q.clone()
	res.mag = unit.New(-q.mag.Value(), q.mag.Dimensions())
	return res
}

// Pow raises q to p. Units only take integer powers.
func (q *Quantity) Pow(p float64) (*Quantity, error) {
	dims := q.mag.Dimensions()
	if len(dims) == 0 {
		res := NewQuantity(math.Pow(q.SIValue(), p), nil)
		res.valued = q.valued
		res.system = q.system
		return res, nil
	}
	if p != math.Trunc(p) {
		return nil, fmt.Errorf("%w: %s^%g", ErrFractionalPower, q.FormatUnits(), p)
	}
	n := int(p)
	newDims := make(unit.Dimensions)
	if n != 0 {
		for d, v := range dims {
			newDims[d] = v * n
		}
	}
	var terms []Term
	if n != 0 {
		terms = cloneTerms(q.terms)
		for i := range terms {
			terms[i].Power *= n
		}
	}
	return &Quantity{
		mag:      unit.New(math.Pow(q.mag.Value(), p), newDims),
		valued:   q.valued,
		terms:    terms,
		simplify: true,
		system:   q.system,
	}, nil
}

// To converts q into the units of target, which must be a bare unit.
func (q *Quantity) To(target *Quantity) (*Quantity, error) {
	if target.valued {
		return nil, fmt.Errorf("%w: conversion target %s must be a unit without a value", ErrUnexpectedType, target)
	}
	if !unit.DimensionsMatch(q.mag, target.mag) {
		return nil, fmt.Errorf("%w: cannot convert %s to %s", ErrIncompatibleUnits, q.FormatUnits(), target.FormatUnits())
	}
	v := target.mag.Value()
	if q.valued {
		v = convert(q.mag.Value(), q.terms, target.terms)
	}
	return &Quantity{
		mag:    unit.New(v, target.mag.Dimensions()),
		valued: q.valued,
		terms:  cloneTerms(target.terms),
		system: pickSystem(target, q),
	}, nil
}

// Simplify reduces the unit of q and rescales the magnitude to match:
// repeated units are merged, cancelled dimensions dropped, a single base
// dimension is shown in the preferred unit, and otherwise the unit is
// rewritten in base units when that is shorter.
func (q *Quantity) Simplify() *Quantity {
	res := q.clone()
	res.simplify = false

	dims := q.mag.Dimensions()
	if len(dims) == 0 {
		res.mag = unit.New(q.SIValue(), dims)
		res.terms = nil
		return res
	}

	target := mergeTerms(q.terms)
	if t, ok := q.singlePreference(dims); ok {
		target = []Term{t}
	} else if proposed, ok := q.baseTerms(dims); ok && len(proposed) < len(target) {
		target = proposed
	}

	res.terms = target
	res.mag = unit.New(convert(q.mag.Value(), q.terms, target), dims)
	return res
}

func (q *Quantity) singlePreference(dims unit.Dimensions) (Term, bool) {
	if len(dims) != 1 {
		return Term{}, false
	}
	for d, p := range dims {
		if p == 1 {
			return q.system.Preferred(d)
		}
	}
	return Term{}, false
}

func (q *Quantity) baseTerms(dims unit.Dimensions) ([]Term, bool) {
	out := make([]Term, 0, len(dims))
	for _, d := range sortedDimensions(dims) {
		t, ok := q.system.Preferred(d)
		if !ok {
			t, ok = defaultBase[d]
		}
		if !ok {
			t, ok = q.customRoot(d)
		}
		if !ok {
			return nil, false
		}
		t.Power = dims[d]
		out = append(out, t)
	}
	return out, true
}

func (q *Quantity) customRoot(d unit.Dimension) (Term, bool) {
	for _, t := range q.terms {
		root := t.Def.Root()
		if root.custom && root.Dimensions[d] != 0 {
			return Term{Def: root, Power: 1}, true
		}
	}
	return Term{}, false
}

// Reduced returns q in the form it is displayed: simplified when it is a
// product, quotient or power, and unchanged otherwise.
func (q *Quantity) Reduced() *Quantity {
	if q.simplify {
		return q.Simplify()
	}
	return q
}

// FormatUnits renders the unit of q without simplifying it.
func (q *Quantity) FormatUnits() string {
	return FormatTerms(q.terms)
}

// String renders "<value> <unit>". Products and quotients are simplified
// first; sums keep the unit of their first operand.
func (q *Quantity) String() string {
	s := q.Reduced()
	units := s.FormatUnits()
	if !s.valued {
		return units
	}
	v := FormatNumber(s.mag.Value())
	if units == "" {
		return v
	}
	return v + " " + units
}

// FormatNumber prints v with up to 14 significant digits, switching to
// exponent notation for very large or very small magnitudes.
func FormatNumber(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 14, 64), 64)
	if err != nil {
		r = v
	}
	if a := math.Abs(r); a >= 1e-5 && a < 1e15 {
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strconv.FormatFloat(r, 'g', -1, 64)
}

// convert rescales v from one set of terms into another through SI. Equal
// scales leave v untouched, so unconverted values survive bit for bit.
func convert(v float64, from, to []Term) float64 {
	fs, ts := termsScale(from), termsScale(to)
	if fs == ts {
		return v
	}
	return v * fs / ts
}

func pickSystem(a, b *Quantity) *System {
	if a.system != nil {
		return a.system
	}
	return b.system
}
