package units

import (
	"sync"

	"gonum.org/v1/gonum/unit"
)

// System holds the display preferences of one evaluation context. For each
// base dimension it remembers the unit the user wrote most recently, so a
// simplified length is shown in "cm" after the user has been working in
// centimetres.
type System struct {
	mu    sync.Mutex
	prefs map[unit.Dimension]Term
}

// NewSystem returns a system with no preferences; simplification then falls
// back to SI base units.
func NewSystem() *System {
	return &System{prefs: make(map[unit.Dimension]Term)}
}

// Prefer records every term that measures a single base dimension. Derived
// units such as "N" are ignored.
func (s *System) Prefer(terms ...Term) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range terms {
		d, ok := t.Def.baseDimension()
		if !ok {
			continue
		}
		t.Power = 1
		s.prefs[d] = t
	}
}

// Preferred returns the recorded unit for a base dimension.
func (s *System) Preferred(d unit.Dimension) (Term, bool) {
	if s == nil {
		return Term{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.prefs[d]
	return t, ok
}
