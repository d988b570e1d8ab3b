package units

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z$_][A-Za-z0-9$_]*$`)

// ValidSymbol reports whether s is a well-formed unit identifier.
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}

// rawTerm is a parsed but unresolved factor of a unit string.
type rawTerm struct {
	name  string
	power int
}

type unitParser struct {
	input string
	pos   int
}

// parseRaw parses a unit string into its factors. The accepted grammar is
//
//	expr    = factor { ("*" | "/" | <space>) factor }
//	factor  = primary [ "^" power ]
//	primary = identifier | "1" | "(" expr ")"
//	power   = [ "-" | "+" ] digits | "(" [ "-" | "+" ] digits ")"
func parseRaw(s string) ([]rawTerm, error) {
	p := &unitParser{input: s}
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("empty unit")
	}
	terms, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return terms, nil
}

func (p *unitParser) expr() ([]rawTerm, error) {
	terms, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		hadSpace := p.skipSpace()
		if p.eof() {
			return terms, nil
		}
		invert := false
		switch c := p.peek(); {
		case c == '*':
			p.pos++
		case c == '/':
			p.pos++
			invert = true
		case c == ')':
			return terms, nil
		case hadSpace && (isIdentStart(c) || c == '('):
			// Whitespace between factors multiplies them.
		default:
			return nil, p.errorf("unexpected %q", c)
		}
		p.skipSpace()
		next, err := p.factor()
		if err != nil {
			return nil, err
		}
		for _, t := range next {
			if invert {
				t.power = -t.power
			}
			terms = append(terms, t)
		}
	}
}

func (p *unitParser) factor() ([]rawTerm, error) {
	terms, err := p.primary()
	if err != nil {
		return nil, err
	}
	// Whitespace before "^" belongs to the power. Anywhere else it is left for
	// expr, where it multiplies.
	next := p.afterSpace()
	if next >= len(p.input) || p.input[next] != '^' {
		return terms, nil
	}
	p.pos = next + 1
	p.skipSpace()
	pow, err := p.power()
	if err != nil {
		return nil, err
	}
	for i := range terms {
		terms[i].power *= pow
	}
	return terms, nil
}

func (p *unitParser) primary() ([]rawTerm, error) {
	if p.eof() {
		return nil, p.errorf("unexpected end of unit")
	}
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		p.skipSpace()
		terms, err := p.expr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.eof() || p.peek() != ')' {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return terms, nil
	case c == '1':
		p.pos++
		if !p.eof() && isDigit(p.peek()) {
			return nil, p.errorf("only the number 1 may appear in a unit")
		}
		return nil, nil
	case isIdentStart(c):
		start := p.pos
		for !p.eof() && isIdentPart(p.peek()) {
			p.pos++
		}
		return []rawTerm{{name: p.input[start:p.pos], power: 1}}, nil
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *unitParser) power() (int, error) {
	paren := false
	if !p.eof() && p.peek() == '(' {
		paren = true
		p.pos++
		p.skipSpace()
	}
	start := p.pos
	if !p.eof() && (p.peek() == '-' || p.peek() == '+') {
		p.pos++
	}
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, p.errorf("power must be an integer")
	}
	if paren {
		p.skipSpace()
		if p.eof() || p.peek() != ')' {
			return 0, p.errorf("missing closing parenthesis")
		}
		p.pos++
	}
	return n, nil
}

// peek returns the next rune. Non-ASCII input is reported as a whole rune so
// error messages stay readable.
func (p *unitParser) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r
}

func (p *unitParser) eof() bool {
	return p.pos >= len(p.input)
}

// afterSpace returns the offset of the first non-blank byte at or after pos.
func (p *unitParser) afterSpace() int {
	i := p.pos
	for i < len(p.input) && (p.input[i] == ' ' || p.input[i] == '\t') {
		i++
	}
	return i
}

func (p *unitParser) skipSpace() bool {
	start := p.pos
	p.pos = p.afterSpace()
	return p.pos > start
}

func (p *unitParser) errorf(format string, args ...any) error {
	return &SyntaxError{Input: p.input, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
