package mathexpr

import (
	"strconv"
	"strings"
)

// Binding powers, weakest first. Implicit multiplication binds tighter than
// "*" and "/" so "20 m / 10 s" reads as (20 m) / (10 s).
const (
	bpConvert  = 10
	bpAdd      = 20
	bpMul      = 30
	bpImplicit = 40
	bpUnary    = 50
	bpPow      = 60
)

// convertKeyword introduces a unit conversion: "a to cm".
const convertKeyword = "to"

type node interface {
	eval(env *env) (any, error)
	symbols(yield func(name string))
}

type numberLit struct {
	v float64
}

type symbolRef struct {
	name string
	pos  int
}

type unaryExpr struct {
	op string
	x  node
}

type binaryExpr struct {
	op   string
	x, y node
}

type convertExpr struct {
	x, target node
	// text is the source of the target, e.g. "m/s" in "a to m/s".
	text string
}

func (n *numberLit) symbols(func(string)) {}

func (n *symbolRef) symbols(yield func(string)) { yield(n.name) }

func (n *unaryExpr) symbols(yield func(string)) { n.x.symbols(yield) }

func (n *binaryExpr) symbols(yield func(string)) {
	n.x.symbols(yield)
	n.y.symbols(yield)
}

func (n *convertExpr) symbols(yield func(string)) {
	n.x.symbols(yield)
	n.target.symbols(yield)
}

type parser struct {
	input string
	toks  []token
	i     int
}

// parse builds the syntax tree of a single expression.
func parse(input string) (node, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorAt(p.peek(), "empty expression")
	}
	root, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorAt(tok, "unexpected "+strconv.Quote(tok.text))
	}
	return root, nil
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

func (p *parser) expr(rbp int) (node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		bp, ok := p.infixPower()
		if !ok || bp <= rbp {
			return left, nil
		}
		left, err = p.infix(left, bp)
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) prefix() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return &numberLit{v: tok.num}, nil
	case tokIdent:
		if tok.text == convertKeyword {
			return nil, p.errorAt(tok, `"to" needs a value on its left`)
		}
		return &symbolRef{name: tok.text, pos: tok.pos}, nil
	case tokLParen:
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorAt(closing, "missing closing parenthesis")
		}
		return inner, nil
	case tokOp:
		if tok.text == "-" || tok.text == "+" {
			x, err := p.expr(bpUnary)
			if err != nil {
				return nil, err
			}
			return &unaryExpr{op: tok.text, x: x}, nil
		}
	case tokEOF:
		return nil, p.errorAt(tok, "unexpected end of expression")
	}
	return nil, p.errorAt(tok, "unexpected "+strconv.Quote(tok.text))
}

func (p *parser) infixPower() (int, bool) {
	tok := p.peek()
	switch tok.kind {
	case tokOp:
		switch tok.text {
		case "+", "-":
			return bpAdd, true
		case "*", "/":
			return bpMul, true
		case "^":
			return bpPow, true
		}
	case tokIdent:
		if tok.text == convertKeyword {
			return bpConvert, true
		}
		return bpImplicit, true
	case tokLParen:
		return bpImplicit, true
	}
	return 0, false
}

func (p *parser) infix(left node, bp int) (node, error) {
	tok := p.peek()
	switch {
	case tok.kind == tokIdent && tok.text == convertKeyword:
		p.next()
		start := p.peek().pos
		target, err := p.expr(bpConvert)
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(p.input[start:p.peek().pos])
		return &convertExpr{x: left, target: target, text: text}, nil
	case tok.kind == tokOp && tok.text == "^":
		p.next()
		// Right associative: 2^3^2 is 2^(3^2).
		right, err := p.expr(bpPow - 1)
		if err != nil {
			return nil, err
		}
		return &binaryExpr{op: "^", x: left, y: right}, nil
	case tok.kind == tokOp:
		p.next()
		right, err := p.expr(bp)
		if err != nil {
			return nil, err
		}
		return &binaryExpr{op: tok.text, x: left, y: right}, nil
	default:
		right, err := p.expr(bpImplicit)
		if err != nil {
			return nil, err
		}
		return &binaryExpr{op: "*", x: left, y: right}, nil
	}
}

func (p *parser) errorAt(tok token, msg string) error {
	return &SyntaxError{Expr: p.input, Pos: tok.pos, Msg: msg}
}
