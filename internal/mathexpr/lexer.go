package mathexpr

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
}

// operator spellings normalized to their ASCII form.
var operators = map[rune]string{
	'+': "+",
	'-': "-",
	'*': "*",
	'/': "/",
	'^': "^",
	'×': "*",
	'·': "*",
	'÷': "/",
	'−': "-",
}

func lex(input string) ([]token, error) {
	var toks []token
	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		switch {
		case unicode.IsSpace(r):
			pos += size
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: pos})
			pos += size
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: pos})
			pos += size
		case isDigit(r) || (r == '.' && pos+1 < len(input) && isDigit(rune(input[pos+1]))):
			end := scanNumber(input, pos)
			v, err := strconv.ParseFloat(input[pos:end], 64)
			if err != nil {
				return nil, &SyntaxError{Expr: input, Pos: pos, Msg: "malformed number " + strconv.Quote(input[pos:end])}
			}
			toks = append(toks, token{kind: tokNumber, text: input[pos:end], pos: pos, num: v})
			pos = end
		case isIdentStart(r):
			end := pos + size
			for end < len(input) {
				next, n := utf8.DecodeRuneInString(input[end:])
				if !isIdentPart(next) {
					break
				}
				end += n
			}
			toks = append(toks, token{kind: tokIdent, text: input[pos:end], pos: pos})
			pos = end
		default:
			op, ok := operators[r]
			if !ok {
				return nil, &SyntaxError{Expr: input, Pos: pos, Msg: "unexpected character " + strconv.QuoteRune(r)}
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: pos})
			pos += size
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

func scanNumber(input string, pos int) int {
	end := pos
	for end < len(input) && isDigit(rune(input[end])) {
		end++
	}
	if end < len(input) && input[end] == '.' {
		end++
		for end < len(input) && isDigit(rune(input[end])) {
			end++
		}
	}
	// An exponent needs digits; "2e" is the number 2 followed by the symbol e.
	if end < len(input) && (input[end] == 'e' || input[end] == 'E') {
		exp := end + 1
		if exp < len(input) && (input[exp] == '+' || input[exp] == '-') {
			exp++
		}
		if exp < len(input) && isDigit(rune(input[exp])) {
			end = exp
			for end < len(input) && isDigit(rune(input[end])) {
				end++
			}
		}
	}
	return end
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
