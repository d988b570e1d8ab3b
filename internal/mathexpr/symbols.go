package mathexpr

import "strings"

// Symbols returns the distinct names an expression refers to, in order of
// first appearance. Unit names are included; the caller decides which names
// it supplies through the scope.
func Symbols(expr string) ([]string, error) {
	root, err := parse(expr)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	root.symbols(func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	})
	return out, nil
}

// RenameSymbols rewrites every identifier found in names, leaving the rest of
// the text untouched. Identifiers are matched as whole tokens, so renaming
// "a" does not touch "ab". The "to" keyword is never renamed.
func RenameSymbols(expr string, names map[string]string) (string, error) {
	toks, err := lex(expr)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	last := 0
	for _, tok := range toks {
		if tok.kind != tokIdent || tok.text == convertKeyword {
			continue
		}
		repl, ok := names[tok.text]
		if !ok {
			continue
		}
		b.WriteString(expr[last:tok.pos])
		b.WriteString(repl)
		last = tok.pos + len(tok.text)
	}
	b.WriteString(expr[last:])
	return b.String(), nil
}
