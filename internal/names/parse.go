package names

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/funvibe/typewalk/internal/config"
	"github.com/funvibe/typewalk/internal/typesystem"
)

// Scope maps variable names visible at a declaration site to the variables.
type Scope map[string]typesystem.TVar

// SyntaxError reports a malformed type expression.
type SyntaxError struct {
	Text string
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid type expression %q at %d: %s", e.Text, e.Pos, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLT
	tokGT
	tokComma
	tokLBracket
	tokRBracket
	tokAmp
	tokQuestion
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.$/-", r)
}

func tokenize(text string) ([]token, error) {
	var toks []token
	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
			continue
		case isIdentRune(r):
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
			continue
		}
		var kind tokenKind
		switch r {
		case '<':
			kind = tokLT
		case '>':
			kind = tokGT
		case ',':
			kind = tokComma
		case '[':
			kind = tokLBracket
		case ']':
			kind = tokRBracket
		case '&':
			kind = tokAmp
		case '?':
			kind = tokQuestion
		default:
			return nil, &SyntaxError{Text: text, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
		toks = append(toks, token{kind: kind, text: string(r), pos: i})
		i++
	}
	toks = append(toks, token{kind: tokEOF, pos: len(runes)})
	return toks, nil
}

type parser struct {
	reg   Registry
	scope Scope
	text  string
	toks  []token
	pos   int
}

// ParseType parses a generic type expression such as
// "util.Map<lang.String, T[]>" or "util.List<? extends lang.Number>".
// Names are resolved against scope first, then as primitives, then through reg.
// Packed descriptors ("[I") are accepted as a whole expression.
func ParseType(reg Registry, text string, scope Scope) (typesystem.Type, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, string(config.PackedArrayPrefix)) && !strings.ContainsAny(trimmed, "<]") {
		c, ok, err := ResolveByName(reg, trimmed, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &SyntaxError{Text: text, Pos: 0, Msg: "array of void"}
		}
		return c, nil
	}

	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{reg: reg, scope: scope, text: text, toks: toks}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
	return t, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, p.errorf(tok, "expected %s", what)
	}
	return tok, nil
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &SyntaxError{Text: p.text, Pos: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseType() (typesystem.Type, error) {
	var base typesystem.Type
	var err error
	if p.peek().kind == tokQuestion {
		base, err = p.parseWildcard()
	} else {
		base, err = p.parseNamed()
	}
	if err != nil {
		return nil, err
	}

	dims := 0
	for p.peek().kind == tokLBracket {
		p.next()
		if _, err := p.expect(tokRBracket, "]"); err != nil {
			return nil, err
		}
		dims++
	}
	if dims == 0 {
		return base, nil
	}
	if c, ok := base.(*typesystem.Class); ok && c.IsVoid() {
		return nil, typesystem.NewInvalidArrayComponentError(c)
	}
	return typesystem.NewTArray(base, dims), nil
}

func (p *parser) parseWildcard() (typesystem.Type, error) {
	p.next()
	tok := p.peek()
	if tok.kind != tokIdent {
		return typesystem.TWildcard{}, nil
	}
	switch tok.text {
	case "extends":
		p.next()
		var upper []typesystem.Type
		for {
			b, err := p.parseType()
			if err != nil {
				return nil, err
			}
			upper = append(upper, b)
			if p.peek().kind != tokAmp {
				break
			}
			p.next()
		}
		return typesystem.TWildcard{Upper: upper}, nil
	case "super":
		p.next()
		lower, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return typesystem.TWildcard{Lower: lower}, nil
	}
	return nil, p.errorf(tok, "expected extends or super after ?")
}

func (p *parser) parseNamed() (typesystem.Type, error) {
	tok, err := p.expect(tokIdent, "type name")
	if err != nil {
		return nil, err
	}

	if v, ok := p.scope[tok.text]; ok {
		if p.peek().kind == tokLT {
			return nil, p.errorf(p.peek(), "type variable %s cannot take arguments", tok.text)
		}
		return v, nil
	}

	c, status := load(p.reg, tok.text)
	if status != loaded {
		return nil, typesystem.NewNameResolutionError(tok.text)
	}
	if p.peek().kind != tokLT {
		return c, nil
	}

	p.next()
	var args []typesystem.Type
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokGT, ">"); err != nil {
		return nil, err
	}
	return typesystem.NewTApp(c, args...)
}
