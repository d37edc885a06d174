package lang

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse parses an attribute expression into its syntax tree.
//
// Any syntax failure returns a nil tree and [ErrParse]; there are no partial
// trees. The error carries the source and failure offset as attributes for
// logging, but callers own the user-facing diagnostic wording.
func Parse(source string) (Expr, error) {
	p := &parser{input: source}

	p.skipSpace()

	e, ok := p.parseRel()

	p.skipSpace()

	if !ok || !p.eof() {
		return nil, ErrParse.With(
			slog.String("source", source),
			slog.Int("offset", p.pos),
		)
	}

	return e, nil
}

// parser holds the parser state. Alternatives backtrack by saving and
// restoring pos; nothing else is stateful.
type parser struct {
	input string
	pos   int
}

// parseRel parses a left-associative chain of and/or relations.
func (p *parser) parseRel() (Expr, bool) {
	left, ok := p.parseCmp()
	if !ok {
		return nil, false
	}

	for {
		save := p.pos

		p.skipSpace()

		op, ok := p.relOp()
		if !ok {
			p.pos = save

			return left, true
		}

		p.skipSpace()

		right, ok := p.parseCmp()
		if !ok {
			// Dangling operator: leave it unconsumed so the
			// trailing-input check fails the whole parse.
			p.pos = save

			return left, true
		}

		left = &Relation{L: left, R: right, Op: op}
	}
}

// relOp consumes a reserved relation keyword if one starts here.
func (p *parser) relOp() (RelOp, bool) {
	switch {
	case p.word("and"):
		return RelAnd, true
	case p.word("or"):
		return RelOr, true
	default:
		return 0, false
	}
}

// parseCmp parses at most one comparison. Chained comparisons are rejected
// by construction: the unconsumed second operator fails the outer parse.
func (p *parser) parseCmp() (Expr, bool) {
	left, ok := p.parseAdd()
	if !ok {
		return nil, false
	}

	save := p.pos

	p.skipSpace()

	var op CmpOp

	switch {
	case p.lit("=="):
		op = CmpEq
	case p.lit("!="):
		op = CmpNe
	default:
		p.pos = save

		return left, true
	}

	p.skipSpace()

	right, ok := p.parseAdd()
	if !ok {
		p.pos = save

		return left, true
	}

	return &Comparison{L: left, R: right, Op: op}, true
}

// parseAdd parses explicit "+" concatenation. The fold only wraps when at
// least one "+" is present; a single operand passes through unchanged.
func (p *parser) parseAdd() (Expr, bool) {
	first, ok := p.parseJoin()
	if !ok {
		return nil, false
	}

	parts := []Expr{first}

	for {
		save := p.pos

		p.skipSpace()

		if !p.lit("+") {
			p.pos = save

			break
		}

		p.skipSpace()

		next, ok := p.parseJoin()
		if !ok {
			p.pos = save

			break
		}

		parts = append(parts, next)
	}

	if len(parts) == 1 {
		return first, true
	}

	return &Concat{Parts: parts, Spaced: false}, true
}

// parseJoin parses one-or-more juxtaposed terms. Two or more terms fold into
// a space-joined Concat; a single term degenerates to itself.
func (p *parser) parseJoin() (Expr, bool) {
	first, ok := p.parseNeg()
	if !ok {
		return nil, false
	}

	parts := []Expr{first}

	for {
		save := p.pos

		p.skipSpace()

		next, ok := p.parseNeg()
		if !ok {
			p.pos = save

			break
		}

		parts = append(parts, next)
	}

	if len(parts) == 1 {
		return first, true
	}

	return &Concat{Parts: parts, Spaced: true}, true
}

// parseNeg parses an optional "!" prefix.
func (p *parser) parseNeg() (Expr, bool) {
	save := p.pos

	if p.lit("!") {
		p.skipSpace()

		term, ok := p.parseSimple()
		if !ok {
			p.pos = save

			return nil, false
		}

		return &Negation{Term: term}, true
	}

	return p.parseSimple()
}

// parseSimple parses a parenthesized expression, a variable, or a value.
func (p *parser) parseSimple() (Expr, bool) {
	switch p.peek() {
	case '(':
		save := p.pos

		p.advance()
		p.skipSpace()

		e, ok := p.parseRel()
		if !ok {
			p.pos = save

			return nil, false
		}

		p.skipSpace()

		if !p.lit(")") {
			p.pos = save

			return nil, false
		}

		return e, true

	case '$':
		return p.parseVar()

	case '\'', '"':
		return p.parseQuoted(p.peek())

	default:
		return p.parseBareword()
	}
}

// parseVar parses "$" "@"? "?"? identifier.
func (p *parser) parseVar() (Expr, bool) {
	save := p.pos

	p.advance() // skip '$'

	macro := p.lit("@")
	optional := p.lit("?")

	name, ok := p.parseIdent()
	if !ok {
		p.pos = save

		return nil, false
	}

	return &Var{Name: name, Macro: macro, Optional: optional}, true
}

// parseIdent parses letter (letterOrDigit | "_" | "-")*.
func (p *parser) parseIdent() (string, bool) {
	if !unicode.IsLetter(p.peek()) {
		return "", false
	}

	start := p.pos

	p.advance()

	for !p.eof() {
		r := p.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			r != '_' && r != '-' {
			break
		}

		p.advance()
	}

	return p.input[start:p.pos], true
}

// parseQuoted parses a delimited literal. A backslash yields the following
// character verbatim; every other character except the delimiter is copied.
func (p *parser) parseQuoted(delim rune) (Expr, bool) {
	save := p.pos

	p.advance() // skip opening delimiter

	var sb strings.Builder

	for !p.eof() {
		r := p.peek()

		if r == '\\' {
			p.advance()

			if p.eof() {
				break
			}

			sb.WriteRune(p.peek())
			p.advance()

			continue
		}

		if r == delim {
			p.advance()

			return &Text{Value: sb.String()}, true
		}

		sb.WriteRune(r)
		p.advance()
	}

	// Unterminated string
	p.pos = save

	return nil, false
}

// parseBareword parses an unquoted literal. The reserved relation keywords
// never parse as barewords, so "a and b" is a relation rather than text.
func (p *parser) parseBareword() (Expr, bool) {
	if p.atWord("and") || p.atWord("or") {
		return nil, false
	}

	start := p.pos

	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || reservedChar(r) {
			break
		}

		p.advance()
	}

	if p.pos == start {
		return nil, false
	}

	return &Text{Value: p.input[start:p.pos]}, true
}

// reservedChar reports whether r can never appear in a bareword.
func reservedChar(r rune) bool {
	switch r {
	case '$', '"', '\'', '+', '!', '=', '(', ')':
		return true
	}

	return false
}

// Helper methods

// peek returns the rune at the current position, or 0 at EOF.
func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])

	return r
}

// advance consumes one rune.
func (p *parser) advance() {
	if p.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
}

// lit consumes s if the input starts with it here.
func (p *parser) lit(s string) bool {
	if strings.HasPrefix(p.input[p.pos:], s) {
		p.pos += len(s)

		return true
	}

	return false
}

// atWord reports whether the reserved word s starts here, ending at a
// position where a bareword could not continue.
func (p *parser) atWord(s string) bool {
	if !strings.HasPrefix(p.input[p.pos:], s) {
		return false
	}

	rest := p.input[p.pos+len(s):]
	if rest == "" {
		return true
	}

	r, _ := utf8.DecodeRuneInString(rest)

	return unicode.IsSpace(r) || reservedChar(r)
}

// word consumes the reserved word s if it starts here.
func (p *parser) word(s string) bool {
	if !p.atWord(s) {
		return false
	}

	p.pos += len(s)

	return true
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}
