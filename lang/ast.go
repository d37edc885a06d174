package lang

import (
	"strings"
)

// Expr is an expression node in a parsed attribute directive.
//
// The set of implementations is closed: Relation, Comparison, Negation,
// Concat, Var, and Text are the only node kinds, sealed by the unexported
// marker method. Nodes are built once by the parser and never mutated, hold
// no parent references, and compare structurally via [Equal].
type Expr interface {
	// String renders the node in canonical source form.
	String() string
	// Equal reports structural equality with another node.
	Equal(Expr) bool

	expr() // seals the node set
}

// RelOp is a relation (boolean combinator) operator.
type RelOp int

const (
	// RelAnd yields the right operand when the left is present.
	RelAnd RelOp = iota
	// RelOr yields the left operand when it is present.
	RelOr
)

// String returns the source keyword for the operator.
func (op RelOp) String() string {
	if op == RelOr {
		return "or"
	}

	return "and"
}

// CmpOp is a comparison operator.
type CmpOp int

const (
	// CmpEq tests equality of two evaluation results.
	CmpEq CmpOp = iota
	// CmpNe tests inequality of two evaluation results.
	CmpNe
)

// String returns the source token for the operator.
func (op CmpOp) String() string {
	if op == CmpNe {
		return "!="
	}

	return "=="
}

// Relation combines two subexpressions with a short-circuiting and/or.
type Relation struct {
	L, R Expr
	Op   RelOp
}

// Comparison tests two subexpressions for (in)equality of their results.
// Unlike Relation, both sides are always evaluated.
type Comparison struct {
	L, R Expr
	Op   CmpOp
}

// Negation inverts the truthiness class of its operand.
type Negation struct {
	Term Expr
}

// Concat joins the present results of its parts in order.
// Spaced concatenation comes from juxtaposed terms and joins with a single
// space; unspaced comes from the explicit "+" operator.
type Concat struct {
	Parts  []Expr
	Spaced bool
}

// Var references a variable by name.
// Macro selects the macro-expansion table instead of the plain table, and
// Optional makes an undefined reference evaluate to absence instead of
// failing.
type Var struct {
	Name     string
	Macro    bool
	Optional bool
}

// Text is a literal string.
type Text struct {
	Value string
}

func (*Relation) expr()   {}
func (*Comparison) expr() {}
func (*Negation) expr()   {}
func (*Concat) expr()     {}
func (*Var) expr()        {}
func (*Text) expr()       {}

// String renders the relation with explicit grouping.
func (e *Relation) String() string {
	return "(" + e.L.String() + " " + e.Op.String() + " " + e.R.String() + ")"
}

// String renders the comparison with explicit grouping.
func (e *Comparison) String() string {
	return "(" + e.L.String() + " " + e.Op.String() + " " + e.R.String() + ")"
}

// String renders the negation. A directly nested negation is grouped,
// since the grammar admits at most one "!" per term.
func (e *Negation) String() string {
	if _, ok := e.Term.(*Negation); ok {
		return "!(" + e.Term.String() + ")"
	}

	return "!" + e.Term.String()
}

// String renders the concatenation, space-separated or "+"-joined. Both
// forms are grouped so the rendering reparses to an equal tree regardless
// of the surrounding node.
func (e *Concat) String() string {
	parts := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		parts[i] = p.String()
	}

	if e.Spaced {
		return "(" + strings.Join(parts, " ") + ")"
	}

	return "(" + strings.Join(parts, " + ") + ")"
}

// String renders the reference with its sigils: $name, $?name, $@name, or
// $@?name.
func (e *Var) String() string {
	var sb strings.Builder

	sb.WriteByte('$')

	if e.Macro {
		sb.WriteByte('@')
	}

	if e.Optional {
		sb.WriteByte('?')
	}

	sb.WriteString(e.Name)

	return sb.String()
}

// String renders the literal single-quoted with escaped delimiters.
func (e *Text) String() string {
	var sb strings.Builder

	sb.WriteByte('\'')

	for _, r := range e.Value {
		if r == '\'' || r == '\\' {
			sb.WriteByte('\\')
		}

		sb.WriteRune(r)
	}

	sb.WriteByte('\'')

	return sb.String()
}

// Equal reports whether other is a Relation with equal operator and operands.
func (e *Relation) Equal(other Expr) bool {
	o, ok := other.(*Relation)

	return ok && e.Op == o.Op && e.L.Equal(o.L) && e.R.Equal(o.R)
}

// Equal reports whether other is a Comparison with equal operator and
// operands.
func (e *Comparison) Equal(other Expr) bool {
	o, ok := other.(*Comparison)

	return ok && e.Op == o.Op && e.L.Equal(o.L) && e.R.Equal(o.R)
}

// Equal reports whether other is a Negation of an equal operand.
func (e *Negation) Equal(other Expr) bool {
	o, ok := other.(*Negation)

	return ok && e.Term.Equal(o.Term)
}

// Equal reports whether other is a Concat with the same spacing policy and
// pairwise-equal parts.
func (e *Concat) Equal(other Expr) bool {
	o, ok := other.(*Concat)
	if !ok || e.Spaced != o.Spaced || len(e.Parts) != len(o.Parts) {
		return false
	}

	for i, p := range e.Parts {
		if !p.Equal(o.Parts[i]) {
			return false
		}
	}

	return true
}

// Equal reports whether other is a Var with identical name and sigils.
func (e *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)

	return ok && *e == *o
}

// Equal reports whether other is a Text with identical content.
func (e *Text) Equal(other Expr) bool {
	o, ok := other.(*Text)

	return ok && *e == *o
}

// Equal reports structural equality of two expression trees.
// Either argument may be nil; two nil trees are equal.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Equal(b)
}
