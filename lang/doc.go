// Package lang implements the expression language evaluated inside template
// attribute directives. Directives compute string values for attributes,
// such as conditionally merging CSS classes or interpolating variables, and
// this package is the whole of that language: grammar, syntax tree, and
// evaluation against a caller-supplied variable environment.
//
// # Philosophy
//
// Every evaluation produces either a string or an explicit absence, and that
// distinction carries the entire boolean algebra of the language: a present
// value (including the empty string) is truthy, absence is falsy. There are
// no numbers, no arithmetic, no loops, and no user-defined functions. The
// grammar is small enough for a hand-written recursive descent parser, and
// the syntax tree is a closed set of six immutable node kinds evaluated by
// one exhaustive switch.
//
// # Grammar
//
// Informal EBNF, lowest to highest precedence:
//
//	Expr        → Rel
//	Rel         → Cmp (("and" | "or") Cmp)*          left-associative
//	Cmp         → Add (("==" | "!=") Add)?           at most one, not chainable
//	Add         → Join ("+" Join)*                   concatenation, no space
//	Join        → Neg+                               juxtaposition, space-joined
//	Neg         → "!"? Simple
//	Simple      → "(" Expr ")" | Variable | Value
//	Variable    → "$" "@"? "?"? Ident
//	Ident       → Letter (LetterOrDigit | "_" | "-")*
//	Value       → Quoted | Bareword
//	Quoted      → ("'" QChar* "'") | ('"' QChar* '"')   QChar = "\" Any | non-delimiter
//	Bareword    → chars excluding {$ " ' + ! = ( )}, not "and"/"or",
//	              terminated by whitespace, ")", or EOF
//
// # Example
//
//	// class="card $?kind active and $state"
//	expr, err := lang.Parse(`card $?kind $active and $state`)
//	res, err := lang.Eval(expr, &lang.Context{
//		Vars: map[string]string{"kind": "wide", "state": "open"},
//	})
//
// # Variables
//
// A reference like $width resolves from the context's plain variable table.
// The $@ sigil selects the macro-expansion table instead, and referencing a
// macro variable while no such table exists (nil, not merely empty) is an
// evaluation error. The ? sigil marks a reference optional: an undefined
// optional variable evaluates to absence rather than an error.
package lang
