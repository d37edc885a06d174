package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Result is the outcome of evaluating an expression: a present string or an
// explicit absence. Presence, including the empty string, is truthy;
// absence is falsy. Results are comparable, and comparing them with == is
// exactly the equality the language's "==" operator observes, so two absent
// results are equal.
type Result struct {
	value   string
	present bool
}

// Some returns a present result holding s.
func Some(s string) Result {
	return Result{value: s, present: true}
}

// None returns the absent result.
func None() Result {
	return Result{}
}

// Present reports whether the result holds a value.
func (r Result) Present() bool {
	return r.present
}

// Value returns the held string, or "" when absent. Use [Result.Present] to
// distinguish an absent result from a present empty string.
func (r Result) Value() string {
	return r.value
}

// Get returns the held string and whether it is present.
func (r Result) Get() (string, bool) {
	return r.value, r.present
}

// String renders the result for debugging: the quoted value, or "none".
func (r Result) String() string {
	if !r.present {
		return "none"
	}

	return strconv.Quote(r.value)
}

// Context supplies the variable tables for one evaluation.
//
// Vars is the plain table and is always consulted for $name references; a
// nil map behaves as empty. MacroVars is the macro-expansion table for
// $@name references: nil means evaluation is happening outside macro
// expansion (an error for any $@ reference), while a non-nil empty map
// means "in a macro with no variables".
//
// The evaluator reads the context for the duration of a single [Eval] call
// and never retains or mutates it, so one context may serve concurrent
// evaluations.
type Context struct {
	Vars      map[string]string
	MacroVars map[string]string
}

// Eval evaluates an expression tree against ctx.
//
// The returned error is non-nil only for the two variable-resolution
// failures, [ErrUndefinedVariable] and [ErrMacroVarOutsideMacro]; either
// aborts the entire evaluation with no partial result. A nil ctx behaves as
// an empty context outside macro expansion.
func Eval(e Expr, ctx *Context) (Result, error) {
	if ctx == nil {
		ctx = &Context{}
	}

	switch n := e.(type) {
	case *Text:
		return Some(n.Value), nil

	case *Var:
		return evalVar(n, ctx)

	case *Negation:
		r, err := Eval(n.Term, ctx)
		if err != nil {
			return None(), err
		}

		if r.Present() {
			return None(), nil
		}

		return Some(""), nil

	case *Relation:
		return evalRelation(n, ctx)

	case *Comparison:
		return evalComparison(n, ctx)

	case *Concat:
		return evalConcat(n, ctx)

	default:
		// Unreachable: the node set is sealed.
		return None(), ErrInvalidExpr
	}
}

// evalVar resolves a variable reference against the selected table.
func evalVar(n *Var, ctx *Context) (Result, error) {
	table := ctx.Vars

	if n.Macro {
		if ctx.MacroVars == nil {
			return None(), ErrMacroVarOutsideMacro.
				Wrap(errors.New(n.String())).
				With(slog.String("variable", n.String()))
		}

		table = ctx.MacroVars
	}

	value, ok := table[n.Name]
	if !ok {
		if n.Optional {
			return None(), nil
		}

		return None(), ErrUndefinedVariable.
			Wrap(errors.New(n.String())).
			With(slog.String("variable", n.String()))
	}

	return Some(value), nil
}

// evalRelation evaluates and/or with short-circuit on the left result.
func evalRelation(n *Relation, ctx *Context) (Result, error) {
	left, err := Eval(n.L, ctx)
	if err != nil {
		return None(), err
	}

	switch n.Op {
	case RelAnd:
		if !left.Present() {
			return None(), nil
		}

	case RelOr:
		if left.Present() {
			return left, nil
		}
	}

	return Eval(n.R, ctx)
}

// evalComparison evaluates both sides unconditionally and compares the
// results as optional values, so two absences compare equal.
func evalComparison(n *Comparison, ctx *Context) (Result, error) {
	left, err := Eval(n.L, ctx)
	if err != nil {
		return None(), err
	}

	right, err := Eval(n.R, ctx)
	if err != nil {
		return None(), err
	}

	holds := left == right
	if n.Op == CmpNe {
		holds = !holds
	}

	if holds {
		return Some(""), nil
	}

	return None(), nil
}

// evalConcat evaluates every part in order, discards absences, and joins
// the rest. The result is always present, possibly empty.
func evalConcat(n *Concat, ctx *Context) (Result, error) {
	parts := make([]string, 0, len(n.Parts))

	for _, part := range n.Parts {
		r, err := Eval(part, ctx)
		if err != nil {
			return None(), err
		}

		if r.Present() {
			parts = append(parts, r.Value())
		}
	}

	sep := ""
	if n.Spaced {
		sep = " "
	}

	return Some(strings.Join(parts, sep)), nil
}
