package attr

import (
	"log/slog"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/attrex/lang"
)

// ErrCompile is the base error for attribute directives whose expression
// does not parse.
var ErrCompile = lang.NewError("invalid attribute expression")

// Directive is an attribute whose value is computed by an expression.
type Directive struct {
	// Name is the attribute the rendered value is spliced into.
	Name string

	// Source is the expression text as written in the template.
	Source string

	expr lang.Expr
}

// Compile parses source into a directive for the named attribute.
// Compilation errors identify the attribute they were found in.
func Compile(name, source string) (*Directive, error) {
	expr, err := lang.ParseCached(source)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(
			slog.String("attribute", name),
		)
	}

	return &Directive{Name: name, Source: source, expr: expr}, nil
}

// Expr returns the compiled expression tree.
func (d *Directive) Expr() lang.Expr { return d.expr }

// Render evaluates the directive against ctx.
//
// The boolean reports presence: when false, the attribute is omitted from
// the output entirely rather than rendered with an empty value.
func (d *Directive) Render(ctx *lang.Context) (string, bool, error) {
	result, err := lang.Eval(d.expr, ctx)
	if err != nil {
		return "", false, err
	}

	return result.Value(), result.Present(), nil
}

// Merge appends computed class-list values onto existing, separating
// entries with a single space and dropping entries already present.
// Empty values contribute nothing.
func Merge(existing string, computed ...string) string {
	seen := make(map[string]bool)

	return mung.Make(
		mung.WithSubjectItems(strings.Fields(strings.Join(computed, " "))...),
		mung.WithDelim(" "),
		mung.WithPrefixItems(strings.Fields(existing)...),
		mung.WithFilter(func(item string) bool {
			if seen[item] {
				return false
			}

			seen[item] = true

			return true
		}),
	).String()
}
