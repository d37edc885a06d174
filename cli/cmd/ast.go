package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ardnew/attrex/lang"
)

// Ast prints the parse tree of an attribute expression.
type Ast struct {
	Expr   string `arg:""                                                  help:"Expression to parse" optional:""`
	Source string `help:"Read the expression from a file or '-' (stdin)"   short:"f"`
	Output string `default:"tree"       enum:"tree,source,json,yaml"       help:"Output format"       short:"o"`
	Indent int    `default:"2"                                             help:"JSON indent width"`

	stdout io.Writer
}

// Run executes the ast command.
func (a *Ast) Run(ctx context.Context) error {
	expr, err := parseSource(a.Expr, a.Source)
	if err != nil {
		return err
	}

	out := a.stdout
	if out == nil {
		out = stdoutFrom(ctx)
	}

	switch a.Output {
	case "source":
		_, err = fmt.Fprintln(out, expr)

		return err

	case "json":
		return lang.FormatJSON(out, expr, a.Indent)

	case "yaml":
		return lang.FormatYAML(out, expr)

	default:
		return lang.Fprint(out, expr)
	}
}
