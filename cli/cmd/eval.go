package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/attrex/lang"
	"github.com/ardnew/attrex/log"
)

// Eval evaluates an attribute expression against the given variables.
type Eval struct {
	VarFlags `embed:""`

	Expr   string `arg:""                                                 help:"Expression to evaluate" optional:""`
	Source string `help:"Read the expression from a file or '-' (stdin)"  short:"f"`
	Quoted bool   `help:"Quote the result to distinguish it from absence" short:"q"`

	stdout io.Writer
}

// Run executes the eval command.
//
// A present result is printed followed by a newline; an absent result
// prints nothing and returns [ErrAbsent], mirroring how a template
// compiler omits the attribute. With --quoted, present results print
// quoted and absent results print "none" (still returning [ErrAbsent]).
func (e *Eval) Run(ctx context.Context) error {
	expr, err := parseSource(e.Expr, e.Source)
	if err != nil {
		return err
	}

	vars, err := e.VarFlags.Context()
	if err != nil {
		return err
	}

	log.TraceContext(ctx, "evaluating expression",
		slog.String("expression", expr.String()),
	)

	result, err := lang.Eval(expr, vars)
	if err != nil {
		return err
	}

	out := e.stdout
	if out == nil {
		out = stdoutFrom(ctx)
	}

	switch {
	case e.Quoted:
		fmt.Fprintln(out, result)
	case result.Present():
		fmt.Fprintln(out, result.Value())
	}

	if !result.Present() {
		return ErrAbsent
	}

	return nil
}
