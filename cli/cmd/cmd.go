package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/attrex/lang"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdoutFrom returns the output writer configured on the kong parser, or
// os.Stdout outside of a parse.
func stdoutFrom(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong.Stdout != nil {
		return ktx.Kong.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSource returns the expression text for a command. A non-empty arg
// wins; otherwise the named file is read, with "-" selecting stdin.
func readSource(arg, file string) (string, error) {
	if arg != "" {
		return arg, nil
	}

	if file == "" {
		return "", ErrNoExpression
	}

	var r io.Reader

	if file == stdinSource {
		r = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return "", ErrReadSource.Wrap(err)
		}
		defer f.Close()

		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrReadSource.Wrap(err)
	}

	return strings.TrimSpace(string(data)), nil
}

// parseSource compiles the expression text for a command.
func parseSource(arg, file string) (lang.Expr, error) {
	source, err := readSource(arg, file)
	if err != nil {
		return nil, err
	}

	return lang.ParseCached(source)
}
