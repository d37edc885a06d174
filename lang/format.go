package lang

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Fprint writes an indented tree rendering of e to w, one node per line.
// This is the debug form used by tooling and tests; [Expr.String] is the
// canonical source form.
func Fprint(w io.Writer, e Expr) error {
	return fprint(w, e, 0)
}

func fprint(w io.Writer, e Expr, indent int) error {
	prefix := strings.Repeat("  ", indent)

	put := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, prefix+format+"\n", args...)

		return err
	}

	switch n := e.(type) {
	case *Relation:
		if err := put("Relation: %s", n.Op); err != nil {
			return err
		}

		if err := fprint(w, n.L, indent+1); err != nil {
			return err
		}

		return fprint(w, n.R, indent+1)

	case *Comparison:
		if err := put("Comparison: %s", n.Op); err != nil {
			return err
		}

		if err := fprint(w, n.L, indent+1); err != nil {
			return err
		}

		return fprint(w, n.R, indent+1)

	case *Negation:
		if err := put("Negation"); err != nil {
			return err
		}

		return fprint(w, n.Term, indent+1)

	case *Concat:
		joiner := "+"
		if n.Spaced {
			joiner = "space"
		}

		if err := put("Concat: %s", joiner); err != nil {
			return err
		}

		for _, part := range n.Parts {
			if err := fprint(w, part, indent+1); err != nil {
				return err
			}
		}

		return nil

	case *Var:
		return put("Var: %s", n)

	case *Text:
		return put("Text: %q", n.Value)

	default:
		return put("(unknown)")
	}
}

// ToMap converts an expression tree to a native Go structure suitable for
// JSON or YAML marshalling.
func ToMap(e Expr) any {
	switch n := e.(type) {
	case *Relation:
		return map[string]any{
			"relation": map[string]any{
				"op":    n.Op.String(),
				"left":  ToMap(n.L),
				"right": ToMap(n.R),
			},
		}

	case *Comparison:
		return map[string]any{
			"comparison": map[string]any{
				"op":    n.Op.String(),
				"left":  ToMap(n.L),
				"right": ToMap(n.R),
			},
		}

	case *Negation:
		return map[string]any{
			"negation": ToMap(n.Term),
		}

	case *Concat:
		parts := make([]any, len(n.Parts))
		for i, part := range n.Parts {
			parts[i] = ToMap(part)
		}

		return map[string]any{
			"concat": map[string]any{
				"spaced": n.Spaced,
				"parts":  parts,
			},
		}

	case *Var:
		return map[string]any{
			"var": map[string]any{
				"name":     n.Name,
				"macro":    n.Macro,
				"optional": n.Optional,
			},
		}

	case *Text:
		return map[string]any{
			"text": n.Value,
		}

	default:
		return nil
	}
}

// FormatJSON writes the expression tree as JSON to the writer.
func FormatJSON(w io.Writer, e Expr, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(
			ToMap(e), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToMap(e))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the expression tree as YAML to the writer.
func FormatYAML(w io.Writer, e Expr) error {
	yamlData, err := yaml.Marshal(ToMap(e))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
