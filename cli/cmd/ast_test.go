package cmd

import (
	"context"
	"strings"
	"testing"
)

func TestAstRun(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Ast
		want  []string
		exact string
	}{
		{
			name: "tree",
			cmd:  Ast{Expr: `$a and b`, Output: "tree"},
			want: []string{"Relation: and", "Var: $a", `Text: "b"`},
		},
		{
			name:  "source",
			cmd:   Ast{Expr: `  $a  and  b  `, Output: "source"},
			exact: "($a and b)\n",
		},
		{
			name: "json",
			cmd:  Ast{Expr: `!$?x`, Output: "json", Indent: 2},
			want: []string{`"negation"`, `"name": "x"`, `"optional": true`},
		},
		{
			name: "yaml",
			cmd:  Ast{Expr: `a == b`, Output: "yaml"},
			want: []string{"comparison:", "==", "text: a", "text: b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder

			tt.cmd.stdout = &buf

			if err := tt.cmd.Run(context.Background()); err != nil {
				t.Fatal(err)
			}

			got := buf.String()

			if tt.exact != "" && got != tt.exact {
				t.Errorf("output = %q, want %q", got, tt.exact)
			}

			for _, fragment := range tt.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("output missing %q:\n%s", fragment, got)
				}
			}
		})
	}
}

func TestAstRun_ParseError(t *testing.T) {
	var buf strings.Builder

	cmd := Ast{Expr: `(`, Output: "tree", stdout: &buf}

	if err := cmd.Run(context.Background()); err == nil {
		t.Fatal("want error for invalid expression")
	}

	if buf.Len() != 0 {
		t.Errorf("output on error: %q", buf.String())
	}
}
