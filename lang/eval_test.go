package lang

import (
	"errors"
	"testing"
)

func TestEval_Text(t *testing.T) {
	for _, value := range []string{"hello", "", "a b c"} {
		got, err := Eval(&Text{Value: value}, &Context{})
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}

		if got != Some(value) {
			t.Errorf("got %s, want %q", got, value)
		}
	}
}

func TestEval_Truthiness(t *testing.T) {
	// Presence is truthiness: the empty string is truthy, so negating it
	// yields absence, and negating twice yields Some(""), never the
	// original value.
	got, err := Eval(&Negation{Term: &Text{Value: ""}}, &Context{})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != None() {
		t.Errorf("negated empty string: got %s, want none", got)
	}

	got, err = Eval(
		&Negation{Term: &Negation{Term: &Text{Value: ""}}},
		&Context{},
	)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Some("") {
		t.Errorf("double negation: got %s, want %s", got, Some(""))
	}

	got, err = Eval(
		&Negation{Term: &Negation{Term: &Text{Value: "content"}}},
		&Context{},
	)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	// Negation inverts only the truthiness class, not the content.
	if got != Some("") {
		t.Errorf("double negation of content: got %s, want %s", got, Some(""))
	}
}

func TestEval_Var(t *testing.T) {
	ctx := &Context{
		Vars: map[string]string{"width": "100", "empty": ""},
	}

	tests := []struct {
		name    string
		node    *Var
		ctx     *Context
		want    Result
		wantErr error
	}{
		{
			name: "defined",
			node: &Var{Name: "width"},
			ctx:  ctx,
			want: Some("100"),
		},
		{
			name: "defined empty is present",
			node: &Var{Name: "empty"},
			ctx:  ctx,
			want: Some(""),
		},
		{
			name:    "undefined",
			node:    &Var{Name: "missing"},
			ctx:     ctx,
			wantErr: ErrUndefinedVariable,
		},
		{
			name: "undefined optional",
			node: &Var{Name: "missing", Optional: true},
			ctx:  ctx,
			want: None(),
		},
		{
			name: "macro var inside macro",
			node: &Var{Name: "n", Macro: true},
			ctx: &Context{
				MacroVars: map[string]string{"n": "v"},
			},
			want: Some("v"),
		},
		{
			name:    "macro var outside macro",
			node:    &Var{Name: "n", Macro: true},
			ctx:     &Context{Vars: map[string]string{"n": "v"}},
			wantErr: ErrMacroVarOutsideMacro,
		},
		{
			name: "optional macro var outside macro still fails",
			node: &Var{Name: "n", Macro: true, Optional: true},
			ctx:  &Context{},
			// Absence of the macro table is an error, not an absence.
			wantErr: ErrMacroVarOutsideMacro,
		},
		{
			name:    "macro table empty is not unset",
			node:    &Var{Name: "n", Macro: true},
			ctx:     &Context{MacroVars: map[string]string{}},
			wantErr: ErrUndefinedVariable,
		},
		{
			name: "macro table empty with optional",
			node: &Var{Name: "n", Macro: true, Optional: true},
			ctx:  &Context{MacroVars: map[string]string{}},
			want: None(),
		},
		{
			name:    "nil context",
			node:    &Var{Name: "x"},
			ctx:     nil,
			wantErr: ErrUndefinedVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.node, tt.ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEval_VarErrorNamesVariable(t *testing.T) {
	// Evaluation errors carry the fully-qualified sigil-prefixed name.
	_, err := Eval(&Var{Name: "gone"}, &Context{})
	if err == nil {
		t.Fatal("expected error")
	}

	if want := "undefined variable: $gone"; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	_, err = Eval(&Var{Name: "m", Macro: true, Optional: true}, &Context{})
	if err == nil {
		t.Fatal("expected error")
	}

	if want := "macro variable referenced outside macro: $@?m"; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestEval_RelationAnd(t *testing.T) {
	ctx := &Context{Vars: map[string]string{"a": "x", "b": "y"}}

	got, err := Eval(&Relation{
		L:  &Var{Name: "a"},
		R:  &Var{Name: "b"},
		Op: RelAnd,
	}, ctx)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	// And yields the right result whenever the left is present.
	if got != Some("y") {
		t.Errorf("got %s, want %s", got, Some("y"))
	}

	// Falsy left short-circuits: the right side would fail, but must not
	// be evaluated at all.
	got, err = Eval(&Relation{
		L:  &Var{Name: "missing", Optional: true},
		R:  &Var{Name: "alsoMissing"},
		Op: RelAnd,
	}, ctx)
	if err != nil {
		t.Fatalf("short-circuit violated, right side evaluated: %v", err)
	}

	if got != None() {
		t.Errorf("got %s, want none", got)
	}

	// A present-but-falsy right side passes through as the result.
	got, err = Eval(&Relation{
		L:  &Text{Value: "x"},
		R:  &Var{Name: "missing", Optional: true},
		Op: RelAnd,
	}, ctx)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != None() {
		t.Errorf("got %s, want none", got)
	}
}

func TestEval_RelationOr(t *testing.T) {
	ctx := &Context{Vars: map[string]string{}}

	// Truthy left is returned verbatim, right side untouched.
	got, err := Eval(&Relation{
		L:  &Text{Value: "x"},
		R:  &Var{Name: "wouldFail"},
		Op: RelOr,
	}, ctx)
	if err != nil {
		t.Fatalf("short-circuit violated, right side evaluated: %v", err)
	}

	if got != Some("x") {
		t.Errorf("got %s, want %s", got, Some("x"))
	}

	// Falsy left falls through to the right result.
	got, err = Eval(&Relation{
		L:  &Var{Name: "missing", Optional: true},
		R:  &Text{Value: "fallback"},
		Op: RelOr,
	}, ctx)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != Some("fallback") {
		t.Errorf("got %s, want %s", got, Some("fallback"))
	}
}

func TestEval_Comparison(t *testing.T) {
	ctx := &Context{Vars: map[string]string{"a": "x", "b": "x", "c": "y"}}

	tests := []struct {
		name string
		node *Comparison
		want Result
	}{
		{
			name: "equal strings",
			node: &Comparison{
				L:  &Var{Name: "a"},
				R:  &Var{Name: "b"},
				Op: CmpEq,
			},
			want: Some(""),
		},
		{
			name: "unequal strings",
			node: &Comparison{
				L:  &Var{Name: "a"},
				R:  &Var{Name: "c"},
				Op: CmpEq,
			},
			want: None(),
		},
		{
			name: "inequality holds",
			node: &Comparison{
				L:  &Var{Name: "a"},
				R:  &Var{Name: "c"},
				Op: CmpNe,
			},
			want: Some(""),
		},
		{
			name: "two absences are equal",
			node: &Comparison{
				L:  &Var{Name: "u", Optional: true},
				R:  &Var{Name: "v", Optional: true},
				Op: CmpEq,
			},
			want: Some(""),
		},
		{
			name: "absence differs from empty string",
			node: &Comparison{
				L:  &Var{Name: "u", Optional: true},
				R:  &Text{Value: ""},
				Op: CmpEq,
			},
			want: None(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.node, ctx)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	// Both sides are always evaluated: a failing right operand surfaces
	// even though the left alone could decide nothing.
	_, err := Eval(&Comparison{
		L:  &Var{Name: "u", Optional: true},
		R:  &Var{Name: "required"},
		Op: CmpEq,
	}, ctx)
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestEval_Concat(t *testing.T) {
	ctx := &Context{Vars: map[string]string{"a": "x", "b": "y"}}

	tests := []struct {
		name string
		node *Concat
		want Result
	}{
		{
			name: "spaced join",
			node: &Concat{
				Spaced: true,
				Parts:  []Expr{&Var{Name: "a"}, &Var{Name: "b"}},
			},
			want: Some("x y"),
		},
		{
			name: "unspaced join",
			node: &Concat{
				Parts: []Expr{&Var{Name: "a"}, &Var{Name: "b"}},
			},
			want: Some("xy"),
		},
		{
			name: "absent parts discarded",
			node: &Concat{
				Spaced: true,
				Parts: []Expr{
					&Var{Name: "a"},
					&Var{Name: "missing", Optional: true},
					&Var{Name: "b"},
				},
			},
			want: Some("x y"),
		},
		{
			name: "all parts absent",
			node: &Concat{
				Spaced: true,
				Parts: []Expr{
					&Var{Name: "u", Optional: true},
					&Var{Name: "v", Optional: true},
				},
			},
			want: Some(""),
		},
		{
			name: "empty part list",
			node: &Concat{Spaced: true},
			want: Some(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.node, ctx)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEval_ConcatEvaluatesEveryPart(t *testing.T) {
	// Concat has no short-circuit: a failing later part always surfaces.
	_, err := Eval(&Concat{
		Spaced: true,
		Parts:  []Expr{&Text{Value: "ok"}, &Var{Name: "missing"}},
	}, &Context{})
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestEval_EndToEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ctx   *Context
		want  Result
	}{
		{
			name:  "juxtaposition adds a space",
			input: `$a$b`,
			ctx:   &Context{Vars: map[string]string{"a": "x", "b": "y"}},
			want:  Some("x y"),
		},
		{
			name:  "explicit plus adds none",
			input: `$a + $b`,
			ctx:   &Context{Vars: map[string]string{"a": "x", "b": "y"}},
			want:  Some("xy"),
		},
		{
			name:  "conditional class",
			input: `card $?kind ($active and open)`,
			ctx: &Context{
				Vars: map[string]string{"active": "yes"},
			},
			want: Some("card open"),
		},
		{
			name:  "or fallback",
			input: `$?label or fallback`,
			ctx:   &Context{},
			want:  Some("fallback"),
		},
		{
			name:  "style interpolation",
			input: `'width: ' + $width + px`,
			ctx:   &Context{Vars: map[string]string{"width": "100"}},
			want:  Some("width: 100px"),
		},
		{
			name:  "guarded comparison",
			input: `$?state == open and current`,
			ctx:   &Context{Vars: map[string]string{"state": "open"}},
			want:  Some("current"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			got, err := Eval(expr, tt.ctx)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEval_QuotedRoundTrip(t *testing.T) {
	// Parsing a quoted literal and evaluating with an empty table
	// reproduces the unescaped content exactly.
	tests := []struct {
		input string
		want  string
	}{
		{input: `'plain'`, want: "plain"},
		{input: `"with space"`, want: "with space"},
		{input: `'esc\'aped'`, want: "esc'aped"},
		{input: `'back\\slash'`, want: `back\slash`},
		{input: `"a \"b\" c"`, want: `a "b" c`},
		{input: `''`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			got, err := Eval(expr, &Context{Vars: map[string]string{}})
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got != Some(tt.want) {
				t.Errorf("got %s, want %q", got, tt.want)
			}
		})
	}
}
