package lang

import (
	"errors"
	"testing"
)

func TestParse_Simple(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "bareword",
			input: `card`,
			want:  &Text{Value: "card"},
		},
		{
			name:  "bareword with punctuation",
			input: `width:100px;`,
			want:  &Text{Value: "width:100px;"},
		},
		{
			name:  "single-quoted string",
			input: `'hello world'`,
			want:  &Text{Value: "hello world"},
		},
		{
			name:  "double-quoted string",
			input: `"hello world"`,
			want:  &Text{Value: "hello world"},
		},
		{
			name:  "empty quoted string",
			input: `''`,
			want:  &Text{Value: ""},
		},
		{
			name:  "escaped delimiter",
			input: `'it\'s'`,
			want:  &Text{Value: "it's"},
		},
		{
			name:  "escape yields any character",
			input: `'a\bc'`,
			want:  &Text{Value: "abc"},
		},
		{
			name:  "variable",
			input: `$width`,
			want:  &Var{Name: "width"},
		},
		{
			name:  "optional variable",
			input: `$?width`,
			want:  &Var{Name: "width", Optional: true},
		},
		{
			name:  "macro variable",
			input: `$@width`,
			want:  &Var{Name: "width", Macro: true},
		},
		{
			name:  "optional macro variable",
			input: `$@?width`,
			want:  &Var{Name: "width", Macro: true, Optional: true},
		},
		{
			name:  "identifier with digits underscore hyphen",
			input: `$a1_b-c`,
			want:  &Var{Name: "a1_b-c"},
		},
		{
			name:  "negation",
			input: `!$open`,
			want:  &Negation{Term: &Var{Name: "open"}},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: `   $x   `,
			want:  &Var{Name: "x"},
		},
		{
			name:  "parenthesized",
			input: `($x)`,
			want:  &Var{Name: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParse_Concat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "juxtaposed variables",
			input: `$a$b`,
			want: &Concat{
				Spaced: true,
				Parts:  []Expr{&Var{Name: "a"}, &Var{Name: "b"}},
			},
		},
		{
			name:  "whitespace-separated terms",
			input: `card $kind`,
			want: &Concat{
				Spaced: true,
				Parts:  []Expr{&Text{Value: "card"}, &Var{Name: "kind"}},
			},
		},
		{
			name:  "explicit plus",
			input: `$a + $b`,
			want: &Concat{
				Parts: []Expr{&Var{Name: "a"}, &Var{Name: "b"}},
			},
		},
		{
			name:  "plus without whitespace",
			input: `$a+$b`,
			want: &Concat{
				Parts: []Expr{&Var{Name: "a"}, &Var{Name: "b"}},
			},
		},
		{
			name:  "plus binds looser than juxtaposition",
			input: `a b + c`,
			want: &Concat{
				Parts: []Expr{
					&Concat{
						Spaced: true,
						Parts: []Expr{
							&Text{Value: "a"},
							&Text{Value: "b"},
						},
					},
					&Text{Value: "c"},
				},
			},
		},
		{
			name:  "negation inside juxtaposition",
			input: `a !$b`,
			want: &Concat{
				Spaced: true,
				Parts: []Expr{
					&Text{Value: "a"},
					&Negation{Term: &Var{Name: "b"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParse_Operators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			name:  "and",
			input: `$a and $b`,
			want: &Relation{
				L:  &Var{Name: "a"},
				R:  &Var{Name: "b"},
				Op: RelAnd,
			},
		},
		{
			name:  "or",
			input: `$a or $b`,
			want: &Relation{
				L:  &Var{Name: "a"},
				R:  &Var{Name: "b"},
				Op: RelOr,
			},
		},
		{
			name:  "relations chain left-associative",
			input: `a and b or c`,
			want: &Relation{
				L: &Relation{
					L:  &Text{Value: "a"},
					R:  &Text{Value: "b"},
					Op: RelAnd,
				},
				R:  &Text{Value: "c"},
				Op: RelOr,
			},
		},
		{
			name:  "equality",
			input: `$a == $b`,
			want: &Comparison{
				L:  &Var{Name: "a"},
				R:  &Var{Name: "b"},
				Op: CmpEq,
			},
		},
		{
			name:  "inequality",
			input: `$a != $b`,
			want: &Comparison{
				L:  &Var{Name: "a"},
				R:  &Var{Name: "b"},
				Op: CmpNe,
			},
		},
		{
			name:  "comparison without whitespace",
			input: `a==b`,
			want: &Comparison{
				L:  &Text{Value: "a"},
				R:  &Text{Value: "b"},
				Op: CmpEq,
			},
		},
		{
			name:  "comparison binds tighter than relation",
			input: `a == b and c`,
			want: &Relation{
				L: &Comparison{
					L:  &Text{Value: "a"},
					R:  &Text{Value: "b"},
					Op: CmpEq,
				},
				R:  &Text{Value: "c"},
				Op: RelAnd,
			},
		},
		{
			name:  "juxtaposition binds tighter than comparison",
			input: `a b == c`,
			want: &Comparison{
				L: &Concat{
					Spaced: true,
					Parts: []Expr{
						&Text{Value: "a"},
						&Text{Value: "b"},
					},
				},
				R:  &Text{Value: "c"},
				Op: CmpEq,
			},
		},
		{
			name:  "parens override precedence",
			input: `a and (b or c)`,
			want: &Relation{
				L: &Text{Value: "a"},
				R: &Relation{
					L:  &Text{Value: "b"},
					R:  &Text{Value: "c"},
					Op: RelOr,
				},
				Op: RelAnd,
			},
		},
		{
			name:  "chained comparison via parens",
			input: `(a == b) == c`,
			want: &Comparison{
				L: &Comparison{
					L:  &Text{Value: "a"},
					R:  &Text{Value: "b"},
					Op: CmpEq,
				},
				R:  &Text{Value: "c"},
				Op: CmpEq,
			},
		},
		{
			name:  "negated group",
			input: `!(a or b)`,
			want: &Negation{
				Term: &Relation{
					L:  &Text{Value: "a"},
					R:  &Text{Value: "b"},
					Op: RelOr,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParse_ReservedWords(t *testing.T) {
	// The relation keywords never parse as barewords: standalone they have
	// no operands, so the parse fails outright.
	for _, input := range []string{`and`, `or`, `a and`, `or b`} {
		t.Run(input, func(t *testing.T) {
			if got, err := Parse(input); err == nil {
				t.Errorf("expected parse failure, got %s", got)
			}
		})
	}

	// Words merely prefixed by a keyword are ordinary barewords.
	tests := []struct {
		input string
		want  Expr
	}{
		{input: `android`, want: &Text{Value: "android"}},
		{input: `orange`, want: &Text{Value: "orange"}},
		{
			input: `a android`,
			want: &Concat{
				Spaced: true,
				Parts: []Expr{
					&Text{Value: "a"},
					&Text{Value: "android"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	// Keywords are case-sensitive: uppercase forms are barewords.
	got, err := Parse(`a AND b`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := &Concat{
		Spaced: true,
		Parts: []Expr{
			&Text{Value: "a"},
			&Text{Value: "AND"},
			&Text{Value: "b"},
		},
	}
	if !Equal(got, want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ``},
		{name: "whitespace only", input: `   `},
		{name: "bare sigil", input: `$`},
		{name: "sigil before digit", input: `$1x`},
		{name: "unterminated single quote", input: `'abc`},
		{name: "unterminated double quote", input: `"abc`},
		{name: "trailing escape", input: `'abc\`},
		{name: "bare negation", input: `!`},
		{name: "unclosed paren", input: `($a`},
		{name: "stray close paren", input: `a)`},
		{name: "empty parens", input: `()`},
		{name: "dangling comparison", input: `a ==`},
		{name: "dangling plus", input: `a +`},
		{name: "chained comparison", input: `a == b == c`},
		{name: "lone operator", input: `==`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected parse failure, got %s", got)
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}

			if got != nil {
				t.Errorf("expected nil tree on failure, got %s", got)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		`card $?kind $active and $state`,
		`'width: ' + $width`,
		`$@?label or fallback`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			second, err := Parse(input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !Equal(first, second) {
				t.Errorf("parses differ: %s vs %s", first, second)
			}
		})
	}
}
