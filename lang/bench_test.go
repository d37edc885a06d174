package lang

import "testing"

const benchSource = `card $?kind ($active and open) == 'card open' or fallback`

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		if _, err := Parse(benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseCached(b *testing.B) {
	b.ReportAllocs()
	ResetCache()

	for b.Loop() {
		if _, err := ParseCached(benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	expr, err := Parse(benchSource)
	if err != nil {
		b.Fatal(err)
	}

	ctx := &Context{Vars: map[string]string{
		"kind":   "wide",
		"active": "",
	}}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Eval(expr, ctx); err != nil {
			b.Fatal(err)
		}
	}
}
