package markov

import (
	"cmp"
	"slices"
	"testing"
)

func TestSymbolAccessors(t *testing.T) {
	s := Start[int]()
	e := End[int]()
	v := Value(42)

	if !s.IsStart() || s.IsEnd() || s.Kind() != KindStart {
		t.Errorf("Start() = %+v, want a start sentinel", s)
	}
	if !e.IsEnd() || e.IsStart() || e.Kind() != KindEnd {
		t.Errorf("End() = %+v, want an end sentinel", e)
	}
	if got, ok := v.Value(); !ok || got != 42 {
		t.Errorf("Value(42).Value() = %d, %v; want 42, true", got, ok)
	}
	if _, ok := s.Value(); ok {
		t.Error("Start().Value() reported a value")
	}
	if (Symbol[int]{}).Kind() == KindStart {
		t.Error("zero Symbol must not be a start sentinel")
	}
}

func TestSymbolString(t *testing.T) {
	tests := []struct {
		sym  Symbol[rune]
		want string
	}{
		{Start[rune](), "<SOC>"},
		{End[rune](), "<EOC>"},
		{Value('x'), "120"},
		{Symbol[rune]{}, "<invalid>"},
	}
	for _, tc := range tests {
		if got := tc.sym.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestSymbolEqualityAsMapKey(t *testing.T) {
	m := map[Symbol[string]]int{}
	m[Value("a")]++
	m[Value("a")]++
	m[Start[string]()]++
	m[End[string]()]++
	if m[Value("a")] != 2 {
		t.Errorf("expected Value(\"a\") to be counted twice, got %d", m[Value("a")])
	}
	if len(m) != 3 {
		t.Errorf("expected 3 distinct keys, got %d", len(m))
	}
}

func TestCompareSymbols(t *testing.T) {
	got := []Symbol[string]{Value("b"), End[string](), Value("a"), Start[string](), Value("c")}
	slices.SortFunc(got, func(a, b Symbol[string]) int {
		return CompareSymbols(a, b, cmp.Compare[string])
	})
	want := symbolsOf("<SOC>", "<EOC>", "a", "b", "c")
	if !slices.Equal(got, want) {
		t.Errorf("sorted symbols = %v, want %v", got, want)
	}

	if c := CompareSymbols(End[string](), End[string](), cmp.Compare[string]); c != 0 {
		t.Errorf("CompareSymbols(End, End) = %d, want 0", c)
	}
}
