package markov

import (
	"slices"
	"testing"
)

func TestModelAllOrder(t *testing.T) {
	m, err := Train(2, [][]string{{"a", "b", "c"}})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	var got []string
	for context := range m.All() {
		got = append(got, contextKey(context))
	}
	want := []string{"<SOC>", "<SOC> a", "a", "a b", "b", "b c", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("All() visited %q, want %q", got, want)
	}

	// Stopping early must not panic.
	for range m.All() {
		break
	}
}

func TestModelStats(t *testing.T) {
	m, err := Train(2, [][]string{{"a", "b", "c"}, {"b", "c"}})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	got := m.Stats()
	want := ModelStats{
		MaxOrder:        2,
		Contexts:        7,
		Transitions:     8,
		TotalFrequency:  10,
		StartingSymbols: 2,
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestModelStatsEmpty(t *testing.T) {
	m, err := Train[int](3, nil)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if got := m.Stats(); got != (ModelStats{MaxOrder: 3}) {
		t.Errorf("Stats() on empty model = %+v", got)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestStateCandidatesAreCopies(t *testing.T) {
	m, err := Train(1, [][]string{{"a", "b"}})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	st, ok := m.Lookup(symbolsOf("<SOC>"))
	if !ok {
		t.Fatal("expected the <SOC> context")
	}
	c := st.Candidates()
	c[0] = End[string]()
	if got := contextKey(st.Candidates()); got != "a" {
		t.Errorf("mutating Candidates() changed the model: %q", got)
	}
}
