package markov

import (
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// State holds the observed continuations of a single context: the candidate
// next symbols and a distribution over them weighted by frequency.
type State[T comparable] struct {
	next []Symbol[T]
	dist *WeightedIndex
}

// Candidates returns a copy of the candidate next symbols, in symbol order.
func (s *State[T]) Candidates() []Symbol[T] {
	return slices.Clone(s.next)
}

// Weights returns the frequency of each candidate, aligned with Candidates.
func (s *State[T]) Weights() []int {
	weights := make([]int, len(s.next))
	for i := range weights {
		weights[i] = s.dist.Weight(i)
	}
	return weights
}

// Total returns the number of times the context was observed in training.
func (s *State[T]) Total() int { return s.dist.Total() }

// Sample draws a candidate next symbol using r.
func (s *State[T]) Sample(r Rand) Symbol[T] {
	return s.next[s.dist.Sample(r)]
}

// stateNode is a trie node keyed by context symbols. A node carries a state
// when its path from the root is a trained context.
type stateNode[T comparable] struct {
	children map[Symbol[T]]*stateNode[T]
	state    *State[T]
}

func (n *stateNode[T]) child(s Symbol[T]) *stateNode[T] {
	if n == nil || n.children == nil {
		return nil
	}
	return n.children[s]
}

// ModelStats holds aggregated statistics for a trained model.
type ModelStats struct {
	MaxOrder        int // The largest order the model can generate with.
	Contexts        int // The number of distinct contexts.
	Transitions     int // The number of unique context->next links.
	TotalFrequency  int // The sum of all link frequencies.
	StartingSymbols int // The number of distinct symbols that can start a chain.
}

// Model is a trained Markov chain. It is immutable and safe for concurrent
// reads; build one with a Builder or Train.
type Model[T comparable] struct {
	maxOrder int
	compare  func(a, b T) int
	root     *stateNode[T]
	contexts int
	logger   *slog.Logger
}

// MaxOrder returns the largest order usable for generation.
func (m *Model[T]) MaxOrder() int { return m.maxOrder }

// Len returns the number of contexts in the model.
func (m *Model[T]) Len() int { return m.contexts }

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model[T]) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Lookup returns the state for context, if the context was observed.
func (m *Model[T]) Lookup(context []Symbol[T]) (*State[T], bool) {
	n := m.root
	for _, s := range context {
		if n = n.child(s); n == nil {
			return nil, false
		}
	}
	if n.state == nil {
		return nil, false
	}
	return n.state, true
}

// All iterates over every context and its state. Contexts are visited in a
// deterministic order, each one before its extensions. The yielded slice is
// a fresh copy.
func (m *Model[T]) All() iter.Seq2[[]Symbol[T], *State[T]] {
	return func(yield func([]Symbol[T], *State[T]) bool) {
		var walk func(n *stateNode[T], path []Symbol[T]) bool
		walk = func(n *stateNode[T], path []Symbol[T]) bool {
			if n.state != nil && !yield(slices.Clone(path), n.state) {
				return false
			}
			for _, s := range m.sortedSymbols(maps.Keys(n.children)) {
				if !walk(n.children[s], append(path, s)) {
					return false
				}
			}
			return true
		}
		walk(m.root, nil)
	}
}

// Stats returns a snapshot of statistics for the model.
func (m *Model[T]) Stats() ModelStats {
	stats := ModelStats{MaxOrder: m.maxOrder}
	for _, st := range m.All() {
		stats.Contexts++
		stats.Transitions += len(st.next)
		stats.TotalFrequency += st.Total()
	}
	if st, ok := m.Lookup([]Symbol[T]{Start[T]()}); ok {
		for _, s := range st.next {
			if s.Kind() == KindValue {
				stats.StartingSymbols++
			}
		}
	}
	return stats
}

func (m *Model[T]) sortedSymbols(seq iter.Seq[Symbol[T]]) []Symbol[T] {
	return sortSymbols(slices.Collect(seq), m.compare)
}

func sortSymbols[T comparable](symbols []Symbol[T], compare func(a, b T) int) []Symbol[T] {
	slices.SortFunc(symbols, func(a, b Symbol[T]) int {
		return CompareSymbols(a, b, compare)
	})
	return symbols
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
