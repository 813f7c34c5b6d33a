package markov

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

var (
	// ErrInvalidOrder is returned when a model is configured with a max order below 1.
	ErrInvalidOrder = errors.New("markov: max order must be at least 1")
	// ErrNilCompare is returned when NewBuilderFunc is given a nil compare function.
	ErrNilCompare = errors.New("markov: compare function is nil")
)

// options holds the settings shared by the training helpers.
type options struct {
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*options)

// WithLogger sets the logger used during training and inherited by the built
// Model. By default, all logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// countNode is a trie node of the frequency table. next counts the symbols
// observed after the context spelled by the node's path.
type countNode[T comparable] struct {
	children map[Symbol[T]]*countNode[T]
	next     map[Symbol[T]]int
}

func (n *countNode[T]) descend(s Symbol[T]) *countNode[T] {
	if n.children == nil {
		n.children = make(map[Symbol[T]]*countNode[T])
	}
	c, ok := n.children[s]
	if !ok {
		c = &countNode[T]{}
		n.children[s] = c
	}
	return c
}

// Builder accumulates transition frequencies from training sequences and
// compiles them into an immutable Model. A Builder is not safe for concurrent
// use.
type Builder[T comparable] struct {
	maxOrder  int
	compare   func(a, b T) int
	root      *countNode[T]
	sequences int
	logger    *slog.Logger
}

// NewBuilder returns a Builder for naturally ordered symbol types.
func NewBuilder[T cmp.Ordered](maxOrder int, opts ...Option) (*Builder[T], error) {
	return NewBuilderFunc[T](maxOrder, cmp.Compare[T], opts...)
}

// NewBuilderFunc returns a Builder that orders raw symbols with compare, which
// must be a total order consistent with ==.
func NewBuilderFunc[T comparable](maxOrder int, compare func(a, b T) int, opts ...Option) (*Builder[T], error) {
	if maxOrder < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, maxOrder)
	}
	if compare == nil {
		return nil, ErrNilCompare
	}
	o := &options{logger: discardLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return &Builder[T]{
		maxOrder: maxOrder,
		compare:  compare,
		root:     &countNode[T]{},
		logger:   o.logger,
	}, nil
}

// Add records every transition in seq for n-gram lengths 2 through
// maxOrder+1. Sequences shorter than a given length contribute nothing at
// that length.
func (b *Builder[T]) Add(seq []T) {
	for n := 2; n <= b.maxOrder+1; n++ {
		for _, ngram := range Extract(seq, n) {
			node := b.root
			for _, s := range ngram[:n-1] {
				node = node.descend(s)
			}
			if node.next == nil {
				node.next = make(map[Symbol[T]]int)
			}
			node.next[ngram[n-1]]++
		}
	}
	b.sequences++
}

// AddAll records every sequence in seqs.
func (b *Builder[T]) AddAll(seqs [][]T) {
	for _, seq := range seqs {
		b.Add(seq)
	}
}

// Build compiles the accumulated frequencies into a new Model. The Model
// shares no memory with the Builder.
func (b *Builder[T]) Build() *Model[T] {
	m := &Model[T]{
		maxOrder: b.maxOrder,
		compare:  b.compare,
		logger:   b.logger,
	}
	transitions := 0
	m.root = b.compile(b.root, &m.contexts, &transitions)

	b.logger.Info("Training completed",
		slog.Int("max_order", b.maxOrder),
		slog.Int("sequences_processed", b.sequences),
		slog.Int("contexts", m.contexts),
		slog.Int("transitions", transitions),
	)
	return m
}

func (b *Builder[T]) compile(n *countNode[T], contexts, transitions *int) *stateNode[T] {
	out := &stateNode[T]{}
	if len(n.next) > 0 {
		next := sortSymbols(slices.Collect(maps.Keys(n.next)), b.compare)
		weights := make([]int, len(next))
		for i, s := range next {
			weights[i] = n.next[s]
		}
		dist, err := NewWeightedIndex(weights)
		if err != nil {
			// Contexts only exist once a transition was counted.
			panic(fmt.Sprintf("markov: corrupt frequency table: %v", err))
		}
		out.state = &State[T]{next: next, dist: dist}
		*contexts++
		*transitions += len(next)
	}
	if len(n.children) > 0 {
		out.children = make(map[Symbol[T]]*stateNode[T], len(n.children))
		for s, c := range n.children {
			out.children[s] = b.compile(c, contexts, transitions)
		}
	}
	return out
}

// Train builds a Model from sequences of naturally ordered symbols.
func Train[T cmp.Ordered](maxOrder int, sequences [][]T, opts ...Option) (*Model[T], error) {
	return TrainFunc(maxOrder, sequences, cmp.Compare[T], opts...)
}

// TrainFunc builds a Model from sequences ordered by compare.
func TrainFunc[T comparable](maxOrder int, sequences [][]T, compare func(a, b T) int, opts ...Option) (*Model[T], error) {
	b, err := NewBuilderFunc(maxOrder, compare, opts...)
	if err != nil {
		return nil, err
	}
	b.AddAll(sequences)
	return b.Build(), nil
}
