package markov

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrInvalidWeights is returned when a distribution is built from an empty
	// weight set, a non-positive weight, or weights whose sum overflows.
	ErrInvalidWeights = errors.New("markov: invalid weights")
)

// Rand is the source of randomness used for sampling. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). It is only called with n > 0.
	IntN(n int) int
}

// WeightedIndex is a compiled discrete distribution over the indices of a
// weight list. Index i is drawn with probability weights[i] / total.
type WeightedIndex struct {
	cumulative []int
}

// NewWeightedIndex compiles weights into a WeightedIndex.
func NewWeightedIndex(weights []int) (*WeightedIndex, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: empty weight set", ErrInvalidWeights)
	}
	cumulative := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: weight %d at index %d", ErrInvalidWeights, w, i)
		}
		if total > math.MaxInt-w {
			return nil, fmt.Errorf("%w: total overflows at index %d", ErrInvalidWeights, i)
		}
		total += w
		cumulative[i] = total
	}
	return &WeightedIndex{cumulative: cumulative}, nil
}

// Len returns the number of indices in the distribution.
func (w *WeightedIndex) Len() int { return len(w.cumulative) }

// Total returns the sum of all weights.
func (w *WeightedIndex) Total() int { return w.cumulative[len(w.cumulative)-1] }

// Weight returns the weight of index i.
func (w *WeightedIndex) Weight(i int) int {
	if i == 0 {
		return w.cumulative[0]
	}
	return w.cumulative[i] - w.cumulative[i-1]
}

// Sample draws an index using r.
func (w *WeightedIndex) Sample(r Rand) int {
	x := r.IntN(w.Total())
	// First index whose running total exceeds x.
	i, _ := slices.BinarySearch(w.cumulative, x+1)
	return i
}
