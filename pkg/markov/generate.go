package markov

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
)

var (
	// ErrOrderOutOfRange is returned when generation is requested with an order
	// below 1 or above the model's max order.
	ErrOrderOutOfRange = errors.New("markov: order out of range")
	// ErrNilRand is returned when generation is requested without a random source.
	ErrNilRand = errors.New("markov: random source is nil")
)

// Generate walks the chain from its start and returns the raw symbols emitted.
// The walk uses contexts of at most order symbols and stops when the End
// sentinel is drawn, when the current context was never observed, or when
// maxLen symbols have been produced, whichever comes first. None of these is
// an error; the result may be empty. A non-positive maxLen returns an empty
// result without sampling.
func (m *Model[T]) Generate(r Rand, order, maxLen int) ([]T, error) {
	seq, err := m.Walk(r, order, maxLen)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, min(max(maxLen, 0), 64))
	for v := range seq {
		result = append(result, v)
	}
	return result, nil
}

// Walk is the lazy form of Generate. The arguments are validated up front;
// every iteration of the returned sequence performs a fresh walk that draws
// from r.
func (m *Model[T]) Walk(r Rand, order, maxLen int) (iter.Seq[T], error) {
	if order < 1 || order > m.maxOrder {
		return nil, fmt.Errorf("%w: order %d, max order %d", ErrOrderOutOfRange, order, m.maxOrder)
	}
	if r == nil {
		return nil, ErrNilRand
	}

	return func(yield func(T) bool) {
		context := newWindow[T](order)
		context.push(Start[T]())
		generated := 0

		for generated < maxLen {
			state, ok := m.lookupWindow(context)
			if !ok {
				m.logger.Debug("Generation terminated due to dead-end",
					slog.Int("order", order),
					slog.Any("last_context", context),
					slog.Int("generated_length", generated),
				)
				return
			}

			next := state.Sample(r)
			switch next.Kind() {
			case KindValue:
			case KindEnd:
				m.logger.Debug("Generation terminated by EOC symbol",
					slog.Int("order", order),
					slog.Int("generated_length", generated),
				)
				return
			default:
				panic(fmt.Sprintf("markov: malformed model: %s symbol follows context %s", next.Kind(), context))
			}

			context.push(next)
			generated++
			if !yield(next.value) {
				return
			}
		}

		m.logger.Debug("Generation terminated by reaching maxLength",
			slog.Int("order", order),
			slog.Int("max_length", maxLen),
			slog.Int("generated_length", generated),
		)
	}, nil
}
