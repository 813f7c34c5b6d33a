package markov

import (
	"cmp"
	"fmt"
)

// Kind identifies which variant a Symbol holds.
type Kind uint8

const (
	// KindStart marks the Start-Of-Chain sentinel.
	KindStart Kind = iota + 1
	// KindEnd marks the End-Of-Chain sentinel.
	KindEnd
	// KindValue marks a symbol carrying a raw value.
	KindValue
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindValue:
		return "value"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Symbol is a raw value of type T or one of the two chain sentinels. Symbols
// are comparable and can be used directly as map keys. The zero Symbol is not
// a valid symbol.
type Symbol[T comparable] struct {
	kind  Kind
	value T
}

// Start returns the Start-Of-Chain sentinel.
func Start[T comparable]() Symbol[T] {
	return Symbol[T]{kind: KindStart}
}

// End returns the End-Of-Chain sentinel.
func End[T comparable]() Symbol[T] {
	return Symbol[T]{kind: KindEnd}
}

// Value wraps a raw value.
func Value[T comparable](v T) Symbol[T] {
	return Symbol[T]{kind: KindValue, value: v}
}

// Kind returns the variant held by s.
func (s Symbol[T]) Kind() Kind { return s.kind }

// IsStart reports whether s is the Start-Of-Chain sentinel.
func (s Symbol[T]) IsStart() bool { return s.kind == KindStart }

// IsEnd reports whether s is the End-Of-Chain sentinel.
func (s Symbol[T]) IsEnd() bool { return s.kind == KindEnd }

// Value returns the raw value and true if s holds one.
func (s Symbol[T]) Value() (T, bool) {
	if s.kind != KindValue {
		var zero T
		return zero, false
	}
	return s.value, true
}

// String renders sentinels as <SOC> and <EOC> and values with %v.
func (s Symbol[T]) String() string {
	switch s.kind {
	case KindStart:
		return "<SOC>"
	case KindEnd:
		return "<EOC>"
	case KindValue:
		return fmt.Sprintf("%v", s.value)
	default:
		return "<invalid>"
	}
}

// CompareSymbols orders symbols by kind first (start, end, value) and then by
// payload using compare.
func CompareSymbols[T comparable](a, b Symbol[T], compare func(x, y T) int) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if a.kind != KindValue {
		return 0
	}
	return compare(a.value, b.value)
}

// wrapValues converts raw values to symbols and appends them to dst.
func wrapValues[T comparable](dst []Symbol[T], values []T) []Symbol[T] {
	for _, v := range values {
		dst = append(dst, Value(v))
	}
	return dst
}
