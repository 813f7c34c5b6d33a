package markov

import "strings"

// window is the generation context: a fixed-capacity ring buffer holding the
// most recent symbols, oldest first. Pushing onto a full window drops the
// oldest symbol.
type window[T comparable] struct {
	buf  []Symbol[T]
	head int
	size int
}

func newWindow[T comparable](capacity int) *window[T] {
	return &window[T]{buf: make([]Symbol[T], capacity)}
}

func (w *window[T]) len() int { return w.size }

// at returns the i-th symbol, counting from the oldest.
func (w *window[T]) at(i int) Symbol[T] {
	return w.buf[(w.head+i)%len(w.buf)]
}

func (w *window[T]) push(s Symbol[T]) {
	if w.size < len(w.buf) {
		w.buf[(w.head+w.size)%len(w.buf)] = s
		w.size++
		return
	}
	w.buf[w.head] = s
	w.head = (w.head + 1) % len(w.buf)
}

// symbols returns a copy of the window contents, oldest first.
func (w *window[T]) symbols() []Symbol[T] {
	out := make([]Symbol[T], w.size)
	for i := range out {
		out[i] = w.at(i)
	}
	return out
}

func (w *window[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < w.size; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.at(i).String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// lookupWindow is Lookup over the contents of w.
func (m *Model[T]) lookupWindow(w *window[T]) (*State[T], bool) {
	n := m.root
	for i := 0; i < w.size; i++ {
		if n = n.child(w.at(i)); n == nil {
			return nil, false
		}
	}
	if n.state == nil {
		return nil, false
	}
	return n.state, true
}
