package markov

// Extract returns the n-grams of seq used for training. The result holds, in
// order, a window padded with Start, a window padded with End, and every
// contiguous window of length n. Padded windows are emitted even when they
// repeat a contiguous one, which weights chain boundaries more heavily.
// Sequences shorter than n produce no n-grams.
func Extract[T comparable](seq []T, n int) [][]Symbol[T] {
	if n < 1 || len(seq) < n {
		return nil
	}

	ngrams := make([][]Symbol[T], 0, 2+len(seq)-n+1)

	head := make([]Symbol[T], 0, n)
	head = append(head, Start[T]())
	head = wrapValues(head, seq[:n-1])
	ngrams = append(ngrams, head)

	tail := make([]Symbol[T], 0, n)
	tail = wrapValues(tail, seq[len(seq)-n+1:])
	tail = append(tail, End[T]())
	ngrams = append(ngrams, tail)

	for i := 0; i+n <= len(seq); i++ {
		ngrams = append(ngrams, wrapValues(make([]Symbol[T], 0, n), seq[i:i+n]))
	}
	return ngrams
}
