package corpus

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Tokenizer splits text into words. Its behavior can be customized with
// functional options.
type Tokenizer struct {
	wordRegex *regexp.Regexp
	lowercase bool
	minLength int
}

// Option is a function that configures a Tokenizer.
type Option func(*Tokenizer)

// WithWordRegex sets the regex used to find words in each line.
// Default: `\p{L}+`
func WithWordRegex(wordRegex string) Option {
	return func(t *Tokenizer) {
		t.wordRegex = regexp.MustCompile(wordRegex)
	}
}

// WithLowercase sets whether words are lowercased.
// Default: true
func WithLowercase(lower bool) Option {
	return func(t *Tokenizer) {
		t.lowercase = lower
	}
}

// WithMinLength drops words with fewer than n characters.
// Default: 1
func WithMinLength(n int) Option {
	return func(t *Tokenizer) {
		t.minLength = n
	}
}

// NewTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		// Runs of letters in any script; digits and punctuation split words.
		wordRegex: regexp.MustCompile(`\p{L}+`),
		lowercase: true,
		minLength: 1,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewStream returns a Stream reading words from r.
func (t *Tokenizer) NewStream(r io.Reader) *Stream {
	return &Stream{
		scanner:   bufio.NewScanner(r),
		tokenizer: t,
	}
}

// Stream reads words from an io.Reader one at a time.
type Stream struct {
	scanner   *bufio.Scanner
	buffer    []string
	tokenizer *Tokenizer
}

// Next returns the next word from the stream. When the stream is exhausted,
// it returns io.EOF. Any other error indicates a problem reading from the
// underlying reader.
func (s *Stream) Next() (string, error) {
	for {
		for len(s.buffer) == 0 {
			if !s.scanner.Scan() {
				if err := s.scanner.Err(); err != nil {
					return "", err
				}
				return "", io.EOF
			}
			s.buffer = s.tokenizer.wordRegex.FindAllString(s.scanner.Text(), -1)
		}

		word := s.buffer[0]
		s.buffer = s.buffer[1:]

		if utf8.RuneCountInString(word) < s.tokenizer.minLength {
			continue
		}
		if s.tokenizer.lowercase {
			word = strings.ToLower(word)
		}
		return word, nil
	}
}
