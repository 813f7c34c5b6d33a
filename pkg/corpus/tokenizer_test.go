package corpus

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s *Stream) []string {
	t.Helper()
	var words []string
	for {
		w, err := s.Next()
		if errors.Is(err, io.EOF) {
			return words
		}
		require.NoError(t, err)
		words = append(words, w)
	}
}

func TestTokenizer(t *testing.T) {
	testCases := []struct {
		name  string
		opts  []Option
		input string
		want  []string
	}{
		{
			name:  "defaults split on non-letters and lowercase",
			input: "Neptune, Uranus & SATURN!\n\n42 Ceres-Pallas",
			want:  []string{"neptune", "uranus", "saturn", "ceres", "pallas"},
		},
		{
			name:  "unicode letters",
			input: "Ärger über Łódź",
			want:  []string{"ärger", "über", "łódź"},
		},
		{
			name:  "keep case",
			opts:  []Option{WithLowercase(false)},
			input: "Io Europa",
			want:  []string{"Io", "Europa"},
		},
		{
			name:  "minimum length counts characters",
			opts:  []Option{WithMinLength(3)},
			input: "io sun äöü mars",
			want:  []string{"sun", "äöü", "mars"},
		},
		{
			name:  "custom regex",
			opts:  []Option{WithWordRegex(`[a-z0-9-]+`)},
			input: "hale-bopp 67p",
			want:  []string{"hale-bopp", "67p"},
		},
		{
			name:  "empty input",
			input: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tok := NewTokenizer(tc.opts...)
			got := collect(t, tok.NewStream(strings.NewReader(tc.input)))
			assert.Equal(t, tc.want, got)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestTokenizerReadError(t *testing.T) {
	_, err := NewTokenizer().NewStream(failingReader{}).Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "disk on fire")
}
