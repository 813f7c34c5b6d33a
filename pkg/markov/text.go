package markov

import "log/slog"

// TextModel is a Model over the characters of words. Each training string is
// one sequence of runes, and each generated sequence is joined back into a
// string.
type TextModel struct {
	model *Model[rune]
}

// TrainText trains a TextModel on words.
func TrainText(maxOrder int, words []string, opts ...Option) (*TextModel, error) {
	b, err := NewBuilder[rune](maxOrder, opts...)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		b.Add([]rune(w))
	}
	return &TextModel{model: b.Build()}, nil
}

// Generate produces a single word. See Model.Generate for the meaning of the
// arguments and the termination rules.
func (t *TextModel) Generate(r Rand, order, maxLen int) (string, error) {
	runes, err := t.model.Generate(r, order, maxLen)
	if err != nil {
		return "", err
	}
	return string(runes), nil
}

// Model returns the underlying rune model.
func (t *TextModel) Model() *Model[rune] { return t.model }

// SetLogger sets the logger used during generation.
func (t *TextModel) SetLogger(logger *slog.Logger) { t.model.SetLogger(logger) }
