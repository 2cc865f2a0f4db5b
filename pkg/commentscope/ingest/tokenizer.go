package ingest

import "strings"

// DefaultPunctuation is isolated from neighbouring words before splitting,
// so "id?" and "(id)" both yield the token "id".
const DefaultPunctuation = ".,!?;:()[]{}"

// Tokenizer lowercases text, isolates punctuation and splits on whitespace.
// No stemming and no stopword removal: keyword matching needs every token.
type Tokenizer struct {
	punct map[rune]struct{}
}

// NewTokenizer creates a tokenizer that isolates DefaultPunctuation.
func NewTokenizer() *Tokenizer {
	return NewTokenizerWithPunctuation(DefaultPunctuation)
}

// NewTokenizerWithPunctuation creates a tokenizer that isolates the given runes.
func NewTokenizerWithPunctuation(punct string) *Tokenizer {
	set := make(map[rune]struct{}, len(punct))
	for _, r := range punct {
		set[r] = struct{}{}
	}
	return &Tokenizer{punct: set}
}

// Tokenize returns the whitespace-separated tokens of the lowercased text.
// Isolated punctuation marks come back as tokens of their own.
func (t *Tokenizer) Tokenize(text string) []string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower) + len(lower)/4)
	for _, r := range lower {
		if _, ok := t.punct[r]; ok {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.Fields(b.String())
}
