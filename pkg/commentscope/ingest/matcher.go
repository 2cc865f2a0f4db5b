package ingest

// KeywordSet is a compiled keyword list. Single-token keywords match by
// token membership; multi-token keywords ("customer service") must appear
// as the same adjacent token sequence.
type KeywordSet struct {
	single  map[string]struct{}
	phrases [][]string
}

// Compile tokenizes every keyword with the same rules as comment text so
// both sides agree on case and punctuation.
func (t *Tokenizer) Compile(keywords []string) KeywordSet {
	ks := KeywordSet{single: make(map[string]struct{}, len(keywords))}
	for _, kw := range keywords {
		toks := t.Tokenize(kw)
		switch len(toks) {
		case 0:
			continue
		case 1:
			ks.single[toks[0]] = struct{}{}
		default:
			ks.phrases = append(ks.phrases, toks)
		}
	}
	return ks
}

// Empty reports whether no keyword survived compilation.
func (k KeywordSet) Empty() bool {
	return len(k.single) == 0 && len(k.phrases) == 0
}

// MatchTokens reports whether any keyword occurs in tokens.
func (k KeywordSet) MatchTokens(tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := k.single[tok]; ok {
			return true
		}
	}
	for _, phrase := range k.phrases {
		if containsSequence(tokens, phrase) {
			return true
		}
	}
	return false
}

func containsSequence(tokens, seq []string) bool {
	n := len(seq)
	for i := 0; i+n <= len(tokens); i++ {
		if tokens[i] != seq[0] {
			continue
		}
		j := 1
		for j < n && tokens[i+j] == seq[j] {
			j++
		}
		if j == n {
			return true
		}
	}
	return false
}

// Matcher answers whole-word, case-insensitive keyword queries.
type Matcher struct {
	tokenizer *Tokenizer
}

// NewMatcher creates a matcher; a nil tokenizer means NewTokenizer().
func NewMatcher(tokenizer *Tokenizer) *Matcher {
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	return &Matcher{tokenizer: tokenizer}
}

// Matches reports whether any keyword appears in text as a whole word
// (or, for phrases, as a whole adjacent word sequence).
// Example: keyword "id" matches "need my id please" but not "this is valid".
func (m *Matcher) Matches(text string, keywords []string) bool {
	return m.tokenizer.Compile(keywords).MatchTokens(m.tokenizer.Tokenize(text))
}
