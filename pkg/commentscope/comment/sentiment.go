package comment

import (
	"encoding/json"
	"strings"
)

// Sentiment is one of the four classifier labels. Declaration order is the
// tie-break order wherever sentiments are ranked.
type Sentiment int

const (
	Question Sentiment = iota
	PositiveAffirmation
	NeutralAffirmation
	NegativeAffirmation
)

// Sentiments lists every label in declaration order.
var Sentiments = [...]Sentiment{Question, PositiveAffirmation, NeutralAffirmation, NegativeAffirmation}

var sentimentLabels = [...]string{
	Question:            "question",
	PositiveAffirmation: "positive affirmation",
	NeutralAffirmation:  "neutral affirmation",
	NegativeAffirmation: "negative affirmation",
}

// String returns the label as the classifier emits it.
func (s Sentiment) String() string {
	if s < Question || s > NegativeAffirmation {
		return sentimentLabels[NeutralAffirmation]
	}
	return sentimentLabels[s]
}

// ParseSentiment maps classifier output onto the closed label set.
// Case, surrounding quotes/punctuation and '_' or '-' separators are ignored.
// Anything unrecognized becomes NeutralAffirmation.
func ParseSentiment(raw string) Sentiment {
	s, _ := lookupSentiment(raw)
	return s
}

func lookupSentiment(raw string) (Sentiment, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.Trim(norm, "\"'`.!")
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	norm = strings.Join(strings.Fields(norm), " ")
	for _, s := range Sentiments {
		if sentimentLabels[s] == norm {
			return s, true
		}
	}
	return NeutralAffirmation, false
}

func (s Sentiment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON never fails: unknown labels and non-string values coerce
// to NeutralAffirmation.
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = NeutralAffirmation
		return nil
	}
	*s = ParseSentiment(raw)
	return nil
}

// Tally counts records per sentiment.
type Tally [len(Sentiments)]int

// Add increments the count for s.
func (t *Tally) Add(s Sentiment) {
	if s < Question || s > NegativeAffirmation {
		s = NeutralAffirmation
	}
	t[s]++
}

// Get returns the count for s.
func (t Tally) Get(s Sentiment) int {
	if s < Question || s > NegativeAffirmation {
		return 0
	}
	return t[s]
}

// Total is the sum over all sentiments.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Mode returns the sentiment with the highest count, earliest declared on ties.
func (t Tally) Mode() Sentiment {
	best := Question
	for _, s := range Sentiments[1:] {
		if t[s] > t[best] {
			best = s
		}
	}
	return best
}
