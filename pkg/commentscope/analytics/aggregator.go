package analytics

import (
	"sort"

	"github.com/cognicore/commentscope/pkg/commentscope/comment"
	"github.com/cognicore/commentscope/pkg/commentscope/ingest"
	"github.com/cognicore/commentscope/pkg/commentscope/taxonomy"
)

// MatchedComment is a comment recorded against a theme.
type MatchedComment struct {
	Text  string
	Likes int64
}

// ThemeStats holds one theme's per-run statistics.
type ThemeStats struct {
	Theme      taxonomy.Theme
	Count      int
	Sentiments comment.Tally
	Comments   []MatchedComment // input order
}

// ByLikes returns the matching comments ordered by descending likes.
// Ties keep input order.
func (s ThemeStats) ByLikes() []MatchedComment {
	out := make([]MatchedComment, len(s.Comments))
	copy(out, s.Comments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Likes > out[j].Likes
	})
	return out
}

type compiledTheme struct {
	theme    taxonomy.Theme
	keywords ingest.KeywordSet
}

// Aggregator accumulates theme statistics over a stream of comments.
type Aggregator struct {
	tokenizer *ingest.Tokenizer
	themes    []compiledTheme
	stats     []ThemeStats
	total     int
}

// NewAggregator creates an empty aggregator for the given taxonomy.
func NewAggregator(tax *taxonomy.Taxonomy) *Aggregator {
	return NewAggregatorWithTokenizer(tax, ingest.NewTokenizer())
}

// NewAggregatorWithTokenizer creates an aggregator using a custom tokenizer.
func NewAggregatorWithTokenizer(tax *taxonomy.Taxonomy, tok *ingest.Tokenizer) *Aggregator {
	themes := tax.Themes()
	a := &Aggregator{
		tokenizer: tok,
		themes:    make([]compiledTheme, len(themes)),
		stats:     make([]ThemeStats, len(themes)),
	}
	for i, th := range themes {
		a.themes[i] = compiledTheme{theme: th, keywords: tok.Compile(th.Keywords)}
		a.stats[i] = ThemeStats{Theme: th}
	}
	return a
}

// Process consumes one comment. Themes are not exclusive: a comment is
// recorded against every theme it matches.
func (a *Aggregator) Process(c comment.Comment) {
	a.total++
	tokens := a.tokenizer.Tokenize(c.CombinedText())
	for i, ct := range a.themes {
		if !ct.keywords.MatchTokens(tokens) {
			continue
		}
		st := &a.stats[i]
		st.Count++
		st.Sentiments.Add(c.Sentiment)
		st.Comments = append(st.Comments, MatchedComment{Text: c.Text, Likes: c.Likes})
	}
}

// Result is the aggregation over a full comment set.
type Result struct {
	TotalComments int
	Themes        []ThemeStats // taxonomy order
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Aggregator) Snapshot() Result {
	res := Result{
		TotalComments: a.total,
		Themes:        make([]ThemeStats, len(a.stats)),
	}
	for i, st := range a.stats {
		cp := st
		cp.Comments = make([]MatchedComment, len(st.Comments))
		copy(cp.Comments, st.Comments)
		res.Themes[i] = cp
	}
	return res
}

// Aggregate runs a single pass over records. An empty record set
// short-circuits to an empty Result.
func Aggregate(records []comment.Comment, tax *taxonomy.Taxonomy) Result {
	if len(records) == 0 {
		return Result{}
	}
	a := NewAggregator(tax)
	for _, c := range records {
		a.Process(c)
	}
	return a.Snapshot()
}

// Empty reports whether the result covers no comments.
func (r Result) Empty() bool {
	return r.TotalComments == 0
}

// Percentage is count as a share of all comments, in percent.
// It is zero for an empty result.
func (r Result) Percentage(count int) float64 {
	if r.TotalComments == 0 {
		return 0
	}
	return float64(count) / float64(r.TotalComments) * 100
}

// Theme looks up one theme's statistics by name.
func (r Result) Theme(name string) (ThemeStats, bool) {
	for _, st := range r.Themes {
		if st.Theme.Name == name {
			return st, true
		}
	}
	return ThemeStats{}, false
}

// Group returns the statistics of one group's themes in taxonomy order.
func (r Result) Group(g taxonomy.Group) []ThemeStats {
	var out []ThemeStats
	for _, st := range r.Themes {
		if st.Theme.Group() == g {
			out = append(out, st)
		}
	}
	return out
}

// MentionedCountries returns country themes with at least one match,
// by descending count. Ties keep taxonomy order.
func (r Result) MentionedCountries() []ThemeStats {
	var out []ThemeStats
	for _, st := range r.Group(taxonomy.GroupCountry) {
		if st.Count > 0 {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// CountryComment is a country-theme match tagged with the country's name.
type CountryComment struct {
	Country string
	MatchedComment
}

// CountryComments merges the matches of every mentioned country, in
// MentionedCountries order, then orders them by descending likes.
// Ties keep the merged order. The second value is the sum of country
// counts; a comment naming two countries is counted twice.
func (r Result) CountryComments() ([]CountryComment, int) {
	var (
		merged []CountryComment
		total  int
	)
	for _, st := range r.MentionedCountries() {
		total += st.Count
		name := st.Theme.DisplayName()
		for _, mc := range st.Comments {
			merged = append(merged, CountryComment{Country: name, MatchedComment: mc})
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Likes > merged[j].Likes
	})
	return merged, total
}
