package report

import (
	"fmt"
	"strings"

	"github.com/cognicore/commentscope/pkg/commentscope/analytics"
	"github.com/cognicore/commentscope/pkg/commentscope/comment"
	"github.com/cognicore/commentscope/pkg/commentscope/taxonomy"
)

const (
	// DefaultTopN is the number of comments in the top-liked section.
	DefaultTopN = 10

	// MaxCommentChars bounds comment text in theme listings.
	MaxCommentChars = 200

	ellipsis = "..."
	indent   = "        "
	rule     = "===================================="
)

// NoData replaces a section when there are no comments to report on.
const NoData = "\n" + indent + "No data available."

// Options configures a Renderer.
type Options struct {
	TopN int
}

// Renderer turns comment sets and aggregation results into the fixed-layout
// text report.
type Renderer struct {
	topN int
}

// New creates a renderer. A non-positive TopN means DefaultTopN.
func New(opts Options) *Renderer {
	n := opts.TopN
	if n <= 0 {
		n = DefaultTopN
	}
	return &Renderer{topN: n}
}

// Render aggregates records against tax and returns the sentiment, theme and
// top-liked sections concatenated in that order.
func (r *Renderer) Render(records []comment.Comment, tax *taxonomy.Taxonomy) string {
	var b strings.Builder
	b.WriteString(r.SentimentSummary(analytics.SummarizeSentiments(records)))
	b.WriteString(r.ThemeSummary(analytics.Aggregate(records, tax)))
	b.WriteString(r.TopLiked(records))
	return b.String()
}

// line appends a newline, the indent and the formatted text.
func line(b *strings.Builder, format string, args ...any) {
	b.WriteString("\n")
	b.WriteString(indent)
	fmt.Fprintf(b, format, args...)
}

// blank appends an empty line.
func blank(b *strings.Builder) {
	b.WriteString("\n")
}

// excerpt flattens newlines and bounds the text to MaxCommentChars runes.
func excerpt(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= MaxCommentChars {
		return text
	}
	return string(runes[:MaxCommentChars-len(ellipsis)]) + ellipsis
}

func tallyString(t comment.Tally) string {
	return fmt.Sprintf("[Q:%d, +:%d, =:%d, -:%d]",
		t.Get(comment.Question),
		t.Get(comment.PositiveAffirmation),
		t.Get(comment.NeutralAffirmation),
		t.Get(comment.NegativeAffirmation))
}
