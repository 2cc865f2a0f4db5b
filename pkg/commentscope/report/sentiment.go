package report

import (
	"strings"

	"github.com/cognicore/commentscope/pkg/commentscope/analytics"
	"github.com/cognicore/commentscope/pkg/commentscope/comment"
)

var sentimentRows = []struct {
	label string
	s     comment.Sentiment
}{
	{"Question", comment.Question},
	{"Positive", comment.PositiveAffirmation},
	{"Neutral", comment.NeutralAffirmation},
	{"Negative", comment.NegativeAffirmation},
}

// SentimentSummary renders the distribution section.
func (r *Renderer) SentimentSummary(sum analytics.SentimentSummary) string {
	if sum.Total == 0 {
		return NoData
	}

	var b strings.Builder
	line(&b, rule)
	line(&b, "=== Sentiment Analysis Summary ===")
	line(&b, "Total Comments Analyzed: %d", sum.Total)
	blank(&b)
	line(&b, "Sentiment Distribution:")
	for _, row := range sentimentRows {
		line(&b, "%s: %d (%.2f%%)", row.label, sum.Counts.Get(row.s), sum.Percentage(row.s))
	}
	blank(&b)
	line(&b, "Additional Statistics:")
	line(&b, "Average Likes per Comment: %.5f", sum.MeanLikes)
	line(&b, "Most Common Sentiment: %s", sum.Mode)
	line(&b, "")
	line(&b, rule)
	return b.String()
}
