package report

import (
	"strings"

	"github.com/cognicore/commentscope/pkg/commentscope/analytics"
	"github.com/cognicore/commentscope/pkg/commentscope/comment"
)

// TopLiked renders the most-liked comments in full, without truncation.
func (r *Renderer) TopLiked(records []comment.Comment) string {
	if len(records) == 0 {
		return NoData
	}

	var b strings.Builder
	line(&b, rule)
	line(&b, "=== Top %d Most Liked Comments ===", r.topN)
	for i, c := range analytics.TopLiked(records, r.topN) {
		rank := i + 1
		line(&b, "")
		line(&b, "--- #%d Most Liked Comment (ID:%d)---", rank, rank)
		line(&b, "Author: %s", c.Author)
		line(&b, "Likes: %d", c.Likes)
		line(&b, "Published at: %s", c.PublishedAt)
		blank(&b)
		line(&b, "Original text:")
		line(&b, "%s", c.Text)
		blank(&b)
		line(&b, "Cleaned/translated text:")
		line(&b, "%s", c.CleanedText)
		blank(&b)
		line(&b, "Sentiment: %s", c.Sentiment)
	}
	line(&b, rule)
	return b.String()
}
