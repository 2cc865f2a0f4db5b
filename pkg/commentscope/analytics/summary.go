package analytics

import (
	"sort"

	"github.com/cognicore/commentscope/pkg/commentscope/comment"
)

// SentimentSummary describes the sentiment distribution of a comment set.
type SentimentSummary struct {
	Total     int
	Counts    comment.Tally
	MeanLikes float64
	Mode      comment.Sentiment
}

// Percentage is the share of s among all comments, in percent.
func (s SentimentSummary) Percentage(sent comment.Sentiment) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts.Get(sent)) / float64(s.Total) * 100
}

// SummarizeSentiments tallies sentiments and likes. The mode breaks ties by
// label declaration order.
func SummarizeSentiments(records []comment.Comment) SentimentSummary {
	sum := SentimentSummary{Total: len(records)}
	if len(records) == 0 {
		return sum
	}
	var likes int64
	for _, c := range records {
		sum.Counts.Add(c.Sentiment)
		likes += c.Likes
	}
	sum.MeanLikes = float64(likes) / float64(len(records))
	sum.Mode = sum.Counts.Mode()
	return sum
}

// TopLiked returns up to n records by descending likes. Ties keep input
// order. n <= 0 returns every record.
func TopLiked(records []comment.Comment, n int) []comment.Comment {
	out := make([]comment.Comment, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Likes > out[j].Likes
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
