package llm

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/commentscope/pkg/commentscope/comment"
)

const (
	cleanSystemPrompt = "You are a helpful assistant that translates text to English (if not already in English) " +
		"and cleans it by removing noise, formatting issues, and redundant information. Keep the core message intact."
	cleanUserPrefix = "Clean and translate if necessary: "

	classifySystemPrompt = "Classify the following comment into one of these categories: " +
		"'negative affirmation', 'positive affirmation', 'neutral affirmation', 'question'. " +
		"Return ONLY the category name."
)

// Chatter is the completion call the enricher depends on.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Enricher adds cleaned text and a sentiment label to raw comments.
type Enricher struct {
	chat Chatter
	log  logrus.FieldLogger
}

// NewEnricher wraps a chat client.
func NewEnricher(chat Chatter, log logrus.FieldLogger) *Enricher {
	return &Enricher{chat: chat, log: log}
}

// Clean translates text to English and strips noise. On failure or an empty
// reply it returns the original text.
func (e *Enricher) Clean(ctx context.Context, text string) string {
	out, err := e.chat.Chat(ctx, cleanSystemPrompt, cleanUserPrefix+text)
	if err != nil {
		e.log.WithError(err).Warn("cleaning comment failed, keeping original text")
		return text
	}
	if out == "" {
		return text
	}
	return out
}

// Classify labels text. Failures and unrecognized replies become
// NeutralAffirmation.
func (e *Enricher) Classify(ctx context.Context, text string) comment.Sentiment {
	out, err := e.chat.Chat(ctx, classifySystemPrompt, text)
	if err != nil {
		e.log.WithError(err).Warn("classifying comment failed, using neutral")
		return comment.NeutralAffirmation
	}
	return comment.ParseSentiment(out)
}

// Enrich cleans each comment, then classifies the cleaned text. Output
// order matches input order. A canceled context stops the run early and
// returns what was enriched so far.
func (e *Enricher) Enrich(ctx context.Context, raws []comment.Raw) ([]comment.Comment, error) {
	out := make([]comment.Comment, 0, len(raws))
	for i, r := range raws {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		cleaned := e.Clean(ctx, r.Text)
		if cleaned == "" {
			cleaned = r.Text
		}
		out = append(out, comment.Enrich(r, cleaned, e.Classify(ctx, cleaned)))

		if (i+1)%50 == 0 {
			e.log.WithField("done", i+1).WithField("total", len(raws)).Info("enrichment progress")
		}
	}
	return out, nil
}
