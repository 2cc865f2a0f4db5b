package comment

import (
	"bytes"
	"encoding/json"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

// Raw is a comment as returned by the video platform, before enrichment.
type Raw struct {
	VideoID     string `json:"video_id"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	Likes       int64  `json:"likes"`
	PublishedAt string `json:"published_at"`
}

// Comment is an enriched comment record: the raw fields plus the cleaned
// (translated) text and exactly one sentiment label.
type Comment struct {
	VideoID     string    `json:"video_id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	CleanedText string    `json:"cleaned_text"`
	Likes       int64     `json:"likes"`
	PublishedAt string    `json:"published_at"`
	Sentiment   Sentiment `json:"sentiment"`
}

// Enrich attaches enrichment output to a raw comment. An empty cleaned text
// falls back to the original text.
func Enrich(r Raw, cleaned string, s Sentiment) Comment {
	if cleaned == "" {
		cleaned = r.Text
	}
	return Comment{
		VideoID:     r.VideoID,
		Author:      r.Author,
		Text:        r.Text,
		CleanedText: cleaned,
		Likes:       r.Likes,
		PublishedAt: r.PublishedAt,
		Sentiment:   s,
	}
}

// CombinedText is the text scanned for keywords: original and cleaned forms.
func (c Comment) CombinedText() string {
	return c.Text + " " + c.CleanedText
}

// RequiredFields lists the attributes every enriched record must carry.
var RequiredFields = []string{
	"video_id",
	"author",
	"text",
	"cleaned_text",
	"likes",
	"published_at",
	"sentiment",
}

// Decode reads an enrichment output document ({"comments": [...]}).
// Unknown fields are ignored. A missing or null required field yields a
// *internalerr.MissingFieldError; malformed JSON yields an error wrapping
// internalerr.ErrInvalidInput.
func Decode(r io.Reader) ([]Comment, error) {
	var env struct {
		Comments *[]map[string]json.RawMessage `json:"comments"`
	}
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, errors.Wrapf(internalerr.ErrInvalidInput, "decode comments: %v", err)
	}
	if env.Comments == nil {
		return nil, &internalerr.MissingFieldError{Index: -1, Field: "comments"}
	}

	entries := *env.Comments
	out := make([]Comment, 0, len(entries))
	for i, fields := range entries {
		c, err := decodeRecord(i, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeRecord(idx int, fields map[string]json.RawMessage) (Comment, error) {
	for _, name := range RequiredFields {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return Comment{}, &internalerr.MissingFieldError{Index: idx, Field: name}
		}
	}

	var c Comment
	strFields := []struct {
		name string
		dst  *string
	}{
		{"video_id", &c.VideoID},
		{"author", &c.Author},
		{"text", &c.Text},
		{"cleaned_text", &c.CleanedText},
		{"published_at", &c.PublishedAt},
	}
	for _, f := range strFields {
		if err := json.Unmarshal(fields[f.name], f.dst); err != nil {
			return Comment{}, errors.Wrapf(internalerr.ErrInvalidInput, "comments[%d].%s: %v", idx, f.name, err)
		}
	}
	if c.VideoID == "" {
		return Comment{}, errors.Wrapf(internalerr.ErrInvalidInput, "comments[%d].video_id: empty", idx)
	}

	likes, err := decodeLikes(fields["likes"])
	if err != nil {
		return Comment{}, errors.Wrapf(internalerr.ErrInvalidInput, "comments[%d].likes: %v", idx, err)
	}
	c.Likes = likes

	if err := json.Unmarshal(fields["sentiment"], &c.Sentiment); err != nil {
		return Comment{}, errors.Wrapf(internalerr.ErrInvalidInput, "comments[%d].sentiment: %v", idx, err)
	}
	return c, nil
}

// decodeLikes accepts integral numbers, including float spellings like 3.0.
func decodeLikes(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	v, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != math.Trunc(f) {
			return 0, errors.Errorf("not an integer: %s", n)
		}
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, errors.Errorf("like count out of range: %s", n)
		}
		v = int64(f)
	}
	if v < 0 {
		return 0, errors.Errorf("negative like count %d", v)
	}
	return v, nil
}
