package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/cognicore/commentscope/pkg/commentscope/comment"
	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

// Processed is the enrichment output document.
type Processed struct {
	RunID    string            `json:"run_id,omitempty"`
	Comments []comment.Comment `json:"comments"`
}

// WriteProcessed stores enriched comments under dir and returns the path.
// Non-ASCII text is written as-is.
func WriteProcessed(dir string, at time.Time, doc Processed) (string, error) {
	if doc.Comments == nil {
		doc.Comments = []comment.Comment{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", errors.Wrap(err, "encode processed comments")
	}

	path := filepath.Join(dir, Name(ProcessedPrefix, at, ".json"))
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// LoadProcessed reads an enrichment output file. Unreadable or malformed
// files yield a *internalerr.DataNotFoundError; records missing a required
// field yield a *internalerr.MissingFieldError; zero records yield a
// *internalerr.EmptyDatasetError.
func LoadProcessed(path string) ([]comment.Comment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &internalerr.DataNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := comment.Decode(f)
	if err != nil {
		if errors.Is(err, internalerr.ErrMissingField) {
			return nil, errors.Wrapf(err, "load %s", path)
		}
		return nil, &internalerr.DataNotFoundError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &internalerr.EmptyDatasetError{Path: path}
	}
	return records, nil
}

// LoadLatestProcessed loads the newest enrichment output in dir.
func LoadLatestProcessed(dir string) (string, []comment.Comment, error) {
	path, err := LatestFile(dir, ProcessedPrefix+"*.json")
	if err != nil {
		return "", nil, err
	}
	records, err := LoadProcessed(path)
	return path, records, err
}

// WriteReport writes the rendered report to a new timestamped file in dir.
// The file appears complete or not at all, and an existing report with the
// same name is never replaced: the call fails with an error matching
// os.ErrExist.
func WriteReport(dir string, at time.Time, text string) (string, error) {
	path := filepath.Join(dir, Name(ReportPrefix, at, ".txt"))
	if err := writeAtomicNew(path, []byte(text)); err != nil {
		return "", err
	}
	return path, nil
}
