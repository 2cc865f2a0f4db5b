package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/cognicore/commentscope/pkg/commentscope/comment"
	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

var rawCSVHeader = []string{"video_id", "author", "text", "likes", "published_at"}

// WriteRaw stores fetched comments in dir as a JSON array and a CSV twin
// sharing the same timestamped base name. It returns the JSON path.
func WriteRaw(dir string, at time.Time, raws []comment.Raw) (string, error) {
	if len(raws) == 0 {
		return "", &internalerr.EmptyDatasetError{Path: dir}
	}

	var js bytes.Buffer
	enc := json.NewEncoder(&js)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raws); err != nil {
		return "", errors.Wrap(err, "encode raw comments")
	}

	var cs bytes.Buffer
	w := csv.NewWriter(&cs)
	if err := w.Write(rawCSVHeader); err != nil {
		return "", errors.Wrap(err, "write csv header")
	}
	for _, r := range raws {
		row := []string{r.VideoID, r.Author, r.Text, strconv.FormatInt(r.Likes, 10), r.PublishedAt}
		if err := w.Write(row); err != nil {
			return "", errors.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "flush csv")
	}

	jsonPath := filepath.Join(dir, Name(RawPrefix, at, ".json"))
	if err := writeAtomic(jsonPath, js.Bytes()); err != nil {
		return "", err
	}
	if err := writeAtomic(filepath.Join(dir, Name(RawPrefix, at, ".csv")), cs.Bytes()); err != nil {
		return "", err
	}
	return jsonPath, nil
}

// LoadRaw reads a JSON array of raw comments.
func LoadRaw(path string) ([]comment.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &internalerr.DataNotFoundError{Path: path, Err: err}
	}
	var raws []comment.Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &internalerr.DataNotFoundError{Path: path, Err: err}
	}
	return raws, nil
}

// LoadLatestRaw loads the newest *.json file in dir.
func LoadLatestRaw(dir string) (string, []comment.Raw, error) {
	path, err := LatestFile(dir, "*.json")
	if err != nil {
		return "", nil, err
	}
	raws, err := LoadRaw(path)
	return path, raws, err
}
