// Package youtube fetches top-level video comments from the YouTube Data API.
package youtube

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

// Tried in order; the first capture wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// ExtractVideoID pulls the 11-character video id out of a watch, share,
// embed or shorts URL.
func ExtractVideoID(url string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", errors.Wrapf(internalerr.ErrInvalidInput, "no video id in %q", url)
}

// ReadURLs reads one URL per line, skipping blank lines.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &internalerr.DataNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return urls, nil
}
