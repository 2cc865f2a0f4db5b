// Package dataset manages the flat files passed between pipeline stages:
// raw comment dumps, enrichment output and rendered reports.
package dataset

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

// TimestampLayout stamps every output file name.
const TimestampLayout = "20060102_150405"

// File name prefixes per stage.
const (
	RawPrefix       = "youtube_comments_"
	ProcessedPrefix = "analysis_results_"
	ReportPrefix    = "analysis_"
)

// Name builds "<prefix><timestamp><ext>".
func Name(prefix string, at time.Time, ext string) string {
	return prefix + at.Format(TimestampLayout) + ext
}

// LatestFile returns the most recently modified file in dir matching the
// glob pattern. Equal modification times resolve to the greater name.
// A missing directory or no match yields a *internalerr.DataNotFoundError.
func LatestFile(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", errors.Wrapf(internalerr.ErrInvalidInput, "glob %q: %v", pattern, err)
	}

	var (
		best    string
		bestMod time.Time
	)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		mod := info.ModTime()
		if best == "" || mod.After(bestMod) || (mod.Equal(bestMod) && path > best) {
			best, bestMod = path, mod
		}
	}
	if best == "" {
		return "", &internalerr.DataNotFoundError{Path: filepath.Join(dir, pattern)}
	}
	return best, nil
}

// writeAtomic writes data through a temp file in the target directory and
// renames it into place.
func writeAtomic(path string, data []byte) error {
	return writeVia(path, data, os.Rename)
}

// writeAtomicNew is writeAtomic for targets that must not exist yet. The
// temp file is hard-linked into place, so a name collision fails with
// os.ErrExist instead of replacing the earlier file.
func writeAtomicNew(path string, data []byte) error {
	return writeVia(path, data, os.Link)
}

func writeVia(path string, data []byte, publish func(oldpath, newpath string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".tmp_"+filepath.Base(path)+"_*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "chmod temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	return errors.Wrapf(publish(tmpName, path), "move into %s", path)
}
