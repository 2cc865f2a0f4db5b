package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"google.golang.org/api/option"

	"github.com/cognicore/commentscope/internal/youtube"
	"github.com/cognicore/commentscope/pkg/commentscope/config"
	"github.com/cognicore/commentscope/pkg/commentscope/dataset"
	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

const threadsPage = `{"items": [
  {"snippet": {"topLevelComment": {"snippet": {"authorDisplayName": "sam", "textDisplay": "fees?", "likeCount": 3, "publishedAt": "2024-01-01T00:00:00Z"}}}},
  {"snippet": {"topLevelComment": {"snippet": {"authorDisplayName": "kim", "textDisplay": "مصر", "likeCount": 0, "publishedAt": "2024-01-02T00:00:00Z"}}}}
]}`

func setup(t *testing.T, urls string, handler http.HandlerFunc) (*config.Config, *youtube.Fetcher) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.RawDir = filepath.Join(root, "raw_comments")
	cfg.Paths.URLsFile = filepath.Join(root, "youtube_urls.txt")
	if err := os.WriteFile(cfg.Paths.URLsFile, []byte(urls), 0o644); err != nil {
		t.Fatalf("write urls: %v", err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log, _ := test.NewNullLogger()
	f, err := youtube.NewFetcher(context.Background(), youtube.Config{PageSize: cfg.YouTube.PageSize}, log,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	return cfg, f
}

func TestRunWritesRawFiles(t *testing.T) {
	cfg, f := setup(t, "https://youtu.be/dQw4w9WgXcQ\n", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, threadsPage)
	})
	log, _ := test.NewNullLogger()
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	path, err := run(context.Background(), cfg, f, log, now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if filepath.Base(path) != "youtube_comments_20240701_080000.json" {
		t.Fatalf("unexpected path %s", path)
	}
	raws, err := dataset.LoadRaw(path)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if len(raws) != 2 || raws[0].VideoID != "dQw4w9WgXcQ" || raws[1].Text != "مصر" {
		t.Fatalf("unexpected raws: %+v", raws)
	}

	csvData, err := os.ReadFile(strings.TrimSuffix(path, ".json") + ".csv")
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if strings.Count(string(csvData), "\n") != 3 {
		t.Fatalf("expected header plus 2 rows:\n%s", csvData)
	}
}

func TestRunNothingFetched(t *testing.T) {
	cfg, f := setup(t, "https://youtu.be/dQw4w9WgXcQ\n", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403, "message": "comments disabled"}}`, http.StatusForbidden)
	})
	log, _ := test.NewNullLogger()

	path, err := run(context.Background(), cfg, f, log, time.Now())
	if err != nil || path != "" {
		t.Fatalf("expected no output and no error, got %q, %v", path, err)
	}
	if _, err := os.Stat(cfg.Paths.RawDir); !os.IsNotExist(err) {
		t.Fatal("raw directory should not be created")
	}
}

func TestRunMissingURLsFile(t *testing.T) {
	cfg, f := setup(t, "", func(w http.ResponseWriter, r *http.Request) {})
	cfg.Paths.URLsFile = filepath.Join(t.TempDir(), "absent.txt")
	log, _ := test.NewNullLogger()

	if _, err := run(context.Background(), cfg, f, log, time.Now()); !errors.Is(err, internalerr.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}
