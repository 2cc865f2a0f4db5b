package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/cognicore/commentscope/internal/llm"
	"github.com/cognicore/commentscope/pkg/commentscope/comment"
	"github.com/cognicore/commentscope/pkg/commentscope/config"
	"github.com/cognicore/commentscope/pkg/commentscope/dataset"
	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

// echoChat answers cleaning prompts with "cleaned" and everything else with a label.
type echoChat struct{ calls int }

func (e *echoChat) Chat(_ context.Context, _, user string) (string, error) {
	e.calls++
	if strings.HasPrefix(user, "Clean and translate") {
		return "cleaned", nil
	}
	return "positive_affirmation", nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	root := t.TempDir()
	cfg.Paths.RawDir = filepath.Join(root, "raw_comments")
	cfg.Paths.ProcessedDir = filepath.Join(root, "processed_comments")
	return cfg
}

func TestRunEnrichesNewestDump(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.MaxComments = 2
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	raws := []comment.Raw{
		{VideoID: "v", Author: "a", Text: "one", Likes: 1, PublishedAt: "p"},
		{VideoID: "v", Author: "b", Text: "two", Likes: 2, PublishedAt: "p"},
		{VideoID: "v", Author: "c", Text: "three", Likes: 3, PublishedAt: "p"},
	}
	if _, err := dataset.WriteRaw(cfg.Paths.RawDir, now.Add(-time.Hour), raws); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}

	chat := &echoChat{}
	log, hook := test.NewNullLogger()
	path, err := run(context.Background(), cfg, llm.NewEnricher(chat, log), "01RUN", log, now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if filepath.Base(path) != "analysis_results_20240701_100000.json" {
		t.Fatalf("unexpected output %s", path)
	}
	if chat.calls != 4 {
		t.Fatalf("expected 2 comments x 2 calls, got %d", chat.calls)
	}

	records, err := dataset.LoadProcessed(path)
	if err != nil {
		t.Fatalf("LoadProcessed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected cap of 2 records, got %d", len(records))
	}
	if records[0].CleanedText != "cleaned" || records[1].Sentiment != comment.PositiveAffirmation {
		t.Fatalf("unexpected records: %+v", records)
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "sentiment distribution" || last.Data["positive affirmation"] != 2 {
		t.Fatalf("expected distribution log, got %+v", last)
	}
}

func TestRunWithoutRawData(t *testing.T) {
	cfg := testConfig(t)
	log, _ := test.NewNullLogger()
	_, err := run(context.Background(), cfg, llm.NewEnricher(&echoChat{}, log), "01RUN", log, time.Now())
	if !errors.Is(err, internalerr.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}
