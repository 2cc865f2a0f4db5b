// Command fetch-comments downloads top-level comments for every video URL
// in the urls file and writes them as JSON and CSV.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/commentscope/internal/logging"
	"github.com/cognicore/commentscope/internal/runid"
	"github.com/cognicore/commentscope/internal/youtube"
	"github.com/cognicore/commentscope/pkg/commentscope/config"
	"github.com/cognicore/commentscope/pkg/commentscope/dataset"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		envPath    = flag.String("env", ".env", "Env file (optional)")
		urlsPath   = flag.String("urls", "", "URLs file (overrides paths.urls_file)")
	)
	flag.Parse()

	loader := &config.Loader{ConfigPath: *configPath, EnvPath: *envPath}
	comp, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg := comp.Config
	if *urlsPath != "" {
		cfg.Paths.URLsFile = *urlsPath
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		log.Fatal(err)
	}
	entry := logger.WithField("run_id", runid.New())

	if cfg.YouTube.APIKey == "" {
		entry.Fatal("YOUTUBE_API_KEY not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher, err := youtube.NewFetcher(ctx, youtube.Config{
		APIKey:            cfg.YouTube.APIKey,
		PageSize:          cfg.YouTube.PageSize,
		TextFormat:        cfg.YouTube.TextFormat,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
	}, entry)
	if err != nil {
		entry.WithError(err).Fatal("create youtube client")
	}

	path, err := run(ctx, cfg, fetcher, entry, time.Now())
	if err != nil {
		entry.WithError(err).Fatal("fetch failed")
	}
	if path == "" {
		entry.Warn("no comments were retrieved")
		return
	}
	entry.WithField("path", path).Info("comments written")
}

// run fetches comments for every URL and stores them. It returns an empty
// path when no comments were retrieved.
func run(ctx context.Context, cfg *config.Config, fetcher *youtube.Fetcher, log logrus.FieldLogger, now time.Time) (string, error) {
	urls, err := youtube.ReadURLs(cfg.Paths.URLsFile)
	if err != nil {
		return "", err
	}
	log.WithField("urls", len(urls)).Info("fetching comments")

	raws, err := fetcher.FetchAll(ctx, urls, cfg.YouTube.MaxCommentsPerVideo)
	if err != nil {
		return "", err
	}
	if len(raws) == 0 {
		return "", nil
	}
	return dataset.WriteRaw(cfg.Paths.RawDir, now, raws)
}
