// Command enrich-comments translates, cleans and classifies the newest raw
// comment dump and writes the enrichment output.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/commentscope/internal/llm"
	"github.com/cognicore/commentscope/internal/logging"
	"github.com/cognicore/commentscope/internal/runid"
	"github.com/cognicore/commentscope/pkg/commentscope/comment"
	"github.com/cognicore/commentscope/pkg/commentscope/config"
	"github.com/cognicore/commentscope/pkg/commentscope/dataset"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		envPath    = flag.String("env", ".env", "Env file (optional)")
	)
	flag.Parse()

	loader := &config.Loader{ConfigPath: *configPath, EnvPath: *envPath}
	comp, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg := comp.Config

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		log.Fatal(err)
	}
	id := runid.New()
	entry := logger.WithField("run_id", id)

	if cfg.LLM.APIKey == "" && cfg.LLM.BaseURL == "" {
		entry.Fatal("OPENAI_API_KEY not set")
	}
	client, err := llm.New(llm.Config{
		BaseURL:           cfg.LLM.BaseURL,
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.Model,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	})
	if err != nil {
		entry.WithError(err).Fatal("create llm client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, err := run(ctx, cfg, llm.NewEnricher(client, entry), id, entry, time.Now())
	if err != nil {
		entry.WithError(err).Fatal("enrichment failed")
	}
	entry.WithField("path", path).Info("enrichment output written")
}

// run enriches up to cfg.LLM.MaxComments of the newest raw comments.
func run(ctx context.Context, cfg *config.Config, enricher *llm.Enricher, id string, log logrus.FieldLogger, now time.Time) (string, error) {
	input, raws, err := dataset.LoadLatestRaw(cfg.Paths.RawDir)
	if err != nil {
		return "", err
	}
	if len(raws) > cfg.LLM.MaxComments {
		raws = raws[:cfg.LLM.MaxComments]
	}
	log.WithFields(logrus.Fields{"input": input, "comments": len(raws)}).Info("enriching comments")

	enriched, err := enricher.Enrich(ctx, raws)
	if err != nil {
		return "", err
	}

	path, err := dataset.WriteProcessed(cfg.Paths.ProcessedDir, now, dataset.Processed{RunID: id, Comments: enriched})
	if err != nil {
		return "", err
	}

	var tally comment.Tally
	for _, c := range enriched {
		tally.Add(c.Sentiment)
	}
	fields := logrus.Fields{"total": len(enriched)}
	for _, s := range comment.Sentiments {
		fields[s.String()] = tally.Get(s)
	}
	log.WithFields(fields).Info("sentiment distribution")
	return path, nil
}
