// Command comment-report renders the sentiment, theme and top-liked report
// for the newest enrichment output.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/commentscope/internal/logging"
	"github.com/cognicore/commentscope/internal/runid"
	"github.com/cognicore/commentscope/pkg/commentscope/analytics"
	"github.com/cognicore/commentscope/pkg/commentscope/comment"
	"github.com/cognicore/commentscope/pkg/commentscope/config"
	"github.com/cognicore/commentscope/pkg/commentscope/dataset"
	"github.com/cognicore/commentscope/pkg/commentscope/report"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Config file (optional)")
		taxonomyPath = flag.String("taxonomy", "", "Taxonomy file (optional, defaults to built-in themes)")
		inputPath    = flag.String("input", "", "Enrichment output to report on (default: newest in processed dir)")
	)
	flag.Parse()

	loader := &config.Loader{ConfigPath: *configPath, TaxonomyPath: *taxonomyPath, IgnoreEnv: true}
	comp, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Options{Level: comp.Config.Log.Level, File: comp.Config.Log.File})
	if err != nil {
		log.Fatal(err)
	}
	entry := logger.WithField("run_id", runid.New())

	path, err := run(comp, *inputPath, entry, time.Now())
	if err != nil {
		entry.WithError(err).Fatal("report failed")
	}
	entry.WithField("path", path).Info("report written")
}

// run loads the records, renders the report and writes it. Nothing is
// written unless every step succeeds.
func run(comp *config.Components, inputPath string, log logrus.FieldLogger, now time.Time) (string, error) {
	cfg := comp.Config

	var (
		records []comment.Comment
		err     error
	)
	if inputPath != "" {
		records, err = dataset.LoadProcessed(inputPath)
	} else {
		inputPath, records, err = dataset.LoadLatestProcessed(cfg.Paths.ProcessedDir)
	}
	if err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{
		"input":    inputPath,
		"comments": len(records),
		"themes":   comp.Taxonomy.Len(),
	}).Info("loaded enriched comments")

	text := report.New(report.Options{TopN: cfg.Report.TopN}).Render(records, comp.Taxonomy)

	path, err := dataset.WriteReport(cfg.Paths.ReportDir, now, text)
	if err != nil {
		return "", err
	}

	for i, c := range analytics.TopLiked(records, 0) {
		log.WithFields(logrus.Fields{
			"rank":   i + 1,
			"author": c.Author,
			"likes":  c.Likes,
		}).Debug("comment ranking")
	}
	return path, nil
}
