// Package pipeline sequences the processing stages over one document:
// refine, merge, classify, normalize, then the QA checker suite. The
// stages run strictly one after another. Each mutates the document in
// place and the next reads the finished result, so no stage ever sees
// a half-written page.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/FoxRav/documents-to-ai-readable-data/classify"
	"github.com/FoxRav/documents-to-ai-readable-data/merge"
	"github.com/FoxRav/documents-to-ai-readable-data/model"
	"github.com/FoxRav/documents-to-ai-readable-data/normalize"
	"github.com/FoxRav/documents-to-ai-readable-data/qa"
	"github.com/FoxRav/documents-to-ai-readable-data/quality"
	"github.com/FoxRav/documents-to-ai-readable-data/refine"
)

// ErrEmptyDocument means the merged document carries no items on any
// page. That signals total upstream extraction failure, so the run
// aborts before QA rather than producing a clean-looking report over
// nothing.
var ErrEmptyDocument = errors.New("document is empty: extraction produced no blocks or tables")

// Config aggregates the stage configurations for one run. Build it
// once at startup and hand it to NewWithConfig; the pipeline holds a
// copy, so later mutation has no effect.
type Config struct {
	Refine   refine.Config
	Merge    merge.Config
	Classify classify.Config
	QA       qa.Config

	// StrictBadPageRatio and LenientBadPageRatio gate run quality on
	// the share of pages with "bad" OCR status. Crossing the lenient
	// threshold logs a warning, crossing only the strict one an info.
	// Defaults: 0.10 and 0.20.
	StrictBadPageRatio  float64
	LenientBadPageRatio float64

	// GoldenPath locates the regression snapshot for the diff checker.
	GoldenPath string

	// Logger receives stage diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the stage defaults used in production runs.
func DefaultConfig() Config {
	return Config{
		Refine:              refine.DefaultConfig(),
		Merge:               merge.DefaultConfig(),
		Classify:            classify.DefaultConfig(),
		QA:                  qa.DefaultConfig(),
		StrictBadPageRatio:  0.10,
		LenientBadPageRatio: 0.20,
	}
}

// Pipeline runs the staged document reconstruction and validation.
type Pipeline struct {
	config     Config
	refiner    *refine.Refiner
	merger     *merge.Merger
	classifier *classify.Classifier
	runner     *qa.Runner
	logger     *slog.Logger
}

// New creates a pipeline with default configuration.
func New() *Pipeline {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a pipeline with custom stage configuration.
// The pipeline logger backfills any stage logger left unset, and the
// golden path flows into the QA stage unless one was set there.
func NewWithConfig(config Config) *Pipeline {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Merge.Logger == nil {
		config.Merge.Logger = logger
	}
	if config.Classify.Logger == nil {
		config.Classify.Logger = logger
	}
	if config.QA.Logger == nil {
		config.QA.Logger = logger
	}
	if config.QA.GoldenPath == "" {
		config.QA.GoldenPath = config.GoldenPath
	}
	return &Pipeline{
		config:     config,
		refiner:    refine.NewWithConfig(config.Refine),
		merger:     merge.NewWithConfig(config.Merge),
		classifier: classify.NewWithConfig(config.Classify),
		runner:     qa.NewRunnerWithConfig(config.QA),
		logger:     logger,
	}
}

// Result bundles the artifacts of one run.
type Result struct {
	Document *model.Document
	Report   *model.QAReport

	// BadPageRatio is the share of pages whose OCR quality status is
	// "bad"; pages without metrics do not count.
	BadPageRatio float64
}

// Run processes one document end to end: refine each page's extraction
// output, merge into reading order, classify, normalize, and validate.
// It fails with ErrEmptyDocument when the merged document has no items
// on any page; QA findings never fail the run.
func (p *Pipeline) Run(filename string, pages []merge.PageInput, qualityMap map[int]*model.OCRQuality) (*Result, error) {
	refined := make([]merge.PageInput, len(pages))
	for i, in := range pages {
		in.Blocks, in.Tables = p.refiner.RefinePage(in.Index, in.Blocks, in.Tables)
		refined[i] = in
	}
	p.logger.Info("refine complete", "pages", len(refined))

	doc := p.merger.MergeDocument(filename, refined, qualityMap)
	p.logger.Info("merge complete", "pages", len(doc.Pages), "items", doc.TotalItems())

	if doc.TotalItems() == 0 {
		return nil, fmt.Errorf("%w (%d pages merged); the extraction stage likely failed",
			ErrEmptyDocument, len(doc.Pages))
	}

	p.classifier.ClassifyDocument(doc)
	normalize.Document(doc)
	p.logger.Info("normalize complete")

	ratio := badPageRatio(doc)
	switch {
	case ratio > p.config.LenientBadPageRatio:
		p.logger.Warn("OCR quality gate exceeded",
			"bad_page_ratio", ratio,
			"threshold", p.config.LenientBadPageRatio)
	case ratio > p.config.StrictBadPageRatio:
		p.logger.Info("OCR quality gate above strict threshold",
			"bad_page_ratio", ratio,
			"threshold", p.config.StrictBadPageRatio)
	}

	report := p.runner.Run(doc)
	errs, warns, infos := report.CountBySeverity()
	p.logger.Info("qa complete",
		"findings", len(report.Findings),
		"errors", errs,
		"warnings", warns,
		"infos", infos,
		"schema_valid", report.SchemaValid)

	return &Result{Document: doc, Report: report, BadPageRatio: ratio}, nil
}

// badPageRatio is the share of pages whose OCR status is "bad". Pages
// without quality metrics (native extraction) never count as bad.
func badPageRatio(doc *model.Document) float64 {
	if len(doc.Pages) == 0 {
		return 0
	}
	bad := 0
	for _, page := range doc.Pages {
		if page.OCRQuality != nil && page.OCRQuality.Status == quality.StatusBad {
			bad++
		}
	}
	return float64(bad) / float64(len(doc.Pages))
}
