// Package qa validates a processed document. Each checker inspects the
// document read-only and reports findings; the runner executes them in
// a fixed order and isolates failures, so one broken checker never
// blocks the rest of the suite.
package qa

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// Checker inspects a document and reports findings. Check must not
// mutate the document. A returned error means the checker itself broke,
// not that the document has problems.
type Checker interface {
	Name() string
	Check(doc *model.Document) ([]model.Finding, error)
}

// RecordKeeper is implemented by checkers that produce structured check
// records alongside findings. The runner calls Record after a
// successful Check so the checker can append the records from that run
// to the report. Checkers are run one at a time; implementations may
// keep per-run state between Check and Record.
type RecordKeeper interface {
	Record(report *model.QAReport)
}

// Config holds the runner setup.
type Config struct {
	// Checkers to run, in order. Defaults to DefaultCheckers("").
	Checkers []Checker

	// GoldenPath locates the regression snapshot for the diff checker
	// when Checkers is not set explicitly.
	GoldenPath string

	// Logger receives checker failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the production checker suite.
func DefaultConfig() Config {
	return Config{}
}

// DefaultCheckers returns the full suite in execution order.
func DefaultCheckers(goldenPath string) []Checker {
	return []Checker{
		NewSchemaChecker(),
		NewSumChecker(),
		NewSemanticSectionChecker(),
		NewOCRQualityChecker(),
		NewBalanceSheetChecker(),
		NewCrossRefChecker(),
		NewDiffChecker(goldenPath),
	}
}

// Runner executes the checker suite against a document.
type Runner struct {
	checkers []Checker
	logger   *slog.Logger
}

// NewRunner creates a runner with the default suite.
func NewRunner() *Runner {
	return NewRunnerWithConfig(DefaultConfig())
}

// NewRunnerWithConfig creates a runner with custom checkers.
func NewRunnerWithConfig(config Config) *Runner {
	checkers := config.Checkers
	if checkers == nil {
		checkers = DefaultCheckers(config.GoldenPath)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{checkers: checkers, logger: logger}
}

// Run executes every checker and assembles the report. A checker that
// returns an error or panics contributes a single error finding under
// its own name; the remaining checkers still run. SchemaValid reflects
// whether the schema checker came back clean.
func (r *Runner) Run(doc *model.Document) *model.QAReport {
	report := &model.QAReport{
		PDF:           doc.PDF,
		SchemaValid:   true,
		SumChecks:     []model.SumCheck{},
		BalanceChecks: []model.BalanceCheck{},
		XRefChecks:    []model.XRefCheck{},
		DiffChecks:    []model.DiffCheck{},
		Findings:      []model.Finding{},
	}

	for _, checker := range r.checkers {
		findings, err := r.runIsolated(checker, doc)
		if err != nil {
			r.logger.Error("checker failed",
				"checker", checker.Name(),
				"error", err)
			report.Findings = append(report.Findings, model.Finding{
				Checker:   checker.Name(),
				PageIndex: 0,
				Reason:    "Checker error: " + err.Error(),
				Severity:  model.SeverityError,
			})
			continue
		}

		report.Findings = append(report.Findings, findings...)
		if checker.Name() == schemaCheckerName && len(findings) > 0 {
			report.SchemaValid = false
		}
		if keeper, ok := checker.(RecordKeeper); ok {
			keeper.Record(report)
		}
	}

	report.TableCellExactness = cellExactness(doc)
	return report
}

// runIsolated runs one checker, converting a panic into an error.
func (r *Runner) runIsolated(c Checker, doc *model.Document) (findings []model.Finding, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			findings = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return c.Check(doc)
}

var anyDigitRe = regexp.MustCompile(`\d`)

// cellExactness aggregates cell-level extraction quality: the share of
// empty cells, and the share of cells that carry digits but did not
// parse to a numeric value.
func cellExactness(doc *model.Document) *model.TableCellExactness {
	total, empty, unparseable := 0, 0, 0
	for _, page := range doc.Pages {
		for _, t := range page.Tables() {
			for _, cell := range t.Cells {
				total++
				trimmed := strings.TrimSpace(cell.TextRaw)
				if trimmed == "" {
					empty++
				}
				if cell.ValueNum == nil && trimmed != "" && anyDigitRe.MatchString(cell.TextRaw) {
					unparseable++
				}
			}
		}
	}

	emptyPct, unparseablePct := 0.0, 0.0
	if total > 0 {
		emptyPct = float64(empty) / float64(total) * 100
		unparseablePct = float64(unparseable) / float64(total) * 100
	}
	return &model.TableCellExactness{
		EmptyCellsPercent:         &emptyPct,
		UnparseableNumbersPercent: &unparseablePct,
	}
}
