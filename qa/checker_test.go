package qa

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeBlock(id, text string) *model.Block {
	return &model.Block{
		BlockID:    id,
		Type:       model.BlockText,
		Text:       text,
		BBox:       model.MustBBox(50, 300, 545, 340),
		Source:     model.SourceNative,
		Confidence: 1.0,
	}
}

func makePage(index int, items ...model.Item) *model.Page {
	return &model.Page{
		PageIndex: index,
		Width:     595,
		Height:    842,
		Mode:      model.ModeNative,
		Items:     items,
	}
}

func makeDoc(pages ...*model.Page) *model.Document {
	return &model.Document{
		PDF:   model.PDFInfo{Filename: "kunta_tilinpaatos_2024.pdf", Pages: len(pages)},
		Pages: pages,
	}
}

// rowTable builds a table from rows of cell texts, one row per slice.
func rowTable(id string, rows ...[]string) *model.Table {
	t := &model.Table{
		TableID: id,
		BBox:    model.MustBBox(50, 100, 545, 700),
		Source:  model.SourceVector,
	}
	for r, row := range rows {
		for c, text := range row {
			t.Cells = append(t.Cells, model.Cell{Row: r, Col: c, TextRaw: text})
		}
	}
	return t
}

type stubChecker struct {
	name     string
	findings []model.Finding
	err      error
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(doc *model.Document) ([]model.Finding, error) {
	return s.findings, s.err
}

type panicChecker struct{}

func (panicChecker) Name() string { return "PanicChecker" }

func (panicChecker) Check(*model.Document) ([]model.Finding, error) {
	panic("index out of range")
}

func findingsFor(report *model.QAReport, checker string) []model.Finding {
	var out []model.Finding
	for _, f := range report.Findings {
		if f.Checker == checker {
			out = append(out, f)
		}
	}
	return out
}

func TestRunnerIsolatesFailingCheckers(t *testing.T) {
	healthy := &stubChecker{
		name: "HealthyChecker",
		findings: []model.Finding{
			{Checker: "HealthyChecker", PageIndex: 1, Reason: "ok", Severity: model.SeverityInfo},
		},
	}
	broken := &stubChecker{name: "BrokenChecker", err: errors.New("checker exploded")}

	runner := NewRunnerWithConfig(Config{
		Checkers: []Checker{broken, panicChecker{}, healthy},
		Logger:   quietLogger(),
	})
	report := runner.Run(makeDoc(makePage(0, makeBlock("b0", "sisältöä"))))

	brokenFindings := findingsFor(report, "BrokenChecker")
	if len(brokenFindings) != 1 || brokenFindings[0].Severity != model.SeverityError {
		t.Fatalf("broken checker findings = %+v", brokenFindings)
	}
	if !strings.Contains(brokenFindings[0].Reason, "checker exploded") {
		t.Errorf("reason = %q, want the checker error", brokenFindings[0].Reason)
	}

	panicFindings := findingsFor(report, "PanicChecker")
	if len(panicFindings) != 1 || panicFindings[0].Severity != model.SeverityError {
		t.Fatalf("panic checker findings = %+v", panicFindings)
	}
	if !strings.Contains(panicFindings[0].Reason, "panic") {
		t.Errorf("reason = %q, want a panic marker", panicFindings[0].Reason)
	}

	if len(findingsFor(report, "HealthyChecker")) != 1 {
		t.Error("healthy checker must still run after failures")
	}
}

func TestRunnerSchemaValidFlag(t *testing.T) {
	t.Run("clean document", func(t *testing.T) {
		runner := NewRunnerWithConfig(Config{
			Checkers: []Checker{NewSchemaChecker()},
			Logger:   quietLogger(),
		})
		report := runner.Run(makeDoc(makePage(0, makeBlock("b0", "sisältöä"))))
		if !report.SchemaValid {
			t.Errorf("schema_valid = false, findings: %+v", report.Findings)
		}
	})

	t.Run("schema findings flip the flag", func(t *testing.T) {
		runner := NewRunnerWithConfig(Config{
			Checkers: []Checker{NewSchemaChecker()},
			Logger:   quietLogger(),
		})
		report := runner.Run(&model.Document{})
		if report.SchemaValid {
			t.Error("schema_valid must be false when the schema checker reports")
		}
	})

	t.Run("other checkers do not affect the flag", func(t *testing.T) {
		noisy := &stubChecker{
			name: "NoisyChecker",
			findings: []model.Finding{
				{Checker: "NoisyChecker", Reason: "warn", Severity: model.SeverityWarning},
			},
		}
		runner := NewRunnerWithConfig(Config{Checkers: []Checker{noisy}, Logger: quietLogger()})
		report := runner.Run(makeDoc(makePage(0, makeBlock("b0", "x"))))
		if !report.SchemaValid {
			t.Error("non-schema findings must not flip schema_valid")
		}
	})
}

func TestRunnerCellExactness(t *testing.T) {
	value := 1234.56
	table := &model.Table{
		TableID: "t0",
		BBox:    model.MustBBox(50, 100, 545, 700),
		Source:  model.SourceVector,
		Cells: []model.Cell{
			{Row: 0, Col: 0, TextRaw: "Toimintatuotot"},
			{Row: 0, Col: 1, TextRaw: "1234.56", ValueNum: &value},
			{Row: 1, Col: 0, TextRaw: ""},
			{Row: 1, Col: 1, TextRaw: "n. 500 asukasta"},
		},
	}

	runner := NewRunnerWithConfig(Config{Checkers: []Checker{}, Logger: quietLogger()})
	report := runner.Run(makeDoc(makePage(0, table)))

	e := report.TableCellExactness
	if e == nil || e.EmptyCellsPercent == nil || e.UnparseableNumbersPercent == nil {
		t.Fatalf("exactness = %+v", e)
	}
	if *e.EmptyCellsPercent != 25.0 {
		t.Errorf("empty = %v, want 25", *e.EmptyCellsPercent)
	}
	if *e.UnparseableNumbersPercent != 25.0 {
		t.Errorf("unparseable = %v, want 25", *e.UnparseableNumbersPercent)
	}
}

func TestRunnerRecordKeepers(t *testing.T) {
	assets := rowTable("t0",
		[]string{"Pysyvät vastaavat", "800", "900"},
		[]string{"Vastaavaa yhteensä", "1000"},
		[]string{"Vastattavaa yhteensä", "990"},
	)
	assets.FinancialType = model.FinBalanceSheet
	page := makePage(0, assets)
	page.SetSection(model.SectionBalanceSheet, 0.9)

	runner := NewRunnerWithConfig(Config{
		Checkers: []Checker{NewBalanceSheetChecker()},
		Logger:   quietLogger(),
	})
	report := runner.Run(makeDoc(page))

	if len(report.BalanceChecks) != 1 {
		t.Fatalf("balance checks = %+v", report.BalanceChecks)
	}
	bc := report.BalanceChecks[0]
	if bc.Assets != 1000 || bc.Liabilities != 990 || bc.Difference != 10 {
		t.Errorf("record = %+v", bc)
	}
}

func TestDefaultCheckersOrder(t *testing.T) {
	checkers := DefaultCheckers("")
	want := []string{
		"SchemaChecker",
		"SumChecker",
		"SemanticSectionChecker",
		"OCRQualityChecker",
		"BalanceSheetChecker",
		"CrossRefChecker",
		"DiffChecker",
	}
	if len(checkers) != len(want) {
		t.Fatalf("got %d checkers, want %d", len(checkers), len(want))
	}
	for i, c := range checkers {
		if c.Name() != want[i] {
			t.Errorf("checker %d = %q, want %q", i, c.Name(), want[i])
		}
	}
}
