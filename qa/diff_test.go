package qa

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

func TestDiffCheckerSkipsWithoutGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden", "document.json")
	c := NewDiffChecker(path)
	c.Logger = quietLogger()

	findings, err := c.Check(makeDoc(makePage(0, makeBlock("b0", "teksti"))))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want the single skip notice", findings)
	}
	f := findings[0]
	if f.Severity != model.SeverityInfo {
		t.Errorf("severity = %q, want info", f.Severity)
	}
	if !strings.Contains(f.Reason, "No golden file found at") || !strings.Contains(f.Reason, "regression check skipped") {
		t.Errorf("reason = %q", f.Reason)
	}
}

func TestDiffCheckerGoldenRoundTrip(t *testing.T) {
	doc := makeDoc(
		makePage(0, makeBlock("p0_b0", "Kansilehti")),
		makePage(1, makeBlock("p1_b0", "Sisällysluettelo"), rowTable("p1_t0", []string{"Tuloslaskelma", "3"})),
	)

	path := filepath.Join(t.TempDir(), "golden", "document.json")
	if err := SaveGolden(doc, path); err != nil {
		t.Fatalf("SaveGolden() error = %v", err)
	}

	c := NewDiffChecker(path)
	c.Logger = quietLogger()
	findings, err := c.Check(doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want only the completion summary", findings)
	}
	f := findings[0]
	if f.Severity != model.SeverityInfo {
		t.Errorf("severity = %q, want info", f.Severity)
	}
	want := "Diff check completed: 2 pages (golden: 2), 0 page(s) with item count changes"
	if f.Reason != want {
		t.Errorf("reason = %q\nwant      %q", f.Reason, want)
	}
}

func TestDiffCheckerFlagsItemCountChange(t *testing.T) {
	golden := makeDoc(
		makePage(0, makeBlock("p0_b0", "Kansilehti"), makeBlock("p0_b1", "Kunta")),
	)
	path := filepath.Join(t.TempDir(), "document.json")
	if err := SaveGolden(golden, path); err != nil {
		t.Fatalf("SaveGolden() error = %v", err)
	}

	current := makeDoc(makePage(0, makeBlock("p0_b0", "Kansilehti")))
	c := NewDiffChecker(path)
	c.Logger = quietLogger()
	findings, err := c.Check(current)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	var warning *model.Finding
	for i := range findings {
		if findings[i].Severity == model.SeverityWarning {
			warning = &findings[i]
		}
	}
	if warning == nil {
		t.Fatalf("findings = %+v, want an item count warning", findings)
	}
	if !strings.Contains(warning.Reason, "Item count changed on 1 pages") || !strings.Contains(warning.Reason, "p0:1->2") {
		t.Errorf("reason = %q", warning.Reason)
	}

	report := &model.QAReport{}
	c.Record(report)
	if len(report.DiffChecks) != 1 {
		t.Fatalf("diff checks = %+v", report.DiffChecks)
	}
	if report.DiffChecks[0].Differences != "items 1 -> 2" {
		t.Errorf("record = %+v", report.DiffChecks[0])
	}
}

func TestDiffCheckerFlagsTypeDistributionChange(t *testing.T) {
	goldenBlock := makeBlock("p0_b0", "TASE")
	golden := makeDoc(makePage(0, goldenBlock))
	path := filepath.Join(t.TempDir(), "document.json")
	if err := SaveGolden(golden, path); err != nil {
		t.Fatalf("SaveGolden() error = %v", err)
	}

	currentBlock := makeBlock("p0_b0", "TASE")
	currentBlock.FinancialType = model.FinBalanceSheet
	current := makeDoc(makePage(0, currentBlock))

	c := NewDiffChecker(path)
	c.Logger = quietLogger()
	findings, err := c.Check(current)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	found := false
	for _, f := range findings {
		if strings.Contains(f.Reason, "Financial type distribution changed") {
			found = true
			if f.Severity != model.SeverityWarning {
				t.Errorf("severity = %q, want warning", f.Severity)
			}
		}
	}
	if !found {
		t.Errorf("findings = %+v, want a type distribution warning", findings)
	}
}
