package qa

import (
	"strings"
	"testing"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

func TestSumCheckerFlagsMismatch(t *testing.T) {
	table := rowTable("t0",
		[]string{"Toimintatuotot", "100", "200"},
		[]string{"Toimintakulut yhteensä", "100", "200", "301"},
	)

	c := NewSumChecker()
	findings, err := c.Check(makeDoc(makePage(3, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one", findings)
	}
	f := findings[0]
	if f.Severity != model.SeverityWarning || f.PageIndex != 3 || f.TableID != "t0" {
		t.Errorf("finding = %+v", f)
	}
	if !strings.Contains(f.Reason, "expected 300") || !strings.Contains(f.Reason, "got 301") {
		t.Errorf("reason = %q", f.Reason)
	}

	report := &model.QAReport{}
	c.Record(report)
	if len(report.SumChecks) != 1 {
		t.Fatalf("sum checks = %+v", report.SumChecks)
	}
	sc := report.SumChecks[0]
	if sc.RowOrCol != "row_1" || sc.Expected != 300 || sc.Actual != 301 || sc.Difference != 1 {
		t.Errorf("record = %+v", sc)
	}
}

func TestSumCheckerToleratesRounding(t *testing.T) {
	// 0.01 absolute slack: two-decimal currency rounding never fires.
	table := rowTable("t0",
		[]string{"Yhteensä", "100,00", "200,00", "300,01"},
	)

	c := NewSumChecker()
	findings, err := c.Check(makeDoc(makePage(0, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none at the tolerance boundary", findings)
	}
}

func TestSumCheckerSkipsNonSumRows(t *testing.T) {
	table := rowTable("t0",
		[]string{"Toimintatuotot", "100", "200", "999"},
	)

	c := NewSumChecker()
	findings, err := c.Check(makeDoc(makePage(0, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("non-sum row produced findings: %+v", findings)
	}
}

func TestSumCheckerNeedsTwoNumericValues(t *testing.T) {
	table := rowTable("t0",
		[]string{"Yhteensä", "vain tekstiä", "1000"},
	)

	c := NewSumChecker()
	findings, err := c.Check(makeDoc(makePage(0, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("single numeric value produced findings: %+v", findings)
	}
}

func TestSumCheckerParsesFinnishNumbers(t *testing.T) {
	// Thousand-separator spaces and decimal commas in a real totals row.
	table := rowTable("t0",
		[]string{"Kokonaismäärä", "1 234,50", "765,50", "2 100,00"},
	)

	c := NewSumChecker()
	findings, err := c.Check(makeDoc(makePage(0, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want one (2000 != 2100)", findings)
	}
	if !strings.Contains(findings[0].Reason, "expected 2000") {
		t.Errorf("reason = %q", findings[0].Reason)
	}
}
