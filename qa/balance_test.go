package qa

import (
	"strings"
	"testing"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

func balanceTable(id string, rows ...[]string) *model.Table {
	t := rowTable(id, rows...)
	t.FinancialType = model.FinBalanceSheet
	return t
}

func TestBalanceSheetCheckerWithinTolerance(t *testing.T) {
	// Tolerance is 0.5% of the larger total: 1000 * 0.005 = 5. A
	// difference of exactly 5 stays inside it.
	table := balanceTable("t0",
		[]string{"Vastaavaa yhteensä", "1000"},
		[]string{"Vastattavaa yhteensä", "995"},
	)

	c := NewBalanceSheetChecker()
	findings, err := c.Check(makeDoc(makePage(10, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none within tolerance", findings)
	}
}

func TestBalanceSheetCheckerWarnsOnMismatch(t *testing.T) {
	table := balanceTable("t0",
		[]string{"Vastaavaa yhteensä", "1000"},
		[]string{"Vastattavaa yhteensä", "990"},
	)

	c := NewBalanceSheetChecker()
	findings, err := c.Check(makeDoc(makePage(10, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one", findings)
	}
	f := findings[0]
	if f.Severity != model.SeverityWarning {
		t.Errorf("severity = %q, want warning below ten times the tolerance", f.Severity)
	}
	if !strings.Contains(f.Reason, "Assets=1000.00") || !strings.Contains(f.Reason, "Difference=10.00") {
		t.Errorf("reason = %q", f.Reason)
	}

	report := &model.QAReport{}
	c.Record(report)
	if len(report.BalanceChecks) != 1 {
		t.Fatalf("balance checks = %+v", report.BalanceChecks)
	}
	bc := report.BalanceChecks[0]
	if bc.Assets != 1000 || bc.Liabilities != 990 || bc.Difference != 10 {
		t.Errorf("record = %+v", bc)
	}
}

func TestBalanceSheetCheckerEscalatesToError(t *testing.T) {
	// Difference 60 exceeds ten times the tolerance (50).
	table := balanceTable("t0",
		[]string{"Vastaavaa yhteensä", "1000"},
		[]string{"Vastattavaa yhteensä", "940"},
	)

	c := NewBalanceSheetChecker()
	findings, err := c.Check(makeDoc(makePage(10, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 1 || findings[0].Severity != model.SeverityError {
		t.Errorf("findings = %+v, want a single error", findings)
	}
}

func TestBalanceSheetCheckerSkipsOtherTables(t *testing.T) {
	table := rowTable("t0",
		[]string{"Vastaavaa yhteensä", "1000"},
		[]string{"Vastattavaa yhteensä", "500"},
	)
	table.FinancialType = model.FinIncomeStatement

	c := NewBalanceSheetChecker()
	findings, err := c.Check(makeDoc(makePage(10, table)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("non-balance table produced findings: %+v", findings)
	}
}

func TestFindBalanceTotalsLastRowWins(t *testing.T) {
	// A continued balance sheet repeats the totals row; the later value
	// is the authoritative one.
	table := balanceTable("t0",
		[]string{"Vastaavaa yhteensä", "900"},
		[]string{"Muut erät", "50"},
		[]string{"Vastaavaa yhteensä", "123", "1000"},
		[]string{"Vastattavaa yhteensä", "1000"},
	)

	assets, liabilities, ok := findBalanceTotals(table)
	if !ok {
		t.Fatal("findBalanceTotals() ok = false")
	}
	if assets != 1000 || liabilities != 1000 {
		t.Errorf("totals = %v, %v, want 1000, 1000", assets, liabilities)
	}
}
