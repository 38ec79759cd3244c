package qa

import (
	"strings"
	"testing"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

func TestSchemaCheckerAcceptsValidDocument(t *testing.T) {
	doc := makeDoc(
		makePage(0, makeBlock("p0_b0", "Kansilehti"), rowTable("p0_t0", []string{"Tuloslaskelma", "100"})),
		makePage(1, makeBlock("p1_b0", "Sisällysluettelo")),
	)

	c := NewSchemaChecker()
	findings, err := c.Check(doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none", findings)
	}
}

func TestSchemaCheckerFlagsMissingMetadata(t *testing.T) {
	c := NewSchemaChecker()
	findings, err := c.Check(&model.Document{})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	var reasons []string
	for _, f := range findings {
		if f.Severity != model.SeverityError {
			t.Errorf("severity = %q, want error in %+v", f.Severity, f)
		}
		reasons = append(reasons, f.Reason)
	}
	joined := strings.Join(reasons, "; ")
	if !strings.Contains(joined, "Missing PDF metadata") {
		t.Errorf("findings = %v, want missing metadata error", reasons)
	}
	if !strings.Contains(joined, "No pages in document") {
		t.Errorf("findings = %v, want empty document error", reasons)
	}
}

func TestSchemaCheckerFlagsInvalidDimensions(t *testing.T) {
	page := makePage(0, makeBlock("p0_b0", "teksti"))
	page.Width = 0

	c := NewSchemaChecker()
	findings, err := c.Check(makeDoc(page))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want one dimension error", findings)
	}
	if findings[0].Reason != "Invalid page dimensions: 0x842" {
		t.Errorf("reason = %q", findings[0].Reason)
	}
}

func TestSchemaCheckerFlagsContractViolations(t *testing.T) {
	bad := makeBlock("p0_b0", "teksti")
	bad.Confidence = 1.5

	c := NewSchemaChecker()
	findings, err := c.Check(makeDoc(makePage(0, bad)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) == 0 {
		t.Fatal("want at least one schema violation for confidence > 1")
	}
	for _, f := range findings {
		if !strings.HasPrefix(f.Reason, "Schema violation at ") {
			t.Errorf("reason = %q", f.Reason)
		}
		if f.Severity != model.SeverityError {
			t.Errorf("severity = %q, want error", f.Severity)
		}
	}
}

func TestSchemaCheckerCapsFindings(t *testing.T) {
	// Forty bad blocks must not produce forty findings.
	var items []model.Item
	for i := 0; i < 40; i++ {
		b := makeBlock("", "tyhjä tunniste")
		items = append(items, b)
	}

	c := NewSchemaChecker()
	findings, err := c.Check(makeDoc(makePage(0, items...)))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) > maxSchemaFindings {
		t.Errorf("len(findings) = %d, want at most %d", len(findings), maxSchemaFindings)
	}
}
