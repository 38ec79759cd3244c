package qa

import (
	"strings"
	"testing"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

func sectionPage(index int, section string) *model.Page {
	p := makePage(index, makeBlock("b", "sivun sisältö"))
	if section != "" {
		p.SetSection(section, 0.9)
	}
	return p
}

func TestSemanticSectionCheckerMiniRun(t *testing.T) {
	// Five pages or fewer only need the front matter.
	doc := makeDoc(
		sectionPage(0, model.SectionCover),
		sectionPage(1, model.SectionTOC),
		sectionPage(2, model.SectionNotes),
	)

	c := NewSemanticSectionChecker()
	findings, err := c.Check(doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none", findings)
	}
}

func TestSemanticSectionCheckerMiniRunMissingTOC(t *testing.T) {
	doc := makeDoc(
		sectionPage(0, model.SectionCover),
		sectionPage(1, model.SectionNotes),
	)

	c := NewSemanticSectionChecker()
	findings, err := c.Check(doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want one warning", findings)
	}
	f := findings[0]
	if f.Severity != model.SeverityWarning {
		t.Errorf("severity = %q, want warning", f.Severity)
	}
	if !strings.HasPrefix(f.Reason, "Mini-run missing required sections: [toc]") {
		t.Errorf("reason = %q", f.Reason)
	}
	if !strings.Contains(f.Reason, "Found: [cover notes]") {
		t.Errorf("reason = %q, want sorted found list", f.Reason)
	}
}

func TestSemanticSectionCheckerFullRun(t *testing.T) {
	pages := []*model.Page{
		sectionPage(0, model.SectionCover),
		sectionPage(1, model.SectionTOC),
		sectionPage(2, model.SectionManagementReport),
		sectionPage(3, model.SectionIncomeStatement),
		sectionPage(4, model.SectionBalanceSheet),
		sectionPage(5, model.SectionNotes),
	}
	doc := makeDoc(pages...)

	c := NewSemanticSectionChecker()
	findings, err := c.Check(doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none", findings)
	}
}

func TestSemanticSectionCheckerFullRunMissingStatements(t *testing.T) {
	pages := make([]*model.Page, 0, 6)
	for i := 0; i < 6; i++ {
		pages = append(pages, sectionPage(i, model.SectionNotes))
	}
	doc := makeDoc(pages...)

	c := NewSemanticSectionChecker()
	findings, err := c.Check(doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want one warning", findings)
	}
	if !strings.HasPrefix(findings[0].Reason, "Full-run missing required sections: [balance_sheet income_statement]") {
		t.Errorf("reason = %q", findings[0].Reason)
	}
}

func TestSemanticSectionCheckerReportsUntaggedPages(t *testing.T) {
	doc := makeDoc(
		sectionPage(0, model.SectionCover),
		sectionPage(1, model.SectionTOC),
		sectionPage(2, ""),
		sectionPage(3, ""),
	)

	c := NewSemanticSectionChecker()
	findings, err := c.Check(doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want one info", findings)
	}
	f := findings[0]
	if f.Severity != model.SeverityInfo || f.PageIndex != 2 {
		t.Errorf("finding = %+v", f)
	}
	if f.Reason != "2 pages have null semantic_section: [2 3]" {
		t.Errorf("reason = %q", f.Reason)
	}
}
