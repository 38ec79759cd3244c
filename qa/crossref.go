package qa

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// Reference patterns, Finnish first. A "ks. liite N" mention also
// matches the bare liite pattern, so it counts as two hits.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`liite\s*(\d+)`),
	regexp.MustCompile(`liitetieto\s*(\d+)`),
	regexp.MustCompile(`ks\.\s*liite\s*(\d+)`),
	regexp.MustCompile(`note\s*(\d+)`),
	regexp.MustCompile(`see\s+note\s*(\d+)`),
}

// Note header patterns for the notes section itself. The numbered-line
// pattern anchors to the start of the block text only.
var notePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+)\.`),
	regexp.MustCompile(`liite\s*(\d+)`),
	regexp.MustCompile(`liitetieto\s*(\d+)`),
	regexp.MustCompile(`note\s*(\d+)`),
}

// noteRef is one mention of a note, e.g. "liite 5" or "see note 3".
type noteRef struct {
	text string
	num  int
}

// CrossRefChecker verifies that note references in the main sections
// ("Liite 5", "Note 3") resolve to a numbered note in the notes section.
type CrossRefChecker struct {
	checks []model.XRefCheck
}

// NewCrossRefChecker creates a note cross-reference checker.
func NewCrossRefChecker() *CrossRefChecker {
	return &CrossRefChecker{}
}

// Name identifies the checker in findings.
func (c *CrossRefChecker) Name() string { return "CrossRefChecker" }

// Check resolves every note reference outside the notes section against
// the note numbers present inside it. References within the notes
// section are not checked. With no notes section at all the check is
// skipped with a single info finding.
func (c *CrossRefChecker) Check(doc *model.Document) ([]model.Finding, error) {
	var findings []model.Finding
	c.checks = c.checks[:0]

	existing := notesSectionNumbers(doc)
	if len(existing) == 0 {
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason:    "No notes section found in document - cross-reference check skipped",
			Severity:  model.SeverityInfo,
		})
		return findings, nil
	}

	type occurrence struct {
		page int
		text string
	}
	references := make(map[int][]occurrence)
	var order []int

	for _, page := range doc.Pages {
		if page.Section() == model.SectionNotes {
			continue
		}
		for _, b := range page.Blocks() {
			for _, ref := range extractNoteReferences(b.Text) {
				if _, seen := references[ref.num]; !seen {
					order = append(order, ref.num)
				}
				references[ref.num] = append(references[ref.num], occurrence{page: page.PageIndex, text: ref.text})
			}
		}
	}

	var missing []int
	for _, num := range order {
		occurrences := references[num]
		first := occurrences[0]
		_, found := existing[num]

		severity := model.SeverityInfo
		if !found {
			severity = model.SeverityWarning
			missing = append(missing, num)
			findings = append(findings, model.Finding{
				Checker:   c.Name(),
				PageIndex: first.page,
				Reason: fmt.Sprintf(
					"Cross-reference '%s' (note %d) not found in notes section. Referenced %d time(s) in document.",
					first.text, num, len(occurrences)),
				Severity: model.SeverityWarning,
			})
		}
		c.checks = append(c.checks, model.XRefCheck{
			Reference:    first.text,
			FoundInMain:  true,
			FoundInNotes: found,
			Severity:     severity,
		})
	}

	if len(references) > 0 {
		missingDisplay := "none"
		if len(missing) > 0 {
			sort.Ints(missing)
			missingDisplay = fmt.Sprintf("%v", missing)
		}
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason: fmt.Sprintf(
				"Cross-reference summary: %d/%d references validated. Missing: %s",
				len(references)-len(missing), len(references), missingDisplay),
			Severity: model.SeverityInfo,
		})
	}

	return findings, nil
}

// Record appends the reference resolutions from the last Check.
func (c *CrossRefChecker) Record(report *model.QAReport) {
	report.XRefChecks = append(report.XRefChecks, c.checks...)
}

// extractNoteReferences finds note mentions in the text. Overlapping
// patterns report the same mention more than once.
func extractNoteReferences(text string) []noteRef {
	lower := strings.ToLower(text)
	var refs []noteRef
	for _, re := range referencePatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			num, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			refs = append(refs, noteRef{text: m[0], num: num})
		}
	}
	return refs
}

// notesSectionNumbers collects the note numbers declared on pages
// classified as the notes section.
func notesSectionNumbers(doc *model.Document) map[int]struct{} {
	numbers := make(map[int]struct{})
	for _, page := range doc.Pages {
		if page.Section() != model.SectionNotes {
			continue
		}
		for _, b := range page.Blocks() {
			lower := strings.ToLower(b.Text)
			for _, re := range notePatterns {
				for _, m := range re.FindAllStringSubmatch(lower, -1) {
					if num, err := strconv.Atoi(m[1]); err == nil {
						numbers[num] = struct{}{}
					}
				}
			}
		}
	}
	return numbers
}
