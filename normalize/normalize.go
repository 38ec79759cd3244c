// Package normalize converts raw extracted text into canonical form:
// locale-aware number parsing for table cells and whitespace/hyphen
// cleanup for text. Both operations are idempotent.
//
// ParseNumber is the single shared number parser. The QA checkers
// (sum, balance sheet) parse row values through it as well, so its
// behavior (parentheses as negative, unit stripping before digit
// extraction, decimal-comma conversion) is load-bearing for checker
// correctness and must not drift.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

var (
	numberRe   = regexp.MustCompile(`-?\d+\.?\d*`)
	spaceRunRe = regexp.MustCompile(` +`)
	newlineRe  = regexp.MustCompile(`\n{3,}`)
)

// ParseNumber parses a Finnish-locale numeric value from raw cell text.
// Returns false when the text contains no extractable number.
func ParseNumber(text string) (float64, bool) {
	v, _, ok := ParseNumberUnit(text)
	return v, ok
}

// ParseNumberUnit is ParseNumber plus the detected unit marker ("€" or
// "%", "" when absent). Thousand-separator spaces are removed, decimal
// commas become dots, and a value wrapped in parentheses is negative.
func ParseNumberUnit(text string) (float64, string, bool) {
	if strings.TrimSpace(text) == "" {
		return 0, "", false
	}

	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	unit := ""
	switch {
	case strings.Contains(s, "€"):
		unit = "€"
		s = strings.ReplaceAll(s, "€", "")
	case strings.Contains(s, "%"):
		unit = "%"
		s = strings.ReplaceAll(s, "%", "")
	}

	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = s[1 : len(s)-1]
	}

	match := numberRe.FindString(s)
	if match == "" {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, "", false
	}
	if negative {
		v = -v
	}
	return v, unit, true
}

// Text normalizes extracted text: NFC-fold combining diacritics (OCR
// sometimes emits decomposed ä/ö, which would defeat downstream keyword
// matching), drop soft hyphens, collapse space runs, collapse 3+
// newlines to two, trim surrounding whitespace.
func Text(s string) string {
	s = norm.NFC.String(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "­", "")
	s = newlineRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Document normalizes every block text and every table cell in place.
// Cell values and units are re-derived from the normalized text; cells
// without an extractable number get a nil value.
func Document(doc *model.Document) {
	for _, page := range doc.Pages {
		for _, item := range page.Items {
			switch v := item.(type) {
			case *model.Table:
				for i := range v.Cells {
					cell := &v.Cells[i]
					cell.TextRaw = Text(cell.TextRaw)
					if num, unit, ok := ParseNumberUnit(cell.TextRaw); ok {
						cell.ValueNum = &num
						cell.Unit = unit
					} else {
						cell.ValueNum = nil
						cell.Unit = ""
					}
				}
			case *model.Block:
				v.Text = Text(v.Text)
			}
		}
	}
}
