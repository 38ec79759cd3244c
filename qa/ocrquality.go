package qa

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// highNoiseRepeatRun is the repeat_run_max level above which a page is
// flagged as noisy.
const highNoiseRepeatRun = 10

// OCRQualityChecker surfaces pages whose upstream OCR quality metrics
// indicate unusable or noisy text.
type OCRQualityChecker struct{}

// NewOCRQualityChecker creates an OCR quality checker.
func NewOCRQualityChecker() *OCRQualityChecker {
	return &OCRQualityChecker{}
}

// Name identifies the checker in findings.
func (c *OCRQualityChecker) Name() string { return "OCRQualityChecker" }

// Check reports bad-status pages as one warning listing the five worst
// scores, and high-noise pages as one warning listing the first five in
// document order. Pages without quality metrics are skipped.
func (c *OCRQualityChecker) Check(doc *model.Document) ([]model.Finding, error) {
	var findings []model.Finding

	type pageScore struct {
		page  int
		score float64
	}
	var badPages []pageScore
	for _, page := range doc.Pages {
		if page.OCRQuality == nil {
			continue
		}
		if page.OCRQuality.Status == "bad" {
			badPages = append(badPages, pageScore{page: page.PageIndex, score: page.OCRQuality.Score})
		}
	}

	if len(badPages) > 0 {
		sort.SliceStable(badPages, func(i, j int) bool { return badPages[i].score < badPages[j].score })
		worst := badPages
		if len(worst) > 5 {
			worst = worst[:5]
		}
		parts := make([]string, len(worst))
		for i, ps := range worst {
			parts[i] = fmt.Sprintf("(%d, %g)", ps.page, math.Round(ps.score*100)/100)
		}
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: worst[0].page,
			Reason: fmt.Sprintf("%d pages have bad OCR quality. Top 5 worst: [%s]",
				len(badPages), strings.Join(parts, ", ")),
			Severity: model.SeverityWarning,
		})
	}

	type pageNoise struct {
		page      int
		repeatRun int
	}
	var noisyPages []pageNoise
	for _, page := range doc.Pages {
		if page.OCRQuality == nil {
			continue
		}
		if page.OCRQuality.RepeatRunMax >= highNoiseRepeatRun {
			noisyPages = append(noisyPages, pageNoise{page: page.PageIndex, repeatRun: page.OCRQuality.RepeatRunMax})
		}
	}

	if len(noisyPages) > 0 {
		shown := noisyPages
		if len(shown) > 5 {
			shown = shown[:5]
		}
		parts := make([]string, len(shown))
		for i, pn := range shown {
			parts[i] = fmt.Sprintf("(%d, %d)", pn.page, pn.repeatRun)
		}
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: noisyPages[0].page,
			Reason: fmt.Sprintf("%d pages have high noise (repeat_run_max >= 10): [%s]",
				len(noisyPages), strings.Join(parts, ", ")),
			Severity: model.SeverityWarning,
		})
	}

	return findings, nil
}
