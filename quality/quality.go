// Package quality computes OCR text-quality metrics and the noise gate
// used to reject unusable OCR output. The metrics travel with each page
// as model.OCRQuality and drive the OCR quality checker and the
// pipeline's bad-page gate.
package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// Quality status values, worst to best.
const (
	StatusEmpty = "empty"
	StatusBad   = "bad"
	StatusPoor  = "poor"
	StatusFair  = "fair"
	StatusGood  = "good"
)

var (
	tokenRe    = regexp.MustCompile(`\S+`)
	wordRe     = regexp.MustCompile(`^[a-zäöå]+`)
	fullWordRe = regexp.MustCompile(`^[a-zäöå]+$`)
	numberRe   = regexp.MustCompile(`^\d+$`)
)

// Compute derives quality metrics from raw OCR page text.
//
// The score weights alphabetic ratio (0.4), junk-token absence (0.3),
// repeat-run absence (0.2) and average word length (0.1). Status is
// "bad" when the longest repeated-character run reaches 10 or the text
// is neither alphabetic nor numeric, then "poor"/"fair"/"good" by score.
func Compute(text string) model.OCRQuality {
	if strings.TrimSpace(text) == "" {
		return model.OCRQuality{Status: StatusEmpty}
	}

	chars := []rune(strings.ReplaceAll(strings.ReplaceAll(text, " ", ""), "\n", ""))
	total := len(chars)
	if total == 0 {
		return model.OCRQuality{Status: StatusEmpty}
	}

	alphaCount, digitCount := 0, 0
	for _, r := range chars {
		if unicode.IsLetter(r) {
			alphaCount++
		}
		if unicode.IsDigit(r) {
			digitCount++
		}
	}
	alphaRatio := float64(alphaCount) / float64(total)
	digitRatio := float64(digitCount) / float64(total)

	repeatRunMax := longestRun(chars)

	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)

	var wordLenSum, wordCount int
	for _, tok := range tokens {
		if wordRe.MatchString(tok) {
			wordLenSum += len([]rune(tok))
			wordCount++
		}
	}
	avgWordLen := 0.0
	if wordCount > 0 {
		avgWordLen = float64(wordLenSum) / float64(wordCount)
	}

	junkCount := 0
	for _, tok := range tokens {
		n := len([]rune(tok))
		if n >= 1 && n <= 3 && !fullWordRe.MatchString(tok) && !numberRe.MatchString(tok) {
			junkCount++
		}
	}
	junkRatio := 0.0
	if len(tokens) > 0 {
		junkRatio = float64(junkCount) / float64(len(tokens))
	}

	score := alphaRatio*0.4 +
		(1.0-math.Min(junkRatio, 1.0))*0.3 +
		(1.0-math.Min(float64(repeatRunMax)/20.0, 1.0))*0.2 +
		math.Min(avgWordLen/10.0, 1.0)*0.1

	var status string
	switch {
	case repeatRunMax >= 10 || (alphaRatio < 0.30 && digitRatio < 0.05):
		status = StatusBad
	case score < 0.5:
		status = StatusPoor
	case score < 0.7:
		status = StatusFair
	default:
		status = StatusGood
	}

	return model.OCRQuality{
		Status:         status,
		Score:          round3(score),
		AlphaRatio:     round3(alphaRatio),
		DigitRatio:     round3(digitRatio),
		RepeatRunMax:   repeatRunMax,
		JunkTokenRatio: round3(junkRatio),
		AvgWordLen:     round2(avgWordLen),
	}
}

// Reject applies the noise gate: true means the OCR output should be
// discarded rather than merged into the document.
func Reject(q model.OCRQuality) bool {
	if q.RepeatRunMax >= 10 {
		return true
	}
	if q.AlphaRatio < 0.30 && q.DigitRatio < 0.05 {
		return true
	}
	return false
}

// longestRun returns the length of the longest run of one repeated rune.
func longestRun(chars []rune) int {
	if len(chars) == 0 {
		return 0
	}
	maxRun, run := 1, 1
	for i := 1; i < len(chars); i++ {
		if chars[i] == chars[i-1] {
			run++
		} else {
			if run > maxRun {
				maxRun = run
			}
			run = 1
		}
	}
	if run > maxRun {
		maxRun = run
	}
	return maxRun
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
