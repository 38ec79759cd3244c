// Package ocr turns scanned page images into extraction artifacts: it
// recognizes page text, scores it with the quality metrics, and builds
// the full-page OCR blocks the merger consumes.
//
// The Tesseract engine itself is optional. Builds with the "ocr" tag
// wrap gosseract; default builds get a stub whose constructor returns
// ErrOCRNotEnabled. The scan path works against the Engine interface,
// so any recognizer can drive it.
package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/FoxRav/documents-to-ai-readable-data/format"
	"github.com/FoxRav/documents-to-ai-readable-data/model"
	"github.com/FoxRav/documents-to-ai-readable-data/quality"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine is the recognizer surface the scan path needs. Both the
// Tesseract-backed client and the stub satisfy it.
type Engine interface {
	RecognizeImage(imageData []byte) (string, error)
	SetPageSegMode(mode PageSegMode) error
}

// ocrPasses lists the segmentation modes tried per page, in order:
// uniform block first, then sparse text, then single column. A pass
// whose output clears the noise gate stops the retries.
var ocrPasses = []PageSegMode{PSM_SINGLE_BLOCK, PSM_SPARSE_TEXT, PSM_SINGLE_COLUMN}

// PageScan is the result of recognizing one page image.
type PageScan struct {
	Index  int
	Width  float64
	Height float64

	// Text is the best recognized text across passes and Quality its
	// metrics. PassUsed records which pass produced it (1-based).
	Text     string
	Quality  model.OCRQuality
	PassUsed int

	// Block is the full-page OCR block for the merger, nil when every
	// pass failed the noise gate.
	Block *model.Block
}

// ImageSize returns the pixel dimensions of a page image. PNG and JPEG
// decode via the standard library; the blank imports register TIFF and
// BMP support.
func ImageSize(path string) (width, height float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config %s: %w", path, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// BlockFromText builds the full-page OCR block for recognized page
// text. Confidence carries the quality score of the text.
func BlockFromText(pageIndex int, text string, width, height float64, q model.OCRQuality) *model.Block {
	bbox := model.BBox{X0: 0, Y0: 0, X1: width, Y1: height}
	return &model.Block{
		BlockID:    fmt.Sprintf("p%d_b_ocr_0", pageIndex),
		Type:       model.BlockText,
		Text:       text,
		BBox:       bbox,
		Source:     model.SourceOCR,
		Confidence: q.Score,
	}
}

// ScanImage recognizes one page image, retrying with progressively
// looser segmentation modes while the noise gate rejects the output.
// The best-scoring text across passes wins; when even it fails the
// gate, the scan keeps its quality metrics but carries no block.
// Explicit passes override the default retry ladder.
func ScanImage(eng Engine, path string, pageIndex int, passes ...PageSegMode) (*PageScan, error) {
	if len(passes) == 0 {
		passes = ocrPasses
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if format.DetectFromMagic(data) == format.Unknown {
		return nil, fmt.Errorf("%s: not a supported page image", path)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image config %s: %w", path, err)
	}

	scan := &PageScan{
		Index:  pageIndex,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
	}

	bestScore := -1.0
	for i, mode := range passes {
		if err := eng.SetPageSegMode(mode); err != nil {
			return nil, fmt.Errorf("set segmentation mode %d: %w", mode, err)
		}
		text, err := eng.RecognizeImage(data)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", path, err)
		}

		q := quality.Compute(text)
		if q.Score > bestScore {
			bestScore = q.Score
			scan.Text = text
			scan.Quality = q
			scan.PassUsed = i + 1
		}
		if !quality.Reject(q) {
			scan.Text = text
			scan.Quality = q
			scan.PassUsed = i + 1
			break
		}
	}

	if !quality.Reject(scan.Quality) && scan.Quality.Status != quality.StatusEmpty {
		scan.Block = BlockFromText(pageIndex, scan.Text, scan.Width, scan.Height, scan.Quality)
		pass := scan.PassUsed
		scan.Block.OCRPassUsed = &pass
	}
	return scan, nil
}

// ScanDir recognizes every page image directly under dir, in file name
// order. Page indices follow that order, starting at zero; files
// without a supported image extension are skipped.
func ScanDir(eng Engine, dir string, passes ...PageSegMode) ([]PageScan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !format.IsPageImage(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	scans := make([]PageScan, 0, len(names))
	for i, name := range names {
		scan, err := ScanImage(eng, filepath.Join(dir, name), i, passes...)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *scan)
	}
	return scans, nil
}
