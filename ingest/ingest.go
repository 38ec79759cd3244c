// Package ingest loads the artifacts the upstream extraction steps
// leave on disk: the page manifest, per-page block and table JSONL
// files, and the OCR quality map. It bundles them into per-page
// extractor outputs ready for merging.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/merge"
	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// Artifact names under a run's input root.
const (
	ManifestFile    = "manifest.json"
	NativeBlocksDir = "blocks_native"
	OCRBlocksDir    = "blocks_ocr"
	TablesDir       = "tables_raw"
	QualityFile     = "ocr_quality.json"
)

// Lines in block JSONL files can hold a full page of OCR text.
const maxJSONLLine = 16 * 1024 * 1024

// PageManifest is one page's geometry and extraction mode as probed
// upstream. Extra probe fields (dpi, coverage ratios) are ignored.
type PageManifest struct {
	PageIndex int            `json:"page_index"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Mode      model.PageMode `json:"mode"`
}

// Manifest describes the probed PDF and its pages.
type Manifest struct {
	PDF   model.PDFInfo  `json:"pdf"`
	Pages []PageManifest `json:"pages"`
}

// LoadManifest reads and parses manifest.json.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// PageFile returns the JSONL file name for a page index, as written by
// the extraction steps.
func PageFile(index int) string {
	return fmt.Sprintf("page_%04d.jsonl", index)
}

// pageIndexFromName parses the page index out of a page_NNNN.jsonl
// file name.
func pageIndexFromName(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "page_")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, ".jsonl")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// LoadBlocks reads every page_NNNN.jsonl under dir, one block per
// line. Pages without a file are simply absent from the result; a
// missing directory yields an empty map.
func LoadBlocks(dir string) (map[int][]*model.Block, error) {
	blocks := make(map[int][]*model.Block)
	err := eachPageFile(dir, func(index int, path string) error {
		return eachLine(path, func(line []byte) error {
			var b model.Block
			if err := json.Unmarshal(line, &b); err != nil {
				return err
			}
			blocks[index] = append(blocks[index], &b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// LoadTables reads every page_NNNN.jsonl under dir, one table per
// line, with the same tolerance as LoadBlocks.
func LoadTables(dir string) (map[int][]*model.Table, error) {
	tables := make(map[int][]*model.Table)
	err := eachPageFile(dir, func(index int, path string) error {
		return eachLine(path, func(line []byte) error {
			var t model.Table
			if err := json.Unmarshal(line, &t); err != nil {
				return err
			}
			tables[index] = append(tables[index], &t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// LoadQuality reads the OCR quality map, keyed by page index. A
// missing file yields an empty map: native-only runs have no OCR
// metrics.
func LoadQuality(path string) (map[int]*model.OCRQuality, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[int]*model.OCRQuality{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read quality map: %w", err)
	}
	var quality map[int]*model.OCRQuality
	if err := json.Unmarshal(data, &quality); err != nil {
		return nil, fmt.Errorf("parse quality map %s: %w", path, err)
	}
	if quality == nil {
		quality = map[int]*model.OCRQuality{}
	}
	return quality, nil
}

// eachPageFile calls fn for every page_NNNN.jsonl directly under dir.
// Other entries are skipped; a missing directory is not an error.
func eachPageFile(dir string, fn func(index int, path string) error) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		index, ok := pageIndexFromName(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := fn(index, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// eachLine calls fn for every non-empty line of a JSONL file.
func eachLine(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}

// Inputs bundles everything a pipeline run reads from disk.
type Inputs struct {
	Manifest     *Manifest
	NativeBlocks map[int][]*model.Block
	OCRBlocks    map[int][]*model.Block
	Tables       map[int][]*model.Table
	Quality      map[int]*model.OCRQuality
}

// Load reads all artifacts under root. The manifest is required; block
// and table directories and the quality map may be absent.
func Load(root string) (*Inputs, error) {
	manifest, err := LoadManifest(filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, err
	}
	native, err := LoadBlocks(filepath.Join(root, NativeBlocksDir))
	if err != nil {
		return nil, err
	}
	ocr, err := LoadBlocks(filepath.Join(root, OCRBlocksDir))
	if err != nil {
		return nil, err
	}
	tables, err := LoadTables(filepath.Join(root, TablesDir))
	if err != nil {
		return nil, err
	}
	quality, err := LoadQuality(filepath.Join(root, QualityFile))
	if err != nil {
		return nil, err
	}
	return &Inputs{
		Manifest:     manifest,
		NativeBlocks: native,
		OCRBlocks:    ocr,
		Tables:       tables,
		Quality:      quality,
	}, nil
}

// PageInputs assembles one merge input per manifest page. Native
// blocks come first, then OCR blocks for the same page; tables are
// attached by page index.
func (in *Inputs) PageInputs() []merge.PageInput {
	pages := make([]merge.PageInput, 0, len(in.Manifest.Pages))
	for _, pm := range in.Manifest.Pages {
		var blocks []*model.Block
		blocks = append(blocks, in.NativeBlocks[pm.PageIndex]...)
		blocks = append(blocks, in.OCRBlocks[pm.PageIndex]...)
		pages = append(pages, merge.PageInput{
			Index:  pm.PageIndex,
			Width:  pm.Width,
			Height: pm.Height,
			Mode:   pm.Mode,
			Blocks: blocks,
			Tables: in.Tables[pm.PageIndex],
		})
	}
	return pages
}
