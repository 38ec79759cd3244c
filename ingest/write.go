package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// WriteManifest writes manifest.json under root, creating the
// directory as needed.
func WriteManifest(root string, m *Manifest) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create input root: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(root, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// WriteBlocks writes one page_NNNN.jsonl per page under dir, one block
// per line. Pages without blocks get no file.
func WriteBlocks(dir string, blocks map[int][]*model.Block) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	for index, pageBlocks := range blocks {
		lines := make([][]byte, 0, len(pageBlocks))
		for _, b := range pageBlocks {
			line, err := json.Marshal(b)
			if err != nil {
				return fmt.Errorf("marshal block %s: %w", b.BlockID, err)
			}
			lines = append(lines, line)
		}
		if err := writeLines(filepath.Join(dir, PageFile(index)), lines); err != nil {
			return err
		}
	}
	return nil
}

// WriteTables writes one page_NNNN.jsonl per page under dir, one table
// per line.
func WriteTables(dir string, tables map[int][]*model.Table) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	for index, pageTables := range tables {
		lines := make([][]byte, 0, len(pageTables))
		for _, t := range pageTables {
			line, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("marshal table %s: %w", t.TableID, err)
			}
			lines = append(lines, line)
		}
		if err := writeLines(filepath.Join(dir, PageFile(index)), lines); err != nil {
			return err
		}
	}
	return nil
}

// WriteQuality writes the OCR quality map keyed by page index.
func WriteQuality(path string, quality map[int]*model.OCRQuality) error {
	data, err := json.MarshalIndent(quality, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quality map: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write quality map: %w", err)
	}
	return nil
}

// writeLines writes JSONL content, one record per line.
func writeLines(path string, lines [][]byte) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
