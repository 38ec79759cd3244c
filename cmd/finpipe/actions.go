package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/FoxRav/documents-to-ai-readable-data/export"
	"github.com/FoxRav/documents-to-ai-readable-data/ingest"
	"github.com/FoxRav/documents-to-ai-readable-data/model"
	"github.com/FoxRav/documents-to-ai-readable-data/ocr"
	"github.com/FoxRav/documents-to-ai-readable-data/pipeline"
	"github.com/FoxRav/documents-to-ai-readable-data/qa"
	"github.com/FoxRav/documents-to-ai-readable-data/runstore"
)

// Output file names under the run output directory.
const (
	documentFile = "document.json"
	reportFile   = "qa_report.json"
)

// newLogger builds the process logger from the global flags.
func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.String("log-format"), "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadConfig assembles the pipeline configuration: built-in defaults,
// then the optional settings file, then command flags on top.
func loadConfig(c *cli.Context) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = pipeline.FromYAML(path)
		if err != nil {
			return cfg, err
		}
	}
	if golden := c.String("golden"); golden != "" {
		cfg.GoldenPath = golden
	}
	return cfg, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func runAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	inputs, err := ingest.Load(c.String("in"))
	if err != nil {
		return fmt.Errorf("load artifacts: %w", err)
	}

	res, err := pipeline.NewWithConfig(cfg).Run(
		inputs.Manifest.PDF.Filename, inputs.PageInputs(), inputs.Quality)
	if err != nil {
		return err
	}

	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	docPath := filepath.Join(outDir, documentFile)
	if err := writeJSON(docPath, res.Document); err != nil {
		return err
	}
	reportPath := filepath.Join(outDir, reportFile)
	if err := writeJSON(reportPath, res.Report); err != nil {
		return err
	}

	if c.Bool("save-golden") {
		goldenPath := cfg.GoldenPath
		if goldenPath == "" {
			goldenPath = qa.DefaultGoldenPath
		}
		if err := qa.SaveGolden(res.Document, goldenPath); err != nil {
			return err
		}
		logger.Info("golden snapshot saved", "path", goldenPath)
	}

	if path := c.String("xlsx"); path != "" {
		if err := export.WriteFindingsXLSX(res.Report, path); err != nil {
			return err
		}
		logger.Info("findings workbook written", "path", path)
	}

	if dbPath := c.String("history"); dbPath != "" {
		store, err := runstore.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.Insert(runstore.Summarize(res.Document, res.Report, res.BadPageRatio))
		if err != nil {
			return err
		}
		logger.Info("run recorded", "run_id", id)
	}

	errs, warns, infos := res.Report.CountBySeverity()
	fmt.Printf("%s: %d pages, %d items, bad page ratio %.1f%%\n",
		res.Document.PDF.Filename, len(res.Document.Pages),
		res.Document.TotalItems(), res.BadPageRatio*100)
	fmt.Printf("Findings: %d (%d errors, %d warnings, %d infos), schema valid: %v\n",
		len(res.Report.Findings), errs, warns, infos, res.Report.SchemaValid)
	fmt.Printf("Document: %s\nReport:   %s\n", docPath, reportPath)
	return nil
}

func checkAction(c *cli.Context) error {
	logger := newLogger(c)

	path := c.String("document")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse document %s: %w", path, err)
	}

	runner := qa.NewRunnerWithConfig(qa.Config{
		GoldenPath: c.String("golden"),
		Logger:     logger,
	})
	report := runner.Run(&doc)

	errs, warns, infos := report.CountBySeverity()
	fmt.Printf("%s: schema valid: %v\n", doc.PDF.Filename, report.SchemaValid)
	fmt.Printf("Findings: %d (%d errors, %d warnings, %d infos)\n",
		len(report.Findings), errs, warns, infos)
	for _, f := range report.Findings {
		fmt.Printf("  [%-7s] %-24s p%-3d %s\n", f.Severity, f.Checker, f.PageIndex, f.Reason)
	}

	if errs > 0 {
		os.Exit(1)
	}
	return nil
}

func runsAction(c *cli.Context) error {
	store, err := runstore.Open(c.String("history"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	runs, err := store.List(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-36s %-20s %-28s %6s %6s %4s %4s %4s %-6s %6s\n",
		"Run ID", "Created", "PDF", "Pages", "Items", "Err", "Warn", "Info", "Schema", "Bad%")
	fmt.Println(strings.Repeat("-", 130))
	for _, r := range runs {
		schema := "ok"
		if !r.SchemaValid {
			schema = "FAIL"
		}
		fmt.Printf("%-36s %-20s %-28s %6d %6d %4d %4d %4d %-6s %5.1f%%\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.PDF,
			r.Pages, r.Items, r.Errors, r.Warnings, r.Infos,
			schema,
			r.BadPageRatio*100,
		)
	}
	fmt.Printf("\nTotal: %d runs\n", len(runs))
	return nil
}

func scanAction(c *cli.Context) error {
	logger := newLogger(c)

	client, err := ocr.NewWithConfig(ocr.Config{
		Language:    c.String("lang"),
		PageSegMode: ocr.PSM_SINGLE_BLOCK,
	})
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			return fmt.Errorf("scan needs an OCR-enabled build: %w", err)
		}
		return fmt.Errorf("start OCR engine: %w", err)
	}
	defer client.Close()

	var passes []ocr.PageSegMode
	if c.IsSet("psm") {
		passes = []ocr.PageSegMode{ocr.PageSegMode(c.Int("psm"))}
	}

	imagesDir := c.String("images")
	scans, err := ocr.ScanDir(client, imagesDir, passes...)
	if err != nil {
		return fmt.Errorf("scan %s: %w", imagesDir, err)
	}
	if len(scans) == 0 {
		return fmt.Errorf("no page images found under %s", imagesDir)
	}

	manifest := &ingest.Manifest{
		PDF: model.PDFInfo{
			Filename: filepath.Base(imagesDir) + ".pdf",
			Pages:    len(scans),
		},
	}
	blocks := make(map[int][]*model.Block)
	qualityMap := make(map[int]*model.OCRQuality)
	rejected := 0
	for _, scan := range scans {
		manifest.Pages = append(manifest.Pages, ingest.PageManifest{
			PageIndex: scan.Index,
			Width:     scan.Width,
			Height:    scan.Height,
			Mode:      model.ModeScan,
		})
		q := scan.Quality
		qualityMap[scan.Index] = &q
		if scan.Block != nil {
			blocks[scan.Index] = append(blocks[scan.Index], scan.Block)
		} else {
			rejected++
		}
		logger.Info("page scanned",
			"page", scan.Index,
			"status", scan.Quality.Status,
			"score", scan.Quality.Score,
			"pass", scan.PassUsed)
	}

	outDir := c.String("out")
	if err := ingest.WriteManifest(outDir, manifest); err != nil {
		return err
	}
	if err := ingest.WriteBlocks(filepath.Join(outDir, ingest.OCRBlocksDir), blocks); err != nil {
		return err
	}
	if err := ingest.WriteQuality(filepath.Join(outDir, ingest.QualityFile), qualityMap); err != nil {
		return err
	}

	fmt.Printf("Scanned %d pages into %s (%d below the quality gate)\n",
		len(scans), outDir, rejected)
	return nil
}
