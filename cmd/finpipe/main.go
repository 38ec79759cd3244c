// Command finpipe reconstructs Finnish municipal financial reports
// from per-page extraction artifacts and validates the result: it
// merges blocks and tables into reading order, classifies the
// financial statements, normalizes numbers, and runs the QA checker
// suite.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "finpipe",
		Usage: "reconstruct and validate municipal financial report PDFs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML settings file overriding the built-in thresholds",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "text",
				Usage: "log output format: text or json",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "log errors only",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "process extraction artifacts into a validated document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Required: true, Usage: "artifact directory (manifest.json, blocks, tables)"},
					&cli.StringFlag{Name: "out", Required: true, Usage: "output directory for document.json and qa_report.json"},
					&cli.StringFlag{Name: "golden", Usage: "golden snapshot path for the regression diff"},
					&cli.BoolFlag{Name: "save-golden", Usage: "save this run's document as the golden snapshot"},
					&cli.StringFlag{Name: "xlsx", Usage: "also write a findings workbook to this path"},
					&cli.StringFlag{Name: "history", Usage: "record the run in this SQLite database"},
				},
				Action: runAction,
			},
			{
				Name:  "check",
				Usage: "run the QA checkers against an existing document.json",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "document", Required: true, Usage: "document.json to check"},
					&cli.StringFlag{Name: "golden", Usage: "golden snapshot path for the regression diff"},
				},
				Action: checkAction,
			},
			{
				Name:  "runs",
				Usage: "list recorded runs, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "history", Required: true, Usage: "run history database"},
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum rows to show"},
				},
				Action: runsAction,
			},
			{
				Name:  "scan",
				Usage: "OCR a directory of page images into extraction artifacts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "images", Required: true, Usage: "directory of rendered page images"},
					&cli.StringFlag{Name: "out", Required: true, Usage: "artifact output directory"},
					&cli.StringFlag{Name: "lang", Value: "fin+eng", Usage: "tesseract language codes"},
					&cli.IntFlag{Name: "psm", Usage: "use a single page segmentation mode instead of the retry ladder"},
				},
				Action: scanAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
