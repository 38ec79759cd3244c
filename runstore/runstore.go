// Package runstore keeps a history of pipeline runs in a local SQLite
// database, one row per processed document.
package runstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// Store is a handle to the run history database.
type Store struct {
	*sql.DB
	path string
}

// Open opens or creates the run history database at path.
func Open(path string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close() // Close error less important than PRAGMA error
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{DB: sqlDB, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Run is one row of run history.
type Run struct {
	RunID        string
	PDF          string
	Pages        int
	Items        int
	Findings     int
	Errors       int
	Warnings     int
	Infos        int
	SchemaValid  bool
	BadPageRatio float64
	CreatedAt    time.Time
}

// Summarize condenses a finished run into a history row. The row has no
// id or timestamp yet; Insert assigns both.
func Summarize(doc *model.Document, report *model.QAReport, badPageRatio float64) Run {
	errs, warns, infos := report.CountBySeverity()
	return Run{
		PDF:          doc.PDF.Filename,
		Pages:        len(doc.Pages),
		Items:        doc.TotalItems(),
		Findings:     len(report.Findings),
		Errors:       errs,
		Warnings:     warns,
		Infos:        infos,
		SchemaValid:  report.SchemaValid,
		BadPageRatio: badPageRatio,
	}
}

// Insert stores one run, assigning a fresh run id when the row carries
// none, and returns the id. Timestamps are stored as RFC 3339 text so
// lexical order matches time order.
func (s *Store) Insert(run Run) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.Exec(`
		INSERT INTO runs (run_id, pdf, pages, items, findings, errors, warnings, infos,
		                  schema_valid, bad_page_ratio, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.PDF, run.Pages, run.Items, run.Findings, run.Errors, run.Warnings,
		run.Infos, run.SchemaValid, run.BadPageRatio,
		run.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return run.RunID, nil
}

// List retrieves runs ordered newest first. A non-positive limit
// returns all runs.
func (s *Store) List(limit int) ([]Run, error) {
	query := `
		SELECT run_id, pdf, pages, items, findings, errors, warnings, infos,
		       schema_valid, bad_page_ratio, created_at
		FROM runs
		ORDER BY created_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.RunID, &r.PDF, &r.Pages, &r.Items, &r.Findings,
			&r.Errors, &r.Warnings, &r.Infos, &r.SchemaValid, &r.BadPageRatio,
			&createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
