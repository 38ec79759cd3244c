package runstore

const schema = `
-- Run history: one row per pipeline run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    pdf TEXT NOT NULL,
    pages INTEGER NOT NULL,
    items INTEGER NOT NULL,
    findings INTEGER NOT NULL,
    errors INTEGER NOT NULL,
    warnings INTEGER NOT NULL,
    infos INTEGER NOT NULL,
    schema_valid BOOLEAN NOT NULL,
    bad_page_ratio REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_pdf ON runs(pdf);
`
