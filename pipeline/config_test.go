package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "finpipe.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromYAML(t *testing.T) {
	path := writeConfig(t, `
golden_path: snapshots/raisio.json
lenient_bad_page_ratio: 0.35
footer_ratio: 0.88
default_page_offset: 0
notes_min_chars: 300
`)

	cfg, err := FromYAML(path)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}

	if cfg.GoldenPath != "snapshots/raisio.json" {
		t.Errorf("golden path = %q", cfg.GoldenPath)
	}
	if cfg.LenientBadPageRatio != 0.35 {
		t.Errorf("lenient ratio = %v", cfg.LenientBadPageRatio)
	}
	if cfg.Merge.FooterRatio != 0.88 {
		t.Errorf("footer ratio = %v", cfg.Merge.FooterRatio)
	}
	if cfg.Classify.DefaultOffset != 0 {
		t.Errorf("default offset = %d, want explicit 0", cfg.Classify.DefaultOffset)
	}
	if cfg.Classify.NotesMinChars != 300 {
		t.Errorf("notes min chars = %d", cfg.Classify.NotesMinChars)
	}

	// Settings absent from the file keep their defaults.
	def := DefaultConfig()
	if cfg.StrictBadPageRatio != def.StrictBadPageRatio {
		t.Errorf("strict ratio = %v, want default %v", cfg.StrictBadPageRatio, def.StrictBadPageRatio)
	}
	if cfg.Merge.HeaderRatio != def.Merge.HeaderRatio {
		t.Errorf("header ratio = %v, want default %v", cfg.Merge.HeaderRatio, def.Merge.HeaderRatio)
	}
	if cfg.Refine.MinNumericRatio != def.Refine.MinNumericRatio {
		t.Errorf("numeric ratio = %v, want default %v", cfg.Refine.MinNumericRatio, def.Refine.MinNumericRatio)
	}
}

func TestFromYAMLMissingFile(t *testing.T) {
	if _, err := FromYAML(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestFromYAMLMalformed(t *testing.T) {
	path := writeConfig(t, "golden_path: [unterminated")
	if _, err := FromYAML(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestApplyEmptyKeepsDefaults(t *testing.T) {
	var fc FileConfig
	got := fc.Apply(DefaultConfig())
	def := DefaultConfig()

	if got.StrictBadPageRatio != def.StrictBadPageRatio ||
		got.LenientBadPageRatio != def.LenientBadPageRatio ||
		got.GoldenPath != def.GoldenPath {
		t.Errorf("pipeline settings changed: %+v", got)
	}
	if got.Merge != def.Merge {
		t.Errorf("merge settings changed: %+v", got.Merge)
	}
	if got.Classify != def.Classify {
		t.Errorf("classify settings changed: %+v", got.Classify)
	}
	if got.Refine != def.Refine {
		t.Errorf("refine settings changed: %+v", got.Refine)
	}
}
