package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML view of the tunable pipeline settings. Only
// thresholds an operator plausibly adjusts per municipality are
// exposed; zero values leave the compiled-in defaults untouched.
type FileConfig struct {
	GoldenPath          string  `yaml:"golden_path"`
	StrictBadPageRatio  float64 `yaml:"strict_bad_page_ratio"`
	LenientBadPageRatio float64 `yaml:"lenient_bad_page_ratio"`

	HeaderRatio     float64 `yaml:"header_ratio"`
	FooterRatio     float64 `yaml:"footer_ratio"`
	ColumnSpanRatio float64 `yaml:"column_span_ratio"`

	// DefaultPageOffset is a pointer because 0 is a valid offset.
	DefaultPageOffset *int `yaml:"default_page_offset"`
	NotesMinChars     int  `yaml:"notes_min_chars"`

	MinNumericRatio float64 `yaml:"min_numeric_ratio"`
}

// FromYAML reads a YAML settings file and returns DefaultConfig merged
// with the file.
func FromYAML(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc.Apply(cfg), nil
}

// Apply overlays the file settings onto cfg and returns the result.
func (fc *FileConfig) Apply(cfg Config) Config {
	if fc.GoldenPath != "" {
		cfg.GoldenPath = fc.GoldenPath
	}
	if fc.StrictBadPageRatio > 0 {
		cfg.StrictBadPageRatio = fc.StrictBadPageRatio
	}
	if fc.LenientBadPageRatio > 0 {
		cfg.LenientBadPageRatio = fc.LenientBadPageRatio
	}
	if fc.HeaderRatio > 0 {
		cfg.Merge.HeaderRatio = fc.HeaderRatio
	}
	if fc.FooterRatio > 0 {
		cfg.Merge.FooterRatio = fc.FooterRatio
	}
	if fc.ColumnSpanRatio > 0 {
		cfg.Merge.ColumnSpanRatio = fc.ColumnSpanRatio
	}
	if fc.DefaultPageOffset != nil {
		cfg.Classify.DefaultOffset = *fc.DefaultPageOffset
	}
	if fc.NotesMinChars > 0 {
		cfg.Classify.NotesMinChars = fc.NotesMinChars
	}
	if fc.MinNumericRatio > 0 {
		cfg.Refine.MinNumericRatio = fc.MinNumericRatio
	}
	return cfg
}
