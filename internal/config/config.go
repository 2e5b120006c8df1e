// Package config holds the ProblemConfig value object (spec §3) and its
// flexible-document loader.
package config

import (
	"encoding/json"
	"fmt"

	"judgecore/internal/document"
)

// ComparisonMode selects the Comparator Suite policy for a problem.
type ComparisonMode string

const (
	ComparisonExact   ComparisonMode = "exact"
	ComparisonToken   ComparisonMode = "token"
	ComparisonFloat   ComparisonMode = "float"
	ComparisonSpecial ComparisonMode = "special"
)

// ProblemConfig is a value object created once per submission and immutable
// thereafter.
type ProblemConfig struct {
	TimeLimitMs              int64
	MemoryLimitKB            int64
	ComparisonMode           ComparisonMode
	FloatTolerance           float64
	SpecialJudgePath         string
	CaseSensitive            bool
	IgnoreTrailingWhitespace bool
	IgnoreTrailingNewlines   bool
	PartialScoring           bool
	TestWeights              map[string]float64
}

// Default returns a ProblemConfig populated with spec §3's defaults.
func Default() ProblemConfig {
	return ProblemConfig{
		TimeLimitMs:              5000,
		MemoryLimitKB:            262144,
		ComparisonMode:           ComparisonExact,
		FloatTolerance:           1e-6,
		CaseSensitive:            true,
		IgnoreTrailingWhitespace: true,
		IgnoreTrailingNewlines:   true,
		PartialScoring:           true,
		TestWeights:              map[string]float64{},
	}
}

// Weight returns the configured weight for a test id, defaulting to 1.0
// when absent.
func (c ProblemConfig) Weight(testID string) float64 {
	if w, ok := c.TestWeights[testID]; ok && w > 0 {
		return w
	}
	return 1.0
}

// Validate checks the invariant of spec §3:
// comparison_mode = special ⇔ special_judge_path is set.
func (c ProblemConfig) Validate() error {
	if c.ComparisonMode == ComparisonSpecial && c.SpecialJudgePath == "" {
		return fmt.Errorf("comparison_mode=special requires special_judge_path")
	}
	if c.ComparisonMode != ComparisonSpecial && c.SpecialJudgePath != "" {
		return fmt.Errorf("special_judge_path set without comparison_mode=special")
	}
	return nil
}

// Load reads a problem-config document, accepting snake_case or camelCase
// field names (spec §6), and applies defaults for absent fields.
func Load(path string) (ProblemConfig, error) {
	v, err := document.DecodeAny(path)
	if err != nil {
		return ProblemConfig{}, err
	}
	m, ok := document.AsMap(v)
	if !ok {
		return ProblemConfig{}, fmt.Errorf("invalid problem-config document: expected an object")
	}

	cfg := Default()
	if n, ok := document.Number(m, "time_limit_ms"); ok && n > 0 {
		cfg.TimeLimitMs = int64(n)
	}
	if n, ok := document.Number(m, "memory_limit_kb"); ok && n > 0 {
		cfg.MemoryLimitKB = int64(n)
	}
	if s := document.Str(m, "comparison_mode"); s != "" {
		cfg.ComparisonMode = ComparisonMode(s)
	}
	if n, ok := document.Number(m, "float_tolerance"); ok && n > 0 {
		cfg.FloatTolerance = n
	}
	cfg.SpecialJudgePath = document.Str(m, "special_judge_path")
	cfg.CaseSensitive = document.Bool(m, "case_sensitive", cfg.CaseSensitive)
	cfg.IgnoreTrailingWhitespace = document.Bool(m, "ignore_trailing_whitespace", cfg.IgnoreTrailingWhitespace)
	cfg.IgnoreTrailingNewlines = document.Bool(m, "ignore_trailing_newlines", cfg.IgnoreTrailingNewlines)
	cfg.PartialScoring = document.Bool(m, "partial_scoring", cfg.PartialScoring)

	if weights, ok := m["test_weights"].(map[string]any); ok {
		cfg.TestWeights = make(map[string]float64, len(weights))
		for id, val := range weights {
			switch n := val.(type) {
			case json.Number:
				if f, err := n.Float64(); err == nil {
					cfg.TestWeights[id] = f
				}
			case float64:
				cfg.TestWeights[id] = n
			case int:
				cfg.TestWeights[id] = float64(n)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return ProblemConfig{}, err
	}
	return cfg, nil
}
