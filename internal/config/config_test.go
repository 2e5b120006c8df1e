package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"judgecore/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.json", `{}`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TimeLimitMs != 5000 {
		t.Errorf("TimeLimitMs = %d, want 5000", cfg.TimeLimitMs)
	}
	if cfg.MemoryLimitKB != 262144 {
		t.Errorf("MemoryLimitKB = %d, want 262144", cfg.MemoryLimitKB)
	}
	if cfg.ComparisonMode != config.ComparisonExact {
		t.Errorf("ComparisonMode = %q, want exact", cfg.ComparisonMode)
	}
	if cfg.FloatTolerance != 1e-6 {
		t.Errorf("FloatTolerance = %v, want 1e-6", cfg.FloatTolerance)
	}
	if !cfg.CaseSensitive || !cfg.IgnoreTrailingWhitespace || !cfg.IgnoreTrailingNewlines || !cfg.PartialScoring {
		t.Errorf("boolean defaults not all true: %+v", cfg)
	}
}

func TestLoadOverridesAndCamelCase(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.json", `{
		"timeLimitMs": 2000,
		"memoryLimitKb": 65536,
		"comparisonMode": "float",
		"floatTolerance": 0.001,
		"caseSensitive": false,
		"testWeights": {"test-1": 2.5, "test-2": 1}
	}`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TimeLimitMs != 2000 {
		t.Errorf("TimeLimitMs = %d, want 2000", cfg.TimeLimitMs)
	}
	if cfg.MemoryLimitKB != 65536 {
		t.Errorf("MemoryLimitKB = %d, want 65536", cfg.MemoryLimitKB)
	}
	if cfg.ComparisonMode != config.ComparisonFloat {
		t.Errorf("ComparisonMode = %q, want float", cfg.ComparisonMode)
	}
	if cfg.FloatTolerance != 0.001 {
		t.Errorf("FloatTolerance = %v, want 0.001", cfg.FloatTolerance)
	}
	if cfg.CaseSensitive {
		t.Errorf("CaseSensitive = true, want false")
	}
	if got := cfg.Weight("test-1"); got != 2.5 {
		t.Errorf("Weight(test-1) = %v, want 2.5", got)
	}
	if got := cfg.Weight("test-2"); got != 1 {
		t.Errorf("Weight(test-2) = %v, want 1", got)
	}
	if got := cfg.Weight("unknown"); got != 1.0 {
		t.Errorf("Weight(unknown) = %v, want default 1.0", got)
	}
}

func TestLoadSpecialJudgeRequiresPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.json", `{"comparison_mode": "special"}`)

	if _, err := config.Load(path); err == nil {
		t.Fatalf("Load: expected error for special mode without special_judge_path")
	}
}

func TestLoadRejectsSpecialPathWithoutMode(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.json", `{"special_judge_path": "/bin/check"}`)

	if _, err := config.Load(path); err == nil {
		t.Fatalf("Load: expected error for special_judge_path set without comparison_mode=special")
	}
}

func TestLoadSpecialJudgeValidPair(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.json", `{"comparison_mode": "special", "special_judge_path": "/bin/check"}`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SpecialJudgePath != "/bin/check" {
		t.Errorf("SpecialJudgePath = %q, want /bin/check", cfg.SpecialJudgePath)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.yaml", "time_limit_ms: 3000\nmemory_limit_kb: 131072\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TimeLimitMs != 3000 || cfg.MemoryLimitKB != 131072 {
		t.Errorf("unexpected cfg from yaml: %+v", cfg)
	}
}
