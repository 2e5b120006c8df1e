package main

import "testing"

func TestResolveConfigDefaultsToExact(t *testing.T) {
	cfg, err := resolveConfig(runConfig{comparisonMode: "exact", tolerance: 1e-6})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.ComparisonMode != "exact" {
		t.Errorf("ComparisonMode = %s, want exact", cfg.ComparisonMode)
	}
	if !cfg.CaseSensitive {
		t.Errorf("CaseSensitive = false, want true by default")
	}
}

func TestResolveConfigCaseInsensitiveFlag(t *testing.T) {
	cfg, err := resolveConfig(runConfig{comparisonMode: "token", tolerance: 1e-6, caseInsensitive: true})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.CaseSensitive {
		t.Errorf("CaseSensitive = true, want false with --case-insensitive")
	}
}

func TestResolveConfigSpecialJudgePathImpliesSpecialMode(t *testing.T) {
	cfg, err := resolveConfig(runConfig{comparisonMode: "exact", specialJudgePath: "/bin/true"})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.ComparisonMode != "special" {
		t.Errorf("ComparisonMode = %s, want special", cfg.ComparisonMode)
	}
}

func TestResolveConfigProblemConfigOverridesFlags(t *testing.T) {
	_, err := resolveConfig(runConfig{problemConfigPath: "/nonexistent/path.json", comparisonMode: "exact"})
	if err == nil {
		t.Errorf("expected error loading a nonexistent problem-config path")
	}
}
