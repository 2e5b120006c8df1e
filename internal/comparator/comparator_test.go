package comparator_test

import (
	"testing"

	"judgecore/internal/comparator"
	"judgecore/internal/config"
)

func TestExactMatchIgnoresTrailingWhitespaceAndNewlines(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.ExactMatch("1 2 3\n", "1 2 3  \n\n", cfg)
	if !passed {
		t.Fatalf("expected exact match after normalization")
	}
}

func TestExactMatchCaseSensitiveByDefault(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.ExactMatch("Hello", "hello", cfg)
	if passed {
		t.Fatalf("expected case-sensitive mismatch")
	}
}

func TestExactMatchCaseInsensitive(t *testing.T) {
	cfg := config.Default()
	cfg.CaseSensitive = false
	passed, _ := comparator.ExactMatch("Hello", "hello", cfg)
	if !passed {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestExactMatchLineCountMismatchMessage(t *testing.T) {
	cfg := config.Default()
	passed, msg := comparator.ExactMatch("a\nb", "a", cfg)
	if passed {
		t.Fatalf("expected mismatch")
	}
	if msg == "" {
		t.Errorf("expected a diagnostic message")
	}
}

func TestTokenMatchIgnoresWhitespaceLayout(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.TokenMatch("1  2\t3", "1\n2\n3", cfg)
	if !passed {
		t.Fatalf("expected token match across different whitespace")
	}
}

func TestTokenMatchDetectsMismatch(t *testing.T) {
	cfg := config.Default()
	passed, msg := comparator.TokenMatch("1 2 3", "1 2 4", cfg)
	if passed {
		t.Fatalf("expected mismatch")
	}
	if msg == "" {
		t.Errorf("expected a diagnostic message")
	}
}

func TestFloatMatchWithinTolerance(t *testing.T) {
	cfg := config.Default()
	cfg.FloatTolerance = 1e-3
	passed, _ := comparator.FloatMatch("1.0 2.0005", "1.0001 2.0", cfg)
	if !passed {
		t.Fatalf("expected values within tolerance to match")
	}
}

func TestFloatMatchOutsideTolerance(t *testing.T) {
	cfg := config.Default()
	cfg.FloatTolerance = 1e-6
	passed, msg := comparator.FloatMatch("1.0", "1.1", cfg)
	if passed {
		t.Fatalf("expected mismatch outside tolerance")
	}
	if msg == "" {
		t.Errorf("expected a diagnostic message")
	}
}

func TestFloatMatchUnparseableValue(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.FloatMatch("abc", "1.0", cfg)
	if passed {
		t.Fatalf("expected failure on unparseable expected output")
	}
}

func TestFloatMatchNaNMismatch(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.FloatMatch("1.0", "NaN", cfg)
	if passed {
		t.Fatalf("expected NaN vs a real value to mismatch")
	}
}

func TestFloatMatchNaNBothSidesMatch(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.FloatMatch("NaN", "NaN", cfg)
	if !passed {
		t.Fatalf("expected NaN vs NaN to match")
	}
}

func TestFloatMatchInfSameSignMatches(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.FloatMatch("Inf", "+Inf", cfg)
	if !passed {
		t.Fatalf("expected same-sign infinities to match")
	}
}

func TestFloatMatchInfOppositeSignMismatches(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.FloatMatch("Inf", "-Inf", cfg)
	if passed {
		t.Fatalf("expected opposite-sign infinities to mismatch")
	}
}

func TestFloatMatchInfVsFiniteMismatches(t *testing.T) {
	cfg := config.Default()
	passed, _ := comparator.FloatMatch("Inf", "1.0", cfg)
	if passed {
		t.Fatalf("expected infinity vs a finite value to mismatch")
	}
}

func TestCompareDispatchesByMode(t *testing.T) {
	cases := []struct {
		mode     config.ComparisonMode
		expected string
		actual   string
		want     bool
	}{
		{config.ComparisonExact, "abc\n", "abc", true},
		{config.ComparisonToken, "1 2 3", "1  2  3", true},
		{config.ComparisonFloat, "1.0", "1.0000001", true},
	}
	for _, tc := range cases {
		cfg := config.Default()
		cfg.ComparisonMode = tc.mode
		passed, _, err := comparator.Compare(tc.expected, tc.actual, cfg)
		if err != nil {
			t.Fatalf("mode %s: unexpected error: %v", tc.mode, err)
		}
		if passed != tc.want {
			t.Errorf("mode %s: passed = %v, want %v", tc.mode, passed, tc.want)
		}
	}
}

func TestCompareRejectsSpecialMode(t *testing.T) {
	cfg := config.Default()
	cfg.ComparisonMode = config.ComparisonSpecial
	if _, _, err := comparator.Compare("a", "a", cfg); err == nil {
		t.Fatalf("expected error: special mode must be dispatched via internal/specialjudge")
	}
}
