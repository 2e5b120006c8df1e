// Package comparator implements the output comparison rules of the
// Comparator Suite: exact, token, and float matching, all built on a shared
// normalization pass.
package comparator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"judgecore/internal/config"
)

// Normalize applies the configured whitespace/case normalization to a
// captured output before comparison.
func Normalize(text string, cfg config.ProblemConfig) string {
	out := text

	if cfg.IgnoreTrailingWhitespace {
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t\r")
		}
		out = strings.Join(lines, "\n")
	}

	if cfg.IgnoreTrailingNewlines {
		out = strings.TrimRight(out, "\n")
	}

	if !cfg.CaseSensitive {
		out = strings.ToLower(out)
	}

	return out
}

// ExactMatch compares two outputs line-for-line after normalization.
func ExactMatch(expected, actual string, cfg config.ProblemConfig) (bool, string) {
	normExpected := Normalize(expected, cfg)
	normActual := Normalize(actual, cfg)

	if normExpected == normActual {
		return true, "output matches expected"
	}

	expLines := strings.Split(normExpected, "\n")
	actLines := strings.Split(normActual, "\n")

	if len(expLines) != len(actLines) {
		return false, fmt.Sprintf("line count mismatch: expected %d, got %d", len(expLines), len(actLines))
	}
	for i := range expLines {
		if expLines[i] != actLines[i] {
			return false, fmt.Sprintf("difference at line %d", i+1)
		}
	}
	return false, "output differs from expected"
}

// TokenMatch compares whitespace-delimited tokens, ignoring whitespace
// differences entirely.
func TokenMatch(expected, actual string, cfg config.ProblemConfig) (bool, string) {
	expTokens := strings.Fields(expected)
	actTokens := strings.Fields(actual)

	if !cfg.CaseSensitive {
		expTokens = lowerAll(expTokens)
		actTokens = lowerAll(actTokens)
	}

	if equalTokens(expTokens, actTokens) {
		return true, "all tokens match"
	}
	if len(expTokens) != len(actTokens) {
		return false, fmt.Sprintf("token count mismatch: expected %d, got %d", len(expTokens), len(actTokens))
	}
	for i := range expTokens {
		if expTokens[i] != actTokens[i] {
			return false, fmt.Sprintf("token mismatch at position %d: expected %q, got %q", i+1, expTokens[i], actTokens[i])
		}
	}
	return false, "tokens differ"
}

// FloatMatch compares whitespace-delimited floating point values within the
// configured absolute-or-relative tolerance.
func FloatMatch(expected, actual string, cfg config.ProblemConfig) (bool, string) {
	expValues, err := parseFloats(expected)
	if err != nil {
		return false, fmt.Sprintf("cannot parse expected output as floats: %v", err)
	}
	actValues, err := parseFloats(actual)
	if err != nil {
		return false, fmt.Sprintf("cannot parse actual output as floats: %v", err)
	}

	if len(expValues) != len(actValues) {
		return false, fmt.Sprintf("value count mismatch: expected %d, got %d", len(expValues), len(actValues))
	}

	tolerance := cfg.FloatTolerance
	for i := range expValues {
		exp, act := expValues[i], actValues[i]

		if math.IsNaN(exp) && math.IsNaN(act) {
			continue
		}
		if math.IsNaN(exp) || math.IsNaN(act) {
			return false, fmt.Sprintf("value mismatch at position %d: expected %v, got %v", i+1, exp, act)
		}
		if math.IsInf(exp, 0) && math.IsInf(act, 0) {
			if (exp > 0) == (act > 0) {
				continue
			}
			return false, fmt.Sprintf("value mismatch at position %d: expected %v, got %v", i+1, exp, act)
		}
		if math.IsInf(exp, 0) || math.IsInf(act, 0) {
			return false, fmt.Sprintf("value mismatch at position %d: expected %v, got %v", i+1, exp, act)
		}

		diff := exp - act
		if diff < 0 {
			diff = -diff
		}
		absExp := exp
		if absExp < 0 {
			absExp = -absExp
		}
		if diff > tolerance && diff > tolerance*absExp {
			return false, fmt.Sprintf("value mismatch at position %d: expected %v, got %v (tolerance %v)", i+1, exp, act, tolerance)
		}
	}
	return true, "all values within tolerance"
}

// Compare dispatches to the comparator named by cfg.ComparisonMode. Special
// judge dispatch is handled separately by internal/specialjudge; Compare
// only covers the built-in exact/token/float modes.
func Compare(expected, actual string, cfg config.ProblemConfig) (bool, string, error) {
	switch cfg.ComparisonMode {
	case config.ComparisonToken:
		passed, msg := TokenMatch(expected, actual, cfg)
		return passed, msg, nil
	case config.ComparisonFloat:
		passed, msg := FloatMatch(expected, actual, cfg)
		return passed, msg, nil
	case config.ComparisonExact, "":
		passed, msg := ExactMatch(expected, actual, cfg)
		return passed, msg, nil
	default:
		return false, "", fmt.Errorf("comparator: unsupported comparison mode %q", cfg.ComparisonMode)
	}
}

func lowerAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToLower(t)
	}
	return out
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", f, err)
		}
		values[i] = v
	}
	return values, nil
}
