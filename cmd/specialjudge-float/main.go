// Command specialjudge-float implements the floating-point tolerance
// special judge, configurable via FLOAT_ABS_TOL/FLOAT_REL_TOL environment
// variables (spec §4.5).
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

type verdictOutput struct {
	Verdict string  `json:"verdict"`
	Passed  bool    `json:"passed"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

func main() {
	if len(os.Args) < 4 {
		emit(verdictOutput{Verdict: "IE", Message: "usage: specialjudge-float <input> <expected> <actual> [test_id]"})
		os.Exit(1)
	}

	absTol := envFloat("FLOAT_ABS_TOL", 1e-9)
	relTol := envFloat("FLOAT_REL_TOL", 1e-6)

	expectedRaw, err := os.ReadFile(os.Args[2])
	if err != nil {
		emit(verdictOutput{Verdict: "IE", Message: fmt.Sprintf("judge error: %v", err)})
		os.Exit(1)
	}
	actualRaw, err := os.ReadFile(os.Args[3])
	if err != nil {
		emit(verdictOutput{Verdict: "IE", Message: fmt.Sprintf("judge error: %v", err)})
		os.Exit(1)
	}

	expectedValues, err := parseFloats(strings.TrimSpace(string(expectedRaw)))
	if err != nil {
		emit(verdictOutput{Verdict: "IE", Message: fmt.Sprintf("cannot parse expected output: %v", err)})
		return
	}
	actualValues, err := parseFloats(strings.TrimSpace(string(actualRaw)))
	if err != nil {
		emit(verdictOutput{Verdict: "WA", Message: fmt.Sprintf("cannot parse contestant output as float: %v", err)})
		return
	}

	if len(expectedValues) != len(actualValues) {
		emit(verdictOutput{Verdict: "WA", Message: fmt.Sprintf("expected %d values, got %d", len(expectedValues), len(actualValues))})
		return
	}

	for i := range expectedValues {
		if !isClose(expectedValues[i], actualValues[i], absTol, relTol) {
			emit(verdictOutput{Verdict: "WA", Message: fmt.Sprintf(
				"value %d: expected %v, got %v (diff: %.2e)", i+1, expectedValues[i], actualValues[i], math.Abs(expectedValues[i]-actualValues[i]))})
			return
		}
	}

	emit(verdictOutput{Verdict: "AC", Passed: true, Score: 1.0, Message: fmt.Sprintf("all %d value(s) within tolerance", len(expectedValues))})
}

func isClose(expected, actual, absTol, relTol float64) bool {
	if math.IsNaN(expected) && math.IsNaN(actual) {
		return true
	}
	if math.IsNaN(expected) || math.IsNaN(actual) {
		return false
	}
	if math.IsInf(expected, 0) && math.IsInf(actual, 0) {
		return (expected > 0) == (actual > 0)
	}
	if math.IsInf(expected, 0) || math.IsInf(actual, 0) {
		return false
	}

	diff := math.Abs(expected - actual)
	if diff <= absTol {
		return true
	}
	if expected != 0 {
		return diff <= relTol*math.Abs(expected)
	}
	return false
}

func parseFloats(text string) ([]float64, error) {
	fields := strings.Fields(text)
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func envFloat(name string, def float64) float64 {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

func emit(v verdictOutput) {
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(v)
}
