package document

import "fmt"

// TestCase is one entry of the harness's test-case document (spec §6).
type TestCase struct {
	ID              string
	Input           string
	ExpectedOutput  string
	TimeLimitMs     int64
	MemoryLimitKB   int64
	Hidden          bool
	Weight          float64
	StopOnFailure   bool
}

// LoadTestCases reads a test-case document: a bare array of cases, or an
// object with a "test_cases"/"testCases" key.
func LoadTestCases(path string) ([]TestCase, error) {
	v, err := DecodeAny(path)
	if err != nil {
		return nil, err
	}

	items, err := testCaseItems(v)
	if err != nil {
		return nil, err
	}

	cases := make([]TestCase, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		m, ok := AsMap(item)
		if !ok {
			return nil, fmt.Errorf("test case %d: not an object", i)
		}
		tc := TestCase{
			ID:             Str(m, "id"),
			Input:          Str(m, "input"),
			ExpectedOutput: FirstNonEmpty(Str(m, "expected_output"), Str(m, "expected")),
			Hidden:         Bool(m, "hidden", false),
			Weight:         1.0,
			StopOnFailure:  Bool(m, "stop_on_failure", false),
		}
		if tc.ID == "" {
			tc.ID = fmt.Sprintf("test-%d", i+1)
		}
		if seen[tc.ID] {
			return nil, fmt.Errorf("duplicate test case id %q", tc.ID)
		}
		seen[tc.ID] = true
		if v, ok := Number(m, "time_limit_ms"); ok {
			tc.TimeLimitMs = int64(v)
		}
		if v, ok := Number(m, "memory_limit_kb"); ok {
			tc.MemoryLimitKB = int64(v)
		}
		if v, ok := Number(m, "weight"); ok && v > 0 {
			tc.Weight = v
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

func testCaseItems(v any) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case map[string]any:
		m, _ := AsMap(t)
		for _, key := range []string{"test_cases", "testcases"} {
			if arr, ok := m[key].([]any); ok {
				return arr, nil
			}
		}
		return nil, fmt.Errorf("invalid test case document: expected array or test_cases key")
	default:
		return nil, fmt.Errorf("invalid test case document shape")
	}
}
