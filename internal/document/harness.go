package document

import (
	"fmt"

	"judgecore/internal/sandbox/result"
)

// LoadHarnessOutput reads the harness-output document consumed by the
// judge: either a "test_results" array, or a single-run shape wrapped into
// a synthetic one-element sequence with test-id "test-1" (spec §6).
func LoadHarnessOutput(path string) ([]result.TestRecord, error) {
	v, err := DecodeAny(path)
	if err != nil {
		return nil, err
	}
	m, ok := AsMap(v)
	if !ok {
		return nil, fmt.Errorf("invalid harness-output document: expected an object")
	}

	if arr, ok := m["test_results"].([]any); ok {
		records := make([]result.TestRecord, 0, len(arr))
		for i, item := range arr {
			rec, err := recordFromMap(item, fmt.Sprintf("test-%d", i+1))
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return records, nil
	}

	// Single-run shape.
	rec, err := recordFromMap(m, "test-1")
	if err != nil {
		return nil, err
	}
	return []result.TestRecord{rec}, nil
}

func recordFromMap(v any, fallbackID string) (result.TestRecord, error) {
	m, ok := AsMap(v)
	if !ok {
		return result.TestRecord{}, fmt.Errorf("test record: not an object")
	}

	id := FirstNonEmpty(Str(m, "test_id"), Str(m, "id"), fallbackID)
	status := result.Status(Str(m, "status"))
	if Bool(m, "timed_out", false) {
		status = result.StatusTimedOut
	}

	rec := result.TestRecord{
		TestID:          id,
		Status:          status,
		ActualOutput:    FirstNonEmpty(Str(m, "actual_output"), Str(m, "stdout")),
		Error:           Str(m, "error"),
		InputPreview:    Str(m, "input"),
		ExpectedPreview: Str(m, "expected_output"),
	}
	if v, ok := Number(m, "execution_time_ms"); ok {
		rec.ExecutionTimeMs = int64(v)
	}
	if v, ok := Number(m, "memory_used_kb"); ok {
		rec.MemoryUsedKB = int64(v)
	}
	if v, ok := Number(m, "exit_code"); ok {
		rec.ExitCode = int(v)
	}
	return rec, nil
}
