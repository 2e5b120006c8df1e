package document

import "fmt"

// LoadExpectedOutputs reads the expected-outputs document: an array of
// {id, expected_output} objects, a mapping test_id -> expected_output, or an
// object with a "test_cases" array of the same shape (spec §6).
func LoadExpectedOutputs(path string) (map[string]string, error) {
	v, err := DecodeAny(path)
	if err != nil {
		return nil, err
	}
	return expectedFromValue(v)
}

func expectedFromValue(v any) (map[string]string, error) {
	switch t := v.(type) {
	case []any:
		return expectedFromArray(t)
	case map[string]any:
		m, _ := AsMap(t)
		if arr, ok := m["test_cases"].([]any); ok {
			return expectedFromArray(arr)
		}
		// Plain mapping test_id -> expected_output. Values may themselves be
		// the expected string, or an object carrying "expected_output".
		out := make(map[string]string, len(t))
		for id, val := range t {
			switch s := val.(type) {
			case string:
				out[id] = s
			case map[string]any:
				nested, _ := AsMap(s)
				out[id] = FirstNonEmpty(Str(nested, "expected_output"), Str(nested, "expected"))
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid expected-outputs document shape")
	}
}

func expectedFromArray(items []any) (map[string]string, error) {
	out := make(map[string]string, len(items))
	for i, item := range items {
		m, ok := AsMap(item)
		if !ok {
			return nil, fmt.Errorf("expected output %d: not an object", i)
		}
		id := Str(m, "id")
		if id == "" {
			return nil, fmt.Errorf("expected output %d: missing id", i)
		}
		out[id] = FirstNonEmpty(Str(m, "expected_output"), Str(m, "expected"))
	}
	return out, nil
}
