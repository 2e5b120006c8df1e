// Package document implements the flexible document decoding required by
// spec §6: every input document accepts both snake_case and lowerCamelCase
// field names, and several documents accept more than one top-level shape.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeAny reads path as JSON (default) or YAML (.yaml/.yml extension) into
// a generic value, so callers can normalise keys before mapping into a
// typed struct. Exported for reuse by internal/config.
func DecodeAny(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var v any
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", path, err)
		}
		v = normalizeYAMLMaps(v)
		return v, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse json %s: %w", path, err)
	}
	return v, nil
}

// normalizeYAMLMaps walks a decoded YAML value and rebuilds every nested
// map[string]any and []any it finds. Mappings with non-string keys
// (map[any]any) are returned unchanged.
func normalizeYAMLMaps(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAMLMaps(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAMLMaps(val)
		}
		return out
	default:
		return v
	}
}

// camelToSnake converts "expectedOutput" to "expected_output". Already
// snake_case input passes through unchanged.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AsMap normalises every key of a JSON/YAML object to snake_case, so a
// field can be looked up once regardless of whether the source document
// used snake_case or camelCase. Unknown fields are preserved (and ignored
// by callers that don't look for them), per spec §6.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[camelToSnake(k)] = val
	}
	return out, true
}

func Str(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Bool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func Number(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
