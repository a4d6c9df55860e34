// Package jsonkey rewrites the key casing of arbitrary JSON values. The
// upstream APIs speak snake_case; everything inside this codebase is
// camelCase, so response bodies are camelized on the way in and request
// bodies snaked on the way out.
package jsonkey

import (
	"encoding/json"
	"strings"
)

// CamelizeKeys walks a decoded JSON value and converts every object key
// from snake_case to camelCase. Arrays are recursed element-wise; array
// indices are never treated as keys. Scalars pass through untouched.
func CamelizeKeys(v interface{}) interface{} {
	return mapKeys(v, toCamel)
}

// SnakeKeys is the inverse direction, used for request bodies.
func SnakeKeys(v interface{}) interface{} {
	return mapKeys(v, toSnake)
}

func mapKeys(v interface{}, f func(string) string) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[f(k)] = mapKeys(val, f)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = mapKeys(val, f)
		}
		return out
	default:
		return v
	}
}

// CamelizeRaw camelizes a raw JSON document. The round trip through
// interface{} drops no data for the JSON value domain.
func CamelizeRaw(data []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(CamelizeKeys(v))
}

// SnakeRaw snakes a raw JSON document.
func SnakeRaw(data []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(SnakeKeys(v))
}

func toCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() == 0 && i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
