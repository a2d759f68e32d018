// Package normalize coerces upstream API payloads into predictable shapes so
// list-consuming code never branches on response drift. Every function here
// is total over arbitrary JSON values: the render path must not crash because
// the platform changed a response envelope between versions.
package normalize

import "encoding/json"

// List coerces a decoded JSON value into an ordered record sequence.
//
// Three shapes are tolerated: a bare array (returned as-is, order preserved),
// the paginated envelope {count, next, previous, results: [...]} (the results
// slice is returned), and everything else (nil, scalars, objects without
// results), which yields an empty slice.
func List(payload any) []any {
	switch v := payload.(type) {
	case []any:
		return v
	case map[string]any:
		if results, ok := v["results"].([]any); ok {
			return results
		}
	}
	return []any{}
}

// FromJSON decodes a raw response body and normalizes it. Bodies that do not
// decode at all normalize to the empty sequence rather than an error.
func FromJSON(body []byte) []any {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return []any{}
	}
	return List(payload)
}
