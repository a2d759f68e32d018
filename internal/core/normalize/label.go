package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PersonFields is the label priority for person-like references (students,
// teachers): the nested profile name first, then the account email.
var PersonFields = []string{"user.full_name", "user.email"}

// NamedFields is the label priority for named entities (subjects, courses).
var NamedFields = []string{"name"}

// ReferenceLabel resolves a human-readable label for a foreign-key-like field
// that the API represents either as a nested object or as a bare numeric id.
//
// Object form: the first non-empty candidate field wins; dot paths descend
// into nested objects. Id form: the first lookup element with an equal id is
// labelled by the same priority. A reference that resolves nowhere becomes
// "#<id>" so list rows never show a blank reference.
func ReferenceLabel(ref any, lookup []any, fields ...string) string {
	switch v := ref.(type) {
	case nil:
		return "unknown"
	case map[string]any:
		if label := firstField(v, fields); label != "" {
			return label
		}
		return placeholder(v["id"])
	default:
		for _, item := range lookup {
			m, ok := item.(map[string]any)
			if !ok || !numEqual(m["id"], v) {
				continue
			}
			if label := firstField(m, fields); label != "" {
				return label
			}
			break
		}
		return placeholder(v)
	}
}

// firstField walks the candidate paths in priority order and returns the
// first non-empty string value.
func firstField(m map[string]any, fields []string) string {
	for _, path := range fields {
		cur := any(m)
		for _, part := range strings.Split(path, ".") {
			obj, ok := cur.(map[string]any)
			if !ok {
				cur = nil
				break
			}
			cur = obj[part]
		}
		if s, ok := cur.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// numEqual compares two JSON values numerically, mirroring the loose equality
// the web client relied on: ids arrive as numbers from the API but as strings
// from form state.
func numEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// placeholder synthesizes the "#<id>" fallback label.
func placeholder(id any) string {
	if f, ok := toFloat(id); ok {
		return "#" + strconv.FormatFloat(f, 'f', -1, 64)
	}
	if s, ok := id.(string); ok && s != "" {
		return "#" + s
	}
	return "#?"
}
