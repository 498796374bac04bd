package parsing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/dates"
	"github.com/jonathan/resume-builder/internal/types"
)

// The helpers below coerce untrusted decoded JSON (map[string]any, []any, ...) into the
// canonical field shapes. Every helper returns a safe default for missing or wrong-typed input.

// lookup returns the first present value among keys. Keys are tried exactly, then
// case-insensitively with "_" removed so "full_name" matches "fullName".
func lookup(m map[string]any, keys ...string) any {
	if m == nil {
		return nil
	}
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	for _, k := range keys {
		want := foldKey(k)
		for mk, v := range m {
			if v != nil && foldKey(mk) == want {
				return v
			}
		}
	}
	return nil
}

func foldKey(k string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(k))
}

// asString returns a trimmed string value. Anything that is not a JSON string becomes "".
func asString(v any) string {
	t, ok := v.(string)
	if !ok {
		return ""
	}
	s := strings.TrimSpace(t)
	if strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a") {
		return ""
	}
	return s
}

// asScalar is asString that also formats numbers, for values models often emit unquoted
// (years, months, credential numbers)
func asScalar(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return asString(v)
	}
}

// asStringSlice coerces an array of scalars to strings, dropping empties.
// A single non-empty string becomes a one-element slice; a comma-separated
// string is not split.
func asStringSlice(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := asString(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asBool accepts JSON booleans and the common string spellings
func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.Join(strings.Fields(strings.ToLower(strings.Trim(t, " .!\t\n"))), " ") {
		case "true", "yes", "y", "1",
			"present", "current", "currently", "now", "to date", "ongoing", "currently working":
			return true
		}
		return false
	case float64:
		return t != 0
	default:
		return false
	}
}

// asObject returns v as a JSON object or nil
func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asObjects returns the objects in an array, skipping anything that is not an object.
// A lone object is treated as a one-element array.
func asObjects(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{t}
	default:
		return nil
	}
}

// asMonthYear accepts {"month","year"} objects, free-form date strings and bare numeric years.
// The result always satisfies the MonthYear invariants.
func asMonthYear(v any) types.MonthYear {
	switch t := v.(type) {
	case map[string]any:
		return dates.Normalize(types.MonthYear{
			Month: asScalar(lookup(t, "month", "mm")),
			Year:  asScalar(lookup(t, "year", "yyyy")),
		})
	case string:
		if d, ok := dates.Parse(t); ok {
			return d
		}
		return types.MonthYear{}
	case float64:
		return dates.Normalize(types.MonthYear{Year: fmt.Sprintf("%.0f", t)})
	default:
		return types.MonthYear{}
	}
}

// unwrapPayload finds the field payload inside a decoded response. Models sometimes nest the
// payload under the field name, under "data", or return a bare array.
func unwrapPayload(v any, key string) any {
	for depth := 0; depth < 3; depth++ {
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		if inner := lookup(m, key); inner != nil {
			return inner
		}
		if inner, ok := m["data"]; ok && inner != nil {
			v = inner
			continue
		}
		return m
	}
	return v
}
