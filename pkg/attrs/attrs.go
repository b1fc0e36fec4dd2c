// Package attrs reads values out of slog-style key/value attribute slices.
package attrs

import "fmt"

// ExtractString returns the string value for key in [k1, v1, k2, v2, ...], or "".
func ExtractString(attrs []any, key string) string {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok || k != key {
			continue
		}
		if v, ok := attrs[i+1].(string); ok {
			return v
		}
	}
	return ""
}

// ToStringMap flattens the pairs into a map, formatting non-string values with %v.
// Pairs whose key is not a string are skipped.
func ToStringMap(attrs []any) map[string]string {
	out := make(map[string]string, len(attrs)/2)
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok {
			continue
		}
		switch v := attrs[i+1].(type) {
		case string:
			out[k] = v
		case fmt.Stringer:
			out[k] = v.String()
		case error:
			out[k] = v.Error()
		default:
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
