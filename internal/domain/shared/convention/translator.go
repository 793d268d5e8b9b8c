// Package convention translates field-naming conventions between the
// application object model (camelCase) and the database row model
// (snake_case). The translation is structural: it walks arbitrarily nested
// maps and slices, rewrites every key, and leaves values alone.
package convention

import (
	"strings"
	"time"
	"unicode"
)

// ToSnake recursively rewrites every map key in v from camelCase to
// snake_case. Values that are nil, scalars or time.Time pass through
// unchanged; slices are translated element-wise. Keys whose value is nil are
// dropped so that patch maps never carry explicit nil overwrites downstream.
func ToSnake(v any) any {
	return translate(v, CamelToSnake)
}

// ToCamel recursively rewrites every map key in v from snake_case to
// camelCase. It is the inverse of ToSnake for any structure without
// nil-valued keys.
func ToCamel(v any) any {
	return translate(v, SnakeToCamel)
}

func translate(v any, key func(string) string) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t
	case *time.Time:
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[key(k)] = translate(val, key)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = translate(el, key)
		}
		return out
	default:
		return v
	}
}

// CamelToSnake converts a single camelCase key to snake_case.
// Runs that are not letter-case boundaries pass through unrewritten, so
// malformed keys survive the round trip.
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeToCamel converts a single snake_case key to camelCase.
// Underscores not followed by a lowercase letter are kept as-is.
func SnakeToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upperNext := false
	for i, r := range s {
		if r == '_' {
			if i+1 < len(s) && isLowerASCII(s[i+1]) {
				upperNext = true
				continue
			}
			b.WriteRune(r)
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLowerASCII(c byte) bool {
	return c >= 'a' && c <= 'z'
}
