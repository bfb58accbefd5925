package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Text extracts a trimmed string from the various representations a decoded
// JSON or form payload can hold. Handles: string, []byte, json.Number,
// numeric types, bool, fmt.Stringer, nil.
func Text(v any) string {
	if v == nil {
		return ""
	}
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	case json.Number:
		s = val.String()
	case float64:
		if val == float64(int64(val)) {
			s = strconv.FormatInt(int64(val), 10)
		} else {
			s = strconv.FormatFloat(val, 'f', -1, 64)
		}
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case bool:
		if val {
			s = "true"
		} else {
			s = "false"
		}
	case fmt.Stringer:
		s = val.String()
	}
	return strings.TrimSpace(s)
}

// Integer extracts an integer, returning the fallback for values that carry
// no usable number.
func Integer(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return fallback
}

// Boolean extracts a truthy flag the way HTML forms deliver them: true,
// "true", "1", "on" and 1 all count.
func Boolean(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		return s == "true" || s == "1" || s == "on" || s == "yes"
	case float64:
		return val != 0
	case int:
		return val != 0
	}
	return false
}

// List extracts a slice of raw elements, returning nil for anything that is
// not array-shaped.
func List(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

// Object extracts a raw JSON object, reporting whether the value was
// object-shaped.
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Kebab converts a vocabulary term to kebab-case: 'MainTitle', 'Main Title'
// and 'main_title' all become 'main-title'.
func Kebab(s string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsUpper(r):
			if prev != 0 && prev != '-' && !unicode.IsUpper(prev) {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '_' || r == '-':
			if prev != 0 && prev != '-' {
				b.WriteRune('-')
				r = '-'
			} else {
				continue
			}
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return strings.Trim(b.String(), "-")
}
