// Package config holds the value coercion shared by the config stores.
package config

import (
	"strconv"
	"strings"
)

// AsString returns v when it is a string, and "" otherwise.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsInt coerces a stored value to int. TOML decodes integers as int64 and
// JSON as float64; hand-edited files sometimes quote numbers. Anything else
// is 0.
func AsInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
