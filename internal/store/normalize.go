package store

import "strings"

// NormalizeValue prepares a form value for storage. Strings are trimmed of
// surrounding whitespace; a string that is blank after trimming becomes nil so
// the column is stored as NULL rather than an empty string. Non-string values
// pass through unchanged.
func NormalizeValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
