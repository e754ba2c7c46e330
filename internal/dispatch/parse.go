package dispatch

import (
	"strconv"
	"strings"
)

// parseInt64Ptr parses a string as an int64, returning nil if parsing fails
// or the string is empty.
func parseInt64Ptr(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseInt64Or parses a string as an int64, returning def if parsing fails.
func parseInt64Or(s string, def int64) int64 {
	if v := parseInt64Ptr(s); v != nil {
		return *v
	}
	return def
}

// boolToken reports whether s equals the feed's literal truthy token for the
// field. The feed uses different tokens per field ("Yes", "true"); anything
// else, including absence, is false.
func boolToken(s, token string) bool {
	return strings.TrimSpace(s) == token
}
