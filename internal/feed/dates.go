package feed

import (
	"strconv"
	"strings"
	"time"
)

// The feed writes months either as numbers or as 3-letter English
// abbreviations. Resolution happens here, before persistence.
var monthNames = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// ResolveDate reconciles separate day/month/year fields into one date. The
// month may be numeric or a 3-letter abbreviation. A missing or unparseable
// part yields nil rather than an error; the feed omits parts routinely.
func ResolveDate(day, month, year string) *time.Time {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y <= 0 {
		return nil
	}

	m := resolveMonth(month)
	if m == 0 {
		return nil
	}

	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil || d < 1 || d > 31 {
		return nil
	}

	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject those.
	if t.Year() != y || t.Month() != m || t.Day() != d {
		return nil
	}
	return &t
}

func resolveMonth(month string) time.Month {
	s := strings.ToUpper(strings.TrimSpace(month))
	if s == "" {
		return 0
	}
	if m, ok := monthNames[s]; ok {
		return m
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0
	}
	return time.Month(n)
}

// ResolveComposed parses a pre-composed date value. Both composed and
// day/month/year forms of the same date resolve identically.
func ResolveComposed(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "2-Jan-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// ResolveDateNode resolves a date element that carries either Day/Month/Year
// attributes or a composed text value.
func ResolveDateNode(n *Node) *time.Time {
	if n == nil {
		return nil
	}
	if d := ResolveDate(n.Attr("Day"), n.Attr("Month"), n.Attr("Year")); d != nil {
		return d
	}
	return ResolveComposed(ExtractText(n))
}
