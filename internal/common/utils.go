package common

import "strings"

// HasAnySuffix reports whether s ends with any of the suffixes, ignoring case.
func HasAnySuffix(s string, suffixes ...string) bool {
	_, _, ok := CutAnySuffix(s, suffixes...)
	return ok
}

// CutAnySuffix strips the first matching suffix from s, ignoring case.
// It returns the remainder, the matched suffix and whether one matched.
func CutAnySuffix(s string, suffixes ...string) (before, suffix string, found bool) {
	lower := strings.ToLower(s)
	for _, suf := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suf)) {
			return s[:len(s)-len(suf)], suf, true
		}
	}
	return s, "", false
}
