package nfe

import "strings"

// NormalizeDecimal canonicalizes a numeric amount to dot-decimal form.
// Accepts both Brazilian ("1.234,56") and dot-decimal ("1234.56") notation.
// Non-numeric values are returned trimmed and otherwise untouched.
func NormalizeDecimal(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return ""
	}

	hasComma := strings.Contains(v, ",")
	hasDot := strings.Contains(v, ".")

	candidate := v
	switch {
	case hasComma && hasDot:
		// Dot is the thousands separator, comma the decimal mark.
		candidate = strings.ReplaceAll(candidate, ".", "")
		candidate = strings.Replace(candidate, ",", ".", 1)
	case hasComma:
		candidate = strings.Replace(candidate, ",", ".", 1)
	}

	if !isDecimal(candidate) {
		return v
	}
	return candidate
}

// isDecimal reports whether s is an optionally signed digit run with at most
// one dot.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	dots := 0
	digits := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
