package cipher

import (
	"regexp"
	"strings"
)

// BlockedValue replaces field values that match an injection pattern.
const BlockedValue = "[BLOCKED_CONTENT]"

// maxFieldLen caps sanitized field values.
const maxFieldLen = 1000

// injectionPatterns flag values that could smuggle instructions into the
// LLM analysis or into rendered output.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script.*?>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)(union|select|insert|update|delete|drop)\s+`),
	regexp.MustCompile(`(\|\||&&|;)`),
	regexp.MustCompile(`(?i)(eval\(|exec\(|system\()`),
	regexp.MustCompile(`({{.*}}|\$\{.*\})`),
	regexp.MustCompile(`(?i)(prompt\(|alert\(|confirm\()`),
	regexp.MustCompile(`(?i)(import\s+|from\s+\S+\s+import)`),
}

var (
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
	markupTags   = regexp.MustCompile(`<[^>]*>`)
)

// DetectInjection reports whether a value matches any injection pattern.
func DetectInjection(v string) bool {
	for _, p := range injectionPatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

// Sanitize strips control characters and markup tags and truncates
// over-long values.
func Sanitize(v string) string {
	clean := controlChars.ReplaceAllString(v, "")
	clean = markupTags.ReplaceAllString(clean, "")
	if len(clean) > maxFieldLen {
		clean = clean[:maxFieldLen] + "..."
	}
	return strings.TrimSpace(clean)
}
