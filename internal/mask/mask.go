// Package mask renders sensitive document-id values with their middle
// digits replaced by a fixed placeholder.
package mask

import "strings"

// Placeholder replaces the middle digits of a masked value. Its presence in
// a value is also how an already-masked value is recognized.
const Placeholder = "*****"

// Value masks a document-id value: the first and last two digits of the
// digit run survive, punctuation is dropped, and the middle becomes the
// fixed placeholder. Masking is idempotent, and values with fewer than five
// digits mask to the bare placeholder.
func Value(v string) string {
	if v == "" || strings.Contains(v, Placeholder) {
		return v
	}
	digits := digitRun(v)
	if len(digits) < 5 {
		return Placeholder
	}
	return digits[:2] + Placeholder + digits[len(digits)-2:]
}

func digitRun(v string) string {
	var b strings.Builder
	for _, c := range v {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
