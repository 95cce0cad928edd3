package internal

import (
	"strings"
	"unicode"
)

// Version is the release version of the vocaudio tools.
var Version = "0.3.1"

// SanitizeFilename creates a safe filename from a string. Letters and digits
// of any script are kept so that Chinese category names survive as-is.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
