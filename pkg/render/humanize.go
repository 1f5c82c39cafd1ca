package render

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-.\s]+`)

// Humanize converts a field key into a subsection title: "logging" becomes
// "Logging" and "access_log" becomes "Access Log". Only the first letter of
// each segment changes, so acronyms survive.
func Humanize(name string) string {
	var segments []string
	for _, word := range wordSeparators.Split(name, -1) {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		segments = append(segments, string(runes))
	}
	return strings.Join(segments, " ")
}
