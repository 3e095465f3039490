package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const ellipsis = "..."

func Contains(words []string, word string) bool {
	found := false
	for _, v := range words {
		if v == word {
			found = true
			break
		}
	}

	return found
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// Truncate limits text to max characters, replacing the tail with "..."
// when it is cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	keep := max - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis
}
