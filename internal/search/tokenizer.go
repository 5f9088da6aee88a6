package search

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Tokenize normalizes content into the token sequence used for indexing.
// Text is lowercased, punctuation is replaced with spaces, and the result is
// split on whitespace, keeping tokens of at least two characters. One extra
// token holding the entire normalized content is appended so short notes can
// be matched as a whole phrase through the posting lists.
func Tokenize(content string) []string {
	normalized := strings.ToLower(content)
	normalized = nonWordRe.ReplaceAllString(normalized, " ")

	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields)+1)
	for _, field := range fields {
		if len(field) < 2 {
			continue
		}
		tokens = append(tokens, field)
	}

	whole := strings.TrimSpace(whitespaceRe.ReplaceAllString(normalized, " "))
	if whole != "" {
		tokens = append(tokens, whole)
	}

	return tokens
}
