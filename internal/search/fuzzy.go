package search

import "strings"

// similarityThreshold is the minimum normalized edit-distance similarity for
// two words to count as a fuzzy match.
const similarityThreshold = 0.7

// fuzzyWeight returns the match weight between a query token and a content
// word. Substring containment in either direction counts as a full match;
// otherwise the normalized Levenshtein similarity is returned when it clears
// the threshold, and zero when it does not. Words shorter than three
// characters never fuzzy-match.
func fuzzyWeight(token, word string) float64 {
	if len(token) < 3 || len(word) < 3 {
		return 0
	}

	if strings.Contains(word, token) || strings.Contains(token, word) {
		return 1
	}

	longer, shorter := token, word
	if len(word) > len(token) {
		longer, shorter = word, token
	}

	longerLen := len([]rune(longer))
	if longerLen == 0 {
		return 0
	}

	similarity := float64(longerLen-levenshtein(longer, shorter)) / float64(longerLen)
	if similarity > similarityThreshold {
		return similarity
	}
	return 0
}

// levenshtein computes the classic edit distance between two strings using
// single-character insertions, deletions, and substitutions. Transpositions
// are not a distinct operation.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}

	for i := 0; i <= m; i++ {
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ra[i-1] == rb[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = 1 + minOf(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
		}
	}

	return dp[m][n]
}

func minOf(a, b, c int) int {
	if a < b && a < c {
		return a
	}
	if b < c {
		return b
	}
	return c
}
