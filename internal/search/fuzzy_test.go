package search

import (
	"math"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"apple", "apples", 1},
		{"apple", "alpha", 3},
		{"same", "same", 0},
	}

	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFuzzyWeightSubstringCountsAsFullMatch(t *testing.T) {
	t.Parallel()

	if got := fuzzyWeight("apple", "apples,"); got != 1 {
		t.Fatalf("expected containment weight 1, got %v", got)
	}
	if got := fuzzyWeight("apples", "apple"); got != 1 {
		t.Fatalf("expected reverse containment weight 1, got %v", got)
	}
}

func TestFuzzyWeightSimilarity(t *testing.T) {
	t.Parallel()

	// "launch" vs "lanch" is one deletion: similarity 5/6 clears the
	// threshold and contributes fractionally.
	got := fuzzyWeight("lanch", "launch")
	want := 5.0 / 6.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected similarity %v, got %v", want, got)
	}
}

func TestFuzzyWeightBelowThreshold(t *testing.T) {
	t.Parallel()

	if got := fuzzyWeight("apple", "alpha"); got != 0 {
		t.Fatalf("expected weight 0 for dissimilar words, got %v", got)
	}
}

func TestFuzzyWeightShortWordsNeverMatch(t *testing.T) {
	t.Parallel()

	if got := fuzzyWeight("go", "golang"); got != 0 {
		t.Fatalf("expected short query token to be skipped, got %v", got)
	}
	if got := fuzzyWeight("golang", "go"); got != 0 {
		t.Fatalf("expected short content word to be skipped, got %v", got)
	}
}
