package search

import (
	"reflect"
	"testing"
)

func TestTokenizeNormalizesAndSplits(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("Hello, World!")
	want := []string{"hello", "world", "hello world"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("expected tokens %v, got %v", want, tokens)
	}
}

func TestTokenizeDropsShortWords(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("a to-do x list")
	want := []string{"to", "do", "list", "a to do x list"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("expected tokens %v, got %v", want, tokens)
	}
}

func TestTokenizeEmptyContent(t *testing.T) {
	t.Parallel()

	if tokens := Tokenize(""); len(tokens) != 0 {
		t.Fatalf("expected no tokens for empty content, got %v", tokens)
	}
	if tokens := Tokenize("  \t\n "); len(tokens) != 0 {
		t.Fatalf("expected no tokens for whitespace content, got %v", tokens)
	}
	if tokens := Tokenize("!!! ???"); len(tokens) != 0 {
		t.Fatalf("expected no tokens for punctuation-only content, got %v", tokens)
	}
}

func TestTokenizeWholeContentTokenCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("alpha   beta\n\tgamma")
	last := tokens[len(tokens)-1]
	if last != "alpha beta gamma" {
		t.Fatalf("expected collapsed whole-content token, got %q", last)
	}
}

func TestTokenizeKeepsUnderscoresAndDigits(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("meeting_2024 q3")
	want := []string{"meeting_2024", "q3", "meeting_2024 q3"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("expected tokens %v, got %v", want, tokens)
	}
}
