package new

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"Robotics Class", "robotics-class"},
		{"  Hello,  World!  ", "hello-world"},
		{"already-slugged", "already-slugged"},
		{"Q3 2024 plan", "q3-2024-plan"},
	}

	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderFrontMatter(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	content, err := render("Robotics", []string{"science", "class"}, now)
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}

	text := string(content)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("expected front matter fence, got %q", text)
	}
	for _, want := range []string{"title: Robotics", "created: 2024-05-01 09:30", "science", "# Robotics"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in rendered note, got %q", want, text)
		}
	}
}

func TestRenderWithoutTags(t *testing.T) {
	t.Parallel()

	content, err := render("Plain", nil, time.Now())
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	if strings.Contains(string(content), "tags:") {
		t.Fatalf("expected no tags key, got %q", content)
	}
}
