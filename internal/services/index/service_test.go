package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeNote(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
	return path
}

func TestServiceBuildAndSearch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "alpha.md", "---\ntitle: Alpha Kickoff\n---\nMeeting notes about project Alpha\n")
	writeNote(t, dir, "groceries.md", "---\ntitle: Shopping\n---\nGrocery list: apples, bread\n")

	svc := NewService(dir, Config{})
	if err := svc.Build(); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	matches, err := svc.Search("alpha", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(matches) != 1 || matches[0].Path != "alpha.md" {
		t.Fatalf("expected [alpha.md], got %+v", matches)
	}
	if matches[0].Title != "Alpha Kickoff" {
		t.Fatalf("expected title from note, got %q", matches[0].Title)
	}
	if !strings.Contains(strings.ToLower(matches[0].Snippet), "alpha") {
		t.Fatalf("expected snippet around the hit, got %q", matches[0].Snippet)
	}
}

func TestServiceLazyBuildOnFirstSearch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "note.md", "searchable body\n")

	svc := NewService(dir, Config{})
	matches, err := svc.Search("searchable", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected lazy build to index the vault, got %+v", matches)
	}
}

func TestServiceQueueUpdateHandlesEditsAndRemovals(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeNote(t, dir, "note.md", "original content\n")

	svc := NewService(dir, Config{})
	if err := svc.Build(); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if err := os.WriteFile(path, []byte("content with replacement term\n"), 0o644); err != nil {
		t.Fatalf("rewrite note: %v", err)
	}
	svc.QueueUpdate("note.md")

	matches, err := svc.Search("replacement", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected edited note to be searchable, got %+v", matches)
	}

	if matches, _ := svc.Search("original", 0); len(matches) != 0 {
		t.Fatalf("expected stale postings to be gone after edit, got %+v", matches)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove note: %v", err)
	}
	svc.QueueUpdate("note.md")

	if matches, _ := svc.Search("replacement", 0); len(matches) != 0 {
		t.Fatalf("expected removed note to disappear, got %+v", matches)
	}
}

func TestServiceSkipsIgnoredFolders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "keep/note.md", "keep this body\n")
	writeNote(t, dir, "archive/old.md", "archived body\n")
	writeNote(t, dir, ".obsidian/meta.md", "editor metadata\n")

	svc := NewService(dir, Config{IgnoredFolders: []string{"archive"}})
	if err := svc.Build(); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if matches, _ := svc.Search("archived", 0); len(matches) != 0 {
		t.Fatalf("expected ignored folder to be skipped, got %+v", matches)
	}
	if matches, _ := svc.Search("metadata", 0); len(matches) != 0 {
		t.Fatalf("expected dot folder to be skipped, got %+v", matches)
	}
	if matches, _ := svc.Search("keep", 0); len(matches) != 1 {
		t.Fatalf("expected included note to be searchable, got %+v", matches)
	}
}

func TestServiceNotesListsWholeVault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "b.md", "---\ntitle: Second\n---\nbody\n")
	writeNote(t, dir, "a.md", "---\ntitle: First\n---\nbody\n")

	svc := NewService(dir, Config{})
	notes, err := svc.Notes()
	if err != nil {
		t.Fatalf("Notes returned error: %v", err)
	}
	if len(notes) != 2 || notes[0].Path != "a.md" || notes[1].Path != "b.md" {
		t.Fatalf("expected sorted listing, got %+v", notes)
	}
	if notes[0].Title != "First" {
		t.Fatalf("expected titles from front matter, got %+v", notes)
	}
}

func TestServiceStats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "a.md", "alpha beta\n")
	writeNote(t, dir, "b.md", "gamma delta\n")

	svc := NewService(dir, Config{})
	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Documents != 2 {
		t.Fatalf("expected 2 documents, got %+v", stats)
	}
	if stats.LastBuild.IsZero() {
		t.Fatal("expected LastBuild to be set after implicit build")
	}
}

func TestServiceCloseRejectsFurtherUse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "note.md", "body\n")

	svc := NewService(dir, Config{})
	if err := svc.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("expected second Close to be a no-op, got %v", err)
	}

	if _, err := svc.Search("body", 0); err != ErrClosed {
		t.Fatalf("expected ErrClosed from Search, got %v", err)
	}
	if err := svc.Build(); err != ErrClosed {
		t.Fatalf("expected ErrClosed from Build, got %v", err)
	}
}

func TestSnippetWindowsAroundHit(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("filler ", 30) + "needle" + strings.Repeat(" trailer", 30)
	got := snippet(body, "needle")

	if !strings.Contains(got, "needle") {
		t.Fatalf("expected snippet to contain the term, got %q", got)
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipses around a mid-body hit, got %q", got)
	}
	if len([]rune(got)) > 120 {
		t.Fatalf("expected a bounded snippet, got %d runes", len([]rune(got)))
	}
}

func TestSnippetFallsBackToBodyStart(t *testing.T) {
	t.Parallel()

	got := snippet("plain note body without the query term", "missing")
	if !strings.HasPrefix(got, "plain note body") {
		t.Fatalf("expected fallback to body start, got %q", got)
	}
}
