// Package fzf provides an interactive fuzzy picker over indexed notes.
package fzf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	indexsvc "github.com/quillnotes/quill/internal/services/index"
)

// FuzzyFinder presents indexed notes for interactive selection, with a
// rendered markdown preview alongside the list.
type FuzzyFinder struct {
	svc     *indexsvc.Service
	vault   string
	Header  string
	matches []indexsvc.Match
}

func NewFuzzyFinder(vault string, svc *indexsvc.Service, header string) *FuzzyFinder {
	return &FuzzyFinder{vault: vault, svc: svc, Header: header}
}

// Run selects a note from the whole vault and returns its absolute path.
func (f *FuzzyFinder) Run() (string, error) {
	return f.RunWithQuery("")
}

// RunWithQuery seeds the candidate list from a ranked search when a query is
// given, falling back to the full vault listing otherwise.
func (f *FuzzyFinder) RunWithQuery(query string) (string, error) {
	var (
		matches []indexsvc.Match
		err     error
	)
	if query != "" {
		matches, err = f.svc.Search(query, 0)
	} else {
		matches, err = f.svc.Notes()
	}
	if err != nil {
		return "", fmt.Errorf("fzf: listing notes: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("fzf: no notes to select from")
	}

	f.matches = matches

	idx, err := f.selectNote(query)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return "", fmt.Errorf("no note selected")
		}
		return "", err
	}

	return filepath.Join(f.vault, filepath.FromSlash(f.matches[idx].Path)), nil
}

// CopySelection runs the picker and copies the selected note's path to the
// system clipboard.
func (f *FuzzyFinder) CopySelection(query string) (string, error) {
	path, err := f.RunWithQuery(query)
	if err != nil {
		return "", err
	}

	if err := clipboard.WriteAll(path); err != nil {
		return "", fmt.Errorf("fzf: copying to clipboard: %w", err)
	}
	return path, nil
}

func (f *FuzzyFinder) selectNote(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	return fuzzyfinder.Find(f.matches, func(i int) string {
		return f.displayLine(f.matches[i])
	}, options...)
}

func (f *FuzzyFinder) displayLine(m indexsvc.Match) string {
	title := m.Title
	if title == "" {
		title = filepath.Base(m.Path)
	}
	if m.Snippet == "" {
		return title
	}
	return fmt.Sprintf("%s · %s", title, m.Snippet)
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	abs := filepath.Join(f.vault, filepath.FromSlash(f.matches[i].Path))
	content, err := os.ReadFile(abs)
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
