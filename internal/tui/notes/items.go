package notes

import (
	"path/filepath"

	indexsvc "github.com/quillnotes/quill/internal/services/index"
)

// noteItem adapts one search match for the bubbles list widget.
type noteItem struct {
	match indexsvc.Match
}

func (n noteItem) Title() string {
	if n.match.Title != "" {
		return n.match.Title
	}
	return filepath.Base(n.match.Path)
}

func (n noteItem) Description() string {
	if n.match.Snippet != "" {
		return n.match.Snippet
	}
	return n.match.Path
}

func (n noteItem) FilterValue() string {
	return n.match.Title + " " + n.match.Path
}
