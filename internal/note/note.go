// Package note loads markdown notes and prepares their searchable text.
package note

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/quillnotes/quill/internal/search"
)

// Note is the in-memory representation of one markdown note on disk.
type Note struct {
	Path      string
	Title     string
	Tags      []string
	Body      string
	UpdatedAt time.Time
}

// stringList accepts either a YAML scalar or a sequence, so both
// "tags: project" and "tags: [project, urgent]" front matter parse.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if trimmed := strings.TrimSpace(value.Value); trimmed != "" {
			*l = stringList{trimmed}
		}
		return nil
	case yaml.SequenceNode:
		out := make(stringList, 0, len(value.Content))
		for _, child := range value.Content {
			if trimmed := strings.TrimSpace(child.Value); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		*l = out
		return nil
	default:
		return nil
	}
}

type frontMatter struct {
	Title   string     `yaml:"title"`
	Tags    stringList `yaml:"tags"`
	Created string     `yaml:"created"`
	Updated string     `yaml:"updated"`
}

var frontMatterRe = regexp.MustCompile(`(?ms)^---\s*\n(.*?)\n---\s*\n?`)

// Load reads a note from disk, splitting YAML front matter from the body.
// Malformed front matter is tolerated: the note still loads with its body,
// a title derived from the filename, and the file mtime as its timestamp.
func Load(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("note: reading %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("note: stat %s: %w", path, err)
	}

	fm, body := splitFrontMatter(data)

	n := &Note{
		Path:      filepath.Clean(path),
		Body:      string(body),
		UpdatedAt: info.ModTime().UTC(),
	}

	if len(fm) > 0 {
		var parsed frontMatter
		if err := yaml.Unmarshal(fm, &parsed); err == nil {
			n.Title = strings.TrimSpace(parsed.Title)
			n.Tags = parsed.Tags
			if raw := firstNonEmpty(parsed.Updated, parsed.Created); raw != "" {
				if ts, err := dateparse.ParseAny(raw); err == nil {
					n.UpdatedAt = ts.UTC()
				}
			}
		}
	}

	if n.Title == "" {
		base := filepath.Base(path)
		n.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return n, nil
}

// SearchText concatenates the title, tags, and the body rendered to plain
// text into the single content string handed to the search index. The index
// itself stays content-agnostic.
func (n *Note) SearchText() string {
	parts := make([]string, 0, len(n.Tags)+2)
	if n.Title != "" {
		parts = append(parts, n.Title)
	}
	parts = append(parts, n.Tags...)
	if body := PlainText(n.Body); body != "" {
		parts = append(parts, body)
	}
	return strings.Join(parts, " ")
}

// Metadata returns the scoring metadata for the index.
func (n *Note) Metadata() search.Metadata {
	return search.Metadata{Title: n.Title, UpdatedAt: n.UpdatedAt}
}

// PlainText renders markdown to plain prose by walking the goldmark AST and
// collecting text segments, so heading markers, emphasis, and link syntax do
// not leak into indexed tokens. Fenced code blocks are skipped.
func PlainText(markdown string) string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func splitFrontMatter(data []byte) ([]byte, []byte) {
	loc := frontMatterRe.FindSubmatchIndex(data)
	if len(loc) < 4 {
		return nil, data
	}
	return data[loc[2]:loc[3]], data[loc[1]:]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
