package new

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quillnotes/quill/internal/state"
)

func NewCmdNew(s *state.State) *cobra.Command {
	var (
		subdir string
		open   bool
	)

	cmd := &cobra.Command{
		Use:     "new [title] [tags]",
		Aliases: []string{"n"},
		Short:   "Create a new markdown note in the vault.",
		Long: heredoc.Doc(`
			Create a new note with YAML front matter in your vault. Takes a
			required title and an optional space-separated tags argument.
		`),
		Example: heredoc.Doc(`
			quill new robotics
			quill new robotics "science class study-notes"
			quill new meeting-notes --subdir work --open
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("error: no title given, try 'quill new [title]'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args, subdir, open)
		},
	}

	cmd.Flags().StringVarP(&subdir, "subdir", "s", "", "Subdirectory to create the note in")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the new note in the configured editor")

	return cmd
}

func run(s *state.State, args []string, subdir string, open bool) error {
	title := strings.TrimSpace(args[0])
	var tags []string
	if len(args) > 1 {
		tags = strings.Fields(args[1])
	}

	rel := filepath.Join(subdir, slugify(title)+".md")
	abs := filepath.Join(s.Vault, rel)

	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("note already exists: %s", abs)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("creating note directory: %w", err)
	}

	content, err := render(title, tags, time.Now())
	if err != nil {
		return err
	}

	if err := os.WriteFile(abs, content, 0o644); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}

	s.Index.QueueUpdate(filepath.ToSlash(rel))
	fmt.Println("Created", abs)

	if open {
		editor := s.Config.Editor
		if editor == "" {
			editor = os.Getenv("EDITOR")
		}
		if editor == "" {
			return fmt.Errorf("no editor configured, set one with 'quill init --editor'")
		}

		c := exec.Command(editor, abs)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	return nil
}

func render(title string, tags []string, now time.Time) ([]byte, error) {
	front := map[string]any{
		"title":   title,
		"created": now.Format("2006-01-02 15:04"),
	}
	if len(tags) > 0 {
		front["tags"] = tags
	}

	meta, err := yaml.Marshal(front)
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString("# " + title + "\n")
	return []byte(b.String()), nil
}

func slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	return strings.Join(fields, "-")
}
