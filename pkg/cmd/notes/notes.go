package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/state"
	"github.com/quillnotes/quill/internal/tui/notes"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"browse"},
		Short:   "Browse notes with live search.",
		Long: heredoc.Doc(`
			Open the interactive notes browser. Typing re-runs the ranked
			search as you go; enter toggles a rendered preview, ctrl+o opens
			the selection in your editor, and ctrl+r rebuilds the index.
		`),
		Example: heredoc.Doc(`
			quill notes
			quill
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return notes.Run(s)
		},
	}

	return cmd
}
