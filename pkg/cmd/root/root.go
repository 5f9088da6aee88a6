package root

import (
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/state"
	"github.com/quillnotes/quill/pkg/cmd/backup"
	"github.com/quillnotes/quill/pkg/cmd/find"
	"github.com/quillnotes/quill/pkg/cmd/initialize"
	"github.com/quillnotes/quill/pkg/cmd/new"
	"github.com/quillnotes/quill/pkg/cmd/notes"
	"github.com/quillnotes/quill/pkg/cmd/search"
	"github.com/quillnotes/quill/pkg/cmd/stats"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Search-first note taking for markdown vaults.",
		Long: `A utility for keeping and finding markdown notes. Notes live as plain
files in your vault; quill keeps a full-text index over them and gets you
back to the right note fast.

  quill search "launch plan"
  quill find meeting
`,
		// Browsing is the default action.
		RunE: notes.NewCmdNotes(s).RunE,
	}

	cmd.AddCommand(
		initialize.NewCmdInit(),
		new.NewCmdNew(s),
		search.NewCmdSearch(s),
		find.NewCmdFind(s),
		notes.NewCmdNotes(s),
		stats.NewCmdStats(s),
		backup.NewCmdBackup(s),
	)

	return cmd, nil
}
