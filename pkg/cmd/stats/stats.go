package stats

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/state"
)

func NewCmdStats(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show search index statistics.",
		Long: heredoc.Doc(`
			Print the number of indexed notes, the distinct token count, and
			the average tokens per note.
		`),
		Example: "quill stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	stats, err := s.Index.Stats()
	if err != nil {
		return fmt.Errorf("collecting index stats: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Notes:              %d\n", stats.Documents)
	fmt.Fprintf(out, "Distinct tokens:    %d\n", stats.Tokens)
	fmt.Fprintf(out, "Avg tokens/note:    %.2f\n", stats.AverageTokensPerDocument)
	if stats.Pending > 0 {
		fmt.Fprintf(out, "Pending updates:    %d\n", stats.Pending)
	}
	if !stats.LastBuild.IsZero() {
		fmt.Fprintf(out, "Last build:         %s\n", stats.LastBuild.Local().Format("2006-01-02 15:04:05"))
	}

	return nil
}
