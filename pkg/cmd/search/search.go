package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/state"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	var (
		limit  int
		paths  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s"},
		Short:   "Search notes and print ranked matches.",
		Long: heredoc.Doc(`
			Run a ranked full-text search over the vault. Matches are ordered
			by relevance: exact phrase hits score highest, then per-word and
			fuzzy matches, with recently updated notes nudged upward.
		`),
		Example: heredoc.Doc(`
			quill search "launch plan"
			quill search meeting --limit 10
			quill search todo --paths | xargs -r nvim
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, strings.Join(args, " "), limit, paths, asJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVarP(&paths, "paths", "p", false, "Print only vault-relative paths")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Emit matches as JSON")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, query string, limit int, paths, asJSON bool) error {
	matches, err := s.Index.Search(query, limit)
	if err != nil {
		return fmt.Errorf("searching vault: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, m := range matches {
		if paths {
			fmt.Fprintln(out, m.Path)
			continue
		}

		title := m.Title
		if title == "" {
			title = m.Path
		}
		fmt.Fprintf(out, "%s\t%s\n", title, m.Path)
		if m.Snippet != "" {
			fmt.Fprintf(out, "    %s\n", m.Snippet)
		}
	}

	return nil
}
