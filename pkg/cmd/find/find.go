package find

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/fzf"
	"github.com/quillnotes/quill/internal/state"
)

func NewCmdFind(s *state.State) *cobra.Command {
	var (
		copyPath bool
		printOut bool
	)

	cmd := &cobra.Command{
		Use:     "find [query]",
		Aliases: []string{"f"},
		Short:   "Fuzzy-pick a note and open it.",
		Long: heredoc.Doc(`
			Interactively pick a note with a fuzzy finder and a markdown
			preview. With a query argument the candidate list is pre-ranked
			by the search index.
		`),
		Example: heredoc.Doc(`
			quill find
			quill find meeting
			quill find --copy
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, strings.Join(args, " "), copyPath, printOut)
		},
	}

	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the selected path to the clipboard instead of opening it")
	cmd.Flags().BoolVarP(&printOut, "print", "p", false, "Print the selected path instead of opening it")

	return cmd
}

func run(s *state.State, query string, copyPath, printOut bool) error {
	finder := fzf.NewFuzzyFinder(s.Vault, s.Index, "Select a note")

	if copyPath {
		path, err := finder.CopySelection(query)
		if err != nil {
			return err
		}
		fmt.Println("Copied", path)
		return nil
	}

	path, err := finder.RunWithQuery(query)
	if err != nil {
		return err
	}

	if printOut {
		fmt.Println(path)
		return nil
	}

	editor := s.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		fmt.Println(path)
		return nil
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
