package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/config"
	"github.com/quillnotes/quill/internal/state"
	"github.com/quillnotes/quill/pkg/cmd/initialize"
	"github.com/quillnotes/quill/pkg/cmd/root"
)

func main() {
	s, err := state.NewState()
	if err != nil {
		// Without a usable config only init can run.
		var initErr *config.ConfigInitError
		if errors.As(err, &initErr) {
			runSetupOnly(initErr)
			return
		}
		cobra.CheckErr(err)
	}
	defer s.Close()

	rootCmd, err := root.NewCmdRoot(s)
	cobra.CheckErr(err)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSetupOnly(reason *config.ConfigInitError) {
	cmd := &cobra.Command{
		Use:           "quill",
		Short:         "Search-first note taking for markdown vaults.",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%s, run 'quill init --vault <dir>' first", reason.Error())
		},
	}
	cmd.AddCommand(initialize.NewCmdInit())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
