package initialize

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/config"
)

// NewCmdInit is deliberately independent of the application state so it can
// run before a vault is configured.
func NewCmdInit() *cobra.Command {
	var (
		vaultDir string
		editor   string
	)

	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Initialize the quill configuration.",
		Long:    "Set up the quill configuration file and point it at your note vault.",
		Example: heredoc.Doc(`
			quill init --vault ~/notes
			quill init --vault ~/notes --editor nvim
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(vaultDir, editor)
		},
	}

	cmd.Flags().StringVarP(&vaultDir, "vault", "v", "", "Directory containing your markdown notes")
	cmd.Flags().StringVarP(&editor, "editor", "e", "", "Editor used to open notes")

	return cmd
}

func run(vaultDir, editor string) error {
	vaultDir = strings.TrimSpace(vaultDir)
	if vaultDir == "" {
		return fmt.Errorf("a vault directory is required, try 'quill init --vault ~/notes'")
	}

	if info, err := os.Stat(vaultDir); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(vaultDir, 0o755); err != nil {
				return fmt.Errorf("creating vault directory: %w", err)
			}
		} else {
			return err
		}
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", vaultDir)
	}

	if editor != "" {
		if err := config.ValidateEditor(editor); err != nil {
			return err
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	// Create the file if needed; a missing vault dir in a fresh file is
	// expected here since this command is what sets it.
	if err := config.EnsureConfigExists(home); err != nil {
		var initErr *config.ConfigInitError
		if !errors.As(err, &initErr) {
			return err
		}
	}

	cfg, err := config.Load(home)
	if err != nil {
		return err
	}

	cfg.VaultDir = vaultDir
	if editor != "" {
		cfg.Editor = editor
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Initialized quill config at %s\n", cfg.GetConfigPath())
	return nil
}
