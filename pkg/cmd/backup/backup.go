package backup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/backup"
	"github.com/quillnotes/quill/internal/state"
)

func NewCmdBackup(s *state.State) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the vault and upload it to S3.",
		Long: heredoc.Doc(`
			Pack every markdown note into a gzipped tarball. By default the
			archive is uploaded to the S3 bucket from the backup section of
			the config; with --output it is written to a local file instead.
		`),
		Example: heredoc.Doc(`
			quill backup
			quill backup --output vault.tar.gz
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the archive to a local file instead of uploading")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, output string) error {
	ignored := s.Config.Search.IgnoredFolders

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating archive file: %w", err)
		}

		if err := backup.Archive(s.Vault, ignored, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", output)
		return nil
	}

	bucket := strings.TrimSpace(s.Config.Backup.Bucket)
	if bucket == "" {
		return fmt.Errorf("no backup bucket configured, set backup.bucket or use --output")
	}

	ctx := cmd.Context()
	exporter, err := backup.NewExporter(ctx, bucket, s.Config.Backup.Prefix, s.Config.Backup.Region)
	if err != nil {
		return err
	}

	pr, archiveErrs := newArchivePipe(s.Vault, ignored)
	defer pr.Close()

	key, err := exporter.Export(ctx, pr)
	if err != nil {
		return err
	}
	if err := <-archiveErrs; err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded s3://%s/%s\n", bucket, key)
	return nil
}

// newArchivePipe streams the archive through a pipe so large vaults never
// materialize in memory. The returned channel yields the archiving error.
func newArchivePipe(vault string, ignored []string) (*io.PipeReader, <-chan error) {
	pr, pw := io.Pipe()
	errs := make(chan error, 1)

	go func() {
		err := backup.Archive(vault, ignored, pw)
		_ = pw.CloseWithError(err)
		errs <- err
		close(errs)
	}()

	return pr, errs
}
