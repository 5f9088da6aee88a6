// Package backup archives a vault's markdown notes and uploads the archive to
// object storage.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Archive writes a gzipped tarball of every markdown note under vault to w.
// Entries use vault-relative forward-slash paths. Dot directories and the
// configured ignored folders are skipped.
func Archive(vault string, ignored []string, w io.Writer) error {
	skip := make(map[string]struct{}, len(ignored))
	for _, name := range ignored {
		skip[name] = struct{}{}
	}

	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	err := filepath.WalkDir(vault, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != vault {
				if strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if _, ok := skip[name]; ok {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		rel, err := filepath.Rel(vault, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, copyErr := io.Copy(tw, f)
		closeErr := f.Close()
		if copyErr != nil {
			return copyErr
		}
		return closeErr
	})
	if err != nil {
		return fmt.Errorf("backup: archiving %s: %w", vault, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("backup: closing archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("backup: closing gzip stream: %w", err)
	}

	return nil
}
