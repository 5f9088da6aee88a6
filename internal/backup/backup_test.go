package backup

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func writeNote(t testing.TB, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func archiveEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer gz.Close()

	entries := make(map[string]string)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar next: %v", err)
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("tar read: %v", err)
		}
		entries[hdr.Name] = string(body)
	}
	return entries
}

func TestArchiveCollectsMarkdownNotes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeNote(t, dir, "alpha.md", "alpha body")
	writeNote(t, dir, "projects/beta.md", "beta body")
	writeNote(t, dir, "image.png", "binary")
	writeNote(t, dir, ".obsidian/meta.md", "editor metadata")
	writeNote(t, dir, "archive/old.md", "archived")

	var buf bytes.Buffer
	if err := Archive(dir, []string{"archive"}, &buf); err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}

	entries := archiveEntries(t, buf.Bytes())
	if got := entries["alpha.md"]; got != "alpha body" {
		t.Fatalf("expected alpha.md in archive, got %q", got)
	}
	if got := entries["projects/beta.md"]; got != "beta body" {
		t.Fatalf("expected nested note in archive, got %q", got)
	}
	for name := range entries {
		if strings.HasSuffix(name, ".png") {
			t.Fatalf("expected non-markdown files to be excluded, found %q", name)
		}
		if strings.HasPrefix(name, ".obsidian/") || strings.HasPrefix(name, "archive/") {
			t.Fatalf("expected ignored folders to be excluded, found %q", name)
		}
	}
}

type fakeUploader struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &manager.UploadOutput{}, nil
}

func TestExportUploadsWithTimestampedKey(t *testing.T) {
	t.Parallel()

	fake := &fakeUploader{}
	e := &Exporter{
		uploader: fake,
		bucket:   "quill-backups",
		prefix:   "vault",
		now: func() time.Time {
			return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		},
	}

	key, err := e.Export(context.Background(), strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	want := "vault/2024-05-01T12-30-00Z.tar.gz"
	if key != want {
		t.Fatalf("expected key %q, got %q", want, key)
	}
	if fake.input == nil || *fake.input.Bucket != "quill-backups" {
		t.Fatalf("expected upload to target the configured bucket, got %+v", fake.input)
	}
	if string(fake.body) != "payload" {
		t.Fatalf("expected archive body to be streamed, got %q", fake.body)
	}
}

func TestExportWithoutPrefix(t *testing.T) {
	t.Parallel()

	fake := &fakeUploader{}
	e := &Exporter{
		uploader: fake,
		bucket:   "quill-backups",
		now: func() time.Time {
			return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		},
	}

	key, err := e.Export(context.Background(), strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if key != "2024-05-01T12-30-00Z.tar.gz" {
		t.Fatalf("expected bare timestamped key, got %q", key)
	}
}
