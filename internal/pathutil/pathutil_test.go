package pathutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestVaultRelativeReturnsForwardSlashes(t *testing.T) {
	vaultParts := []string{"home", "user", "vault"}
	fileParts := append(append([]string{}, vaultParts...), "subdir", "file.md")

	posixVault := filepath.Join(vaultParts...)
	posixFile := filepath.Join(fileParts...)

	rel, err := VaultRelative(posixVault, posixFile)
	if err != nil {
		t.Fatalf("VaultRelative returned error for POSIX paths: %v", err)
	}
	if rel != "subdir/file.md" {
		t.Fatalf("expected relative path 'subdir/file.md', got %q", rel)
	}

	windowsVault := strings.ReplaceAll(posixVault, string(filepath.Separator), "\\")
	windowsFile := strings.ReplaceAll(posixFile, string(filepath.Separator), "\\")

	rel, err = VaultRelative(windowsVault, windowsFile)
	if err != nil {
		t.Fatalf("VaultRelative returned error for Windows paths: %v", err)
	}
	if rel != "subdir/file.md" {
		t.Fatalf("expected relative path 'subdir/file.md', got %q", rel)
	}
}

func TestNormalizePathCleansRedundantSegments(t *testing.T) {
	got := NormalizePath("vault//sub/../sub/note.md")
	want := filepath.Join("vault", "sub", "note.md")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if NormalizePath("") != "" {
		t.Fatal("expected empty input to stay empty")
	}
}
