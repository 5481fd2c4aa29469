// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// WriteArchive extracts a txtar archive into dir.
func WriteArchive(t testing.TB, dir string, archive *txtar.Archive) {
	t.Helper()
	for _, f := range archive.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", f.Name, err)
		}
	}
}

// WriteTree parses data as a txtar archive and extracts it into dir.
func WriteTree(t testing.TB, dir, data string) {
	t.Helper()
	WriteArchive(t, dir, txtar.Parse([]byte(data)))
}

// WriteTreeFile extracts the txtar archive stored at path into dir.
func WriteTreeFile(t testing.TB, dir, path string) {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to parse txtar file %s: %v", path, err)
	}
	WriteArchive(t, dir, archive)
}
