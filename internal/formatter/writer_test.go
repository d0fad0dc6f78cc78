package formatter

import (
	"path/filepath"
	"testing"

	internaltesting "github.com/mixport/mixport/internal/testing"
)

func TestWriteDocument(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "output")

		path, err := WriteDocument([]byte("hello\n"), "doc.md", dir)
		if err != nil {
			t.Fatalf("WriteDocument failed: %v", err)
		}
		if path != filepath.Join(dir, "doc.md") {
			t.Errorf("unexpected path %q", path)
		}

		internaltesting.AssertDirExists(t, dir)
		if got := internaltesting.MustReadFile(t, path); got != "hello\n" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()

		if _, err := WriteDocument([]byte("first version with more bytes\n"), "doc.m3u", dir); err != nil {
			t.Fatalf("first write failed: %v", err)
		}
		path, err := WriteDocument([]byte("second\n"), "doc.m3u", dir)
		if err != nil {
			t.Fatalf("second write failed: %v", err)
		}

		if got := internaltesting.MustReadFile(t, path); got != "second\n" {
			t.Errorf("expected overwrite, got %q", got)
		}
	})
}
