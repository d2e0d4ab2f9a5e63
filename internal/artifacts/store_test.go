package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndDelete(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	rel, err := s.Save("passport.pdf", strings.NewReader("contenido"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Ext(rel) != ".pdf" {
		t.Fatalf("expected .pdf extension, got %q", rel)
	}
	if !s.Exists(rel) {
		t.Fatal("file should exist after Save")
	}

	b, err := os.ReadFile(filepath.Join(s.Dir(), rel))
	if err != nil || string(b) != "contenido" {
		t.Fatalf("content mismatch: %q err=%v", b, err)
	}

	if err := s.Delete(rel); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists(rel) {
		t.Fatal("file should be gone after Delete")
	}
}

func TestDeleteIsTolerant(t *testing.T) {
	s, _ := NewStore(t.TempDir())

	// Inexistente: no es error.
	if err := s.Delete("no-such-file.pdf"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	// URL externa heredada: se ignora.
	if err := s.Delete("https://cdn.example.com/doc.pdf"); err != nil {
		t.Fatalf("Delete URL: %v", err)
	}
	// Vacío: no-op.
	if err := s.Delete(""); err != nil {
		t.Fatalf("Delete empty: %v", err)
	}
}

func TestDeleteRejectsEscapingPath(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(filepath.Join(dir, "uploads"))

	outside := filepath.Join(dir, "secret.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_ = s.Delete("../secret.txt")
	if _, err := os.Stat(outside); err != nil {
		t.Fatal("file outside the store dir must not be touched")
	}
}

func TestSanitizeExt(t *testing.T) {
	cases := map[string]string{
		"doc.pdf":        ".pdf",
		"photo.JPEG":     ".jpeg",
		"noext":          "",
		"weird.p-d-f":    "",
		"archive.tar.gz": ".gz",
	}
	for in, want := range cases {
		if got := sanitizeExt(in); got != want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
