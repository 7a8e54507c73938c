package filestore

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testExtensions = []string{"png", "jpg", "jpeg", "pdf"}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), testExtensions)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

func TestIsAllowedExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"receipt.PDF", true},
		{"x.jpg", true},
		{"foto.jpeg", true},
		{"scan.png", true},
		{"archive.exe", false},
		{"noext", false},
		{"", false},
		{".pdf", true},
		{"double.pdf.exe", false},
	}

	s := newTestStore(t)
	for _, tt := range tests {
		if got := s.IsAllowedExtension(tt.name); got != tt.want {
			t.Errorf("IsAllowedExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	content := []byte("%PDF-1.4 fake receipt")

	storedName, err := s.Save("factura.pdf", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(storedName, "_factura.pdf") {
		t.Errorf("stored name %q should end with _factura.pdf", storedName)
	}

	rc, err := s.Open(storedName)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("retrieved bytes differ from uploaded bytes")
	}
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save("malware.exe", strings.NewReader("MZ"))
	if !errors.Is(err, ErrExtensionNotAllowed) {
		t.Fatalf("expected ErrExtensionNotAllowed, got %v", err)
	}
}

func TestSaveSameNameTwiceYieldsDistinctStoredNames(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Save("recibo.jpg", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := s.Save("recibo.jpg", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct stored names, both were %q", first)
	}
}

func TestSaveSanitizesTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, testExtensions)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	storedName, err := s.Save("../../etc/passwd.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.ContainsAny(storedName, `/\`) || strings.Contains(storedName, "..") {
		t.Errorf("stored name %q still contains traversal characters", storedName)
	}
	if _, err := os.Stat(filepath.Join(dir, storedName)); err != nil {
		t.Errorf("stored file not found under root: %v", err)
	}
}

func TestSaveCollapsesInteriorDotRuns(t *testing.T) {
	s := newTestStore(t)

	// Every name Save accepts must stay retrievable through Open, so
	// the sanitizer may not leave ".." sequences behind.
	for _, name := range []string{"a..b.jpg", "informe....final.pdf", "...foto.png"} {
		storedName, err := s.Save(name, strings.NewReader("x"))
		if err != nil {
			t.Fatalf("save %q: %v", name, err)
		}
		if strings.Contains(storedName, "..") {
			t.Errorf("stored name %q still contains a dot run", storedName)
		}

		rc, err := s.Open(storedName)
		if err != nil {
			t.Errorf("Open(%q) after saving %q: %v", storedName, name, err)
			continue
		}
		rc.Close()
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"../secret.pdf", "a/../../b.pdf", `..\boot.ini`, ""} {
		if _, err := s.Open(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q) = %v, want ErrNotFound", name, err)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Open("123_nope.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewCreatesRootIdempotently(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	if _, err := New(dir, testExtensions); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := New(dir, testExtensions); err != nil {
		t.Fatalf("second create should be a no-op: %v", err)
	}
}
