// Package filestore manages the upload directory holding receipt and
// maintenance document attachments.
//
// Files are addressed by their stored name, a nanosecond-timestamp prefix
// plus the sanitized original filename. The timestamp keeps concurrent
// uploads of the same filename apart; two uploads landing in the same
// nanosecond with the same name overwrite each other (last write wins).
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound            = errors.New("file not found")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
)

type Store struct {
	root    string
	allowed map[string]struct{}
}

// New creates a store rooted at dir, creating the directory if absent.
// allowedExtensions are compared case-insensitively against the suffix
// after the last dot.
func New(dir string, allowedExtensions []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &Store{root: dir, allowed: allowed}, nil
}

// IsAllowedExtension reports whether name carries an allow-listed
// extension. Names without a dot are rejected.
func (s *Store) IsAllowedExtension(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	_, ok := s.allowed[strings.ToLower(name[i+1:])]
	return ok
}

// Save validates, sanitizes and writes the upload, returning the stored
// name the caller must reference in the database row. The file is on disk
// before Save returns, so callers inserting the row afterwards can never
// persist a reference to a file that was not written.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	if !s.IsAllowedExtension(name) {
		return "", fmt.Errorf("%w: %q", ErrExtensionNotAllowed, name)
	}

	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(name))

	f, err := os.Create(filepath.Join(s.root, storedName))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return storedName, nil
}

// Open returns the stored file for reading. Names carrying traversal
// sequences are refused before the filesystem is consulted.
func (s *Store) Open(storedName string) (io.ReadCloser, error) {
	if storedName == "" ||
		strings.Contains(storedName, "..") ||
		strings.ContainsAny(storedName, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, storedName)
	}

	f, err := os.Open(filepath.Join(s.root, storedName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, storedName)
		}
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return f, nil
}

// sanitizeFilename strips anything that could move the path out of the
// managed root: directory components, separators, unsafe runes and
// leading dots. Dot runs are collapsed so a stored name never contains
// a ".." sequence, which Open refuses.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "archivo"
	}
	return name
}
