package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var (
	ErrInvalidFilename = errors.New("invalid filename")
	ErrOutsideDir      = errors.New("path is outside the upload directory")
)

var stripRe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedFile reports whether name carries one of the image extensions,
// compared case-insensitively.
func AllowedFile(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(name[idx+1:])]
	return ok
}

// SecureFilename reduces a client supplied name to a flat ASCII filename
// that is safe to join with the upload directory. It may return "".
func SecureFilename(name string) string {
	// decompose, then keep only the ASCII part of every rune
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = stripRe.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

type File struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Store keeps uploaded images in one flat directory. Saving a name that
// already exists replaces the previous file.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// URL is the image_url stored for a saved file.
func (s *Store) URL(name string) string {
	return filepath.ToSlash(filepath.Join(s.dir, name))
}

// Save writes r under name, which must already be sanitized, and returns
// its image_url.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrInvalidFilename
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return s.URL(name), nil
}

// Remove deletes the file behind an image_url produced by this store.
func (s *Store) Remove(url string) error {
	name := filepath.Base(filepath.FromSlash(url))
	if s.URL(name) != url {
		return ErrOutsideDir
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the stored files, skipping directories and in-flight temp files.
func (s *Store) List() ([]File, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name:    entry.Name(),
			Path:    s.URL(entry.Name()),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}
