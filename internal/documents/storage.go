package documents

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// Storage persists uploads and signed outputs under a single local
// directory. Generated names carry a millisecond timestamp and a random
// suffix so concurrent uploads never collide.
type Storage struct {
	dir string
}

// NewStorage creates the upload directory if absent.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the upload directory path.
func (s *Storage) Dir() string { return s.dir }

// GenerateFilename builds a collision-resistant stored name from the field
// name and the original file's extension. The original name contributes
// nothing beyond its extension.
func (s *Storage) GenerateFilename(field, originalName string) string {
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	return field + "-" + suffix + filepath.Ext(originalName)
}

// Path resolves a stored filename inside the upload directory. The name is
// reduced to its base so callers cannot escape the directory.
func (s *Storage) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// Exists reports whether the stored file is present.
func (s *Storage) Exists(filename string) bool {
	info, err := os.Stat(s.Path(filename))
	return err == nil && !info.IsDir()
}

// Save streams content into the named file and returns the byte count.
func (s *Storage) Save(filename string, content io.Reader) (int64, error) {
	f, err := os.Create(s.Path(filename))
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// WriteFile writes a complete byte slice to the named file.
func (s *Storage) WriteFile(filename string, data []byte) error {
	return os.WriteFile(s.Path(filename), data, 0o644)
}
