// Package files provides the local-disk resume store. Resumes live under
// <root>/resumes and are addressed by web paths beginning with the
// reserved upload prefix.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"job-board-api/internal/storage"

	"github.com/google/uuid"
)

// ResumePrefix is the reserved web prefix every stored resume path starts with.
const ResumePrefix = "/uploads/resumes/"

// LocalStore stores resume files on the local filesystem.
type LocalStore struct {
	root string
}

// NewLocalStore creates the resume directory under root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	dir := filepath.Join(root, "resumes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create resume directory %s: %w", dir, err)
	}
	return &LocalStore{root: root}, nil
}

// Compile-time check to ensure LocalStore implements ResumeStore
var _ storage.ResumeStore = (*LocalStore)(nil)

// Save streams the upload to disk under a generated name, keeping the
// original extension, and returns the web path.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	dst := filepath.Join(s.root, "resumes", name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create resume file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close resume file: %w", err)
	}
	return ResumePrefix + name, nil
}

// Remove deletes the file behind a stored resume path. A file that is
// already gone is not an error; deletes must be idempotent.
func (s *LocalStore) Remove(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, ResumePrefix) {
		return fmt.Errorf("refusing to remove path outside resume prefix: %s", path)
	}
	name := filepath.Base(path)
	err := os.Remove(filepath.Join(s.root, "resumes", name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		log.Printf("Error removing resume file %s: %v", path, err)
		return fmt.Errorf("failed to remove resume file: %w", err)
	}
	return nil
}
