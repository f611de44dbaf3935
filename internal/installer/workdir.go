package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workdir is the scoped working directory for a single run. Every
// intermediate artifact (archive, signature, extraction tree, probe
// files) lives under it, so one Remove reclaims everything.
type Workdir struct {
	Path string
}

// NewWorkdir creates a fresh uniquely named working directory under
// base, or under the system temp directory when base is empty. Mode
// 0700 keeps downloaded artifacts private to the invoking user.
func NewWorkdir(base string) (*Workdir, error) {
	if base == "" {
		base = os.TempDir()
	}

	path := filepath.Join(base, "dune-install-"+uuid.NewString())
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}

	return &Workdir{Path: path}, nil
}

// Join resolves a path inside the working directory.
func (w *Workdir) Join(elem ...string) string {
	return filepath.Join(append([]string{w.Path}, elem...)...)
}

// Remove deletes the working directory and everything in it. Safe to
// call more than once.
func (w *Workdir) Remove() error {
	if err := os.RemoveAll(w.Path); err != nil {
		return fmt.Errorf("remove working directory: %w", err)
	}
	return nil
}
