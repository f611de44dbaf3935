package installer

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OwnershipMode controls what happens to file ownership during
// extraction.
type OwnershipMode int

const (
	// OwnershipCurrentUser leaves every extracted file owned by the
	// invoking user, ignoring archive metadata.
	OwnershipCurrentUser OwnershipMode = iota
	// OwnershipDefault restores archive ownership when running as
	// root and otherwise behaves like OwnershipCurrentUser, matching
	// tar's default.
	OwnershipDefault
)

// Extractor unpacks tar.gz archives.
type Extractor struct {
	mode OwnershipMode
}

// NewExtractor creates an extractor with the given ownership mode.
func NewExtractor(mode OwnershipMode) *Extractor {
	return &Extractor{mode: mode}
}

// ExtractTarGz unpacks archivePath into destDir. Entries that would
// escape destDir are rejected. Regular files, directories, and
// symlinks are materialized; other entry types are skipped.
func (e *Extractor) ExtractTarGz(archivePath, destDir string) error {
	archive, err := os.Open(archivePath)
	if err != nil {
		return &ExtractError{Archive: archivePath, Cause: fmt.Errorf("open archive: %w", err)}
	}
	defer archive.Close()

	gz, err := gzip.NewReader(archive)
	if err != nil {
		return &ExtractError{Archive: archivePath, Cause: fmt.Errorf("read gzip stream: %w", err)}
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return &ExtractError{Archive: archivePath, Cause: err}
	}

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &ExtractError{Archive: archivePath, Cause: fmt.Errorf("read tar header: %w", err)}
		}

		target := filepath.Join(destDir, header.Name)
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return &ExtractError{
				Archive: archivePath,
				Cause:   fmt.Errorf("archive entry escapes destination: %s", header.Name),
			}
		}

		if err := e.writeEntry(tr, header, target); err != nil {
			return &ExtractError{Archive: archivePath, Cause: err}
		}
	}
}

func (e *Extractor) writeEntry(tr *tar.Reader, header *tar.Header, target string) error {
	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, os.FileMode(header.Mode).Perm()|0700); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create parent of %s: %w", target, err)
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode).Perm())
		if err != nil {
			return fmt.Errorf("create file %s: %w", target, err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return fmt.Errorf("write file %s: %w", target, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close file %s: %w", target, err)
		}

	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create parent of %s: %w", target, err)
		}
		os.Remove(target)
		if err := os.Symlink(header.Linkname, target); err != nil {
			return fmt.Errorf("create symlink %s: %w", target, err)
		}

	default:
		return nil
	}

	if e.restoreOwnership() && header.Typeflag != tar.TypeSymlink {
		if err := os.Chown(target, header.Uid, header.Gid); err != nil {
			return fmt.Errorf("restore ownership of %s: %w", target, err)
		}
	}
	return nil
}

// restoreOwnership reports whether archive uid/gid should be applied.
// Only root may chown, which matches tar's default behavior.
func (e *Extractor) restoreOwnership() bool {
	return e.mode == OwnershipDefault && os.Geteuid() == 0
}
