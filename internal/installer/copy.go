package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DistRoot locates the distribution tree inside an extraction
// directory. Release archives wrap everything in a single versioned
// top-level directory; when exactly one directory and nothing else is
// present, that directory is the root, otherwise the extraction
// directory itself is.
func DistRoot(extractDir string) (string, error) {
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return "", fmt.Errorf("read extraction directory: %w", err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(extractDir, entries[0].Name()), nil
	}
	return extractDir, nil
}

// InstallTree creates installRoot if needed and copies every top-level
// entry of distRoot into it, overwriting entries of the same name.
// Entries the distribution does not carry are left alone, so an
// install into an existing root is additive.
func InstallTree(distRoot, installRoot string) error {
	if err := os.MkdirAll(installRoot, 0755); err != nil {
		return fmt.Errorf("create install root: %w", err)
	}

	entries, err := os.ReadDir(distRoot)
	if err != nil {
		return fmt.Errorf("read distribution root: %w", err)
	}

	for _, entry := range entries {
		src := filepath.Join(distRoot, entry.Name())
		dst := filepath.Join(installRoot, entry.Name())
		if err := copyEntry(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func copyEntry(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(src, dst)
	case info.IsDir():
		return copyDir(src, dst, info)
	default:
		return copyFile(src, dst, info)
	}
}

func copyDir(src, dst string, info os.FileInfo) error {
	if err := os.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
		return fmt.Errorf("create directory %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", src, err)
	}
	for _, entry := range entries {
		if err := copyEntry(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a regular file, preserving its mode so executables
// stay executable.
func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	// An overwritten destination keeps its old mode otherwise.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("set mode of %s: %w", dst, err)
	}
	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("read symlink %s: %w", src, err)
	}
	os.Remove(dst)
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("create symlink %s: %w", dst, err)
	}
	return nil
}
