// Package env captures the ambient process environment once at startup.
//
// Every other package reads from a Snapshot instead of calling os.Getenv,
// which keeps platform resolution, conflict detection, and shell
// integration deterministic under synthetic environments in tests.
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Snapshot holds the environment values the installer consumes.
// It is immutable after Capture.
type Snapshot struct {
	// Home is the user's home directory ($HOME). Required.
	Home string
	// Shell is the login shell path ($SHELL). May be empty.
	Shell string
	// Path is the raw search path ($PATH). May be empty.
	Path string
	// XDGConfigHome is $XDG_CONFIG_HOME. May be empty.
	XDGConfigHome string
}

// MissingPrerequisiteError indicates a required part of the environment
// is absent. This is fatal: the installer cannot construct any paths
// without it.
type MissingPrerequisiteError struct {
	Name string
}

func (e *MissingPrerequisiteError) Error() string {
	return fmt.Sprintf("missing required environment variable: %s", e.Name)
}

// Capture reads the process environment into a Snapshot.
// HOME must be set; everything else is optional.
func Capture() (*Snapshot, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return nil, &MissingPrerequisiteError{Name: "HOME"}
	}

	return &Snapshot{
		Home:          home,
		Shell:         os.Getenv("SHELL"),
		Path:          os.Getenv("PATH"),
		XDGConfigHome: os.Getenv("XDG_CONFIG_HOME"),
	}, nil
}

// PathEntries splits the search path into its directory segments,
// preserving order and dropping empty segments.
func (s *Snapshot) PathEntries() []string {
	if s.Path == "" {
		return nil
	}

	raw := strings.Split(s.Path, string(os.PathListSeparator))
	entries := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg == "" {
			continue
		}
		entries = append(entries, seg)
	}
	return entries
}

// AbbreviateHome rewrites a path under the home directory using the
// literal $HOME prefix, so appended config lines stay portable if the
// home directory moves.
func (s *Snapshot) AbbreviateHome(path string) string {
	cleaned := filepath.Clean(path)
	home := filepath.Clean(s.Home)

	if cleaned == home {
		return "$HOME"
	}
	if strings.HasPrefix(cleaned, home+string(filepath.Separator)) {
		return "$HOME" + cleaned[len(home):]
	}
	return cleaned
}

// ExpandHome resolves the $HOME, ${HOME}, and leading ~ spellings to the
// snapshot's home directory. Paths without a home prefix pass through
// cleaned.
func (s *Snapshot) ExpandHome(path string) string {
	switch {
	case path == "~" || path == "$HOME" || path == "${HOME}":
		return filepath.Clean(s.Home)
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(s.Home, path[2:])
	case strings.HasPrefix(path, "$HOME/"):
		return filepath.Join(s.Home, path[len("$HOME/"):])
	case strings.HasPrefix(path, "${HOME}/"):
		return filepath.Join(s.Home, path[len("${HOME}/"):])
	default:
		return filepath.Clean(path)
	}
}
