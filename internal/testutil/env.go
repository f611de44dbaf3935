// Package testutil provides helpers for testing the installer in
// isolation.
package testutil

import (
	"path/filepath"
	"testing"
)

// SetupTestEnv points the process environment at a throwaway home so
// tests never read or touch the developer's real shell configuration.
// It returns the isolated home directory. Cleanup is handled by
// t.TempDir and t.Setenv.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()

	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/bash")
	t.Setenv("PATH", filepath.Join(home, "bin")+":/usr/bin:/bin")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("DUNE_INSTALL_DEBUG", "")
	t.Setenv("DUNE_INSTALL_GPG_KEYRING", "")

	return home
}
