package installer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		mode := os.FileMode(0644)
		if filepath.Base(filepath.Dir(rel)) == "bin" {
			mode = 0755
		}
		if err := os.WriteFile(path, []byte(content), mode); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDistRoot(t *testing.T) {
	t.Run("Single wrapping directory", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{"dune-1.2.0/bin/dune": "bin"})

		got, err := DistRoot(dir)
		if err != nil {
			t.Fatalf("DistRoot() error = %v", err)
		}
		if want := filepath.Join(dir, "dune-1.2.0"); got != want {
			t.Errorf("DistRoot() = %q, want %q", got, want)
		}
	})

	t.Run("Flat archive", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			"bin/dune":  "bin",
			"README.md": "readme",
		})

		got, err := DistRoot(dir)
		if err != nil {
			t.Fatalf("DistRoot() error = %v", err)
		}
		if got != dir {
			t.Errorf("DistRoot() = %q, want the extraction dir %q", got, dir)
		}
	})
}

func TestInstallTreeRoundTrip(t *testing.T) {
	dist := t.TempDir()
	writeTree(t, dist, map[string]string{
		"bin/dune":                 "#!/bin/sh\necho dune\n",
		"share/dune/env/env.bash":  "export PATH\n",
		"share/dune/env/env.zsh":   "export PATH\n",
		"share/doc/dune/README.md": "docs\n",
	})

	root := filepath.Join(t.TempDir(), ".local")
	if err := InstallTree(dist, root); err != nil {
		t.Fatalf("InstallTree() error = %v", err)
	}

	bin := filepath.Join(root, "bin", "dune")
	info, err := os.Stat(bin)
	if err != nil {
		t.Fatalf("installed binary missing: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("binary mode = %o, executable bit lost", info.Mode().Perm())
	}

	content, err := os.ReadFile(filepath.Join(root, "share", "dune", "env", "env.bash"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "export PATH\n" {
		t.Errorf("env file content = %q", content)
	}
}

func TestInstallTreeOverwritesAndPreserves(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bin/dune":         "old dune",
		"bin/unrelated":    "keep me",
		"share/other/file": "keep me too",
	})

	dist := t.TempDir()
	writeTree(t, dist, map[string]string{
		"bin/dune":                "new dune",
		"share/dune/env/env.bash": "export PATH\n",
	})

	if err := InstallTree(dist, root); err != nil {
		t.Fatalf("InstallTree() error = %v", err)
	}

	checks := map[string]string{
		"bin/dune":                "new dune",
		"bin/unrelated":           "keep me",
		"share/other/file":        "keep me too",
		"share/dune/env/env.bash": "export PATH\n",
	}
	for rel, want := range checks {
		content, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			t.Errorf("%s: %v", rel, err)
			continue
		}
		if string(content) != want {
			t.Errorf("%s = %q, want %q", rel, content, want)
		}
	}
}

func TestInstallTreeCreatesRoot(t *testing.T) {
	dist := t.TempDir()
	writeTree(t, dist, map[string]string{"bin/dune": "bin"})

	root := filepath.Join(t.TempDir(), "nested", ".dune")
	if err := InstallTree(dist, root); err != nil {
		t.Fatalf("InstallTree() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "bin", "dune")); err != nil {
		t.Errorf("install into fresh nested root failed: %v", err)
	}

	// Installing again over the existing root succeeds.
	if err := InstallTree(dist, root); err != nil {
		t.Errorf("second InstallTree() error = %v", err)
	}
}

func TestInstallTreeCopiesSymlinks(t *testing.T) {
	dist := t.TempDir()
	writeTree(t, dist, map[string]string{"bin/dune": "bin"})
	if err := os.Symlink("dune", filepath.Join(dist, "bin", "dune-link")); err != nil {
		t.Fatal(err)
	}

	root := filepath.Join(t.TempDir(), ".local")
	if err := InstallTree(dist, root); err != nil {
		t.Fatalf("InstallTree() error = %v", err)
	}

	target, err := os.Readlink(filepath.Join(root, "bin", "dune-link"))
	if err != nil {
		t.Fatalf("symlink not copied: %v", err)
	}
	if target != "dune" {
		t.Errorf("symlink target = %q, want dune", target)
	}
}
