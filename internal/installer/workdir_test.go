package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWorkdir(t *testing.T) {
	base := t.TempDir()

	wd, err := NewWorkdir(base)
	if err != nil {
		t.Fatalf("NewWorkdir() error = %v", err)
	}

	if filepath.Dir(wd.Path) != base {
		t.Errorf("workdir %q not under base %q", wd.Path, base)
	}
	if !strings.HasPrefix(filepath.Base(wd.Path), "dune-install-") {
		t.Errorf("workdir name %q lacks the dune-install prefix", filepath.Base(wd.Path))
	}

	info, err := os.Stat(wd.Path)
	if err != nil {
		t.Fatalf("workdir missing: %v", err)
	}
	if got := info.Mode().Perm(); got != 0700 {
		t.Errorf("workdir mode = %o, want 0700", got)
	}
}

func TestWorkdirUniqueness(t *testing.T) {
	base := t.TempDir()

	a, err := NewWorkdir(base)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWorkdir(base)
	if err != nil {
		t.Fatal(err)
	}
	if a.Path == b.Path {
		t.Errorf("two workdirs share the path %q", a.Path)
	}
}

func TestWorkdirRemove(t *testing.T) {
	base := t.TempDir()

	wd, err := NewWorkdir(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(wd.Join("artifact.tar.gz"), []byte("data"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := wd.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(wd.Path); !os.IsNotExist(err) {
		t.Errorf("workdir still present after Remove: %v", err)
	}

	// A second Remove is a no-op.
	if err := wd.Remove(); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("base directory not empty after Remove: %v", entries)
	}
}

func TestWorkdirJoin(t *testing.T) {
	wd := &Workdir{Path: "/tmp/dune-install-x"}
	if got, want := wd.Join("dist", "bin"), "/tmp/dune-install-x/dist/bin"; got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}
