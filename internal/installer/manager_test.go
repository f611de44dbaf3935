package installer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dunetools/dune-install/internal/platform"
	"github.com/dunetools/dune-install/internal/ui"
)

// releaseServer serves a fabricated release: the distribution archive
// plus, optionally, its checksum manifest.
func releaseServer(t *testing.T, version string, target platform.Target, withChecksums bool) *httptest.Server {
	t.Helper()

	archiveDir := t.TempDir()
	archivePath := filepath.Join(archiveDir, target.ArtifactName(version))
	buildArchive(t, archivePath, []archiveEntry{
		{name: fmt.Sprintf("dune-%s-%s/bin/dune", version, target), content: "#!/bin/sh\necho dune\n", mode: 0755},
		{name: fmt.Sprintf("dune-%s-%s/share/dune/env/env.bash", version, target), content: "export PATH\n", mode: 0644},
	})
	archive, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatal(err)
	}

	sum := sha256.Sum256(archive)
	manifest := hex.EncodeToString(sum[:]) + "  " + target.ArtifactName(version) + "\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/"+version+"/"+target.ArtifactName(version), func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})
	mux.HandleFunc("/"+version+"/checksums.txt", func(w http.ResponseWriter, r *http.Request) {
		if !withChecksums {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, manifest)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func pointAtServer(t *testing.T, srv *httptest.Server) {
	t.Helper()
	old := releaseBaseURL
	releaseBaseURL = srv.URL
	t.Cleanup(func() { releaseBaseURL = old })
}

func newTestManager(t *testing.T, tempBase string) *Manager {
	t.Helper()
	var out bytes.Buffer
	return NewManager(Config{
		Output:   ui.NewOutput(&out, &out),
		Logger:   log.New(io.Discard),
		TempBase: tempBase,
	})
}

func TestManagerInstall(t *testing.T) {
	const version = "1.2.0"
	target := platform.TargetLinuxAMD64

	srv := releaseServer(t, version, target, true)
	pointAtServer(t, srv)

	tempBase := t.TempDir()
	root := filepath.Join(t.TempDir(), ".local")

	m := newTestManager(t, tempBase)
	result, err := m.Install(context.Background(), &InstallPlan{
		Target:      target,
		Version:     version,
		InstallRoot: root,
	})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	if result.Verification != MethodSHA256 {
		t.Errorf("Verification = %v, want sha256", result.Verification)
	}

	bin := filepath.Join(root, "bin", "dune")
	info, err := os.Stat(bin)
	if err != nil {
		t.Fatalf("installed binary missing: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("binary mode = %o, want executable", info.Mode().Perm())
	}
	if _, err := os.Stat(filepath.Join(root, "share", "dune", "env", "env.bash")); err != nil {
		t.Errorf("env loader missing: %v", err)
	}

	// The scoped working directory is gone.
	entries, err := os.ReadDir(tempBase)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("working directory survived the install: %v", entries)
	}
}

func TestManagerInstallUnverifiedRelease(t *testing.T) {
	const version = "1.2.0"
	target := platform.TargetLinuxAMD64

	srv := releaseServer(t, version, target, false)
	pointAtServer(t, srv)

	m := newTestManager(t, t.TempDir())
	result, err := m.Install(context.Background(), &InstallPlan{
		Target:      target,
		Version:     version,
		InstallRoot: filepath.Join(t.TempDir(), ".local"),
	})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if result.Verification != MethodUnverified {
		t.Errorf("Verification = %v, want unverified", result.Verification)
	}
}

func TestManagerInstallDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	pointAtServer(t, srv)

	tempBase := t.TempDir()
	root := filepath.Join(t.TempDir(), ".local")

	m := newTestManager(t, tempBase)
	_, err := m.Install(context.Background(), &InstallPlan{
		Target:      platform.TargetLinuxAMD64,
		Version:     "9.9.9",
		InstallRoot: root,
	})

	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("error = %v, want *DownloadError", err)
	}

	// The install root was never touched and the workdir is reaped.
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("install root created despite download failure")
	}
	entries, _ := os.ReadDir(tempBase)
	if len(entries) != 0 {
		t.Errorf("working directory survived the failed install: %v", entries)
	}
}

func TestManagerInstallChecksumMismatch(t *testing.T) {
	const version = "1.2.0"
	target := platform.TargetLinuxAMD64

	archiveDir := t.TempDir()
	archivePath := filepath.Join(archiveDir, target.ArtifactName(version))
	buildArchive(t, archivePath, []archiveEntry{
		{name: "dune/bin/dune", content: "bin", mode: 0755},
	})
	archive, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/"+version+"/"+target.ArtifactName(version), func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})
	mux.HandleFunc("/"+version+"/checksums.txt", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "0000000000000000000000000000000000000000000000000000000000000000  "+target.ArtifactName(version)+"\n")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	pointAtServer(t, srv)

	root := filepath.Join(t.TempDir(), ".local")
	m := newTestManager(t, t.TempDir())
	_, err = m.Install(context.Background(), &InstallPlan{
		Target:      target,
		Version:     version,
		InstallRoot: root,
	})

	var verr *VerifyError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *VerifyError", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("install root created despite failed verification")
	}
}
