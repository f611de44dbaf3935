// Package installer fetches, verifies, and unpacks a dune binary
// distribution into the chosen install root. All intermediate state
// lives in a scoped working directory that is removed on every exit
// path.
package installer

import (
	"fmt"

	"github.com/dunetools/dune-install/internal/platform"
)

// releaseBaseURL is the root of the published binary distribution.
// Variable so tests can point plans at a local server.
var releaseBaseURL = "https://github.com/ocaml-dune/binary-distribution/releases/download"

// InstallPlan describes one installation before any side effect
// happens. ArchiveTempPath is filled in once the artifact lands in the
// working directory.
type InstallPlan struct {
	Target          platform.Target
	Version         string
	InstallRoot     string
	ArchiveTempPath string
}

// ArtifactName returns the release asset filename for this plan.
func (p *InstallPlan) ArtifactName() string {
	return p.Target.ArtifactName(p.Version)
}

// ArtifactURL returns the download URL for the distribution archive.
func (p *InstallPlan) ArtifactURL() string {
	return fmt.Sprintf("%s/%s/%s", releaseBaseURL, p.Version, p.ArtifactName())
}

// SignatureURL returns the URL of the detached GPG signature asset.
func (p *InstallPlan) SignatureURL() string {
	return p.ArtifactURL() + ".sig"
}

// ChecksumsURL returns the URL of the release checksum manifest.
func (p *InstallPlan) ChecksumsURL() string {
	return fmt.Sprintf("%s/%s/checksums.txt", releaseBaseURL, p.Version)
}

// DownloadError reports a failed artifact transfer. StatusCode is zero
// when the failure happened below HTTP.
type DownloadError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Cause)
}

func (e *DownloadError) Unwrap() error { return e.Cause }

// ExtractError reports a failed archive extraction. The install root
// is untouched when this is returned.
type ExtractError struct {
	Archive string
	Cause   error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Archive, e.Cause)
}

func (e *ExtractError) Unwrap() error { return e.Cause }

// VerifyError reports a failed artifact verification.
type VerifyError struct {
	Method   Method
	Artifact string
	Cause    error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s verification of %s failed: %v", e.Method, e.Artifact, e.Cause)
}

func (e *VerifyError) Unwrap() error { return e.Cause }

// Method names how an artifact was verified.
type Method string

const (
	MethodGPG        Method = "gpg"
	MethodSHA256     Method = "sha256"
	MethodUnverified Method = "unverified"
)
