// Package platform resolves the host OS and architecture to a dune
// binary-distribution target triple.
//
// Resolution is a pure lookup over a fixed set of supported targets;
// detection of the live machine is separated behind the Detector
// interface so tests can resolve synthetic platforms.
package platform

import (
	"context"
	"fmt"
)

// Target identifies a binary-distribution artifact flavor.
type Target string

const (
	// TargetDarwinAMD64 is the Intel macOS distribution.
	TargetDarwinAMD64 Target = "x86_64-apple-darwin"
	// TargetDarwinARM64 is the Apple Silicon macOS distribution.
	TargetDarwinARM64 Target = "aarch64-apple-darwin"
	// TargetLinuxAMD64 is the static musl Linux distribution.
	TargetLinuxAMD64 Target = "x86_64-unknown-linux-musl"
)

// String returns the target triple.
func (t Target) String() string {
	return string(t)
}

// ArtifactName returns the release asset name for a version,
// e.g. dune-1.2.0-x86_64-unknown-linux-musl.tar.gz.
func (t Target) ArtifactName(version string) string {
	return fmt.Sprintf("dune-%s-%s.tar.gz", version, t)
}

// UnsupportedPlatformError indicates the host OS/architecture pair has
// no prebuilt distribution. It is fatal and non-recoverable.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s %s (supported: darwin x86_64/arm64, linux x86_64)", e.OS, e.Arch)
}

// Detector probes the live machine for its OS name and architecture.
type Detector interface {
	Detect(ctx context.Context) (osName, arch string, err error)
}
