package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running process.
type RealDetector struct{}

// NewDetector creates a platform detector for the live machine.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect reports the host OS name and machine architecture. The OS
// comes from runtime.GOOS; the architecture is the kernel's own report
// (equivalent to uname -m) so it matches the spellings the release
// artifacts are named after. When the kernel probe fails it falls back
// to runtime.GOARCH, which Resolve also accepts.
func (d *RealDetector) Detect(ctx context.Context) (string, string, error) {
	arch, err := host.KernelArch()
	if err != nil || arch == "" {
		if ctx.Err() != nil {
			return "", "", fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		arch = runtime.GOARCH
	}

	return runtime.GOOS, arch, nil
}
