package platform

import "strings"

// Resolve maps an OS-name/architecture pair to a distribution target.
// It accepts both uname spellings (x86_64, aarch64) and GOARCH
// spellings (amd64, arm64). Anything outside the supported set returns
// an UnsupportedPlatformError; no fallback heuristics are applied.
func Resolve(osName, arch string) (Target, error) {
	os := strings.ToLower(strings.TrimSpace(osName))
	ar := normalizeArch(arch)

	switch {
	case os == "darwin" && ar == "x86_64":
		return TargetDarwinAMD64, nil
	case os == "darwin" && ar == "aarch64":
		return TargetDarwinARM64, nil
	case os == "linux" && ar == "x86_64":
		return TargetLinuxAMD64, nil
	default:
		return "", &UnsupportedPlatformError{OS: osName, Arch: arch}
	}
}

// normalizeArch folds GOARCH names onto uname -m names. Unknown values
// pass through so the error reports what the machine actually said.
func normalizeArch(arch string) string {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "amd64", "x86_64":
		return "x86_64"
	case "arm64", "aarch64":
		return "aarch64"
	default:
		return strings.ToLower(strings.TrimSpace(arch))
	}
}
