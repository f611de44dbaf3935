package shell

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dunetools/dune-install/internal/env"
)

// BlockComment is the comment line opening every appended block.
const BlockComment = "# Added by the dune binary installer"

// EnvHook is the install-root-aware activation function provided by
// the loader scripts.
const EnvHook = "__dune_env"

// SourceLine renders the loader-sourcing line for a dialect with the
// loader path abbreviated under $HOME. This line is the idempotence
// marker.
func (p *Profile) SourceLine(snap *env.Snapshot) string {
	loader := snap.AbbreviateHome(p.LoaderPath)
	if p.Dialect == DialectFish {
		return fmt.Sprintf("source \"%s\"", loader)
	}
	return fmt.Sprintf(". \"%s\"", loader)
}

// IntegrationBlock renders the exact text appended to a config file:
// a blank line, the identifying comment, the loader-sourcing line, and
// the activation hook with the install root substituted.
func (p *Profile) IntegrationBlock(snap *env.Snapshot) string {
	root := snap.AbbreviateHome(p.InstallRoot)
	return fmt.Sprintf("\n%s\n%s\n%s \"%s\"\n", BlockComment, p.SourceLine(snap), EnvHook, root)
}

// ExportLine renders the literal PATH export shown to users whose
// shell cannot be integrated automatically.
func ExportLine(installRoot string) string {
	return fmt.Sprintf("export PATH=\"%s:$PATH\"", filepath.Join(installRoot, "bin"))
}

// matchesLoaderLine reports whether a config line sources the profile's
// loader. The line must be a source directive ("." or "source"); its
// path operand is unquoted and home-normalized before comparison, so
// "$HOME/.local/..." and "/home/user/.local/..." are equivalent.
func matchesLoaderLine(line, loaderPath string, snap *env.Snapshot) bool {
	trimmed := strings.TrimSpace(line)

	var rest string
	switch {
	case strings.HasPrefix(trimmed, ". "):
		rest = trimmed[len(". "):]
	case strings.HasPrefix(trimmed, "source "):
		rest = trimmed[len("source "):]
	default:
		return false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false
	}

	operand := strings.Trim(fields[0], `"'`)
	return snap.ExpandHome(operand) == filepath.Clean(loaderPath)
}
