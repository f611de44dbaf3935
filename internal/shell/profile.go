package shell

import (
	"path/filepath"

	"github.com/dunetools/dune-install/internal/env"
)

// NewProfile builds the integration profile for the detected dialect
// and chosen install root.
func NewProfile(snap *env.Snapshot, dialect Dialect, installRoot string) *Profile {
	return &Profile{
		Dialect:        dialect,
		CandidateFiles: candidateFiles(snap, dialect),
		LoaderPath:     LoaderPath(installRoot, dialect),
		InstallRoot:    installRoot,
	}
}

// LoaderPath returns the env loader script for a dialect under the
// install root. The unknown dialect gets the sh-compatible bash loader
// for the manual instructions.
func LoaderPath(installRoot string, dialect Dialect) string {
	name := "env.bash"
	switch dialect {
	case DialectZsh:
		name = "env.zsh"
	case DialectFish:
		name = "env.fish"
	}
	return filepath.Join(installRoot, "share", "dune", "env", name)
}

// candidateFiles returns the dialect's config files in priority order.
// For bash, the XDG variants participate only when XDG_CONFIG_HOME is
// set.
func candidateFiles(snap *env.Snapshot, dialect Dialect) []string {
	switch dialect {
	case DialectBash:
		candidates := []string{
			filepath.Join(snap.Home, ".bashrc"),
			filepath.Join(snap.Home, ".bash_profile"),
		}
		if xdg := snap.XDGConfigHome; xdg != "" {
			candidates = append(candidates,
				filepath.Join(xdg, ".bashrc"),
				filepath.Join(xdg, ".bash_profile"),
				filepath.Join(xdg, "bashrc"),
				filepath.Join(xdg, "bash_profile"),
			)
		}
		return candidates
	case DialectZsh:
		return []string{filepath.Join(snap.Home, ".zshrc")}
	case DialectFish:
		return []string{filepath.Join(snap.Home, ".config", "fish", "config.fish")}
	default:
		return nil
	}
}
