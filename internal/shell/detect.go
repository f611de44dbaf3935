package shell

import (
	"path/filepath"
	"strings"

	"github.com/dunetools/dune-install/internal/env"
)

// DetectDialect determines the invoking shell's dialect from the
// basename of $SHELL in the snapshot. An absent or unrecognized value
// maps to DialectUnknown; no further probing is attempted.
func DetectDialect(snap *env.Snapshot) Dialect {
	if snap.Shell == "" {
		return DialectUnknown
	}

	switch strings.ToLower(filepath.Base(snap.Shell)) {
	case "bash":
		return DialectBash
	case "zsh":
		return DialectZsh
	case "fish":
		return DialectFish
	default:
		return DialectUnknown
	}
}
