// Package conflict decides where dune should be installed by default.
//
// The conventional install root is ~/.local, but an opam installation
// that appears earlier in PATH than ~/.local/bin would shadow the newly
// installed dune with opam's own. This package classifies every PATH
// segment and recommends the dedicated ~/.dune root when that shadowing
// would occur.
package conflict

import (
	"path/filepath"
	"strings"

	"github.com/dunetools/dune-install/internal/env"
)

// Category tags a PATH segment for conflict detection.
type Category int

const (
	// CategoryOther is any segment that is neither of interest.
	CategoryOther Category = iota
	// CategoryOpamLike is an opam root or local-switch bin directory.
	CategoryOpamLike
	// CategoryLocalBin is the user's ~/.local/bin directory.
	CategoryLocalBin
)

// String returns a readable tag name.
func (c Category) String() string {
	switch c {
	case CategoryOpamLike:
		return "opam-like"
	case CategoryLocalBin:
		return "local-bin-like"
	default:
		return "other"
	}
}

// Classify tags a single PATH segment. A segment is opam-like when any
// of its path elements is ".opam" (the global opam root) or "_opam" (a
// local switch); it is local-bin-like when it names ~/.local/bin, in
// literal, ~-abbreviated, or $HOME-abbreviated form.
func Classify(segment string, snap *env.Snapshot) Category {
	expanded := snap.ExpandHome(segment)

	localBin := filepath.Join(snap.Home, ".local", "bin")
	if expanded == localBin {
		return CategoryLocalBin
	}

	for _, elem := range strings.Split(expanded, string(filepath.Separator)) {
		if elem == ".opam" || elem == "_opam" {
			return CategoryOpamLike
		}
	}

	return CategoryOther
}
