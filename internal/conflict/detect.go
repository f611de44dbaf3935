package conflict

import (
	"path/filepath"

	"github.com/dunetools/dune-install/internal/env"
)

// Entry is one classified PATH segment. The scan preserves PATH order
// and is never mutated after construction.
type Entry struct {
	Segment  string
	Category Category
}

// Scan classifies every PATH segment in order.
func Scan(snap *env.Snapshot) []Entry {
	segments := snap.PathEntries()
	entries := make([]Entry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, Entry{
			Segment:  seg,
			Category: Classify(seg, snap),
		})
	}
	return entries
}

// Detect reports whether the default local root would be shadowed by an
// opam installation. That happens exactly when ~/.local/bin appears in
// PATH at all and the first opam-like segment precedes it. With no
// local-bin segment there is nothing to shadow, regardless of opam.
func Detect(entries []Entry) bool {
	firstOpam := -1
	firstLocalBin := -1

	for i, e := range entries {
		switch e.Category {
		case CategoryOpamLike:
			if firstOpam == -1 {
				firstOpam = i
			}
		case CategoryLocalBin:
			if firstLocalBin == -1 {
				firstLocalBin = i
			}
		}
	}

	return firstLocalBin != -1 && firstOpam != -1 && firstOpam < firstLocalBin
}

// Recommendation carries the two install-root candidates with the safe
// default marked.
type Recommendation struct {
	// Local is the conventional root, ~/.local.
	Local string
	// Dedicated is the conflict-free root, ~/.dune.
	Dedicated string
	// PreferDedicated is true when the local root would be shadowed.
	PreferDedicated bool
}

// Preferred returns the recommended default root.
func (r Recommendation) Preferred() string {
	if r.PreferDedicated {
		return r.Dedicated
	}
	return r.Local
}

// Recommend scans the snapshot's PATH and picks the default install
// root.
func Recommend(snap *env.Snapshot) Recommendation {
	return Recommendation{
		Local:           filepath.Join(snap.Home, ".local"),
		Dedicated:       filepath.Join(snap.Home, ".dune"),
		PreferDedicated: Detect(Scan(snap)),
	}
}
