package conflict

import (
	"testing"

	"github.com/dunetools/dune-install/internal/env"
)

func TestClassify(t *testing.T) {
	snap := &env.Snapshot{Home: "/home/testuser"}

	tests := []struct {
		name    string
		segment string
		want    Category
	}{
		{
			name:    "Global opam switch bin",
			segment: "/home/testuser/.opam/default/bin",
			want:    CategoryOpamLike,
		},
		{
			name:    "Abbreviated opam root",
			segment: "~/.opam/5.2.0/bin",
			want:    CategoryOpamLike,
		},
		{
			name:    "Local opam switch",
			segment: "/home/testuser/proj/_opam/bin",
			want:    CategoryOpamLike,
		},
		{
			name:    "Local bin literal",
			segment: "/home/testuser/.local/bin",
			want:    CategoryLocalBin,
		},
		{
			name:    "Local bin tilde",
			segment: "~/.local/bin",
			want:    CategoryLocalBin,
		},
		{
			name:    "Local bin dollar home",
			segment: "$HOME/.local/bin",
			want:    CategoryLocalBin,
		},
		{
			name:    "System bin",
			segment: "/usr/bin",
			want:    CategoryOther,
		},
		{
			name:    "Local share is not local bin",
			segment: "/home/testuser/.local/share",
			want:    CategoryOther,
		},
		{
			name:    "Directory merely named like opam",
			segment: "/home/testuser/opam-tools/bin",
			want:    CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.segment, snap); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.segment, got, tt.want)
			}
		})
	}
}
