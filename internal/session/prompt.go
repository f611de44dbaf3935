// Package session holds the interactive prompt logic. The decision
// functions are pure transitions over a single input line so the loop
// behavior is testable without a terminal; Session drives them over an
// injected reader.
package session

import (
	"strings"

	"github.com/dunetools/dune-install/internal/conflict"
)

// PathOutcome is the result of feeding one input line to the
// install-root prompt.
type PathOutcome struct {
	// Resolved is true when a root was chosen and Root is valid.
	Resolved bool
	// Root is the chosen install root, absolute.
	Root string
	// Warning explains a rejected input. Empty on resolution.
	Warning string
}

// PathPrompt is the install-root choice state machine. Each call to
// Feed consumes one line; the caller loops until Resolved.
type PathPrompt struct {
	rec conflict.Recommendation
}

// NewPathPrompt creates the prompt over an install-root recommendation.
func NewPathPrompt(rec conflict.Recommendation) *PathPrompt {
	return &PathPrompt{rec: rec}
}

// Feed interprets one input line. Empty accepts the recommended
// default, "1" and "2" pick the local and dedicated roots, and a line
// starting with "/" names a custom absolute root. Anything else leaves
// the prompt unresolved with a warning.
func (p *PathPrompt) Feed(line string) PathOutcome {
	input := strings.TrimSpace(line)

	switch {
	case input == "":
		return PathOutcome{Resolved: true, Root: p.rec.Preferred()}
	case input == "1":
		return PathOutcome{Resolved: true, Root: p.rec.Local}
	case input == "2":
		return PathOutcome{Resolved: true, Root: p.rec.Dedicated}
	case strings.HasPrefix(input, "/"):
		return PathOutcome{Resolved: true, Root: input}
	default:
		return PathOutcome{
			Warning: "enter 1, 2, an absolute path, or press enter for the default",
		}
	}
}

// ConfirmOutcome is the result of feeding one input line to a y/n
// prompt.
type ConfirmOutcome struct {
	Resolved bool
	Accepted bool
}

// ConfirmFeed interprets one line of a yes/no prompt. Empty defaults
// to no. Unrecognized input leaves the prompt unresolved.
func ConfirmFeed(line string) ConfirmOutcome {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return ConfirmOutcome{Resolved: true, Accepted: true}
	case "n", "no", "":
		return ConfirmOutcome{Resolved: true, Accepted: false}
	default:
		return ConfirmOutcome{}
	}
}
