package session

import (
	"bufio"
	"io"

	"github.com/dunetools/dune-install/internal/conflict"
	"github.com/dunetools/dune-install/internal/ui"
)

// Session drives the interactive prompts over an injected input
// stream. Closing or exhausting the stream resolves every pending
// prompt with its default, so piped and non-interactive runs behave
// like a user pressing enter.
type Session struct {
	in  *bufio.Scanner
	out *ui.Output
}

// New creates a session reading from in and writing through out.
func New(in io.Reader, out *ui.Output) *Session {
	return &Session{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// ChooseInstallRoot presents the install-root options and loops until
// the user picks one.
func (s *Session) ChooseInstallRoot(rec conflict.Recommendation) (string, error) {
	if rec.PreferDedicated {
		s.out.Warn("an opam installation precedes ~/.local/bin in PATH and would shadow dune there")
	}
	s.out.Info("Where should dune be installed?")
	s.out.Info("  1) %s%s", rec.Local, defaultTag(rec, rec.Local))
	s.out.Info("  2) %s%s", rec.Dedicated, defaultTag(rec, rec.Dedicated))
	s.out.Info("  or type an absolute path")

	prompt := NewPathPrompt(rec)
	for {
		s.out.Prompt("Install root [%s]: ", rec.Preferred())
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		outcome := prompt.Feed(line)
		if outcome.Resolved {
			return outcome.Root, nil
		}
		s.out.Warn("%s", outcome.Warning)
	}
}

// Confirm asks a yes/no question and loops until the answer is
// recognizable. The default is no.
func (s *Session) Confirm(question string) (bool, error) {
	for {
		s.out.Prompt("%s [y/N]: ", question)
		line, err := s.readLine()
		if err != nil {
			return false, err
		}
		outcome := ConfirmFeed(line)
		if outcome.Resolved {
			return outcome.Accepted, nil
		}
		s.out.Warn("please answer y or n")
	}
}

// readLine returns the next input line. End of input reads as an empty
// line, which every prompt treats as its default.
func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return s.in.Text(), nil
}

func defaultTag(rec conflict.Recommendation, root string) string {
	if rec.Preferred() == root {
		return "  (recommended)"
	}
	return ""
}
