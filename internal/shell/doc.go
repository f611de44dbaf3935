// Package shell wires the installed dune distribution into the user's
// shell configuration.
//
// This package handles:
//   - Detecting the invoking shell dialect (bash, zsh, fish)
//   - Locating candidate configuration files in dialect-specific order
//   - Deciding idempotently whether integration is already present
//   - Appending the integration block to the first writable candidate
//
// # Idempotence
//
// Presence detection matches on the loader-sourcing line with the
// install root substituted, not on the PATH export. Both the
// $HOME-abbreviated and the fully expanded spellings of the install
// root are normalized before comparison, so re-running the installer
// against an already-configured shell never appends a second block.
//
// # Candidate search
//
// bash searches ~/.bashrc and ~/.bash_profile, plus four
// XDG_CONFIG_HOME-relative variants when that variable is set. zsh and
// fish each have a single candidate. The presence scan visits every
// candidate (a missing file is skipped, not terminal); the append
// target is the first candidate that accepts a write. When no
// candidate is writable the engine leaves everything untouched and the
// caller prints manual instructions instead.
package shell
