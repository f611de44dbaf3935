package shell

import "fmt"

// Dialect identifies a supported interactive shell.
type Dialect string

const (
	// DialectBash is the Bourne-again shell.
	DialectBash Dialect = "bash"
	// DialectZsh is the Z shell.
	DialectZsh Dialect = "zsh"
	// DialectFish is the fish shell.
	DialectFish Dialect = "fish"
	// DialectUnknown is any other (or absent) shell.
	DialectUnknown Dialect = "unknown"
)

// String returns the dialect name.
func (d Dialect) String() string {
	return string(d)
}

// IsSupported reports whether config-file integration exists for the
// dialect.
func (d Dialect) IsSupported() bool {
	switch d {
	case DialectBash, DialectZsh, DialectFish:
		return true
	default:
		return false
	}
}

// Profile describes the shell integration surface for one run. It is
// built once from the environment snapshot and install root and never
// mutated.
type Profile struct {
	// Dialect is the invoking shell's dialect.
	Dialect Dialect
	// CandidateFiles are the config files to inspect, in priority
	// order. Empty for the unknown dialect.
	CandidateFiles []string
	// LoaderPath is the env loader script under the install root.
	LoaderPath string
	// InstallRoot is the chosen install root.
	InstallRoot string
}

// IntegrationStatus is the outcome of scanning the candidate files.
type IntegrationStatus struct {
	// AlreadyPresent is true when any candidate contains the
	// loader-sourcing line.
	AlreadyPresent bool
	// MatchedFile is the candidate containing the line, if any.
	MatchedFile string
	// MatchedLine is the matching line as written in the file.
	MatchedLine string
	// WritableTarget is the first candidate that accepts an append.
	// Empty when integration is present or nothing is writable.
	WritableTarget string
}

// Result describes a performed append.
type Result struct {
	// File is the config file the block was appended to.
	File string
	// Block is the exact appended text.
	Block string
}

// ConfigFileError wraps failures while reading or writing a shell
// config file.
type ConfigFileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("config file %s: %s", e.Path, e.Message)
}

func (e *ConfigFileError) Unwrap() error {
	return e.Cause
}
