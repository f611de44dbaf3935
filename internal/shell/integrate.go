package shell

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunetools/dune-install/internal/env"
)

// Engine performs the shell integration state machine for one run.
type Engine struct {
	snap *env.Snapshot
}

// NewEngine creates an integration engine over the environment
// snapshot.
func NewEngine(snap *env.Snapshot) (*Engine, error) {
	if snap == nil {
		return nil, fmt.Errorf("environment snapshot is required")
	}
	return &Engine{snap: snap}, nil
}

// Inspect scans every candidate file for the loader-sourcing line.
// Missing candidates are skipped; the scan only concludes absence
// after visiting all of them. When integration is absent it also
// records the first writable candidate as the append target.
func (e *Engine) Inspect(p *Profile) (*IntegrationStatus, error) {
	status := &IntegrationStatus{}

	for _, candidate := range p.CandidateFiles {
		line, found, err := e.scanFile(candidate, p.LoaderPath)
		if err != nil {
			return nil, err
		}
		if found {
			status.AlreadyPresent = true
			status.MatchedFile = candidate
			status.MatchedLine = line
			break
		}
	}

	if !status.AlreadyPresent {
		status.WritableTarget = e.writableTarget(p)
	}

	return status, nil
}

// Append writes the integration block to the target config file.
// The write is append-only; existing content is never edited.
func (e *Engine) Append(p *Profile, target string) (*Result, error) {
	if target == "" {
		return nil, &ConfigFileError{Path: target, Message: "no writable config file"}
	}

	if p.Dialect == DialectFish {
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, &ConfigFileError{Path: target, Message: "create parent directory", Cause: err}
		}
	}

	block := p.IntegrationBlock(e.snap)

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, &ConfigFileError{Path: target, Message: "open for append", Cause: err}
	}
	defer file.Close()

	// A file whose last line is unterminated would otherwise swallow
	// the block's leading blank line into that line.
	if needsNewline(target) {
		block = "\n" + block
	}

	if _, err := file.WriteString(block); err != nil {
		return nil, &ConfigFileError{Path: target, Message: "append integration block", Cause: err}
	}
	if err := file.Sync(); err != nil {
		return nil, &ConfigFileError{Path: target, Message: "sync", Cause: err}
	}

	return &Result{File: target, Block: block}, nil
}

// RefreshCommand returns the command the user runs to pick up the
// integration in the current session. zsh configs are not safely
// re-sourceable here, so zsh users restart the shell instead.
func (e *Engine) RefreshCommand(p *Profile, file string) string {
	switch p.Dialect {
	case DialectZsh:
		return "exec $SHELL"
	case DialectBash, DialectFish:
		return "source " + e.snap.AbbreviateHome(file)
	default:
		return ""
	}
}

// scanFile looks for the loader-sourcing line in one candidate.
func (e *Engine) scanFile(path, loaderPath string) (string, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, &ConfigFileError{Path: path, Message: "open", Cause: err}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if matchesLoaderLine(line, loaderPath, e.snap) {
			return strings.TrimSpace(line), true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, &ConfigFileError{Path: path, Message: "read", Cause: err}
	}

	return "", false, nil
}

// writableTarget returns the first candidate that accepts an append.
// Only fish may create its candidate's parent directory; for the other
// dialects a missing parent means the candidate is unusable.
func (e *Engine) writableTarget(p *Profile) string {
	for _, candidate := range p.CandidateFiles {
		if canAppend(candidate, p.Dialect == DialectFish) {
			return candidate
		}
	}
	return ""
}

// canAppend probes whether a path can take an appended block: an
// existing regular file must open for writing, a missing file needs a
// writable parent directory.
func canAppend(path string, createParents bool) bool {
	info, err := os.Stat(path)
	if err == nil {
		if !info.Mode().IsRegular() {
			return false
		}
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return false
		}
		file.Close()
		return true
	}
	if !os.IsNotExist(err) {
		return false
	}

	dir := filepath.Dir(path)
	if createParents {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false
		}
	}

	probe, err := os.CreateTemp(dir, ".dune-install-probe-*")
	if err != nil {
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

// needsNewline reports whether the file exists, is non-empty, and does
// not end with a newline.
func needsNewline(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	buf := make([]byte, 1)
	if _, err := file.ReadAt(buf, info.Size()-1); err != nil {
		return false
	}
	return buf[0] != '\n'
}
