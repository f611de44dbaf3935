// Package ui renders installer status messages and hosts the debug
// logger. Color handling is fully delegated to fatih/color, which
// disables itself on non-TTY output.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// Output writes user-facing status lines. Writers are injected so
// tests can capture them.
type Output struct {
	out io.Writer
	err io.Writer
}

// NewOutput creates an Output over the given writers.
func NewOutput(out, err io.Writer) *Output {
	return &Output{out: out, err: err}
}

// Header prints a section header for an install stage.
func (o *Output) Header(format string, a ...any) {
	fmt.Fprintln(o.out)
	_, _ = headerColor.Fprintf(o.out, "▸ "+format+"\n", a...)
}

// Success prints a green checkmark line.
func (o *Output) Success(format string, a ...any) {
	_, _ = successColor.Fprintf(o.out, "✓ "+format+"\n", a...)
}

// Warn prints a yellow warning line.
func (o *Output) Warn(format string, a ...any) {
	_, _ = warningColor.Fprintf(o.out, "⚠ "+format+"\n", a...)
}

// Error prints a red error line to the error stream.
func (o *Output) Error(format string, a ...any) {
	_, _ = errorColor.Fprintf(o.err, "✗ "+format+"\n", a...)
}

// Info prints a plain line.
func (o *Output) Info(format string, a ...any) {
	fmt.Fprintf(o.out, format+"\n", a...)
}

// Dim prints a de-emphasized line, used for literal commands the user
// may copy.
func (o *Output) Dim(format string, a ...any) {
	_, _ = dimColor.Fprintf(o.out, format+"\n", a...)
}

// Prompt prints a prompt without a trailing newline.
func (o *Output) Prompt(format string, a ...any) {
	fmt.Fprintf(o.out, format, a...)
}
