// Package iostreams abstracts the standard streams so commands can be driven
// from tests and can tell a terminal from a pipe.
package iostreams

import (
	"bytes"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IOStreams bundles the three standard streams with TTY detection for stdin.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	isTerminal func(fd int) bool
	stdinFd    int
}

// System returns IOStreams connected to os.Stdin, os.Stdout and os.Stderr.
func System() *IOStreams {
	return &IOStreams{
		In:         os.Stdin,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		isTerminal: term.IsTerminal,
		stdinFd:    int(os.Stdin.Fd()),
	}
}

// IsInteractive reports whether stdin is attached to a terminal rather than
// a pipe or file.
func (s *IOStreams) IsInteractive() bool {
	if s.isTerminal == nil {
		return false
	}
	return s.isTerminal(s.stdinFd)
}

// Test returns IOStreams reading from input, with separate buffers for
// stdout and stderr. interactive controls what IsInteractive reports.
func Test(input string, interactive bool) (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &IOStreams{
		In:         strings.NewReader(input),
		Out:        out,
		ErrOut:     errOut,
		isTerminal: func(int) bool { return interactive },
	}, out, errOut
}
