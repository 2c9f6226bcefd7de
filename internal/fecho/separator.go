package fecho

import "fmt"

type separatorKind int

const (
	separatorAbsent separatorKind = iota
	separatorDefault
	separatorText
)

// Separator is the line printed between units of output. It has three
// states: not requested, requested without text (a blank line), and requested
// with explicit text. An explicit empty text is still "requested".
type Separator struct {
	kind separatorKind
	text string
}

// NoSeparator returns a separator that never prints anything.
func NoSeparator() Separator {
	return Separator{kind: separatorAbsent}
}

// DefaultSeparator returns a separator that prints a blank line.
func DefaultSeparator() Separator {
	return Separator{kind: separatorDefault}
}

// TextSeparator returns a separator that prints text.
func TextSeparator(text string) Separator {
	return Separator{kind: separatorText, text: text}
}

// Requested reports whether the separator prints a line at a boundary.
func (s Separator) Requested() bool {
	return s.kind != separatorAbsent
}

// Line returns the line to print at a boundary and whether one is printed at all.
func (s Separator) Line() (string, bool) {
	switch s.kind {
	case separatorDefault:
		return "", true
	case separatorText:
		return s.text, true
	default:
		return "", false
	}
}

func (s Separator) String() string {
	switch s.kind {
	case separatorDefault:
		return "default"
	case separatorText:
		return fmt.Sprintf("text(%q)", s.text)
	default:
		return "none"
	}
}
