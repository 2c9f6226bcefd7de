package cmd

import "github.com/connorhough/fecho/internal/fecho"

// defaultSeparatorToken is what pflag passes to Set when --separator is
// given without a value. Command-line arguments cannot contain a NUL byte,
// so no explicit text collides with it. Explicit text needs --separator=TEXT or -s=TEXT.
const defaultSeparatorToken = "\x00"

// separatorValue is a pflag.Value keeping the three separator states apart.
type separatorValue struct {
	sep fecho.Separator
}

func (s *separatorValue) String() string {
	line, _ := s.sep.Line()
	return line
}

func (s *separatorValue) Set(value string) error {
	if value == defaultSeparatorToken {
		s.sep = fecho.DefaultSeparator()
		return nil
	}
	s.sep = fecho.TextSeparator(value)
	return nil
}

func (s *separatorValue) Type() string {
	return "text"
}
