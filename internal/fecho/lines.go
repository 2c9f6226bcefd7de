package fecho

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/spf13/afero"
)

// LineSource is a restartable sequence of text lines. Each call to Lines
// starts from the first line again.
type LineSource interface {
	// Name identifies the source in error messages and logs.
	Name() string
	// Lines yields lines without their terminators. A non-nil error ends the sequence.
	Lines() iter.Seq2[string, error]
}

// FileSource reads lines from a file, re-opening it on every pass.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a FileSource for path on fs.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

// Lines opens the file, yields its lines and closes it once iteration stops,
// whether the sequence was exhausted or the consumer broke out early.
func (s *FileSource) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := s.fs.Open(s.path)
		if err != nil {
			yield("", err)
			return
		}
		defer f.Close()

		scanLines(f)(yield)
	}
}

// BufferedSource replays lines held in memory. It is used for standard
// input, which cannot be rewound.
type BufferedSource struct {
	name  string
	lines []string
}

// NewBufferedSource wraps already read lines.
func NewBufferedSource(name string, lines []string) *BufferedSource {
	return &BufferedSource{name: name, lines: lines}
}

func (s *BufferedSource) Name() string {
	return s.name
}

func (s *BufferedSource) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, line := range s.lines {
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Len returns the number of buffered lines.
func (s *BufferedSource) Len() int {
	return len(s.lines)
}

// ReadLines drains r into memory. On error nothing read so far is returned.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	for line, err := range scanLines(r) {
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// scanLines splits r on '\n', dropping a trailing '\r'. A final line without
// a terminator is still yielded. Lines have no length limit.
func scanLines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				yield("", err)
				return
			}
			if len(line) > 0 {
				line = strings.TrimSuffix(line, "\n")
				line = strings.TrimSuffix(line, "\r")
				if !yield(line, nil) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}
}
