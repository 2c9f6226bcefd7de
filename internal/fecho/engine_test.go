package fecho

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/connorhough/fecho/internal/iostreams"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	engine *Engine
	out    *strings.Builder
	errOut *strings.Builder
	fs     afero.Fs
}

// newHarness builds an engine over an in-memory filesystem holding files.
func newHarness(t *testing.T, stdin string, interactive bool, files map[string]string) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	streams, _, _ := iostreams.Test(stdin, interactive)
	out := &strings.Builder{}
	errOut := &strings.Builder{}
	streams.Out = out
	streams.ErrOut = errOut

	return &harness{
		engine: &Engine{
			Streams: streams,
			FS:      fs,
			Usage: func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Usage: fecho [input...]")
				return err
			},
		},
		out:    out,
		errOut: errOut,
		fs:     fs,
	}
}

func (h *harness) lines() []string {
	return splitOutput(h.out.String())
}

func splitOutput(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestRun_DirectScenario(t *testing.T) {
	h := newHarness(t, "", false, nil)

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs:    []string{"hello", "world"},
		Count:     2,
		Separator: TextSeparator("--"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"hello world", "--", "hello world"}, h.lines())
}

func TestRun_DirectRepetitions(t *testing.T) {
	separators := []struct {
		name    string
		sep     Separator
		between []string
	}{
		{name: "not requested", sep: NoSeparator(), between: nil},
		{name: "default", sep: DefaultSeparator(), between: []string{""}},
		{name: "text", sep: TextSeparator("==="), between: []string{"==="}},
		{name: "empty text", sep: TextSeparator(""), between: []string{""}},
	}

	for _, sep := range separators {
		for _, count := range []int{1, 2, 5} {
			t.Run(fmt.Sprintf("%s/count=%d", sep.name, count), func(t *testing.T) {
				h := newHarness(t, "", false, nil)

				err := h.engine.Run(context.Background(), RunConfig{
					Inputs:    []string{"a", "b", "c"},
					Count:     count,
					Top:       1,
					Separator: sep.sep,
				})
				require.NoError(t, err)

				var want []string
				for i := 0; i < count; i++ {
					want = append(want, "a b c")
					if i < count-1 {
						want = append(want, sep.between...)
					}
				}
				assert.Equal(t, want, h.lines())
			})
		}
	}
}

func TestRun_FilesTruncatesPerUnit(t *testing.T) {
	h := newHarness(t, "", false, map[string]string{
		"a.txt": "1\n2\n3\n4\n5\n",
		"b.txt": "x\ny\n",
	})

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs:    []string{"a.txt", "b.txt"},
		Files:     true,
		Count:     2,
		Top:       3,
		Separator: TextSeparator("--"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"1", "2", "3", "--",
		"x", "y", "--",
		"1", "2", "3", "--",
		"x", "y",
	}, h.lines())
	assert.Empty(t, h.errOut.String())
}

func TestRun_FilesLongLine(t *testing.T) {
	long := strings.Repeat("y", 2*1024*1024)
	h := newHarness(t, "", false, map[string]string{"big.txt": long + "\nend\n"})

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs: []string{"big.txt"},
		Files:  true,
		Count:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, long+"\nend\n", h.out.String())
}

func TestRun_FilesWithoutTop(t *testing.T) {
	h := newHarness(t, "", false, map[string]string{
		"a.txt": "one\ntwo\r\nthree",
	})

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs: []string{"a.txt"},
		Files:  true,
		Count:  1,
		Top:    10,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, h.lines())
}

func TestRun_FilesSingleFileSeparators(t *testing.T) {
	h := newHarness(t, "", false, map[string]string{"a.txt": "a\n"})

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs:    []string{"a.txt"},
		Files:     true,
		Count:     3,
		Separator: DefaultSeparator(),
	})

	require.NoError(t, err)
	assert.Equal(t, "a\n\na\n\na\n", h.out.String())
}

func TestRun_FilesPreflightIsAllOrNothing(t *testing.T) {
	h := newHarness(t, "", false, map[string]string{
		"a.txt": "1\n2\n3\n",
	})

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs: []string{"a.txt", "b.txt", "c.txt"},
		Files:  true,
		Count:  1,
	})

	var inaccessible *InaccessibleInputsError
	require.ErrorAs(t, err, &inaccessible)
	assert.Equal(t, []string{"b.txt", "c.txt"}, inaccessible.Paths())
	assert.Equal(t, ExitInaccessible, ExitCode(err))
	assert.Empty(t, h.out.String(), "no content may be printed when preflight fails")

	diagnostics := splitOutput(h.errOut.String())
	require.Len(t, diagnostics, 2)
	assert.True(t, strings.HasPrefix(diagnostics[0], "b.txt                | Error: "), diagnostics[0])
	assert.True(t, strings.HasPrefix(diagnostics[1], "c.txt                | Error: "), diagnostics[1])
}

func TestRun_FilesDirectoryInputPrintsNothing(t *testing.T) {
	h := newHarness(t, "", false, map[string]string{"a.txt": "1\n2\n"})
	require.NoError(t, h.fs.Mkdir("logs", 0o755))

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs: []string{"a.txt", "logs"},
		Files:  true,
		Count:  1,
	})

	assert.Equal(t, ExitInaccessible, ExitCode(err))
	assert.Empty(t, h.out.String())
	assert.Equal(t, "logs                 | Error: is a directory\n", h.errOut.String())
}

func TestRun_FileRemovedMidRun(t *testing.T) {
	h := newHarness(t, "", false, map[string]string{"a.txt": "1\n"})
	fs := &removeAfterOpen{Fs: h.fs, path: "a.txt", after: 2}
	h.engine.FS = fs

	err := h.engine.Run(context.Background(), RunConfig{
		Inputs: []string{"a.txt"},
		Files:  true,
		Count:  3,
	})

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "a.txt", ioErr.Source)
	assert.Equal(t, ExitIO, ExitCode(err))
	assert.Equal(t, []string{"1"}, h.lines())
}

// removeAfterOpen deletes path once it has been opened after times.
type removeAfterOpen struct {
	afero.Fs
	path  string
	after int
	opens int
}

func (r *removeAfterOpen) Open(name string) (afero.File, error) {
	if name == r.path {
		r.opens++
		if r.opens > r.after {
			_ = r.Fs.Remove(name)
		}
	}
	return r.Fs.Open(name)
}

func TestRun_StdinBuffered(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
		top   int
		sep   Separator
		want  []string
	}{
		{
			name:  "single pass",
			input: "a\nb\nc\n",
			count: 1,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "repeated with separator",
			input: "a\nb\n",
			count: 3,
			sep:   TextSeparator("*"),
			want:  []string{"a", "b", "*", "a", "b", "*", "a", "b"},
		},
		{
			name:  "top smaller than input",
			input: "a\nb\nc\nd\n",
			count: 2,
			top:   2,
			sep:   DefaultSeparator(),
			want:  []string{"a", "b", "", "a", "b"},
		},
		{
			name:  "top larger than input",
			input: "a\nb\n",
			count: 1,
			top:   9,
			want:  []string{"a", "b"},
		},
		{
			name:  "empty input",
			input: "",
			count: 2,
			sep:   TextSeparator("-"),
			want:  []string{"-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.input, false, nil)

			err := h.engine.Run(context.Background(), RunConfig{
				Count:     tt.count,
				Top:       tt.top,
				Separator: tt.sep,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, h.lines())
		})
	}
}

func TestRun_StdinReadFailureAbortsBeforeOutput(t *testing.T) {
	h := newHarness(t, "", false, nil)
	boom := errors.New("boom")
	h.engine.Streams.In = io.MultiReader(strings.NewReader("a\nb\n"), iotest.ErrReader(boom))

	err := h.engine.Run(context.Background(), RunConfig{Count: 2})

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "stdin", ioErr.Source)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ExitIO, ExitCode(err))
	assert.Empty(t, h.out.String())
}

func TestRun_StdinInteractiveShowsUsage(t *testing.T) {
	h := newHarness(t, "should not be read\n", true, nil)

	err := h.engine.Run(context.Background(), RunConfig{Count: 1})

	require.NoError(t, err)
	assert.Empty(t, h.out.String())
	assert.Contains(t, h.errOut.String(), "Usage: fecho")
}

func TestRun_Continuous(t *testing.T) {
	tests := []struct {
		name  string
		input string
		top   int
		sep   Separator
		want  []string
	}{
		{
			name:  "separator every three lines, none after partial group",
			input: "1\n2\n3\n4\n5\n6\n7\n",
			top:   3,
			sep:   TextSeparator("--"),
			want:  []string{"1", "2", "3", "--", "4", "5", "6", "--", "7"},
		},
		{
			name:  "no top means no separators",
			input: "1\n2\n3\n",
			sep:   TextSeparator("--"),
			want:  []string{"1", "2", "3"},
		},
		{
			name:  "separator not requested",
			input: "1\n2\n3\n4\n",
			top:   2,
			sep:   NoSeparator(),
			want:  []string{"1", "2", "3", "4"},
		},
		{
			name:  "default separator",
			input: "1\n2\n",
			top:   1,
			sep:   DefaultSeparator(),
			want:  []string{"1", "", "2", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.input, false, nil)

			err := h.engine.Run(context.Background(), RunConfig{
				Count:      1,
				Top:        tt.top,
				Separator:  tt.sep,
				Continuous: true,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, h.lines())
			assert.Empty(t, h.errOut.String())
		})
	}
}

func TestRun_ContinuousInteractivePrompts(t *testing.T) {
	h := newHarness(t, "typed\n", true, nil)

	err := h.engine.Run(context.Background(), RunConfig{Count: 1, Continuous: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"typed"}, h.lines())
	assert.Contains(t, h.errOut.String(), "Ctrl-D")
}

func TestRun_InvalidConfig(t *testing.T) {
	h := newHarness(t, "", false, nil)

	err := h.engine.Run(context.Background(), RunConfig{Inputs: []string{"x"}, Count: 0})

	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Empty(t, h.out.String())
}

func TestRun_WriteFailure(t *testing.T) {
	h := newHarness(t, "", false, nil)
	h.engine.Streams.Out = failingWriter{}

	err := h.engine.Run(context.Background(), RunConfig{Inputs: []string{"x"}, Count: 1})

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "stdout", ioErr.Source)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRun_CancelledContext(t *testing.T) {
	h := newHarness(t, "", false, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.engine.Run(ctx, RunConfig{Inputs: []string{"x"}, Count: 3})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.out.String())
}
