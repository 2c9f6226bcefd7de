package fecho

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/connorhough/fecho/internal/iostreams"
	"github.com/spf13/afero"
)

const (
	stdinName  = "stdin"
	stdoutName = "stdout"

	interactivePrompt = "Reading standard input, press Ctrl-D to finish"
)

// Engine runs a RunConfig against a set of streams and a filesystem.
type Engine struct {
	Streams *iostreams.IOStreams
	FS      afero.Fs
	// Usage writes the command's help text. It is shown instead of blocking
	// when buffered stdin mode finds a terminal on stdin.
	Usage func(w io.Writer) error
}

// Run validates cfg and emits its content to the engine's output stream.
func (e *Engine) Run(ctx context.Context, cfg RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode := cfg.Mode()
	slog.Debug("dispatching run",
		"mode", mode,
		"inputs", len(cfg.Inputs),
		"count", cfg.Count,
		"top", cfg.Top,
		"separator", cfg.Separator,
		"continuous", cfg.Continuous,
	)

	switch mode {
	case ModeFiles:
		return e.runFiles(ctx, cfg)
	case ModeStdin:
		if cfg.Continuous {
			return e.runContinuous(ctx, cfg)
		}
		return e.runStdin(ctx, cfg)
	default:
		return e.runDirect(ctx, cfg)
	}
}

func (e *Engine) runDirect(ctx context.Context, cfg RunConfig) error {
	joined := strings.Join(cfg.Inputs, " ")

	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.println(joined); err != nil {
			return err
		}
		if i < cfg.Count-1 {
			if err := e.separator(cfg.Separator); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) runFiles(ctx context.Context, cfg RunConfig) error {
	if err := Preflight(e.FS, cfg.Inputs); err != nil {
		var inaccessible *InaccessibleInputsError
		if errors.As(err, &inaccessible) {
			for _, failure := range inaccessible.Failures.WrappedErrors() {
				fmt.Fprintln(e.Streams.ErrOut, failure)
			}
		}
		return err
	}

	last := len(cfg.Inputs) - 1
	for i := 0; i < cfg.Count; i++ {
		for k, path := range cfg.Inputs {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Debug("emitting file", "path", path, "repetition", i)
			if err := e.emit(NewFileSource(e.FS, path), cfg.Top); err != nil {
				return err
			}
			if k < last || i < cfg.Count-1 {
				if err := e.separator(cfg.Separator); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *Engine) runStdin(ctx context.Context, cfg RunConfig) error {
	if e.Streams.IsInteractive() {
		slog.Debug("stdin is a terminal, showing usage")
		if e.Usage == nil {
			return nil
		}
		return e.Usage(e.Streams.ErrOut)
	}

	lines, err := ReadLines(e.Streams.In)
	if err != nil {
		return &IOError{Source: stdinName, Err: err}
	}
	src := NewBufferedSource(stdinName, lines)
	slog.Debug("buffered stdin", "lines", src.Len())

	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.emit(src, cfg.Top); err != nil {
			return err
		}
		if i < cfg.Count-1 {
			if err := e.separator(cfg.Separator); err != nil {
				return err
			}
		}
	}
	return nil
}

// runContinuous echoes stdin line by line as it arrives. The separator is
// printed every cfg.Top lines; a trailing partial group gets none.
func (e *Engine) runContinuous(ctx context.Context, cfg RunConfig) error {
	if cfg.Count > 1 {
		slog.Warn("count is ignored in continuous mode", "count", cfg.Count)
	}
	if e.Streams.IsInteractive() {
		fmt.Fprintln(e.Streams.ErrOut, interactivePrompt)
	}

	remaining := cfg.Top
	for line, err := range scanLines(e.Streams.In) {
		if err != nil {
			return &IOError{Source: stdinName, Err: err}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.println(line); err != nil {
			return err
		}
		if cfg.Top == 0 {
			continue
		}
		remaining--
		if remaining == 0 {
			if err := e.separator(cfg.Separator); err != nil {
				return err
			}
			remaining = cfg.Top
		}
	}
	return nil
}

// emit prints one unit: the lines of src, truncated to top.
func (e *Engine) emit(src LineSource, top int) error {
	for line, err := range Take(src.Lines(), top) {
		if err != nil {
			return &IOError{Source: src.Name(), Err: err}
		}
		if err := e.println(line); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) separator(sep Separator) error {
	line, ok := sep.Line()
	if !ok {
		return nil
	}
	return e.println(line)
}

func (e *Engine) println(line string) error {
	if _, err := fmt.Fprintln(e.Streams.Out, line); err != nil {
		return &IOError{Source: stdoutName, Err: err}
	}
	return nil
}
