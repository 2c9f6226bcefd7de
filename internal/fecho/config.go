// Package fecho implements the input resolution and repeated emission engine
// behind the fecho command: literal text, files or standard input printed a
// number of times, truncated per unit and separated at unit boundaries.
package fecho

// Mode selects which of the three input sources a run reads from.
type Mode int

const (
	ModeDirect Mode = iota
	ModeFiles
	ModeStdin
)

func (m Mode) String() string {
	switch m {
	case ModeFiles:
		return "files"
	case ModeStdin:
		return "stdin"
	default:
		return "direct"
	}
}

// RunConfig is the validated input of a single run. It is built once by the
// command layer and never mutated afterwards.
type RunConfig struct {
	// Inputs holds literal words in direct mode and paths in file mode.
	Inputs []string
	// Files switches Inputs to be interpreted as file paths.
	Files bool
	// Count is the number of times each unit is emitted.
	Count int
	// Top caps the lines emitted per unit. Zero means unbounded.
	Top int
	// Separator is printed between units.
	Separator Separator
	// Continuous streams stdin and places separators every Top lines.
	Continuous bool
}

// Mode derives the input source for the run.
func (c RunConfig) Mode() Mode {
	switch {
	case c.Files:
		return ModeFiles
	case len(c.Inputs) == 0:
		return ModeStdin
	default:
		return ModeDirect
	}
}

// Validate checks the invariants the engine relies on.
func (c RunConfig) Validate() error {
	if c.Count < 1 {
		return invalidConfig("count must be at least 1, got %d", c.Count)
	}
	if c.Top < 0 {
		return invalidConfig("top must be a positive integer, got %d", c.Top)
	}
	if c.Files && len(c.Inputs) == 0 {
		return invalidConfig("--file requires at least one input path")
	}
	if c.Continuous && (c.Files || len(c.Inputs) > 0) {
		return invalidConfig("--continuous only applies when reading standard input")
	}
	return nil
}
