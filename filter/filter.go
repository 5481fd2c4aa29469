package filter

import (
	"errors"
	"fmt"
)

const (
	// MetadataDelimiter opens and closes the YAML block the renderer echoes
	// at the top of markdown output.
	MetadataDelimiter = "---"
	// NoiseTerminator ends each of the two diagnostic blocks on stderr.
	NoiseTerminator = "  "
	// OutputCreatedPrefix starts the stderr line announcing the output file.
	OutputCreatedPrefix = "Output created: "
)

var (
	ErrMetadataNotFound      = errors.New("metadata block delimiters not found")
	ErrNoiseBlocksNotFound   = errors.New("stderr noise block terminators not found")
	ErrOutputCreatedNotFound = errors.New("output created line not found")
)

type state int

const (
	stateBeforeBlock state = iota
	stateInBlock
	stateSkipBlank
	stateAfterBlock
)

func (s state) String() string {
	switch s {
	case stateBeforeBlock:
		return "before-block"
	case stateInBlock:
		return "in-block"
	case stateSkipBlank:
		return "skip-blank"
	case stateAfterBlock:
		return "after-block"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Filter strips renderer boilerplate. The zero value is not usable, use New.
type Filter struct {
	// Separator rejoins kept lines.
	Separator string
	// OutputFile is the name announced by "Output created: <name>" on stderr.
	// Empty when the renderer writes to stdout, in which case the line is
	// not expected.
	OutputFile string
}

// New creates a Filter using the platform line separator.
func New(outputFile string) *Filter {
	return &Filter{
		Separator:  LineSeparator,
		OutputFile: outputFile,
	}
}

// Stdout removes everything from the start of the document through the
// metadata block (both delimiter lines included) and the blank line that
// follows it.
func (f *Filter) Stdout(text string) (string, error) {
	st := stateBeforeBlock
	var kept []string

	for _, line := range SplitLines(text) {
		switch st {
		case stateBeforeBlock:
			if line == MetadataDelimiter {
				st = stateInBlock
			}
		case stateInBlock:
			if line == MetadataDelimiter {
				st = stateSkipBlank
			}
		case stateSkipBlank:
			st = stateAfterBlock
			if line != "" {
				kept = append(kept, line)
			}
		case stateAfterBlock:
			kept = append(kept, line)
		}
	}

	if st == stateBeforeBlock || st == stateInBlock {
		return text, fmt.Errorf("%w (stopped %s)", ErrMetadataNotFound, st)
	}
	return JoinLines(kept, f.Separator), nil
}

// Stderr removes the two diagnostic blocks the renderer prints before any
// warning, each ending with a line of exactly two spaces. When OutputFile is
// set the "Output created" line and the blank line after it are removed too.
func (f *Filter) Stderr(text string) (string, error) {
	terminators := 0
	var kept []string

	for _, line := range SplitLines(text) {
		if terminators < 2 {
			if line == NoiseTerminator {
				terminators++
			}
			continue
		}
		kept = append(kept, line)
	}

	if terminators < 2 {
		return text, fmt.Errorf("%w (found %d of 2)", ErrNoiseBlocksNotFound, terminators)
	}

	if f.OutputFile == "" {
		return JoinLines(kept, f.Separator), nil
	}

	kept, found := dropOutputCreated(kept, OutputCreatedPrefix+f.OutputFile)
	if !found {
		return JoinLines(kept, f.Separator), fmt.Errorf("%w: %q", ErrOutputCreatedNotFound, OutputCreatedPrefix+f.OutputFile)
	}
	return JoinLines(kept, f.Separator), nil
}

func dropOutputCreated(lines []string, marker string) ([]string, bool) {
	for i, line := range lines {
		if line != marker {
			continue
		}
		end := i + 1
		if end < len(lines) && lines[end] == "" {
			end++
		}
		out := make([]string, 0, len(lines)-(end-i))
		out = append(out, lines[:i]...)
		out = append(out, lines[end:]...)
		return out, true
	}
	return lines, false
}

// Stdout filters text with the platform separator in stdout output mode.
func Stdout(text string) (string, error) {
	return New("").Stdout(text)
}

// Stderr filters text with the platform separator in stdout output mode.
func Stderr(text string) (string, error) {
	return New("").Stderr(text)
}
