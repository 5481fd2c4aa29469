package types

import "runtime"

// OutputMode selects where the renderer writes the rendered document
type OutputMode string

const (
	// OutputModeAuto writes to a file on windows and to stdout elsewhere
	OutputModeAuto OutputMode = "auto"
	// OutputModeStdout passes "--output -" to the renderer
	OutputModeStdout OutputMode = "stdout"
	// OutputModeFile lets the renderer write <input>.md next to the input
	OutputModeFile OutputMode = "file"
)

// String returns the string representation of the output mode
func (m OutputMode) String() string {
	return string(m)
}

// IsValid checks if the output mode is one of the known values
func (m OutputMode) IsValid() bool {
	switch m {
	case OutputModeAuto, OutputModeStdout, OutputModeFile:
		return true
	default:
		return false
	}
}

// ValidOutputModes returns all valid output modes
func ValidOutputModes() []OutputMode {
	return []OutputMode{OutputModeAuto, OutputModeStdout, OutputModeFile}
}

// Resolve turns auto into a concrete mode for the running platform
func (m OutputMode) Resolve() OutputMode {
	return m.resolveFor(runtime.GOOS)
}

func (m OutputMode) resolveFor(goos string) OutputMode {
	if m != OutputModeAuto {
		return m
	}
	// Older renderers cannot stream to stdout on windows
	if goos == "windows" {
		return OutputModeFile
	}
	return OutputModeStdout
}
