package runner

// Verdict records which parts of a fixture run matched
type Verdict struct {
	ExitCodeOK bool
	OutputOK   bool
	ErrorOK    bool
}

// Success is true only when all three parts match
func (v Verdict) Success() bool {
	return v.ExitCodeOK && v.OutputOK && v.ErrorOK
}

// Compare checks a renderer run against the golden files
func Compare(exitCode int, actualOutput, expectedOutput, actualError, expectedError string) Verdict {
	return Verdict{
		ExitCodeOK: exitCode == 0,
		OutputOK:   actualOutput == expectedOutput,
		ErrorOK:    actualError == expectedError,
	}
}
