package types

import (
	"fmt"
	"time"
)

// TestStatus represents the outcome of a fixture run
type TestStatus string

const (
	TestStatusPass TestStatus = "pass"
	TestStatusFail TestStatus = "fail"
)

// TestResult captures the outcome of a single fixture run.
// It is built once by the runner and never mutated afterwards.
type TestResult struct {
	Name          string
	Success       bool
	ExitCode      int
	InputFilePath string

	OriginalOutput string // Unfiltered renderer output
	ActualOutput   string // Output with the metadata block removed
	ExpectedOutput string

	OriginalError string // Unfiltered stderr
	ActualError   string // Stderr with renderer noise removed
	ExpectedError string

	// Set when a filter could not find its markers and passed text through
	StdoutFilterErr error
	StderrFilterErr error

	Duration time.Duration
}

// Status returns the pass/fail status of the result
func (r *TestResult) Status() TestStatus {
	if r.Success {
		return TestStatusPass
	}
	return TestStatusFail
}

// ExitCodeOK reports whether the renderer exited cleanly
func (r *TestResult) ExitCodeOK() bool {
	return r.ExitCode == 0
}

// OutputOK reports whether the filtered output matched the golden output
func (r *TestResult) OutputOK() bool {
	return r.ActualOutput == r.ExpectedOutput
}

// ErrorOK reports whether the filtered stderr matched the golden error log
func (r *TestResult) ErrorOK() bool {
	return r.ActualError == r.ExpectedError
}

// FilterWarnings lists the filter errors recorded on the result
func (r *TestResult) FilterWarnings() []string {
	var warnings []string
	if r.StdoutFilterErr != nil {
		warnings = append(warnings, fmt.Sprintf("stdout: %v", r.StdoutFilterErr))
	}
	if r.StderrFilterErr != nil {
		warnings = append(warnings, fmt.Sprintf("stderr: %v", r.StderrFilterErr))
	}
	return warnings
}

// RunSummary aggregates the results of one invocation in execution order
type RunSummary struct {
	RunID    string
	Results  []*TestResult
	Passed   int
	Failed   int
	Duration time.Duration
}

// NewRunSummary creates an empty summary for the given run
func NewRunSummary(runID string) *RunSummary {
	return &RunSummary{
		RunID:   runID,
		Results: make([]*TestResult, 0),
	}
}

// Add appends a result and updates the counters
func (s *RunSummary) Add(result *TestResult) {
	s.Results = append(s.Results, result)
	s.Duration += result.Duration
	if result.Success {
		s.Passed++
	} else {
		s.Failed++
	}
}

// Total returns the number of fixtures run
func (s *RunSummary) Total() int {
	return len(s.Results)
}

// Status is pass only when no fixture failed
func (s *RunSummary) Status() TestStatus {
	if s.Failed > 0 {
		return TestStatusFail
	}
	return TestStatusPass
}

// String returns a one-line textual summary
func (s *RunSummary) String() string {
	return fmt.Sprintf("Total: %d PASS / %d FAIL", s.Passed, s.Failed)
}
