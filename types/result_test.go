package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSummaryAdd(t *testing.T) {
	summary := NewRunSummary("run-1")
	require.Equal(t, 0, summary.Total())
	assert.Equal(t, TestStatusPass, summary.Status())

	summary.Add(&TestResult{Name: "01-simple", Success: true, Duration: time.Second})
	summary.Add(&TestResult{Name: "11-missing-key", Success: false, ExitCode: 1, Duration: 2 * time.Second})
	summary.Add(&TestResult{Name: "12-missing-unknown", Success: true, Duration: time.Second})

	assert.Equal(t, 3, summary.Total())
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 4*time.Second, summary.Duration)
	assert.Equal(t, TestStatusFail, summary.Status())
	assert.Equal(t, "Total: 2 PASS / 1 FAIL", summary.String())

	names := make([]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"01-simple", "11-missing-key", "12-missing-unknown"}, names)
}

func TestTestResultChecks(t *testing.T) {
	r := &TestResult{
		ExitCode:       0,
		ActualOutput:   "a\n",
		ExpectedOutput: "a\n",
		ActualError:    "warn\n",
		ExpectedError:  "",
	}
	assert.True(t, r.ExitCodeOK())
	assert.True(t, r.OutputOK())
	assert.False(t, r.ErrorOK())
	assert.Equal(t, TestStatusFail, r.Status())
	assert.Empty(t, r.FilterWarnings())

	r.StdoutFilterErr = errors.New("no metadata block")
	r.StderrFilterErr = errors.New("no noise blocks")
	assert.Equal(t, []string{"stdout: no metadata block", "stderr: no noise blocks"}, r.FilterWarnings())
}
