package reporting

import (
	"bytes"
	"context"
	"testing"

	"github.com/acarl005/stripansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarto-acronyms/fixture-runner/types"
)

func passingResult(name string) *types.TestResult {
	return &types.TestResult{
		Name:           name,
		Success:        true,
		ActualOutput:   "# Title\n",
		ExpectedOutput: "# Title\n",
	}
}

func failingResult(name string) *types.TestResult {
	return &types.TestResult{
		Name:           name,
		ExitCode:       1,
		ActualOutput:   "# Other\n",
		ExpectedOutput: "# Title\n",
		ActualError:    "",
		ExpectedError:  "",
	}
}

func TestConsoleOneLine(t *testing.T) {
	tests := []struct {
		name   string
		result *types.TestResult
		want   string
	}{
		{
			name:   "pass",
			result: passingResult("01-simple"),
			want:   " PASS (Retcode: OK | Stdout: OK | Stderr: OK)",
		},
		{
			name:   "exit code and output",
			result: failingResult("02-broken"),
			want:   " FAIL (Retcode: 1 | Stdout: KO | Stderr: OK)",
		},
		{
			name: "stderr only",
			result: &types.TestResult{
				Name:          "11-missing-key",
				ActualError:   "WARNING: acronym key 'foo' not found\n",
				ExpectedError: "WARNING: acronym key 'bar' not found\n",
			},
			want: " FAIL (Retcode: OK | Stdout: OK | Stderr: KO)",
		},
	}

	c := NewConsoleReporter(&bytes.Buffer{}, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.OneLine(tt.result))
		})
	}
}

func TestConsoleReporterStream(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleReporter(&out, false)
	summary := types.NewRunSummary("run-1")

	for _, result := range []*types.TestResult{passingResult("01-simple"), failingResult("02-broken")} {
		require.NoError(t, c.Start(result.Name, summary.RunID))
		summary.Add(result)
		require.NoError(t, c.Consume(result, summary.RunID))
	}
	require.NoError(t, c.Complete(context.Background(), summary))

	want := "Running test 01-simple ... PASS (Retcode: OK | Stdout: OK | Stderr: OK)\n" +
		"Running test 02-broken ... FAIL (Retcode: 1 | Stdout: KO | Stderr: OK)\n" +
		"\nTotal: 1 PASS / 1 FAIL\n"
	assert.Equal(t, want, out.String())
}

func TestConsoleReporterColor(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleReporter(&out, true)

	require.NoError(t, c.Start("01-simple", "run-1"))
	require.NoError(t, c.Consume(passingResult("01-simple"), "run-1"))

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "01-simple")
	assert.Contains(t, out.String(), "PASS")
}

func TestConsoleReporterTotals(t *testing.T) {
	summary := types.NewRunSummary("run-1")
	summary.Add(passingResult("01-simple"))
	summary.Add(failingResult("02-broken"))

	for _, color := range []bool{false, true} {
		var out bytes.Buffer
		require.NoError(t, NewConsoleReporter(&out, color).Complete(context.Background(), summary))
		assert.Equal(t, "\n"+summary.String()+"\n", stripansi.Strip(out.String()))
	}
}
