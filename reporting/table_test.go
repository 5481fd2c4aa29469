package reporting

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarto-acronyms/fixture-runner/filter"
	"github.com/quarto-acronyms/fixture-runner/types"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.0s", formatDuration(0))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "62.3s", formatDuration(62340*time.Millisecond))
}

func TestTableSinkRender(t *testing.T) {
	summary := types.NewRunSummary("run-1")
	pass := passingResult("01-simple")
	pass.Duration = 1200 * time.Millisecond
	fail := failingResult("02-broken")
	fail.StdoutFilterErr = filter.ErrMetadataNotFound
	summary.Add(pass)
	summary.Add(fail)

	rendered := NewTableSink(&bytes.Buffer{}, false).Render(summary)

	assert.Contains(t, rendered, "01-simple")
	assert.Contains(t, rendered, "02-broken")
	assert.Contains(t, rendered, "1.2s")
	assert.Contains(t, rendered, "KO")
	assert.Contains(t, rendered, "1/2")
	assert.Contains(t, rendered, "✗ fail")
	assert.Contains(t, rendered, "stdout:")
}

func TestTableSinkComplete(t *testing.T) {
	var out bytes.Buffer
	sink := NewTableSink(&out, false)
	summary := types.NewRunSummary("run-1")
	result := passingResult("01-simple")

	summary.Add(result)
	require.NoError(t, sink.Consume(result, summary.RunID))
	assert.Empty(t, out.String())

	require.NoError(t, sink.Complete(context.Background(), summary))
	assert.Contains(t, out.String(), "01-simple")
	assert.Contains(t, out.String(), "✓ pass")
}
