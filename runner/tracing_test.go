package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/quarto-acronyms/fixture-runner/internal/testutil"
	"github.com/quarto-acronyms/fixture-runner/types"
)

func newTracedRunner(t *testing.T) (TestRunner, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	executor, err := NewExecutor("quarto", types.OutputModeStdout, testutil.HelperCmdBuilder(), testLogger())
	require.NoError(t, err)

	r, err := NewTestRunner(Config{
		Resolver:  newFixtureResolver(t),
		Executor:  executor,
		Log:       testLogger(),
		Separator: "\n",
		Tracer:    provider.Tracer("fixture runner test"),
	})
	require.NoError(t, err)
	return r, recorder
}

func spanNames(spans []sdktrace.ReadOnlySpan) []string {
	names := make([]string, 0, len(spans))
	for _, span := range spans {
		names = append(names, span.Name())
	}
	return names
}

func TestRunAllSpans(t *testing.T) {
	r, recorder := newTracedRunner(t)

	summary, err := r.RunAll(context.Background(), []string{"01-simple", "20-wrong-output"})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Equal(t, []string{
		"render", "filter", "compare", "fixture 01-simple",
		"render", "filter", "compare", "fixture 20-wrong-output",
		"run",
	}, spanNames(spans))

	run := spans[8]
	assert.Contains(t, run.Attributes(), attribute.String("run_id", summary.RunID))
	assert.Contains(t, run.Attributes(), attribute.Int("failed", 1))

	// render, filter and compare hang off their fixture, fixtures off the run
	for i, parent := range map[int]int{0: 3, 1: 3, 2: 3, 3: 8, 4: 7, 7: 8} {
		assert.Equal(t, spans[parent].SpanContext().SpanID(), spans[i].Parent().SpanID(),
			"parent of %s", spans[i].Name())
	}

	assert.Contains(t, spans[3].Attributes(), attribute.Bool("success", true))
	assert.Contains(t, spans[6].Attributes(), attribute.Bool("output_ok", false))
	assert.Contains(t, spans[7].Attributes(), attribute.Bool("success", false))
}

func TestRunFixtureSpanRecordsError(t *testing.T) {
	r, recorder := newTracedRunner(t)

	_, err := r.RunFixture(context.Background(), "23-no-expected")
	require.Error(t, err)

	spans := recorder.Ended()
	require.NotEmpty(t, spans)
	fixture := spans[len(spans)-1]
	assert.Equal(t, "fixture 23-no-expected", fixture.Name())
	require.NotEmpty(t, fixture.Events())
	assert.Equal(t, "exception", fixture.Events()[0].Name)
}
