package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarto-acronyms/fixture-runner/filter"
	"github.com/quarto-acronyms/fixture-runner/types"
)

func testLogger() log.Logger {
	return log.NewLogger(log.DiscardHandler())
}

func TestErrToLabel(t *testing.T) {
	assert.Equal(t, "nil", errToLabel(nil))
	assert.Equal(t, "metadata_block_delimiters_not_found", errToLabel(filter.ErrMetadataNotFound))
	assert.Equal(t, "exit_status_", errToLabel(errors.New("exit status 1")))
}

func TestRecordFixture(t *testing.T) {
	m := New(testLogger())

	m.RecordFixture("run-1", "01-simple", types.TestStatusPass, time.Second)
	m.RecordFixture("run-1", "02-broken", types.TestStatusFail, 2*time.Second)
	m.RecordFixture("run-1", "03-odd", types.TestStatus("skip"), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fixturesTotal.WithLabelValues("run-1", "01-simple", "pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fixturesTotal.WithLabelValues("run-1", "02-broken", "fail")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.fixturesTotal))
}

func TestRecordErrorDetails(t *testing.T) {
	m := New(testLogger())

	m.RecordErrorDetails("filter.stdout", nil)
	assert.Equal(t, 0, testutil.CollectAndCount(m.errorsTotal))

	m.RecordErrorDetails("filter.stdout", filter.ErrMetadataNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.errorsTotal.WithLabelValues("filter.stdout.metadata_block_delimiters_not_found")))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(testLogger()), New(testLogger())
	a.RecordError("boom")

	assert.Equal(t, 1, testutil.CollectAndCount(a.errorsTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(b.errorsTotal))
}

func TestTextfileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture_runner.prom")
	m := New(testLogger())
	sink, err := NewTextfileSink(path, m, testLogger())
	require.NoError(t, err)

	summary := types.NewRunSummary("run-1")
	results := []*types.TestResult{
		{Name: "01-simple", Success: true, Duration: time.Second},
		{Name: "22-no-metadata", Duration: time.Second, StdoutFilterErr: filter.ErrMetadataNotFound},
	}
	for _, result := range results {
		summary.Add(result)
		require.NoError(t, sink.Consume(result, summary.RunID))
	}
	require.NoError(t, sink.Complete(context.Background(), summary))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runFailed.WithLabelValues("run-1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.runFixturesTotal.WithLabelValues("run-1")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `fixture_runner_run_results{result="fail",run_id="run-1"} 1`)
	assert.Contains(t, string(content), `fixture_runner_fixtures_total{name="01-simple",result="pass",run_id="run-1"} 1`)
	assert.Contains(t, string(content), "fixture_runner_errors_total")
}

func TestNewTextfileSinkValidation(t *testing.T) {
	_, err := NewTextfileSink("", New(testLogger()), nil)
	require.Error(t, err)

	_, err = NewTextfileSink("metrics.prom", nil, nil)
	require.Error(t, err)
}
