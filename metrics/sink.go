package metrics

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/log"

	"github.com/quarto-acronyms/fixture-runner/types"
)

// TextfileSink records run metrics and writes them in the Prometheus text
// format once the run completes, for node_exporter's textfile collector.
type TextfileSink struct {
	metrics *Metrics
	path    string
	log     log.Logger
}

// NewTextfileSink creates a sink writing to path
func NewTextfileSink(path string, m *Metrics, logger log.Logger) (*TextfileSink, error) {
	if path == "" {
		return nil, errors.New("metrics file path is required")
	}
	if m == nil {
		return nil, errors.New("metrics are required")
	}
	if logger == nil {
		logger = log.New()
	}
	return &TextfileSink{
		metrics: m,
		path:    path,
		log:     logger,
	}, nil
}

func (s *TextfileSink) Consume(result *types.TestResult, runID string) error {
	s.metrics.RecordFixture(runID, result.Name, result.Status(), result.Duration)
	if result.StdoutFilterErr != nil {
		s.metrics.RecordErrorDetails("filter.stdout", result.StdoutFilterErr)
	}
	if result.StderrFilterErr != nil {
		s.metrics.RecordErrorDetails("filter.stderr", result.StderrFilterErr)
	}
	return nil
}

func (s *TextfileSink) Complete(ctx context.Context, summary *types.RunSummary) error {
	s.metrics.RecordRun(summary.RunID, summary.Status(), summary.Total(),
		summary.Passed, summary.Failed, summary.Duration)

	if err := s.metrics.WriteTextfile(s.path); err != nil {
		return err
	}
	s.log.Info("Wrote metrics", "path", s.path)
	return nil
}
