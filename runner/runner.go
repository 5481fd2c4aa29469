package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quarto-acronyms/fixture-runner/filter"
	"github.com/quarto-acronyms/fixture-runner/fixtures"
	"github.com/quarto-acronyms/fixture-runner/types"
)

// ResultSink consumes fixture results as they are produced
type ResultSink interface {
	// Consume processes a single result, right after its fixture ran
	Consume(result *types.TestResult, runID string) error
	// Complete is called once every fixture has run
	Complete(ctx context.Context, summary *types.RunSummary) error
}

// StartNotifier is implemented by sinks that want to know a fixture is about to run
type StartNotifier interface {
	Start(name, runID string) error
}

// TestRunner runs fixtures
type TestRunner interface {
	RunFixture(ctx context.Context, name string) (*types.TestResult, error)
	RunAll(ctx context.Context, names []string) (*types.RunSummary, error)
}

// Config holds the runner configuration
type Config struct {
	Resolver *fixtures.Resolver
	Executor Executor
	Sinks    []ResultSink
	Log      log.Logger
	// Separator rejoins filtered lines, defaults to the platform separator
	Separator string
	// Tracer defaults to the global tracer provider
	Tracer trace.Tracer
}

type runner struct {
	resolver  *fixtures.Resolver
	executor  Executor
	sinks     []ResultSink
	log       log.Logger
	separator string
	tracer    trace.Tracer
}

var _ TestRunner = (*runner)(nil)

// NewTestRunner creates a new sequential test runner
func NewTestRunner(cfg Config) (TestRunner, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if cfg.Executor == nil {
		return nil, errors.New("executor is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	if cfg.Separator == "" {
		cfg.Separator = filter.LineSeparator
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer("fixture runner")
	}

	return &runner{
		resolver:  cfg.Resolver,
		executor:  cfg.Executor,
		sinks:     cfg.Sinks,
		log:       cfg.Log,
		separator: cfg.Separator,
		tracer:    cfg.Tracer,
	}, nil
}

// RunAll runs the named fixtures in order. Any error other than a fixture
// failing aborts the run.
func (r *runner) RunAll(ctx context.Context, names []string) (*types.RunSummary, error) {
	summary := types.NewRunSummary(uuid.New().String())
	ctx, span := r.tracer.Start(ctx, "run", trace.WithAttributes(
		attribute.String("run_id", summary.RunID),
		attribute.Int("fixtures", len(names)),
	))
	defer span.End()

	r.log.Info("Running fixtures", "count", len(names), "run_id", summary.RunID, "mode", r.executor.OutputMode())

	for _, name := range names {
		for _, sink := range r.sinks {
			if notifier, ok := sink.(StartNotifier); ok {
				if err := notifier.Start(name, summary.RunID); err != nil {
					return nil, fmt.Errorf("sink failed to start %s: %w", name, err)
				}
			}
		}

		result, err := r.RunFixture(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: %w", name, err)
		}
		summary.Add(result)

		for _, sink := range r.sinks {
			if err := sink.Consume(result, summary.RunID); err != nil {
				return nil, fmt.Errorf("sink failed to consume %s: %w", name, err)
			}
		}
	}

	for _, sink := range r.sinks {
		if err := sink.Complete(ctx, summary); err != nil {
			return nil, fmt.Errorf("sink failed to complete: %w", err)
		}
	}

	span.SetAttributes(attribute.Int("passed", summary.Passed), attribute.Int("failed", summary.Failed))
	r.log.Info("Fixtures completed", "run_id", summary.RunID, "passed", summary.Passed, "failed", summary.Failed)
	return summary, nil
}

// RunFixture renders a single fixture and compares it with its golden files
func (r *runner) RunFixture(ctx context.Context, name string) (*types.TestResult, error) {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("fixture %s", name))
	defer span.End()

	fixture, err := r.resolver.Resolve(name)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	invocation, err := r.render(ctx, fixture)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	_, filterSpan := r.tracer.Start(ctx, "filter")
	f := &filter.Filter{Separator: r.separator}
	if r.executor.OutputMode() == types.OutputModeFile {
		f.OutputFile = filepath.Base(fixture.OutputFilePath)
	}

	actualOutput, stdoutErr := f.Stdout(invocation.Stdout)
	if stdoutErr != nil {
		r.log.Warn("Output filter passed text through", "fixture", name, "err", stdoutErr)
	}
	actualError, stderrErr := f.Stderr(invocation.Stderr)
	if stderrErr != nil {
		r.log.Warn("Error filter passed text through", "fixture", name, "err", stderrErr)
	}
	filterSpan.SetAttributes(
		attribute.Bool("stdout_filtered", stdoutErr == nil),
		attribute.Bool("stderr_filtered", stderrErr == nil),
	)
	filterSpan.End()

	_, compareSpan := r.tracer.Start(ctx, "compare")
	expected, err := r.resolver.LoadExpected(fixture)
	if err != nil {
		compareSpan.RecordError(err)
		compareSpan.End()
		span.RecordError(err)
		return nil, err
	}

	verdict := Compare(invocation.ExitCode, actualOutput, expected.Output, actualError, expected.Error)
	compareSpan.SetAttributes(
		attribute.Bool("exit_code_ok", verdict.ExitCodeOK),
		attribute.Bool("output_ok", verdict.OutputOK),
		attribute.Bool("error_ok", verdict.ErrorOK),
	)
	compareSpan.End()
	span.SetAttributes(attribute.Bool("success", verdict.Success()))
	r.log.Debug("Fixture finished", "fixture", name, "success", verdict.Success(),
		"code", invocation.ExitCode, "duration", invocation.Duration)

	return &types.TestResult{
		Name:            name,
		Success:         verdict.Success(),
		ExitCode:        invocation.ExitCode,
		InputFilePath:   fixture.InputPath,
		OriginalOutput:  invocation.Stdout,
		ActualOutput:    actualOutput,
		ExpectedOutput:  expected.Output,
		OriginalError:   invocation.Stderr,
		ActualError:     actualError,
		ExpectedError:   expected.Error,
		StdoutFilterErr: stdoutErr,
		StderrFilterErr: stderrErr,
		Duration:        invocation.Duration,
	}, nil
}

func (r *runner) render(ctx context.Context, fixture types.Fixture) (*Invocation, error) {
	ctx, span := r.tracer.Start(ctx, "render", trace.WithAttributes(
		attribute.String("mode", r.executor.OutputMode().String()),
	))
	defer span.End()

	invocation, err := r.executor.Render(ctx, fixture)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("exit_code", invocation.ExitCode))
	return invocation, nil
}
