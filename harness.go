// Package harness drives a fixture run: it links the extensions into the
// tests directory, selects the fixtures, renders each of them and hands the
// results to the console, markdown and metrics sinks.
package harness

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/quarto-acronyms/fixture-runner/fixtures"
	"github.com/quarto-acronyms/fixture-runner/metrics"
	"github.com/quarto-acronyms/fixture-runner/reporting"
	"github.com/quarto-acronyms/fixture-runner/runner"
	"github.com/quarto-acronyms/fixture-runner/types"
)

// Harness runs the configured fixtures once
type Harness struct {
	config   *Config
	resolver *fixtures.Resolver
	executor runner.Executor
	runner   runner.TestRunner
	metrics  *metrics.Metrics
}

// New wires the resolver, the renderer executor, the sinks and the runner
func New(config *Config) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.CmdBuilder == nil {
		config.CmdBuilder = runner.DefaultCmdBuilder
	}
	if config.Log == nil {
		config.Log = log.New()
	}

	config.Log.Debug("Creating harness with config",
		"testsDir", config.TestsDir,
		"renderer", config.Renderer,
		"outputMode", config.OutputMode,
		"fixturesFile", config.FixturesFile,
		"summaryPath", config.SummaryPath,
		"metricsFile", config.MetricsFile)

	resolver, err := fixtures.NewResolver(fixtures.Config{
		Log:       config.Log,
		TestsDir:  config.TestsDir,
		InputName: config.InputName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	executor, err := runner.NewExecutor(config.Renderer, config.OutputMode, config.CmdBuilder, config.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	h := &Harness{
		config:   config,
		resolver: resolver,
		executor: executor,
	}

	sinks, err := h.sinks()
	if err != nil {
		return nil, err
	}

	h.runner, err = runner.NewTestRunner(runner.Config{
		Resolver: resolver,
		Executor: executor,
		Sinks:    sinks,
		Log:      config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create test runner: %w", err)
	}

	return h, nil
}

// sinks builds the result sinks in output order: the totals come before the
// table
func (h *Harness) sinks() ([]runner.ResultSink, error) {
	cfg := h.config
	sinks := []runner.ResultSink{reporting.NewConsoleReporter(cfg.Stdout, cfg.Color)}

	if cfg.SummaryTable {
		sinks = append(sinks, reporting.NewTableSink(cfg.Stdout, cfg.Color))
	}

	if cfg.SummaryPath != "" {
		report, err := reporting.NewMarkdownReport(cfg.SummaryPath, h.executor.Check, cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to create markdown report: %w", err)
		}
		sinks = append(sinks, report)
	}

	if cfg.MetricsFile != "" {
		h.metrics = metrics.New(cfg.Log)
		sink, err := metrics.NewTextfileSink(cfg.MetricsFile, h.metrics, cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics sink: %w", err)
		}
		sinks = append(sinks, sink)
	}

	return sinks, nil
}

// Fixtures returns the names of the fixtures the run will cover
func (h *Harness) Fixtures() ([]string, error) {
	var list *types.FixtureList
	if h.config.FixturesFile != "" {
		var err error
		list, err = fixtures.LoadList(h.config.FixturesFile)
		if err != nil {
			return nil, err
		}
	}
	return h.resolver.Select(h.config.Fixtures, list)
}

// Run runs every selected fixture in order. Fixture failures are part of the
// returned summary; any error returned is a RuntimeError.
func (h *Harness) Run(ctx context.Context) (*types.RunSummary, error) {
	if h.config.ExtensionsLink != "" {
		if _, err := h.resolver.EnsureExtensionsLink(h.config.ExtensionsLink); err != nil {
			return nil, h.runtimeError("extensions", err)
		}
	}

	names, err := h.Fixtures()
	if err != nil {
		return nil, h.runtimeError("selection", err)
	}

	summary, err := h.runner.RunAll(ctx, names)
	if err != nil {
		return nil, h.runtimeError("run", err)
	}

	if summary.Failed > 0 {
		h.config.Log.Warn("Fixtures failed", "failed", summary.Failed, "total", summary.Total())
	}
	return summary, nil
}

func (h *Harness) runtimeError(stage string, err error) error {
	h.config.Log.Error("Fixture run aborted", "stage", stage, "err", err)
	if h.metrics != nil {
		h.metrics.RecordErrorDetails(stage, err)
		if writeErr := h.metrics.WriteTextfile(h.config.MetricsFile); writeErr != nil {
			h.config.Log.Warn("Failed to write metrics", "err", writeErr)
		}
	}
	return NewRuntimeError(err)
}
