package reporting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"
	"github.com/google/go-cmp/cmp"

	"github.com/quarto-acronyms/fixture-runner/filter"
	"github.com/quarto-acronyms/fixture-runner/templates"
	"github.com/quarto-acronyms/fixture-runner/types"
)

// CheckFunc returns the renderer's environment diagnostic
type CheckFunc func(ctx context.Context) (string, error)

// MarkdownReport writes a markdown job summary once the run completes
type MarkdownReport struct {
	path  string
	check CheckFunc
	log   log.Logger
}

type reportData struct {
	RunID    string
	Passed   int
	Failed   int
	Duration time.Duration
	Fixtures []fixtureView
	CheckLog string
	CheckErr error
}

type fixtureView struct {
	*types.TestResult
	Input          string
	OriginalOutput string
	OriginalError  string
	OutputDiff     string
	ErrorDiff      string
	Warnings       []string
}

// NewMarkdownReport creates a sink writing the report to path. check may be
// nil, in which case the configuration section carries a note instead.
func NewMarkdownReport(path string, check CheckFunc, logger log.Logger) (*MarkdownReport, error) {
	if path == "" {
		return nil, errors.New("summary path is required")
	}
	if logger == nil {
		logger = log.New()
	}
	return &MarkdownReport{
		path:  path,
		check: check,
		log:   logger,
	}, nil
}

// Consume is a no-op, the report is written on Complete
func (m *MarkdownReport) Consume(result *types.TestResult, runID string) error {
	return nil
}

// Complete renders the report and writes it, replacing any previous content
func (m *MarkdownReport) Complete(ctx context.Context, summary *types.RunSummary) error {
	content, err := m.Render(ctx, summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", m.path, err)
	}
	m.log.Info("Wrote markdown summary", "path", m.path, "fixtures", summary.Total())
	return nil
}

// Render returns the report content without writing it
func (m *MarkdownReport) Render(ctx context.Context, summary *types.RunSummary) ([]byte, error) {
	data := reportData{
		RunID:    summary.RunID,
		Passed:   summary.Passed,
		Failed:   summary.Failed,
		Duration: summary.Duration,
		Fixtures: make([]fixtureView, 0, len(summary.Results)),
	}

	if m.check == nil {
		data.CheckErr = errors.New("no renderer configured")
	} else {
		checkLog, err := m.check(ctx)
		if err != nil {
			m.log.Warn("Renderer check failed", "err", err)
			data.CheckErr = err
		}
		data.CheckLog = checkLog
	}

	for _, result := range summary.Results {
		input, err := os.ReadFile(result.InputFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input of %s: %w", result.Name, err)
		}
		data.Fixtures = append(data.Fixtures, fixtureView{
			TestResult:     result,
			Input:          string(input),
			OriginalOutput: stripansi.Strip(result.OriginalOutput),
			OriginalError:  stripansi.Strip(result.OriginalError),
			OutputDiff:     lineDiff(result.ExpectedOutput, result.ActualOutput),
			ErrorDiff:      lineDiff(result.ExpectedError, result.ActualError),
			Warnings:       result.FilterWarnings(),
		})
	}

	tmpl, err := templates.GetMarkdownTemplate()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute markdown template: %w", err)
	}
	return buf.Bytes(), nil
}

// lineDiff returns a line-oriented diff, empty when both texts are equal
func lineDiff(expected, actual string) string {
	if expected == actual {
		return ""
	}
	return cmp.Diff(filter.SplitLines(expected), filter.SplitLines(actual))
}
