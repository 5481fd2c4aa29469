package reporting

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quarto-acronyms/fixture-runner/types"
)

// TableSink renders a results table once all fixtures have run
type TableSink struct {
	out   io.Writer
	color bool
}

// NewTableSink creates a table sink writing to out
func NewTableSink(out io.Writer, color bool) *TableSink {
	return &TableSink{out: out, color: color}
}

// Consume is a no-op, the table is built from the summary
func (s *TableSink) Consume(result *types.TestResult, runID string) error {
	return nil
}

// Complete renders the table
func (s *TableSink) Complete(ctx context.Context, summary *types.RunSummary) error {
	_, err := fmt.Fprintln(s.out, s.Render(summary))
	return err
}

// Render returns the results table as a string
func (s *TableSink) Render(summary *types.RunSummary) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Fixture Results (%s)", formatDuration(summary.Duration)))

	t.AppendHeader(table.Row{
		"Fixture", "Duration", "Exit code", "Stdout", "Stderr", "Status", "Notes",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Fixture", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Exit code", Align: text.AlignRight},
		{Name: "Notes", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, result := range summary.Results {
		notes := ""
		if warnings := result.FilterWarnings(); len(warnings) > 0 {
			notes = fmt.Sprint(warnings)
		}
		t.AppendRow(table.Row{
			result.Name,
			formatDuration(result.Duration),
			result.ExitCode,
			matchString(result.OutputOK()),
			matchString(result.ErrorOK()),
			getResultString(result.Status()),
			notes,
		})
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		formatDuration(summary.Duration),
		"",
		"",
		fmt.Sprintf("%d/%d", summary.Passed, summary.Total()),
		getResultString(summary.Status()),
		"",
	})

	switch {
	case !s.color:
		t.SetStyle(table.StyleLight)
	case summary.Status() == types.TestStatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	return t.Render()
}

// formatDuration formats a duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func matchString(ok bool) string {
	if ok {
		return "OK"
	}
	return "KO"
}

// getResultString returns a marker string for a status
func getResultString(status types.TestStatus) string {
	if status == types.TestStatusPass {
		return "✓ pass"
	}
	return "✗ fail"
}
