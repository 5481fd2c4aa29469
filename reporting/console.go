package reporting

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quarto-acronyms/fixture-runner/types"
)

var (
	boldGreen = text.Colors{text.Bold, text.FgGreen}
	boldRed   = text.Colors{text.Bold, text.FgRed}
	bold      = text.Colors{text.Bold}
)

// ConsoleReporter prints one line per fixture as soon as it finishes, then
// the totals.
type ConsoleReporter struct {
	out   io.Writer
	color bool
}

// NewConsoleReporter creates a console reporter writing to out
func NewConsoleReporter(out io.Writer, color bool) *ConsoleReporter {
	return &ConsoleReporter{
		out:   out,
		color: color,
	}
}

func (c *ConsoleReporter) paint(colors text.Colors, s string) string {
	if !c.color {
		return s
	}
	return colors.Sprint(s)
}

// Start prints the fixture name, the result follows on the same line
func (c *ConsoleReporter) Start(name, runID string) error {
	_, err := fmt.Fprintf(c.out, "Running test %s ...", c.paint(bold, name))
	return err
}

// Consume completes the line started by Start
func (c *ConsoleReporter) Consume(result *types.TestResult, runID string) error {
	_, err := fmt.Fprintln(c.out, c.OneLine(result))
	return err
}

// Complete prints the totals
func (c *ConsoleReporter) Complete(ctx context.Context, summary *types.RunSummary) error {
	totals := summary.String()
	if c.color {
		totals = fmt.Sprintf("Total: %d %s / %d %s",
			summary.Passed, boldGreen.Sprint("PASS"),
			summary.Failed, boldRed.Sprint("FAIL"))
	}
	_, err := fmt.Fprintf(c.out, "\n%s\n", totals)
	return err
}

// OneLine formats a result as " PASS (Retcode: OK | Stdout: OK | Stderr: OK)"
func (c *ConsoleReporter) OneLine(result *types.TestResult) string {
	ok, ko := c.paint(boldGreen, "OK"), c.paint(boldRed, "KO")
	check := func(passed bool) string {
		if passed {
			return ok
		}
		return ko
	}

	status := c.paint(boldRed, "FAIL")
	if result.Success {
		status = c.paint(boldGreen, "PASS")
	}
	code := ok
	if !result.ExitCodeOK() {
		code = c.paint(boldRed, fmt.Sprint(result.ExitCode))
	}

	return fmt.Sprintf(" %s (Retcode: %s | Stdout: %s | Stderr: %s)",
		status, code, check(result.OutputOK()), check(result.ErrorOK()))
}
