package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	"github.com/quarto-acronyms/fixture-runner/types"
)

const EnvVarPrefix = "FIXTURE_RUNNER"

// StepSummaryEnvVar is the file GitHub Actions renders as the job summary
const StepSummaryEnvVar = "GITHUB_STEP_SUMMARY"

var (
	TestsDir = &cli.StringFlag{
		Name:    "tests-dir",
		Value:   "tests",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TESTS_DIR"),
		Usage:   "Directory holding one sub-directory per fixture",
	}
	Renderer = &cli.StringFlag{
		Name:    "renderer",
		Value:   "quarto",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RENDERER"),
		Usage:   "Renderer command, split like a shell would (eg. 'npx quarto')",
	}
	InputName = &cli.StringFlag{
		Name:    "input-name",
		Value:   "input.qmd",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "INPUT_NAME"),
		Usage:   "Name of the input document inside each fixture directory",
	}
	OutputMode = &cli.StringFlag{
		Name:    "output-mode",
		Value:   types.OutputModeAuto.String(),
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "OUTPUT_MODE"),
		Usage:   fmt.Sprintf("Where the renderer writes its output. Must be one of: %v", types.ValidOutputModes()),
		Action: func(ctx *cli.Context, value string) error {
			return validateOutputMode(value)
		},
	}
	FixturesFile = &cli.StringFlag{
		Name:    "fixtures-file",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "FIXTURES_FILE"),
		Usage:   "YAML file listing the fixtures to run. Defaults to every fixture found in the tests directory",
	}
	ExtensionsLink = &cli.StringFlag{
		Name:    "extensions-link",
		Value:   "_extensions",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "EXTENSIONS_LINK"),
		Usage:   "Name of the extensions directory linked into the tests directory. Empty disables the link",
	}
	SummaryPath = &cli.StringFlag{
		Name:    "summary-path",
		Value:   "",
		EnvVars: []string{StepSummaryEnvVar},
		Usage:   "Write a markdown report of the run to this file",
	}
	SummaryTable = &cli.BoolFlag{
		Name:    "summary-table",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SUMMARY_TABLE"),
		Usage:   "Print a results table after the totals",
	}
	NoColor = &cli.BoolFlag{
		Name:    "no-color",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "NO_COLOR"),
		Usage:   "Disable colored console output",
	}
	MetricsFile = &cli.StringFlag{
		Name:    "metrics-file",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_FILE"),
		Usage:   "Write Prometheus metrics of the run to this file (textfile collector format)",
	}
)

var optionalFlags = []cli.Flag{
	TestsDir,
	Renderer,
	InputName,
	OutputMode,
	FixturesFile,
	ExtensionsLink,
	SummaryPath,
	SummaryTable,
	NoColor,
	MetricsFile,
}
var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)

	Flags = optionalFlags
}

func validateOutputMode(value string) error {
	if !types.OutputMode(value).IsValid() {
		return fmt.Errorf("output-mode must be one of %v, got %q", types.ValidOutputModes(), value)
	}
	return nil
}
