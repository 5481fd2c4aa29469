package harness

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/quarto-acronyms/fixture-runner/flags"
	"github.com/quarto-acronyms/fixture-runner/runner"
	"github.com/quarto-acronyms/fixture-runner/types"
)

// Config holds the application configuration
type Config struct {
	TestsDir       string           // Absolute directory holding the fixtures
	Renderer       string           // Renderer command line, split with shell rules
	InputName      string           // Input document inside each fixture directory
	OutputMode     types.OutputMode // Resolved, never auto
	FixturesFile   string           // Optional YAML fixture list
	ExtensionsLink string           // Linked into TestsDir before running, empty to skip
	SummaryPath    string           // Markdown job summary, empty to skip
	SummaryTable   bool             // Print a results table after the totals
	Color          bool             // Colored console output
	MetricsFile    string           // Prometheus textfile, empty to skip
	Fixtures       []string         // Fixture names from the command line

	Stdout     io.Writer         // Console output, defaults to os.Stdout
	CmdBuilder runner.CmdBuilder // Defaults to runner.DefaultCmdBuilder
	Log        log.Logger
}

var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	testsDir := ctx.String(flags.TestsDir.Name)
	if testsDir == "" {
		return nil, errors.New("tests directory is required")
	}
	renderer := ctx.String(flags.Renderer.Name)
	if renderer == "" {
		return nil, errors.New("renderer is required")
	}

	// Already validated by the flag action, but double-check
	modeStr := ctx.String(flags.OutputMode.Name)
	mode := types.OutputMode(modeStr)
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid output mode: %s. Must be one of: %v", modeStr, types.ValidOutputModes())
	}

	absTestsDir, err := filepath.Abs(testsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for tests directory '%s': %w", testsDir, err)
	}

	var absFixturesFile string
	if fixturesFile := ctx.String(flags.FixturesFile.Name); fixturesFile != "" {
		absFixturesFile, err = filepath.Abs(fixturesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for fixtures file '%s': %w", fixturesFile, err)
		}
	}

	return &Config{
		TestsDir:       absTestsDir,
		Renderer:       renderer,
		InputName:      ctx.String(flags.InputName.Name),
		OutputMode:     mode.Resolve(),
		FixturesFile:   absFixturesFile,
		ExtensionsLink: ctx.String(flags.ExtensionsLink.Name),
		SummaryPath:    ctx.String(flags.SummaryPath.Name),
		SummaryTable:   ctx.Bool(flags.SummaryTable.Name),
		Color:          !ctx.Bool(flags.NoColor.Name) && stdoutIsTerminal(),
		MetricsFile:    ctx.String(flags.MetricsFile.Name),
		Fixtures:       ctx.Args().Slice(),
		Log:            log,
	}, nil
}
