package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/devnet-sdk/telemetry"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	harness "github.com/quarto-acronyms/fixture-runner"
	"github.com/quarto-acronyms/fixture-runner/exitcodes"
	"github.com/quarto-acronyms/fixture-runner/flags"
	"github.com/quarto-acronyms/fixture-runner/runner"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := newApp(runner.DefaultCmdBuilder, os.Stdout, os.Stderr)

	// Start telemetry, configured through the OTEL_* environment
	ctx, shutdown, err := telemetry.SetupOpenTelemetry(
		context.Background(),
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer shutdown()

	// The exit code carries the fail count, so spans are flushed before exiting
	cli.OsExiter = func(code int) {
		shutdown()
		os.Exit(code)
	}

	ctx = ctxinterrupt.WithSignalWaiterMain(ctx)
	err = app.RunContext(ctx, os.Args)
	if err != nil {
		// Usage errors do not reach the ExitErrHandler
		log.Error("Application failed", "message", err)
		cli.OsExiter(exitcodes.RuntimeErr)
	}
}

func newApp(cmdBuilder runner.CmdBuilder, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "fixture-runner"
	app.Usage = "Regression tests for the acronyms filter"
	app.Description = "fixture-runner renders every fixture with quarto and compares the result with its golden files. " +
		"The exit code is the number of failed fixtures."
	app.ArgsUsage = "[fixture ...]"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Action = func(ctx *cli.Context) error {
		return run(ctx, cmdBuilder)
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Fixture failures carry their own exit code
			cli.HandleExitCoder(exitErr)
		} else {
			// Anything else stopped the run before it completed
			cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
		}
	}
	return app
}

func run(ctx *cli.Context, cmdBuilder runner.CmdBuilder) error {
	logCfg := oplog.ReadCLIConfig(ctx)
	// Logs go to stderr, stdout carries the fixture results
	log := oplog.NewLogger(ctx.App.ErrWriter, logCfg)
	oplog.SetGlobalLogHandler(log.Handler())
	oplog.SetupDefaults()

	cfg, err := harness.NewConfig(ctx, log)
	if err != nil {
		return harness.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	cfg.Stdout = ctx.App.Writer
	cfg.CmdBuilder = cmdBuilder

	cfg.Log.Debug("Config", "config", cfg)

	h, err := harness.New(cfg)
	if err != nil {
		return harness.NewRuntimeError(fmt.Errorf("failed to create harness: %w", err))
	}

	summary, err := h.Run(ctx.Context)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return harness.NewFailureError(summary)
	}
	return nil
}
