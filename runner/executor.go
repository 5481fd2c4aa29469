package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"
	"github.com/google/shlex"
	"go.uber.org/multierr"

	"github.com/quarto-acronyms/fixture-runner/fixtures"
	"github.com/quarto-acronyms/fixture-runner/types"
)

var _ Executor = (*renderExecutor)(nil)

// CmdBuilder creates the command for a renderer call. The returned function
// is called once the command has finished.
type CmdBuilder func(ctx context.Context, name string, arg ...string) (*exec.Cmd, func())

// DefaultCmdBuilder runs the named program directly
func DefaultCmdBuilder(ctx context.Context, name string, arg ...string) (*exec.Cmd, func()) {
	return exec.CommandContext(ctx, name, arg...), func() {}
}

// Invocation is what a single renderer process left behind
type Invocation struct {
	ExitCode int
	Stdout   string // Rendered document, from stdout or the output file
	Stderr   string
	Duration time.Duration
}

// Executor launches the renderer.
type Executor interface {
	// Render renders one fixture and blocks until the renderer exits.
	// A non-zero exit is reported through Invocation.ExitCode, not as an error.
	Render(ctx context.Context, fixture types.Fixture) (*Invocation, error)

	// Check runs the renderer's environment check and returns its log.
	Check(ctx context.Context) (string, error)

	// OutputMode returns the concrete output mode used for rendering.
	OutputMode() types.OutputMode
}

// renderExecutor implements Executor
type renderExecutor struct {
	command    []string
	mode       types.OutputMode
	cmdBuilder CmdBuilder
	log        log.Logger
}

// NewExecutor creates an executor for the given renderer command line,
// e.g. "quarto" or "npx quarto".
func NewExecutor(renderer string, mode types.OutputMode, cmdBuilder CmdBuilder, logger log.Logger) (Executor, error) {
	if renderer == "" {
		renderer = DefaultRenderer
	}
	command, err := shlex.Split(renderer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse renderer command %q: %w", renderer, err)
	}
	if len(command) == 0 {
		return nil, fmt.Errorf("renderer command %q is empty", renderer)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid output mode: %q", mode)
	}
	if cmdBuilder == nil {
		return nil, errors.New("cmdBuilder cannot be nil")
	}
	if logger == nil {
		logger = log.New()
	}

	return &renderExecutor{
		command:    command,
		mode:       mode.Resolve(),
		cmdBuilder: cmdBuilder,
		log:        logger,
	}, nil
}

func (e *renderExecutor) OutputMode() types.OutputMode {
	return e.mode
}

func (e *renderExecutor) args(extra ...string) []string {
	args := make([]string, 0, len(e.command)-1+len(extra))
	args = append(args, e.command[1:]...)
	return append(args, extra...)
}

func (e *renderExecutor) Render(ctx context.Context, fixture types.Fixture) (*Invocation, error) {
	args := e.args(RenderCommand, fixture.InputPath)
	if e.mode == types.OutputModeStdout {
		args = append(args, OutputFlag, StdoutTarget)
	} else {
		// A stale document from an earlier run must not be mistaken for output
		if err := os.Remove(fixture.OutputFilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove previous output %s: %w", fixture.OutputFilePath, err)
		}
	}

	cmd, cleanup := e.cmdBuilder(ctx, e.command[0], args...)
	defer cleanup()
	cmd.Dir = fixture.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	e.log.Debug("Running renderer", "fixture", fixture.Name, "cmd", cmd.String())

	startTime := time.Now()
	runErr := cmd.Run()
	duration := time.Since(startTime)

	exitCode := 0
	if runErr != nil {
		exitErr := &exec.ExitError{}
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("failed to run renderer for %s: %w", fixture.Name, runErr)
		}
		exitCode = exitErr.ExitCode()
	}

	stdout := stdoutBuf.String()
	if e.mode == types.OutputModeFile {
		content, err := fixtures.ReadFileOrDefault(fixture.OutputFilePath, "")
		if err != nil {
			return nil, fmt.Errorf("failed to read rendered output %s: %w", fixture.OutputFilePath, err)
		}
		stdout = content
	}

	return &Invocation{
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderrBuf.String(),
		Duration: duration,
	}, nil
}

// Check runs "<renderer> check" with its log sent to a temporary file, since
// the console output is full of control characters. The file is always
// removed before returning.
func (e *renderExecutor) Check(ctx context.Context) (output string, err error) {
	logFile, err := os.CreateTemp("", checkLogPattern)
	if err != nil {
		return "", fmt.Errorf("failed to create check log file: %w", err)
	}
	logPath := logFile.Name()
	defer func() {
		if rmErr := os.Remove(logPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = multierr.Append(err, fmt.Errorf("failed to remove check log file: %w", rmErr))
		}
	}()
	if err := logFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close check log file: %w", err)
	}

	cmd, cleanup := e.cmdBuilder(ctx, e.command[0], e.args(CheckCommand, QuietFlag, LogFormatFlag, PlainLogFormat, LogFlag, logPath)...)
	defer cleanup()
	cmd.Stdout = io.Discard
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if runErr := cmd.Run(); runErr != nil {
		exitErr := &exec.ExitError{}
		if !errors.As(runErr, &exitErr) {
			return "", fmt.Errorf("failed to run renderer check: %w", runErr)
		}
		// The log is still useful when the check reports problems
		e.log.Warn("Renderer check exited with an error", "code", exitErr.ExitCode(), "stderr", stderrBuf.String())
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to read check log: %w", err)
	}
	return stripansi.Strip(string(content)), nil
}
