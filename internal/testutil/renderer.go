package testutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// HelperEnv switches a test binary into fake renderer mode.
const HelperEnv = "FIXTURE_RUNNER_HELPER_PROCESS"

// CheckExitEnv sets the exit code of the fake "check" subcommand.
const CheckExitEnv = "FIXTURE_RUNNER_FAKE_CHECK_EXIT"

// Files a fixture directory may carry to steer the fake renderer.
const (
	StderrFile = "renderer.stderr"  // extra stderr, printed after the noise blocks
	ExitFile   = "renderer.exit"    // exit code
	NoiseFile  = "renderer.nonoise" // when present, no noise blocks are printed
)

// CheckLog is what the fake "check" subcommand writes to its log file.
const CheckLog = "Quarto 1.4.550\n\x1b[1m[✓] Checking versions of quarto binary dependencies...OK\x1b[0m\n"

const noise = "\nStarting render\n  \nExecuting 'input.qmd'\n  to: markdown\n  \n"

// HelperCmdBuilder returns a command builder that re-runs the current test
// binary as a fake renderer. Test packages using it need a TestHelperProcess
// test that calls FakeRendererMain.
func HelperCmdBuilder(env ...string) func(ctx context.Context, name string, arg ...string) (*exec.Cmd, func()) {
	return func(ctx context.Context, name string, arg ...string) (*exec.Cmd, func()) {
		args := append([]string{"-test.run=TestHelperProcess", "--", name}, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], args...)
		cmd.Env = append(os.Environ(), HelperEnv+"=1")
		cmd.Env = append(cmd.Env, env...)
		return cmd, func() {}
	}
}

// FakeRendererMain runs the fake renderer on the arguments after "--" and
// returns its exit code.
func FakeRendererMain(args []string) int {
	for i, arg := range args {
		if arg == "--" {
			return FakeRenderer(args[i+1:], os.Stdout, os.Stderr)
		}
	}
	fmt.Fprintln(os.Stderr, "fake renderer: missing -- separator")
	return 2
}

// FakeRenderer mimics the renderer: "render <input> [--output -]" echoes the
// input document, and "check ... --log <file>" writes CheckLog to the file.
func FakeRenderer(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(stderr, "fake renderer: no subcommand")
		return 2
	}

	switch args[1] {
	case "render":
		return fakeRender(args[2:], stdout, stderr)
	case "check":
		return fakeCheck(args[2:], stderr)
	default:
		fmt.Fprintf(stderr, "fake renderer: unknown subcommand %q\n", args[1])
		return 2
	}
}

func fakeRender(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "ERROR: no input")
		return 1
	}
	input := args[0]
	toStdout := len(args) >= 3 && args[1] == "--output" && args[2] == "-"

	content, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	dir := filepath.Dir(input)

	if _, err := os.Stat(filepath.Join(dir, NoiseFile)); err != nil {
		fmt.Fprint(stderr, noise)
	}
	if extra, err := os.ReadFile(filepath.Join(dir, StderrFile)); err == nil {
		_, _ = stderr.Write(extra)
	}

	if toStdout {
		_, _ = stdout.Write(content)
	} else {
		outputName := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".md"
		if err := os.WriteFile(filepath.Join(dir, outputName), content, 0o644); err != nil {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "Output created: %s\n\n", outputName)
	}

	if code, err := os.ReadFile(filepath.Join(dir, ExitFile)); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(string(code)))
		if err == nil {
			return n
		}
	}
	return 0
}

func fakeCheck(args []string, stderr io.Writer) int {
	var logPath string
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "--log" {
			logPath = args[i+1]
		}
	}
	if logPath == "" {
		fmt.Fprintln(stderr, "fake renderer: check needs --log")
		return 2
	}
	if err := os.WriteFile(logPath, []byte(CheckLog), 0o644); err != nil {
		fmt.Fprintf(stderr, "fake renderer: %v\n", err)
		return 2
	}
	if code, err := strconv.Atoi(os.Getenv(CheckExitEnv)); err == nil {
		return code
	}
	return 0
}
