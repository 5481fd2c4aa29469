package fixtures

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/quarto-acronyms/fixture-runner/types"
)

const (
	DefaultInputName          = "input.qmd"
	DefaultExpectedOutputName = "expected.md"
	DefaultExpectedErrorName  = "expected.stderr"
	RenderedExtension         = ".md"
)

// Config contains resolver configuration
type Config struct {
	Log      log.Logger
	TestsDir string
	// InputName is the input document inside each fixture directory
	InputName string
}

// Resolver maps fixture names to files under the tests root
type Resolver struct {
	log       log.Logger
	testsDir  string
	inputName string
}

// NewResolver creates a new resolver rooted at cfg.TestsDir
func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.TestsDir == "" {
		return nil, errors.New("tests directory is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	if cfg.InputName == "" {
		cfg.InputName = DefaultInputName
	}
	if filepath.Base(cfg.InputName) != cfg.InputName {
		return nil, fmt.Errorf("input name %q must be a file name, not a path", cfg.InputName)
	}

	testsDir, err := filepath.Abs(cfg.TestsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for tests directory '%s': %w", cfg.TestsDir, err)
	}

	return &Resolver{
		log:       cfg.Log,
		testsDir:  testsDir,
		inputName: cfg.InputName,
	}, nil
}

// TestsDir returns the absolute tests root
func (r *Resolver) TestsDir() string {
	return r.testsDir
}

// InputName returns the input document file name
func (r *Resolver) InputName() string {
	return r.inputName
}

// Resolve returns the paths of a fixture. It does not touch the filesystem.
func (r *Resolver) Resolve(name string) (types.Fixture, error) {
	if name == "" {
		return types.Fixture{}, errors.New("fixture name cannot be empty")
	}
	dir := filepath.Join(r.testsDir, name)
	if rel, err := filepath.Rel(r.testsDir, dir); err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return types.Fixture{}, fmt.Errorf("fixture %q is not inside %s", name, r.testsDir)
	}

	outputName := strings.TrimSuffix(r.inputName, filepath.Ext(r.inputName)) + RenderedExtension

	return types.Fixture{
		Name:               name,
		Dir:                dir,
		InputPath:          filepath.Join(dir, r.inputName),
		ExpectedOutputPath: filepath.Join(dir, DefaultExpectedOutputName),
		ExpectedErrorPath:  filepath.Join(dir, DefaultExpectedErrorName),
		OutputFilePath:     filepath.Join(dir, outputName),
	}, nil
}

// LoadExpected reads the golden files of a fixture. The expected output is
// required; a missing expected error file means no stderr is expected.
func (r *Resolver) LoadExpected(fixture types.Fixture) (types.Expected, error) {
	output, err := os.ReadFile(fixture.ExpectedOutputPath)
	if err != nil {
		return types.Expected{}, fmt.Errorf("failed to read expected output for %s: %w", fixture.Name, err)
	}

	errorLog, err := ReadFileOrDefault(fixture.ExpectedErrorPath, "")
	if err != nil {
		return types.Expected{}, fmt.Errorf("failed to read expected error for %s: %w", fixture.Name, err)
	}
	if errorLog == "" {
		r.log.Debug("No expected stderr for fixture", "fixture", fixture.Name)
	}

	return types.Expected{
		Output: string(output),
		Error:  errorLog,
	}, nil
}

// ReadFileOrDefault returns the content of path, or def when it does not
// exist. Any other error is returned.
func ReadFileOrDefault(path, def string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return string(content), nil
}
