package types

// Fixture is a named test case: an input document plus the golden files the
// renderer's output is compared against. All paths are absolute.
type Fixture struct {
	Name               string
	Dir                string
	InputPath          string
	ExpectedOutputPath string
	ExpectedErrorPath  string // Optional on disk, defaults to empty content
	OutputFilePath     string // Where the renderer writes in file output mode
}

// Expected holds the golden content loaded for a fixture.
type Expected struct {
	Output string
	Error  string
}

// FixtureList is an explicit, ordered list of fixtures, usually loaded from YAML
type FixtureList struct {
	Description string   `yaml:"description,omitempty"`
	Fixtures    []string `yaml:"fixtures"`
}
