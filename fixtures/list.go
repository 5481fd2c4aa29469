package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/quarto-acronyms/fixture-runner/types"
)

// LoadList reads an ordered fixture list from a YAML file
func LoadList(path string) (*types.FixtureList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture list file: %w", err)
	}

	var list types.FixtureList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse fixture list file: %w", err)
	}

	seen := make(map[string]bool, len(list.Fixtures))
	for i, name := range list.Fixtures {
		if name == "" {
			return nil, fmt.Errorf("fixture at index %d has an empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("fixture %q is listed more than once", name)
		}
		seen[name] = true
	}

	return &list, nil
}

// Discover lists the sub-directories of the tests root that contain the
// input document, sorted by name.
func (r *Resolver) Discover() ([]string, error) {
	entries, err := os.ReadDir(r.testsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tests directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(r.testsDir, entry.Name(), r.inputName))
		if err != nil || info.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	r.log.Debug("Discovered fixtures", "dir", r.testsDir, "count", len(names))
	return names, nil
}

// Select picks the fixtures to run: explicit names win, then the list file,
// then discovery.
func (r *Resolver) Select(args []string, list *types.FixtureList) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if list != nil && len(list.Fixtures) > 0 {
		return list.Fixtures, nil
	}
	names, err := r.Discover()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no fixtures found in %s (looking for */%s)", r.testsDir, r.inputName)
	}
	return names, nil
}
