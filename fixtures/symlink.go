package fixtures

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultExtensionsDir is the directory the renderer resolves extensions from
const DefaultExtensionsDir = "_extensions"

// EnsureExtensionsLink makes sure <tests>/<name> exists, creating a directory
// symlink to <tests>/../<name> when it does not. An existing entry is left as
// is, even if it is not a link. Returns true when a link was created.
func (r *Resolver) EnsureExtensionsLink(name string) (bool, error) {
	if name == "" {
		name = DefaultExtensionsDir
	}
	link := filepath.Join(r.testsDir, name)

	if _, err := os.Lstat(link); err == nil {
		r.log.Debug("Extensions path already present", "path", link)
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %s: %w", link, err)
	}

	target := filepath.Join(filepath.Dir(r.testsDir), name)
	if err := os.Symlink(target, link); err != nil {
		return false, fmt.Errorf("failed to link %s to %s: %w", link, target, err)
	}

	r.log.Info("Created extensions symlink", "link", link, "target", target)
	return true, nil
}
