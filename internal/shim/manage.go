package shim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Core shims are created once and cannot be deleted.
var coreShims = map[string]bool{"node": true, "npm": true, "npx": true, "yarn": true}

var (
	// ErrCoreShim is returned when deleting one of node, npm, npx or yarn.
	ErrCoreShim = errors.New("core shims cannot be deleted")
	// ErrShimConflict is returned when a different file already uses the shim name.
	ErrShimConflict = errors.New("a different file already exists with this name")
)

// IsCore reports whether name is one of the built-in shims.
func IsCore(name string) bool { return coreShims[name] }

// CoreNames returns the built-in shim names, sorted.
func CoreNames() []string {
	names := make([]string, 0, len(coreShims))
	for name := range coreShims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create links dir/name to the launcher. Creating an existing shim is a no-op.
func Create(dir, name, launcher string) (bool, error) {
	if err := validName(name); err != nil {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("prepare shim dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if target, err := os.Readlink(path); err == nil {
		if target == launcher {
			return false, nil
		}
		return false, fmt.Errorf("create shim %s: %w", name, ErrShimConflict)
	} else if _, statErr := os.Lstat(path); statErr == nil {
		return false, fmt.Errorf("create shim %s: %w", name, ErrShimConflict)
	}

	if err := os.Symlink(launcher, path); err != nil {
		return false, fmt.Errorf("create shim %s: %w", name, err)
	}
	return true, nil
}

// Delete removes dir/name. Deleting a missing shim is a no-op.
func Delete(dir, name string) (bool, error) {
	if err := validName(name); err != nil {
		return false, err
	}
	if IsCore(name) {
		return false, fmt.Errorf("delete shim %s: %w", name, ErrCoreShim)
	}

	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete shim %s: %w", name, err)
	}
	return true, nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid shim name %q", name)
	}
	return nil
}
