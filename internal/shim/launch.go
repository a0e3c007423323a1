package shim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jolt/internal/layout"
	"jolt/internal/resolve"
)

var (
	ErrPendingInstall = errors.New("required version is not installed")
	ErrNotInstalled   = errors.New("executable is not installed for the project's node version")
	ErrUnimplemented  = errors.New("shim is not implemented")
	ErrNoSystemBinary = errors.New("no system executable found on PATH")
)

// Target turns an outcome into the executable the launcher runs. The shim
// directory is excluded from the system search so a shim never finds itself.
func Target(name string, out resolve.Outcome, pathEnv, shimDir string) (string, error) {
	switch out.Kind {
	case resolve.LocalOverride, resolve.ResolvedGlobal:
		return out.Path, nil
	case resolve.PassThroughSystem:
		path, ok := lookSystem(name, pathEnv, shimDir)
		if !ok {
			return "", fmt.Errorf("%s: %w", name, ErrNoSystemBinary)
		}
		return path, nil
	case resolve.PendingInstall:
		return "", fmt.Errorf("%s: version %s: %w; install it with your jolt installer and retry", name, out.Requirement, ErrPendingInstall)
	case resolve.NotInstalled:
		return "", fmt.Errorf("%s: %w", name, ErrNotInstalled)
	case resolve.Unimplemented:
		return "", fmt.Errorf("%s: %w", name, ErrUnimplemented)
	default:
		return "", fmt.Errorf("%s: unknown outcome %s", name, out.Kind)
	}
}

// SystemPath returns pathEnv without the shim directory.
func SystemPath(pathEnv, shimDir string) string {
	var kept []string
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" || sameDir(dir, shimDir) {
			continue
		}
		kept = append(kept, dir)
	}
	return strings.Join(kept, string(os.PathListSeparator))
}

func lookSystem(name, pathEnv, shimDir string) (string, bool) {
	for _, dir := range filepath.SplitList(SystemPath(pathEnv, shimDir)) {
		for _, candidate := range []string{name, layout.Executable(name)} {
			path := filepath.Join(dir, candidate)
			if isExecutable(path) {
				return path, true
			}
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if filepath.Ext(path) == ".exe" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func sameDir(a, b string) bool {
	if b == "" {
		return false
	}
	ca, errA := filepath.Abs(a)
	cb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return ca == cb
}
