package shim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"jolt/internal/resolve"
)

// Stdio is the set of streams handed to the target.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Environ returns environ with PATH adjusted for running target. A resolved
// tool gets its own bin directory first so that, for example, npm runs the
// node it shipped with.
func Environ(environ []string, out resolve.Outcome, target string) []string {
	if out.Kind != resolve.ResolvedGlobal && out.Kind != resolve.LocalOverride {
		return environ
	}

	binDir := filepath.Dir(target)
	result := make([]string, 0, len(environ)+1)
	found := false
	for _, kv := range environ {
		if value, ok := strings.CutPrefix(kv, "PATH="); ok {
			kv = "PATH=" + binDir + string(os.PathListSeparator) + value
			found = true
		}
		result = append(result, kv)
	}
	if !found {
		result = append(result, "PATH="+binDir)
	}
	return result
}

// Run executes target with args and returns its exit code. The error is set
// only when the target could not be started.
func Run(ctx context.Context, target string, args, environ []string, stdio Stdio) (int, error) {
	cmd := exec.CommandContext(ctx, target, args...)
	cmd.Env = environ
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCode(exitErr), nil
	}
	return 1, fmt.Errorf("run %s: %w", target, err)
}

// exitCode follows the shell convention of 128+signal for a target killed by
// a signal.
func exitCode(err *exec.ExitError) int {
	if status, ok := err.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return err.ExitCode()
}

// CatchInterrupts keeps the calling process alive on Ctrl-C while the target
// handles it. A caught signal is reset to the default in the child, an
// ignored one is not. The returned func restores default handling.
func CatchInterrupts() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return func() {
		signal.Stop(ch)
	}
}
