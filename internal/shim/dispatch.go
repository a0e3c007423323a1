// Package shim answers "what happens if this shim runs now" and manages the
// shim directory.
package shim

import (
	"fmt"

	"jolt/internal/resolve"
)

// Dispatch resolves the shim called name.
func Dispatch(name string, env resolve.Env) (resolve.Outcome, error) {
	return resolve.Resolve(resolve.IdentityFor(name), env)
}

// Describe renders an outcome the way the verbose shim listing shows it.
func Describe(out resolve.Outcome) string {
	switch out.Kind {
	case resolve.LocalOverride, resolve.ResolvedGlobal:
		return out.Path
	case resolve.PassThroughSystem:
		return "[system]"
	case resolve.NotInstalled:
		return "[executable not installed!]"
	case resolve.PendingInstall:
		return fmt.Sprintf("[will install version %s]", out.Requirement)
	case resolve.Unimplemented:
		return "[shim not implemented!]"
	default:
		return fmt.Sprintf("[unknown outcome %s]", out.Kind)
	}
}

// IsWarning reports outcomes the listing highlights as problems.
func IsWarning(out resolve.Outcome) bool {
	return out.Kind == resolve.NotInstalled || out.Kind == resolve.Unimplemented
}
