package config

import (
	"fmt"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string // "error" or "warning"
	Message string
}

var (
	knownFormats   = map[string]bool{"": true, "human": true, "plain": true}
	knownLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate reports settings jolt cannot honour. Callers fall back to defaults
// for anything flagged.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	if c.Version != currentVersion {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("config version %d is not supported (expected %d)", c.Version, currentVersion),
		})
	}
	if !knownFormats[c.List.Format] {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("list.format %q must be human or plain", c.List.Format),
		})
	}
	if !knownLogLevels[c.Log.Level] {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level),
		})
	}
	return results
}

// HasErrors reports whether any result is an error.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if r.Level == "error" {
			return true
		}
	}
	return false
}
