package toolchain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"jolt/internal/inventory"
)

// ErrUnknownPackageOrTool is returned when a name matches no installed or
// fetched package and no executable any package exposes.
var ErrUnknownPackageOrTool = errors.New("no package or tool with that name")

const maxSuggestions = 3

// UnknownNameError carries the unmatched name and close matches from the
// inventory.
type UnknownNameError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownNameError) Error() string {
	msg := fmt.Sprintf("no package or tool named %q is installed", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *UnknownNameError) Unwrap() error { return ErrUnknownPackageOrTool }

func suggest(name string, inv *inventory.Inventory) []string {
	seen := map[string]bool{}
	var candidates []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	for _, pkg := range inv.Packages {
		add(pkg.Name)
		for _, bin := range pkg.Bins {
			add(bin)
		}
	}
	for _, f := range inv.Fetched {
		add(f.Name)
	}

	matches := fuzzy.Find(name, candidates)
	sort.Sort(matches)

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, candidates[m.Index])
	}
	return out
}
