// Package version parses tool versions and version requirements and picks the
// best installed match for a requirement.
package version

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is a version range such as "^14.0.0", "1.22.x" or an exact "14.2.0".
type Requirement struct {
	raw        string
	constraint *semver.Constraints
}

// ParseRequirement parses an npm-style range.
func ParseRequirement(raw string) (Requirement, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Requirement{}, fmt.Errorf("empty version requirement")
	}
	c, err := semver.NewConstraint(trimmed)
	if err != nil {
		return Requirement{}, fmt.Errorf("parse requirement %q: %w", trimmed, err)
	}
	return Requirement{raw: trimmed, constraint: c}, nil
}

// MustRequirement is ParseRequirement for literals known to be valid.
func MustRequirement(raw string) Requirement {
	r, err := ParseRequirement(raw)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Requirement) String() string { return r.raw }

// IsZero reports whether r was never parsed.
func (r Requirement) IsZero() bool { return r.constraint == nil }

// Allows reports whether v satisfies the requirement.
func (r Requirement) Allows(v *semver.Version) bool {
	if r.constraint == nil || v == nil {
		return false
	}
	return r.constraint.Check(v)
}

// Parse parses a concrete version, tolerating a leading "v".
func Parse(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse version %q: %w", raw, err)
	}
	return v, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(raw string) *semver.Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// BestMatch returns the highest installed version allowed by req.
func BestMatch(req Requirement, installed []*semver.Version) (*semver.Version, bool) {
	var best *semver.Version
	for _, v := range installed {
		if !req.Allows(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	return best, best != nil
}

// Sort orders versions ascending in place.
func Sort(vs []*semver.Version) {
	sort.Sort(semver.Collection(vs))
}

// Equal reports whether a and b name the same version. Nil only equals nil.
func Equal(a, b *semver.Version) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}
