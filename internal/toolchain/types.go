package toolchain

import (
	"errors"

	"github.com/Masterminds/semver/v3"

	"jolt/internal/resolve"
)

// Source is the provenance shown next to every record.
type Source = resolve.Source

// Filter narrows a report to the records in effect.
type Filter int

const (
	// FilterAll keeps every record.
	FilterAll Filter = iota
	// FilterCurrent keeps what is in effect here: project or default.
	FilterCurrent
	// FilterDefault keeps only the user's defaults.
	FilterDefault
)

// ErrConflictingFilters is returned when current and default are both requested.
var ErrConflictingFilters = errors.New("--current and --default cannot be used together")

// FilterFrom maps the --current and --default flags to a filter.
func FilterFrom(current, deflt bool) (Filter, error) {
	switch {
	case current && deflt:
		return FilterAll, ErrConflictingFilters
	case current:
		return FilterCurrent, nil
	case deflt:
		return FilterDefault, nil
	default:
		return FilterAll, nil
	}
}

// Allows reports whether a record with source s passes the filter.
func (f Filter) Allows(s Source) bool {
	switch f {
	case FilterCurrent:
		return s.Kind == resolve.SourceProject || s.Kind == resolve.SourceDefault
	case FilterDefault:
		return s.Kind == resolve.SourceDefault
	default:
		return true
	}
}

func (f Filter) String() string {
	switch f {
	case FilterCurrent:
		return "current"
	case FilterDefault:
		return "default"
	default:
		return "all"
	}
}

// Node is an installed node runtime.
type Node struct {
	Source  Source
	Version *semver.Version
}

// PackageManagerKind names a package manager.
type PackageManagerKind int

const (
	Npm PackageManagerKind = iota + 1
	Yarn
)

func (k PackageManagerKind) String() string {
	switch k {
	case Npm:
		return "npm"
	case Yarn:
		return "yarn"
	default:
		return "unknown"
	}
}

// PackageManager is an installed npm or yarn.
type PackageManager struct {
	Kind    PackageManagerKind
	Source  Source
	Version *semver.Version
}

// Package is an installed or fetched package with the executables it exposes.
// Node is nil and Tools empty for packages that were fetched but never installed.
type Package struct {
	Name    string
	Source  Source
	Version *semver.Version
	Node    *semver.Version
	Tools   []string
}

// Toolchain is the result of a list query. The concrete types are Active, All,
// Runtimes, PackageManagers, Packages and Tool.
type Toolchain interface {
	toolchain()
}

// Active is what runs in the current context.
type Active struct {
	// Runtime is nil when no node is in effect.
	Runtime         *Node
	PackageManagers []PackageManager
	Packages        []Package
}

// All is everything installed or fetched.
type All struct {
	Runtimes        []Node
	PackageManagers []PackageManager
	Packages        []Package
}

// Runtimes lists node versions.
type Runtimes []Node

// PackageManagers lists versions of one package manager.
type PackageManagers struct {
	Kind     PackageManagerKind
	Managers []PackageManager
}

// Packages lists versions of one package.
type Packages []Package

// Tool lists the packages that provide an executable.
type Tool struct {
	Name  string
	Hosts []Package
}

func (Active) toolchain()          {}
func (All) toolchain()             {}
func (Runtimes) toolchain()        {}
func (PackageManagers) toolchain() {}
func (Packages) toolchain()        {}
func (Tool) toolchain()            {}
