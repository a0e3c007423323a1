package resolve

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"jolt/internal/inventory"
	"jolt/internal/version"
)

// ToolKind distinguishes the tools the resolver knows rules for.
type ToolKind int

const (
	ToolNode ToolKind = iota + 1
	ToolNpm
	ToolYarn
	ToolNpx
	ToolThirdParty
)

// Identity names the tool a shim stands for.
type Identity struct {
	Tool ToolKind
	name string
}

var (
	Node = Identity{Tool: ToolNode, name: "node"}
	Npm  = Identity{Tool: ToolNpm, name: "npm"}
	Yarn = Identity{Tool: ToolYarn, name: "yarn"}
	Npx  = Identity{Tool: ToolNpx, name: "npx"}
)

// ThirdParty identifies an executable installed by a package.
func ThirdParty(name string) Identity {
	return Identity{Tool: ToolThirdParty, name: name}
}

// IdentityFor maps an invoked executable name to its identity.
func IdentityFor(name string) Identity {
	switch name {
	case "node":
		return Node
	case "npm":
		return Npm
	case "yarn":
		return Yarn
	case "npx":
		return Npx
	default:
		return ThirdParty(name)
	}
}

// Name is the executable name.
func (i Identity) Name() string { return i.name }

func (i Identity) String() string { return i.name }

// SourceKind says where a resolved version came from.
type SourceKind int

const (
	// SourceNone marks a version that is installed but not in effect.
	SourceNone SourceKind = iota
	SourceDefault
	SourceProject
)

// Source is the provenance of a version. Manifest is set for SourceProject.
type Source struct {
	Kind     SourceKind
	Manifest string
}

// ProjectSource attributes a version to the project whose manifest is at path.
func ProjectSource(manifest string) Source {
	return Source{Kind: SourceProject, Manifest: manifest}
}

// DefaultSource attributes a version to the user's default toolchain.
var DefaultSource = Source{Kind: SourceDefault}

func (s Source) String() string {
	switch s.Kind {
	case SourceProject:
		return fmt.Sprintf("current @ %s", s.Manifest)
	case SourceDefault:
		return "default"
	default:
		return "none"
	}
}

// Kind enumerates the mutually exclusive resolution outcomes.
type Kind int

const (
	// LocalOverride: the project ships its own executable of that name.
	LocalOverride Kind = iota + 1
	// ResolvedGlobal: an installed version satisfies the context.
	ResolvedGlobal
	// PendingInstall: a requirement exists but nothing installed satisfies it.
	PendingInstall
	// PassThroughSystem: nothing applies, defer to the host PATH.
	PassThroughSystem
	// NotInstalled: the executable was never installed for the pinned node.
	NotInstalled
	// Unimplemented: resolution is deliberately not wired up for this tool.
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case LocalOverride:
		return "local"
	case ResolvedGlobal:
		return "global"
	case PendingInstall:
		return "pending-install"
	case PassThroughSystem:
		return "system"
	case NotInstalled:
		return "not-installed"
	case Unimplemented:
		return "unimplemented"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of resolving one identity in one context. Only the
// fields relevant to Kind are set.
type Outcome struct {
	Kind Kind
	// Path is set for LocalOverride and ResolvedGlobal.
	Path string
	// Version and Source are set for ResolvedGlobal.
	Version *semver.Version
	Source  Source
	// Requirement is set for PendingInstall.
	Requirement version.Requirement
}

// Project is the part of a project context the resolver reads.
type Project interface {
	ManifestPath() string
	NodeRequirement() (version.Requirement, bool)
	YarnRequirement() (version.Requirement, bool)
	HasLocalBin(name string) (bool, error)
	LocalBinDir() string
}

// Catalog is the part of the inventory the resolver reads.
type Catalog interface {
	ResolveLocal(tool inventory.Tool, req version.Requirement) (*semver.Version, bool)
	Default(tool inventory.Tool) (*semver.Version, bool)
}

// Layout maps versions to bin directories.
type Layout interface {
	NodeBinDir(version string) string
	YarnBinDir(version string) string
	ThirdPartyBinDir(nodeVersion string) string
}

// Env bundles the read-only collaborators for one query. Project is nil when
// no project encloses the working directory.
type Env struct {
	Project Project
	Catalog Catalog
	Layout  Layout
}
