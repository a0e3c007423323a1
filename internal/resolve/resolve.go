// Package resolve decides, for a tool name in a given context, which installed
// executable runs: a project-local binary, an installed version, a version that
// must be installed first, or the system binary.
//
// Precedence for node, npm and yarn: a project requirement beats the user's
// default, which beats the system. A project requirement that nothing
// installed satisfies never falls back to the default or the system.
package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"jolt/internal/inventory"
	"jolt/internal/version"
)

// Selection is the version of a tool that is in effect for a context.
type Selection struct {
	// Version is nil when nothing is selected.
	Version *semver.Version
	Source  Source
	// Requirement is set when a project requirement is unsatisfied.
	Requirement version.Requirement
}

// Found reports whether an installed version is in effect.
func (s Selection) Found() bool { return s.Version != nil }

// Pending reports whether a project requirement awaits installation.
func (s Selection) Pending() bool { return s.Version == nil && !s.Requirement.IsZero() }

// NodeSelection applies the node precedence rules.
func NodeSelection(env Env) Selection {
	if env.Project != nil {
		if req, ok := env.Project.NodeRequirement(); ok {
			return projectSelection(env, inventory.ToolNode, req)
		}
	}
	return defaultSelection(env, inventory.ToolNode)
}

// YarnSelection applies the yarn precedence rules. A project that does not pin
// yarn falls through to the default tier even when it pins node.
func YarnSelection(env Env) Selection {
	if env.Project != nil {
		if req, ok := env.Project.YarnRequirement(); ok {
			return projectSelection(env, inventory.ToolYarn, req)
		}
	}
	return defaultSelection(env, inventory.ToolYarn)
}

func projectSelection(env Env, tool inventory.Tool, req version.Requirement) Selection {
	source := ProjectSource(env.Project.ManifestPath())
	if v, ok := env.Catalog.ResolveLocal(tool, req); ok {
		return Selection{Version: v, Source: source}
	}
	return Selection{Source: source, Requirement: req}
}

func defaultSelection(env Env, tool inventory.Tool) Selection {
	if v, ok := env.Catalog.Default(tool); ok {
		return Selection{Version: v, Source: DefaultSource}
	}
	return Selection{}
}

// Resolve computes the outcome for id. Collaborator errors are returned as is.
func Resolve(id Identity, env Env) (Outcome, error) {
	if env.Catalog == nil || env.Layout == nil {
		return Outcome{}, fmt.Errorf("resolve %s: catalog and layout are required", id)
	}

	switch id.Tool {
	case ToolNode, ToolNpm:
		return fromSelection(NodeSelection(env), env.Layout.NodeBinDir, id.Name()), nil
	case ToolYarn:
		return fromSelection(YarnSelection(env), env.Layout.YarnBinDir, id.Name()), nil
	case ToolNpx:
		return Outcome{Kind: Unimplemented}, nil
	case ToolThirdParty:
		return resolveThirdParty(id.Name(), env)
	default:
		return Outcome{}, fmt.Errorf("resolve %q: unknown tool kind %d", id.Name(), id.Tool)
	}
}

func fromSelection(sel Selection, binDir func(string) string, name string) Outcome {
	switch {
	case sel.Found():
		return Outcome{
			Kind:    ResolvedGlobal,
			Path:    filepath.Join(binDir(sel.Version.String()), name),
			Version: sel.Version,
			Source:  sel.Source,
		}
	case sel.Pending():
		return Outcome{Kind: PendingInstall, Requirement: sel.Requirement}
	default:
		return Outcome{Kind: PassThroughSystem}
	}
}

func resolveThirdParty(name string, env Env) (Outcome, error) {
	if env.Project != nil {
		local, err := env.Project.HasLocalBin(name)
		if err != nil {
			return Outcome{}, err
		}
		if local {
			return Outcome{Kind: LocalOverride, Path: filepath.Join(env.Project.LocalBinDir(), name)}, nil
		}

		if _, pinned := env.Project.NodeRequirement(); pinned {
			sel := NodeSelection(env)
			if !sel.Found() {
				// Installing node does not install third-party executables,
				// so this is not a pending install.
				return Outcome{Kind: NotInstalled}, nil
			}
			return thirdPartyGlobal(name, sel, env.Layout), nil
		}
	}

	sel := defaultSelection(env, inventory.ToolNode)
	if !sel.Found() {
		return Outcome{Kind: PassThroughSystem}, nil
	}
	return thirdPartyGlobal(name, sel, env.Layout), nil
}

func thirdPartyGlobal(name string, sel Selection, l Layout) Outcome {
	return Outcome{
		Kind:    ResolvedGlobal,
		Path:    filepath.Join(l.ThirdPartyBinDir(sel.Version.String()), name),
		Version: sel.Version,
		Source:  sel.Source,
	}
}
