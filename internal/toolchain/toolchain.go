// Package toolchain builds the provenance-tagged records behind `jolt list`.
// Which version is in effect comes from the resolve package, so the listing
// and the shims always agree.
package toolchain

import (
	"github.com/Masterminds/semver/v3"

	"jolt/internal/inventory"
	"jolt/internal/resolve"
	"jolt/internal/version"
)

// Project is the part of a project context the reporter reads.
type Project interface {
	resolve.Project
	HasDependency(name string) bool
}

// Input holds the snapshots a report is built from. Project is nil outside a
// project; Inventory is required.
type Input struct {
	Project   Project
	Inventory *inventory.Inventory
}

func (in Input) env() resolve.Env {
	env := resolve.Env{Catalog: in.Inventory}
	if in.Project != nil {
		env.Project = in.Project
	}
	return env
}

// ActiveToolchain reports the node, package managers and packages in effect.
func ActiveToolchain(in Input, filter Filter) Active {
	env := in.env()
	var active Active

	node := resolve.NodeSelection(env)
	if node.Found() {
		if filter.Allows(node.Source) {
			active.Runtime = &Node{Source: node.Source, Version: node.Version}
		}
		if npm, ok := in.npmFor(node.Version, node.Source); ok && filter.Allows(npm.Source) {
			active.PackageManagers = append(active.PackageManagers, npm)
		}
	}

	yarn := resolve.YarnSelection(env)
	if yarn.Found() && filter.Allows(yarn.Source) {
		active.PackageManagers = append(active.PackageManagers, PackageManager{Kind: Yarn, Source: yarn.Source, Version: yarn.Version})
	}

	for _, cfg := range in.Inventory.Packages {
		if pkg := in.installed(cfg); filter.Allows(pkg.Source) {
			active.Packages = append(active.Packages, pkg)
		}
	}
	return active
}

// AllToolchain reports every installed version and every installed or fetched
// package, tagged with its source.
func AllToolchain(in Input) All {
	all := All{Runtimes: NodeVersions(in, FilterAll)}

	for _, node := range all.Runtimes {
		if npm, ok := in.npmFor(node.Version, node.Source); ok {
			all.PackageManagers = append(all.PackageManagers, npm)
		}
	}
	all.PackageManagers = append(all.PackageManagers, YarnVersions(in, FilterAll).Managers...)

	for _, cfg := range in.Inventory.Packages {
		all.Packages = append(all.Packages, in.installed(cfg))
	}
	for _, f := range in.Inventory.Inactive() {
		all.Packages = append(all.Packages, fetched(f))
	}
	return all
}

// NodeVersions reports installed node versions.
func NodeVersions(in Input, filter Filter) Runtimes {
	sel := resolve.NodeSelection(in.env())
	deflt, _ := in.Inventory.Default(inventory.ToolNode)

	var out Runtimes
	for _, v := range in.Inventory.Installed(inventory.ToolNode) {
		if src := sourceOf(v, sel, deflt); filter.Allows(src) {
			out = append(out, Node{Source: src, Version: v})
		}
	}
	return out
}

// YarnVersions reports installed yarn versions.
func YarnVersions(in Input, filter Filter) PackageManagers {
	sel := resolve.YarnSelection(in.env())
	deflt, _ := in.Inventory.Default(inventory.ToolYarn)

	out := PackageManagers{Kind: Yarn}
	for _, v := range in.Inventory.Installed(inventory.ToolYarn) {
		if src := sourceOf(v, sel, deflt); filter.Allows(src) {
			out.Managers = append(out.Managers, PackageManager{Kind: Yarn, Source: src, Version: v})
		}
	}
	return out
}

// PackageOrTool reports the versions of a package, or failing that the
// packages that expose an executable called name.
func PackageOrTool(name string, in Input, filter Filter) (Toolchain, error) {
	installed := in.Inventory.PackagesNamed(name)
	inactive := in.Inventory.FetchedNamed(name)
	if len(installed)+len(inactive) > 0 {
		var pkgs Packages
		for _, cfg := range installed {
			if pkg := in.installed(cfg); filter.Allows(pkg.Source) {
				pkgs = append(pkgs, pkg)
			}
		}
		for _, f := range inactive {
			if pkg := fetched(f); filter.Allows(pkg.Source) {
				pkgs = append(pkgs, pkg)
			}
		}
		return pkgs, nil
	}

	if hosts := in.Inventory.PackagesExposing(name); len(hosts) > 0 {
		tool := Tool{Name: name}
		for _, cfg := range hosts {
			if pkg := in.installed(cfg); filter.Allows(pkg.Source) {
				tool.Hosts = append(tool.Hosts, pkg)
			}
		}
		return tool, nil
	}

	return nil, &UnknownNameError{Name: name, Suggestions: suggest(name, in.Inventory)}
}

// sourceOf tags an installed version. The project's selection outranks the
// user default when both name the same version.
func sourceOf(v *semver.Version, sel resolve.Selection, deflt *semver.Version) Source {
	if sel.Found() && sel.Source.Kind == resolve.SourceProject && version.Equal(sel.Version, v) {
		return sel.Source
	}
	if deflt != nil && version.Equal(deflt, v) {
		return resolve.DefaultSource
	}
	return Source{}
}

// npmFor returns the npm that runs alongside node. A custom npm in the user
// platform replaces the bundled one for the default node.
func (in Input) npmFor(node *semver.Version, src Source) (PackageManager, bool) {
	if src.Kind == resolve.SourceDefault {
		if p := in.Inventory.Platform; p != nil && p.Npm != nil {
			return PackageManager{Kind: Npm, Source: src, Version: p.Npm}, true
		}
	}
	npm, ok := in.Inventory.BundledNpm(node)
	if !ok {
		return PackageManager{}, false
	}
	return PackageManager{Kind: Npm, Source: src, Version: npm}, true
}

func (in Input) installed(cfg inventory.PackageConfig) Package {
	src := resolve.DefaultSource
	if in.Project != nil && in.Project.HasDependency(cfg.Name) {
		src = resolve.ProjectSource(in.Project.ManifestPath())
	}
	return Package{
		Name:    cfg.Name,
		Source:  src,
		Version: cfg.Version,
		Node:    cfg.Node,
		Tools:   cfg.Bins,
	}
}

func fetched(f inventory.FetchedPackage) Package {
	return Package{Name: f.Name, Version: f.Version}
}
