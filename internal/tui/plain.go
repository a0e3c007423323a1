package tui

import (
	"fmt"
	"strings"

	"jolt/internal/resolve"
	"jolt/internal/toolchain"
)

// Plain renders t one record per line for scripts. It returns false when
// there is nothing to print.
func Plain(t toolchain.Toolchain) (string, bool) {
	var lines []string
	switch t := t.(type) {
	case toolchain.Active:
		if t.Runtime != nil {
			lines = append(lines, plainNode(*t.Runtime))
		}
		for _, pm := range t.PackageManagers {
			lines = append(lines, plainManager(pm))
		}
		for _, pkg := range t.Packages {
			lines = append(lines, plainPackage(pkg))
		}
	case toolchain.All:
		for _, n := range t.Runtimes {
			lines = append(lines, plainNode(n))
		}
		for _, pm := range t.PackageManagers {
			lines = append(lines, plainManager(pm))
		}
		for _, pkg := range t.Packages {
			lines = append(lines, plainPackage(pkg))
		}
	case toolchain.Runtimes:
		for _, n := range t {
			lines = append(lines, plainNode(n))
		}
	case toolchain.PackageManagers:
		for _, pm := range t.Managers {
			lines = append(lines, plainManager(pm))
		}
	case toolchain.Packages:
		for _, pkg := range t {
			lines = append(lines, plainPackage(pkg))
		}
	case toolchain.Tool:
		for _, host := range t.Hosts {
			lines = append(lines, "tool "+t.Name+" / "+strings.TrimPrefix(plainPackage(host), "package "))
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

func plainNode(n toolchain.Node) string {
	return fmt.Sprintf("runtime node@v%s%s", n.Version, sourceSuffix(n.Source))
}

func plainManager(pm toolchain.PackageManager) string {
	return fmt.Sprintf("package-manager %s@v%s%s", pm.Kind, pm.Version, sourceSuffix(pm.Source))
}

func plainPackage(pkg toolchain.Package) string {
	if pkg.Node == nil {
		return fmt.Sprintf("package %s@%s%s", pkg.Name, pkg.Version, sourceSuffix(pkg.Source))
	}
	return fmt.Sprintf("package %s@%s / %s / node@v%s%s",
		pkg.Name, pkg.Version, strings.Join(pkg.Tools, ", "), pkg.Node, sourceSuffix(pkg.Source))
}

// sourceSuffix is " (current @ <manifest>)", " (default)" or nothing.
func sourceSuffix(s toolchain.Source) string {
	if s.Kind == resolve.SourceNone {
		return ""
	}
	return " (" + s.String() + ")"
}
