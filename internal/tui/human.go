package tui

import (
	"fmt"
	"strings"

	"jolt/internal/resolve"
	"jolt/internal/toolchain"
)

const indent = "    "

// Human renders t as an indented report for a terminal. It returns false
// when there is nothing to print.
func Human(t toolchain.Toolchain) (string, bool) {
	var b report
	switch t := t.(type) {
	case toolchain.Active:
		if t.Runtime == nil && len(t.PackageManagers) == 0 && len(t.Packages) == 0 {
			return "", false
		}
		b.title("Currently active tools:")
		if t.Runtime != nil {
			b.line(1, "Node: v%s%s", t.Runtime.Version, humanSource(t.Runtime.Source))
		}
		for _, pm := range t.PackageManagers {
			b.line(1, "%s: v%s%s", managerLabel(pm.Kind), pm.Version, humanSource(pm.Source))
		}
		if len(t.Packages) > 0 {
			b.line(1, "Tool binaries available:")
			for _, pkg := range t.Packages {
				if len(pkg.Tools) > 0 {
					b.line(2, "%s%s", strings.Join(pkg.Tools, ", "), humanSource(pkg.Source))
				}
			}
		}
		b.blank()
		b.line(0, "See more detailed reports with `jolt list --help`.")
	case toolchain.All:
		if len(t.Runtimes) == 0 && len(t.PackageManagers) == 0 && len(t.Packages) == 0 {
			return "", false
		}
		b.title("User toolchain:")
		if len(t.Runtimes) > 0 {
			b.line(1, "Node runtimes:")
			for _, n := range t.Runtimes {
				b.line(2, "v%s%s", n.Version, humanSource(n.Source))
			}
		}
		if len(t.PackageManagers) > 0 {
			b.line(1, "Package managers:")
			var last toolchain.PackageManagerKind
			for _, pm := range t.PackageManagers {
				if pm.Kind != last {
					b.line(2, "%s:", managerLabel(pm.Kind))
					last = pm.Kind
				}
				b.line(3, "v%s%s", pm.Version, humanSource(pm.Source))
			}
		}
		if len(t.Packages) > 0 {
			b.line(1, "Packages:")
			for _, pkg := range t.Packages {
				b.pkg(2, pkg)
			}
		}
	case toolchain.Runtimes:
		if len(t) == 0 {
			return "", false
		}
		b.title("Node runtimes in your toolchain:")
		for _, n := range t {
			b.line(1, "v%s%s", n.Version, humanSource(n.Source))
		}
	case toolchain.PackageManagers:
		if len(t.Managers) == 0 {
			return "", false
		}
		b.title(fmt.Sprintf("%s versions in your toolchain:", managerLabel(t.Kind)))
		for _, pm := range t.Managers {
			b.line(1, "v%s%s", pm.Version, humanSource(pm.Source))
		}
	case toolchain.Packages:
		if len(t) == 0 {
			return "", false
		}
		b.title("Package versions in your toolchain:")
		for _, pkg := range t {
			b.pkg(1, pkg)
		}
	case toolchain.Tool:
		if len(t.Hosts) == 0 {
			return "", false
		}
		b.title(fmt.Sprintf("Tool `%s` available from:", t.Name))
		for _, pkg := range t.Hosts {
			b.pkg(1, pkg)
		}
	default:
		return "", false
	}
	return b.String(), true
}

type report struct {
	strings.Builder
}

func (r *report) title(text string) {
	r.WriteString(TitleStyle.Render(text))
	r.WriteString("\n\n")
}

func (r *report) line(depth int, format string, args ...any) {
	r.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(r, format, args...)
	r.WriteByte('\n')
}

func (r *report) blank() { r.WriteByte('\n') }

func (r *report) pkg(depth int, pkg toolchain.Package) {
	if pkg.Node == nil {
		r.line(depth, "%s@%s%s", pkg.Name, pkg.Version, SourceStyle.Render(" (fetched, not installed)"))
		return
	}
	r.line(depth, "%s@%s%s", pkg.Name, pkg.Version, humanSource(pkg.Source))
	if len(pkg.Tools) > 0 {
		r.line(depth+1, "binary tools: %s", strings.Join(pkg.Tools, ", "))
	}
	r.line(depth+1, "platform:")
	r.line(depth+2, "runtime: node@v%s", pkg.Node)
}

// String trims the trailing newline so callers can print with Println.
func (r *report) String() string {
	return strings.TrimRight(r.Builder.String(), "\n")
}

func humanSource(s toolchain.Source) string {
	if s.Kind == resolve.SourceNone {
		return ""
	}
	return SourceStyle.Render(" (" + s.String() + ")")
}

func managerLabel(k toolchain.PackageManagerKind) string {
	switch k {
	case toolchain.Npm:
		return "npm"
	case toolchain.Yarn:
		return "Yarn"
	default:
		return k.String()
	}
}
