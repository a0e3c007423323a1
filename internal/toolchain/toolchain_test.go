package toolchain

import (
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"jolt/internal/inventory"
	"jolt/internal/resolve"
	"jolt/internal/version"
)

const manifest = "/p/package.json"

type fakeProject struct {
	node string
	yarn string
	deps map[string]bool
}

func (p fakeProject) ManifestPath() string { return manifest }
func (p fakeProject) LocalBinDir() string  { return "/p/node_modules/.bin" }

func (p fakeProject) NodeRequirement() (version.Requirement, bool) {
	if p.node == "" {
		return version.Requirement{}, false
	}
	return version.MustRequirement(p.node), true
}

func (p fakeProject) YarnRequirement() (version.Requirement, bool) {
	if p.yarn == "" {
		return version.Requirement{}, false
	}
	return version.MustRequirement(p.yarn), true
}

func (p fakeProject) HasLocalBin(string) (bool, error) { return false, nil }
func (p fakeProject) HasDependency(name string) bool  { return p.deps[name] }

func v(raw string) *semver.Version { return version.MustParse(raw) }

// testInventory has node 12.0.0 and 14.2.0 (default 12.0.0), yarn 1.19.0 and
// 1.22.0 (default 1.22.0), typescript installed, and an inactive left-pad archive.
func testInventory() *inventory.Inventory {
	inv := &inventory.Inventory{
		Node: []*semver.Version{v("12.0.0"), v("14.2.0")},
		Yarn: []*semver.Version{v("1.19.0"), v("1.22.0")},
		Packages: []inventory.PackageConfig{
			{Name: "typescript", Version: v("3.9.2"), Node: v("12.0.0"), Bins: []string{"tsc", "tsserver"}},
		},
		Fetched: []inventory.FetchedPackage{
			{Name: "typescript", Version: v("3.9.2")},
			{Name: "left-pad", Version: v("1.3.0")},
		},
		Platform: &inventory.Platform{Node: v("12.0.0"), Yarn: v("1.22.0")},
	}
	inv.SetBundledNpm(v("12.0.0"), v("6.9.0"))
	inv.SetBundledNpm(v("14.2.0"), v("6.14.4"))
	return inv
}

func TestFilterFrom(t *testing.T) {
	cases := []struct {
		current, deflt bool
		want           Filter
	}{
		{false, false, FilterAll},
		{true, false, FilterCurrent},
		{false, true, FilterDefault},
	}
	for _, tc := range cases {
		got, err := FilterFrom(tc.current, tc.deflt)
		if err != nil || got != tc.want {
			t.Fatalf("FilterFrom(%v, %v): expected %s, got %s (%v)", tc.current, tc.deflt, tc.want, got, err)
		}
	}
	if _, err := FilterFrom(true, true); !errors.Is(err, ErrConflictingFilters) {
		t.Fatalf("expected ErrConflictingFilters, got %v", err)
	}
}

func TestFilterAllows(t *testing.T) {
	sources := []Source{resolve.ProjectSource(manifest), resolve.DefaultSource, {}}

	var current []Source
	for _, s := range sources {
		if FilterCurrent.Allows(s) {
			current = append(current, s)
		}
	}
	if len(current) != 2 || current[0].Kind != resolve.SourceProject || current[1].Kind != resolve.SourceDefault {
		t.Fatalf("expected project and default to pass current filter, got %v", current)
	}

	for _, s := range sources {
		if FilterDefault.Allows(s) != (s.Kind == resolve.SourceDefault) {
			t.Fatalf("default filter mismatch for %s", s)
		}
		if !FilterAll.Allows(s) {
			t.Fatalf("all filter rejected %s", s)
		}
	}
}

func TestActiveOutsideProject(t *testing.T) {
	active := ActiveToolchain(Input{Inventory: testInventory()}, FilterAll)

	if active.Runtime == nil || active.Runtime.Version.String() != "12.0.0" || active.Runtime.Source.Kind != resolve.SourceDefault {
		t.Fatalf("expected default node 12.0.0, got %+v", active.Runtime)
	}
	if len(active.PackageManagers) != 2 {
		t.Fatalf("expected npm and yarn, got %+v", active.PackageManagers)
	}
	npm, yarn := active.PackageManagers[0], active.PackageManagers[1]
	if npm.Kind != Npm || npm.Version.String() != "6.9.0" {
		t.Fatalf("expected bundled npm 6.9.0, got %+v", npm)
	}
	if yarn.Kind != Yarn || yarn.Version.String() != "1.22.0" || yarn.Source.Kind != resolve.SourceDefault {
		t.Fatalf("expected default yarn 1.22.0, got %+v", yarn)
	}
	if len(active.Packages) != 1 || active.Packages[0].Source.Kind != resolve.SourceDefault {
		t.Fatalf("expected typescript from default, got %+v", active.Packages)
	}
}

func TestActiveInProject(t *testing.T) {
	in := Input{
		Project:   fakeProject{node: "^14.0.0", deps: map[string]bool{"typescript": true}},
		Inventory: testInventory(),
	}

	active := ActiveToolchain(in, FilterAll)
	if active.Runtime == nil || active.Runtime.Version.String() != "14.2.0" {
		t.Fatalf("expected project node 14.2.0, got %+v", active.Runtime)
	}
	if active.Runtime.Source != resolve.ProjectSource(manifest) {
		t.Fatalf("expected project source, got %s", active.Runtime.Source)
	}
	if active.Packages[0].Source.Kind != resolve.SourceProject {
		t.Fatalf("expected dependency to be attributed to the project, got %s", active.Packages[0].Source)
	}

	defaults := ActiveToolchain(in, FilterDefault)
	if defaults.Runtime != nil {
		t.Fatalf("expected project node to be filtered out, got %+v", defaults.Runtime)
	}
	if len(defaults.PackageManagers) != 1 || defaults.PackageManagers[0].Kind != Yarn {
		t.Fatalf("expected only default yarn, got %+v", defaults.PackageManagers)
	}
	if len(defaults.Packages) != 0 {
		t.Fatalf("expected no default packages, got %+v", defaults.Packages)
	}
}

func TestActiveUnresolvedProjectNode(t *testing.T) {
	in := Input{Project: fakeProject{node: "^16.0.0"}, Inventory: testInventory()}

	active := ActiveToolchain(in, FilterAll)
	if active.Runtime != nil {
		t.Fatalf("expected no runtime for an unsatisfied pin, got %+v", active.Runtime)
	}
	for _, pm := range active.PackageManagers {
		if pm.Kind == Npm {
			t.Fatalf("expected no npm without a runtime, got %+v", pm)
		}
	}
}

func TestActiveCustomNpm(t *testing.T) {
	inv := testInventory()
	inv.Platform.Npm = v("7.0.0")

	active := ActiveToolchain(Input{Inventory: inv}, FilterAll)
	if got := active.PackageManagers[0]; got.Kind != Npm || got.Version.String() != "7.0.0" {
		t.Fatalf("expected custom npm 7.0.0, got %+v", got)
	}
}

func TestNodeVersionsTagsSources(t *testing.T) {
	in := Input{Project: fakeProject{node: "^14.0.0"}, Inventory: testInventory()}

	runtimes := NodeVersions(in, FilterAll)
	if len(runtimes) != 2 {
		t.Fatalf("expected 2 runtimes, got %d", len(runtimes))
	}
	if runtimes[0].Source.Kind != resolve.SourceDefault || runtimes[1].Source.Kind != resolve.SourceProject {
		t.Fatalf("unexpected sources %s, %s", runtimes[0].Source, runtimes[1].Source)
	}

	current := NodeVersions(in, FilterCurrent)
	if len(current) != 2 {
		t.Fatalf("expected project and default to be current, got %d", len(current))
	}
	if got := NodeVersions(in, FilterDefault); len(got) != 1 || got[0].Version.String() != "12.0.0" {
		t.Fatalf("expected only default node, got %+v", got)
	}
}

func TestProjectBeatsDefaultForSameVersion(t *testing.T) {
	in := Input{Project: fakeProject{node: "12"}, Inventory: testInventory()}

	runtimes := NodeVersions(in, FilterAll)
	if runtimes[0].Source.Kind != resolve.SourceProject {
		t.Fatalf("expected project source for 12.0.0, got %s", runtimes[0].Source)
	}
	if runtimes[1].Source.Kind != resolve.SourceNone {
		t.Fatalf("expected 14.2.0 to be inactive, got %s", runtimes[1].Source)
	}
}

func TestYarnVersions(t *testing.T) {
	in := Input{Project: fakeProject{node: "^14.0.0"}, Inventory: testInventory()}

	yarn := YarnVersions(in, FilterCurrent)
	if yarn.Kind != Yarn || len(yarn.Managers) != 1 {
		t.Fatalf("expected one current yarn, got %+v", yarn)
	}
	if yarn.Managers[0].Version.String() != "1.22.0" || yarn.Managers[0].Source.Kind != resolve.SourceDefault {
		t.Fatalf("expected default yarn 1.22.0 when the project does not pin yarn, got %+v", yarn.Managers[0])
	}
}

func TestAllIncludesInactivePackages(t *testing.T) {
	all := AllToolchain(Input{Inventory: testInventory()})

	if len(all.Runtimes) != 2 {
		t.Fatalf("expected 2 runtimes, got %d", len(all.Runtimes))
	}
	if len(all.PackageManagers) != 4 {
		t.Fatalf("expected 2 npm and 2 yarn records, got %d", len(all.PackageManagers))
	}
	if len(all.Packages) != 2 {
		t.Fatalf("expected installed typescript and fetched left-pad, got %+v", all.Packages)
	}
	if pad := all.Packages[1]; pad.Name != "left-pad" || pad.Source.Kind != resolve.SourceNone || pad.Node != nil {
		t.Fatalf("expected inactive left-pad, got %+v", pad)
	}
}

func TestPackageOrTool(t *testing.T) {
	in := Input{Inventory: testInventory()}

	got, err := PackageOrTool("typescript", in, FilterAll)
	if err != nil {
		t.Fatalf("PackageOrTool: %v", err)
	}
	pkgs, ok := got.(Packages)
	if !ok || len(pkgs) != 1 || pkgs[0].Version.String() != "3.9.2" {
		t.Fatalf("expected typescript package, got %#v", got)
	}

	got, err = PackageOrTool("tsc", in, FilterAll)
	if err != nil {
		t.Fatalf("PackageOrTool: %v", err)
	}
	tool, ok := got.(Tool)
	if !ok || tool.Name != "tsc" || len(tool.Hosts) != 1 || tool.Hosts[0].Name != "typescript" {
		t.Fatalf("expected tsc hosted by typescript, got %#v", got)
	}

	got, err = PackageOrTool("left-pad", in, FilterCurrent)
	if err != nil {
		t.Fatalf("PackageOrTool: %v", err)
	}
	if pkgs := got.(Packages); len(pkgs) != 0 {
		t.Fatalf("expected inactive package to be filtered out, got %+v", pkgs)
	}
}

func TestPackageOrToolUnknown(t *testing.T) {
	inv := testInventory()
	inv.Fetched = nil

	_, err := PackageOrTool("left-pad", Input{Inventory: inv}, FilterAll)
	if !errors.Is(err, ErrUnknownPackageOrTool) {
		t.Fatalf("expected ErrUnknownPackageOrTool, got %v", err)
	}

	_, err = PackageOrTool("typscript", Input{Inventory: inv}, FilterAll)
	var unknown *UnknownNameError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownNameError, got %v", err)
	}
	if len(unknown.Suggestions) == 0 || unknown.Suggestions[0] != "typescript" {
		t.Fatalf("expected typescript suggestion, got %v", unknown.Suggestions)
	}
	if !strings.Contains(err.Error(), "did you mean typescript") {
		t.Fatalf("expected suggestion in message, got %q", err.Error())
	}
}
