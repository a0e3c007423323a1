// Package inventory loads the on-disk record of installed tool versions,
// installed and fetched packages, and the user's default platform.
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"jolt/internal/layout"
	"jolt/internal/version"
)

// Inventory is a read-only snapshot of what is installed under a jolt home.
type Inventory struct {
	Node     []*semver.Version
	Yarn     []*semver.Version
	Packages []PackageConfig
	Fetched  []FetchedPackage
	// Platform is nil when the user never chose a default.
	Platform *Platform

	npm map[string]*semver.Version
}

// Load scans the layout once. Missing directories read as empty.
func Load(l layout.Layout) (*Inventory, error) {
	inv := &Inventory{npm: map[string]*semver.Version{}}

	var err error
	if inv.Node, err = scanVersions(l.NodeImageRootDir()); err != nil {
		return nil, fmt.Errorf("scan node versions: %w", err)
	}
	if inv.Yarn, err = scanVersions(l.YarnImageRootDir()); err != nil {
		return nil, fmt.Errorf("scan yarn versions: %w", err)
	}
	for _, node := range inv.Node {
		npm, err := readNpmVersion(l.NodeNpmVersionFile(node.String()))
		if err != nil {
			return nil, err
		}
		if npm != nil {
			inv.npm[node.String()] = npm
		}
	}
	if inv.Packages, err = loadPackages(l.UserPackageDir()); err != nil {
		return nil, err
	}
	if inv.Fetched, err = scanFetched(l.PackageInventoryDir()); err != nil {
		return nil, err
	}
	if inv.Platform, err = LoadPlatform(l); err != nil {
		return nil, err
	}
	return inv, nil
}

// Installed returns the installed versions of tool, ascending.
func (inv *Inventory) Installed(tool Tool) []*semver.Version {
	switch tool {
	case ToolNode:
		return inv.Node
	case ToolYarn:
		return inv.Yarn
	default:
		return nil
	}
}

// ResolveLocal returns the best installed version of tool satisfying req.
func (inv *Inventory) ResolveLocal(tool Tool, req version.Requirement) (*semver.Version, bool) {
	return version.BestMatch(req, inv.Installed(tool))
}

// Default returns the user's default version of tool.
func (inv *Inventory) Default(tool Tool) (*semver.Version, bool) {
	if inv.Platform == nil {
		return nil, false
	}
	var v *semver.Version
	switch tool {
	case ToolNode:
		v = inv.Platform.Node
	case ToolYarn:
		v = inv.Platform.Yarn
	}
	return v, v != nil
}

// BundledNpm returns the npm version that shipped with a node version.
func (inv *Inventory) BundledNpm(node *semver.Version) (*semver.Version, bool) {
	if node == nil || inv.npm == nil {
		return nil, false
	}
	v, ok := inv.npm[node.String()]
	return v, ok
}

// SetBundledNpm records the npm bundled with node.
func (inv *Inventory) SetBundledNpm(node, npm *semver.Version) {
	if inv.npm == nil {
		inv.npm = map[string]*semver.Version{}
	}
	inv.npm[node.String()] = npm
}

// LoadPlatform reads the user's default platform, returning nil when none is set.
func LoadPlatform(l layout.Layout) (*Platform, error) {
	contents, err := os.ReadFile(l.UserPlatformFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read platform: %w", err)
	}

	var raw platformFile
	if err := json.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal platform: %w", err)
	}

	var p Platform
	if raw.Node != nil && strings.TrimSpace(raw.Node.Runtime) != "" {
		if p.Node, err = version.Parse(raw.Node.Runtime); err != nil {
			return nil, fmt.Errorf("platform node: %w", err)
		}
		if strings.TrimSpace(raw.Node.Npm) != "" {
			if p.Npm, err = version.Parse(raw.Node.Npm); err != nil {
				return nil, fmt.Errorf("platform npm: %w", err)
			}
		}
	}
	if strings.TrimSpace(raw.Yarn) != "" {
		if p.Yarn, err = version.Parse(raw.Yarn); err != nil {
			return nil, fmt.Errorf("platform yarn: %w", err)
		}
	}
	if p.Node == nil && p.Yarn == nil {
		return nil, nil
	}
	return &p, nil
}

func scanVersions(dir string) ([]*semver.Version, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var versions []*semver.Version
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := semver.StrictNewVersion(entry.Name())
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	version.Sort(versions)
	return versions, nil
}

func readNpmVersion(path string) (*semver.Version, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read bundled npm version: %w", err)
	}
	raw := strings.TrimSpace(string(contents))
	if raw == "" {
		return nil, nil
	}
	v, err := version.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("bundled npm %s: %w", filepath.Base(path), err)
	}
	return v, nil
}

func loadPackages(dir string) ([]PackageConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read package configs: %w", err)
	}

	var packages []PackageConfig
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		pkg, err := readPackageConfig(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].Name < packages[j].Name })
	return packages, nil
}

func readPackageConfig(path string) (PackageConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return PackageConfig{}, fmt.Errorf("read package config: %w", err)
	}

	var raw packageFile
	if err := json.Unmarshal(contents, &raw); err != nil {
		return PackageConfig{}, fmt.Errorf("unmarshal package config %s: %w", filepath.Base(path), err)
	}
	if raw.Name == "" {
		raw.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	pkg := PackageConfig{Name: raw.Name, Bins: append([]string(nil), raw.Bins...)}
	if pkg.Version, err = version.Parse(raw.Version); err != nil {
		return PackageConfig{}, fmt.Errorf("package %s: %w", raw.Name, err)
	}
	if pkg.Node, err = version.Parse(raw.Node); err != nil {
		return PackageConfig{}, fmt.Errorf("package %s node: %w", raw.Name, err)
	}
	sort.Strings(pkg.Bins)
	return pkg, nil
}

func scanFetched(dir string) ([]FetchedPackage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read package inventory: %w", err)
	}

	var fetched []FetchedPackage
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".tgz")
		if entry.IsDir() || !ok {
			continue
		}
		if pkg, ok := splitDistroName(name); ok {
			fetched = append(fetched, pkg)
		}
	}
	sort.Slice(fetched, func(i, j int) bool {
		if fetched[i].Name != fetched[j].Name {
			return fetched[i].Name < fetched[j].Name
		}
		return fetched[i].Version.LessThan(fetched[j].Version)
	})
	return fetched, nil
}

// splitDistroName splits "<name>-<version>" at the first dash whose remainder
// is a valid version; names may contain dashes themselves.
func splitDistroName(base string) (FetchedPackage, bool) {
	for i := 0; i < len(base); i++ {
		if base[i] != '-' || i == 0 {
			continue
		}
		v, err := semver.StrictNewVersion(base[i+1:])
		if err != nil {
			continue
		}
		return FetchedPackage{Name: base[:i], Version: v}, true
	}
	return FetchedPackage{}, false
}

// PackagesNamed returns installed packages called name.
func (inv *Inventory) PackagesNamed(name string) []PackageConfig {
	var out []PackageConfig
	for _, pkg := range inv.Packages {
		if pkg.Name == name {
			out = append(out, pkg)
		}
	}
	return out
}

// PackagesExposing returns installed packages that provide the executable bin.
func (inv *Inventory) PackagesExposing(bin string) []PackageConfig {
	var out []PackageConfig
	for _, pkg := range inv.Packages {
		for _, b := range pkg.Bins {
			if b == bin {
				out = append(out, pkg)
				break
			}
		}
	}
	return out
}

// FetchedNamed returns fetched archives of name that are not installed.
func (inv *Inventory) FetchedNamed(name string) []FetchedPackage {
	var out []FetchedPackage
	for _, f := range inv.Fetched {
		if f.Name == name && !inv.isInstalled(f) {
			out = append(out, f)
		}
	}
	return out
}

// Inactive returns every fetched archive that is not installed.
func (inv *Inventory) Inactive() []FetchedPackage {
	var out []FetchedPackage
	for _, f := range inv.Fetched {
		if !inv.isInstalled(f) {
			out = append(out, f)
		}
	}
	return out
}

func (inv *Inventory) isInstalled(f FetchedPackage) bool {
	for _, pkg := range inv.Packages {
		if pkg.Name == f.Name && version.Equal(pkg.Version, f.Version) {
			return true
		}
	}
	return false
}
