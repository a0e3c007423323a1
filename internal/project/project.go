package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jolt/internal/layout"
	"jolt/internal/version"
)

// ManifestName is the file that marks a project root.
const ManifestName = "package.json"

// Project is a read-only view of the nearest package.json and its pinned toolchain.
type Project struct {
	manifestPath string
	root         string
	node         version.Requirement
	yarn         version.Requirement
	deps         map[string]struct{}
}

type manifest struct {
	Toolchain *struct {
		Node string `json:"node"`
		Yarn string `json:"yarn"`
	} `json:"jolt"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Find walks up from dir looking for a package.json. Manifests inside
// node_modules belong to dependencies and are skipped. Returns nil when no
// project encloses dir.
func Find(dir string) (*Project, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project search dir: %w", err)
	}

	for {
		candidate := filepath.Join(current, ManifestName)
		ok, err := layout.FileExists(candidate)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", candidate, err)
		}
		if ok && !insideNodeModules(current) {
			return Load(candidate)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

// Load parses the manifest at path.
func Load(path string) (*Project, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest %s: %w", path, err)
	}

	p := &Project{
		manifestPath: path,
		root:         filepath.Dir(path),
		deps:         make(map[string]struct{}, len(m.Dependencies)+len(m.DevDependencies)),
	}
	for name := range m.Dependencies {
		p.deps[name] = struct{}{}
	}
	for name := range m.DevDependencies {
		p.deps[name] = struct{}{}
	}

	if m.Toolchain != nil {
		if raw := strings.TrimSpace(m.Toolchain.Node); raw != "" {
			if p.node, err = version.ParseRequirement(raw); err != nil {
				return nil, fmt.Errorf("%s: node: %w", path, err)
			}
		}
		if raw := strings.TrimSpace(m.Toolchain.Yarn); raw != "" {
			if p.yarn, err = version.ParseRequirement(raw); err != nil {
				return nil, fmt.Errorf("%s: yarn: %w", path, err)
			}
		}
	}
	return p, nil
}

func (p *Project) ManifestPath() string { return p.manifestPath }

// NodeRequirement returns the pinned node range, if the project pins one.
func (p *Project) NodeRequirement() (version.Requirement, bool) {
	return p.node, !p.node.IsZero()
}

// YarnRequirement returns the pinned yarn range. Pinning yarn is optional.
func (p *Project) YarnRequirement() (version.Requirement, bool) {
	return p.yarn, !p.yarn.IsZero()
}

// LocalBinDir is node_modules/.bin under the project root.
func (p *Project) LocalBinDir() string {
	return filepath.Join(p.root, "node_modules", ".bin")
}

// HasLocalBin reports whether the project installed its own executable called name.
func (p *Project) HasLocalBin(name string) (bool, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false, nil
	}
	ok, err := layout.FileExists(filepath.Join(p.LocalBinDir(), name))
	if err != nil {
		return false, fmt.Errorf("check local bin %s: %w", name, err)
	}
	return ok, nil
}

// HasDependency reports whether name is a direct or dev dependency.
func (p *Project) HasDependency(name string) bool {
	_, ok := p.deps[name]
	return ok
}

func insideNodeModules(dir string) bool {
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == "node_modules" {
			return true
		}
	}
	return false
}

