package inventory

import (
	"github.com/Masterminds/semver/v3"
)

// Tool names a runtime or package manager jolt keeps versions of.
type Tool string

const (
	ToolNode Tool = "node"
	ToolYarn Tool = "yarn"
)

// Platform is the user's default toolchain. Nil fields mean no default.
type Platform struct {
	Node *semver.Version
	Npm  *semver.Version
	Yarn *semver.Version
}

// PackageConfig records a package installed into the user toolchain.
type PackageConfig struct {
	Name    string
	Version *semver.Version
	// Node is the node version the package was installed against.
	Node *semver.Version
	Bins []string
}

// FetchedPackage is a package archive present in the inventory that may or may
// not be installed.
type FetchedPackage struct {
	Name    string
	Version *semver.Version
}

type platformFile struct {
	Node *struct {
		Runtime string `json:"runtime"`
		Npm     string `json:"npm,omitempty"`
	} `json:"node,omitempty"`
	Yarn string `json:"yarn,omitempty"`
}

type packageFile struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Node    string   `json:"node"`
	Bins    []string `json:"bins"`
}
