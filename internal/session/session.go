// Package session builds the read-only snapshots a single jolt run works
// from. Each snapshot is loaded at most once, on first use.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"jolt/internal/inventory"
	"jolt/internal/layout"
	"jolt/internal/project"
	"jolt/internal/resolve"
	"jolt/internal/toolchain"
)

// Session caches the project context and inventory for one process run.
type Session struct {
	Layout layout.Layout

	cwd    string
	logger *log.Logger

	project       *project.Project
	projectLoaded bool
	inventory     *inventory.Inventory
}

// New creates a session rooted at home layout l, looking for a project from cwd.
func New(l layout.Layout, cwd string, logger *log.Logger) *Session {
	return &Session{Layout: l, cwd: cwd, logger: logger}
}

// Project returns the enclosing project, or nil outside a project.
func (s *Session) Project() (*project.Project, error) {
	if s.projectLoaded {
		return s.project, nil
	}
	p, err := project.Find(s.cwd)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	s.project, s.projectLoaded = p, true
	if p != nil {
		s.logger.Debug("project context", "manifest", p.ManifestPath())
	} else {
		s.logger.Debug("no project context", "dir", s.cwd)
	}
	return p, nil
}

// Inventory returns the installed-tools snapshot.
func (s *Session) Inventory() (*inventory.Inventory, error) {
	if s.inventory != nil {
		return s.inventory, nil
	}
	inv, err := inventory.Load(s.Layout)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	s.logger.Debug("inventory loaded", "node", len(inv.Node), "yarn", len(inv.Yarn), "packages", len(inv.Packages))
	s.inventory = inv
	return inv, nil
}

// Env assembles the resolver's collaborators.
func (s *Session) Env() (resolve.Env, error) {
	p, err := s.Project()
	if err != nil {
		return resolve.Env{}, err
	}
	inv, err := s.Inventory()
	if err != nil {
		return resolve.Env{}, err
	}

	env := resolve.Env{Catalog: inv, Layout: s.Layout}
	// A nil *project.Project must stay a nil interface.
	if p != nil {
		env.Project = p
	}
	return env, nil
}

// Input assembles the reporter's snapshots.
func (s *Session) Input() (toolchain.Input, error) {
	p, err := s.Project()
	if err != nil {
		return toolchain.Input{}, err
	}
	inv, err := s.Inventory()
	if err != nil {
		return toolchain.Input{}, err
	}

	in := toolchain.Input{Inventory: inv}
	if p != nil {
		in.Project = p
	}
	return in, nil
}
