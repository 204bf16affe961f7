// Package module wires the dispatch service and exposes its ports
// it mounts no routes of its own; the jotter module consumes the port
package module

import (
	"smartjotter/internal/adapters/hostapp"
	"smartjotter/internal/modkit"
	"smartjotter/internal/modkit/httpkit"
	"smartjotter/internal/services/dispatch/domain"
)

// Ports exposed by the dispatch module
type Ports struct {
	Dispatcher domain.DispatcherPort
}

// Module defines the dispatch module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the dispatch module from config
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	client := hostapp.NewClient(hostapp.Options{
		BaseURL: opts.BaseURL,
		Timeout: opts.Timeout,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Dispatcher: client}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "dispatch" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
