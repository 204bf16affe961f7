// Package module wires the jotter pipeline into the API using modkit
package module

import (
	"net/http"

	"smartjotter/internal/adapters/ink"
	"smartjotter/internal/adapters/llml"
	modkit "smartjotter/internal/modkit"
	"smartjotter/internal/modkit/httpkit"
	str "smartjotter/internal/platform/strings"
	"smartjotter/internal/services/jotter/domain"
	jotterhttp "smartjotter/internal/services/jotter/http"
	jottersvc "smartjotter/internal/services/jotter/service"
)

// Ports consumed and exposed by the jotter module
// Dispatcher is injected by the caller, typically from the dispatch module
type Ports struct {
	Dispatcher domain.DispatcherPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *jottersvc.Service
}

// New constructs a jotter module with the provided dependencies and options
// the Dispatcher port must be injected via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("jotter"), modkit.WithPrefix("/jotter")}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Dispatcher == nil {
		panic("jotter module requires a Dispatcher port")
	}

	o := FromConfig(deps.Cfg)

	recognizer := ink.NewClient(ink.Options{
		BaseURL:        o.InkBaseURL,
		ApplicationKey: o.InkApplicationKey,
		HMACKey:        o.InkHMACKey,
		Lang:           o.InkLang,
		Timeout:        o.InkTimeout,
	})
	extractor := llml.NewExtractor(llml.Options{
		Provider:  llml.Provider(o.LLMProvider),
		APIKey:    o.LLMAPIKey,
		BaseURL:   o.LLMBaseURL,
		Model:     o.LLMModel,
		Timeout:   o.LLMTimeout,
		MaxTokens: o.LLMMaxTokens,
	})

	svc := jottersvc.New(recognizer, extractor, ports.Dispatcher, jottersvc.Config{
		MaxTextLen: o.MaxTextLen,
		RunTTL:     o.RunTTL,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     ports,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		jotterhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
