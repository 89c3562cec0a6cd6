package protocols

import (
	"sync"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// Registry is a process-wide, concurrency-safe map from Protocol to the
// Handler registered for it, guarded by an RWMutex since lookups vastly
// outnumber registrations once startup finishes.
type Registry struct {
	mu       sync.RWMutex
	handlers map[proto.Protocol]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[proto.Protocol]Handler{}}
}

// NewRegistryWithDefaults returns a registry with the MCP handler
// registered; every other protocol resolves to KindNotImplemented until
// registered explicitly.
func NewRegistryWithDefaults() *Registry {
	r := NewRegistry()
	r.Register(NewMcpHandler())
	return r
}

// Register adds or replaces the handler for its own Protocol().
func (r *Registry) Register(handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[handler.Protocol()] = handler
}

// Get returns the handler registered for protocol, or a
// KindNotImplemented error if none is.
func (r *Registry) Get(protocol proto.Protocol) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[protocol]
	if !ok {
		return nil, generation.New(generation.KindNotImplemented, "protocol %s has no registered handler", protocol)
	}
	return h, nil
}

// List returns every protocol with a registered handler.
func (r *Registry) List() []proto.Protocol {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]proto.Protocol, 0, len(r.handlers))
	for p := range r.handlers {
		out = append(out, p)
	}
	return out
}

// IsImplemented reports whether protocol has a registered handler.
func (r *Registry) IsImplemented(protocol proto.Protocol) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[protocol]
	return ok
}
