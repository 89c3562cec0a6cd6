package context

import (
	"sync"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// Registry looks up the ContextBuilder registered for a language,
// defaulting to Rust, Python, and TypeScript builders (C8).
type Registry struct {
	mu       sync.RWMutex
	builders map[proto.Language]generation.ContextBuilder
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[proto.Language]generation.ContextBuilder)}
}

func NewRegistryWithDefaults() *Registry {
	r := NewRegistry()
	r.Register(proto.Rust, RustBuilder{})
	r.Register(proto.Python, PythonBuilder{})
	r.Register(proto.TypeScript, TypeScriptBuilder{})
	return r
}

func (r *Registry) Register(language proto.Language, builder generation.ContextBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[language] = builder
}

func (r *Registry) Get(language proto.Language) (generation.ContextBuilder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	builder, ok := r.builders[language]
	if !ok {
		return nil, generation.New(generation.KindUnsupportedLanguage, "no context builder registered for language %s", language)
	}
	return builder, nil
}

func (r *Registry) HasBuilder(language proto.Language) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[language]
	return ok
}

func (r *Registry) SupportedLanguages() []proto.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	languages := make([]proto.Language, 0, len(r.builders))
	for l := range r.builders {
		languages = append(languages, l)
	}
	return languages
}
