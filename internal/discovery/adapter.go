// Package discovery adapts internal/templates' Discover/DiscoverAt
// functions (C6) to the generation.TemplateDiscovery port, so the
// orchestrator can resolve a (protocol, role, language) triple or an
// explicit bundle directory without importing internal/templates
// directly (internal/generation already imports internal/templates for
// its own Template/Manifest types; this adapter only adds the context
// parameter the port requires).
package discovery

import (
	"context"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// Adapter wraps a templates.Repository behind generation.TemplateDiscovery.
type Adapter struct {
	Repo templates.Repository
}

// NewAdapter returns a discovery adapter backed by repo.
func NewAdapter(repo templates.Repository) Adapter {
	return Adapter{Repo: repo}
}

func (a Adapter) Discover(_ context.Context, protocol proto.Protocol, role proto.Role, language proto.Language) (*templates.Template, error) {
	return templates.Discover(a.Repo, templates.Descriptor{Protocol: protocol, Role: role, Language: language})
}

func (Adapter) DiscoverAt(_ context.Context, dir string) (*templates.Template, error) {
	return templates.DiscoverAt(dir)
}

var _ generation.TemplateDiscovery = Adapter{}
