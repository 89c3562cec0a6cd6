package generation

import (
	"context"

	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// ContextBuilder builds a RenderContext from a GenerationContext and
// the discovered Template (C8).
type ContextBuilder interface {
	Build(ctx context.Context, genCtx *GenerationContext, tmpl *templates.Template) (*RenderContext, error)
}

// ContextBuilderRegistry looks up the ContextBuilder for a language.
type ContextBuilderRegistry interface {
	Get(language proto.Language) (ContextBuilder, error)
}

// TemplateRenderingStrategy renders a discovered Template with a
// RenderContext into artifacts, using protocol-specific logic (C9).
type TemplateRenderingStrategy interface {
	Render(ctx context.Context, tmpl *templates.Template, renderCtx *RenderContext, genCtx *GenerationContext) ([]Artifact, error)
}

// RendererSelector picks the rendering strategy for (protocol, role).
type RendererSelector interface {
	Select(protocol proto.Protocol, role proto.Role) (TemplateRenderingStrategy, error)
}

// PostProcessor mutates artifacts after rendering: permission
// assignment and hook execution (C10). postGenerateHooks is the
// discovered template's manifest hook list, threaded through
// separately from genCtx since it belongs to the template, not the
// generation request.
type PostProcessor interface {
	Process(ctx context.Context, artifacts []Artifact, genCtx *GenerationContext, postGenerateHooks []string) ([]Artifact, error)
}

// OpenApiLoader loads an OpenApiSpec from a source string (C3).
type OpenApiLoader interface {
	Load(ctx context.Context, source string) (*OpenApiSpec, error)
}

// TemplateDiscovery resolves (protocol, role, language) to a Template
// (C6), or an explicit bundle directory when one was supplied.
type TemplateDiscovery interface {
	Discover(ctx context.Context, protocol proto.Protocol, role proto.Role, language proto.Language) (*templates.Template, error)
	DiscoverAt(ctx context.Context, dir string) (*templates.Template, error)
}
