package generation

import (
	"context"

	"github.com/clafollett/agenterra-go/internal/templates"
)

// Orchestrator composes discovery, context building, rendering, and
// post-processing into a single generate() call, matching the six-step
// pipeline of the Rust source's GenerationOrchestrator::generate (C11).
type Orchestrator struct {
	discovery       TemplateDiscovery
	contextBuilders ContextBuilderRegistry
	renderers       RendererSelector
	postProcessor   PostProcessor
	templateDir     string // set when the caller supplied an explicit bundle directory
}

// NewOrchestrator wires the four ports the orchestrator composes.
func NewOrchestrator(
	discovery TemplateDiscovery,
	contextBuilders ContextBuilderRegistry,
	renderers RendererSelector,
	postProcessor PostProcessor,
) *Orchestrator {
	return &Orchestrator{
		discovery:       discovery,
		contextBuilders: contextBuilders,
		renderers:       renderers,
		postProcessor:   postProcessor,
	}
}

// WithTemplateDir returns a copy of the orchestrator that discovers its
// template from an explicit filesystem bundle directory instead of the
// (protocol, role, language) triple, for a user-supplied bundle directory.
func (o *Orchestrator) WithTemplateDir(dir string) *Orchestrator {
	clone := *o
	clone.templateDir = dir
	return &clone
}

// Generate runs the full pipeline. Errors short-circuit with the
// originating component's error kind preserved (every step below
// already returns a *Error of the right Kind).
func (o *Orchestrator) Generate(ctx context.Context, genCtx *GenerationContext) (*GenerationResult, error) {
	if err := genCtx.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := o.discover(ctx, genCtx)
	if err != nil {
		return nil, err
	}

	builder, err := o.contextBuilders.Get(genCtx.Language)
	if err != nil {
		return nil, Wrap(KindUnsupportedLanguage, err, "no context builder for language %s", genCtx.Language)
	}

	renderCtx, err := builder.Build(ctx, genCtx, tmpl)
	if err != nil {
		return nil, err
	}

	renderer, err := o.renderers.Select(genCtx.Protocol, genCtx.Role)
	if err != nil {
		return nil, Wrap(KindRender, err, "no renderer for %s/%s", genCtx.Protocol, genCtx.Role)
	}

	artifacts, err := renderer.Render(ctx, tmpl, renderCtx, genCtx)
	if err != nil {
		return nil, err
	}

	processed, err := o.postProcessor.Process(ctx, artifacts, genCtx, tmpl.Manifest.PostGenerateHooks)
	if err != nil {
		return nil, err
	}

	return &GenerationResult{Artifacts: processed, Metadata: genCtx.Metadata}, nil
}

func (o *Orchestrator) discover(ctx context.Context, genCtx *GenerationContext) (*templates.Template, error) {
	if o.templateDir != "" {
		t, err := o.discovery.DiscoverAt(ctx, o.templateDir)
		if err != nil {
			return nil, Wrap(KindDiscovery, err, "discover template at %s", o.templateDir)
		}
		return t, nil
	}
	t, err := o.discovery.Discover(ctx, genCtx.Protocol, genCtx.Role, genCtx.Language)
	if err != nil {
		return nil, Wrap(KindDiscovery, err, "discover template for %s/%s/%s", genCtx.Protocol, genCtx.Role, genCtx.Language)
	}
	return t, nil
}
