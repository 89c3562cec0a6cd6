package application

import (
	"context"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/protocols"
	"github.com/clafollett/agenterra-go/internal/templates"
)

type fakeHandler struct {
	protocol proto.Protocol
}

func (h fakeHandler) Protocol() proto.Protocol { return h.protocol }

func (fakeHandler) ValidateConfiguration(protocols.Config) error { return nil }

func (h fakeHandler) PrepareContext(_ context.Context, input protocols.Input) (*generation.GenerationContext, error) {
	ctx := generation.NewContext(h.protocol, input.Role, input.Language)
	ctx.Metadata.ProjectName = input.Config.ProjectName
	return ctx, nil
}

type fakeDiscovery struct{}

func (fakeDiscovery) Discover(_ context.Context, p proto.Protocol, r proto.Role, l proto.Language) (*templates.Template, error) {
	return &templates.Template{Descriptor: templates.Descriptor{Protocol: p, Role: r, Language: l}}, nil
}

func (fakeDiscovery) DiscoverAt(_ context.Context, dir string) (*templates.Template, error) {
	return &templates.Template{SourcePath: dir}, nil
}

type fakeContextBuilder struct{}

func (fakeContextBuilder) Build(_ context.Context, _ *generation.GenerationContext, _ *templates.Template) (*generation.RenderContext, error) {
	return generation.NewRenderContext(), nil
}

type fakeBuilderRegistry struct{}

func (fakeBuilderRegistry) Get(proto.Language) (generation.ContextBuilder, error) {
	return fakeContextBuilder{}, nil
}

type fakeRenderer struct{ artifacts []generation.Artifact }

func (f fakeRenderer) Render(context.Context, *templates.Template, *generation.RenderContext, *generation.GenerationContext) ([]generation.Artifact, error) {
	return f.artifacts, nil
}

type fakeSelector struct{ renderer generation.TemplateRenderingStrategy }

func (f fakeSelector) Select(proto.Protocol, proto.Role) (generation.TemplateRenderingStrategy, error) {
	return f.renderer, nil
}

type fakePostProcessor struct{}

func (fakePostProcessor) Process(_ context.Context, artifacts []generation.Artifact, _ *generation.GenerationContext, _ []string) ([]generation.Artifact, error) {
	return artifacts, nil
}

type fakeOpenAPILoader struct{ spec *generation.OpenApiSpec }

func (f fakeOpenAPILoader) Load(context.Context, string) (*generation.OpenApiSpec, error) {
	return f.spec, nil
}

type fakeOutput struct {
	written []generation.Artifact
	ensured []string
}

func (f *fakeOutput) WriteArtifacts(_ context.Context, artifacts []generation.Artifact) error {
	f.written = append(f.written, artifacts...)
	return nil
}

func (f *fakeOutput) EnsureDirectory(_ context.Context, path string) error {
	f.ensured = append(f.ensured, path)
	return nil
}

func newOrchestrator(artifacts []generation.Artifact) *generation.Orchestrator {
	return generation.NewOrchestrator(fakeDiscovery{}, fakeBuilderRegistry{}, fakeSelector{renderer: fakeRenderer{artifacts: artifacts}}, fakePostProcessor{})
}
