package render

import (
	"context"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// DefaultRenderer renders a bundle's files exactly once, for clients
// and any protocol/role that does not iterate per-operation.
type DefaultRenderer struct{}

func (DefaultRenderer) Render(_ context.Context, tmpl *templates.Template, renderCtx *generation.RenderContext, _ *generation.GenerationContext) ([]generation.Artifact, error) {
	contents := fileContents(tmpl)
	artifacts := make([]generation.Artifact, 0, len(tmpl.Manifest.Files))

	for _, mf := range tmpl.Manifest.Files {
		content, ok := contents[mf.Source]
		if !ok {
			return nil, generation.New(generation.KindRender, "template file for manifest entry %q not found", mf.Source)
		}

		switch {
		case isTemplateFile(mf.FileType) && mf.FileType.ForEach != "":
			return nil, generation.New(generation.KindInvalidConfiguration,
				"default renderer does not support for_each templates; use a protocol-specific renderer")

		case isTemplateFile(mf.FileType):
			rendered, err := renderBody(mf.Source, content, renderCtx.Variables)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, generation.Artifact{
				Path:    substitutePath(mf.Target, stringVariables(renderCtx)),
				Content: rendered,
			})

		default:
			artifacts = append(artifacts, generation.Artifact{
				Path:    substitutePath(mf.Target, stringVariables(renderCtx)),
				Content: content,
			})
		}
	}

	return artifacts, nil
}

// stringVariables narrows a RenderContext's variables to the ones worth
// offering a destination-path substitution, since only string-valued
// variables can sensibly replace a "{key}" path segment.
func stringVariables(renderCtx *generation.RenderContext) map[string]string {
	out := make(map[string]string, len(renderCtx.Variables))
	for key, v := range renderCtx.Variables {
		if s, ok := v.(string); ok {
			out[key] = s
		}
	}
	return out
}

var _ generation.TemplateRenderingStrategy = DefaultRenderer{}
