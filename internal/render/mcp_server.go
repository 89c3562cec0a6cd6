package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/ident"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// McpServerRenderer fans any manifest file whose for_each is "endpoint"
// or "operation" out once per OpenAPI operation, and additionally emits
// one JSON schema sidecar per operation after the manifest files are
// processed.
type McpServerRenderer struct{}

func (McpServerRenderer) Render(_ context.Context, tmpl *templates.Template, renderCtx *generation.RenderContext, genCtx *generation.GenerationContext) ([]generation.Artifact, error) {
	if genCtx.Protocol != proto.Mcp || !genCtx.Role.Equal(proto.Server) {
		return nil, generation.New(generation.KindInvalidConfiguration, "McpServerRenderer can only be used for MCP servers")
	}

	endpoints, err := endpointObjects(renderCtx)
	if err != nil {
		return nil, err
	}

	contents := fileContents(tmpl)
	var artifacts []generation.Artifact

	for _, mf := range tmpl.Manifest.Files {
		content, ok := contents[mf.Source]
		if !ok {
			return nil, generation.New(generation.KindRender, "template file for manifest entry %q not found", mf.Source)
		}

		switch {
		case isTemplateFile(mf.FileType) && (mf.FileType.ForEach == "endpoint" || mf.FileType.ForEach == "operation"):
			rendered, err := renderPerEndpoint(mf.Source, content, mf.Target, endpoints, renderCtx)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, rendered...)

		case isTemplateFile(mf.FileType) && mf.FileType.ForEach != "":
			return nil, generation.New(generation.KindInvalidConfiguration, "unsupported for_each value: %s", mf.FileType.ForEach)

		case isTemplateFile(mf.FileType):
			body, err := renderBody(mf.Source, content, renderCtx.Variables)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, generation.Artifact{Path: mf.Target, Content: body})

		default:
			artifacts = append(artifacts, generation.Artifact{Path: mf.Target, Content: content})
		}
	}

	schemaArtifacts, err := schemaSidecars(endpoints)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, schemaArtifacts...)

	return artifacts, nil
}

func renderPerEndpoint(source, content, targetTemplate string, endpoints []map[string]any, renderCtx *generation.RenderContext) ([]generation.Artifact, error) {
	artifacts := make([]generation.Artifact, 0, len(endpoints))

	for _, endpoint := range endpoints {
		name, ok := endpointIdentifier(endpoint)
		if !ok {
			return nil, generation.New(generation.KindRender, "endpoint object missing 'endpoint' field")
		}

		data := make(map[string]any, len(renderCtx.Variables)+len(endpoint))
		for k, v := range renderCtx.Variables {
			data[k] = v
		}
		for k, v := range endpoint {
			data[k] = v
		}

		body, err := renderBody(source, content, data)
		if err != nil {
			return nil, generation.Wrap(generation.KindRender, err, "render template %s for endpoint %s", source, name)
		}

		path := substitutePath(targetTemplate, map[string]string{"endpoint": name, "operation_id": name})
		artifacts = append(artifacts, generation.Artifact{Path: path, Content: body})
	}

	return artifacts, nil
}

func schemaSidecars(endpoints []map[string]any) ([]generation.Artifact, error) {
	artifacts := make([]generation.Artifact, 0, len(endpoints))
	for _, endpoint := range endpoints {
		name, ok := endpointIdentifier(endpoint)
		if !ok {
			return nil, generation.New(generation.KindRender, "endpoint object missing 'endpoint' field")
		}

		schemaJSON, err := json.MarshalIndent(endpoint, "", "  ")
		if err != nil {
			return nil, generation.Wrap(generation.KindSerialization, err, "serialize schema for endpoint %s", name)
		}

		artifacts = append(artifacts, generation.Artifact{
			Path:    fmt.Sprintf("schemas/%s.json", ident.ToSnakeCase(name)),
			Content: string(schemaJSON),
		})
	}
	return artifacts, nil
}

// endpointObjects pulls the "endpoints" (falling back to "endpoint")
// variable the context builders set and asserts it to the shape every
// builder produces: a list of string-keyed maps.
func endpointObjects(renderCtx *generation.RenderContext) ([]map[string]any, error) {
	raw, ok := renderCtx.Variables["endpoints"]
	if !ok {
		raw, ok = renderCtx.Variables["endpoint"]
	}
	if !ok {
		return nil, generation.New(generation.KindRender, "no endpoints found in context for operation template")
	}

	endpoints, ok := raw.([]map[string]any)
	if !ok {
		return nil, generation.New(generation.KindRender, "endpoints variable has unexpected shape %T", raw)
	}
	return endpoints, nil
}

var _ generation.TemplateRenderingStrategy = McpServerRenderer{}
