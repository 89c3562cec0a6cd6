// Package context builds the per-language RenderContext a template
// bundle is rendered against, one builder per supported Language,
// behind a Registry keyed by proto.Language (C8).
package context

import (
	"encoding/json"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/templates"
)

func addBaseVariables(rc *generation.RenderContext, genCtx *generation.GenerationContext, language string) {
	rc.AddVariable("project_name", genCtx.Metadata.ProjectName)
	rc.AddVariable("version", genCtx.Metadata.Version)
	rc.AddVariable("description", genCtx.Metadata.Description)
	rc.AddVariable("protocol", genCtx.Protocol.String())
	rc.AddVariable("role", genCtx.Role.String())
	rc.AddVariable("language", language)
}

// endpointsOf reads the operation list a protocol handler attached to
// the context. Only an MCP server context carries endpoints today; an
// MCP client context (or any protocol with no OpenAPI document) yields
// none, and templates address an empty "endpoints" list instead.
func endpointsOf(genCtx *generation.GenerationContext) []generation.Operation {
	if genCtx.ProtocolContext == nil || genCtx.ProtocolContext.McpServer == nil {
		return nil
	}
	return genCtx.ProtocolContext.McpServer.Endpoints
}

// mergeUserVariables layers the context's own variables over the base
// ones (always overwriting), then the template manifest's declared
// variables (only where the context hasn't already set the key), then
// stamps the template's own identity last.
func mergeUserVariables(rc *generation.RenderContext, genCtx *generation.GenerationContext, tmpl *templates.Template) {
	for key, raw := range genCtx.Variables {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		rc.AddVariable(key, v)
	}

	for key, v := range tmpl.Manifest.Variables {
		if !rc.HasVariable(key) {
			rc.AddVariable(key, v)
		}
	}

	rc.AddVariable("template_name", tmpl.Manifest.Name)
	rc.AddVariable("template_version", tmpl.Manifest.Version)
	if tmpl.Manifest.Description != "" {
		rc.AddVariable("template_description", tmpl.Manifest.Description)
	}
}

// addOpenAPIVariables seeds the api_* variables every non-Rust builder
// exposes when the context carries an MCP server's OpenAPI document
// (the Rust builder's endpoint list covers the same data per-endpoint,
// so it does not duplicate these top-level variables).
func addOpenAPIVariables(rc *generation.RenderContext, genCtx *generation.GenerationContext) {
	mcp := genCtx.ProtocolContext
	if mcp == nil || mcp.McpServer == nil {
		return
	}
	spec := mcp.McpServer.OpenAPISpec

	rc.AddVariable("api_version", spec.Version)
	rc.AddVariable("api_title", spec.Info.Title)
	rc.AddVariable("api_info_version", spec.Info.Version)
	if spec.Info.Description != "" {
		rc.AddVariable("api_description", spec.Info.Description)
	}
	if len(spec.Servers) > 0 {
		rc.AddVariable("api_base_url", spec.Servers[0].URL)
		servers := make([]map[string]any, 0, len(spec.Servers))
		for _, s := range spec.Servers {
			servers = append(servers, map[string]any{"url": s.URL, "description": s.Description})
		}
		rc.AddVariable("api_servers", servers)
	}
	if spec.Components != nil {
		var schemas any
		if err := json.Unmarshal(spec.Components.Schemas, &schemas); err == nil {
			rc.AddVariable("api_components", schemas)
		}
	}
}
