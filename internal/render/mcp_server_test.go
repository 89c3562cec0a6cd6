package render

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

func mcpContext() *generation.GenerationContext {
	ctx := generation.NewContext(proto.Mcp, proto.Server, proto.Rust)
	ctx.Metadata.ProjectName = "demo"
	return ctx
}

func twoEndpoints() []map[string]any {
	return []map[string]any{
		{"endpoint": "list_pets", "fn_name": "list_pets", "path": "/pets"},
		{"endpoint": "get_pet", "fn_name": "get_pet", "path": "/pets/{id}"},
	}
}

func TestMcpServerRendererRejectsNonServerRole(t *testing.T) {
	ctx := generation.NewContext(proto.Mcp, proto.Client, proto.Rust)
	renderCtx := generation.NewRenderContext()
	_, err := McpServerRenderer{}.Render(context.Background(), bundle(nil, nil), renderCtx, ctx)
	if err == nil {
		t.Fatal("expected error for non-server role")
	}
}

func TestMcpServerRendererFansOutPerEndpoint(t *testing.T) {
	tmpl := bundle(
		[]templates.File{{Path: "op.tera", Content: "fn {{.fn_name}}() {}", FileType: templates.FileType{Kind: templates.FileKindTemplate, ForEach: "endpoint"}}},
		[]templates.ManifestFile{{Source: "op.tera", Target: "src/{endpoint}.rs", FileType: templates.FileType{Kind: templates.FileKindTemplate, ForEach: "endpoint"}}},
	)
	renderCtx := generation.NewRenderContext()
	renderCtx.AddVariable("endpoints", twoEndpoints())

	artifacts, err := McpServerRenderer{}.Render(context.Background(), tmpl, renderCtx, mcpContext())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var perOperation, sidecars int
	for _, a := range artifacts {
		switch {
		case a.Path == "src/list_pets.rs" || a.Path == "src/get_pet.rs":
			perOperation++
		case a.Path == "schemas/list_pets.json" || a.Path == "schemas/get_pet.json":
			sidecars++
		}
	}
	if perOperation != 2 {
		t.Errorf("per-operation artifacts = %d, want 2", perOperation)
	}
	if sidecars != 2 {
		t.Errorf("schema sidecars = %d, want 2", sidecars)
	}
}

func TestMcpServerRendererSchemaSidecarIsValidJSON(t *testing.T) {
	renderCtx := generation.NewRenderContext()
	renderCtx.AddVariable("endpoints", twoEndpoints())

	artifacts, err := McpServerRenderer{}.Render(context.Background(), bundle(nil, nil), renderCtx, mcpContext())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var found bool
	for _, a := range artifacts {
		if a.Path != "schemas/list_pets.json" {
			continue
		}
		found = true
		var decoded map[string]any
		if err := json.Unmarshal([]byte(a.Content), &decoded); err != nil {
			t.Errorf("sidecar content is not valid JSON: %v", err)
		}
	}
	if !found {
		t.Fatal("expected schemas/list_pets.json artifact")
	}
}

func TestMcpServerRendererMissingEndpointsIsRenderError(t *testing.T) {
	tmpl := bundle(
		[]templates.File{{Path: "op.tera", Content: "x", FileType: templates.FileType{Kind: templates.FileKindTemplate, ForEach: "endpoint"}}},
		[]templates.ManifestFile{{Source: "op.tera", Target: "{endpoint}.rs", FileType: templates.FileType{Kind: templates.FileKindTemplate, ForEach: "endpoint"}}},
	)
	renderCtx := generation.NewRenderContext()

	_, err := McpServerRenderer{}.Render(context.Background(), tmpl, renderCtx, mcpContext())
	if err == nil {
		t.Fatal("expected error when endpoints variable is absent")
	}
}

func TestMcpServerRendererEmptyEndpointsYieldsNoArtifacts(t *testing.T) {
	tmpl := bundle(
		[]templates.File{{Path: "op.tera", Content: "x", FileType: templates.FileType{Kind: templates.FileKindTemplate, ForEach: "endpoint"}}},
		[]templates.ManifestFile{{Source: "op.tera", Target: "{endpoint}.rs", FileType: templates.FileType{Kind: templates.FileKindTemplate, ForEach: "endpoint"}}},
	)
	renderCtx := generation.NewRenderContext()
	renderCtx.AddVariable("endpoints", []map[string]any{})

	artifacts, err := McpServerRenderer{}.Render(context.Background(), tmpl, renderCtx, mcpContext())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("artifacts = %d, want 0", len(artifacts))
	}
}
