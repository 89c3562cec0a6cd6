package context

import (
	"context"
	"testing"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

func TestTypeScriptContextBuilder(t *testing.T) {
	genCtx := generation.NewContext(proto.Mcp, proto.Server, proto.TypeScript)
	genCtx.Metadata.ProjectName = "pet_store"
	genCtx.ProtocolContext = &generation.ProtocolContext{
		McpServer: &generation.McpServerContext{
			Endpoints: []generation.Operation{
				{ID: "list_pets", Path: "/pets", Method: "get"},
			},
		},
	}

	rc, err := TypeScriptBuilder{}.Build(context.Background(), genCtx, blankTemplate(proto.TypeScript))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rc.Variables["package_name"] != "pet-store" {
		t.Errorf("package_name = %v, want pet-store", rc.Variables["package_name"])
	}
	if rc.Variables["variable_name"] != "petStore" {
		t.Errorf("variable_name = %v, want petStore", rc.Variables["variable_name"])
	}

	endpoints, ok := rc.Variables["endpoints"].([]map[string]any)
	if !ok || len(endpoints) != 1 {
		t.Fatalf("endpoints = %#v", rc.Variables["endpoints"])
	}
	if endpoints[0]["method_name"] != "listPets" {
		t.Errorf("method_name = %v, want listPets", endpoints[0]["method_name"])
	}
}

func TestTypeScriptParametersMapSchemaTypes(t *testing.T) {
	op := generation.Operation{
		ID:   "update_pet",
		Path: "/pets/{id}",
		Parameters: []generation.Parameter{
			{Name: "id", Location: proto.InPath, Required: true, Schema: generation.Schema{Type: "integer"}},
			{Name: "tags", Location: proto.InQuery, Schema: generation.Schema{Type: "array", Items: &generation.Schema{Type: "string"}}},
			{Name: "active", Location: proto.InQuery, Schema: generation.Schema{Type: "boolean"}},
		},
	}

	params := typescriptParameters(op)
	want := map[string]string{"id": "number", "tags": "string[]", "active": "boolean"}
	if len(params) != len(want) {
		t.Fatalf("got %d parameters, want %d", len(params), len(want))
	}
	for _, p := range params {
		name := p["original_name"].(string)
		if p["type"] != want[name] {
			t.Errorf("parameter %q type = %v, want %v", name, p["type"], want[name])
		}
	}
}

func TestTypeScriptContextBuilderWrongLanguage(t *testing.T) {
	genCtx := generation.NewContext(proto.Mcp, proto.Server, proto.Rust)
	genCtx.Metadata.ProjectName = "demo"

	_, err := TypeScriptBuilder{}.Build(context.Background(), genCtx, blankTemplate(proto.Rust))
	if err == nil {
		t.Fatal("expected error for mismatched language")
	}
}

func TestMapJSONSchemaToTypeScriptType(t *testing.T) {
	cases := []struct {
		schema map[string]any
		want   string
	}{
		{map[string]any{"type": "string"}, "string"},
		{map[string]any{"type": "integer"}, "number"},
		{map[string]any{"type": "boolean"}, "boolean"},
		{map[string]any{"type": "array", "items": map[string]any{"type": "string"}}, "string[]"},
		{map[string]any{"type": "object"}, "Record<string, any>"},
		{nil, "any"},
	}
	for _, tc := range cases {
		if got := mapJSONSchemaToTypeScriptType(tc.schema); got != tc.want {
			t.Errorf("mapJSONSchemaToTypeScriptType(%#v) = %q, want %q", tc.schema, got, tc.want)
		}
	}
}
