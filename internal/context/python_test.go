package context

import (
	"context"
	"testing"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

func TestPythonContextBuilder(t *testing.T) {
	genCtx := generation.NewContext(proto.Mcp, proto.Server, proto.Python)
	genCtx.Metadata.ProjectName = "pet-store"
	genCtx.ProtocolContext = &generation.ProtocolContext{
		McpServer: &generation.McpServerContext{
			Endpoints: []generation.Operation{
				{
					ID: "list_pets", Path: "/pets", Method: "get",
					Parameters: []generation.Parameter{
						{Name: "class", Location: proto.InQuery, Schema: generation.Schema{Type: "string"}},
					},
				},
			},
		},
	}

	rc, err := PythonBuilder{}.Build(context.Background(), genCtx, blankTemplate(proto.Python))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rc.Variables["package_name"] != "pet_store" {
		t.Errorf("package_name = %v, want pet_store", rc.Variables["package_name"])
	}
	if rc.Variables["class_name"] != "PetStore" {
		t.Errorf("class_name = %v, want PetStore", rc.Variables["class_name"])
	}

	endpoints, ok := rc.Variables["endpoints"].([]map[string]any)
	if !ok || len(endpoints) != 1 {
		t.Fatalf("endpoints = %#v", rc.Variables["endpoints"])
	}
	params, ok := endpoints[0]["parameters"].([]map[string]any)
	if !ok || len(params) != 1 {
		t.Fatalf("parameters = %#v", endpoints[0]["parameters"])
	}
	if params[0]["name"] == "class" {
		t.Errorf("expected reserved word %q to be sanitized", "class")
	}
}

func TestPythonContextBuilderWrongLanguage(t *testing.T) {
	genCtx := generation.NewContext(proto.Mcp, proto.Server, proto.Rust)
	genCtx.Metadata.ProjectName = "demo"

	_, err := PythonBuilder{}.Build(context.Background(), genCtx, blankTemplate(proto.Rust))
	if err == nil {
		t.Fatal("expected error for mismatched language")
	}
}
