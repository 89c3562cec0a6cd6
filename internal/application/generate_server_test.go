package application

import (
	"context"
	"testing"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/protocols"
)

func TestGenerateServerUseCaseExecuteSuccess(t *testing.T) {
	reg := protocols.NewRegistry()
	reg.Register(fakeHandler{protocol: proto.Mcp})

	orch := newOrchestrator([]generation.Artifact{
		{Path: "src/main.rs", Content: "fn main() {}"},
		{Path: "Cargo.toml", Content: "[package]"},
	})

	out := &fakeOutput{}
	uc := NewGenerateServerUseCase(reg, fakeOpenAPILoader{spec: &generation.OpenApiSpec{}}, orch, out)

	resp, err := uc.Execute(context.Background(), GenerateServerRequest{
		Protocol:    proto.Mcp,
		Language:    proto.Rust,
		ProjectName: "petstore-server",
		SchemaPath:  "testdata/petstore.yaml",
		OutputDir:   "/tmp/out",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.ArtifactsCount != 2 {
		t.Errorf("ArtifactsCount = %d, want 2", resp.ArtifactsCount)
	}
	if resp.OutputPath != "/tmp/out" {
		t.Errorf("OutputPath = %q", resp.OutputPath)
	}
	if len(out.written) != 2 {
		t.Errorf("written artifacts = %d, want 2", len(out.written))
	}
	if out.written[0].Path != "/tmp/out/src/main.rs" {
		t.Errorf("artifact path not joined with output dir: %q", out.written[0].Path)
	}
	if len(out.ensured) != 1 || out.ensured[0] != "/tmp/out" {
		t.Errorf("EnsureDirectory not called with output dir: %v", out.ensured)
	}
}

func TestGenerateServerUseCaseRejectsInvalidRequest(t *testing.T) {
	reg := protocols.NewRegistry()
	reg.Register(fakeHandler{protocol: proto.Mcp})
	orch := newOrchestrator(nil)
	uc := NewGenerateServerUseCase(reg, fakeOpenAPILoader{}, orch, &fakeOutput{})

	_, err := uc.Execute(context.Background(), GenerateServerRequest{
		Protocol:    proto.Mcp,
		Language:    proto.Rust,
		ProjectName: "petstore-server",
		OutputDir:   "/tmp/out",
	})
	if err == nil {
		t.Fatal("expected error for MCP server request missing schema path")
	}
}

func TestGenerateServerUseCaseUnregisteredProtocol(t *testing.T) {
	reg := protocols.NewRegistry()
	orch := newOrchestrator(nil)
	uc := NewGenerateServerUseCase(reg, fakeOpenAPILoader{}, orch, &fakeOutput{})

	_, err := uc.Execute(context.Background(), GenerateServerRequest{
		Protocol:    proto.Mcp,
		Language:    proto.Rust,
		ProjectName: "petstore-server",
		SchemaPath:  "testdata/petstore.yaml",
		OutputDir:   "/tmp/out",
	})
	if err == nil {
		t.Fatal("expected error for unregistered protocol handler")
	}
}
