// Package pipeline wires the real discovery, context, render, and
// post-processing adapters together and exercises them end to end
// against the bundled Rust server template, the way cmd/agenterra does.
package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appcontext "github.com/clafollett/agenterra-go/internal/context"
	"github.com/clafollett/agenterra-go/internal/discovery"
	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/logging"
	"github.com/clafollett/agenterra-go/internal/output"
	"github.com/clafollett/agenterra-go/internal/postprocess"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/protocols"
	"github.com/clafollett/agenterra-go/internal/render"
	"github.com/clafollett/agenterra-go/internal/shell"
	"github.com/clafollett/agenterra-go/internal/templates"
)

func petstoreSpec() generation.OpenApiSpec {
	responseContent, _ := json.Marshal(map[string]any{
		"application/json": map[string]any{
			"schema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer"},
					"name": map[string]any{"type": "string"},
				},
			},
		},
	})

	return generation.OpenApiSpec{
		Version: "3.0.3",
		Info:    generation.ApiInfo{Title: "Petstore", Version: "1.0.0", Description: "A sample pet store"},
		Servers: []generation.Server{{URL: "https://petstore.example.com/v1"}},
		Operations: []generation.Operation{
			{
				ID:      "get_pet_by_id",
				Path:    "/pets/{id}",
				Method:  "GET",
				Summary: "Get a pet by ID",
				Parameters: []generation.Parameter{
					{Name: "id", Location: proto.InPath, Required: true, Schema: generation.Schema{Type: "integer"}},
				},
				Responses: []generation.Response{
					{StatusCode: "200", Description: "the requested pet", Content: responseContent},
				},
			},
		},
	}
}

func buildOrchestrator() *generation.Orchestrator {
	repo := templates.NewBundledRepository()
	return generation.NewOrchestrator(
		discovery.NewAdapter(repo),
		appcontext.NewRegistryWithDefaults(),
		render.Selector{},
		postprocess.NewComposite(postprocess.Permissions{}, postprocess.NewHooks(shell.NewCommandExecutor(), "", logging.NewNoOpLogger())),
	)
}

func TestOrchestratorGeneratesRustMcpServerFromOpenAPISpec(t *testing.T) {
	spec := petstoreSpec()
	handler := protocols.NewMcpHandler()

	genCtx, err := handler.PrepareContext(context.Background(), protocols.Input{
		OpenAPISpec: &spec,
		Config:      protocols.Config{ProjectName: "petstore-server", Version: "0.1.0"},
		Role:        proto.Server,
		Language:    proto.Rust,
	})
	if err != nil {
		t.Fatalf("PrepareContext: %v", err)
	}

	result, err := buildOrchestrator().Generate(context.Background(), genCtx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	byPath := make(map[string]generation.Artifact, len(result.Artifacts))
	for _, a := range result.Artifacts {
		byPath[a.Path] = a
	}

	for _, want := range []string{"Cargo.toml", "src/main.rs", "src/handlers/mod.rs", "README.md", ".gitignore"} {
		if _, ok := byPath[want]; !ok {
			t.Errorf("expected artifact %q, got paths %v", want, artifactPaths(result.Artifacts))
		}
	}

	handlerArtifact, ok := byPath["src/handlers/get_pet_by_id.rs"]
	if !ok {
		t.Fatalf("expected per-endpoint handler src/handlers/get_pet_by_id.rs, got paths %v", artifactPaths(result.Artifacts))
	}
	if !strings.Contains(handlerArtifact.Content, "pub fn get_pet_by_id") {
		t.Errorf("handler content missing generated function:\n%s", handlerArtifact.Content)
	}
	if !strings.Contains(handlerArtifact.Content, "pub id: i32") {
		t.Errorf("handler content missing mapped response field:\n%s", handlerArtifact.Content)
	}

	schemaArtifact, ok := byPath["schemas/get_pet_by_id.json"]
	if !ok {
		t.Fatalf("expected schema sidecar schemas/get_pet_by_id.json, got paths %v", artifactPaths(result.Artifacts))
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(schemaArtifact.Content), &schema); err != nil {
		t.Errorf("schema sidecar is not valid JSON: %v", err)
	}
	if schema["path"] != "/pets/{id}" {
		t.Errorf("schema sidecar path = %v, want /pets/{id}", schema["path"])
	}

	cargoToml := byPath["Cargo.toml"]
	if !strings.Contains(cargoToml.Content, "petstore_server") && !strings.Contains(cargoToml.Content, "petstore-server") {
		t.Errorf("Cargo.toml missing derived crate/project name:\n%s", cargoToml.Content)
	}
}

func TestOrchestratorWritesGeneratedArtifactsToDisk(t *testing.T) {
	spec := petstoreSpec()
	handler := protocols.NewMcpHandler()

	genCtx, err := handler.PrepareContext(context.Background(), protocols.Input{
		OpenAPISpec: &spec,
		Config:      protocols.Config{ProjectName: "petstore-server", Version: "0.1.0"},
		Role:        proto.Server,
		Language:    proto.Rust,
	})
	if err != nil {
		t.Fatalf("PrepareContext: %v", err)
	}

	result, err := buildOrchestrator().Generate(context.Background(), genCtx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	outDir := t.TempDir()
	svc := output.NewFilesystemService()
	if err := svc.EnsureDirectory(context.Background(), outDir); err != nil {
		t.Fatalf("EnsureDirectory: %v", err)
	}

	rooted := make([]generation.Artifact, len(result.Artifacts))
	for i, a := range result.Artifacts {
		rooted[i] = a
		rooted[i].Path = filepath.Join(outDir, a.Path)
	}
	if err := svc.WriteArtifacts(context.Background(), rooted); err != nil {
		t.Fatalf("WriteArtifacts: %v", err)
	}

	mainRS := filepath.Join(outDir, "src", "main.rs")
	if _, err := os.Stat(mainRS); err != nil {
		t.Errorf("expected %s to exist on disk: %v", mainRS, err)
	}
	handlerRS := filepath.Join(outDir, "src", "handlers", "get_pet_by_id.rs")
	if _, err := os.Stat(handlerRS); err != nil {
		t.Errorf("expected %s to exist on disk: %v", handlerRS, err)
	}
}

func TestOrchestratorGeneratesRustMcpClient(t *testing.T) {
	handler := protocols.NewMcpHandler()

	genCtx, err := handler.PrepareContext(context.Background(), protocols.Input{
		Config:   protocols.Config{ProjectName: "petstore-client", Version: "0.1.0"},
		Role:     proto.Client,
		Language: proto.Rust,
	})
	if err != nil {
		t.Fatalf("PrepareContext: %v", err)
	}

	result, err := buildOrchestrator().Generate(context.Background(), genCtx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	byPath := make(map[string]bool, len(result.Artifacts))
	for _, a := range result.Artifacts {
		byPath[a.Path] = true
	}
	for _, want := range []string{"Cargo.toml", "src/main.rs", "README.md", ".gitignore"} {
		if !byPath[want] {
			t.Errorf("expected client artifact %q, got paths %v", want, artifactPaths(result.Artifacts))
		}
	}
}

func artifactPaths(artifacts []generation.Artifact) []string {
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path
	}
	return paths
}
