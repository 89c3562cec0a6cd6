package postprocess

import (
	"context"
	"testing"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/shell"
)

func TestCompositeRunsPermissionsThenHooks(t *testing.T) {
	genCtx := generation.NewContext(proto.Mcp, proto.Server, proto.Python)
	genCtx.Metadata.ProjectName = "demo"

	executor := &fakeExecutor{results: map[string]shell.Result{}}
	composite := NewComposite(Permissions{}, NewHooks(executor, "", nil))

	artifacts := []generation.Artifact{{Path: "script.sh", Content: "#!/bin/bash"}}
	result, err := composite.Process(context.Background(), artifacts, genCtx, []string{"chmod +x script.sh"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if result[0].Permissions == nil || *result[0].Permissions != 0o755 {
		t.Errorf("expected permissions set by Permissions stage, got %v", result[0].Permissions)
	}
	if len(executor.calls) != 1 || executor.calls[0] != "chmod +x script.sh" {
		t.Errorf("expected Hooks stage to run, calls = %v", executor.calls)
	}
}

func TestCompositeShortCircuitsOnError(t *testing.T) {
	genCtx := generation.NewContext(proto.Mcp, proto.Server, proto.Python)
	genCtx.Metadata.ProjectName = "demo"

	composite := NewComposite(failingProcessor{}, Permissions{})
	artifacts := []generation.Artifact{{Path: "main.py", Content: "print()"}}

	if _, err := composite.Process(context.Background(), artifacts, genCtx, nil); err == nil {
		t.Fatal("expected error to short-circuit the chain")
	}
}

type failingProcessor struct{}

func (failingProcessor) Process(context.Context, []generation.Artifact, *generation.GenerationContext, []string) ([]generation.Artifact, error) {
	return nil, generation.New(generation.KindIO, "boom")
}
