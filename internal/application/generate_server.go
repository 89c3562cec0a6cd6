package application

import (
	"context"
	"path/filepath"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/output"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/protocols"
)

// GenerateServerUseCase wires protocol handling, OpenAPI loading, the
// generation orchestrator, and artifact output into one call.
type GenerateServerUseCase struct {
	Protocols    *protocols.Registry
	OpenAPI      generation.OpenApiLoader
	Orchestrator *generation.Orchestrator
	Output       output.Service
}

func NewGenerateServerUseCase(reg *protocols.Registry, loader generation.OpenApiLoader, orch *generation.Orchestrator, out output.Service) *GenerateServerUseCase {
	return &GenerateServerUseCase{Protocols: reg, OpenAPI: loader, Orchestrator: orch, Output: out}
}

func (uc *GenerateServerUseCase) Execute(ctx context.Context, req GenerateServerRequest) (*GenerateServerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	handler, err := uc.Protocols.Get(req.Protocol)
	if err != nil {
		return nil, err
	}

	var spec *generation.OpenApiSpec
	if req.SchemaPath != "" {
		spec, err = uc.OpenAPI.Load(ctx, req.SchemaPath)
		if err != nil {
			return nil, err
		}
	}

	genCtx, err := handler.PrepareContext(ctx, protocols.Input{
		OpenAPISpec: spec,
		Config: protocols.Config{
			ProjectName: req.ProjectName,
			Options:     req.Options,
		},
		Role:     proto.Server,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}

	result, err := uc.Orchestrator.Generate(ctx, genCtx)
	if err != nil {
		return nil, err
	}

	if err := uc.Output.EnsureDirectory(ctx, req.OutputDir); err != nil {
		return nil, err
	}

	artifacts := make([]generation.Artifact, len(result.Artifacts))
	for i, a := range result.Artifacts {
		a.Path = filepath.Join(req.OutputDir, a.Path)
		artifacts[i] = a
	}

	if err := uc.Output.WriteArtifacts(ctx, artifacts); err != nil {
		return nil, err
	}

	return &GenerateServerResponse{
		ArtifactsCount: len(artifacts),
		OutputPath:     req.OutputDir,
		Metadata:       result.Metadata,
	}, nil
}
