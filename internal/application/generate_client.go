package application

import (
	"context"
	"path/filepath"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/output"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/protocols"
)

// GenerateClientUseCase is GenerateServerUseCase's client-side twin: no
// OpenAPI loading step, since no protocol requires a document to build
// a client.
type GenerateClientUseCase struct {
	Protocols    *protocols.Registry
	Orchestrator *generation.Orchestrator
	Output       output.Service
}

func NewGenerateClientUseCase(reg *protocols.Registry, orch *generation.Orchestrator, out output.Service) *GenerateClientUseCase {
	return &GenerateClientUseCase{Protocols: reg, Orchestrator: orch, Output: out}
}

func (uc *GenerateClientUseCase) Execute(ctx context.Context, req GenerateClientRequest) (*GenerateClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	handler, err := uc.Protocols.Get(req.Protocol)
	if err != nil {
		return nil, err
	}

	genCtx, err := handler.PrepareContext(ctx, protocols.Input{
		Config: protocols.Config{
			ProjectName: req.ProjectName,
			Options:     req.Options,
		},
		Role:     proto.Client,
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

	return &GenerateClientResponse{
		ArtifactsCount: len(artifacts),
		OutputPath:     req.OutputDir,
		Metadata:       result.Metadata,
	}, nil
}
