// Package application implements the use-case layer (C12): validated
// request/response DTOs and the GenerateServer/GenerateClient use cases
// that wire protocol handling, OpenAPI loading, generation, and output
// writing into one call each.
package application

import (
	"encoding/json"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// GenerateServerRequest asks for an MCP (or future protocol) server
// implementation to be generated from an OpenAPI document.
type GenerateServerRequest struct {
	Protocol    proto.Protocol
	Language    proto.Language
	ProjectName string
	SchemaPath  string // empty when the protocol/role doesn't require OpenAPI
	OutputDir   string
	Options     map[string]json.RawMessage
}

func (r GenerateServerRequest) Validate() error {
	if r.ProjectName == "" {
		return generation.New(generation.KindValidation, "project name cannot be empty")
	}
	if err := proto.ValidateRole(r.Protocol, proto.Server); err != nil {
		return generation.Wrap(generation.KindUnsupportedRole, err, "protocol %s does not support role server", r.Protocol)
	}
	if proto.CapabilitiesFor(r.Protocol).RequiresOpenAPI && r.SchemaPath == "" {
		return generation.New(generation.KindValidation, "%s server requires an OpenAPI schema path", r.Protocol)
	}
	if err := generation.ValidateProjectName(r.ProjectName); err != nil {
		return err
	}
	return nil
}

// GenerateServerResponse summarizes a completed server generation.
type GenerateServerResponse struct {
	ArtifactsCount int
	OutputPath     string
	Metadata       generation.GenerationMetadata
}

// GenerateClientRequest asks for a client implementation; clients never
// require an OpenAPI document.
type GenerateClientRequest struct {
	Protocol    proto.Protocol
	Language    proto.Language
	ProjectName string
	OutputDir   string
	Options     map[string]json.RawMessage
}

func (r GenerateClientRequest) Validate() error {
	if r.ProjectName == "" {
		return generation.New(generation.KindValidation, "project name cannot be empty")
	}
	if err := proto.ValidateRole(r.Protocol, proto.Client); err != nil {
		return generation.Wrap(generation.KindUnsupportedRole, err, "protocol %s does not support role client", r.Protocol)
	}
	if err := generation.ValidateProjectName(r.ProjectName); err != nil {
		return err
	}
	return nil
}

// GenerateClientResponse summarizes a completed client generation.
type GenerateClientResponse struct {
	ArtifactsCount int
	OutputPath     string
	Metadata       generation.GenerationMetadata
}
