package generation

import (
	"encoding/json"

	"github.com/clafollett/agenterra-go/internal/proto"
)

// GenerationMetadata is the project-level metadata threaded through a
// generation run and returned unchanged in the GenerationResult.
type GenerationMetadata struct {
	ProjectName string
	Version     string
	Description string
	Author      string
	License     string
	Repository  string
}

// DefaultGenerationMetadata returns metadata with the default version
// agenterra uses for freshly scaffolded projects.
func DefaultGenerationMetadata() GenerationMetadata {
	return GenerationMetadata{Version: DefaultVersion}
}

// GenerationContext is the pipeline's central aggregate: everything
// needed to discover a template, build a render context, and render
// artifacts for one generation run.
type GenerationContext struct {
	Protocol        proto.Protocol
	Role            proto.Role
	Language        proto.Language
	Variables       map[string]json.RawMessage
	Metadata        GenerationMetadata
	ProtocolContext *ProtocolContext
}

// NewContext builds an empty context with default metadata.
func NewContext(protocol proto.Protocol, role proto.Role, language proto.Language) *GenerationContext {
	return &GenerationContext{
		Protocol:  protocol,
		Role:      role,
		Language:  language,
		Variables: map[string]json.RawMessage{},
		Metadata:  DefaultGenerationMetadata(),
	}
}

// AddVariable sets a raw-JSON variable on the context.
func (c *GenerationContext) AddVariable(key string, value json.RawMessage) {
	c.Variables[key] = value
}

// AddStringVariable is a convenience wrapper for the common case of a
// plain string variable.
func (c *GenerationContext) AddStringVariable(key, value string) {
	b, _ := json.Marshal(value)
	c.Variables[key] = b
}

// AddBoolVariable is a convenience wrapper for a boolean variable.
func (c *GenerationContext) AddBoolVariable(key string, value bool) {
	b, _ := json.Marshal(value)
	c.Variables[key] = b
}

// Validate checks the context's own invariants: non-empty project name
// and a legal (protocol, role) pair. Language support and OpenAPI
// presence are validated earlier, by the protocol handler (see rules.go
// and internal/protocols), matching spec.md's layering.
func (c *GenerationContext) Validate() error {
	if c.Metadata.ProjectName == "" {
		return New(KindValidation, "project name is required")
	}
	if err := proto.ValidateRole(c.Protocol, c.Role); err != nil {
		return Wrap(KindValidation, err, "invalid role for protocol")
	}
	return nil
}

// RenderContext is the bag of variables passed to the templating
// engine. Data mirrors Variables as a generic JSON object so templates
// written against either form work identically, matching the Rust
// source's "also add to data for backward compatibility" behavior.
type RenderContext struct {
	Variables map[string]any
	Data      map[string]any
}

// NewRenderContext returns an empty RenderContext.
func NewRenderContext() *RenderContext {
	return &RenderContext{
		Variables: map[string]any{},
		Data:      map[string]any{},
	}
}

// AddVariable sets a variable on both Variables and Data.
func (r *RenderContext) AddVariable(key string, value any) {
	r.Variables[key] = value
	r.Data[key] = value
}

// HasVariable reports whether key has been set.
func (r *RenderContext) HasVariable(key string) bool {
	_, ok := r.Variables[key]
	return ok
}
