// Package generation is the core domain: the types that flow through
// the pipeline (OpenApiSpec, GenerationContext, RenderContext,
// Artifact), the error taxonomy, the business rules, the ports the
// orchestrator composes, and the orchestrator itself.
package generation

import (
	"encoding/json"

	"github.com/clafollett/agenterra-go/internal/proto"
)

// Artifact is a single file-to-be-written produced by the pipeline.
// Permissions is nil until a post-processor assigns POSIX mode bits.
type Artifact struct {
	Path        string
	Content     string
	Permissions *uint32
	PostCommands []string
}

// GenerationResult is what the orchestrator returns: the artifacts it
// produced plus the metadata that seeded the run.
type GenerationResult struct {
	Artifacts []Artifact
	Metadata  GenerationMetadata
}

// Operation is one HTTP method on one path in an OpenAPI document, the
// unit of per-endpoint code generation.
type Operation struct {
	ID               string
	Path             string
	Method           string
	Tags             []string
	Summary          string
	Description      string
	ExternalDocs     json.RawMessage
	Parameters       []Parameter
	RequestBody      *RequestBody
	Responses        []Response
	Callbacks        json.RawMessage
	Deprecated       bool
	Security         []json.RawMessage
	Servers          []json.RawMessage
	VendorExtensions map[string]json.RawMessage
}

// Parameter is one OpenAPI operation parameter.
type Parameter struct {
	Name        string
	Location    proto.ParameterLocation
	Required    bool
	Schema      Schema
	Description string
}

// RequestBody is an OpenAPI operation's request body.
type RequestBody struct {
	Required    bool
	Content     json.RawMessage
	Description string
}

// Response is one entry of an OpenAPI operation's responses map.
type Response struct {
	StatusCode  string
	Description string
	Content     json.RawMessage
}

// Schema is a (possibly partial) OpenAPI schema. Deeper structure is
// kept as raw JSON since templates address it by pointer rather than by
// a fully typed tree.
type Schema struct {
	Type       string
	Format     string
	Items      *Schema
	Properties json.RawMessage
	Required   []string
}

// OpenApiSpec is the typed intermediate the parser produces.
type OpenApiSpec struct {
	Version    string
	Info       ApiInfo
	Servers    []Server
	Operations []Operation
	Components *Components
}

// ApiInfo is an OpenAPI document's info object.
type ApiInfo struct {
	Title       string
	Version     string
	Description string
}

// Server is one entry of an OpenAPI document's servers array.
type Server struct {
	URL         string
	Description string
}

// Components is an OpenAPI document's components section; only schemas
// are carried since that is all the pipeline needs today.
type Components struct {
	Schemas json.RawMessage
}

// ProtocolContext is the sum type of protocol-specific data attached to
// a GenerationContext. Only McpServer is populated today; the pointer
// is nil for every other case (including MCP client, which needs no
// OpenAPI data).
type ProtocolContext struct {
	McpServer *McpServerContext
}

// McpServerContext carries the OpenAPI document and its pre-extracted
// operation list for the MCP server renderer.
type McpServerContext struct {
	OpenAPISpec OpenApiSpec
	Endpoints   []Operation
}
