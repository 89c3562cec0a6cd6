package protocols

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// McpHandler implements Handler for the Model Context Protocol: the
// only protocol with real generation support today (see
// proto.CapabilitiesFor).
type McpHandler struct{}

// NewMcpHandler returns a ready-to-register MCP handler.
func NewMcpHandler() *McpHandler { return &McpHandler{} }

func (McpHandler) Protocol() proto.Protocol { return proto.Mcp }

// ValidateConfiguration enforces the project-name charset rule and, if
// present, restricts options.transport to the three supported values.
func (McpHandler) ValidateConfiguration(config Config) error {
	if err := generation.ValidateProjectName(config.ProjectName); err != nil {
		return err
	}
	if raw, ok := config.Options["transport"]; ok {
		var transport string
		if err := json.Unmarshal(raw, &transport); err != nil {
			return generation.Wrap(generation.KindInvalidConfiguration, err, "options.transport must be a string")
		}
		switch transport {
		case "stdio", "http", "websocket":
		default:
			return generation.New(generation.KindInvalidConfiguration, "invalid transport type: %s. Must be one of: stdio, http, websocket", transport)
		}
	}
	return nil
}

// PrepareContext builds a GenerationContext for one MCP generation run,
// in six steps: role validation, configuration validation, the server-role
// OpenAPI requirement, language-support enforcement, a fresh context
// seeded with role-specific variables, and finally the caller's own
// options layered on top so they win any conflict.
func (h McpHandler) PrepareContext(_ context.Context, input Input) (*generation.GenerationContext, error) {
	if err := proto.ValidateRole(proto.Mcp, input.Role); err != nil {
		return nil, generation.Wrap(generation.KindUnsupportedRole, err, "invalid role for protocol mcp")
	}

	if err := h.ValidateConfiguration(input.Config); err != nil {
		return nil, err
	}

	if input.Role.Equal(proto.Server) && input.OpenAPISpec == nil {
		return nil, generation.New(generation.KindInvalidConfiguration, "MCP Server role requires an OpenAPI specification")
	}

	if err := generation.ValidateLanguageSupport(proto.Mcp, input.Role, input.Language); err != nil {
		return nil, err
	}

	ctx := generation.NewContext(proto.Mcp, input.Role, input.Language)
	ctx.Metadata.ProjectName = input.Config.ProjectName
	ctx.Metadata.Version = input.Config.Version
	if ctx.Metadata.Version == "" {
		ctx.Metadata.Version = generation.DefaultVersion
	}

	ctx.AddStringVariable("project_name", input.Config.ProjectName)
	ctx.AddStringVariable("version", ctx.Metadata.Version)

	switch {
	case input.Role.Equal(proto.Server):
		ctx.AddBoolVariable("requires_openapi", true)
		ctx.AddStringVariable("transport", "stdio")
		features, _ := json.Marshal(map[string]bool{
			"tools":     true,
			"resources": true,
			"prompts":   true,
			"sampling":  false,
		})
		ctx.AddVariable("features", features)
	case input.Role.Equal(proto.Client):
		ctx.AddBoolVariable("requires_openapi", false)
		ctx.AddStringVariable("transport", "stdio")
		ctx.AddStringVariable("connection_type", "direct")
	default:
		return nil, generation.New(generation.KindUnsupportedRole, "mcp does not support role %s", input.Role)
	}

	if input.OpenAPISpec != nil {
		spec := *input.OpenAPISpec
		ctx.AddStringVariable("api_title", spec.Info.Title)
		ctx.AddStringVariable("api_version", spec.Info.Version)
		if spec.Info.Description != "" {
			ctx.AddStringVariable("api_description", spec.Info.Description)
		}

		if len(spec.Servers) > 0 {
			serverURL := spec.Servers[0].URL
			if isRelativeURL(serverURL) {
				raw, ok := input.Config.Options["base_api_url"]
				if !ok {
					return nil, generation.New(generation.KindInvalidConfiguration, "OpenAPI server URL %q is relative; options.base_api_url is required", serverURL)
				}
				ctx.AddVariable("base_api_url", raw)
			} else {
				ctx.AddStringVariable("base_api_url", serverURL)
			}
		}

		ctx.ProtocolContext = &generation.ProtocolContext{
			McpServer: &generation.McpServerContext{
				OpenAPISpec: spec,
				Endpoints:   spec.Operations,
			},
		}
	}

	for key, value := range input.Config.Options {
		ctx.AddVariable(key, value)
	}

	return ctx, nil
}

func isRelativeURL(url string) bool {
	return !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://")
}
