package render

import (
	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// Selector picks McpServerRenderer for the MCP server role and
// DefaultRenderer for everything else.
type Selector struct{}

func (Selector) Select(protocol proto.Protocol, role proto.Role) (generation.TemplateRenderingStrategy, error) {
	if protocol == proto.Mcp && role.Equal(proto.Server) {
		return McpServerRenderer{}, nil
	}
	return DefaultRenderer{}, nil
}

var _ generation.RendererSelector = Selector{}
