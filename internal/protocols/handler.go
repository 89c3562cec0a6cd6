// Package protocols holds the protocol handler registry (C7): the
// process-wide map from Protocol to the Handler that knows how to turn
// a ProtocolInput into a generation.GenerationContext.
package protocols

import (
	"context"
	"encoding/json"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// Config is the user-supplied configuration a Handler validates and
// seeds into the GenerationContext it builds.
type Config struct {
	ProjectName string
	Version     string
	Options     map[string]json.RawMessage
}

// Input is everything a Handler needs to prepare a generation context.
type Input struct {
	OpenAPISpec *generation.OpenApiSpec
	Config      Config
	Role        proto.Role
	Language    proto.Language
}

// Handler adapts one protocol's rules into a GenerationContext builder.
type Handler interface {
	Protocol() proto.Protocol
	PrepareContext(ctx context.Context, input Input) (*generation.GenerationContext, error)
	ValidateConfiguration(config Config) error
}
