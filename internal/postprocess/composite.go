package postprocess

import (
	"context"

	"github.com/clafollett/agenterra-go/internal/generation"
)

// Composite runs its processors in sequence, feeding each one's output
// artifacts into the next. cmd/agenterra wires Permissions before
// Hooks so a hook can rely on scripts already being executable.
type Composite struct {
	Processors []generation.PostProcessor
}

func NewComposite(processors ...generation.PostProcessor) Composite {
	return Composite{Processors: processors}
}

func (c Composite) Process(ctx context.Context, artifacts []generation.Artifact, genCtx *generation.GenerationContext, postGenerateHooks []string) ([]generation.Artifact, error) {
	var err error
	for _, p := range c.Processors {
		artifacts, err = p.Process(ctx, artifacts, genCtx, postGenerateHooks)
		if err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

var _ generation.PostProcessor = Composite{}
