// Package postprocess implements the post-render artifact pipeline
// (C10): permission assignment and post-generation hook execution, run
// in that fixed order via Composite.
package postprocess

import (
	"context"
	"strings"

	"github.com/clafollett/agenterra-go/internal/generation"
)

const executablePermissions = 0o755

// Permissions marks an artifact executable (0o755) when
// generation.GetArtifactPermissions' language-aware extension rule
// applies, or its content opens with a shebang line.
type Permissions struct{}

func (Permissions) Process(_ context.Context, artifacts []generation.Artifact, genCtx *generation.GenerationContext, _ []string) ([]generation.Artifact, error) {
	for i := range artifacts {
		a := &artifacts[i]

		if perm := generation.GetArtifactPermissions(a.Path, genCtx.Language); perm != nil {
			a.Permissions = perm
			continue
		}
		if strings.HasPrefix(a.Content, "#!") {
			perm := uint32(executablePermissions)
			a.Permissions = &perm
		}
	}

	return artifacts, nil
}

var _ generation.PostProcessor = Permissions{}
