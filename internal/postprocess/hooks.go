package postprocess

import (
	"context"
	"strings"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/logging"
	"github.com/clafollett/agenterra-go/internal/shell"
)

// Hooks runs a template's post_generate_hooks commands in the output
// directory via the shell port. A failing command is logged with its
// stdout/stderr but never aborts generation: the current policy is
// non-fatal, logged-as-error hook failures.
type Hooks struct {
	Executor  shell.Executor
	OutputDir string
	Logger    logging.Logger
}

func NewHooks(executor shell.Executor, outputDir string, logger logging.Logger) Hooks {
	return Hooks{Executor: executor, OutputDir: outputDir, Logger: logger}
}

func (h Hooks) Process(ctx context.Context, artifacts []generation.Artifact, genCtx *generation.GenerationContext, postGenerateHooks []string) ([]generation.Artifact, error) {
	for _, command := range postGenerateHooks {
		result, err := h.Executor.Execute(ctx, command, h.dir())
		if err != nil {
			h.log().Error("post-generation command failed to start", "project_name", genCtx.Metadata.ProjectName, "command", command, "error", err)
			continue
		}

		if result.Success() {
			if strings.TrimSpace(result.Stdout) != "" {
				h.log().Debug("post-generation command output", "project_name", genCtx.Metadata.ProjectName, "command", command, "output", strings.TrimSpace(result.Stdout))
			}
			continue
		}

		h.log().Error("post-generation command failed", "project_name", genCtx.Metadata.ProjectName, "command", command, "exit_code", result.ExitCode, "stderr", result.Stderr)
	}

	return artifacts, nil
}

func (h Hooks) dir() string {
	if h.OutputDir == "" {
		return "."
	}
	return h.OutputDir
}

func (h Hooks) log() logging.Logger {
	if h.Logger == nil {
		return logging.NewNoOpLogger()
	}
	return h.Logger
}

var _ generation.PostProcessor = Hooks{}
