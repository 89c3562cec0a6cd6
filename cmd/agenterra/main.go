// Command agenterra generates MCP server and client projects from an
// OpenAPI document.
package main

import (
	"fmt"
	"os"

	"github.com/clafollett/agenterra-go/cli"
	"github.com/clafollett/agenterra-go/internal/application"
	"github.com/clafollett/agenterra-go/internal/config"
	appcontext "github.com/clafollett/agenterra-go/internal/context"
	"github.com/clafollett/agenterra-go/internal/discovery"
	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/logging"
	"github.com/clafollett/agenterra-go/internal/openapi"
	"github.com/clafollett/agenterra-go/internal/output"
	"github.com/clafollett/agenterra-go/internal/postprocess"
	"github.com/clafollett/agenterra-go/internal/protocols"
	"github.com/clafollett/agenterra-go/internal/render"
	"github.com/clafollett/agenterra-go/internal/shell"
	"github.com/clafollett/agenterra-go/internal/templates"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "agenterra:", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLogLevel(cfg.Logging.Level)).WithComponent("cli")

	protocolRegistry := protocols.NewRegistryWithDefaults()

	var repo templates.Repository = templates.NewBundledRepository()
	if cfg.CLI.TemplateDir != "" {
		repo, err = templates.NewFilesystemRepository(cfg.CLI.TemplateDir)
		if err != nil {
			logger.Fatal("failed to load template directory", "dir", cfg.CLI.TemplateDir, "error", err)
		}
	}

	orchestrator := generationOrchestrator(repo, cfg, logger)

	genServer := application.NewGenerateServerUseCase(protocolRegistry, openapi.CompositeLoader{}, orchestrator, output.NewFilesystemService())
	genClient := application.NewGenerateClientUseCase(protocolRegistry, orchestrator, output.NewFilesystemService())

	app := cli.New(cfg, logger, genServer, genClient)
	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "agenterra:", err)
		os.Exit(1)
	}
}

func generationOrchestrator(repo templates.Repository, cfg *config.Config, logger logging.Logger) *generation.Orchestrator {
	hooks := postprocess.NewHooks(shell.NewCommandExecutor(), cfg.CLI.DefaultOutputDir, logger)
	return generation.NewOrchestrator(
		discovery.NewAdapter(repo),
		appcontext.NewRegistryWithDefaults(),
		render.Selector{},
		postprocess.NewComposite(postprocess.Permissions{}, hooks),
	)
}
