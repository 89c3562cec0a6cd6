// Package cli implements agenterra's cobra command tree: generate
// server/client, validate, and serve, wired against the application
// use-case layer rather than talking to the generation pipeline
// directly.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/clafollett/agenterra-go/internal/application"
	"github.com/clafollett/agenterra-go/internal/config"
	"github.com/clafollett/agenterra-go/internal/logging"
)

// CLI wraps the root cobra command together with the use cases and
// config it dispatches flags into, mirroring the teacher's CLI struct
// shape.
type CLI struct {
	RootCmd *cobra.Command

	cfg       *config.Config
	logger    logging.Logger
	genServer *application.GenerateServerUseCase
	genClient *application.GenerateClientUseCase
	noColor   bool
}

// New builds the full agenterra command tree.
func New(cfg *config.Config, logger logging.Logger, genServer *application.GenerateServerUseCase, genClient *application.GenerateClientUseCase) *CLI {
	c := &CLI{
		cfg:       cfg,
		logger:    logger,
		genServer: genServer,
		genClient: genClient,
	}
	c.setupRootCommand()
	c.setupCommands()
	return c
}

func (c *CLI) setupRootCommand() {
	c.RootCmd = &cobra.Command{
		Use:   "agenterra",
		Short: "Generate MCP server and client projects from an OpenAPI document",
		Long: `agenterra turns an OpenAPI 3.x document plus a (protocol, role, language)
triple into a buildable project: an MCP server scaffolded with one handler
per operation, or a thin MCP client, in the target language's own idiom.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.noColor || c.cfg.CLI.NoColor {
				color.NoColor = true
			}
			return nil
		},
	}

	c.RootCmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable colored output")
}

func (c *CLI) setupCommands() {
	c.RootCmd.AddCommand(
		c.newGenerateCommand(),
		c.newValidateCommand(),
		c.newServeCommand(),
		c.newInfoCommand(),
	)
}

// Execute runs the CLI against os.Args.
func (c *CLI) Execute() error {
	return c.RootCmd.Execute()
}

func (c *CLI) printSuccess(format string, args ...any) {
	fmt.Println(color.GreenString(format, args...))
}

func (c *CLI) printWarning(format string, args ...any) {
	fmt.Println(color.YellowString(format, args...))
}
