package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clafollett/agenterra-go/internal/application"
	"github.com/clafollett/agenterra-go/internal/logging"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// generateFlags holds the flag values shared by "generate server" and
// "generate client", following the teacher's pattern of binding flags
// straight into a command-local struct rather than threading them
// through individual closures.
type generateFlags struct {
	protocol    string
	language    string
	projectName string
	outputDir   string
	schemaPath  string
	options     []string
}

func (f generateFlags) parsedOptions() (map[string]json.RawMessage, error) {
	if len(f.options) == 0 {
		return nil, nil
	}
	opts := make(map[string]json.RawMessage, len(f.options))
	for _, kv := range f.options {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --option %q, expected key=value", kv)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode --option %q: %w", kv, err)
		}
		opts[key] = encoded
	}
	return opts, nil
}

func (c *CLI) newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a server or client project from an OpenAPI document",
	}
	cmd.AddCommand(c.newGenerateServerCommand(), c.newGenerateClientCommand())
	return cmd
}

func (c *CLI) newGenerateServerCommand() *cobra.Command {
	flags := generateFlags{
		protocol: c.cfg.Generation.DefaultProtocol,
		language: c.cfg.Generation.DefaultLanguage,
	}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Generate an MCP server project from an OpenAPI document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.parsedOptions()
			if err != nil {
				return err
			}

			protocol, err := proto.ParseProtocol(flags.protocol)
			if err != nil {
				return err
			}
			language, err := proto.ParseLanguage(flags.language)
			if err != nil {
				return err
			}

			outputDir := flags.outputDir
			if outputDir == "" {
				outputDir = c.cfg.CLI.DefaultOutputDir
			}

			runCtx := logging.WithTraceID(cmd.Context(), "")
			runLogger := c.logger.WithTraceID(logging.GetTraceID(runCtx))
			runLogger.InfoContext(runCtx, "generating server project", "protocol", protocol.String(), "language", language.String(), "project", flags.projectName)

			resp, err := c.genServer.Execute(runCtx, application.GenerateServerRequest{
				Protocol:    protocol,
				Language:    language,
				ProjectName: flags.projectName,
				SchemaPath:  flags.schemaPath,
				OutputDir:   outputDir,
				Options:     opts,
			})
			if err != nil {
				runLogger.ErrorContext(runCtx, "server generation failed", "project", flags.projectName, "error", err)
				return err
			}

			c.printSuccess("generated %d file(s) for %s in %s", resp.ArtifactsCount, resp.Metadata.ProjectName, resp.OutputPath)
			return nil
		},
	}

	bindGenerateFlags(cmd, &flags, true)
	return cmd
}

func (c *CLI) newGenerateClientCommand() *cobra.Command {
	flags := generateFlags{
		protocol: c.cfg.Generation.DefaultProtocol,
		language: c.cfg.Generation.DefaultLanguage,
	}

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Generate an MCP client project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.parsedOptions()
			if err != nil {
				return err
			}

			protocol, err := proto.ParseProtocol(flags.protocol)
			if err != nil {
				return err
			}
			language, err := proto.ParseLanguage(flags.language)
			if err != nil {
				return err
			}

			outputDir := flags.outputDir
			if outputDir == "" {
				outputDir = c.cfg.CLI.DefaultOutputDir
			}

			runCtx := logging.WithTraceID(cmd.Context(), "")
			runLogger := c.logger.WithTraceID(logging.GetTraceID(runCtx))
			runLogger.InfoContext(runCtx, "generating client project", "protocol", protocol.String(), "language", language.String(), "project", flags.projectName)

			resp, err := c.genClient.Execute(runCtx, application.GenerateClientRequest{
				Protocol:    protocol,
				Language:    language,
				ProjectName: flags.projectName,
				OutputDir:   outputDir,
				Options:     opts,
			})
			if err != nil {
				runLogger.ErrorContext(runCtx, "client generation failed", "project", flags.projectName, "error", err)
				return err
			}

			c.printSuccess("generated %d file(s) for %s in %s", resp.ArtifactsCount, resp.Metadata.ProjectName, resp.OutputPath)
			return nil
		},
	}

	bindGenerateFlags(cmd, &flags, false)
	return cmd
}

func bindGenerateFlags(cmd *cobra.Command, flags *generateFlags, withSchema bool) {
	cmd.Flags().StringVar(&flags.protocol, "protocol", flags.protocol, "target protocol (mcp, acp, a2a, anp)")
	cmd.Flags().StringVar(&flags.language, "language", flags.language, "target language (rust, python, typescript)")
	cmd.Flags().StringVar(&flags.projectName, "project-name", "", "generated project name (required)")
	cmd.Flags().StringVar(&flags.outputDir, "output", "", "output directory (defaults to the configured default)")
	cmd.Flags().StringArrayVar(&flags.options, "option", nil, "extra template variable as key=value, may be repeated")
	_ = cmd.MarkFlagRequired("project-name")

	if withSchema {
		cmd.Flags().StringVar(&flags.schemaPath, "schema", "", "path or URL to the OpenAPI document (required)")
		_ = cmd.MarkFlagRequired("schema")
	}
}
