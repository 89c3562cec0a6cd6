package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clafollett/agenterra-go/internal/templates"
)

// newInfoCommand prints a bundle's manifest description, preferring
// the manifest's own text and falling back to a generated one-liner
// when the manifest leaves it blank.
func (c *CLI) newInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <protocol>/<role>/<language>",
		Short: "Show a template bundle's manifest description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundlePath := args[0]

			repo := templates.Repository(templates.NewBundledRepository())
			if c.cfg.CLI.TemplateDir != "" {
				fsRepo, err := templates.NewFilesystemRepository(c.cfg.CLI.TemplateDir)
				if err != nil {
					return err
				}
				repo = fsRepo
			}

			md, err := repo.GetTemplate(bundlePath)
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}

			description := md.Description
			if description == "" {
				description = fmt.Sprintf("%s template bundle for %s/%s", md.Name, md.Protocol, md.Role)
			}

			fmt.Printf("%s (%s/%s/%s)\n", md.Name, md.Protocol, md.Role, md.Language)
			fmt.Println(description)
			return nil
		},
	}

	return cmd
}
