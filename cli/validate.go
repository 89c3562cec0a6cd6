package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clafollett/agenterra-go/internal/openapi"
)

func (c *CLI) newValidateCommand() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI document and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := openapi.CompositeLoader{}
			spec, err := loader.Load(cmd.Context(), schemaPath)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			c.printSuccess("%s is a valid OpenAPI document", schemaPath)

			var schemaCount int
			if spec.Components != nil && len(spec.Components.Schemas) > 0 {
				var schemas map[string]json.RawMessage
				if err := json.Unmarshal(spec.Components.Schemas, &schemas); err == nil {
					schemaCount = len(schemas)
				}
			}

			paths := make(map[string]struct{}, len(spec.Operations))
			for _, op := range spec.Operations {
				paths[op.Path] = struct{}{}
			}

			fmt.Printf("\nAPI: %s %s\n", spec.Info.Title, spec.Info.Version)
			fmt.Printf("- Paths: %d\n", len(paths))
			fmt.Printf("- Operations: %d\n", len(spec.Operations))
			fmt.Printf("- Schemas: %d\n", schemaCount)

			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path or URL to the OpenAPI document (required)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
