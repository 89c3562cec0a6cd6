package cli

import (
	"os"
	"path/filepath"
	"testing"

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

func testCLI(t *testing.T, outputDir string) *CLI {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.CLI.DefaultOutputDir = outputDir

	logger := logging.NewNoOpLogger()
	orchestrator := generation.NewOrchestrator(
		discovery.NewAdapter(templates.NewBundledRepository()),
		appcontext.NewRegistryWithDefaults(),
		render.Selector{},
		postprocess.NewComposite(postprocess.Permissions{}, postprocess.NewHooks(shell.NewCommandExecutor(), outputDir, logger)),
	)

	protocolRegistry := protocols.NewRegistryWithDefaults()
	genServer := application.NewGenerateServerUseCase(protocolRegistry, openapi.CompositeLoader{}, orchestrator, output.NewFilesystemService())
	genClient := application.NewGenerateClientUseCase(protocolRegistry, orchestrator, output.NewFilesystemService())

	return New(cfg, logger, genServer, genClient)
}

func writeSchemaFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "petstore.yaml")
	doc := `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets/{id}:
    get:
      operationId: get_pet_by_id
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: integer
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id:
                    type: integer
                  name:
                    type: string
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestGenerateServerCommandWritesArtifacts(t *testing.T) {
	outDir := t.TempDir()
	schema := writeSchemaFixture(t)

	app := testCLI(t, outDir)
	app.RootCmd.SetArgs([]string{
		"generate", "server",
		"--project-name", "petstore-server",
		"--schema", schema,
		"--output", outDir,
	})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "src", "handlers", "get_pet_by_id.rs")); err != nil {
		t.Errorf("expected generated handler file: %v", err)
	}
}

func TestGenerateServerCommandRequiresSchema(t *testing.T) {
	outDir := t.TempDir()
	app := testCLI(t, outDir)
	app.RootCmd.SetArgs([]string{
		"generate", "server",
		"--project-name", "petstore-server",
		"--output", outDir,
	})

	if err := app.Execute(); err == nil {
		t.Fatal("expected an error when --schema is omitted")
	}
}

func TestGenerateClientCommandWritesArtifacts(t *testing.T) {
	outDir := t.TempDir()
	app := testCLI(t, outDir)
	app.RootCmd.SetArgs([]string{
		"generate", "client",
		"--project-name", "petstore-client",
		"--output", outDir,
	})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "src", "main.rs")); err != nil {
		t.Errorf("expected generated client main.rs: %v", err)
	}
}
