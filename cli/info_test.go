package cli

import (
	"testing"
)

func TestInfoCommandPrintsBundleDescription(t *testing.T) {
	app := testCLI(t, t.TempDir())
	app.RootCmd.SetArgs([]string{"info", "mcp/server/rust"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestInfoCommandRejectsUnknownBundle(t *testing.T) {
	app := testCLI(t, t.TempDir())
	app.RootCmd.SetArgs([]string{"info", "mcp/server/cobol"})

	if err := app.Execute(); err == nil {
		t.Fatal("expected an error for an unknown bundle")
	}
}
