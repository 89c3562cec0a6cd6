package discovery

import (
	"context"
	"testing"

	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

func TestAdapterDiscoversBundledRustServerTemplate(t *testing.T) {
	adapter := NewAdapter(templates.NewBundledRepository())

	tmpl, err := adapter.Discover(context.Background(), proto.Mcp, proto.Server, proto.Rust)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if tmpl.Manifest.Name != "mcp-server-rust" {
		t.Errorf("Manifest.Name = %q", tmpl.Manifest.Name)
	}
}

func TestAdapterDiscoverUnknownTripleFails(t *testing.T) {
	adapter := NewAdapter(templates.NewBundledRepository())

	_, err := adapter.Discover(context.Background(), proto.Mcp, proto.Server, proto.Python)
	if err == nil {
		t.Fatal("expected error for a (protocol, role, language) triple with no bundled template")
	}
}
