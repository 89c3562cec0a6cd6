package application

import (
	"testing"

	"github.com/clafollett/agenterra-go/internal/proto"
)

func TestGenerateServerRequestValidation(t *testing.T) {
	valid := GenerateServerRequest{
		Protocol: proto.Mcp, Language: proto.Rust, ProjectName: "test-server",
		SchemaPath: "/path/to/openapi.yaml", OutputDir: "/output",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	empty := valid
	empty.ProjectName = ""
	if err := empty.Validate(); err == nil {
		t.Fatal("expected error for empty project name")
	}

	invalidName := valid
	invalidName.ProjectName = "invalid name!"
	if err := invalidName.Validate(); err == nil {
		t.Fatal("expected error for invalid project name")
	}

	missingSchema := valid
	missingSchema.SchemaPath = ""
	if err := missingSchema.Validate(); err == nil {
		t.Fatal("expected error when MCP server request omits schema path")
	}
}

func TestGenerateClientRequestValidation(t *testing.T) {
	valid := GenerateClientRequest{Protocol: proto.Mcp, Language: proto.Rust, ProjectName: "test-client", OutputDir: "/output"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	empty := valid
	empty.ProjectName = ""
	if err := empty.Validate(); err == nil {
		t.Fatal("expected error for empty project name")
	}
}
