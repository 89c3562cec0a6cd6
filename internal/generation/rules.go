package generation

import (
	"path/filepath"
	"strings"

	"github.com/clafollett/agenterra-go/internal/proto"
)

// DefaultVersion is the version stamped on freshly scaffolded projects
// that don't specify one.
const DefaultVersion = "0.1.0"

// ValidateLanguageSupport enforces the (protocol, role) -> language
// rule set. Only (Mcp, Server) -> Rust and (Mcp, Client) -> Rust are
// supported today; every other protocol is rejected outright since only
// MCP is implemented (matching the "not yet implemented" branch of the
// Rust source's rules.rs).
func ValidateLanguageSupport(protocol proto.Protocol, role proto.Role, language proto.Language) error {
	switch protocol {
	case proto.Mcp:
		switch role.Kind() {
		case proto.RoleServer, proto.RoleClient:
			if language == proto.Rust {
				return nil
			}
			return UnsupportedLanguageForProtocol(language, protocol)
		default:
			return New(KindValidation, "role %s is not valid for protocol %s", role, protocol)
		}
	default:
		return New(KindValidation, "protocol %s is not yet implemented", protocol)
	}
}

// RequiresOpenAPI reports whether (protocol, role) needs an OpenAPI
// document to prepare a generation context.
func RequiresOpenAPI(protocol proto.Protocol, role proto.Role) bool {
	return proto.RequiresOpenAPI(protocol, role)
}

// ValidateProjectName enforces spec.md's identifier invariant:
// non-empty, charset [A-Za-z0-9_-], and not starting with '-' or '_'.
func ValidateProjectName(name string) error {
	if name == "" {
		return New(KindValidation, "project name cannot be empty")
	}
	for _, r := range name {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum && r != '-' && r != '_' {
			return New(KindValidation, "project name must contain only alphanumeric characters, dashes, and underscores")
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "_") {
		return New(KindValidation, "project name cannot start with a dash or underscore")
	}
	return nil
}

// GetArtifactPermissions returns the POSIX mode bits an artifact should
// carry based on its path and target language, or nil when no special
// permissions apply. Shell scripts are always executable; a Python
// file whose name contains "cli" is executable too, matching the
// SUPPLEMENTED FEATURES language-aware rule from the original source's
// get_artifact_permissions (Python CLI entrypoints ship without a
// shebang-driven permission check, so the extension+filename rule
// covers them).
func GetArtifactPermissions(path string, language proto.Language) *uint32 {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil
	}
	mode := func(m uint32) *uint32 { return &m }
	switch {
	case ext == "sh" || ext == "bash":
		return mode(0o755)
	case language == proto.Python && ext == "py" && strings.Contains(filepath.Base(path), "cli"):
		return mode(0o755)
	default:
		return nil
	}
}
