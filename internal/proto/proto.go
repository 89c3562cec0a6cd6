// Package proto holds the tagged-union identity types shared by the
// generation core and the protocol/template layers: Protocol, Role,
// Language, and the parameter-location enum used by the OpenAPI model.
// These have no dependency on anything else in the module so that both
// the generation and templates packages can depend on them without a
// cycle.
package proto

import "fmt"

// Protocol is the closed set of adapter protocols the scaffolder knows
// about. Only Mcp is implemented; the rest exist so the registry surface
// is complete.
type Protocol string

const (
	Mcp Protocol = "mcp"
	A2a Protocol = "a2a"
	Acp Protocol = "acp"
	Anp Protocol = "anp"
)

// AllProtocols returns every declared protocol, in declaration order.
func AllProtocols() []Protocol {
	return []Protocol{Mcp, A2a, Acp, Anp}
}

func (p Protocol) String() string { return string(p) }

// ParseProtocol parses a protocol name; the match is exact, so only
// the lowercase names ("mcp", "a2a", "acp", "anp") are accepted.
func ParseProtocol(s string) (Protocol, error) {
	switch Protocol(s) {
	case Mcp, A2a, Acp, Anp:
		return Protocol(s), nil
	default:
		return "", fmt.Errorf("proto: unknown protocol %q", s)
	}
}

// Role is the closed set of roles a generated project can play.
// Custom is an escape hatch for protocols that declare their own roles;
// it carries the literal role string in name, which String returns.
type Role struct {
	kind RoleKind
	name string
}

type RoleKind int

const (
	RoleServer RoleKind = iota
	RoleClient
	RoleAgent
	RoleBroker
	RoleCustom
)

func (r Role) Kind() RoleKind { return r.kind }

func (r Role) String() string {
	if r.kind == RoleCustom {
		return r.name
	}
	return r.name
}

var (
	Server = Role{kind: RoleServer, name: "server"}
	Client = Role{kind: RoleClient, name: "client"}
	Agent  = Role{kind: RoleAgent, name: "agent"}
	Broker = Role{kind: RoleBroker, name: "broker"}
)

// CustomRole builds a Role carrying an arbitrary protocol-defined name.
func CustomRole(name string) Role {
	return Role{kind: RoleCustom, name: name}
}

// ParseRole parses the four built-in role names strictly, the same as
// ParseProtocol/ParseLanguage; any other string is an error. Protocols
// that declare their own roles construct a Role directly via
// CustomRole rather than going through this parser.
func ParseRole(s string) (Role, error) {
	switch s {
	case "server":
		return Server, nil
	case "client":
		return Client, nil
	case "agent":
		return Agent, nil
	case "broker":
		return Broker, nil
	default:
		return Role{}, fmt.Errorf("proto: unknown role %q", s)
	}
}

func (r Role) Equal(other Role) bool {
	return r.kind == other.kind && r.name == other.name
}

// Capabilities declares what a protocol supports: which roles it
// accepts, whether it requires an OpenAPI document to prepare a
// generation context, and its transport characteristics.
type Capabilities struct {
	Roles                 []Role
	RequiresOpenAPI        bool
	SupportsStreaming      bool
	SupportsBidirectional  bool
}

// CapabilitiesFor returns the declared capabilities of a protocol.
// Only Mcp sets RequiresOpenAPI and the transport flags. Acp declares
// Server, Client and Broker; A2a and Anp declare Agent. ValidateRole
// accepts those roles, and generation for a non-MCP protocol then fails
// at the handler registry, which has no handler for it.
func CapabilitiesFor(p Protocol) Capabilities {
	switch p {
	case Mcp:
		return Capabilities{
			Roles:                 []Role{Server, Client},
			RequiresOpenAPI:        true,
			SupportsStreaming:      true,
			SupportsBidirectional:  true,
		}
	case Acp:
		return Capabilities{Roles: []Role{Server, Client, Broker}}
	case A2a, Anp:
		return Capabilities{Roles: []Role{Agent}}
	default:
		return Capabilities{}
	}
}

// ValidateRole reports whether role is legal for protocol.
func ValidateRole(p Protocol, role Role) error {
	caps := CapabilitiesFor(p)
	for _, r := range caps.Roles {
		if r.Equal(role) {
			return nil
		}
	}
	return fmt.Errorf("proto: role %q is not valid for protocol %q", role, p)
}

// RequiresOpenAPI reports whether (protocol, role) needs an OpenAPI
// document to build a generation context. Today this is true only for
// (Mcp, Server).
func RequiresOpenAPI(p Protocol, role Role) bool {
	return p == Mcp && role.Equal(Server) && CapabilitiesFor(p).RequiresOpenAPI
}

// Language is the closed set of target languages a template bundle can
// be written in. Only Rust has embedded bundles today; the rest exist
// so context builders and the registry surface are complete per
// SPEC_FULL.md's "registries instead of globals" design note.
type Language string

const (
	Rust       Language = "rust"
	Python     Language = "python"
	TypeScript Language = "typescript"
	Go         Language = "go"
	Java       Language = "java"
	CSharp     Language = "csharp"
)

// AllLanguages returns every declared language, in declaration order.
func AllLanguages() []Language {
	return []Language{Rust, Python, TypeScript, Go, Java, CSharp}
}

func (l Language) String() string { return string(l) }

// DisplayName returns the human-facing form of the language name.
func (l Language) DisplayName() string {
	switch l {
	case Rust:
		return "Rust"
	case Python:
		return "Python"
	case TypeScript:
		return "TypeScript"
	case Go:
		return "Go"
	case Java:
		return "Java"
	case CSharp:
		return "C#"
	default:
		return string(l)
	}
}

// FileExtension returns the canonical source file extension.
func (l Language) FileExtension() string {
	switch l {
	case Rust:
		return "rs"
	case Python:
		return "py"
	case TypeScript:
		return "ts"
	case Go:
		return "go"
	case Java:
		return "java"
	case CSharp:
		return "cs"
	default:
		return ""
	}
}

// ParseLanguage accepts the canonical name plus the common aliases
// (py, ts, golang, c#, cs).
func ParseLanguage(s string) (Language, error) {
	switch normalizeLang(s) {
	case "rust":
		return Rust, nil
	case "python", "py":
		return Python, nil
	case "typescript", "ts":
		return TypeScript, nil
	case "go", "golang":
		return Go, nil
	case "java":
		return Java, nil
	case "csharp", "c#", "cs":
		return CSharp, nil
	default:
		return "", fmt.Errorf("proto: invalid language %q", s)
	}
}

func normalizeLang(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}

// ParameterLocation is where an OpenAPI parameter is carried.
type ParameterLocation string

const (
	InPath   ParameterLocation = "path"
	InQuery  ParameterLocation = "query"
	InHeader ParameterLocation = "header"
	InCookie ParameterLocation = "cookie"
)

// ParseParameterLocation parses the `in` field of an OpenAPI parameter.
func ParseParameterLocation(s string) (ParameterLocation, error) {
	switch ParameterLocation(s) {
	case InPath, InQuery, InHeader, InCookie:
		return ParameterLocation(s), nil
	default:
		return "", fmt.Errorf("proto: invalid parameter location %q", s)
	}
}
