package context

import (
	stdcontext "context"
	"encoding/json"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/ident"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// RustBuilder builds the render context for Rust MCP server/client
// templates: crate/module/struct naming plus one endpoint context per
// operation, each carrying the Rust type its response/parameters map to.
type RustBuilder struct{}

func (RustBuilder) Build(_ stdcontext.Context, genCtx *generation.GenerationContext, tmpl *templates.Template) (*generation.RenderContext, error) {
	if genCtx.Language != proto.Rust {
		return nil, generation.New(generation.KindInvalidConfiguration, "RustBuilder can only build contexts for rust, got %s", genCtx.Language)
	}

	rc := generation.NewRenderContext()
	addBaseVariables(rc, genCtx, "rust")

	projectName := genCtx.Metadata.ProjectName
	crateName := rustCrateName(projectName)
	rc.AddVariable("crate_name", crateName)
	rc.AddVariable("module_name", crateName)
	rc.AddVariable("struct_name", ident.ToProperCase(crateName))
	rc.AddVariable("cli_binary_name", crateName)
	rc.AddVariable("license", "MIT License")

	var endpoints []map[string]any
	for _, op := range endpointsOf(genCtx) {
		endpoints = append(endpoints, buildRustEndpoint(op))
	}
	rc.AddVariable("endpoints", endpoints)
	rc.AddVariable("endpoint", endpoints)

	mergeUserVariables(rc, genCtx, tmpl)
	return rc, nil
}

// rustCrateName snake_cases projectName and, if the result starts with
// a digit, prefixes it with "mcp_" so it's a legal Rust crate/module
// identifier (Rust identifiers can't start with a digit).
func rustCrateName(projectName string) string {
	name := ident.ToSnakeCase(projectName)
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "mcp_" + name
	}
	return name
}

func buildRustEndpoint(op generation.Operation) map[string]any {
	endpointID := ident.ToSnakeCase(op.ID)
	mapType := func(schema map[string]any) string { return mapJSONSchemaToRustType(schema) }
	sanitize := func(name string) string { return ident.ToSnakeCase(name) }

	properties := successResponseProperties(op, mapType, sanitize)
	propertyNames := make([]string, 0, len(properties))
	for _, p := range properties {
		propertyNames = append(propertyNames, p.Name)
	}

	return map[string]any{
		"endpoint":               endpointID,
		"endpoint_cap":           ident.ToProperCase(op.ID),
		"endpoint_fs":            endpointID,
		"path":                   op.Path,
		"fn_name":                endpointID,
		"parameters_type":        ident.ToProperCase(op.ID + "_params"),
		"properties_type":        ident.ToProperCase(op.ID + "_properties"),
		"response_type":          ident.ToProperCase(op.ID + "_response"),
		"envelope_properties":    schemaEnvelopeProperties(successResponseSchema(op)),
		"properties":             properties,
		"properties_for_handler": propertyNames,
		"parameters":             rustParameters(op),
		"summary":                op.Summary,
		"description":            op.Description,
		"tags":                   op.Tags,
		"response_schema":        jsonOrEmpty(successResponseSchema(op)),
		"valid_fields":           propertyNames,
		"response_is_array":      isArrayResponse(op),
		"response_is_object":     isObjectResponse(op),
		"response_is_primitive":  isPrimitiveResponse(op),
		"response_item_type":     arrayItemType(op, mapJSONSchemaToRustType0),
		"response_primitive_type": primitiveType(op, mapJSONSchemaToRustType0),
		"response_properties":    properties,
	}
}

func rustParameters(op generation.Operation) []map[string]any {
	params := make([]map[string]any, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		var schema map[string]any
		if p.Schema.Type != "" || p.Schema.Format != "" {
			schema = map[string]any{"type": p.Schema.Type, "format": p.Schema.Format}
		}
		rustType := mapSchemaToRustType(p.Schema)
		params = append(params, map[string]any{
			"name":        ident.ToSnakeCase(p.Name),
			"rust_name":   ident.ToSnakeCase(p.Name),
			"target_type": rustType,
			"rust_type":   rustType,
			"in":          string(p.Location),
			"required":    p.Required,
			"description": p.Description,
			"example":     nil,
			"_schema":     schema,
		})
	}
	return params
}

func mapSchemaToRustType(schema generation.Schema) string {
	switch schema.Type {
	case "string":
		return "String"
	case "integer":
		return "i32"
	case "boolean":
		return "bool"
	case "number":
		return "f64"
	case "array":
		if schema.Items != nil {
			return "Vec<" + mapSchemaToRustType(*schema.Items) + ">"
		}
		return "Vec<serde_json::Value>"
	case "object":
		return "serde_json::Value"
	default:
		return "String"
	}
}

func mapJSONSchemaToRustType(schema map[string]any) string {
	return mapJSONSchemaToRustType0(schemaTypeOf(schema))
}

func mapJSONSchemaToRustType0(openapiType string) string {
	switch openapiType {
	case "string":
		return "String"
	case "integer":
		return "i32"
	case "boolean":
		return "bool"
	case "number":
		return "f64"
	case "array":
		return "Vec<serde_json::Value>"
	case "object":
		return "serde_json::Value"
	case "":
		return "serde_json::Value"
	default:
		return openapiType
	}
}

func jsonOrEmpty(v map[string]any) any {
	if v == nil {
		return json.RawMessage("{}")
	}
	return v
}
