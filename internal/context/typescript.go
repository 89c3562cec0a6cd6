package context

import (
	stdcontext "context"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/ident"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// TypeScriptBuilder builds the render context for TypeScript MCP
// templates: package/class/variable naming plus one endpoint per
// operation with camelCase method and parameter names.
type TypeScriptBuilder struct{}

func (TypeScriptBuilder) Build(_ stdcontext.Context, genCtx *generation.GenerationContext, tmpl *templates.Template) (*generation.RenderContext, error) {
	if genCtx.Language != proto.TypeScript {
		return nil, generation.New(generation.KindInvalidConfiguration, "TypeScriptBuilder can only build contexts for typescript, got %s", genCtx.Language)
	}

	rc := generation.NewRenderContext()
	addBaseVariables(rc, genCtx, "typescript")

	projectName := genCtx.Metadata.ProjectName
	packageName := ident.ToKebabCase(projectName)
	rc.AddVariable("package_name", packageName)
	rc.AddVariable("class_name", ident.ToProperCase(projectName))
	rc.AddVariable("variable_name", ident.ToCamelCase(projectName))
	rc.AddVariable("cli_command", packageName)

	addOpenAPIVariables(rc, genCtx)

	var endpoints []map[string]any
	for _, op := range endpointsOf(genCtx) {
		endpoints = append(endpoints, buildTypeScriptEndpoint(op))
	}
	rc.AddVariable("endpoints", endpoints)

	mergeUserVariables(rc, genCtx, tmpl)
	return rc, nil
}

func buildTypeScriptEndpoint(op generation.Operation) map[string]any {
	return map[string]any{
		"method_name":        ident.ToCamelCase(op.ID),
		"interface_name":     ident.ToProperCase(op.ID + "_params"),
		"response_interface": ident.ToProperCase(op.ID + "_response"),
		"path":               op.Path,
		"http_method":        op.Method,
		"summary":            op.Summary,
		"description":        op.Description,
		"parameters":         typescriptParameters(op),
		"response_type":      mapJSONSchemaToTypeScriptType(successResponseSchema(op)),
		"tags":               op.Tags,
	}
}

func typescriptParameters(op generation.Operation) []map[string]any {
	reserved := ident.TypeScriptReserved
	params := make([]map[string]any, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		name := ident.SanitizeFieldName(ident.ToCamelCase(p.Name), reserved)
		params = append(params, map[string]any{
			"name":          name,
			"original_name": p.Name,
			"type":          mapSchemaToTypeScriptType(p.Schema),
			"in":            string(p.Location),
			"required":      p.Required,
			"description":   p.Description,
			"example":       nil,
		})
	}
	return params
}

func mapSchemaToTypeScriptType(schema generation.Schema) string {
	switch schema.Type {
	case "string":
		return "string"
	case "integer", "number":
		return "number"
	case "boolean":
		return "boolean"
	case "array":
		if schema.Items != nil {
			return mapSchemaToTypeScriptType(*schema.Items) + "[]"
		}
		return "any[]"
	case "object":
		return "Record<string, any>"
	default:
		return "any"
	}
}

func mapJSONSchemaToTypeScriptType(schema map[string]any) string {
	switch schemaTypeOf(schema) {
	case "string":
		return "string"
	case "integer", "number":
		return "number"
	case "boolean":
		return "boolean"
	case "array":
		if items, ok := schema["items"].(map[string]any); ok {
			return mapJSONSchemaToTypeScriptType(items) + "[]"
		}
		return "any[]"
	case "object":
		return "Record<string, any>"
	default:
		return "any"
	}
}
