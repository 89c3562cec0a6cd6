package context

import (
	stdcontext "context"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/ident"
	"github.com/clafollett/agenterra-go/internal/proto"
	"github.com/clafollett/agenterra-go/internal/templates"
)

// PythonBuilder builds the render context for Python MCP templates.
type PythonBuilder struct{}

func (PythonBuilder) Build(_ stdcontext.Context, genCtx *generation.GenerationContext, tmpl *templates.Template) (*generation.RenderContext, error) {
	if genCtx.Language != proto.Python {
		return nil, generation.New(generation.KindInvalidConfiguration, "PythonBuilder can only build contexts for python, got %s", genCtx.Language)
	}

	rc := generation.NewRenderContext()
	addBaseVariables(rc, genCtx, "python")

	projectName := genCtx.Metadata.ProjectName
	packageName := ident.ToSnakeCase(projectName)
	rc.AddVariable("package_name", packageName)
	rc.AddVariable("module_name", packageName)
	rc.AddVariable("class_name", ident.ToProperCase(projectName))
	rc.AddVariable("cli_script_name", packageName)

	addOpenAPIVariables(rc, genCtx)

	var endpoints []map[string]any
	for _, op := range endpointsOf(genCtx) {
		endpoints = append(endpoints, buildPythonEndpoint(op))
	}
	rc.AddVariable("endpoints", endpoints)

	mergeUserVariables(rc, genCtx, tmpl)
	return rc, nil
}

func buildPythonEndpoint(op generation.Operation) map[string]any {
	reserved := ident.PythonReserved
	sanitize := func(name string) string { return ident.SanitizeFieldName(ident.ToSnakeCase(name), reserved) }

	return map[string]any{
		"method_name":   ident.ToSnakeCase(op.ID),
		"class_name":    ident.ToProperCase(op.ID + "_handler"),
		"path":          op.Path,
		"http_method":   op.Method,
		"summary":       op.Summary,
		"description":   op.Description,
		"parameters":    pythonParameters(op, sanitize),
		"response_type": mapJSONSchemaToPythonType(successResponseSchema(op)),
		"tags":          op.Tags,
	}
}

func pythonParameters(op generation.Operation, sanitize func(string) string) []map[string]any {
	params := make([]map[string]any, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		pyType := mapSchemaToPythonType(p.Schema)
		params = append(params, map[string]any{
			"name":        sanitize(p.Name),
			"python_name": sanitize(p.Name),
			"type":        pyType,
			"type_hint":   pyType,
			"in":          string(p.Location),
			"required":    p.Required,
			"description": p.Description,
			"example":     nil,
		})
	}
	return params
}

func mapSchemaToPythonType(schema generation.Schema) string {
	switch schema.Type {
	case "string":
		return "str"
	case "integer":
		return "int"
	case "boolean":
		return "bool"
	case "number":
		return "float"
	case "array":
		if schema.Items != nil {
			return "List[" + mapSchemaToPythonType(*schema.Items) + "]"
		}
		return "List[Any]"
	case "object":
		return "Dict[str, Any]"
	default:
		return "Any"
	}
}

func mapJSONSchemaToPythonType(schema map[string]any) string {
	switch schemaTypeOf(schema) {
	case "string":
		return "str"
	case "integer":
		return "int"
	case "boolean":
		return "bool"
	case "number":
		return "float"
	case "array":
		if items, ok := schema["items"].(map[string]any); ok {
			return "List[" + mapJSONSchemaToPythonType(items) + "]"
		}
		return "List[Any]"
	case "object":
		return "Dict[str, Any]"
	default:
		return "Dict[str, Any]"
	}
}
