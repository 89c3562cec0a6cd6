// Package openapi turns a parsed OpenAPI document into the generation
// package's typed OpenApiSpec (C2), and loads that document's bytes
// from a file, an HTTP(S) URL, or either in sequence (C3).
package openapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/clafollett/agenterra-go/internal/generation"
	"github.com/clafollett/agenterra-go/internal/proto"
)

// httpMethods is the fixed set of methods scanned on every path item, in
// the order operations are emitted when a path declares more than one.
var httpMethods = []string{"get", "post", "put", "delete", "patch", "head", "options"}

// Parser builds an OpenApiSpec from an already-decoded JSON document
// (the caller has already bridged YAML to JSON if needed; see loader.go).
type Parser struct {
	doc map[string]any
}

// NewParser wraps a decoded OpenAPI document.
func NewParser(doc map[string]any) *Parser {
	return &Parser{doc: doc}
}

// Parse runs the full algorithm: version, info, servers, operations,
// components.
func (p *Parser) Parse() (*generation.OpenApiSpec, error) {
	version, ok := firstString(p.doc, "openapi", "swagger")
	if !ok {
		return nil, generation.New(generation.KindValidation, "missing OpenAPI version (openapi/swagger)")
	}

	info, ok := asMap(p.doc["info"])
	if !ok {
		return nil, generation.New(generation.KindValidation, "missing info object")
	}
	title, ok := asString(info["title"])
	if !ok {
		return nil, generation.New(generation.KindValidation, "missing info.title")
	}
	apiVersion, ok := asString(info["version"])
	if !ok {
		return nil, generation.New(generation.KindValidation, "missing info.version")
	}
	description, _ := asString(info["description"])

	servers := p.parseServers()

	operations, err := p.parseOperations()
	if err != nil {
		return nil, err
	}

	var components *generation.Components
	if comp, ok := asMap(p.doc["components"]); ok {
		if schemas, present := comp["schemas"]; present {
			raw, err := json.Marshal(schemas)
			if err != nil {
				return nil, generation.Wrap(generation.KindSerialization, err, "marshal components.schemas")
			}
			components = &generation.Components{Schemas: raw}
		}
	}

	return &generation.OpenApiSpec{
		Version: version,
		Info: generation.ApiInfo{
			Title:       title,
			Version:     apiVersion,
			Description: description,
		},
		Servers:    servers,
		Operations: operations,
		Components: components,
	}, nil
}

func (p *Parser) parseServers() []generation.Server {
	arr, ok := asSlice(p.doc["servers"])
	if !ok {
		return nil
	}
	servers := make([]generation.Server, 0, len(arr))
	for _, item := range arr {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		url, ok := asString(m["url"])
		if !ok {
			continue
		}
		desc, _ := asString(m["description"])
		servers = append(servers, generation.Server{URL: url, Description: desc})
	}
	return servers
}

func (p *Parser) parseOperations() ([]generation.Operation, error) {
	paths, ok := asMap(p.doc["paths"])
	if !ok {
		return nil, generation.New(generation.KindValidation, "missing paths object")
	}

	pathNames := make([]string, 0, len(paths))
	for path := range paths {
		pathNames = append(pathNames, path)
	}
	sort.Strings(pathNames)

	var operations []generation.Operation
	for _, path := range pathNames {
		pathItem, ok := asMap(paths[path])
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			methodItem, ok := asMap(pathItem[method])
			if !ok {
				continue
			}
			op, err := p.buildOperation(path, method, pathItem, methodItem)
			if err != nil {
				return nil, err
			}
			operations = append(operations, *op)
		}
	}
	return operations, nil
}

func (p *Parser) buildOperation(path, method string, pathItem, methodItem map[string]any) (*generation.Operation, error) {
	operationID, _ := asString(methodItem["operationId"])
	if operationID == "" {
		operationID = fmt.Sprintf("%s_%s", method, strings.ReplaceAll(strings.TrimPrefix(path, "/"), "/", "_"))
	}

	summary, _ := asString(methodItem["summary"])
	description, _ := asString(methodItem["description"])
	externalDocs := rawOf(methodItem["externalDocs"])

	pathParams, err := p.extractParameters(pathItem)
	if err != nil {
		return nil, generation.Wrap(generation.KindValidation, err, "%s %s: path parameters", method, path)
	}
	methodParams, err := p.extractParameters(methodItem)
	if err != nil {
		return nil, generation.Wrap(generation.KindValidation, err, "%s %s: operation parameters", method, path)
	}
	parameters := append(pathParams, methodParams...)

	var requestBody *generation.RequestBody
	if rb, ok := asMap(methodItem["requestBody"]); ok {
		requestBody = p.parseRequestBody(rb)
	}

	responses, err := p.extractResponses(methodItem)
	if err != nil {
		return nil, generation.Wrap(generation.KindValidation, err, "%s %s: responses", method, path)
	}

	callbacks := rawOf(methodItem["callbacks"])
	deprecated, _ := methodItem["deprecated"].(bool)
	security := rawSliceOf(methodItem["security"])
	servers := rawSliceOf(methodItem["servers"])
	tags := stringSlice(methodItem["tags"])
	vendorExtensions := extractVendorExtensions(methodItem)

	return &generation.Operation{
		ID:               operationID,
		Path:             path,
		Method:           method,
		Tags:             tags,
		Summary:          summary,
		Description:      description,
		ExternalDocs:     externalDocs,
		Parameters:       parameters,
		RequestBody:      requestBody,
		Responses:        responses,
		Callbacks:        callbacks,
		Deprecated:       deprecated,
		Security:         security,
		Servers:          servers,
		VendorExtensions: vendorExtensions,
	}, nil
}

// extractParameters reads the "parameters" array of container (a path
// item or an operation object), resolving intra-document $ref entries
// by JSON-pointer lookup against the full document.
func (p *Parser) extractParameters(container map[string]any) ([]generation.Parameter, error) {
	arr, ok := asSlice(container["parameters"])
	if !ok {
		return nil, nil
	}
	params := make([]generation.Parameter, 0, len(arr))
	for _, item := range arr {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		if ref, ok := asString(m["$ref"]); ok {
			resolved, err := p.resolvePointer(ref)
			if err != nil {
				return nil, err
			}
			m, ok = asMap(resolved)
			if !ok {
				return nil, fmt.Errorf("$ref %s does not resolve to an object", ref)
			}
		}
		param, err := p.parseParameter(m)
		if err != nil {
			return nil, err
		}
		params = append(params, *param)
	}
	return params, nil
}

func (p *Parser) parseParameter(param map[string]any) (*generation.Parameter, error) {
	name, ok := asString(param["name"])
	if !ok {
		return nil, fmt.Errorf("parameter missing name")
	}
	inStr, _ := asString(param["in"])
	location, err := proto.ParseParameterLocation(inStr)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}
	required, _ := param["required"].(bool)
	schemaSrc, _ := asMap(param["schema"])
	schema, err := p.parseSchema(schemaSrc)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}
	desc, _ := asString(param["description"])

	return &generation.Parameter{
		Name:        name,
		Location:    location,
		Required:    required,
		Schema:      schema,
		Description: desc,
	}, nil
}

func (p *Parser) extractResponses(methodItem map[string]any) ([]generation.Response, error) {
	responses, ok := asMap(methodItem["responses"])
	if !ok {
		return nil, nil
	}
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	result := make([]generation.Response, 0, len(codes))
	for _, code := range codes {
		m, ok := asMap(responses[code])
		if !ok {
			continue
		}
		result = append(result, p.parseResponse(code, m))
	}
	return result, nil
}

func (p *Parser) parseResponse(statusCode string, response map[string]any) generation.Response {
	desc, ok := asString(response["description"])
	if !ok {
		desc = "No description"
	}
	return generation.Response{
		StatusCode:  statusCode,
		Description: desc,
		Content:     rawOf(response["content"]),
	}
}

func (p *Parser) parseRequestBody(body map[string]any) *generation.RequestBody {
	required, _ := body["required"].(bool)
	desc, _ := asString(body["description"])
	return &generation.RequestBody{
		Required:    required,
		Content:     rawOf(body["content"]),
		Description: desc,
	}
}

func (p *Parser) parseSchema(schema map[string]any) (generation.Schema, error) {
	if schema == nil {
		return generation.Schema{}, nil
	}
	schemaType, _ := asString(schema["type"])
	format, _ := asString(schema["format"])

	var items *generation.Schema
	if itemsSrc, ok := asMap(schema["items"]); ok {
		parsed, err := p.parseSchema(itemsSrc)
		if err != nil {
			return generation.Schema{}, err
		}
		items = &parsed
	}

	properties := rawOf(schema["properties"])
	required := stringSlice(schema["required"])

	return generation.Schema{
		Type:       schemaType,
		Format:     format,
		Items:      items,
		Properties: properties,
		Required:   required,
	}, nil
}

// resolvePointer resolves a local "#/a/b/c" JSON pointer against the
// full document. Only intra-document pointers are supported; an
// external URI is rejected with an "unsupported external $ref" error.
func (p *Parser) resolvePointer(ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("unsupported external $ref %q", ref)
	}
	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	var cur any = p.doc
	for _, seg := range segments {
		seg = unescapePointerSegment(seg)
		m, ok := asMap(cur)
		if !ok {
			return nil, fmt.Errorf("$ref %q does not resolve: expected object at %q", ref, seg)
		}
		next, present := m[seg]
		if !present {
			return nil, fmt.Errorf("$ref %q does not resolve: key %q not found", ref, seg)
		}
		cur = next
	}
	return cur, nil
}

func unescapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}

// DereferenceSchemaRefs walks value, replacing any {"$ref":
// "#/components/schemas/<name>"} object with the referenced subtree
// from components.schemas. It stops at a name it has already expanded
// on the current walk so a cyclic schema terminates instead of looping
// forever; the second occurrence is left as the original $ref object.
func DereferenceSchemaRefs(value any, schemas map[string]any) any {
	return dereference(value, schemas, map[string]struct{}{})
}

func dereference(value any, schemas map[string]any, visiting map[string]struct{}) any {
	switch v := value.(type) {
	case map[string]any:
		if ref, ok := asString(v["$ref"]); ok && strings.HasPrefix(ref, "#/components/schemas/") {
			name := strings.TrimPrefix(ref, "#/components/schemas/")
			if _, seen := visiting[name]; seen {
				return v
			}
			target, ok := schemas[name]
			if !ok {
				return v
			}
			visiting[name] = struct{}{}
			resolved := dereference(target, schemas, visiting)
			delete(visiting, name)
			return resolved
		}
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = dereference(child, schemas, visiting)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = dereference(child, schemas, visiting)
		}
		return out
	default:
		return value
	}
}

func extractVendorExtensions(m map[string]any) map[string]json.RawMessage {
	var out map[string]json.RawMessage
	for k, v := range m {
		if strings.HasPrefix(k, "x-") {
			if out == nil {
				out = map[string]json.RawMessage{}
			}
			out[k] = rawOf(v)
		}
	}
	return out
}

func firstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := asString(m[k]); ok {
			return s, true
		}
	}
	return "", false
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func stringSlice(v any) []string {
	arr, ok := asSlice(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := asString(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func rawOf(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func rawSliceOf(v any) []json.RawMessage {
	arr, ok := asSlice(v)
	if !ok {
		return nil
	}
	out := make([]json.RawMessage, 0, len(arr))
	for _, item := range arr {
		out = append(out, rawOf(item))
	}
	return out
}
