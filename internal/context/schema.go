package context

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/clafollett/agenterra-go/internal/generation"
)

// successResponseSchema returns the "schema" object of the first
// response whose status code starts with "2" and carries a JSON body,
// following every context builder's "use the success response shape"
// convention.
func successResponseSchema(op generation.Operation) map[string]any {
	for _, resp := range op.Responses {
		if !strings.HasPrefix(resp.StatusCode, "2") || resp.Content == nil {
			continue
		}
		var content map[string]any
		if err := json.Unmarshal(resp.Content, &content); err != nil {
			continue
		}
		mediaType, ok := content["application/json"].(map[string]any)
		if !ok {
			continue
		}
		schema, ok := mediaType["schema"].(map[string]any)
		if !ok {
			continue
		}
		return schema
	}
	return nil
}

func schemaTypeOf(schema map[string]any) string {
	t, _ := schema["type"].(string)
	return t
}

func isArrayResponse(op generation.Operation) bool {
	return schemaTypeOf(successResponseSchema(op)) == "array"
}

func isObjectResponse(op generation.Operation) bool {
	schema := successResponseSchema(op)
	if schema == nil {
		return false
	}
	if schemaTypeOf(schema) == "object" {
		return true
	}
	_, hasProperties := schema["properties"]
	return hasProperties
}

func isPrimitiveResponse(op generation.Operation) bool {
	switch schemaTypeOf(successResponseSchema(op)) {
	case "string", "integer", "number", "boolean":
		return true
	default:
		return false
	}
}

func arrayItemType(op generation.Operation, mapType func(string) string) string {
	schema := successResponseSchema(op)
	if schemaTypeOf(schema) != "array" {
		return mapType("")
	}
	items, _ := schema["items"].(map[string]any)
	return mapType(schemaTypeOf(items))
}

func primitiveType(op generation.Operation, mapType func(string) string) string {
	return mapType(schemaTypeOf(successResponseSchema(op)))
}

// schemaEnvelopeProperties walks a (possibly $ref-carrying) schema and
// returns its "properties" object, descending into array "items" when
// the schema itself describes an array. A $ref is not resolved: a
// schema that is only a $ref yields an empty properties map.
func schemaEnvelopeProperties(schema map[string]any) any {
	if schema == nil {
		return map[string]any{}
	}
	if _, isRef := schema["$ref"]; isRef {
		return map[string]any{}
	}
	if props, ok := schema["properties"]; ok {
		return props
	}
	if schemaTypeOf(schema) == "array" {
		if items, ok := schema["items"].(map[string]any); ok {
			return schemaEnvelopeProperties(items)
		}
	}
	return map[string]any{}
}

// propertyInfo is the language-neutral shape every builder's
// "response property" list is built from before being stamped with a
// language-specific type name.
type propertyInfo struct {
	Name        string
	Type        string
	Description string
	Example     any
}

func schemaProperties(schema map[string]any, mapType func(map[string]any) string, sanitizeName func(string) string) []propertyInfo {
	if schema == nil {
		return nil
	}
	if _, isRef := schema["$ref"]; isRef {
		return nil
	}

	var props []propertyInfo
	if propsMap, ok := schema["properties"].(map[string]any); ok {
		names := make([]string, 0, len(propsMap))
		for name := range propsMap {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			propSchema, _ := propsMap[name].(map[string]any)
			desc, _ := propSchema["description"].(string)
			props = append(props, propertyInfo{
				Name:        sanitizeName(name),
				Type:        mapType(propSchema),
				Description: desc,
				Example:     propSchema["example"],
			})
		}
	}

	if schemaTypeOf(schema) == "array" {
		if items, ok := schema["items"].(map[string]any); ok {
			props = append(props, schemaProperties(items, mapType, sanitizeName)...)
		}
	}

	return props
}

func successResponseProperties(op generation.Operation, mapType func(map[string]any) string, sanitizeName func(string) string) []propertyInfo {
	return schemaProperties(successResponseSchema(op), mapType, sanitizeName)
}
