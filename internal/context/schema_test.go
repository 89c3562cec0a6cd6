package context

import (
	"encoding/json"
	"testing"

	"github.com/clafollett/agenterra-go/internal/generation"
)

func multiPropertyOperation() generation.Operation {
	return generation.Operation{
		ID:     "get_pet",
		Path:   "/pets/{id}",
		Method: "get",
		Responses: []generation.Response{
			{
				StatusCode: "200",
				Content: json.RawMessage(`{
					"application/json": {
						"schema": {
							"type": "object",
							"properties": {
								"zip": {"type": "string"},
								"age": {"type": "integer"},
								"name": {"type": "string"},
								"id": {"type": "integer"}
							}
						}
					}
				}`),
			},
		},
	}
}

func TestSchemaPropertiesAreSortedByName(t *testing.T) {
	op := multiPropertyOperation()
	identity := func(s map[string]any) string { return schemaTypeOf(s) }
	noop := func(s string) string { return s }

	var names []string
	for _, p := range successResponseProperties(op, identity, noop) {
		names = append(names, p.Name)
	}

	want := []string{"age", "id", "name", "zip"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("property order = %v, want %v", names, want)
		}
	}
}

func TestSchemaPropertiesOrderIsStableAcrossCalls(t *testing.T) {
	op := multiPropertyOperation()
	identity := func(s map[string]any) string { return schemaTypeOf(s) }
	noop := func(s string) string { return s }

	first := successResponseProperties(op, identity, noop)
	for i := 0; i < 20; i++ {
		again := successResponseProperties(op, identity, noop)
		if len(again) != len(first) {
			t.Fatalf("property count changed across calls")
		}
		for j := range first {
			if again[j].Name != first[j].Name {
				t.Fatalf("property order changed across calls: %v vs %v", again, first)
			}
		}
	}
}
