package models

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	errorSchema  = mustResolve(newErrorSchema())
	resultSchema = mustResolve(newResultSchema())
)

func newErrorSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"error"},
		Properties: map[string]*jsonschema.Schema{
			"error": {Type: "string"},
		},
	}
}

// Meilisearch sends full hits. Sonic only knows identifiers and cannot
// estimate a total, so hits carry just "id" and estimatedTotalHits is null.
// Metadata extracted by Tika may hold lists of strings.
func newResultSchema() *jsonschema.Schema {
	minimum := 0.0
	counter := func(types ...string) *jsonschema.Schema {
		return &jsonschema.Schema{Types: types, Minimum: &minimum}
	}

	hit := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"id"},
		Properties: map[string]*jsonschema.Schema{
			"id":      {Types: []string{"string", "integer"}},
			"content": {Type: "string"},
			"metadata": {
				Type: "object",
				AdditionalProperties: &jsonschema.Schema{
					AnyOf: []*jsonschema.Schema{
						{Type: "string"},
						{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
					},
				},
			},
		},
	}

	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"offset", "limit", "estimatedTotalHits", "processingTimeMs", "query", "hits"},
		Properties: map[string]*jsonschema.Schema{
			"offset":             counter("integer"),
			"limit":              counter("integer"),
			"estimatedTotalHits": counter("integer", "null"),
			"processingTimeMs":   counter("integer"),
			"query":              {Type: "string"},
			"hits":               {Type: "array", Items: hit},
		},
	}
}

func mustResolve(s *jsonschema.Schema) *jsonschema.Resolved {
	resolved, err := s.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("unable to resolve schema: %s", err))
	}
	return resolved
}
