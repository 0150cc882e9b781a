package wordbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://vocabquiz/word_bank.json"

// bankSchemaDoc describes the accepted word bank shape. Extra fields on the
// document and on entries are allowed.
var bankSchemaDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"words": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"word": map[string]any{
						"type":    "string",
						"pattern": `\S`,
					},
				},
				"required": []any{"word"},
			},
		},
	},
	"required": []any{"words"},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bankSchemaDoc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Parse validates a raw word bank document and returns its entries in
// document order with surrounding whitespace trimmed from each word.
func Parse(raw []byte) ([]Entry, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile word bank schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid word bank format: %w", err)
	}

	var data struct {
		Words []Entry `json:"words"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode word bank: %w", err)
	}

	entries := make([]Entry, len(data.Words))
	for i, e := range data.Words {
		entries[i] = Entry{Word: strings.TrimSpace(e.Word)}
	}
	return entries, nil
}
