package load

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const templateSchemaURL = "https://github.com/syssam/podgen/template.schema.json"

//go:embed template.schema.json
var templateSchema []byte

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(templateSchemaURL, bytes.NewReader(templateSchema)); err != nil {
		return nil, fmt.Errorf("add template schema: %w", err)
	}
	return compiler.Compile(templateSchemaURL)
})

// validateDocument checks the JSON form of a document against the template
// JSON Schema.
func validateDocument(canonical []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(canonical, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid template document: %w", err)
	}
	return nil
}
