package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	recordsSchemaOnce sync.Once
	recordsSchema     *jsonschema.Schema
	recordsSchemaErr  error
)

// CompileSchema compiles schemaMap into a reusable validator.
func CompileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateRecords checks an already-decoded document against the records schema.
func ValidateRecords(doc any) error {
	recordsSchemaOnce.Do(func() {
		recordsSchema, recordsSchemaErr = CompileSchema(BuildRecordsJSONSchema())
	})
	if recordsSchemaErr != nil {
		return recordsSchemaErr
	}
	if err := recordsSchema.Validate(doc); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
