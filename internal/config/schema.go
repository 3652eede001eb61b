package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://mathdrill-config.json"

// schemaDefinition describes the shape of config.yaml.
var schemaDefinition = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"total_tasks":    map[string]any{"type": "integer", "minimum": 0},
		"results_file":   map[string]any{"type": "string", "minLength": 1},
		"history_db":     map[string]any{"type": "string"},
		"failure_policy": map[string]any{"type": "string", "enum": []any{"reenter", "ignore"}},
		"prompt":         map[string]any{"type": "string"},
		"level":          map[string]any{"type": "integer", "minimum": 0},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles the config schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not Go
		// literals. Marshal then unmarshal to get a clean any representation.
		defParsed, err := toJSONValue(schemaDefinition)
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateSchema checks a decoded YAML document against the config schema.
func validateSchema(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	value, err := toJSONValue(doc)
	if err != nil {
		return fmt.Errorf("convert config document: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}

// toJSONValue round-trips v through encoding/json so maps, numbers and
// slices take the types the validator understands.
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
