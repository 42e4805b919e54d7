// Package schema validates JSON payloads against schemas built as plain
// Go maps, so each caller keeps its schema next to the type it guards.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateJSONAgainstSchema checks data against the schema described by
// schemaMap. The schema is compiled per call; schemas here are small and
// validation sits on network or file boundaries, not hot paths.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	raw, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiled, err := jsonschema.CompileString("inline.json", string(raw))
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
