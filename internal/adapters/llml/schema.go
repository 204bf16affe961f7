package llml

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildRecordJSONSchema returns the shape constraint for model responses as
// a generic map: one object, the seven known keys, each string or null
func buildRecordJSONSchema() map[string]any {
	nullableString := func() map[string]any {
		return map[string]any{"type": []any{"string", "null"}}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"customer_name": nullableString(),
			"phone":         nullableString(),
			"vehicle":       nullableString(),
			"year":          nullableString(),
			"registration":  nullableString(),
			"issue":         nullableString(),
			"notes":         nullableString(),
		},
	}
}

// validateRecordJSON checks data against the record shape
// a violation is recoverable: callers fall back to local extraction
func validateRecordJSON(data []byte) error {
	b, err := json.Marshal(buildRecordJSONSchema())
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return err
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
