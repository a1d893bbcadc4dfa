package openai

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// data stays optional: a missing list is an empty result, not a malformed body.
const envelopeSchemaJSON = `{
	"type": "object",
	"properties": {
		"data": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"properties": {
					"b64_json": {"type": ["string", "null"]},
					"revised_prompt": {"type": ["string", "null"]}
				}
			}
		}
	}
}`

var envelopeSchema = jsonschema.MustCompileString("images_response.json", envelopeSchemaJSON)

// validateEnvelope checks that raw has the shape of an images response.
func validateEnvelope(raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if err := envelopeSchema.Validate(doc); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}
