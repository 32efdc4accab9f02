package scene

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

// JSONSchema returns the JSON schema of the scene document
func JSONSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&Document{})
	schema.Title = "Scene"
	schema.Description = "Declarative scene description for the spectral path tracer"

	buffer, err := json.MarshalIndent(schema, "", "  ")
	return buffer, errors.Wrap(err, "failed to serialize the schema")
}
