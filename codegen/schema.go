package codegen

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ConfigSchema reflects Config's JSON schema, the way a host tool (an IDE
// plugin, a build-system generator) would validate a serialized Config
// before handing it to Generate. Grounded on the schema reflector wrapping
// invopop/jsonschema seen across the retrieved corpus: build a Reflector
// with the flags that matter for a single flat config struct, reflect, drop
// the $schema version line since this is an inline definition rather than a
// published standalone schema.
func ConfigSchema() (string, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	schema := r.Reflect(&Config{})
	if schema == nil {
		return "", fmt.Errorf("codegen: failed to reflect schema for Config")
	}
	schema.Version = ""

	raw, err := schema.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("codegen: marshal schema: %w", err)
	}
	return string(raw), nil
}

// ConfigSchemaMap is ConfigSchema decoded into a plain map, for callers that
// want to inspect or merge schema fields rather than display raw JSON text.
func ConfigSchemaMap() (map[string]any, error) {
	raw, err := ConfigSchema()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("codegen: unmarshal schema to map: %w", err)
	}
	return m, nil
}
