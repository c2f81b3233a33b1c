package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// mapConfigSchema is the structural schema for a map preset file.
// Cross-field rules (layout size vs width/height, legend coverage,
// actor_start in bounds) are checked by engine.ValidateMapConfig.
const mapConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Map preset",
  "type": "object",
  "required": ["name", "width", "height"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "width": {"type": "integer", "minimum": 1, "maximum": 100},
    "height": {"type": "integer", "minimum": 1, "maximum": 100},
    "cell_size": {"type": "integer", "minimum": 0},
    "layout": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "legend": {
      "type": "object",
      "propertyNames": {"minLength": 1, "maxLength": 1},
      "additionalProperties": {"type": "string", "minLength": 1}
    },
    "actor_start": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {
        "x": {"type": "integer", "minimum": 0},
        "y": {"type": "integer", "minimum": 0}
      }
    }
  },
  "additionalProperties": false
}`

const mapConfigSchemaURL = "tile-painter://schemas/map-config.json"

var compiledMapConfigSchema = jsonschema.MustCompileString(mapConfigSchemaURL, mapConfigSchema)

// ValidateSchema checks raw preset JSON against the map preset schema
func ValidateSchema(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := compiledMapConfigSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Schema returns the map preset JSON Schema document
func Schema() string {
	return mapConfigSchema
}
