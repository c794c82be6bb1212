// Package schema validates configuration files against the reserved
// top-level key shape without loading them. Validation never mutates
// the file and is independent of path resolution.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/licenseguard/licenseguard/packages/core/config"
)

// configSchema describes the reserved top-level keys. Unknown keys are
// permitted: sources are free to define their own settings.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "root": {"type": ["string", "boolean"]},
    "source_path": {"type": "string"},
    "cache_path": {"type": "string"},
    "apps": {
      "type": "array",
      "items": {"type": "object"}
    },
    "sources": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    },
    "allowed": {
      "type": "array",
      "items": {"type": "string"}
    },
    "ignored": {"$ref": "#/definitions/recordBuckets"},
    "reviewed": {"$ref": "#/definitions/recordBuckets"}
  },
  "definitions": {
    "recordBuckets": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {
          "anyOf": [
            {"type": "string"},
            {
              "type": "object",
              "properties": {
                "name": {"type": "string"},
                "version": {"type": "string"}
              },
              "required": ["name"]
            }
          ]
        }
      }
    }
  }
}`

// Issue is one field-level validation failure.
type Issue struct {
	Field       string
	Description string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Description)
}

// ValidateFile checks a configuration file against the schema and
// returns the issues found. A nil, empty result means the file is
// valid.
func ValidateFile(path string) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format, err := config.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	return Validate(data, format)
}

// Validate checks raw configuration bytes in the given format.
func Validate(data []byte, format config.Format) ([]Issue, error) {
	jsonBytes, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonBytes),
	)
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	issues := make([]Issue, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		issues = append(issues, Issue{
			Field:       resErr.Field(),
			Description: resErr.Description(),
		})
	}
	return issues, nil
}

// toJSON normalizes a configuration to JSON for the schema validator.
func toJSON(data []byte, format config.Format) ([]byte, error) {
	if format == config.FormatJSON {
		return data, nil
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	return json.Marshal(decoded)
}
