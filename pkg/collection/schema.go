package collection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformed marks input that cannot be converted at all.
var ErrMalformed = errors.New("malformed collection")

// requiredShape lists the fields the converter cannot do without.
// Everything else is optional and resolved by the decoding defaults.
const requiredShape = `{
  "type": "object",
  "required": ["variable", "item"],
  "properties": {
    "variable": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {"key": {"type": "string"}}
      }
    },
    "item": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "request"],
        "properties": {
          "name": {"type": "string"},
          "request": {
            "type": "object",
            "required": ["method", "url"],
            "properties": {
              "method": {"type": "string"},
              "url": {"type": ["object", "string"]},
              "header": {"type": ["array", "null"]}
            }
          },
          "response": {"type": ["array", "null"]}
        }
      }
    }
  }
}`

var shapeSchema, shapeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(requiredShape))

// Validate checks a JSON document against the required collection shape.
// Any violation, including invalid JSON, is reported as ErrMalformed.
func Validate(data []byte) error {
	if shapeSchemaErr != nil {
		return fmt.Errorf("failed to compile collection schema: %w", shapeSchemaErr)
	}

	result, err := shapeSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(problems, "; "))
}
