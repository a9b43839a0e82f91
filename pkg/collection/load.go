package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a collection document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the format from the file extension. Anything that is not
// .yaml or .yml is read as JSON, which is what Postman exports.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Loader loads a collection document from storage.
type Loader interface {
	Load(path string) (*Collection, error)
}

// FileLoader reads collections from the local file system.
type FileLoader struct{}

// Load reads and decodes the collection at path.
func (FileLoader) Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse validates and decodes a collection document.
func Parse(data []byte, format Format) (*Collection, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	var coll Collection
	if err := json.Unmarshal(data, &coll); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &coll, nil
}

// yamlToJSON re-encodes a YAML document as JSON so that both formats share the
// same validation and decoding rules.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrMalformed, err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert YAML: %v", ErrMalformed, err)
	}
	return out, nil
}
