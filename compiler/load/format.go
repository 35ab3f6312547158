package load

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a template document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the document format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported template extension %q", ext)
	}
}

// canonical converts a document to its JSON encoding. Validation and
// decoding always run on the JSON form, regardless of the source format.
func (f Format) canonical(buf []byte) ([]byte, error) {
	var (
		doc any
		err error
	)
	switch f {
	case FormatJSON:
		if err = json.Unmarshal(buf, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return buf, nil
	case FormatYAML:
		if err = yaml.Unmarshal(buf, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		m := make(map[string]any)
		if err = toml.Unmarshal(buf, &m); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		doc = m
	default:
		return nil, fmt.Errorf("unsupported template format %q", f)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", f, err)
	}
	return out, nil
}
