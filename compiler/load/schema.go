// Package load reads template documents into their raw, unresolved form.
package load

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// Template kinds as spelled in schema documents.
const (
	KindEnum   = "Enum"
	KindRecord = "Record"
)

// HashPrefix prefixes every content hash produced by Hash.
const HashPrefix = "sha256:"

// Schema represents one template document as it was loaded from disk.
type Schema struct {
	Name          string   `json:"name,omitempty"`
	Type          string   `json:"type,omitempty"`
	Namespace     string   `json:"namespace,omitempty"`
	Package       string   `json:"package,omitempty"`
	Values        []string `json:"values,omitempty"`
	Members       []*Field `json:"members,omitempty"`
	Parent        string   `json:"parent,omitempty"`
	Interface     string   `json:"interface,omitempty"`
	Implements    string   `json:"implements,omitempty"`
	Serialization bool     `json:"generate_serialization,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	Subdir        string   `json:"subdir,omitempty"`

	// Source is the path the schema was read from, if any.
	Source string `json:"-"`
	// Hash is the content hash of the exact source bytes.
	Hash string `json:"-"`
}

// Field represents one member of a record template.
type Field struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	// Default holds the decoded default literal: a string, float64 or bool.
	// A nil Default means no default was given.
	Default any `json:"default,omitempty"`
}

// HasDefault reports if a default literal was given for the field.
func (f *Field) HasDefault() bool { return f.Default != nil }

// InterfaceName returns the declared interface, accepting the legacy
// "implements" key as an alias.
func (s *Schema) InterfaceName() string {
	if s.Interface != "" {
		return s.Interface
	}
	return s.Implements
}

// Hash returns the content hash of the given bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return HashPrefix + hex.EncodeToString(sum[:])
}

// NameFromPath returns the default template name for a document path: its
// base name without extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// UnmarshalSchema decodes, validates and parses a template document.
// The name is used when the document does not declare one.
func UnmarshalSchema(name string, format Format, buf []byte) (*Schema, error) {
	canonical, err := format.canonical(buf)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(canonical); err != nil {
		return nil, err
	}
	s := &Schema{}
	if err := json.Unmarshal(canonical, s); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	if s.Name == "" {
		s.Name = name
	}
	s.Hash = Hash(buf)
	return s, nil
}

// MarshalSchema encodes the schema as an indented JSON document.
func MarshalSchema(s *Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
