package gen

import (
	"slices"
	"strings"

	"github.com/syssam/podgen/compiler/load"
	"github.com/syssam/podgen/schema/field"
)

// The following types and their exported methods are used by the dialects
// to generate the assets.
type (
	// Type represents one resolved template in the graph.
	Type struct {
		graph  *Graph
		schema *load.Schema
		// Name holds the template name, which is also the emitted type name.
		Name string
		// Kind is field.KindEnum or field.KindRecord.
		Kind field.Kind
		// Namespace and Package hold the declared scopes. At least one is set.
		Namespace string
		Package   string
		// Values of an enum, in ordinal order.
		Values []string
		// Fields of a record, in declaration and wire order.
		Fields []*Field
		// Parent is the registry record this record inherits from, if any.
		Parent *Type
		// ParentName is the declared parent, which may name a root external.
		ParentName string
		// Interface is the declared capability, always an external type.
		Interface string
		// Serialization reports if the copy/save/load triad is generated.
		Serialization bool
		// Subdir is the relative output directory.
		Subdir string
		// Comment is copied verbatim into generated headers.
		Comment string
		// Source is the document the template was loaded from.
		Source string
		// Hash is the content hash of the source document.
		Hash string
		// Usage is the resolver output over the record fields.
		Usage Usage
	}

	// Field holds one resolved record member.
	Field struct {
		owner *Type
		// Name as declared in the template.
		Name string
		// Type is the classified field type. Custom kinds never remain.
		Type *field.Type
		// Default holds the checked default literal: uint32 for integers,
		// float64 for floats, bool, string, or the value name for enums.
		Default any
		// Position is the zero-based declaration index.
		Position int
	}
)

// IsEnum reports if the type is an enum.
func (t *Type) IsEnum() bool { return t.Kind == field.KindEnum }

// IsRecord reports if the type is a record.
func (t *Type) IsRecord() bool { return t.Kind == field.KindRecord }

// Count returns the number of enum values, the bound used by serialization.
func (t *Type) Count() int { return len(t.Values) }

// Graph returns the graph the type belongs to.
func (t *Type) Graph() *Graph { return t.graph }

// Config returns the generation config of the graph.
func (t *Type) Config() *Config { return t.graph.Config }

// Schema returns the loaded document the type was built from.
func (t *Type) Schema() *load.Schema { return t.schema }

// Lookup returns a registry type by name.
func (t *Type) Lookup(name string) *Type { return t.graph.Lookup(name) }

// Scope returns the scoping identifier of the type. Java prefers the package
// key, the other languages prefer the namespace key.
func (t *Type) Scope(preferPackage bool) string {
	if preferPackage && t.Package != "" || t.Namespace == "" {
		return t.Package
	}
	return t.Namespace
}

// ScopeSegments returns the scope split on dots.
func (t *Type) ScopeSegments(preferPackage bool) []string {
	return strings.Split(t.Scope(preferPackage), ".")
}

// HasParent reports if the record inherits from another registry record.
func (t *Type) HasParent() bool { return t.Parent != nil }

// SerializableParent returns the parent whose triad the record delegates
// to, or nil when no delegation is generated.
func (t *Type) SerializableParent() *Type {
	if t.Parent == nil || !t.Serialization || !t.Parent.Serialization {
		return nil
	}
	if !t.Config().HasFeature(FeatureParentSerialization.Name) {
		return nil
	}
	return t.Parent
}

// InterfaceExternal returns the external type named by the interface clause.
func (t *Type) InterfaceExternal() *External {
	if t.Interface == "" {
		return nil
	}
	e, _ := t.Config().External(t.Interface)
	return e
}

// InterfaceIn returns the interface to declare in the given language, or ""
// when the external type does not exist there.
func (t *Type) InterfaceIn(lang string) string {
	if e := t.InterfaceExternal(); e.Supports(lang) {
		return t.Interface
	}
	return ""
}

// Dependencies returns the names of the other types the generated file
// depends on: every custom type used by a field, the parent and the
// interface. Root externals and the type itself are excluded. The result
// is sorted and free of duplicates.
func (t *Type) Dependencies() []string {
	deps := slices.Clone(t.Usage.Custom)
	if t.ParentName != "" {
		deps = append(deps, t.ParentName)
	}
	if t.Interface != "" {
		deps = append(deps, t.Interface)
	}
	deps = slices.DeleteFunc(deps, func(name string) bool {
		if name == t.Name {
			return true
		}
		e, ok := t.Config().External(name)
		return ok && e.Root
	})
	slices.Sort(deps)
	return slices.Compact(deps)
}

// Label returns the template source name used in headers and logs.
func (t *Type) Label() string {
	if t.Source == "" {
		return t.Name
	}
	return baseName(t.Source)
}

// Owner returns the record the field belongs to.
func (f *Field) Owner() *Type { return f.owner }

// HasDefault reports if a default literal was declared.
func (f *Field) HasDefault() bool { return f.Default != nil }

// IsList reports if the field is a list at any depth.
func (f *Field) IsList() bool { return f.Type.IsList() }

// Ref returns the registry type referenced by the innermost element type,
// or nil for builtin elements.
func (f *Field) Ref() *Type {
	in := f.Type.Innermost()
	if in.Ref == "" {
		return nil
	}
	return f.owner.Lookup(in.Ref)
}

// ItemName returns the name of the loop element variable for the given list
// depth, derived from the singular form of the field name.
func (f *Field) ItemName(depth int) string {
	return singular(f.Name) + "Item" + itoa(depth)
}
