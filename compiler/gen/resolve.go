package gen

import (
	"slices"

	"github.com/syssam/podgen/schema/field"
)

// Usage is the resolver output for one record: the builtin kinds used by
// any field at any list depth, and the custom type names referenced.
type Usage struct {
	// Builtins holds the used builtin kinds, in Kind order.
	Builtins []field.Kind
	// Custom holds the referenced type names, sorted and deduplicated.
	Custom []string
}

// Uses reports if the builtin kind is used.
func (u Usage) Uses(k field.Kind) bool {
	return slices.Contains(u.Builtins, k)
}

// References reports if the custom type name is referenced.
func (u Usage) References(name string) bool {
	_, ok := slices.BinarySearch(u.Custom, name)
	return ok
}

// Resolve accumulates the builtin and custom sets over the given field
// types. Every list level adds List and recurses into its element; custom
// names are collected regardless of their depth. Both resolved and
// unresolved types are accepted.
func Resolve(types ...*field.Type) Usage {
	var (
		builtins = make(map[field.Kind]struct{})
		custom   = make(map[string]struct{})
	)
	for _, t := range types {
		t.Walk(func(level *field.Type, _ int) {
			switch {
			case level.Kind.Builtin():
				builtins[level.Kind] = struct{}{}
			case level.Ref != "":
				custom[level.Ref] = struct{}{}
			}
		})
	}
	var u Usage
	for k := range builtins {
		u.Builtins = append(u.Builtins, k)
	}
	for name := range custom {
		u.Custom = append(u.Custom, name)
	}
	slices.Sort(u.Builtins)
	slices.Sort(u.Custom)
	return u
}

// classify maps every custom name of t to an enum or record reference
// using the registry. Unknown names are ReferenceErrors.
func (g *Graph) classify(owner, fieldName string, t *field.Type) (*field.Type, error) {
	return t.Map(func(name string) (*field.Type, error) {
		ref := g.index[name]
		switch {
		case ref == nil:
			if _, ok := g.External(name); ok {
				return nil, NewReferenceError(owner, fieldName, name, "external types cannot be used as field types")
			}
			return nil, NewReferenceError(owner, fieldName, name, "unknown type")
		case ref.IsEnum():
			return field.EnumRef(name), nil
		default:
			return field.RecordRef(name), nil
		}
	})
}
