// Package field provides the type model for template members.
//
// A member type is written in a schema document as a string and parsed into a
// tagged variant:
//
//	field.Parse("Integer")            // Integer
//	field.Parse("List<String>")       // List(String)
//	field.Parse("List<List<Hat>>")    // List(List(Custom("Hat")))
//
// # Type Kinds
//
// Builtin kinds are Integer, String, Float and Boolean. List wraps any other
// type, recursively. Every other identifier parses as Custom: a reference to
// another template whose kind is not known until the registry is available.
// Resolution replaces Custom with either EnumRef or RecordRef:
//
//	t, _ := field.Parse("List<Color>")
//	resolved := t.Map(func(name string) (*field.Type, error) {
//	    return field.EnumRef(name), nil
//	})
//
// Legacy lowercase spellings (int, string, float, bool, list<T>) are accepted
// and normalized to the canonical form returned by Type.String.
package field
