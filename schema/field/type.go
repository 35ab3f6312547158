package field

import (
	"errors"
	"fmt"
	"strings"
)

// A Kind classifies a member type.
type Kind uint8

// List of member type kinds.
const (
	KindInvalid Kind = iota
	KindInteger
	KindString
	KindFloat
	KindBoolean
	KindList
	KindCustom
	KindEnum
	KindRecord
	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInteger: "Integer",
	KindString:  "String",
	KindFloat:   "Float",
	KindBoolean: "Boolean",
	KindList:    "List",
	KindCustom:  "Custom",
	KindEnum:    "Enum",
	KindRecord:  "Record",
}

// String returns the schema spelling of the kind.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Valid reports if the kind is a known kind.
func (k Kind) Valid() bool { return k > KindInvalid && k < endKinds }

// Builtin reports if the kind is provided by the target languages
// themselves, and not by another template.
func (k Kind) Builtin() bool { return k >= KindInteger && k <= KindList }

// Scalar reports if the kind is one of the builtin scalar kinds.
func (k Kind) Scalar() bool { return k >= KindInteger && k <= KindBoolean }

// Type describes the declared type of a member.
type Type struct {
	// Kind of the type.
	Kind Kind
	// Elem is the element type of a list.
	Elem *Type
	// Ref is the referenced template name for custom, enum and record kinds.
	Ref string
}

// Integer returns the Integer type.
func Integer() *Type { return &Type{Kind: KindInteger} }

// String returns the String type.
func String() *Type { return &Type{Kind: KindString} }

// Float returns the Float type.
func Float() *Type { return &Type{Kind: KindFloat} }

// Boolean returns the Boolean type.
func Boolean() *Type { return &Type{Kind: KindBoolean} }

// List returns a list type of the given element type.
func List(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

// Custom returns an unresolved reference to the named template.
func Custom(name string) *Type { return &Type{Kind: KindCustom, Ref: name} }

// EnumRef returns a resolved reference to the named enum template.
func EnumRef(name string) *Type { return &Type{Kind: KindEnum, Ref: name} }

// RecordRef returns a resolved reference to the named record template.
func RecordRef(name string) *Type { return &Type{Kind: KindRecord, Ref: name} }

// IsBuiltin reports if the type is one of the builtin scalars or a list.
func (t *Type) IsBuiltin() bool { return t != nil && t.Kind.Builtin() }

// IsScalar reports if the type is a builtin scalar.
func (t *Type) IsScalar() bool { return t != nil && t.Kind.Scalar() }

// IsList reports if the type is a list.
func (t *Type) IsList() bool { return t != nil && t.Kind == KindList }

// IsEnum reports if the type is a resolved enum reference.
func (t *Type) IsEnum() bool { return t != nil && t.Kind == KindEnum }

// IsRecord reports if the type is a resolved record reference.
func (t *Type) IsRecord() bool { return t != nil && t.Kind == KindRecord }

// IsResolved reports if no custom reference remains at any nesting level.
func (t *Type) IsResolved() bool {
	resolved := true
	t.Walk(func(n *Type, _ int) {
		if n.Kind == KindCustom || !n.Kind.Valid() {
			resolved = false
		}
	})
	return resolved
}

// Depth returns the list nesting depth. Scalars and references have depth 0.
func (t *Type) Depth() int {
	d := 0
	for n := t; n != nil && n.Kind == KindList; n = n.Elem {
		d++
	}
	return d
}

// Innermost returns the non-list type at the bottom of the list nesting.
func (t *Type) Innermost() *Type {
	n := t
	for n != nil && n.Kind == KindList {
		n = n.Elem
	}
	return n
}

// Walk calls fn for the type and every nested element type, outermost
// first. The depth argument is the list nesting level of the visited node.
func (t *Type) Walk(fn func(*Type, int)) {
	for d, n := 0, t; n != nil; d, n = d+1, n.Elem {
		fn(n, d)
		if n.Kind != KindList {
			return
		}
	}
}

// Map returns a copy of the type where every custom reference was replaced
// by the result of fn.
func (t *Type) Map(fn func(name string) (*Type, error)) (*Type, error) {
	switch {
	case t == nil:
		return nil, errors.New("field: nil type")
	case t.Kind == KindList:
		elem, err := t.Elem.Map(fn)
		if err != nil {
			return nil, err
		}
		return List(elem), nil
	case t.Kind == KindCustom:
		return fn(t.Ref)
	default:
		c := *t
		return &c, nil
	}
}

// String returns the schema spelling of the type.
func (t *Type) String() string {
	switch {
	case t == nil:
		return kindNames[KindInvalid]
	case t.Kind == KindList:
		return "List<" + t.Elem.String() + ">"
	case t.Kind == KindCustom, t.Kind == KindEnum, t.Kind == KindRecord:
		return t.Ref
	default:
		return t.Kind.String()
	}
}

// Equal reports if both types describe the same type.
func (t *Type) Equal(u *Type) bool {
	if t == nil || u == nil {
		return t == u
	}
	if t.Kind != u.Kind || t.Ref != u.Ref {
		return false
	}
	if t.Kind == KindList {
		return t.Elem.Equal(u.Elem)
	}
	return true
}

var builtins = map[string]func() *Type{
	"Integer": Integer,
	"String":  String,
	"Float":   Float,
	"Boolean": Boolean,
	"int":     Integer,
	"string":  String,
	"float":   Float,
	"bool":    Boolean,
}

// ParseError is returned by Parse for malformed type expressions.
type ParseError struct {
	Input   string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("field: invalid type %q: %s", e.Input, e.Message)
}

// Parse parses a member type expression.
func Parse(s string) (*Type, error) {
	in := strings.TrimSpace(s)
	t, rest, err := parse(in)
	if err != nil {
		return nil, &ParseError{Input: s, Message: err.Error()}
	}
	if rest != "" {
		return nil, &ParseError{Input: s, Message: fmt.Sprintf("unexpected %q", rest)}
	}
	return t, nil
}

// MustParse is like Parse but panics if the expression is invalid.
func MustParse(s string) *Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parse(s string) (*Type, string, error) {
	name, rest := ident(s)
	if name == "" {
		if s == "" {
			return nil, "", errors.New("missing type name")
		}
		return nil, "", fmt.Errorf("unexpected %q", s)
	}
	if strings.EqualFold(name, "list") && strings.HasPrefix(rest, "<") {
		elem, rest, err := parse(strings.TrimSpace(rest[1:]))
		if err != nil {
			return nil, "", err
		}
		if !strings.HasPrefix(rest, ">") {
			return nil, "", errors.New("unbalanced list brackets")
		}
		return List(elem), strings.TrimSpace(rest[1:]), nil
	}
	if strings.EqualFold(name, "list") && rest == "" {
		return nil, "", errors.New("list without element type")
	}
	if ctor, ok := builtins[name]; ok {
		return ctor(), rest, nil
	}
	return Custom(name), rest, nil
}

// ident splits s into a leading identifier and the trimmed remainder.
func ident(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || (i > 0 && '0' <= c && c <= '9') {
			i++
			continue
		}
		break
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// ValidIdent reports if s is usable as an identifier in every target language.
func ValidIdent(s string) bool {
	if s == "" {
		return false
	}
	name, rest := ident(s)
	return name == s && rest == ""
}
