// Package cpp generates C++ headers from the type graph.
package cpp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/schema/field"
)

// DefaultBufferInclude is the header declaring BitBuffer, relative to the
// include root.
const DefaultBufferInclude = "BitBuffer.h"

const indent = "    "

// Dialect implements gen.Dialect for C++. Every template becomes one
// header-only file.
type Dialect struct{}

// New returns the C++ dialect.
func New() *Dialect { return &Dialect{} }

// Name returns "cpp".
func (*Dialect) Name() string { return gen.LangCpp }

// FileExtension returns ".h".
func (*Dialect) FileExtension() string { return ".h" }

// OutputPath returns <subdir>/<Name>.h.
func (d *Dialect) OutputPath(t *gen.Type) string {
	return gen.DefaultPath(t, d.FileExtension())
}

// Generate renders the header of t.
func (d *Dialect) Generate(t *gen.Type) ([]byte, error) {
	var (
		b     strings.Builder
		guard = Guard(t)
		ns    = strings.Join(t.ScopeSegments(false), "::")
	)
	b.WriteString(gen.LineComment(gen.Header(t)))
	fmt.Fprintf(&b, "\n#ifndef %s\n#define %s\n\n", guard, guard)
	for _, inc := range Includes(t) {
		fmt.Fprintf(&b, "#include %s\n", inc)
	}
	fmt.Fprintf(&b, "\nnamespace %s {\n\n", ns)
	switch {
	case t.IsEnum():
		writeEnum(&b, t)
	case t.IsRecord():
		writeRecord(&b, t)
	default:
		return nil, gen.NewGenerationError(d.Name(), t.Name, "", fmt.Sprintf("unexpected kind %s", t.Kind), nil)
	}
	fmt.Fprintf(&b, "\n}  // namespace %s\n\n#endif  // %s\n", ns, guard)
	return []byte(b.String()), nil
}

// Guard returns the include guard macro of t, e.g. GAME_NET_PLAYER_INFO_H.
func Guard(t *gen.Type) string {
	parts := slices.Clone(t.ScopeSegments(false))
	parts = append(parts, gen.Funcs.Snake(t.Name), "h")
	return strings.ToUpper(strings.Join(parts, "_"))
}

// Includes returns the include operands of t in emission order: standard
// headers first, then the headers of the dependencies, then the buffer.
func Includes(t *gen.Type) []string {
	var std []string
	if t.IsEnum() {
		std = append(std, "<cstddef>", "<cstdint>")
	} else {
		if t.Usage.Uses(field.KindInteger) || t.Serialization {
			std = append(std, "<cstdint>")
		}
		if t.Usage.Uses(field.KindString) {
			std = append(std, "<string>")
		}
		if t.Usage.Uses(field.KindList) {
			std = append(std, "<vector>")
		}
	}
	incs := std
	for _, name := range t.Dependencies() {
		if dep := t.Lookup(name); dep != nil {
			incs = append(incs, `"`+gen.DefaultPath(dep, ".h")+`"`)
			continue
		}
		if imp := t.Config().Externals[name].Import(gen.LangCpp); imp != "" {
			incs = append(incs, operand(imp))
		}
	}
	if t.Serialization {
		incs = append(incs, operand(t.Config().BufferImport(gen.LangCpp, DefaultBufferInclude)))
	}
	return incs
}

func operand(inc string) string {
	if strings.HasPrefix(inc, "<") || strings.HasPrefix(inc, `"`) {
		return inc
	}
	return `"` + inc + `"`
}

func writeEnum(b *strings.Builder, t *gen.Type) {
	fmt.Fprintf(b, "enum class %s : uint32_t {\n", t.Name)
	for _, v := range t.Values {
		fmt.Fprintf(b, "%s%s,\n", indent, v)
	}
	b.WriteString("};\n\n")
	fmt.Fprintf(b, "static const size_t %sCount = %d;\n", t.Name, t.Count())
}

func writeRecord(b *strings.Builder, t *gen.Type) {
	var bases []string
	switch {
	case t.Parent != nil:
		bases = append(bases, "public "+qualify(t, t.Parent, t.Parent.Name))
	case t.ParentName != "":
		if e, ok := t.Config().External(t.ParentName); !ok || !e.Root {
			bases = append(bases, "public "+t.ParentName)
		}
	}
	if iface := t.InterfaceIn(gen.LangCpp); iface != "" {
		bases = append(bases, "public "+iface)
	}
	fmt.Fprintf(b, "class %s", t.Name)
	if len(bases) > 0 {
		fmt.Fprintf(b, " : %s", strings.Join(bases, ", "))
	}
	b.WriteString(" {\npublic:\n")
	for _, f := range t.Fields {
		fmt.Fprintf(b, "%s%s %s%s;\n", indent, typeName(t, f.Type), member(f), initializer(t, f))
	}
	if !t.Serialization {
		b.WriteString("};\n")
		return
	}
	var (
		tr       = gen.Serialize[string](t, fragments{owner: t})
		virtual  = "virtual "
		override = ""
		body     = indent + indent
	)
	if t.SerializableParent() != nil {
		virtual, override = "", " override"
	}
	if len(t.Fields) > 0 {
		b.WriteByte('\n')
	}
	if virtual != "" {
		fmt.Fprintf(b, "%svirtual ~%s() = default;\n\n", indent, t.Name)
	}
	fmt.Fprintf(b, "%svoid set(const %s& other) {\n%s%s}\n\n", indent, t.Name, gen.Block(tr.Copy, body), indent)
	fmt.Fprintf(b, "%s%svoid saveBinary(BitBuffer& buf) const%s {\n%s%s}\n\n", indent, virtual, override, gen.Block(tr.Save, body), indent)
	fmt.Fprintf(b, "%s%svoid loadBinary(BitBuffer& buf)%s {\n%s%s}\n", indent, virtual, override, gen.Block(tr.Load, body), indent)
	b.WriteString("};\n")
}

func member(f *gen.Field) string { return "m_" + f.Name }

// initializer returns the member initializer. Scalars and enums are value
// initialized when no default is declared.
func initializer(owner *gen.Type, f *gen.Field) string {
	if !f.HasDefault() {
		if f.Type.IsScalar() || f.Type.IsEnum() {
			return "{}"
		}
		return ""
	}
	return " = " + literal(owner, f)
}

func literal(owner *gen.Type, f *gen.Field) string {
	switch v := f.Default.(type) {
	case uint32:
		return fmt.Sprintf("%du", v)
	case float64:
		return gen.Funcs.Float(v) + "f"
	case bool:
		return fmt.Sprint(v)
	case string:
		if f.Type.IsEnum() {
			return typeName(owner, f.Type) + "::" + v
		}
		return gen.Funcs.Quote(v)
	default:
		return "{}"
	}
}

// typeName maps a field type to its C++ spelling.
func typeName(owner *gen.Type, t *field.Type) string {
	switch t.Kind {
	case field.KindInteger:
		return "uint32_t"
	case field.KindString:
		return "std::string"
	case field.KindFloat:
		return "float"
	case field.KindBoolean:
		return "bool"
	case field.KindList:
		return "std::vector<" + typeName(owner, t.Elem) + ">"
	default:
		if dep := owner.Lookup(t.Ref); dep != nil {
			return qualify(owner, dep, dep.Name)
		}
		return t.Ref
	}
}

// qualify returns ident as seen from owner. Identifiers of types declared
// in another namespace are fully qualified.
func qualify(owner, dep *gen.Type, ident string) string {
	if dep.Scope(false) == owner.Scope(false) {
		return ident
	}
	return "::" + strings.Join(dep.ScopeSegments(false), "::") + "::" + ident
}
