// Package java generates Java classes and enums from the type graph.
package java

import (
	"fmt"
	"math"
	"strings"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/schema/field"
)

// DefaultBufferImport is the BitBuffer class imported by serializable
// records unless configured otherwise.
const DefaultBufferImport = "utils.phantom.multiplayer.BitBuffer"

const indent = "    "

// Dialect implements gen.Dialect for Java.
type Dialect struct{}

// New returns the Java dialect.
func New() *Dialect { return &Dialect{} }

// Name returns "java".
func (*Dialect) Name() string { return gen.LangJava }

// FileExtension returns ".java".
func (*Dialect) FileExtension() string { return ".java" }

// OutputPath returns <subdir>/<Name>.java.
func (d *Dialect) OutputPath(t *gen.Type) string {
	return gen.DefaultPath(t, d.FileExtension())
}

// Generate renders the source file of t.
func (d *Dialect) Generate(t *gen.Type) ([]byte, error) {
	var b strings.Builder
	b.WriteString(gen.LineComment(gen.Header(t)))
	fmt.Fprintf(&b, "\npackage %s;\n", t.Scope(true))
	if imports := Imports(t); len(imports) > 0 {
		b.WriteByte('\n')
		for _, imp := range imports {
			fmt.Fprintf(&b, "import %s;\n", imp)
		}
	}
	b.WriteByte('\n')
	switch {
	case t.IsEnum():
		writeEnum(&b, t)
	case t.IsRecord():
		writeRecord(&b, t)
	default:
		return nil, gen.NewGenerationError(d.Name(), t.Name, "", fmt.Sprintf("unexpected kind %s", t.Kind), nil)
	}
	return []byte(b.String()), nil
}

// Imports returns the imported classes of t. Dependencies are imported
// even when they share the package of t.
func Imports(t *gen.Type) []string {
	var imps []string
	if t.Usage.Uses(field.KindList) {
		imps = append(imps, "java.util.ArrayList")
	}
	for _, name := range t.Dependencies() {
		if dep := t.Lookup(name); dep != nil {
			imps = append(imps, dep.Scope(true)+"."+name)
			continue
		}
		if imp := t.Config().Externals[name].Import(gen.LangJava); imp != "" {
			imps = append(imps, imp)
		}
	}
	if t.Serialization {
		imps = append(imps, t.Config().BufferImport(gen.LangJava, DefaultBufferImport))
	}
	return imps
}

func writeEnum(b *strings.Builder, t *gen.Type) {
	fmt.Fprintf(b, "public enum %s {\n", t.Name)
	for i, v := range t.Values {
		sep := ","
		if i == len(t.Values)-1 {
			sep = ";"
		}
		fmt.Fprintf(b, "%s%s%s\n", indent, v, sep)
	}
	fmt.Fprintf(b, "\n%spublic static final int COUNT = %d;\n}\n", indent, t.Count())
}

func writeRecord(b *strings.Builder, t *gen.Type) {
	fmt.Fprintf(b, "public class %s", t.Name)
	if t.ParentName != "" {
		if e, ok := t.Config().External(t.ParentName); !ok || !e.Root {
			fmt.Fprintf(b, " extends %s", t.ParentName)
		}
	}
	if iface := t.InterfaceIn(gen.LangJava); iface != "" {
		fmt.Fprintf(b, " implements %s", iface)
	}
	b.WriteString(" {\n")
	for _, f := range t.Fields {
		fmt.Fprintf(b, "%spublic %s %s%s;\n", indent, typeName(f.Type, false), f.Name, initializer(t, f))
	}
	if t.Serialization {
		tr := gen.Serialize[string](t, fragments{owner: t})
		override := ""
		if t.SerializableParent() != nil {
			override = indent + "@Override\n"
		}
		if len(t.Fields) > 0 {
			b.WriteByte('\n')
		}
		writeMethod(b, "", fmt.Sprintf("public void set(%s other)", t.Name), tr.Copy)
		b.WriteByte('\n')
		writeMethod(b, override, "public void saveBinary(BitBuffer buf)", tr.Save)
		b.WriteByte('\n')
		writeMethod(b, override, "public void loadBinary(BitBuffer buf)", tr.Load)
	}
	b.WriteString("}\n")
}

func writeMethod(b *strings.Builder, annotation, sig string, body []string) {
	fmt.Fprintf(b, "%s%s%s {\n%s%s}\n", annotation, indent, sig, gen.Block(body, indent+indent), indent)
}

// initializer returns the field initializer. Strings start empty, enums
// start at their first value and reference types are always constructed.
func initializer(owner *gen.Type, f *gen.Field) string {
	if f.HasDefault() {
		return " = " + literal(f)
	}
	if v := zero(owner, f.Type); v != "" {
		return " = " + v
	}
	return ""
}

func literal(f *gen.Field) string {
	switch v := f.Default.(type) {
	case uint32:
		return intLiteral(v)
	case float64:
		return gen.Funcs.Float(v) + "f"
	case bool:
		return fmt.Sprint(v)
	case string:
		if f.Type.IsEnum() {
			return f.Type.Ref + "." + v
		}
		return gen.Funcs.Quote(v)
	default:
		return "null"
	}
}

// intLiteral spells an unsigned 32-bit value as a Java int, keeping the
// bit pattern of values above the signed range.
func intLiteral(v uint32) string {
	if v > math.MaxInt32 {
		return fmt.Sprintf("(int) %dL", v)
	}
	return fmt.Sprint(v)
}

// zero returns the initial value of a declaration of type t, or "" when
// the language default applies.
func zero(owner *gen.Type, t *field.Type) string {
	switch {
	case t.IsList(), t.IsRecord():
		return "new " + typeName(t, false) + "()"
	case t.IsEnum():
		if dep := owner.Lookup(t.Ref); dep != nil && len(dep.Values) > 0 {
			return t.Ref + "." + dep.Values[0]
		}
		return "null"
	case t.Kind == field.KindString:
		return `""`
	default:
		return ""
	}
}

// typeName maps a field type to its Java spelling. Scalars are boxed when
// used as type arguments.
func typeName(t *field.Type, boxed bool) string {
	switch t.Kind {
	case field.KindInteger:
		if boxed {
			return "Integer"
		}
		return "int"
	case field.KindString:
		return "String"
	case field.KindFloat:
		if boxed {
			return "Float"
		}
		return "float"
	case field.KindBoolean:
		if boxed {
			return "Boolean"
		}
		return "boolean"
	case field.KindList:
		return "ArrayList<" + typeName(t.Elem, true) + ">"
	default:
		return t.Ref
	}
}
