// Package csharp generates C# classes and enums from the type graph.
package csharp

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/schema/field"
)

const indent = "    "

var title = cases.Title(language.Und, cases.NoLower)

// Dialect implements gen.Dialect for C#.
type Dialect struct{}

// New returns the C# dialect.
func New() *Dialect { return &Dialect{} }

// Name returns "csharp".
func (*Dialect) Name() string { return gen.LangCSharp }

// FileExtension returns ".cs".
func (*Dialect) FileExtension() string { return ".cs" }

// OutputPath returns <subdir>/<Name>.cs.
func (d *Dialect) OutputPath(t *gen.Type) string {
	return gen.DefaultPath(t, d.FileExtension())
}

// Generate renders the source file of t.
func (d *Dialect) Generate(t *gen.Type) ([]byte, error) {
	var b strings.Builder
	b.WriteString(gen.LineComment(gen.Header(t)))
	if usings := Usings(t); len(usings) > 0 {
		b.WriteByte('\n')
		for _, u := range usings {
			fmt.Fprintf(&b, "using %s;\n", u)
		}
	}
	fmt.Fprintf(&b, "\nnamespace %s\n{\n", Namespace(t))
	switch {
	case t.IsEnum():
		writeEnum(&b, t)
	case t.IsRecord():
		writeRecord(&b, t)
	default:
		return nil, gen.NewGenerationError(d.Name(), t.Name, "", fmt.Sprintf("unexpected kind %s", t.Kind), nil)
	}
	b.WriteString("}\n")
	return []byte(b.String()), nil
}

// Namespace returns the title-cased namespace of t, e.g. "Game.World".
func Namespace(t *gen.Type) string {
	segs := t.ScopeSegments(false)
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = title.String(s)
	}
	return strings.Join(out, ".")
}

// Usings returns the using directives of t, without the keyword.
func Usings(t *gen.Type) []string {
	var us []string
	if t.Usage.Uses(field.KindList) {
		us = append(us, "System.Collections.Generic")
	}
	for _, name := range t.Dependencies() {
		if dep := t.Lookup(name); dep != nil {
			us = append(us, fmt.Sprintf("%s = %s.%s", name, Namespace(dep), name))
			continue
		}
		if imp := t.Config().Externals[name].Import(gen.LangCSharp); imp != "" {
			us = append(us, imp)
		}
	}
	if t.Serialization {
		if imp := t.Config().BufferImport(gen.LangCSharp, ""); imp != "" {
			us = append(us, imp)
		}
	}
	return us
}

func writeEnum(b *strings.Builder, t *gen.Type) {
	fmt.Fprintf(b, "%spublic enum %s : uint\n%s{\n", indent, t.Name, indent)
	for _, v := range t.Values {
		fmt.Fprintf(b, "%s%s%s,\n", indent, indent, v)
	}
	fmt.Fprintf(b, "%s}\n\n", indent)
	fmt.Fprintf(b, "%spublic static class %sInfo\n%s{\n", indent, t.Name, indent)
	fmt.Fprintf(b, "%s%spublic const uint Count = %d;\n", indent, indent, t.Count())
	fmt.Fprintf(b, "%s}\n", indent)
}

func writeRecord(b *strings.Builder, t *gen.Type) {
	var bases []string
	if t.ParentName != "" {
		if e, ok := t.Config().External(t.ParentName); !ok || !e.Root {
			bases = append(bases, t.ParentName)
		}
	}
	if iface := t.InterfaceIn(gen.LangCSharp); iface != "" {
		bases = append(bases, iface)
	}
	fmt.Fprintf(b, "%spublic class %s", indent, t.Name)
	if len(bases) > 0 {
		fmt.Fprintf(b, " : %s", strings.Join(bases, ", "))
	}
	fmt.Fprintf(b, "\n%s{\n", indent)
	in := indent + indent
	for _, f := range t.Fields {
		fmt.Fprintf(b, "%spublic %s %s%s;\n", in, typeName(f.Type), f.Name, initializer(f))
	}
	if t.Serialization {
		tr := gen.Serialize[string](t, fragments{owner: t})
		modifier := "virtual"
		if t.SerializableParent() != nil {
			modifier = "override"
		}
		if len(t.Fields) > 0 {
			b.WriteByte('\n')
		}
		writeMethod(b, fmt.Sprintf("public void Set(%s other)", t.Name), tr.Copy)
		b.WriteByte('\n')
		writeMethod(b, fmt.Sprintf("public %s void SaveBinary(BitBuffer buf)", modifier), tr.Save)
		b.WriteByte('\n')
		writeMethod(b, fmt.Sprintf("public %s void LoadBinary(BitBuffer buf)", modifier), tr.Load)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func writeMethod(b *strings.Builder, sig string, body []string) {
	in := indent + indent
	fmt.Fprintf(b, "%s%s\n%s{\n%s%s}\n", in, sig, in, gen.Block(body, in+indent), in)
}

// initializer returns the field initializer. Strings start empty and
// reference types are always constructed.
func initializer(f *gen.Field) string {
	if f.HasDefault() {
		return " = " + literal(f)
	}
	if v := zero(f.Type); v != "" {
		return " = " + v
	}
	return ""
}

func literal(f *gen.Field) string {
	switch v := f.Default.(type) {
	case uint32:
		return fmt.Sprint(v)
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
		return "default"
	}
}

// zero returns the initial value of a declaration of type t, or "" when
// the language default applies.
func zero(t *field.Type) string {
	switch {
	case t.IsList(), t.IsRecord():
		return "new " + typeName(t) + "()"
	case t.Kind == field.KindString:
		return `""`
	default:
		return ""
	}
}

// typeName maps a field type to its C# spelling. Referenced templates are
// spelled unqualified through their using alias.
func typeName(t *field.Type) string {
	switch t.Kind {
	case field.KindInteger:
		return "uint"
	case field.KindString:
		return "string"
	case field.KindFloat:
		return "float"
	case field.KindBoolean:
		return "bool"
	case field.KindList:
		return "List<" + typeName(t.Elem) + ">"
	default:
		return t.Ref
	}
}
