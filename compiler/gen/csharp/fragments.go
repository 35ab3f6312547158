package csharp

import (
	"fmt"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/schema/field"
)

type fragments struct {
	owner *gen.Type
}

var _ gen.Fragments[string] = fragments{}

var (
	puts = map[field.Kind]string{
		field.KindInteger: "PutInt",
		field.KindString:  "PutString",
		field.KindFloat:   "PutFloat",
		field.KindBoolean: "PutBit",
	}
	gets = map[field.Kind]string{
		field.KindInteger: "GetInt",
		field.KindString:  "GetString",
		field.KindFloat:   "GetFloat",
		field.KindBoolean: "GetBit",
	}
)

func (fragments) ref(r gen.Ref) string {
	switch {
	case r.IsVar():
		return r.Var
	case r.Source:
		return "other." + r.Field.Name
	default:
		return "this." + r.Field.Name
	}
}

func (fragments) CopyParent(*gen.Type) string { return "base.Set(other);" }
func (fragments) SaveParent(*gen.Type) string { return "base.SaveBinary(buf);" }
func (fragments) LoadParent(*gen.Type) string { return "base.LoadBinary(buf);" }

func (fr fragments) CopyValue(dst, src gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s = %s;", fr.ref(dst), fr.ref(src))
}

func (fr fragments) CopyRecord(dst, src gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.Set(%s);", fr.ref(dst), fr.ref(src))
}

func (fr fragments) CopyList(dst, src gen.Ref, t *field.Type, l gen.Loop, body string) string {
	d := fr.ref(dst)
	return fmt.Sprintf("%s.Clear();\nforeach (var %s in %s)\n{\n%s\n%s\n%s%s.Add(%s);\n}",
		d, l.Source, fr.ref(src),
		local(t.Elem, l.Item),
		gen.Indent(body, indent),
		indent, d, l.Item)
}

func (fr fragments) SaveValue(v gen.Ref, t *field.Type) string {
	return fmt.Sprintf("buf.%s(%s);", puts[t.Kind], fr.ref(v))
}

func (fr fragments) SaveEnum(v gen.Ref, t *field.Type) string {
	return fmt.Sprintf("buf.PutEnum((uint)%s, %s);", fr.ref(v), fr.count(t))
}

func (fr fragments) SaveRecord(v gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.SaveBinary(buf);", fr.ref(v))
}

func (fr fragments) SaveList(v gen.Ref, _ *field.Type, l gen.Loop, body string) string {
	x := fr.ref(v)
	return fmt.Sprintf("buf.PutInt((uint)%s.Count);\nforeach (var %s in %s)\n{\n%s\n}",
		x, l.Item, x, gen.Indent(body, indent))
}

func (fr fragments) LoadValue(dst gen.Ref, t *field.Type) string {
	return fmt.Sprintf("%s = buf.%s();", fr.ref(dst), gets[t.Kind])
}

func (fr fragments) LoadEnum(dst gen.Ref, t *field.Type) string {
	return fmt.Sprintf("%s = (%s)buf.GetEnum(%s);", fr.ref(dst), t.Ref, fr.count(t))
}

func (fr fragments) LoadRecord(dst gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.LoadBinary(buf);", fr.ref(dst))
}

func (fr fragments) LoadList(dst gen.Ref, t *field.Type, l gen.Loop, body string) string {
	d := fr.ref(dst)
	return fmt.Sprintf("%s.Clear();\nfor (uint %s = 0, %s = buf.GetInt(); %s < %s; %s++)\n{\n%s\n%s\n%s%s.Add(%s);\n}",
		d, l.Index, l.Count, l.Index, l.Count, l.Index,
		local(t.Elem, l.Item),
		gen.Indent(body, indent),
		indent, d, l.Item)
}

// count returns the count constant of the enum referenced by t. The info
// class has no using alias, so other namespaces are spelled out.
func (fr fragments) count(t *field.Type) string {
	dep := fr.owner.Lookup(t.Ref)
	if dep == nil || dep.Scope(false) == fr.owner.Scope(false) {
		return t.Ref + "Info.Count"
	}
	return "global::" + Namespace(dep) + "." + t.Ref + "Info.Count"
}

// local declares the element variable of a loop.
func local(t *field.Type, name string) string {
	v := zero(t)
	if v == "" {
		v = "default"
	}
	return fmt.Sprintf("%s%s %s = %s;", indent, typeName(t), name, v)
}
