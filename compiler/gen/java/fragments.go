package java

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
		field.KindInteger: "putInt",
		field.KindString:  "putString",
		field.KindFloat:   "putFloat",
		field.KindBoolean: "putBit",
	}
	gets = map[field.Kind]string{
		field.KindInteger: "getInt",
		field.KindString:  "getString",
		field.KindFloat:   "getFloat",
		field.KindBoolean: "getBit",
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

func (fragments) CopyParent(*gen.Type) string { return "super.set(other);" }
func (fragments) SaveParent(*gen.Type) string { return "super.saveBinary(buf);" }
func (fragments) LoadParent(*gen.Type) string { return "super.loadBinary(buf);" }

func (fr fragments) CopyValue(dst, src gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s = %s;", fr.ref(dst), fr.ref(src))
}

func (fr fragments) CopyRecord(dst, src gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.set(%s);", fr.ref(dst), fr.ref(src))
}

func (fr fragments) CopyList(dst, src gen.Ref, t *field.Type, l gen.Loop, body string) string {
	d := fr.ref(dst)
	return fmt.Sprintf("%s.clear();\nfor (%s %s : %s) {\n%s\n%s\n%s%s.add(%s);\n}",
		d, typeName(t.Elem, true), l.Source, fr.ref(src),
		fr.local(t.Elem, l.Item),
		gen.Indent(body, indent),
		indent, d, l.Item)
}

func (fr fragments) SaveValue(v gen.Ref, t *field.Type) string {
	return fmt.Sprintf("buf.%s(%s);", puts[t.Kind], fr.ref(v))
}

func (fr fragments) SaveEnum(v gen.Ref, t *field.Type) string {
	return fmt.Sprintf("buf.putEnum(%s.ordinal(), %s.COUNT);", fr.ref(v), t.Ref)
}

func (fr fragments) SaveRecord(v gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.saveBinary(buf);", fr.ref(v))
}

func (fr fragments) SaveList(v gen.Ref, t *field.Type, l gen.Loop, body string) string {
	x := fr.ref(v)
	return fmt.Sprintf("buf.putInt(%s.size());\nfor (%s %s : %s) {\n%s\n}",
		x, typeName(t.Elem, true), l.Item, x, gen.Indent(body, indent))
}

func (fr fragments) LoadValue(dst gen.Ref, t *field.Type) string {
	return fmt.Sprintf("%s = buf.%s();", fr.ref(dst), gets[t.Kind])
}

func (fr fragments) LoadEnum(dst gen.Ref, t *field.Type) string {
	return fmt.Sprintf("%s = %s.values()[buf.getEnum(%s.COUNT)];", fr.ref(dst), t.Ref, t.Ref)
}

func (fr fragments) LoadRecord(dst gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.loadBinary(buf);", fr.ref(dst))
}

func (fr fragments) LoadList(dst gen.Ref, t *field.Type, l gen.Loop, body string) string {
	d := fr.ref(dst)
	return fmt.Sprintf("%s.clear();\nfor (int %s = 0, %s = buf.getInt(); %s < %s; %s++) {\n%s\n%s\n%s%s.add(%s);\n}",
		d, l.Index, l.Count, l.Index, l.Count, l.Index,
		fr.local(t.Elem, l.Item),
		gen.Indent(body, indent),
		indent, d, l.Item)
}

// local declares the element variable of a loop.
func (fr fragments) local(t *field.Type, name string) string {
	v := zero(fr.owner, t)
	switch {
	case v != "":
	case t.Kind == field.KindInteger:
		v = "0"
	case t.Kind == field.KindFloat:
		v = "0f"
	default:
		v = "false"
	}
	return fmt.Sprintf("%s%s %s = %s;", indent, typeName(t, true), name, v)
}
