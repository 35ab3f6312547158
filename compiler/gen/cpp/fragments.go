package cpp

import (
	"fmt"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/schema/field"
)

// fragments renders the serialization triad of one record.
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
		return "other." + member(r.Field)
	default:
		return member(r.Field)
	}
}

func (fr fragments) parent(p *gen.Type) string { return qualify(fr.owner, p, p.Name) }

func (fr fragments) CopyParent(p *gen.Type) string {
	return fr.parent(p) + "::set(other);"
}

func (fr fragments) SaveParent(p *gen.Type) string {
	return fr.parent(p) + "::saveBinary(buf);"
}

func (fr fragments) LoadParent(p *gen.Type) string {
	return fr.parent(p) + "::loadBinary(buf);"
}

func (fr fragments) CopyValue(dst, src gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s = %s;", fr.ref(dst), fr.ref(src))
}

func (fr fragments) CopyRecord(dst, src gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.set(%s);", fr.ref(dst), fr.ref(src))
}

func (fr fragments) CopyList(dst, src gen.Ref, t *field.Type, l gen.Loop, body string) string {
	d := fr.ref(dst)
	return fmt.Sprintf("%s.clear();\nfor (const auto& %s : %s) {\n%s%s %s{};\n%s\n%s%s.push_back(%s);\n}",
		d, l.Source, fr.ref(src),
		indent, typeName(fr.owner, t.Elem), l.Item,
		gen.Indent(body, indent),
		indent, d, l.Item)
}

func (fr fragments) SaveValue(v gen.Ref, t *field.Type) string {
	return fmt.Sprintf("buf.%s(%s);", puts[t.Kind], fr.ref(v))
}

func (fr fragments) SaveEnum(v gen.Ref, t *field.Type) string {
	return fmt.Sprintf("buf.putEnum(static_cast<uint32_t>(%s), %s);", fr.ref(v), fr.count(t))
}

func (fr fragments) SaveRecord(v gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.saveBinary(buf);", fr.ref(v))
}

func (fr fragments) SaveList(v gen.Ref, _ *field.Type, l gen.Loop, body string) string {
	x := fr.ref(v)
	return fmt.Sprintf("buf.putInt(static_cast<uint32_t>(%s.size()));\nfor (const auto& %s : %s) {\n%s\n}",
		x, l.Item, x, gen.Indent(body, indent))
}

func (fr fragments) LoadValue(dst gen.Ref, t *field.Type) string {
	return fmt.Sprintf("%s = buf.%s();", fr.ref(dst), gets[t.Kind])
}

func (fr fragments) LoadEnum(dst gen.Ref, t *field.Type) string {
	return fmt.Sprintf("%s = static_cast<%s>(buf.getEnum(%s));", fr.ref(dst), typeName(fr.owner, t), fr.count(t))
}

func (fr fragments) LoadRecord(dst gen.Ref, _ *field.Type) string {
	return fmt.Sprintf("%s.loadBinary(buf);", fr.ref(dst))
}

// LoadList reads the count in the loop header so sibling lists never
// redeclare it.
func (fr fragments) LoadList(dst gen.Ref, t *field.Type, l gen.Loop, body string) string {
	d := fr.ref(dst)
	return fmt.Sprintf("%s.clear();\nfor (uint32_t %s = 0, %s = buf.getInt(); %s < %s; ++%s) {\n%s%s %s{};\n%s\n%s%s.push_back(%s);\n}",
		d, l.Index, l.Count, l.Index, l.Count, l.Index,
		indent, typeName(fr.owner, t.Elem), l.Item,
		gen.Indent(body, indent),
		indent, d, l.Item)
}

// count returns the count constant of the enum referenced by t.
func (fr fragments) count(t *field.Type) string {
	dep := fr.owner.Lookup(t.Ref)
	if dep == nil {
		return t.Ref + "Count"
	}
	return qualify(fr.owner, dep, dep.Name+"Count")
}
