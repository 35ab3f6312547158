package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/schema/field"
)

// fragments renders the triad as jennifer statements. Every fragment is a
// list of statements; list fragments nest their body in a loop.
type fragments struct {
	*file
}

var _ gen.Fragments[[]jen.Code] = fragments{}

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

// value returns a fresh statement for the reference. Statements are
// mutated by chaining, so they are never shared.
func (fragments) value(r gen.Ref) *jen.Statement {
	switch {
	case r.IsVar():
		return jen.Id(r.Var)
	case r.Source:
		return jen.Id("src").Dot(gen.Funcs.Pascal(r.Field.Name))
	default:
		return jen.Id("r").Dot(gen.Funcs.Pascal(r.Field.Name))
	}
}

func buf() *jen.Statement { return jen.Id("buf") }

// check returns `if err := call; err != nil { return err }`.
func check(call jen.Code) jen.Code {
	return jen.If(jen.Err().Op(":=").Add(call), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err()))
}

// assign returns `if lhs, err = call; err != nil { return err }`. The
// loader declares err as its named result.
func assign(lhs, call jen.Code) jen.Code {
	return jen.If(jen.List(lhs, jen.Err()).Op("=").Add(call), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err()))
}

func (fr fragments) CopyParent(p *gen.Type) []jen.Code {
	return []jen.Code{jen.Id("r").Dot(p.Name).Dot("Copy").Call(jen.Op("&").Id("src").Dot(p.Name))}
}

func (fr fragments) SaveParent(p *gen.Type) []jen.Code {
	return []jen.Code{check(jen.Id("r").Dot(p.Name).Dot("SaveBinary").Call(buf()))}
}

func (fr fragments) LoadParent(p *gen.Type) []jen.Code {
	return []jen.Code{
		jen.If(jen.Err().Op("=").Id("r").Dot(p.Name).Dot("LoadBinary").Call(buf()), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
	}
}

func (fr fragments) CopyValue(dst, src gen.Ref, _ *field.Type) []jen.Code {
	return []jen.Code{fr.value(dst).Op("=").Add(fr.value(src))}
}

func (fr fragments) CopyRecord(dst, src gen.Ref, _ *field.Type) []jen.Code {
	return []jen.Code{fr.value(dst).Dot("Copy").Call(jen.Op("&").Add(fr.value(src)))}
}

func (fr fragments) CopyList(dst, src gen.Ref, t *field.Type, l gen.Loop, body []jen.Code) []jen.Code {
	inner := append([]jen.Code{jen.Var().Id(l.Item).Add(fr.typ(t.Elem))}, body...)
	inner = append(inner, fr.value(dst).Op("=").Append(fr.value(dst), jen.Id(l.Item)))
	return []jen.Code{
		fr.value(dst).Op("=").Make(fr.typ(t), jen.Lit(0), jen.Len(fr.value(src))),
		jen.For(jen.List(jen.Id("_"), jen.Id(l.Source)).Op(":=").Range().Add(fr.value(src))).Block(inner...),
	}
}

func (fr fragments) SaveValue(v gen.Ref, t *field.Type) []jen.Code {
	return []jen.Code{buf().Dot(puts[t.Kind]).Call(fr.value(v))}
}

func (fr fragments) SaveEnum(v gen.Ref, t *field.Type) []jen.Code {
	return []jen.Code{check(buf().Dot("PutEnum").Call(jen.Uint32().Call(fr.value(v)), fr.count(t)))}
}

func (fr fragments) SaveRecord(v gen.Ref, _ *field.Type) []jen.Code {
	return []jen.Code{check(fr.value(v).Dot("SaveBinary").Call(buf()))}
}

func (fr fragments) SaveList(v gen.Ref, _ *field.Type, l gen.Loop, body []jen.Code) []jen.Code {
	return []jen.Code{
		buf().Dot("PutInt").Call(jen.Uint32().Call(jen.Len(fr.value(v)))),
		jen.For(jen.List(jen.Id("_"), jen.Id(l.Item)).Op(":=").Range().Add(fr.value(v))).Block(body...),
	}
}

func (fr fragments) LoadValue(dst gen.Ref, t *field.Type) []jen.Code {
	return []jen.Code{assign(fr.value(dst), buf().Dot(gets[t.Kind]).Call())}
}

// LoadEnum reads the ordinal into a block local, then converts it.
func (fr fragments) LoadEnum(dst gen.Ref, t *field.Type) []jen.Code {
	return []jen.Code{
		jen.Block(
			jen.Var().Id("v").Uint32(),
			assign(jen.Id("v"), buf().Dot("GetEnum").Call(fr.count(t))),
			fr.value(dst).Op("=").Add(fr.typ(t).Call(jen.Id("v"))),
		),
	}
}

func (fr fragments) LoadRecord(dst gen.Ref, _ *field.Type) []jen.Code {
	return []jen.Code{
		jen.If(jen.Err().Op("=").Add(fr.value(dst).Dot("LoadBinary").Call(buf())), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
	}
}

// LoadList scopes the count to a block so sibling lists reuse its name.
// Fields are reset before appending; loop locals start empty.
func (fr fragments) LoadList(dst gen.Ref, t *field.Type, l gen.Loop, body []jen.Code) []jen.Code {
	stmts := []jen.Code{
		jen.Var().Id(l.Count).Uint32(),
		assign(jen.Id(l.Count), buf().Dot("GetInt").Call()),
	}
	if !dst.IsVar() {
		stmts = append(stmts, fr.value(dst).Op("=").Nil())
	}
	inner := append([]jen.Code{jen.Var().Id(l.Item).Add(fr.typ(t.Elem))}, body...)
	inner = append(inner, fr.value(dst).Op("=").Append(fr.value(dst), jen.Id(l.Item)))
	stmts = append(stmts, jen.For(
		jen.Id(l.Index).Op(":=").Uint32().Call(jen.Lit(0)),
		jen.Id(l.Index).Op("<").Id(l.Count),
		jen.Id(l.Index).Op("++"),
	).Block(inner...))
	return []jen.Code{jen.Block(stmts...)}
}

// count returns the count constant of the enum referenced by t.
func (fr fragments) count(t *field.Type) jen.Code {
	if dep := fr.ref(t); dep != nil {
		return fr.qual(dep, dep.Name+"Count")
	}
	return jen.Id(t.Ref + "Count")
}
