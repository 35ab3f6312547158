// Package golang generates Go types from the type graph using jennifer.
//
// Every namespace becomes a package directory below the target directory.
// References across packages are qualified with the configured import base
// (gen.WithGoImportBase). Serializable records implement podgen.Record.
package golang

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/schema/field"
)

// RuntimePackage is the import path of the BitBuffer contract.
const RuntimePackage = "github.com/syssam/podgen"

// Dialect implements gen.Dialect for Go.
type Dialect struct{}

// New returns the Go dialect.
func New() *Dialect { return &Dialect{} }

// Name returns "go".
func (*Dialect) Name() string { return gen.LangGo }

// FileExtension returns ".go".
func (*Dialect) FileExtension() string { return ".go" }

// OutputPath returns <subdir>/<namespace dirs>/<snake name>.go.
func (d *Dialect) OutputPath(t *gen.Type) string {
	return path.Join(PackageDir(t), gen.Funcs.Snake(t.Name)+d.FileExtension())
}

// PackageDir returns the slash separated package directory of t, relative
// to the target directory.
func PackageDir(t *gen.Type) string {
	return path.Join(append([]string{t.Subdir}, t.ScopeSegments(false)...)...)
}

// PackageName returns the Go package name of t: the last namespace segment.
func PackageName(t *gen.Type) string {
	segs := t.ScopeSegments(false)
	return strings.ToLower(segs[len(segs)-1])
}

// Generate renders the Go file of t.
func (d *Dialect) Generate(t *gen.Type) ([]byte, error) {
	if err := checkNames(t); err != nil {
		return nil, err
	}
	f := newFile(t)
	switch {
	case t.IsEnum():
		f.enum()
	case t.IsRecord():
		f.record()
	default:
		return nil, gen.NewGenerationError(d.Name(), t.Name, "", fmt.Sprintf("unexpected kind %s", t.Kind), nil)
	}
	if f.err != nil {
		return nil, f.err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, gen.NewGenerationError(d.Name(), t.Name, "", "render", err)
	}
	return buf.Bytes(), nil
}

// checkNames fails when two distinct template names map to the same Go
// identifier, e.g. the members "my_field" and "myField".
func checkNames(t *gen.Type) error {
	seen := make(map[string]string)
	claim := func(ident, name, what string) error {
		if prev, ok := seen[ident]; ok {
			return gen.NewGenerationError(gen.LangGo, t.Name, "",
				fmt.Sprintf("%s %q maps to %s which collides with %s", what, name, ident, prev), nil)
		}
		seen[ident] = fmt.Sprintf("%s %q", what, name)
		return nil
	}
	if t.IsEnum() {
		seen[t.Name+"Count"] = "the value count constant"
		for _, v := range t.Values {
			if err := claim(valueName(t.Name, v), v, "value"); err != nil {
				return err
			}
		}
		return nil
	}
	if t.Parent != nil {
		seen[t.Parent.Name] = "the embedded parent"
	}
	if t.Serialization {
		for _, m := range []string{"Copy", "SaveBinary", "LoadBinary"} {
			seen[m] = "the " + m + " method"
		}
	}
	for _, fd := range t.Fields {
		if err := claim(gen.Funcs.Pascal(fd.Name), fd.Name, "field"); err != nil {
			return err
		}
	}
	return nil
}

// file renders one type. Reference errors are recorded in err and the
// first one is reported by Generate.
type file struct {
	*jen.File
	t    *gen.Type
	dir  string
	base string
	err  error
}

func newFile(t *gen.Type) *file {
	f := &file{
		t:    t,
		dir:  PackageDir(t),
		base: t.Config().GoImportBase,
	}
	if f.base != "" {
		f.File = jen.NewFilePathName(path.Join(f.base, f.dir), PackageName(t))
	} else {
		f.File = jen.NewFile(PackageName(t))
	}
	for _, l := range gen.Header(t) {
		f.HeaderComment(l)
	}
	f.ImportName(RuntimePackage, "podgen")
	return f
}

// qual returns ident of the package of dep as seen from the file.
func (f *file) qual(dep *gen.Type, ident string) *jen.Statement {
	dir := PackageDir(dep)
	if dir == f.dir {
		return jen.Id(ident)
	}
	if f.base == "" {
		if f.err == nil {
			f.err = gen.NewGenerationError(gen.LangGo, f.t.Name, "",
				fmt.Sprintf("reference to %s in package %q requires a go import base", dep.Name, dir), nil)
		}
		return jen.Id(ident)
	}
	return jen.Qual(path.Join(f.base, dir), ident)
}

// ref returns the registry type named by a field reference.
func (f *file) ref(t *field.Type) *gen.Type {
	dep := f.t.Lookup(t.Ref)
	if dep == nil && f.err == nil {
		f.err = gen.NewGenerationError(gen.LangGo, f.t.Name, "", "unresolved type "+t.Ref, nil)
	}
	return dep
}

// typ maps a field type to its Go spelling.
func (f *file) typ(t *field.Type) *jen.Statement {
	switch t.Kind {
	case field.KindInteger:
		return jen.Uint32()
	case field.KindString:
		return jen.String()
	case field.KindFloat:
		return jen.Float32()
	case field.KindBoolean:
		return jen.Bool()
	case field.KindList:
		return jen.Index().Add(f.typ(t.Elem))
	default:
		if dep := f.ref(t); dep != nil {
			return f.qual(dep, dep.Name)
		}
		return jen.Id(t.Ref)
	}
}

// valueName returns the constant name of an enum value.
func valueName(enum, value string) string { return enum + gen.Funcs.Pascal(value) }

func (f *file) enum() {
	t := f.t
	f.Commentf("%s is an enumeration of %d values.", t.Name, t.Count())
	f.Type().Id(t.Name).Uint32()
	f.Const().DefsFunc(func(g *jen.Group) {
		for i, v := range t.Values {
			if i == 0 {
				g.Id(valueName(t.Name, v)).Id(t.Name).Op("=").Iota()
				continue
			}
			g.Id(valueName(t.Name, v))
		}
	})
	f.Commentf("%sCount is the number of %s values.", t.Name, t.Name)
	f.Const().Id(t.Name+"Count").Op("=").Lit(t.Count())

	if !t.Config().HasFeature(gen.FeatureGoStringer.Name) {
		return
	}
	names := strings.ToLower(t.Name[:1]) + t.Name[1:] + "Names"
	f.Var().Id(names).Op("=").Index(jen.Op("...")).String().ValuesFunc(func(g *jen.Group) {
		for _, v := range t.Values {
			g.Lit(v)
		}
	})
	f.Comment("String implements fmt.Stringer.")
	f.Func().Params(jen.Id("v").Id(t.Name)).Id("String").Params().String().Block(
		jen.If(jen.Id("v").Op("<").Id(t.Name+"Count")).Block(
			jen.Return(jen.Id(names).Index(jen.Id("v"))),
		),
		jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(t.Name+"(%d)"), jen.Uint32().Call(jen.Id("v")))),
	)
}

func (f *file) record() {
	t := f.t
	f.Commentf("%s is a plain data record.", t.Name)
	f.Type().Id(t.Name).StructFunc(func(g *jen.Group) {
		if t.Parent != nil {
			g.Add(f.qual(t.Parent, t.Parent.Name))
		}
		for _, fd := range t.Fields {
			g.Id(gen.Funcs.Pascal(fd.Name)).Add(f.typ(fd.Type)).Tag(map[string]string{"json": fd.Name})
		}
	})
	f.constructor()
	if e := t.InterfaceExternal(); t.InterfaceIn(gen.LangGo) != "" && e.Import(gen.LangGo) != "" {
		f.Var().Id("_").Qual(e.Import(gen.LangGo), e.Name).Op("=").Parens(jen.Op("*").Id(t.Name)).Parens(jen.Nil())
	}
	if !t.Serialization {
		return
	}
	f.Var().Id("_").Qual(RuntimePackage, "Record").Op("=").Parens(jen.Op("*").Id(t.Name)).Parens(jen.Nil())
	tr := gen.Serialize[[]jen.Code](t, fragments{file: f})

	f.Comment("Copy deep copies src into r.")
	f.Func().Params(jen.Id("r").Op("*").Id(t.Name)).Id("Copy").Params(jen.Id("src").Op("*").Id(t.Name)).Block(flatten(tr.Copy)...)

	f.Comment("SaveBinary writes r to buf.")
	save := append(flatten(tr.Save), jen.Return(jen.Nil()))
	f.Func().Params(jen.Id("r").Op("*").Id(t.Name)).Id("SaveBinary").Params(jen.Id("buf").Qual(RuntimePackage, "BitBuffer")).Error().Block(save...)

	f.Comment("LoadBinary reads r from buf in the order SaveBinary wrote it.")
	load := append(flatten(tr.Load), jen.Return(jen.Nil()))
	f.Func().Params(jen.Id("r").Op("*").Id(t.Name)).Id("LoadBinary").Params(jen.Id("buf").Qual(RuntimePackage, "BitBuffer")).Params(jen.Err().Error()).Block(load...)
}

// constructor renders New<Name>, which applies the declared defaults.
func (f *file) constructor() {
	t := f.t
	f.Commentf("New%s returns a %s with its declared defaults.", t.Name, t.Name)
	f.Func().Id("New"+t.Name).Params().Op("*").Id(t.Name).Block(
		jen.Return(jen.Op("&").Id(t.Name).Values(jen.DictFunc(func(d jen.Dict) {
			if t.Parent != nil {
				d[jen.Id(t.Parent.Name)] = jen.Op("*").Add(f.qual(t.Parent, "New"+t.Parent.Name)).Call()
			}
			for _, fd := range t.Fields {
				if fd.HasDefault() {
					d[jen.Id(gen.Funcs.Pascal(fd.Name))] = f.literal(fd)
				}
			}
		}))),
	)
}

func (f *file) literal(fd *gen.Field) jen.Code {
	switch v := fd.Default.(type) {
	case uint32:
		return jen.Lit(int(v))
	case float64:
		return jen.Lit(v)
	case bool:
		return jen.Lit(v)
	case string:
		if fd.Type.IsEnum() {
			if dep := f.ref(fd.Type); dep != nil {
				return f.qual(dep, valueName(dep.Name, v))
			}
		}
		return jen.Lit(v)
	default:
		return jen.Nil()
	}
}

func flatten(frags [][]jen.Code) []jen.Code {
	var out []jen.Code
	for _, c := range frags {
		out = append(out, c...)
	}
	return out
}
