package gen

import "github.com/syssam/podgen/schema/field"

type (
	// Ref names the value a serialization fragment reads or writes: either
	// a record field or a loop local.
	Ref struct {
		// Field is set for record member access.
		Field *Field
		// Source selects the member of the copy source instead of the
		// receiver.
		Source bool
		// Var is the local variable name when Field is nil.
		Var string
	}

	// Loop holds the variable names of one list nesting level. Names carry
	// the depth so nested loops never shadow each other.
	Loop struct {
		Depth  int
		Index  string // i<depth>
		Count  string // count<depth>
		Item   string // element local of the receiver side
		Source string // element of the copy source
	}

	// Fragments supplies the syntax of one dialect for the serialization
	// triad. C is the code representation of the dialect. The walker owns
	// classification and recursion; implementations only render.
	Fragments[C any] interface {
		// Parent delegation, emitted before the own fields.
		CopyParent(parent *Type) C
		SaveParent(parent *Type) C
		LoadParent(parent *Type) C

		// CopyValue assigns scalars and enums. CopyRecord delegates to the
		// record copy method. CopyList clears dst, then appends a copy of
		// every source element produced by body.
		CopyValue(dst, src Ref, t *field.Type) C
		CopyRecord(dst, src Ref, t *field.Type) C
		CopyList(dst, src Ref, t *field.Type, l Loop, body C) C

		// SaveValue writes a scalar. SaveEnum writes a value bounded by the
		// enum count. SaveList writes the element count, then every element.
		SaveValue(v Ref, t *field.Type) C
		SaveEnum(v Ref, t *field.Type) C
		SaveRecord(v Ref, t *field.Type) C
		SaveList(v Ref, t *field.Type, l Loop, body C) C

		// Load fragments are the exact duals of the save fragments.
		LoadValue(dst Ref, t *field.Type) C
		LoadEnum(dst Ref, t *field.Type) C
		LoadRecord(dst Ref, t *field.Type) C
		LoadList(dst Ref, t *field.Type, l Loop, body C) C
	}

	// Triad holds the rendered bodies of the copy, save and load methods,
	// one fragment per statement in wire order.
	Triad[C any] struct {
		Copy []C
		Save []C
		Load []C
	}
)

// FieldRef returns the receiver reference of a field.
func FieldRef(f *Field) Ref { return Ref{Field: f} }

// SourceRef returns the copy-source reference of a field.
func SourceRef(f *Field) Ref { return Ref{Field: f, Source: true} }

// VarRef returns a local variable reference.
func VarRef(name string) Ref { return Ref{Var: name} }

// IsVar reports if the reference is a local variable.
func (r Ref) IsVar() bool { return r.Field == nil }

// NewLoop returns the loop names for a list field at the given depth.
func NewLoop(f *Field, depth int) Loop {
	d := itoa(depth)
	item := f.ItemName(depth)
	return Loop{
		Depth:  depth,
		Index:  "i" + d,
		Count:  "count" + d,
		Item:   item,
		Source: "src" + pascal(item),
	}
}

// Serialize walks the fields of a record in declaration order and renders
// the copy, save and load bodies with the given fragments. The parent
// methods, if any, are called first.
func Serialize[C any](t *Type, fr Fragments[C]) Triad[C] {
	var tr Triad[C]
	if p := t.SerializableParent(); p != nil {
		tr.Copy = append(tr.Copy, fr.CopyParent(p))
		tr.Save = append(tr.Save, fr.SaveParent(p))
		tr.Load = append(tr.Load, fr.LoadParent(p))
	}
	for _, f := range t.Fields {
		tr.Copy = append(tr.Copy, copyFragment(fr, f, FieldRef(f), SourceRef(f), f.Type, 0))
		tr.Save = append(tr.Save, saveFragment(fr, f, FieldRef(f), f.Type, 0))
		tr.Load = append(tr.Load, loadFragment(fr, f, FieldRef(f), f.Type, 0))
	}
	return tr
}

func copyFragment[C any](fr Fragments[C], f *Field, dst, src Ref, t *field.Type, depth int) C {
	switch {
	case t.IsList():
		l := NewLoop(f, depth)
		body := copyFragment(fr, f, VarRef(l.Item), VarRef(l.Source), t.Elem, depth+1)
		return fr.CopyList(dst, src, t, l, body)
	case t.IsRecord():
		return fr.CopyRecord(dst, src, t)
	default:
		return fr.CopyValue(dst, src, t)
	}
}

func saveFragment[C any](fr Fragments[C], f *Field, v Ref, t *field.Type, depth int) C {
	switch {
	case t.IsList():
		l := NewLoop(f, depth)
		body := saveFragment(fr, f, VarRef(l.Item), t.Elem, depth+1)
		return fr.SaveList(v, t, l, body)
	case t.IsRecord():
		return fr.SaveRecord(v, t)
	case t.IsEnum():
		return fr.SaveEnum(v, t)
	default:
		return fr.SaveValue(v, t)
	}
}

func loadFragment[C any](fr Fragments[C], f *Field, dst Ref, t *field.Type, depth int) C {
	switch {
	case t.IsList():
		l := NewLoop(f, depth)
		body := loadFragment(fr, f, VarRef(l.Item), t.Elem, depth+1)
		return fr.LoadList(dst, t, l, body)
	case t.IsRecord():
		return fr.LoadRecord(dst, t)
	case t.IsEnum():
		return fr.LoadEnum(dst, t)
	default:
		return fr.LoadValue(dst, t)
	}
}
