package gen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/podgen/compiler/load"
)

// fakeDialect renders a deterministic listing of the type.
type fakeDialect struct {
	name  string
	calls int
	fail  map[string]error
}

func (d *fakeDialect) Name() string          { return d.name }
func (d *fakeDialect) FileExtension() string { return ".txt" }
func (d *fakeDialect) OutputPath(t *Type) string {
	return DefaultPath(t, d.FileExtension())
}

func (d *fakeDialect) Generate(t *Type) ([]byte, error) {
	d.calls++
	if err := d.fail[t.Name]; err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(LineComment(Header(t)))
	fmt.Fprintf(&b, "%s %s\n", t.Kind, t.Name)
	for _, f := range t.Fields {
		fmt.Fprintf(&b, "  %s %s\n", f.Name, f.Type)
	}
	return []byte(b.String()), nil
}

func enumSchema(name, ns string, values ...string) *load.Schema {
	s := &load.Schema{Name: name, Type: load.KindEnum, Namespace: ns, Values: values}
	s.Hash = load.Hash([]byte(name + strings.Join(values, ",")))
	return s
}

func recordSchema(name, ns string, members ...*load.Field) *load.Schema {
	if members == nil {
		members = []*load.Field{}
	}
	s := &load.Schema{Name: name, Type: load.KindRecord, Namespace: ns, Members: members}
	var b strings.Builder
	for _, m := range members {
		fmt.Fprintf(&b, "%s:%s:%v;", m.Name, m.Type, m.Default)
	}
	s.Hash = load.Hash([]byte(name + b.String()))
	return s
}

func member(name, typ string) *load.Field {
	return &load.Field{Name: name, Type: typ}
}

func memberDefault(name, typ string, def any) *load.Field {
	return &load.Field{Name: name, Type: typ, Default: def}
}

func withParent(s *load.Schema, parent string) *load.Schema {
	s.Parent = parent
	return s
}

func serializable(s *load.Schema) *load.Schema {
	s.Serialization = true
	return s
}

func mustGraph(t *testing.T, schemas ...*load.Schema) *Graph {
	t.Helper()
	g, err := NewGraph(DefaultConfig(), schemas...)
	require.NoError(t, err)
	for _, f := range g.Failed {
		t.Logf("failed: %v", f.Err)
	}
	return g
}
