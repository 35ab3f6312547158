package gen

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/podgen/compiler/load"
	"github.com/syssam/podgen/schema/field"
)

type (
	// Graph is the registry of all templates of one invocation. It is fully
	// populated before any type is resolved, so references resolve
	// regardless of load order.
	Graph struct {
		*Config
		// Nodes are the resolved types ready for emission, sorted by name.
		Nodes []*Type
		// Failed holds the templates excluded from emission, in input order.
		Failed []*Failure
		index  map[string]*Type
	}

	// Failure records a template that could not be resolved.
	Failure struct {
		Name   string
		Source string
		Err    error
	}
)

// Error implements the error interface.
func (f *Failure) Error() string { return f.Err.Error() }

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error { return f.Err }

// NewGraph creates a graph from the loaded schemas. Templates that fail
// validation or resolution are recorded in Graph.Failed and never affect
// the others. The returned error is reserved for unusable configs.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if c.Externals == nil {
		c.Externals = DefaultExternals()
	}
	g := &Graph{Config: c, index: make(map[string]*Type, len(schemas))}
	var (
		pending []*Type
		failed  = make(map[*Type]bool)
	)
	for _, s := range schemas {
		if s == nil {
			continue
		}
		t, err := g.register(s)
		if err != nil {
			g.fail(s.Name, s.Source, err)
			continue
		}
		pending = append(pending, t)
	}
	for _, t := range pending {
		if err := g.build(t); err != nil {
			failed[t] = true
			g.fail(t.Name, t.Source, err)
		}
	}
	for _, t := range pending {
		if failed[t] || t.Parent == nil {
			continue
		}
		if err := checkCycle(t); err != nil {
			failed[t] = true
			g.fail(t.Name, t.Source, err)
		}
	}
	// Templates referring to failed ones would emit dangling references.
	for changed := true; changed; {
		changed = false
		for _, t := range pending {
			if failed[t] {
				continue
			}
			if dep := g.failedDependency(t, failed); dep != "" {
				failed[t] = true
				changed = true
				g.fail(t.Name, t.Source, NewReferenceError(t.Name, "", dep, "referenced template failed"))
			}
		}
	}
	for _, t := range pending {
		if !failed[t] {
			g.Nodes = append(g.Nodes, t)
		}
	}
	slices.SortFunc(g.Nodes, func(a, b *Type) int { return strings.Compare(a.Name, b.Name) })
	return g, nil
}

// Lookup returns the registered type with the given name, including types
// that failed resolution, or nil.
func (g *Graph) Lookup(name string) *Type { return g.index[name] }

// Node returns the resolved type with the given name, or nil.
func (g *Graph) Node(name string) *Type {
	i := slices.IndexFunc(g.Nodes, func(t *Type) bool { return t.Name == name })
	if i < 0 {
		return nil
	}
	return g.Nodes[i]
}

func (g *Graph) fail(name, source string, err error) {
	g.logger().Errorw("template excluded", "template", name, "source", source, "error", err)
	g.Failed = append(g.Failed, &Failure{Name: name, Source: source, Err: err})
}

// failedDependency returns the name of a template t refers to that is
// excluded from emission, or "".
func (g *Graph) failedDependency(t *Type, failed map[*Type]bool) string {
	if t.Parent != nil && failed[t.Parent] {
		return t.Parent.Name
	}
	for _, name := range t.Usage.Custom {
		if ref := g.index[name]; ref != nil && failed[ref] {
			return name
		}
	}
	return ""
}

// register checks the template identity and adds it to the index.
func (g *Graph) register(s *load.Schema) (*Type, error) {
	if !field.ValidIdent(s.Name) {
		return nil, NewSchemaError(s.Name, "", "template name must be an identifier", nil)
	}
	var kind field.Kind
	switch s.Type {
	case load.KindEnum:
		kind = field.KindEnum
	case load.KindRecord:
		kind = field.KindRecord
	case "":
		return nil, NewSchemaError(s.Name, "", "missing type discriminator", nil)
	default:
		return nil, NewSchemaError(s.Name, "", fmt.Sprintf("unknown type discriminator %q; use Enum or Record", s.Type), nil)
	}
	if prev, ok := g.index[s.Name]; ok {
		return nil, NewSchemaError(s.Name, "", fmt.Sprintf("duplicate template name (first declared in %s)", prev.Label()), nil)
	}
	if _, ok := g.External(s.Name); ok {
		return nil, NewSchemaError(s.Name, "", "name is reserved for an external type", nil)
	}
	t := &Type{
		graph:         g,
		schema:        s,
		Name:          s.Name,
		Kind:          kind,
		Namespace:     s.Namespace,
		Package:       s.Package,
		Serialization: s.Serialization,
		Subdir:        s.Subdir,
		Comment:       s.Comment,
		Source:        s.Source,
		Hash:          s.Hash,
	}
	if kind == field.KindEnum {
		// Defaults of records declared earlier are checked against these.
		t.Values = slices.Clone(s.Values)
	}
	g.index[t.Name] = t
	return t, nil
}

// build validates the template body and resolves its references.
func (g *Graph) build(t *Type) error {
	s := t.schema
	if t.Namespace == "" && t.Package == "" {
		return NewSchemaError(t.Name, "", "missing namespace or package", nil)
	}
	for _, scope := range []string{t.Namespace, t.Package} {
		if scope != "" && !validScope(scope) {
			return NewSchemaError(t.Name, "", fmt.Sprintf("invalid scope %q", scope), nil)
		}
	}
	if t.Subdir != "" && !filepath.IsLocal(t.Subdir) {
		return NewSchemaError(t.Name, "", fmt.Sprintf("subdir %q must be a local relative path", t.Subdir), nil)
	}
	if t.IsEnum() {
		return g.buildEnum(t, s)
	}
	return g.buildRecord(t, s)
}

func (g *Graph) buildEnum(t *Type, s *load.Schema) error {
	if len(s.Values) == 0 {
		return NewSchemaError(t.Name, "", "enum requires values", nil)
	}
	seen := make(map[string]struct{}, len(s.Values))
	for _, v := range s.Values {
		if !field.ValidIdent(v) {
			return NewSchemaError(t.Name, "", fmt.Sprintf("enum value %q must be an identifier", v), nil)
		}
		if _, ok := seen[v]; ok {
			return NewSchemaError(t.Name, "", fmt.Sprintf("duplicate enum value %q", v), nil)
		}
		seen[v] = struct{}{}
	}
	if len(s.Members) > 0 || s.Parent != "" || s.Serialization {
		g.logger().Warnw("record keys ignored on enum", "template", t.Name)
	}
	t.Serialization = false
	return nil
}

func (g *Graph) buildRecord(t *Type, s *load.Schema) error {
	if s.Members == nil {
		return NewSchemaError(t.Name, "", "record requires members", nil)
	}
	var (
		declared = make([]*field.Type, 0, len(s.Members))
		seen     = make(map[string]struct{}, len(s.Members))
	)
	for i, m := range s.Members {
		if m == nil {
			return NewSchemaError(t.Name, "", fmt.Sprintf("member %d is empty", i), nil)
		}
		if !field.ValidIdent(m.Name) {
			return NewSchemaError(t.Name, m.Name, "member name must be an identifier", nil)
		}
		if _, ok := seen[m.Name]; ok {
			return NewSchemaError(t.Name, m.Name, "duplicate member name", nil)
		}
		seen[m.Name] = struct{}{}
		typ, err := field.Parse(m.Type)
		if err != nil {
			return NewSchemaError(t.Name, m.Name, "invalid member type", err)
		}
		declared = append(declared, typ)
		resolved, err := g.classify(t.Name, m.Name, typ)
		if err != nil {
			return err
		}
		def, err := g.checkDefault(t.Name, m, resolved)
		if err != nil {
			return err
		}
		if t.Serialization {
			if ref := g.index[resolved.Innermost().Ref]; ref != nil && ref.IsRecord() && !ref.Serialization {
				return NewReferenceError(t.Name, m.Name, ref.Name, "referenced record must enable generate_serialization")
			}
		}
		t.Fields = append(t.Fields, &Field{
			owner:    t,
			Name:     m.Name,
			Type:     resolved,
			Default:  def,
			Position: i,
		})
	}
	t.Usage = Resolve(declared...)
	if err := g.resolveParent(t, s.Parent); err != nil {
		return err
	}
	return g.resolveInterface(t, s.InterfaceName())
}

func (g *Graph) resolveParent(t *Type, name string) error {
	if name == "" {
		return nil
	}
	if name == t.Name {
		return NewReferenceError(t.Name, "", name, "record cannot inherit from itself")
	}
	t.ParentName = name
	if p := g.index[name]; p != nil {
		if !p.IsRecord() {
			return NewReferenceError(t.Name, "", name, "parent must be a record")
		}
		t.Parent = p
		return nil
	}
	switch e, ok := g.External(name); {
	case !ok:
		return NewReferenceError(t.Name, "", name, "unknown parent type")
	case !e.Root:
		return NewReferenceError(t.Name, "", name, "external parent must be a root type")
	default:
		return nil
	}
}

func (g *Graph) resolveInterface(t *Type, name string) error {
	if name == "" {
		return nil
	}
	if g.index[name] != nil {
		return NewReferenceError(t.Name, "", name, "interface must name an external type")
	}
	switch e, ok := g.External(name); {
	case !ok:
		return NewReferenceError(t.Name, "", name, "unknown interface type")
	case e.Root:
		return NewReferenceError(t.Name, "", name, "root types cannot be used as interfaces")
	default:
		t.Interface = name
		return nil
	}
}

// checkDefault validates a default literal against the resolved type.
// Defaults are rejected on list and record fields.
func (g *Graph) checkDefault(owner string, m *load.Field, t *field.Type) (any, error) {
	if !m.HasDefault() {
		return nil, nil
	}
	v := m.Default
	switch t.Kind {
	case field.KindList:
		return nil, NewSchemaError(owner, m.Name, "default values are not allowed on list fields", nil)
	case field.KindRecord:
		return nil, NewSchemaError(owner, m.Name, "default values are not allowed on record fields", nil)
	case field.KindInteger:
		n, ok := number(v)
		if !ok || n < 0 || n > math.MaxUint32 || n != math.Trunc(n) {
			return nil, NewValidationError(owner, m.Name, v, "integer default must be a whole number in [0, 4294967295]")
		}
		return uint32(n), nil
	case field.KindFloat:
		lit := v
		if s, isStr := v.(string); isStr {
			lit = strings.TrimRight(strings.TrimSpace(s), "fF")
		}
		n, ok := number(lit)
		if !ok || math.IsInf(n, 0) || math.IsNaN(n) || math.Abs(n) > math.MaxFloat32 {
			return nil, NewValidationError(owner, m.Name, v, "float default must be a finite 32-bit number")
		}
		return n, nil
	case field.KindBoolean:
		b, ok := v.(bool)
		if s, isStr := v.(string); isStr {
			switch strings.TrimSpace(s) {
			case "true":
				b, ok = true, true
			case "false":
				b, ok = false, true
			}
		}
		if !ok {
			return nil, NewValidationError(owner, m.Name, v, "boolean default must be true or false")
		}
		return b, nil
	case field.KindString:
		s, ok := v.(string)
		if !ok {
			return nil, NewValidationError(owner, m.Name, v, "string default must be a string")
		}
		return s, nil
	case field.KindEnum:
		s, ok := v.(string)
		if !ok || !slices.Contains(g.index[t.Ref].Values, s) {
			return nil, NewValidationError(owner, m.Name, v, fmt.Sprintf("enum default must be one of %s", strings.Join(g.index[t.Ref].Values, ", ")))
		}
		return s, nil
	default:
		return nil, NewSchemaError(owner, m.Name, "unexpected field kind "+t.Kind.String(), nil)
	}
}

// checkCycle fails if following parents from t leads back to t.
func checkCycle(t *Type) error {
	seen := map[*Type]bool{t: true}
	for p := t.Parent; p != nil; p = p.Parent {
		if seen[p] {
			return NewReferenceError(t.Name, "", p.Name, "inheritance cycle")
		}
		seen[p] = true
	}
	return nil
}

// number accepts JSON numbers and their decimal string forms.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func validScope(s string) bool {
	for seg := range strings.SplitSeq(s, ".") {
		if !field.ValidIdent(seg) {
			return false
		}
	}
	return true
}
