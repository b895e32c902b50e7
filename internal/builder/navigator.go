package builder

import (
	schema "github.com/hanpama/querygraph/internal/schema"
)

// SelectionFunc receives a navigator scoped to a composite type and returns
// the raw selections: a []any list of markers, a Fields map, or a single
// marker.
type SelectionFunc func(*Object) any

// Object navigates a composite type during selection building.
type Object struct {
	ctx *buildContext
	typ *schema.Type
}

// Field resolves a field of the navigated type and returns its accessor.
// An unknown field name records a fatal UnknownFieldError on the build.
func (o *Object) Field(name string) *Accessor {
	return o.ctx.resolve(nil, o.typ, name)
}

// Scalars selects every immediate leaf field of the navigated type. It is a
// marker for use inside an explicit selection list and does not recurse.
func (o *Object) Scalars() *ScalarSet {
	return &ScalarSet{ctx: o.ctx, typ: o.typ}
}

// ScalarSet expands to all leaf fields of one type.
type ScalarSet struct {
	ctx *buildContext
	typ *schema.Type
}

func (s *ScalarSet) selections() []*Selection {
	var out []*Selection
	for _, f := range s.typ.Fields {
		if s.ctx.schema.IsLeaf(f.Type.GetNamedType()) {
			out = append(out, &Selection{Name: f.Name})
		}
	}
	return out
}

// Accessor is the handle returned by field resolution. Depending on the
// field it acts as a bare leaf marker, an invocable leaf with arguments, or
// a composite accessor that recursively navigates the result type.
type Accessor struct {
	ctx    *buildContext
	parent *Accessor
	owner  *schema.Type
	field  *schema.Field // nil when resolution failed
}

func (c *buildContext) resolve(parent *Accessor, typ *schema.Type, name string) *Accessor {
	acc := &Accessor{ctx: c, parent: parent, owner: typ}
	if typ == nil {
		return acc
	}
	f := typ.Field(name)
	if f == nil {
		c.fail(&UnknownFieldError{Type: typ.Name, Field: name})
		return acc
	}
	acc.field = f
	return acc
}

// resultType returns the named type the field resolves to, or nil.
func (a *Accessor) resultType() *schema.Type {
	if a.field == nil {
		return nil
	}
	return a.ctx.schema.GetType(a.field.Type.GetNamedType())
}

// Field chains path-style navigation without invoking the current field:
// q.Field("a").Field("b").Field("c") builds the nested selection as if each
// level were invoked with no arguments and a single child.
func (a *Accessor) Field(name string) *Accessor {
	return a.ctx.resolve(a, a.resultType(), name)
}

// Invoke is the explicit zero-argument invocation of a leaf field. It yields
// the identical selection as the bare reference.
func (a *Accessor) Invoke() *Selection {
	return a.selection()
}

// WithArgs invokes a leaf field that declares arguments. A composite field
// invoked this way would serialize an empty block, so it records an
// EmptySelectionError; composites take SelectArgs instead.
func (a *Accessor) WithArgs(args Args) *Selection {
	if a.field == nil {
		return nil
	}
	if !a.ctx.schema.IsLeaf(a.field.Type.GetNamedType()) {
		a.ctx.fail(&EmptySelectionError{Type: a.owner.Name, Field: a.field.Name})
		return nil
	}
	sel := &Selection{Name: a.field.Name, Args: a.ctx.processArgs(a.field, args)}
	return a.wrap(sel)
}

// Select invokes a composite field with an explicit selection function.
func (a *Accessor) Select(fn SelectionFunc) *Selection {
	return a.SelectArgs(nil, fn)
}

// SelectArgs invokes a composite field with arguments and an explicit
// selection function.
func (a *Accessor) SelectArgs(args Args, fn SelectionFunc) *Selection {
	if a.field == nil {
		return nil
	}
	rt := a.resultType()
	if rt == nil || a.ctx.schema.IsLeaf(rt.Name) {
		a.ctx.fail(&InvalidSelectionError{Value: a.field.Name})
		return nil
	}
	sel := &Selection{Name: a.field.Name}
	if len(args) > 0 {
		sel.Args = a.ctx.processArgs(a.field, args)
	}
	sel.Children = a.ctx.normalize(fn(&Object{ctx: a.ctx, typ: rt}))
	if len(sel.Children) == 0 && a.ctx.err == nil {
		a.ctx.fail(&EmptySelectionError{Type: a.owner.Name, Field: a.field.Name})
	}
	return a.wrap(sel)
}

// selection converts a bare accessor reference into its selection: leaves
// select themselves, composites auto-expand recursively. Called by the
// normalizer when the accessor appears uninvoked in a selection list.
func (a *Accessor) selection() *Selection {
	if a.field == nil {
		return nil
	}
	named := a.field.Type.GetNamedType()
	if a.ctx.schema.IsLeaf(named) {
		if len(a.field.Arguments) > 0 {
			a.ctx.fail(&InvalidSelectionError{Value: a.field.Name})
			return nil
		}
		return a.wrap(&Selection{Name: a.field.Name})
	}
	sel := &Selection{
		Name:     a.field.Name,
		Children: a.ctx.expand(a.ctx.schema.GetType(named), map[string]bool{named: true}),
	}
	if len(sel.Children) == 0 && a.ctx.err == nil {
		a.ctx.fail(&EmptySelectionError{Type: a.owner.Name, Field: a.field.Name})
	}
	return a.wrap(sel)
}

// wrap rebuilds the path-style chain around sel, innermost first.
func (a *Accessor) wrap(sel *Selection) *Selection {
	for p := a.parent; p != nil; p = p.parent {
		if p.field == nil {
			return sel
		}
		sel = &Selection{Name: p.field.Name, Children: []*Selection{sel}}
	}
	return sel
}

// expand implements wildcard auto-expansion: every leaf field of the type,
// plus recursively expanded composite fields. Named types already on the
// expansion path are skipped so recursive schemas terminate.
func (c *buildContext) expand(typ *schema.Type, visited map[string]bool) []*Selection {
	if typ == nil {
		return nil
	}
	var out []*Selection
	for _, f := range typ.Fields {
		named := f.Type.GetNamedType()
		if c.schema.IsLeaf(named) {
			out = append(out, &Selection{Name: f.Name})
			continue
		}
		if visited[named] {
			continue
		}
		visited[named] = true
		children := c.expand(c.schema.GetType(named), visited)
		delete(visited, named)
		if len(children) == 0 {
			continue
		}
		out = append(out, &Selection{Name: f.Name, Children: children})
	}
	return out
}
