package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/hanpama/querygraph/internal/eventbus"
	"github.com/hanpama/querygraph/internal/events"
	language "github.com/hanpama/querygraph/internal/language"
	"github.com/hanpama/querygraph/internal/opid"
	schema "github.com/hanpama/querygraph/internal/schema"
)

// Builder constructs operations against one schema. Every build call owns
// its own variable registry, so a single Builder is safe for concurrent use.
type Builder struct {
	schema *schema.Schema
}

// New returns a Builder bound to the given schema.
func New(s *schema.Schema) *Builder {
	return &Builder{schema: s}
}

// Operation is a fully built operation: the serialized text, the declared
// variables in declaration order, and the document produced by re-parsing
// the text.
type Operation struct {
	Kind      language.Operation
	Name      string
	Text      string
	Variables []Variable
	Document  *language.QueryDocument
}

// Query builds an anonymous query operation.
func (b *Builder) Query(fn SelectionFunc) (*Operation, error) {
	return b.build(language.Query, "", fn)
}

// QueryNamed builds a named query operation.
func (b *Builder) QueryNamed(name string, fn SelectionFunc) (*Operation, error) {
	return b.build(language.Query, name, fn)
}

// Mutation builds an anonymous mutation operation.
func (b *Builder) Mutation(fn SelectionFunc) (*Operation, error) {
	return b.build(language.Mutation, "", fn)
}

// MutationNamed builds a named mutation operation.
func (b *Builder) MutationNamed(name string, fn SelectionFunc) (*Operation, error) {
	return b.build(language.Mutation, name, fn)
}

// Subscription builds an anonymous subscription operation.
func (b *Builder) Subscription(fn SelectionFunc) (*Operation, error) {
	return b.build(language.Subscription, "", fn)
}

// SubscriptionNamed builds a named subscription operation.
func (b *Builder) SubscriptionNamed(name string, fn SelectionFunc) (*Operation, error) {
	return b.build(language.Subscription, name, fn)
}

// buildContext is the per-build state: the schema handle, the variable
// registry in registration order, and the first recorded failure.
type buildContext struct {
	schema   *schema.Schema
	vars     []*Variable
	varIndex map[string]int
	err      error
}

// fail records the first failure; later failures are dropped.
func (c *buildContext) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// registerVar declares a variable once per operation. Re-registering an
// existing name overwrites its type and required flag.
func (c *buildContext) registerVar(name, wireType string, required bool) {
	if i, ok := c.varIndex[name]; ok {
		c.vars[i].Type = wireType
		c.vars[i].Required = required
		return
	}
	c.varIndex[name] = len(c.vars)
	c.vars = append(c.vars, &Variable{Name: name, Type: wireType, Required: required})
}

func (b *Builder) rootType(kind language.Operation) *schema.Type {
	switch kind {
	case language.Query:
		return b.schema.GetQueryType()
	case language.Mutation:
		return b.schema.GetMutationType()
	case language.Subscription:
		return b.schema.GetSubscriptionType()
	default:
		return nil
	}
}

func (b *Builder) build(kind language.Operation, name string, fn SelectionFunc) (op *Operation, err error) {
	ctx, _ := opid.NewContext(context.Background())
	started := time.Now()
	eventbus.Publish(ctx, events.BuildStart{
		OperationType: string(kind),
		OperationName: name,
	})
	defer func() {
		finish := events.BuildFinish{
			OperationType: string(kind),
			OperationName: name,
			Err:           err,
			Duration:      time.Since(started),
		}
		if op != nil {
			finish.Text = op.Text
		}
		eventbus.Publish(ctx, finish)
	}()

	root := b.rootType(kind)
	if root == nil {
		return nil, fmt.Errorf("schema has no %s type", kind)
	}

	bc := &buildContext{schema: b.schema, varIndex: make(map[string]int)}
	raw := fn(&Object{ctx: bc, typ: root})
	if bc.err != nil {
		return nil, bc.err
	}
	selections := bc.normalize(raw)
	if bc.err != nil {
		return nil, bc.err
	}
	if len(selections) == 0 {
		return nil, &EmptySelectionError{Type: root.Name}
	}

	text := serializeOperation(string(kind), name, selections, bc.vars)

	doc, err := language.ParseQuery(text)
	if err != nil {
		// Parser syntax errors signal a serializer bug; propagate unmodified.
		return nil, err
	}

	variables := make([]Variable, len(bc.vars))
	for i, v := range bc.vars {
		variables[i] = *v
	}
	return &Operation{
		Kind:      kind,
		Name:      name,
		Text:      text,
		Variables: variables,
		Document:  doc,
	}, nil
}
