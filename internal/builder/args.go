package builder

import (
	schema "github.com/hanpama/querygraph/internal/schema"
)

// Args is the raw argument map passed to a field invocation. Values may be
// Go scalars, nested maps/lists mirroring input objects, or Var
// placeholders.
type Args map[string]any

// Var is a named variable placeholder bound to a concrete value only at
// execution time.
type Var struct {
	Name     string
	Required bool
}

// Required returns a placeholder for a variable that must be bound to a
// value at execution time.
func Required(name string) Var { return Var{Name: name, Required: true} }

// Optional returns a placeholder for a variable that may be omitted or null
// at execution time.
func Optional(name string) Var { return Var{Name: name} }

// VarRef is the substituted reference left in an argument tree where a Var
// placeholder appeared. It serializes as $name, never quoted.
type VarRef struct {
	Name string
}

// Variable is a declared operation variable.
type Variable struct {
	Name     string
	Type     string
	Required bool
}

// genericVariableType is the fallback wire type for a variable whose
// declared argument type could not be resolved.
const genericVariableType = "String"

// processArgs walks a field's raw argument values, registering variable
// placeholders with wire types inferred from the declared arguments and
// substituting VarRef nodes in the returned tree.
func (c *buildContext) processArgs(field *schema.Field, raw Args) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for name, value := range raw {
		var expected *schema.TypeRef
		if decl := field.Argument(name); decl != nil {
			expected = decl.Type
		}
		out[name] = c.processValue(value, expected)
	}
	return out
}

// processValue applies variable substitution recursively. The expected type
// is threaded through input objects and lists so nested variables still get
// precise wire types; only when the expected type is unknown does the
// variable fall back to the generic type.
func (c *buildContext) processValue(value any, expected *schema.TypeRef) any {
	switch v := value.(type) {
	case Var:
		wireType := genericVariableType
		required := v.Required
		if expected != nil {
			wireType = expected.String()
			required = required || expected.IsNonNull()
		}
		c.registerVar(v.Name, wireType, required)
		return VarRef{Name: v.Name}
	case Args:
		return c.processObject(map[string]any(v), expected)
	case map[string]any:
		return c.processObject(v, expected)
	case []any:
		elem := elementType(expected)
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = c.processValue(item, elem)
		}
		return out
	default:
		return value
	}
}

func (c *buildContext) processObject(v map[string]any, expected *schema.TypeRef) map[string]any {
	input := c.inputType(expected)
	out := make(map[string]any, len(v))
	for k, item := range v {
		var fieldType *schema.TypeRef
		if input != nil {
			if f := input.InputField(k); f != nil {
				fieldType = f.Type
			}
		}
		out[k] = c.processValue(item, fieldType)
	}
	return out
}

// inputType resolves the input object definition behind an expected type.
func (c *buildContext) inputType(expected *schema.TypeRef) *schema.Type {
	if expected == nil {
		return nil
	}
	t := c.schema.GetType(expected.GetNamedType())
	if t == nil || t.Kind != schema.TypeKindInputObject {
		return nil
	}
	return t
}

// elementType unwraps NonNull and List wrappers to the list element type.
func elementType(expected *schema.TypeRef) *schema.TypeRef {
	if expected == nil {
		return nil
	}
	t := expected
	if t.IsNonNull() {
		t = t.Unwrap()
	}
	if t != nil && t.IsList() {
		return t.Unwrap()
	}
	return nil
}
