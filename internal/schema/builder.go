package schema

import (
	"fmt"
	"strconv"

	"github.com/hanpama/querygraph/internal/language"
)

// BuildFromSDL parses an SDL document and returns the corresponding Schema.
// Without an explicit schema block, the operation roots default to the
// conventional Query, Mutation and Subscription type names.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	return buildFromDocument(doc)
}

func buildFromDocument(doc *language.SchemaDocument) (*Schema, error) {
	s := &Schema{Types: map[string]*Type{}}
	addBuiltins(s)

	for _, schemaDef := range doc.Schema {
		for _, op := range schemaDef.OperationTypes {
			switch op.Operation {
			case language.Query:
				s.QueryType = op.Type
			case language.Mutation:
				s.MutationType = op.Type
			case language.Subscription:
				s.SubscriptionType = op.Type
			}
		}
	}

	for _, def := range doc.Definitions {
		t, err := buildDefinition(def)
		if err != nil {
			return nil, err
		}
		s.Types[t.Name] = t
	}

	// Default root convention: an explicit schema block names the roots
	// exhaustively; otherwise types named Query, Mutation and Subscription
	// take the corresponding roles.
	if len(doc.Schema) == 0 {
		s.QueryType = "Query"
		if s.Types["Mutation"] != nil {
			s.MutationType = "Mutation"
		}
		if s.Types["Subscription"] != nil {
			s.SubscriptionType = "Subscription"
		}
	}

	if s.QueryType != "" && s.Types[s.QueryType] == nil {
		return nil, fmt.Errorf("schema names query type %q but it is not defined", s.QueryType)
	}
	return s, nil
}

func buildDefinition(def *language.Definition) (*Type, error) {
	switch def.Kind {
	case language.Object:
		return buildComposite(def, TypeKindObject), nil
	case language.Interface:
		return buildComposite(def, TypeKindInterface), nil
	case language.Union:
		t := &Type{Name: def.Name, Kind: TypeKindUnion, Description: def.Description}
		t.PossibleTypes = append(t.PossibleTypes, def.Types...)
		return t, nil
	case language.Enum:
		t := &Type{Name: def.Name, Kind: TypeKindEnum, Description: def.Description}
		for _, v := range def.EnumValues {
			ev := &EnumValue{Name: v.Name, Description: v.Description}
			ev.IsDeprecated, ev.DeprecationReason = deprecation(v.Directives)
			t.EnumValues = append(t.EnumValues, ev)
		}
		return t, nil
	case language.Scalar:
		return &Type{Name: def.Name, Kind: TypeKindScalar, Description: def.Description}, nil
	case language.InputObject:
		t := &Type{Name: def.Name, Kind: TypeKindInputObject, Description: def.Description}
		for _, f := range def.Fields {
			t.InputFields = append(t.InputFields, &InputValue{
				Name:         f.Name,
				Description:  f.Description,
				Type:         typeRefFromAST(f.Type),
				DefaultValue: astValueToGo(f.DefaultValue),
			})
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported definition kind %s for type %q", def.Kind, def.Name)
	}
}

func buildComposite(def *language.Definition, kind TypeKind) *Type {
	t := &Type{Name: def.Name, Kind: kind, Description: def.Description}
	t.Interfaces = append(t.Interfaces, def.Interfaces...)
	for _, f := range def.Fields {
		field := &Field{
			Name:        f.Name,
			Description: f.Description,
			Type:        typeRefFromAST(f.Type),
		}
		field.IsDeprecated, field.DeprecationReason = deprecation(f.Directives)
		for _, arg := range f.Arguments {
			field.Arguments = append(field.Arguments, &InputValue{
				Name:         arg.Name,
				Description:  arg.Description,
				Type:         typeRefFromAST(arg.Type),
				DefaultValue: astValueToGo(arg.DefaultValue),
			})
		}
		t.Fields = append(t.Fields, field)
	}
	return t
}

func typeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.NamedType != "" {
		ref = NamedType(t.NamedType)
	} else {
		ref = ListType(typeRefFromAST(t.Elem))
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

func deprecation(directives language.DirectiveList) (bool, string) {
	d := directives.ForName("deprecated")
	if d == nil {
		return false, ""
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return true, arg.Value.Raw
	}
	return true, ""
}

// Literal is a GraphQL value kept in wire form. Enum defaults and
// introspection default values are literals already, so rendering emits
// them verbatim instead of quoting.
type Literal string

// astValueToGo converts an AST value to a Go value
func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return Literal(value.Raw)
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = astValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}
