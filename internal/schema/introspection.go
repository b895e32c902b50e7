package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Introspection JSON model, matching the standard __schema result shape.
// Accepted envelopes: {"data":{"__schema":…}}, {"__schema":…}, or the bare
// schema object.

type introspectionEnvelope struct {
	Data   *introspectionData   `json:"data"`
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionData struct {
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType        *introspectionTypeRef `json:"queryType"`
	MutationType     *introspectionTypeRef `json:"mutationType"`
	SubscriptionType *introspectionTypeRef `json:"subscriptionType"`
	Types            []introspectionType   `json:"types"`
}

type introspectionType struct {
	Kind          string                 `json:"kind"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Fields        []introspectionField   `json:"fields"`
	InputFields   []introspectionInput   `json:"inputFields"`
	EnumValues    []introspectionEnum    `json:"enumValues"`
	PossibleTypes []introspectionTypeRef `json:"possibleTypes"`
	Interfaces    []introspectionTypeRef `json:"interfaces"`
}

type introspectionField struct {
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	Args              []introspectionInput `json:"args"`
	Type              introspectionTypeRef `json:"type"`
	IsDeprecated      bool                 `json:"isDeprecated"`
	DeprecationReason string               `json:"deprecationReason"`
}

type introspectionInput struct {
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Type         introspectionTypeRef `json:"type"`
	DefaultValue *string              `json:"defaultValue"`
}

type introspectionEnum struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

type introspectionTypeRef struct {
	Kind   string                `json:"kind"`
	Name   *string               `json:"name"`
	OfType *introspectionTypeRef `json:"ofType"`
}

// BuildFromIntrospection decodes a standard introspection result into a
// Schema, so builders can target APIs exported as introspection JSON.
func BuildFromIntrospection(data []byte) (*Schema, error) {
	var env introspectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode introspection: %w", err)
	}
	raw := env.Schema
	if raw == nil && env.Data != nil {
		raw = env.Data.Schema
	}
	if raw == nil {
		var bare introspectionSchema
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("decode introspection: %w", err)
		}
		raw = &bare
	}
	if len(raw.Types) == 0 {
		return nil, fmt.Errorf("introspection result contains no types")
	}

	s := &Schema{Types: map[string]*Type{}}
	if raw.QueryType != nil && raw.QueryType.Name != nil {
		s.QueryType = *raw.QueryType.Name
	}
	if raw.MutationType != nil && raw.MutationType.Name != nil {
		s.MutationType = *raw.MutationType.Name
	}
	if raw.SubscriptionType != nil && raw.SubscriptionType.Name != nil {
		s.SubscriptionType = *raw.SubscriptionType.Name
	}

	for i := range raw.Types {
		t := buildIntrospectionType(&raw.Types[i])
		if t == nil {
			continue
		}
		s.Types[t.Name] = t
	}
	addBuiltins(s)
	return s, nil
}

func buildIntrospectionType(raw *introspectionType) *Type {
	// Meta types (__Schema, __Type, ...) are not navigable.
	if strings.HasPrefix(raw.Name, "__") {
		return nil
	}
	t := &Type{Name: raw.Name, Kind: TypeKind(raw.Kind), Description: raw.Description}
	for _, f := range raw.Fields {
		field := &Field{
			Name:              f.Name,
			Description:       f.Description,
			Type:              typeRefFromIntrospection(&f.Type),
			IsDeprecated:      f.IsDeprecated,
			DeprecationReason: f.DeprecationReason,
		}
		for _, a := range f.Args {
			field.Arguments = append(field.Arguments, inputFromIntrospection(a))
		}
		t.Fields = append(t.Fields, field)
	}
	for _, f := range raw.InputFields {
		t.InputFields = append(t.InputFields, inputFromIntrospection(f))
	}
	for _, v := range raw.EnumValues {
		t.EnumValues = append(t.EnumValues, &EnumValue{
			Name:              v.Name,
			Description:       v.Description,
			IsDeprecated:      v.IsDeprecated,
			DeprecationReason: v.DeprecationReason,
		})
	}
	for _, p := range raw.PossibleTypes {
		if p.Name != nil {
			t.PossibleTypes = append(t.PossibleTypes, *p.Name)
		}
	}
	for _, p := range raw.Interfaces {
		if p.Name != nil {
			t.Interfaces = append(t.Interfaces, *p.Name)
		}
	}
	return t
}

func inputFromIntrospection(raw introspectionInput) *InputValue {
	iv := &InputValue{
		Name:        raw.Name,
		Description: raw.Description,
		Type:        typeRefFromIntrospection(&raw.Type),
	}
	if raw.DefaultValue != nil {
		// Introspection reports defaults as GraphQL literals in wire form.
		iv.DefaultValue = Literal(*raw.DefaultValue)
	}
	return iv
}

func typeRefFromIntrospection(raw *introspectionTypeRef) *TypeRef {
	if raw == nil {
		return nil
	}
	switch raw.Kind {
	case "NON_NULL":
		return NonNullType(typeRefFromIntrospection(raw.OfType))
	case "LIST":
		return ListType(typeRefFromIntrospection(raw.OfType))
	default:
		if raw.Name == nil {
			return nil
		}
		return NamedType(*raw.Name)
	}
}
