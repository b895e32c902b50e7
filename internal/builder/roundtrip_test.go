package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	language "github.com/hanpama/querygraph/internal/language"
	"github.com/stretchr/testify/require"
)

// node is a comparable skeleton of a parsed selection set.
type node struct {
	Alias    string
	Name     string
	Args     []string
	Children []node
}

func skeleton(set language.SelectionSet) []node {
	var out []node
	for _, sel := range set {
		f, ok := sel.(*language.Field)
		if !ok {
			continue
		}
		n := node{Alias: f.Alias, Name: f.Name}
		for _, a := range f.Arguments {
			n.Args = append(n.Args, a.Name)
		}
		n.Children = skeleton(f.SelectionSet)
		out = append(out, n)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	sch := mustSchema(t, testSDL)
	b := New(sch)

	op, err := b.QueryNamed("Everything", func(q *Object) any {
		return []any{
			q.Field("user").SelectArgs(Args{"id": Required("userId")}, func(u *Object) any {
				return Fields{
					"ident":  u.Field("id"),
					"name":   u.Field("name"),
					"pic":    u.Field("avatar").WithArgs(Args{"size": 128}),
					"social": u.Field("profile"),
				}
			}),
			q.Field("users").SelectArgs(Args{"filter": Args{"age": 30}}, func(u *Object) any {
				return []any{u.Field("id")}
			}),
		}
	})
	require.NoError(t, err)

	// The document comes from re-parsing the serialized text; its structure
	// must mirror the selection tree, whitespace aside.
	doc, err := language.ParseQuery(op.Text)
	require.NoError(t, err)

	want := []node{
		{
			Alias: "user", Name: "user",
			Args: []string{"id"},
			Children: []node{
				{Alias: "ident", Name: "id"},
				{Alias: "name", Name: "name"},
				{Alias: "pic", Name: "avatar", Args: []string{"size"}},
				{Alias: "social", Name: "profile", Children: []node{
					{Alias: "bio", Name: "bio"},
					{Alias: "location", Name: "location", Children: []node{
						{Alias: "city", Name: "city"},
						{Alias: "country", Name: "country"},
					}},
				}},
			},
		},
		{
			Alias: "users", Name: "users",
			Args: []string{"filter"},
			Children: []node{
				{Alias: "id", Name: "id"},
			},
		},
	}
	if diff := cmp.Diff(want, skeleton(doc.Operations[0].SelectionSet)); diff != "" {
		t.Fatalf("round-trip structure mismatch (-want +got):\n%s", diff)
	}

	require.Contains(t, op.Text, "user(id: $userId)", "variable references render unquoted")
	require.Equal(t, "Everything", doc.Operations[0].Name)
	require.Len(t, doc.Operations[0].VariableDefinitions, len(op.Variables))
	require.Equal(t, "userId", doc.Operations[0].VariableDefinitions[0].Variable)
}

func TestRoundTripDocumentAttached(t *testing.T) {
	sch := mustSchema(t, testSDL)
	b := New(sch)

	op, err := b.Query(func(q *Object) any {
		return []any{q.Field("version")}
	})
	require.NoError(t, err)
	require.NotNil(t, op.Document)
	require.Len(t, op.Document.Operations, 1)
	require.Equal(t, language.Query, op.Document.Operations[0].Operation)
}
