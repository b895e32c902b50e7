package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWildcardExpansion(t *testing.T) {
	sch := mustSchema(t, `
type Query {
  user(id: ID): User
}

type User {
  id: ID
  name: String
  profile: Profile
}

type Profile {
  bio: String
  location: Location
}

type Location {
  city: String
  country: String
}
`)
	b := New(sch)

	t.Run("bare composite reference expands recursively", func(t *testing.T) {
		op, err := b.Query(func(q *Object) any {
			return []any{
				q.Field("user").SelectArgs(Args{"id": "1"}, func(u *Object) any {
					return []any{u.Field("profile")}
				}),
			}
		})
		require.NoError(t, err)

		want := "query {\n" +
			"  user(id: \"1\") {\n" +
			"    profile {\n" +
			"      bio\n" +
			"      location {\n" +
			"        city\n" +
			"        country\n" +
			"      }\n" +
			"    }\n" +
			"  }\n" +
			"}"
		if diff := cmp.Diff(want, op.Text); diff != "" {
			t.Fatalf("operation text mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit selection overrides expansion", func(t *testing.T) {
		op, err := b.Query(func(q *Object) any {
			return []any{
				q.Field("user").Select(func(u *Object) any {
					return []any{
						u.Field("profile").Select(func(p *Object) any {
							return []any{p.Field("bio")}
						}),
					}
				}),
			}
		})
		require.NoError(t, err)
		require.Equal(t, "query {\n  user {\n    profile {\n      bio\n    }\n  }\n}", op.Text)
	})
}

func TestWildcardRecursiveSchema(t *testing.T) {
	// friends returns User again: expansion must terminate and skip the
	// type already on the path.
	sch := mustSchema(t, testSDL)
	b := New(sch)

	op, err := b.Query(func(q *Object) any {
		return []any{q.Field("user")}
	})
	require.NoError(t, err)
	require.Contains(t, op.Text, "profile {")
	require.NotContains(t, op.Text, "friends")
}

func TestPathChaining(t *testing.T) {
	sch := mustSchema(t, testSDL)
	b := New(sch)

	t.Run("terminal leaf", func(t *testing.T) {
		op, err := b.Query(func(q *Object) any {
			return []any{q.Field("user").Field("profile").Field("bio")}
		})
		require.NoError(t, err)
		require.Equal(t, "query {\n  user {\n    profile {\n      bio\n    }\n  }\n}", op.Text)
	})

	t.Run("terminal composite auto-expands", func(t *testing.T) {
		op, err := b.Query(func(q *Object) any {
			return []any{q.Field("user").Field("profile").Field("location")}
		})
		require.NoError(t, err)
		require.Equal(t, "query {\n  user {\n    profile {\n      location {\n        city\n        country\n      }\n    }\n  }\n}", op.Text)
	})

	t.Run("chaining through a leaf fails", func(t *testing.T) {
		_, err := b.Query(func(q *Object) any {
			return []any{q.Field("version").Field("anything")}
		})
		var unknown *UnknownFieldError
		require.ErrorAs(t, err, &unknown)
	})
}

func TestScalars(t *testing.T) {
	sch := mustSchema(t, testSDL)
	b := New(sch)

	op, err := b.Query(func(q *Object) any {
		return []any{
			q.Field("user").SelectArgs(Args{"id": "1"}, func(u *Object) any {
				return []any{u.Scalars()}
			}),
		}
	})
	require.NoError(t, err)
	// Immediate leaves only: no profile or friends blocks.
	require.Equal(t, "query {\n  user(id: \"1\") {\n    id\n    name\n    age\n    avatar\n  }\n}", op.Text)
}

func TestLeafAccessor(t *testing.T) {
	sch := mustSchema(t, testSDL)
	b := New(sch)

	t.Run("bare reference and explicit invocation are identical", func(t *testing.T) {
		bare, err := b.Query(func(q *Object) any {
			return []any{
				q.Field("user").SelectArgs(Args{"id": "1"}, func(u *Object) any {
					return []any{u.Field("id")}
				}),
			}
		})
		require.NoError(t, err)
		invoked, err := b.Query(func(q *Object) any {
			return []any{
				q.Field("user").SelectArgs(Args{"id": "1"}, func(u *Object) any {
					return []any{u.Field("id").Invoke()}
				}),
			}
		})
		require.NoError(t, err)
		require.Equal(t, bare.Text, invoked.Text)
	})

	t.Run("leaf with arguments requires invocation", func(t *testing.T) {
		_, err := b.Query(func(q *Object) any {
			return []any{
				q.Field("user").SelectArgs(Args{"id": "1"}, func(u *Object) any {
					return []any{u.Field("avatar")}
				}),
			}
		})
		var invalid *InvalidSelectionError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("leaf with arguments invoked", func(t *testing.T) {
		op, err := b.Query(func(q *Object) any {
			return []any{
				q.Field("user").SelectArgs(Args{"id": "1"}, func(u *Object) any {
					return []any{u.Field("avatar").WithArgs(Args{"size": 64})}
				}),
			}
		})
		require.NoError(t, err)
		require.Contains(t, op.Text, "avatar(size: 64)")
	})

	t.Run("argument-only invocation of a composite field fails", func(t *testing.T) {
		_, err := b.Query(func(q *Object) any {
			return []any{q.Field("user").WithArgs(Args{"id": "1"})}
		})
		var empty *EmptySelectionError
		require.ErrorAs(t, err, &empty)
		require.Equal(t, "user", empty.Field)
		require.Equal(t, "Query", empty.Type)
	})

	t.Run("select on a leaf field fails", func(t *testing.T) {
		_, err := b.Query(func(q *Object) any {
			return []any{
				q.Field("version").Select(func(v *Object) any {
					return []any{}
				}),
			}
		})
		var invalid *InvalidSelectionError
		require.ErrorAs(t, err, &invalid)
	})
}
