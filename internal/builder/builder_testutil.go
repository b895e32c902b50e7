package builder

import (
	"testing"

	schema "github.com/hanpama/querygraph/internal/schema"
	"github.com/stretchr/testify/require"
)

const testSDL = `
type Query {
  user(id: ID!): User
  users(filter: UserFilter): [User!]!
  version: String!
}

type Mutation {
  createUser(input: UserInput!): User!
}

type User {
  id: ID!
  name: String!
  age: Int
  profile: Profile
  friends(limit: Int): [User!]
  avatar(size: Int): String
}

type Profile {
  bio: String
  location: Location
}

type Location {
  city: String
  country: String
}

input UserFilter {
  nameLike: String
  age: Int
  location: LocationFilter
}

input LocationFilter {
  city: String!
}

input UserInput {
  name: String!
  age: Int
}
`

// mustSchema builds the shared test schema and fails the test on error.
func mustSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	sch, err := schema.BuildFromSDL(sdl)
	require.NoError(t, err, "failed to build schema from SDL")
	return sch
}
