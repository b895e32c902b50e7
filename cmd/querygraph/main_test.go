package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mainTestSDL = `
type Query {
  me: User
}

type User {
  id: ID!
  name: String
}
`

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunNoArgs(t *testing.T) {
	err := run(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing command")
}

func TestRunUnknownCommand(t *testing.T) {
	err := run([]string{"frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestHelp(t *testing.T) {
	out, err := captureStdout(t, func() error { return run([]string{"help"}) })
	require.NoError(t, err)
	require.Contains(t, out, "USAGE:")

	out, err = captureStdout(t, func() error { return run([]string{"help", "expand"}) })
	require.NoError(t, err)
	require.Contains(t, out, "-field")

	err = run([]string{"help", "nope"})
	require.Error(t, err)
}

func TestExpand(t *testing.T) {
	schemaFile := writeTempFile(t, "schema.graphql", mainTestSDL)

	out, err := captureStdout(t, func() error {
		return run([]string{"expand", "-schema", schemaFile, "-field", "me"})
	})
	require.NoError(t, err)
	require.Equal(t, "query {\n  me {\n    id\n    name\n  }\n}\n", out)
}

func TestExpandMissingFlags(t *testing.T) {
	err := run([]string{"expand"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestExpandUnknownField(t *testing.T) {
	schemaFile := writeTempFile(t, "schema.graphql", mainTestSDL)
	err := run([]string{"expand", "-schema", schemaFile, "-field", "nobody"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "nobody")
}

func TestCompileSDL(t *testing.T) {
	schemaFile := writeTempFile(t, "schema.graphql", mainTestSDL)

	t.Run("stdout", func(t *testing.T) {
		out, err := captureStdout(t, func() error {
			return run([]string{"compile-sdl", "-schema", schemaFile})
		})
		require.NoError(t, err)
		require.Contains(t, out, "type Query {")
		require.Contains(t, out, "type User {")
	})

	t.Run("out file", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "out.graphql")
		err := run([]string{"compile-sdl", "-schema", schemaFile, "-out", outFile})
		require.NoError(t, err)

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "me: User")
	})

	t.Run("invalid SDL fails", func(t *testing.T) {
		bad := writeTempFile(t, "bad.graphql", "type {")
		err := run([]string{"compile-sdl", "-schema", bad})
		require.Error(t, err)
	})
}

func TestImportIntrospection(t *testing.T) {
	inFile := writeTempFile(t, "introspection.json", `{
  "data": {
    "__schema": {
      "queryType": {"name": "Query"},
      "types": [
        {
          "kind": "OBJECT",
          "name": "Query",
          "fields": [
            {"name": "ok", "type": {"kind": "SCALAR", "name": "Boolean"}}
          ]
        }
      ]
    }
  }
}`)

	out, err := captureStdout(t, func() error {
		return run([]string{"import-introspection", "-in", inFile})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Query {")
	require.Contains(t, out, "ok: Boolean")
}

func TestImportIntrospectionMissingInput(t *testing.T) {
	err := run([]string{"import-introspection"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}
