package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, _ = runCLI("nope")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("eval", "-f", "testdata/shapes.yaml")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("eval", "-f", "testdata/shapes.yaml", "-schema", "Test", "-format", "xml")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("check", "-lang", "fr", "testdata/shapes.yaml")
	assert.Equal(t, exitUsage, code)
}

func TestEval(t *testing.T) {
	code, stdout, stderr := runCLI("eval", "-f", "testdata/shapes.yaml", "-schema", "TestOmit")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "{ details?: { order: number; price: number }; name: 'awesome' }\n", stdout)

	code, stdout, _ = runCLI("eval", "-f", "testdata/shapes.yaml", "-schema", "TestOmit", "-format", "jsonschema")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, `"$schema": "https://json-schema.org/draft/2020-12/schema"`)
	assert.Contains(t, stdout, `"const": "awesome"`)

	code, stdout, _ = runCLI("eval", "-f", "testdata/shapes.yaml", "-schema", "Value", "-format", "ir")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, `"kind": "Object"`)
}

func TestEval_Failures(t *testing.T) {
	code, _, stderr := runCLI("eval", "-f", "testdata/shapes.yaml", "-schema", "Missing")
	assert.Equal(t, exitIssues, code)
	assert.Contains(t, stderr, `does not declare "Missing" (have Handler, Test, TestOmit, Value)`)

	code, _, stderr = runCLI("eval", "-f", "testdata/shapes.yaml", "-schema", "Handler", "-format", "jsonschema")
	assert.Equal(t, exitIssues, code)
	assert.Contains(t, stderr, "testdata/shapes.yaml:/: shape cannot be represented [unsupported_shape]")

	code, _, stderr = runCLI("eval", "-f", "testdata/nope.yaml", "-schema", "A")
	assert.Equal(t, exitIssues, code)
	assert.Contains(t, stderr, "testdata/nope.yaml")
}

func TestCheck(t *testing.T) {
	code, stdout, stderr := runCLI("check", "-v", "testdata/shapes.yaml", "testdata/bad.yaml")
	assert.Equal(t, exitIssues, code)
	assert.Contains(t, stdout, "testdata/shapes.yaml: ok (Handler, Test, TestOmit, Value)")
	assert.NotContains(t, stdout, "bad.yaml")
	assert.Contains(t, stderr, "testdata/bad.yaml:/schemas/A/pick/keys/0: key not present in schema: x [unknown_key] (have { y: string })")
	assert.Contains(t, stderr, "check: files=2")

	code, _, stderr = runCLI("check", "-lang", "ja", "testdata/bad.yaml")
	assert.Equal(t, exitIssues, code)
	assert.Contains(t, stderr, "スキーマに存在しないキーです: x")

	code, _, _ = runCLI("check", "testdata/shapes.yaml")
	assert.Equal(t, exitOK, code)
}

func TestGen(t *testing.T) {
	out := filepath.Join(t.TempDir(), "models", "shapes.go")
	code, _, stderr := runCLI("gen", "-f", "testdata/shapes.yaml", "-schema", "Test, Value", "-pkg", "models", "-o", out)
	require.Equal(t, exitOK, code, stderr)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "package models")
	assert.Contains(t, string(b), "type Test struct")
	assert.Contains(t, string(b), "type Value struct")

	code, _, stderr = runCLI("gen", "-f", "testdata/shapes.yaml", "-schema", "Handler", "-pkg", "models")
	assert.Equal(t, exitIssues, code)
	assert.Contains(t, stderr, `"Handler" is not a declared object schema`)
}

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"object","properties":{"id":{"type":"integer"}},"required":["id"]}`), 0o644))
	code, stdout, stderr := runCLI("import", "-f", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "{ id: number }\n", stdout)

	code, _, _ = runCLI("import", "-f", path, "-kind", "Widget")
	assert.Equal(t, exitIssues, code)
}
