package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	exampleMap  = filepath.Join("..", "..", "examples", "patient-bundle", "map.json")
	exampleDefs = filepath.Join("..", "..", "examples", "patient-bundle", "definitions")
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "disabled", "--env-file", ""}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestRender(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "render", "--definitions", exampleDefs, "-o", dir, exampleMap)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 diagram(s) for 1 document(s)")

	for _, name := range []string{"map.flow.puml", "map.overview.puml", "map.rules.txt"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "map.flow.puml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "@startdot")
}

func TestRender_FormatFlag(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "render", "--format", "rules", "-o", dir, exampleMap)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 1 diagram(s)")

	_, err = execute(t, "render", "--format", "svg", "-o", dir, exampleMap)
	require.Error(t, err)
}

func TestRender_MissingFile(t *testing.T) {
	_, err := execute(t, "render", "-o", t.TempDir(), "does-not-exist.json")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--definitions", exampleDefs, exampleMap)
	require.NoError(t, err)
	assert.Contains(t, out, exampleMap+": ok")

	out, err = execute(t, "check", "--dump", exampleMap)
	require.NoError(t, err)
	assert.Contains(t, out, "Edges:")
}

func TestCheck_ReportsProblems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
resourceType: StructureMap
name: Broken
structure:
  - url: http://hl7.org/fhir/StructureDefinition/Patient
    mode: source
  - url: http://hl7.org/fhir/StructureDefinition/Bundle
    mode: target
group:
  - name: Main
    input:
      - name: src
        type: Patient
        mode: source
      - name: tgt
        type: Bundle
        mode: target
    rule:
      - name: typo
        source:
          - context: sorce
            element: id
            variable: v
`), 0o600))

	out, err := execute(t, "check", path)
	require.NoError(t, err, "warnings alone pass")
	assert.Contains(t, out, "warning: [Broken] rule typo: [unresolved_binding]")
	assert.Contains(t, out, "(did you mean src?)")

	_, err = execute(t, "check", "--warnings-as-errors", path)
	require.Error(t, err)

	_, err = execute(t, "check", "--core-fallback=false", path)
	require.Error(t, err, "structures can't be resolved without definitions")
}

func TestTree(t *testing.T) {
	out, err := execute(t, "tree", exampleMap)
	require.NoError(t, err)
	assert.Contains(t, out, "setId: source.identifier as v -> bundle.id = copy(v)")

	_, err = execute(t, "tree")
	require.Error(t, err)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "map", baseName("examples/map.json"))
	assert.Equal(t, "a.map", baseName("a.map.yaml"))
	assert.Equal(t, "plain", baseName("plain"))
}
