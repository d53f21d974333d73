package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	files := Files("PatientToBundle", map[string]string{
		DiagramRules:    "tree",
		DiagramFlow:     "@startdot",
		DiagramOverview: "@startuml",
	})

	require.Len(t, files, 3)
	assert.Equal(t, "PatientToBundle.flow.puml", files[0].Filename)
	assert.Equal(t, "PatientToBundle.overview.puml", files[1].Filename)
	assert.Equal(t, "PatientToBundle.rules.txt", files[2].Filename)
	assert.Equal(t, []byte("tree"), files[2].Content)

	assert.Empty(t, Files("x", nil))
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := WriteFiles(Files("m", map[string]string{DiagramFlow: "content"}), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "m.flow.puml"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
