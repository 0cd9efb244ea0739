package batch_test

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"dactyl-gen/internal/assembly"
	"dactyl-gen/internal/batch"
	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(io.Writer, csg.Node) error { return errors.New("boom") }

func outputs() []assembly.Output {
	return []assembly.Output{
		{Name: "a", Tree: csg.Box(1, 1, 1)},
		{Name: "b", Tree: csg.Sphere(2, 12)},
		{Name: "empty"},
	}
}

func TestRunWritesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	results := batch.Run(batch.Config{OutputDir: dir, Workers: 2}, outputs())
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Name)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.False(t, results[2].Success)
	assert.Equal(t, "empty tree", results[2].Error)
	assert.Equal(t, 1, batch.Failed(results))

	data, err := os.ReadFile(filepath.Join(dir, "a.scad"))
	require.NoError(t, err)
	assert.Equal(t, "cube([1, 1, 1], center=true);\n", string(data))
	assert.Equal(t, int64(len(data)), results[0].Bytes)
}

func TestRunReportsWriterErrors(t *testing.T) {
	results := batch.Run(batch.Config{OutputDir: t.TempDir(), Writer: failingWriter{}}, outputs()[:1])
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "serialize: boom", results[0].Error)
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	results := batch.Run(batch.Config{OutputDir: dir, Workers: 1}, outputs())
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, batch.WriteManifest(path, batch.NewSummary(params.Default(), 26, -20), results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m batch.Manifest
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, 5, m.Params.Rows)
	assert.Equal(t, "standard", m.Params.ColumnStyle)
	assert.InDelta(t, 15, m.Params.RowCurvatureDeg, 1e-9)
	assert.Equal(t, 26, m.Params.Keys)
	require.Len(t, m.Variants, 3)
	assert.Equal(t, "b.scad", m.Variants[1].File)
	assert.Equal(t, "empty tree", m.Variants[2].Error)
}
