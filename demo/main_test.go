package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gorustyt/gowalkmesh/debug_utils"
	"github.com/gorustyt/gowalkmesh/demo/config"
	"github.com/gorustyt/gowalkmesh/walkmesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Mesh.Cols, cfg.Mesh.Rows = 10, 10
	cfg.Mesh.RampStart = 5
	cfg.Ticks = 60
	cfg.Output.Dir = t.TempDir()
	cfg.Output.ImageSize = 64
	cfg.Output.Supersample = 1
	require.NoError(t, cfg.Validate())

	require.NoError(t, run(cfg, zaptest.NewLogger(t)))

	want, err := walkmesh.BuildMesh(cfg.Mesh.MeshData())
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "walkmesh.bin"))
	require.NoError(t, err)
	var fromBin walkmesh.MeshData
	require.NoError(t, fromBin.FromBin(raw))
	assert.Equal(t, want.Data(), &fromBin)

	raw, err = os.ReadFile(filepath.Join(cfg.Output.Dir, "walkmesh.pb"))
	require.NoError(t, err)
	var fromProto walkmesh.MeshData
	require.NoError(t, fromProto.FromProto(raw))
	assert.Equal(t, want.Data(), &fromProto)

	raw, err = os.ReadFile(filepath.Join(cfg.Output.Dir, "walkmesh.obj"))
	require.NoError(t, err)
	fromObj, err := debug_utils.ReadWalkMeshFromObj(raw)
	require.NoError(t, err)
	assert.Len(t, fromObj.Triangles, want.TriangleCount())

	raw, err = os.ReadFile(filepath.Join(cfg.Output.Dir, "walkmesh.webp"))
	require.NoError(t, err)
	assert.Equal(t, "WEBP", string(raw[8:12]))
}
