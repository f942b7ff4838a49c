package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gorustyt/gowalkmesh/walkmesh"
	"github.com/gorustyt/gowalkmesh/walkmesh_agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	_, err := walkmesh.BuildMesh(cfg.Mesh.MeshData())
	require.NoError(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
mesh:
  cols: 4
  rows: 3
  profile: wave
agents:
  - name: solo
    spawn: [1, 0, 1]
    forward: [0, 0, 1]
    speed: 3
    controls:
      - {from_tick: 0, forward: true}
      - {from_tick: 5, left: true, turn: 1.5}
ticks: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Mesh.Cols)
	assert.Equal(t, float32(1), cfg.Mesh.Cell, "kept from defaults")
	assert.Equal(t, HEIGHT_PROFILE_WAVE, cfg.Mesh.Profile)
	assert.Equal(t, 10, cfg.Ticks)
	assert.Equal(t, Default().Output, cfg.Output)
	require.Len(t, cfg.Agents, 1)

	p := cfg.Agents[0].Params()
	assert.Equal(t, "solo", p.Name)
	assert.Equal(t, float32(3), p.Speed)
	assert.Equal(t, float32(1), p.Forward[2])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "mesh: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, `
mesh: {cols: 0, profile: cliffs}
agents:
  - {name: a, speed: -1}
  - {name: a}
`))
	require.Error(t, err)
	for _, want := range []string{"empty", "unknown profile", "negative speed", "duplicate name"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestHeightFunc(t *testing.T) {
	assert.Nil(t, MeshConfig{Profile: HEIGHT_PROFILE_FLAT}.HeightFunc())

	ramp := MeshConfig{Profile: HEIGHT_PROFILE_RAMP, RampStart: 2, RampSlope: 0.5}.HeightFunc()
	assert.Equal(t, float32(0), ramp(1, 7))
	assert.Equal(t, float32(1), ramp(4, 7))

	wave := MeshConfig{Profile: HEIGHT_PROFILE_WAVE, Amplitude: 2, Wavelength: 4}.HeightFunc()
	assert.InDelta(t, 2, wave(1, 0), 1e-5)
	assert.InDelta(t, 0, wave(0, 3), 1e-5)
}

func TestControlsAt(t *testing.T) {
	a := AgentConfig{Controls: []ControlConfig{
		{FromTick: 2, Forward: true},
		{FromTick: 5, Left: true, Turn: 0.5},
	}}
	c, turn := a.ControlsAt(0)
	assert.Equal(t, walkmesh_agent.Controls{}, c)
	assert.Zero(t, turn)

	c, _ = a.ControlsAt(3)
	assert.Equal(t, walkmesh_agent.Controls{Forward: true}, c)

	c, turn = a.ControlsAt(5)
	assert.Equal(t, walkmesh_agent.Controls{Left: true}, c)
	assert.Equal(t, float32(0.5), turn)

	_, turn = a.ControlsAt(6)
	assert.Zero(t, turn)
}

func TestProfileDesc(t *testing.T) {
	assert.Equal(t, DESC_HEIGHT_PROFILE_RAMP, HEIGHT_PROFILE_RAMP.Desc())
	assert.Empty(t, HeightProfile("cliffs").Desc())
}
