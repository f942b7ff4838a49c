package walkmesh

import (
	"errors"
	"testing"

	"github.com/gorustyt/gowalkmesh/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertWeights(t *testing.T, want, got common.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "weight %d of %v", i, got)
	}
}

func TestLocateInsideFirstTriangle(t *testing.T) {
	m := mustBuild(t, twoTriangleData())

	wp, err := m.Locate(common.Vec3{0.2, 5, 0.2})
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{0, 1, 2}, wp.Triangle)
	assertWeights(t, common.Vec3{0.6, 0.2, 0.2}, wp.Weights)
	assert.InDelta(t, 1, wp.Sum(), 1e-5)
	assert.True(t, wp.Valid())
}

func TestLocatePrefersContainingTriangle(t *testing.T) {
	m := mustBuild(t, twoTriangleData())

	// Both triangles are coplanar so their projections tie on distance.
	wp, err := Locate(m, common.Vec3{0.8, -3, 0.7})
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{2, 1, 3}, wp.Triangle)
	assertWeights(t, common.Vec3{0.3, 0.2, 0.5}, wp.Weights)
	assert.InDelta(t, 0.8, m.WorldPoint(wp)[0], 1e-5)
	assert.InDelta(t, 0.7, m.WorldPoint(wp)[2], 1e-5)
}

func TestLocateNearestPlane(t *testing.T) {
	// A floor at y = 0 and a balcony at y = 2 over the same footprint.
	m := mustBuild(t, &MeshData{
		Vertices: []common.Vec3{
			{0, 0, 0}, {0, 0, 1}, {1, 0, 0},
			{0, 2, 0}, {0, 2, 1}, {1, 2, 0},
		},
		Triangles: [][3]uint32{{0, 1, 2}, {3, 4, 5}},
		Normals:   []common.Vec3{up, up},
	})

	wp, err := m.Locate(common.Vec3{0.2, 1.5, 0.2})
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{3, 4, 5}, wp.Triangle)
	assert.InDelta(t, 2, m.WorldPoint(wp)[1], 1e-5)

	wp, err = m.Locate(common.Vec3{0.2, 0.9, 0.2})
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{0, 1, 2}, wp.Triangle)
}

func TestLocateOffMesh(t *testing.T) {
	m := mustBuild(t, twoTriangleData())

	wp, err := m.Locate(common.Vec3{2, 0, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOffMesh))
	assert.InDelta(t, 1, wp.Sum(), 1e-5)
	assert.False(t, wp.Valid())
	assert.Less(t, min(wp.Weights[0], wp.Weights[1], wp.Weights[2]), float32(0))

	wp.Snap()
	assert.True(t, wp.Valid())
	for _, w := range wp.Weights {
		assert.GreaterOrEqual(t, w, float32(0))
	}
}

func TestLocateEmpty(t *testing.T) {
	_, err := Locate(nil, common.Vec3{})
	assert.True(t, errors.Is(err, ErrEmptyMesh))
}
