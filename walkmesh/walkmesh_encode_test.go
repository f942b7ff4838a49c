package walkmesh

import (
	"errors"
	"testing"

	"github.com/gorustyt/gowalkmesh/common/rw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBinRoundTrip(t *testing.T) {
	src := NewGridMeshData(3, 2, 0.5, func(x, z float32) float32 { return x * z })

	var got MeshData
	require.NoError(t, got.FromBin(src.ToBin()))
	assert.Equal(t, src, &got)

	m := mustBuild(t, &got)
	assert.Equal(t, 12, m.TriangleCount())
}

func TestSnapshotProtoRoundTrip(t *testing.T) {
	src := rampData()

	var got MeshData
	require.NoError(t, got.FromProto(src.ToProto()))
	assert.Equal(t, src.Vertices, got.Vertices)
	assert.Equal(t, src.Triangles, got.Triangles)
	assert.Equal(t, src.Normals, got.Normals)

	var empty MeshData
	require.NoError(t, empty.FromProto(nil))
	_, err := BuildMesh(&empty)
	assert.True(t, errors.Is(err, ErrEmptyMesh))
}

func TestSnapshotBinErrors(t *testing.T) {
	good := twoTriangleData().ToBin()

	var d MeshData
	err := d.FromBin(good[:3])
	assert.True(t, errors.Is(err, ErrMalformedMesh), "short header: %v", err)

	err = d.FromBin(good[:len(good)-1])
	assert.True(t, errors.Is(err, ErrMalformedMesh), "short body: %v", err)

	w := rw.NewBinWriter()
	w.WriteUInt32(0xdeadbeef)
	w.WriteUInt32(WM_SNAPSHOT_VERSION)
	err = d.FromBin(w.GetWriteBytes())
	var st Status
	require.True(t, errors.As(err, &st))
	assert.True(t, errors.Is(err, ErrMalformedMesh))
	assert.True(t, st.Detail(WM_WRONG_MAGIC))

	w = rw.NewBinWriter()
	w.WriteUInt32(WM_SNAPSHOT_MAGIC)
	w.WriteUInt32(WM_SNAPSHOT_VERSION + 1)
	err = d.FromBin(w.GetWriteBytes())
	require.True(t, errors.As(err, &st))
	assert.True(t, st.Detail(WM_WRONG_VERSION))
	assert.False(t, st.Detail(WM_WRONG_MAGIC))
}

func TestSnapshotProtoErrors(t *testing.T) {
	good := twoTriangleData().ToProto()

	var d MeshData
	assert.True(t, errors.Is(d.FromProto(good[:len(good)-2]), ErrMalformedMesh))
}
