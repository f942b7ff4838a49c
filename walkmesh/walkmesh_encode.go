package walkmesh

import (
	"fmt"

	"github.com/gorustyt/gowalkmesh/common"
	"github.com/gorustyt/gowalkmesh/common/message"
	"github.com/gorustyt/gowalkmesh/common/rw"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	WM_SNAPSHOT_MAGIC   = 'W'<<24 | 'M'<<16 | 'S'<<8 | 'H'
	WM_SNAPSHOT_VERSION = 1
)

// Field numbers of the proto snapshot.
const (
	protoVertices  protowire.Number = 1
	protoTriangles protowire.Number = 2
	protoNormals   protowire.Number = 3
)

func flattenTriangles(tris [][3]uint32) []uint32 {
	res := make([]uint32, 0, len(tris)*3)
	for _, t := range tris {
		res = append(res, t[0], t[1], t[2])
	}
	return res
}

func unflattenTriangles(flat []uint32) [][3]uint32 {
	res := make([][3]uint32, len(flat)/3)
	for i := range res {
		res[i] = [3]uint32{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return res
}

func (d *MeshData) ToBin() (res []byte) {
	w := rw.NewBinWriter()
	w.WriteUInt32(WM_SNAPSHOT_MAGIC)
	w.WriteUInt32(WM_SNAPSHOT_VERSION)
	w.WriteUInt32(uint32(len(d.Vertices)))
	w.WriteUInt32(uint32(len(d.Triangles)))
	w.WriteFloat32s(common.FlattenVec3(d.Vertices))
	w.WriteUInt32s(flattenTriangles(d.Triangles))
	w.WriteFloat32s(common.FlattenVec3(d.Normals))
	return w.GetWriteBytes()
}

func (d *MeshData) FromBin(data []byte) error {
	r := rw.NewBinReader(data)
	magic := r.ReadUInt32()
	version := r.ReadUInt32()
	if err := r.Err(); err != nil {
		return fmt.Errorf("walkmesh: snapshot header: %v: %w", err, ErrMalformedMesh)
	}
	if magic != WM_SNAPSHOT_MAGIC {
		return WM_FAILURE | WM_MALFORMED_MESH | WM_WRONG_MAGIC
	}
	if version != WM_SNAPSHOT_VERSION {
		return WM_FAILURE | WM_MALFORMED_MESH | WM_WRONG_VERSION
	}
	vertCount := r.ReadUInt32()
	triCount := r.ReadUInt32()
	// Each vertex takes 12 bytes, each triangle 12 for indices and 12 for its normal.
	if need := uint64(vertCount)*12 + uint64(triCount)*24; need > uint64(r.Size()) {
		return fmt.Errorf("walkmesh: snapshot needs %d bytes, has %d: %w", need, r.Size(), ErrMalformedMesh)
	}
	verts := make([]float32, vertCount*3)
	r.ReadFloat32s(verts)
	tris := make([]uint32, triCount*3)
	r.ReadUInt32s(tris)
	normals := make([]float32, triCount*3)
	r.ReadFloat32s(normals)
	if err := r.Err(); err != nil {
		return fmt.Errorf("walkmesh: snapshot body: %v: %w", err, ErrMalformedMesh)
	}
	d.Vertices = common.UnflattenVec3(verts)
	d.Triangles = unflattenTriangles(tris)
	d.Normals = common.UnflattenVec3(normals)
	return nil
}

func (d *MeshData) ToProto() []byte {
	var b []byte
	b = message.AppendFloat32s(b, protoVertices, common.FlattenVec3(d.Vertices))
	b = message.AppendUint32s(b, protoTriangles, flattenTriangles(d.Triangles))
	b = message.AppendFloat32s(b, protoNormals, common.FlattenVec3(d.Normals))
	return b
}

func (d *MeshData) FromProto(data []byte) error {
	var verts, normals []float32
	var tris []uint32
	err := message.RangeFields(data, func(num protowire.Number, typ protowire.Type, value []byte) (err error) {
		switch num {
		case protoVertices:
			verts, err = message.ConsumeFloat32s(verts, typ, value)
		case protoTriangles:
			tris, err = message.ConsumeUint32s(tris, typ, value)
		case protoNormals:
			normals, err = message.ConsumeFloat32s(normals, typ, value)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("walkmesh: proto snapshot: %v: %w", err, ErrMalformedMesh)
	}
	if len(verts)%3 != 0 || len(tris)%3 != 0 || len(normals)%3 != 0 {
		return fmt.Errorf("walkmesh: proto snapshot has partial records: %w", ErrMalformedMesh)
	}
	d.Vertices = common.UnflattenVec3(verts)
	d.Triangles = unflattenTriangles(tris)
	d.Normals = common.UnflattenVec3(normals)
	return nil
}
