package walkmesh

import (
	"fmt"
	"math"

	"github.com/gorustyt/gowalkmesh/common"
)

// MeshData holds the flat source arrays a SurfaceMesh is built from.
type MeshData struct {
	Vertices  []common.Vec3
	Triangles [][3]uint32
	Normals   []common.Vec3 // one per triangle
}

// BuildMesh validates data and builds a SurfaceMesh from it.
func BuildMesh(data *MeshData) (*SurfaceMesh, error) {
	if data == nil {
		return nil, ErrEmptyMesh
	}
	return NewSurfaceMesh(data.Vertices, data.Triangles, data.Normals)
}

// PositionNormal is one packed vertex record as exported by the asset
// pipeline. Three consecutive records make one triangle.
type PositionNormal struct {
	Position common.Vec3
	Normal   common.Vec3
}

type weldCell [3]int64

// MeshDataFromSoup turns an unindexed triangle list into indexed mesh data.
// Records closer than weldEpsilon share one vertex, which is what makes
// neighbouring triangles see each other. The triangle normal is the mean of
// its three record normals (or the face normal when those cancel out), and
// the winding is flipped where needed so the face agrees with that normal.
func MeshDataFromSoup(records []PositionNormal, weldEpsilon float32) (*MeshData, error) {
	if len(records) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(records)%3 != 0 {
		return nil, fmt.Errorf("walkmesh: %d records do not group into triangles: %w", len(records), ErrMalformedMesh)
	}
	if weldEpsilon <= 0 {
		return nil, fmt.Errorf("walkmesh: weld epsilon %g must be positive: %w", weldEpsilon, ErrMalformedMesh)
	}

	data := &MeshData{}
	grid := make(map[weldCell][]uint32)
	cellOf := func(p common.Vec3) weldCell {
		return weldCell{
			int64(math.Floor(float64(p[0] / weldEpsilon))),
			int64(math.Floor(float64(p[1] / weldEpsilon))),
			int64(math.Floor(float64(p[2] / weldEpsilon))),
		}
	}
	weld := func(p common.Vec3) uint32 {
		cell := cellOf(p)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, idx := range grid[weldCell{cell[0] + dx, cell[1] + dy, cell[2] + dz}] {
						if common.Vdist(data.Vertices[idx], p) <= weldEpsilon {
							return idx
						}
					}
				}
			}
		}
		idx := uint32(len(data.Vertices))
		data.Vertices = append(data.Vertices, p)
		grid[cell] = append(grid[cell], idx)
		return idx
	}

	for i := 0; i < len(records); i += 3 {
		r0, r1, r2 := records[i], records[i+1], records[i+2]
		tri := [3]uint32{weld(r0.Position), weld(r1.Position), weld(r2.Position)}
		face := common.TriFaceNormal(r0.Position, r1.Position, r2.Position)
		n := r0.Normal.Add(r1.Normal).Add(r2.Normal)
		if n.Len() < normalEpsilon {
			n = face
		}
		if face.Dot(n) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		if n.Len() >= normalEpsilon {
			n = n.Normalize()
		}
		data.Triangles = append(data.Triangles, tri)
		data.Normals = append(data.Normals, n)
	}
	return data, nil
}

// HeightFunc gives the surface height at (x, z).
type HeightFunc func(x, z float32) float32

// NewGridMeshData builds a cols x rows heightfield of square cells, two
// triangles per cell, with +Y facing faces. A nil height gives a flat floor
// at y = 0.
func NewGridMeshData(cols, rows int, cell float32, height HeightFunc) *MeshData {
	if height == nil {
		height = func(x, z float32) float32 { return 0 }
	}
	data := &MeshData{}
	stride := cols + 1
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			x, z := float32(c)*cell, float32(r)*cell
			data.Vertices = append(data.Vertices, common.Vec3{x, height(x, z), z})
		}
	}
	idx := func(c, r int) uint32 { return uint32(r*stride + c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v00, v10 := idx(c, r), idx(c+1, r)
			v01, v11 := idx(c, r+1), idx(c+1, r+1)
			for _, tri := range [2][3]uint32{{v00, v01, v10}, {v10, v01, v11}} {
				a, b, cc := data.Vertices[tri[0]], data.Vertices[tri[1]], data.Vertices[tri[2]]
				data.Triangles = append(data.Triangles, tri)
				data.Normals = append(data.Normals, common.TriFaceNormal(a, b, cc).Normalize())
			}
		}
	}
	return data
}
