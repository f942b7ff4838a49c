package walkmesh

import (
	"math"

	"github.com/gorustyt/gowalkmesh/common"
)

// / Finds the walk point closest to a world position.
// /  @param[in]	worldPoint	The position to place on the surface. [(x, y, z)]
// / @return The located point, or ErrOffMesh together with the nearest
// / unclamped candidate when no triangle contains the point's projection.
// /
// / Every triangle is scanned. The point is dropped onto each triangle's plane
// / along its stored normal and the distance to that projection ranks the
// / candidates. A candidate whose projection lies inside its triangle always
// / beats one that lies outside, so coplanar neighbours resolve to the
// / triangle actually under the point. Ties keep the first triangle.
func (m *SurfaceMesh) Locate(worldPoint common.Vec3) (WalkPoint, error) {
	if m == nil || len(m.m_tris) == 0 {
		return WalkPoint{}, ErrEmptyMesh
	}
	var (
		inside, nearest         WalkPoint
		insideDist, nearestDist = float32(math.MaxFloat32), float32(math.MaxFloat32)
		found                   bool
	)
	for ti, tri := range m.m_tris {
		a, b, c := m.corners(tri)
		q := common.ProjectOntoPlane(worldPoint, a, m.m_normals[ti])
		dist := common.Vdist(q, worldPoint)
		cand := WalkPoint{Triangle: tri, Weights: barycentric(a, b, c, q)}
		cand.normalize()
		if dist < nearestDist {
			nearest, nearestDist = cand, dist
		}
		if insideWeights(cand.Weights) && dist < insideDist {
			inside, insideDist, found = cand, dist, true
		}
	}
	if !found {
		return nearest, ErrOffMesh
	}
	inside.Snap()
	return inside, nil
}

// Locate is the free function form of (*SurfaceMesh).Locate.
func Locate(mesh *SurfaceMesh, worldPoint common.Vec3) (WalkPoint, error) {
	return mesh.Locate(worldPoint)
}
