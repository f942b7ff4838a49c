package walkmesh

import (
	"github.com/gorustyt/gowalkmesh/common"
)

const (
	// Weights down to -InsideEpsilon still count as on the triangle.
	InsideEpsilon = 1e-5
	// Allowed drift of the weight sum away from 1.
	SumTolerance = 1e-5
)

// WalkPoint is a position on the surface: a triangle and the barycentric
// weights of its three vertices, in the triangle's vertex order.
type WalkPoint struct {
	Triangle [3]uint32
	Weights  common.Vec3
}

func (wp WalkPoint) Sum() float32 {
	return common.Vsum(wp.Weights)
}

// Valid reports whether the weights describe a point on the triangle.
func (wp WalkPoint) Valid() bool {
	if common.Abs(wp.Sum()-1) > SumTolerance {
		return false
	}
	return insideWeights(wp.Weights)
}

// Snap clamps negative weights to zero and rescales the rest to sum to 1,
// moving an off-mesh point onto its triangle.
func (wp *WalkPoint) Snap() {
	for i := range wp.Weights {
		if wp.Weights[i] < 0 {
			wp.Weights[i] = 0
		}
	}
	wp.normalize()
}

func (wp *WalkPoint) normalize() {
	s := wp.Sum()
	if s <= 0 || !common.IsFinite(s) {
		return
	}
	wp.Weights = wp.Weights.Mul(1 / s)
}

func insideWeights(w common.Vec3) bool {
	return w[0] >= -InsideEpsilon && w[1] >= -InsideEpsilon && w[2] >= -InsideEpsilon
}

// barycentric returns the weights of p against triangle abc as ratios of
// signed sub-triangle areas. The sign is taken against the face winding, so
// a point outside an edge gets a negative weight. p need not lie in the
// triangle's plane; only its in-plane part matters.
func barycentric(a, b, c, p common.Vec3) common.Vec3 {
	n := common.TriFaceNormal(a, b, c)
	nn := n.Dot(n)
	return common.Vec3{
		b.Sub(p).Cross(c.Sub(p)).Dot(n) / nn,
		c.Sub(p).Cross(a.Sub(p)).Dot(n) / nn,
		a.Sub(p).Cross(b.Sub(p)).Dot(n) / nn,
	}
}

// barycentricDelta returns how the weights change when the point moves by
// the free vector s. The components sum to zero.
func barycentricDelta(a, b, c, s common.Vec3) common.Vec3 {
	n := common.TriFaceNormal(a, b, c)
	nn := n.Dot(n)
	d0 := s.Cross(b.Sub(c)).Dot(n) / nn
	d1 := s.Cross(c.Sub(a)).Dot(n) / nn
	return common.Vec3{d0, d1, -(d0 + d1)}
}

// WorldPoint returns the position of wp in world space.
func (m *SurfaceMesh) WorldPoint(wp WalkPoint) common.Vec3 {
	a, b, c := m.corners(wp.Triangle)
	return a.Mul(wp.Weights[0]).Add(b.Mul(wp.Weights[1])).Add(c.Mul(wp.Weights[2]))
}

// WorldNormal returns the unit up direction at wp: the stored normal of its
// triangle, or the face normal if the triangle is not part of the mesh.
func (m *SurfaceMesh) WorldNormal(wp WalkPoint) common.Vec3 {
	if ti, ok := m.TriangleIndex(wp.Triangle); ok {
		return m.m_normals[ti]
	}
	a, b, c := m.corners(wp.Triangle)
	return common.TriFaceNormal(a, b, c).Normalize()
}
