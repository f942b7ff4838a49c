package walkmesh

import (
	"fmt"

	"github.com/gorustyt/gowalkmesh/common"
)

const (
	// Triangles whose Heron area falls below this are rejected.
	DegenerateAreaEpsilon = 1e-7
	// Stored normals shorter than this are rejected.
	normalEpsilon = 1e-6
)

// EdgeKey is a directed edge, tail to head. Order matters: (a,b) and (b,a)
// are different keys and belong to the two triangles on either side.
type EdgeKey struct {
	Tail, Head uint32
}

// Reversed returns the same edge walked the other way.
func (e EdgeKey) Reversed() EdgeKey {
	return EdgeKey{Tail: e.Head, Head: e.Tail}
}

type edgeEntry struct {
	opposite uint32 // third vertex of the owning triangle
	tri      int32  // index of the owning triangle
}

// SurfaceMesh is an immutable triangulated walkable surface. It is safe to
// share between goroutines once built.
type SurfaceMesh struct {
	m_verts   []common.Vec3
	m_tris    [][3]uint32
	m_normals []common.Vec3
	m_edges   map[EdgeKey]edgeEntry
}

// / Builds the surface mesh and its directed-edge adjacency index.
// /  @param[in]	vertices	Vertex positions.
// /  @param[in]	triangles	Vertex index triples, consistently wound.
// /  @param[in]	normals		One normal per triangle.
// / @return The mesh, or ErrEmptyMesh / ErrMalformedMesh.
func NewSurfaceMesh(vertices []common.Vec3, triangles [][3]uint32, normals []common.Vec3) (*SurfaceMesh, error) {
	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(normals) != len(triangles) {
		return nil, fmt.Errorf("walkmesh: %d normals for %d triangles: %w", len(normals), len(triangles), ErrMalformedMesh)
	}
	m := &SurfaceMesh{
		m_verts:   append([]common.Vec3(nil), vertices...),
		m_tris:    append([][3]uint32(nil), triangles...),
		m_normals: make([]common.Vec3, len(normals)),
		m_edges:   make(map[EdgeKey]edgeEntry, 3*len(triangles)),
	}
	for i, v := range m.m_verts {
		if !common.Visfinite(v) {
			return nil, fmt.Errorf("walkmesh: vertex %d is not finite: %w", i, ErrMalformedMesh)
		}
	}
	for ti, tri := range m.m_tris {
		for _, v := range tri {
			if int(v) >= len(m.m_verts) {
				return nil, fmt.Errorf("walkmesh: triangle %d references vertex %d of %d: %w", ti, v, len(m.m_verts), ErrMalformedMesh)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return nil, fmt.Errorf("walkmesh: triangle %d repeats a vertex %v: %w", ti, tri, ErrMalformedMesh)
		}
		a, b, c := m.corners(tri)
		if area := common.TriAreaHeron(a, b, c); area < DegenerateAreaEpsilon {
			return nil, fmt.Errorf("walkmesh: triangle %d is degenerate (area %g): %w", ti, area, ErrMalformedMesh)
		}
		n := normals[ti]
		if !common.Visfinite(n) || n.Len() < normalEpsilon {
			return nil, fmt.Errorf("walkmesh: triangle %d has unusable normal %v: %w", ti, n, ErrMalformedMesh)
		}
		m.m_normals[ti] = n.Normalize()

		for k := 0; k < 3; k++ {
			key := EdgeKey{Tail: tri[k], Head: tri[common.Next(k, 3)]}
			if prev, dup := m.m_edges[key]; dup {
				return nil, fmt.Errorf("walkmesh: directed edge %v owned by triangles %d and %d: %w", key, prev.tri, ti, ErrMalformedMesh)
			}
			m.m_edges[key] = edgeEntry{opposite: tri[common.Prev(k, 3)], tri: int32(ti)}
		}
	}
	return m, nil
}

func (m *SurfaceMesh) VertexCount() int   { return len(m.m_verts) }
func (m *SurfaceMesh) TriangleCount() int { return len(m.m_tris) }

func (m *SurfaceMesh) Vertex(i uint32) common.Vec3 { return m.m_verts[i] }
func (m *SurfaceMesh) Triangle(i int) [3]uint32    { return m.m_tris[i] }

// Normal returns the stored normal of triangle i, normalized.
func (m *SurfaceMesh) Normal(i int) common.Vec3 { return m.m_normals[i] }

func (m *SurfaceMesh) corners(tri [3]uint32) (a, b, c common.Vec3) {
	return m.m_verts[tri[0]], m.m_verts[tri[1]], m.m_verts[tri[2]]
}

// Opposite returns the third vertex of the triangle that owns the directed
// edge tail->head.
func (m *SurfaceMesh) Opposite(tail, head uint32) (uint32, bool) {
	e, ok := m.m_edges[EdgeKey{Tail: tail, Head: head}]
	return e.opposite, ok
}

// Neighbor returns the third vertex of the triangle across edge tail->head,
// that is the owner of head->tail. ok is false on a boundary edge.
func (m *SurfaceMesh) Neighbor(tail, head uint32) (uint32, bool) {
	return m.Opposite(head, tail)
}

// TriangleIndex resolves a vertex triple to its stored triangle. Any
// rotation of the stored winding resolves; the reversed winding does not.
func (m *SurfaceMesh) TriangleIndex(tri [3]uint32) (int, bool) {
	e, ok := m.m_edges[EdgeKey{Tail: tri[0], Head: tri[1]}]
	if !ok || e.opposite != tri[2] {
		return -1, false
	}
	return int(e.tri), true
}

// BoundaryEdges lists the directed edges that have no triangle across them,
// in triangle order.
func (m *SurfaceMesh) BoundaryEdges() []EdgeKey {
	var res []EdgeKey
	for _, tri := range m.m_tris {
		for k := 0; k < 3; k++ {
			key := EdgeKey{Tail: tri[k], Head: tri[common.Next(k, 3)]}
			if _, ok := m.m_edges[key.Reversed()]; !ok {
				res = append(res, key)
			}
		}
	}
	return res
}

// IsBoundaryTriangle reports whether triangle i has at least one boundary edge.
func (m *SurfaceMesh) IsBoundaryTriangle(i int) bool {
	tri := m.m_tris[i]
	for k := 0; k < 3; k++ {
		if _, ok := m.Neighbor(tri[k], tri[common.Next(k, 3)]); !ok {
			return true
		}
	}
	return false
}

// Data returns a copy of the source arrays with normals as stored.
func (m *SurfaceMesh) Data() *MeshData {
	return &MeshData{
		Vertices:  append([]common.Vec3(nil), m.m_verts...),
		Triangles: append([][3]uint32(nil), m.m_tris...),
		Normals:   append([]common.Vec3(nil), m.m_normals...),
	}
}

// Bounds returns the axis aligned box around every vertex.
func (m *SurfaceMesh) Bounds() (bmin, bmax common.Vec3) {
	bmin, bmax = m.m_verts[0], m.m_verts[0]
	for _, v := range m.m_verts[1:] {
		common.Vmin(&bmin, v)
		common.Vmax(&bmax, v)
	}
	return bmin, bmax
}
