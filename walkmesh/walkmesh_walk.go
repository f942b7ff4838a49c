package walkmesh

import (
	"fmt"

	"github.com/gorustyt/gowalkmesh/common"
)

type WalkEventKind int

const (
	WALK_CROSS WalkEventKind = iota // Moved into the triangle across an edge.
	WALK_SLIDE                      // Hit a boundary edge and turned along it.
)

func (k WalkEventKind) String() string {
	switch k {
	case WALK_CROSS:
		return "cross"
	case WALK_SLIDE:
		return "slide"
	}
	return fmt.Sprintf("WalkEventKind(%d)", int(k))
}

// WalkEvent describes one edge hit during a walk.
type WalkEvent struct {
	Kind WalkEventKind
	// The edge that was reached, in the winding of the triangle being left.
	Edge EdgeKey
	// The walk point right after the event. For WALK_CROSS it is already
	// expressed in the new triangle.
	Point WalkPoint
	// Fraction of the step still to travel.
	Remaining float32
}

// / Moves a walk point along the surface.
// /  @param[in,out]	wp		The point to move. Must be on the mesh.
// /  @param[in]		step	World space motion for this tick. [(x, y, z)]
// / @return nil, ErrOffMesh for a point not on this mesh, or ErrWalkDivergence.
func (m *SurfaceMesh) Walk(wp *WalkPoint, step common.Vec3) error {
	return m.WalkTraced(wp, step, nil)
}

// Walk is the free function form of (*SurfaceMesh).Walk.
func Walk(mesh *SurfaceMesh, wp *WalkPoint, step common.Vec3) error {
	return mesh.Walk(wp, step)
}

// / Same as Walk, reporting every edge hit to trace when it is not nil.
// /
// / The step stays a world space vector for the whole walk. In each triangle
// / it is turned into a barycentric delta d and the weights travel along
// / w + t*d. When some weight would go negative the first edge reached (the
// / smallest time to zero) is either crossed into the neighbouring triangle,
// / rotating the rest of the step from the old normal onto the new one, or,
// / on a boundary, the rest of the step is projected onto the edge.
// /
// / On ErrWalkDivergence wp holds the last edge-clamped state, which still
// / sums to 1.
func (m *SurfaceMesh) WalkTraced(wp *WalkPoint, step common.Vec3, trace func(WalkEvent)) error {
	if wp == nil {
		return fmt.Errorf("walkmesh: nil walk point: %w", ErrOffMesh)
	}
	face, ok := m.TriangleIndex(wp.Triangle)
	if !ok {
		return fmt.Errorf("walkmesh: triangle %v is not on this mesh: %w", wp.Triangle, ErrOffMesh)
	}
	if !wp.Valid() {
		return fmt.Errorf("walkmesh: weights %v are off the triangle: %w", wp.Weights, ErrOffMesh)
	}
	if !common.Visfinite(step) {
		return fmt.Errorf("walkmesh: step %v is not finite: %w", step, ErrWalkDivergence)
	}

	a, b, c := m.corners(wp.Triangle)
	d := barycentricDelta(a, b, c, step)
	if d == (common.Vec3{}) {
		return nil
	}

	cur := *wp
	var (
		t             = float32(1)
		crossings     int
		iterations    int
		stuck         int
		maxCrossings  = len(m.m_tris)
		maxIterations = 3*len(m.m_tris) + 3
	)
	for t > 0 {
		if iterations >= maxIterations {
			*wp = cur
			return fmt.Errorf("walkmesh: no rest after %d edge hits: %w", iterations, ErrWalkDivergence)
		}
		iterations++

		tentative := cur.Weights.Add(d.Mul(t))
		if insideWeights(tentative) {
			cur.Weights = tentative
			cur.Snap()
			break
		}

		i, ti := firstExit(cur.Weights, d)
		if i < 0 {
			// Nothing is decreasing, the overshoot is rounding noise.
			cur.Weights = tentative
			cur.Snap()
			break
		}
		ti = min(ti, t)
		cur.Weights = cur.Weights.Add(d.Mul(ti))
		cur.Weights[i] = 0
		cur.Snap()
		t -= ti

		v1 := cur.Triangle[common.Next(i, 3)]
		v2 := cur.Triangle[common.Prev(i, 3)]
		edge := EdgeKey{Tail: v1, Head: v2}

		if v3, ok := m.Neighbor(v1, v2); ok {
			crossings++
			if crossings > maxCrossings {
				*wp = cur
				return fmt.Errorf("walkmesh: more than %d edge crossings: %w", maxCrossings, ErrWalkDivergence)
			}
			next := [3]uint32{v2, v1, v3}
			nextFace, _ := m.TriangleIndex(next)
			w1 := cur.Weights[common.Next(i, 3)]
			w2 := cur.Weights[common.Prev(i, 3)]
			cur = WalkPoint{Triangle: next, Weights: common.Vec3{w2, w1, 0}}
			cur.normalize()

			step = RotationBetween(m.m_normals[face], m.m_normals[nextFace]).Rotate(step)
			face = nextFace
			a, b, c = m.corners(next)
			d = barycentricDelta(a, b, c, step)
			if d[2] < 0 {
				// The rotated step points back over the seam; keep it on the seam.
				step, d = slideAlong(a, b, c, step, 2)
			}
			stuck = 0
			if trace != nil {
				trace(WalkEvent{Kind: WALK_CROSS, Edge: edge, Point: cur, Remaining: t})
			}
			continue
		}

		step, d = slideAlong(a, b, c, step, i)
		if ti <= InsideEpsilon {
			stuck++
		} else {
			stuck = 0
		}
		if trace != nil {
			trace(WalkEvent{Kind: WALK_SLIDE, Edge: edge, Point: cur, Remaining: t})
		}
		if stuck >= 2 {
			// Wedged in a corner between two boundary edges.
			break
		}
	}
	*wp = cur
	return nil
}

// firstExit returns the weight that reaches zero first along w + t*d and the
// time it takes. i is -1 when no weight decreases.
func firstExit(w, d common.Vec3) (i int, t float32) {
	i = -1
	for k := 0; k < 3; k++ {
		if d[k] >= 0 {
			continue
		}
		tk := max(-w[k]/d[k], 0)
		if i < 0 || tk < t {
			i, t = k, tk
		}
	}
	return i, t
}

// slideAlong keeps the part of step running along the edge opposite corner
// i of triangle abc and returns it with its barycentric delta, whose i-th
// component is exactly zero.
func slideAlong(a, b, c, step common.Vec3, i int) (common.Vec3, common.Vec3) {
	corners := [3]common.Vec3{a, b, c}
	dir := corners[common.Prev(i, 3)].Sub(corners[common.Next(i, 3)])
	step = common.ProjectOntoLine(step, dir)
	d := barycentricDelta(a, b, c, step)
	d[i] = 0
	d[common.Prev(i, 3)] = -d[common.Next(i, 3)]
	return step, d
}
