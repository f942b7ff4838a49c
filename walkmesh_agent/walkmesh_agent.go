package walkmesh_agent

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorustyt/gowalkmesh/common"
	"github.com/gorustyt/gowalkmesh/walkmesh"
	"go.uber.org/zap"
)

// Frames shorter than this are rebuilt from the surface normal.
const frameEpsilon = 1e-6

// Controls are the movement keys held during a tick.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

func (c Controls) Any() bool {
	return c.Forward || c.Backward || c.Left || c.Right
}

// AgentParams describes an agent to spawn.
type AgentParams struct {
	Name     string
	Spawn    common.Vec3 // world point, located onto the mesh
	Forward  common.Vec3 // initial heading, flattened onto the surface
	Speed    float32     // surface distance per second
	MaxTrail int         // 0 keeps every position
}

// Agent is one actor moving over a shared walk mesh. It keeps a local frame
// (up, forward, right) that follows the surface as it walks.
type Agent struct {
	Name     string
	Speed    float32
	Controls Controls

	m_mesh     *walkmesh.SurfaceMesh
	m_point    walkmesh.WalkPoint
	m_pos      common.Vec3
	m_up       common.Vec3
	m_forward  common.Vec3
	m_right    common.Vec3
	m_trail    []common.Vec3
	m_maxTrail int
	m_log      *zap.Logger
}

// / Places a new agent on the mesh.
// /  @param[in]	mesh	The shared walk mesh.
// /  @param[in]	params	Spawn description.
// /  @param[in]	log		Logger, nil for none.
// / A spawn point that projects outside every triangle is snapped onto the
// / nearest one with a warning.
func NewAgent(mesh *walkmesh.SurfaceMesh, params AgentParams, log *zap.Logger) (*Agent, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if params.Speed < 0 {
		return nil, fmt.Errorf("walkmesh_agent: agent %q has negative speed %g", params.Name, params.Speed)
	}
	log = log.With(zap.String("agent", params.Name))
	wp, err := walkmesh.Locate(mesh, params.Spawn)
	switch {
	case errors.Is(err, walkmesh.ErrOffMesh):
		wp.Snap()
		log.Warn("spawn point is off the walk mesh, snapped",
			zap.Float32s("spawn", params.Spawn[:]),
			zap.Uint32s("triangle", wp.Triangle[:]))
	case err != nil:
		return nil, err
	}

	a := &Agent{
		Name:       params.Name,
		Speed:      params.Speed,
		m_mesh:     mesh,
		m_point:    wp,
		m_maxTrail: params.MaxTrail,
		m_log:      log,
	}
	a.m_pos = mesh.WorldPoint(wp)
	a.m_up = mesh.WorldNormal(wp)
	a.setForward(params.Forward)
	a.record()
	log.Debug("agent spawned", zap.Float32s("pos", a.m_pos[:]))
	return a, nil
}

func (a *Agent) GetPos() common.Vec3             { return a.m_pos }
func (a *Agent) GetUp() common.Vec3              { return a.m_up }
func (a *Agent) GetForward() common.Vec3         { return a.m_forward }
func (a *Agent) GetRight() common.Vec3           { return a.m_right }
func (a *Agent) GetWalkPoint() walkmesh.WalkPoint { return a.m_point }

// Trail returns the positions visited so far, oldest first.
func (a *Agent) Trail() []common.Vec3 { return a.m_trail }

// setForward makes heading the forward direction, flattened against up. A
// heading along up falls back to any tangent direction.
func (a *Agent) setForward(heading common.Vec3) {
	f := common.ProjectOntoPlane(heading, common.Vec3{}, a.m_up)
	if f.Len() < frameEpsilon {
		f = common.AnyOrthogonal(a.m_up)
	}
	a.m_forward = f.Normalize()
	a.m_right = a.m_forward.Cross(a.m_up)
}

// Turn spins the heading about the current up by angle radians,
// counterclockwise seen from above.
func (a *Agent) Turn(angle float32) {
	q := mgl32.QuatRotate(angle, a.m_up)
	a.setForward(q.Rotate(a.m_forward))
}

func (a *Agent) record() {
	a.m_trail = append(a.m_trail, a.m_pos)
	if a.m_maxTrail > 0 && len(a.m_trail) > a.m_maxTrail {
		a.m_trail = a.m_trail[len(a.m_trail)-a.m_maxTrail:]
	}
}

// / Advances the agent by elapsed seconds of its held controls.
// / A walk that fails to settle is logged and the agent stays where it was.
func (a *Agent) Update(elapsed float32) error {
	if !a.Controls.Any() || a.Speed == 0 || elapsed <= 0 {
		return nil
	}
	var move common.Vec3
	if a.Controls.Forward {
		move = move.Add(a.m_forward)
	}
	if a.Controls.Backward {
		move = move.Sub(a.m_forward)
	}
	if a.Controls.Right {
		move = move.Add(a.m_right)
	}
	if a.Controls.Left {
		move = move.Sub(a.m_right)
	}
	if move.Len() < frameEpsilon {
		return nil
	}
	step := move.Normalize().Mul(a.Speed * elapsed)

	prev := a.m_point
	if err := a.m_mesh.Walk(&a.m_point, step); err != nil {
		a.m_point = prev
		if errors.Is(err, walkmesh.ErrWalkDivergence) {
			a.m_log.Warn("walk did not settle, keeping previous position",
				zap.Uint32s("triangle", prev.Triangle[:]),
				zap.Float32s("step", step[:]),
				zap.Error(err))
			return nil
		}
		return fmt.Errorf("walkmesh_agent: agent %q: %w", a.Name, err)
	}

	oldTri := prev.Triangle
	a.m_pos = a.m_mesh.WorldPoint(a.m_point)
	oldUp := a.m_up
	a.m_up = a.m_mesh.WorldNormal(a.m_point)
	a.setForward(walkmesh.RotationBetween(oldUp, a.m_up).Rotate(a.m_forward))
	a.record()
	if oldTri != a.m_point.Triangle {
		a.m_log.Debug("agent changed triangle",
			zap.Uint32s("from", oldTri[:]),
			zap.Uint32s("to", a.m_point.Triangle[:]))
	}
	return nil
}
