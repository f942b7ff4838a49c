package walkmesh_agent

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gorustyt/gowalkmesh/common"
	"github.com/gorustyt/gowalkmesh/walkmesh"
	"go.uber.org/zap"
)

// Crowd owns a set of agents sharing one walk mesh and ticks them in the
// order they were added. Not safe for concurrent use.
type Crowd struct {
	m_mesh   *walkmesh.SurfaceMesh
	m_log    *zap.Logger
	m_agents []*Agent
	m_byName map[string]*Agent
	m_grid   *proximityGrid
}

// Agents are bucketed into about this many grid cells across the mesh.
const crowdGridCells = 16

func NewCrowd(mesh *walkmesh.SurfaceMesh, log *zap.Logger) *Crowd {
	if log == nil {
		log = zap.NewNop()
	}
	cellSize := float32(1)
	if mesh != nil {
		bmin, bmax := mesh.Bounds()
		cellSize = max(max(bmax[0]-bmin[0], bmax[2]-bmin[2])/crowdGridCells, 1e-3)
	}
	return &Crowd{
		m_mesh:   mesh,
		m_log:    log,
		m_byName: make(map[string]*Agent),
		m_grid:   newProximityGrid(crowdGridCells, cellSize),
	}
}

func (c *Crowd) GetMesh() *walkmesh.SurfaceMesh { return c.m_mesh }

func (c *Crowd) GetAgentCount() int { return len(c.m_agents) }

func (c *Crowd) AddAgent(params AgentParams) (*Agent, error) {
	if params.Name == "" {
		return nil, errors.New("walkmesh_agent: agent needs a name")
	}
	if _, ok := c.m_byName[params.Name]; ok {
		return nil, fmt.Errorf("walkmesh_agent: agent %q already exists", params.Name)
	}
	a, err := NewAgent(c.m_mesh, params, c.m_log)
	if err != nil {
		return nil, err
	}
	c.m_agents = append(c.m_agents, a)
	c.m_byName[a.Name] = a
	c.updateGrid()
	return a, nil
}

// Agent returns the agent called name, or nil.
func (c *Crowd) Agent(name string) *Agent {
	return c.m_byName[name]
}

func (c *Crowd) Agents() []*Agent {
	return c.m_agents
}

// Update ticks every agent. One agent failing does not stop the others; all
// failures are returned together.
func (c *Crowd) Update(elapsed float32) error {
	var errs []error
	for _, a := range c.m_agents {
		if err := a.Update(elapsed); err != nil {
			errs = append(errs, err)
		}
	}
	c.updateGrid()
	return errors.Join(errs...)
}

func (c *Crowd) updateGrid() {
	if need := int(common.NextPow2(uint32(len(c.m_agents)))); need > len(c.m_grid.m_buckets) {
		c.m_grid = newProximityGrid(need, c.m_grid.GetCellSize())
	}
	c.m_grid.Clear()
	for i, a := range c.m_agents {
		p := a.GetPos()
		c.m_grid.addItem(i, p[0], p[2], p[0], p[2])
	}
}

// AgentsNear returns the agents within radius of pos, in insertion order.
// Positions are as of the last Update or AddAgent.
func (c *Crowd) AgentsNear(pos common.Vec3, radius float32) []*Agent {
	ids := c.m_grid.queryItems(pos[0]-radius, pos[2]-radius, pos[0]+radius, pos[2]+radius, nil)
	slices.Sort(ids)
	var res []*Agent
	for _, id := range ids {
		a := c.m_agents[id]
		if common.Vdist(a.GetPos(), pos) <= radius {
			res = append(res, a)
		}
	}
	return res
}
