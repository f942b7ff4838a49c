package walkmesh_agent

import (
	"testing"

	"github.com/gorustyt/gowalkmesh/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCrowdAddAgent(t *testing.T) {
	c := NewCrowd(buildGrid(t, 3, 3, nil), zaptest.NewLogger(t))

	_, err := c.AddAgent(AgentParams{Name: "a", Spawn: common.Vec3{1, 0, 1}, Speed: 1})
	require.NoError(t, err)
	_, err = c.AddAgent(AgentParams{Name: "b", Spawn: common.Vec3{2, 0, 2}, Speed: 1})
	require.NoError(t, err)

	_, err = c.AddAgent(AgentParams{Name: "a", Spawn: common.Vec3{0.5, 0, 0.5}})
	assert.Error(t, err, "duplicate name")
	_, err = c.AddAgent(AgentParams{Spawn: common.Vec3{0.5, 0, 0.5}})
	assert.Error(t, err, "missing name")

	assert.Equal(t, 2, c.GetAgentCount())
	assert.Equal(t, "a", c.Agents()[0].Name)
	assert.Equal(t, "b", c.Agents()[1].Name)
	assert.NotNil(t, c.Agent("b"))
	assert.Nil(t, c.Agent("c"))
}

func TestCrowdUpdate(t *testing.T) {
	c := NewCrowd(buildGrid(t, 4, 4, nil), nil)
	north, err := c.AddAgent(AgentParams{Name: "north", Spawn: common.Vec3{1, 0, 1}, Forward: common.Vec3{0, 0, 1}, Speed: 1})
	require.NoError(t, err)
	east, err := c.AddAgent(AgentParams{Name: "east", Spawn: common.Vec3{1, 0, 3}, Forward: common.Vec3{1, 0, 0}, Speed: 2})
	require.NoError(t, err)
	idle, err := c.AddAgent(AgentParams{Name: "idle", Spawn: common.Vec3{3, 0, 1}, Speed: 1})
	require.NoError(t, err)

	north.Controls.Forward = true
	east.Controls.Forward = true
	for i := 0; i < 4; i++ {
		require.NoError(t, c.Update(0.25))
	}

	assertVec(t, common.Vec3{1, 0, 2}, north.GetPos(), 1e-5)
	assertVec(t, common.Vec3{3, 0, 3}, east.GetPos(), 1e-5)
	assertVec(t, common.Vec3{3, 0, 1}, idle.GetPos(), 1e-6)

	// East runs into the x = 4 rim and stays on it.
	require.NoError(t, c.Update(1))
	assertVec(t, common.Vec3{4, 0, 3}, east.GetPos(), 1e-5)
	assertVec(t, common.Vec3{1, 0, 3}, north.GetPos(), 1e-5)
}

func TestCrowdAgentsNear(t *testing.T) {
	c := NewCrowd(buildGrid(t, 8, 8, nil), nil)
	for _, p := range []AgentParams{
		{Name: "a", Spawn: common.Vec3{1, 0, 1}},
		{Name: "b", Spawn: common.Vec3{1.5, 0, 1}},
		{Name: "c", Spawn: common.Vec3{6, 0, 6}},
	} {
		_, err := c.AddAgent(p)
		require.NoError(t, err)
	}

	near := c.AgentsNear(common.Vec3{1, 0, 1}, 0.75)
	require.Len(t, near, 2)
	assert.Equal(t, "a", near[0].Name)
	assert.Equal(t, "b", near[1].Name)
	assert.Empty(t, c.AgentsNear(common.Vec3{4, 0, 4}, 1))

	c.Agent("c").Speed = 4
	c.Agent("c").Controls.Left = true
	require.NoError(t, c.Update(1))
	assert.Len(t, c.AgentsNear(c.Agent("c").GetPos(), 0.1), 1, "grid follows the move")
	assert.Empty(t, c.AgentsNear(common.Vec3{6, 0, 6}, 0.5))
}
