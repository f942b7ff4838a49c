package walkmesh_agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProximityGrid(t *testing.T) {
	g := newProximityGrid(4, 1)
	g.addItem(0, 0.5, 0.5, 0.5, 0.5)
	g.addItem(1, -0.5, 2.5, 1.5, 2.5)
	g.addItem(2, 5, 5, 5, 5)

	assert.Equal(t, [4]int{-1, 0, 5, 5}, g.GetBounds())
	assert.Equal(t, 1, g.GetItemCountAt(0, 0))
	assert.Equal(t, 1, g.GetItemCountAt(-1, 2))
	assert.Equal(t, 0, g.GetItemCountAt(3, 3))

	assert.ElementsMatch(t, []int{0}, g.queryItems(0, 0, 0.9, 0.9, nil))
	// Item 1 spans three cells but is reported once.
	assert.ElementsMatch(t, []int{0, 1}, g.queryItems(-2, 0, 2, 3, nil))
	assert.ElementsMatch(t, []int{7, 2}, g.queryItems(4.5, 4.5, 5.5, 5.5, []int{7}))

	g.Clear()
	assert.Empty(t, g.queryItems(-10, -10, 10, 10, nil))
	assert.Equal(t, 0, g.GetItemCountAt(0, 0))
}

func TestProximityGridSingleBucket(t *testing.T) {
	g := newProximityGrid(0, 2)
	for i := 0; i < 5; i++ {
		g.addItem(i, float32(i)*2, 0, float32(i)*2, 0)
	}
	assert.ElementsMatch(t, []int{1, 2}, g.queryItems(2, 0, 5, 0, nil))
}
