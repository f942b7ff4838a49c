package walkmesh_agent

import (
	"math"

	"github.com/gorustyt/gowalkmesh/common"
)

const gridNullIdx = -1

type proximityItem struct {
	id   int
	x, y int
	next int
}

// proximityGrid is a spatial hash of integer ids over XZ cells. Items live
// in one pool chained per hash bucket; Clear drops them all at once.
type proximityGrid struct {
	m_cellSize    float32
	m_invCellSize float32
	m_pool        []proximityItem
	m_buckets     []int
	m_bounds      [4]int // min x, min y, max x, max y in cells
}

func hashPos2(x, y, n int) int {
	return ((x * 73856093) ^ (y * 19349663)) & (n - 1)
}

func newProximityGrid(poolSize int, cellSize float32) *proximityGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	d := &proximityGrid{
		m_cellSize:    cellSize,
		m_invCellSize: 1 / cellSize,
		m_buckets:     make([]int, max(int(common.NextPow2(uint32(poolSize))), 1)),
		m_pool:        make([]proximityItem, 0, poolSize),
	}
	d.Clear()
	return d
}

func (d *proximityGrid) GetBounds() [4]int    { return d.m_bounds }
func (d *proximityGrid) GetCellSize() float32 { return d.m_cellSize }

func (d *proximityGrid) Clear() {
	for i := range d.m_buckets {
		d.m_buckets[i] = gridNullIdx
	}
	d.m_pool = d.m_pool[:0]
	d.m_bounds = [4]int{math.MaxInt32, math.MaxInt32, math.MinInt32, math.MinInt32}
}

func (d *proximityGrid) cell(v float32) int {
	return int(math.Floor(float64(v * d.m_invCellSize)))
}

// addItem files id under every cell the box touches.
func (d *proximityGrid) addItem(id int, minx, miny, maxx, maxy float32) {
	iminx, iminy := d.cell(minx), d.cell(miny)
	imaxx, imaxy := d.cell(maxx), d.cell(maxy)

	d.m_bounds[0] = min(d.m_bounds[0], iminx)
	d.m_bounds[1] = min(d.m_bounds[1], iminy)
	d.m_bounds[2] = max(d.m_bounds[2], imaxx)
	d.m_bounds[3] = max(d.m_bounds[3], imaxy)

	for y := iminy; y <= imaxy; y++ {
		for x := iminx; x <= imaxx; x++ {
			h := hashPos2(x, y, len(d.m_buckets))
			d.m_pool = append(d.m_pool, proximityItem{id: id, x: x, y: y, next: d.m_buckets[h]})
			d.m_buckets[h] = len(d.m_pool) - 1
		}
	}
}

// queryItems appends to ids, once each, every id filed under a cell the box
// touches.
func (d *proximityGrid) queryItems(minx, miny, maxx, maxy float32, ids []int) []int {
	iminx, iminy := d.cell(minx), d.cell(miny)
	imaxx, imaxy := d.cell(maxx), d.cell(maxy)
	start := len(ids)

	for y := iminy; y <= imaxy; y++ {
		for x := iminx; x <= imaxx; x++ {
			h := hashPos2(x, y, len(d.m_buckets))
			for idx := d.m_buckets[h]; idx != gridNullIdx; idx = d.m_pool[idx].next {
				item := d.m_pool[idx]
				if item.x != x || item.y != y {
					continue
				}
				found := false
				for _, id := range ids[start:] {
					if id == item.id {
						found = true
						break
					}
				}
				if !found {
					ids = append(ids, item.id)
				}
			}
		}
	}
	return ids
}

func (d *proximityGrid) GetItemCountAt(x, y int) int {
	n := 0
	h := hashPos2(x, y, len(d.m_buckets))
	for idx := d.m_buckets[h]; idx != gridNullIdx; idx = d.m_pool[idx].next {
		item := d.m_pool[idx]
		if item.x == x && item.y == y {
			n++
		}
	}
	return n
}
