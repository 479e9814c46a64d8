package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisPoints(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi, s float64
		offset    bool
		n         int
		first     float64
		last      float64
	}{
		{"offset cell centres", 0, 6, 0.1, true, 60, 0.05, 5.95},
		{"inclusive bounds", 0, 6, 0.1, false, 60, 0, 6},
		{"remainder dropped", 0, 1, 0.3, false, 3, 0, 1},
		{"remainder dropped offset", 0, 1, 0.3, true, 3, 0.15, 0.85},
		{"negative origin", -2, 2, 0.5, true, 8, -1.75, 1.75},
		{"single point", 0, 1.5, 1, false, 1, 0, 0},
		{"single point offset", 0, 1.5, 1, true, 1, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := axisPoints(tt.lo, tt.hi, tt.s, tt.offset)
			require.Len(t, got, tt.n)
			assert.InDelta(t, tt.first, got[0], 1e-12)
			assert.InDelta(t, tt.last, got[len(got)-1], 1e-12)
		})
	}
}

func TestAxisPoints_Empty(t *testing.T) {
	assert.Empty(t, axisPoints(0, 0.5, 1, true))
	assert.Empty(t, axisPoints(0, 0.5, 1, false))
	assert.Empty(t, axisPoints(3, 3, 0.1, false))
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{}, linspace(0, 1, 0))
	assert.Equal(t, []float64{2}, linspace(2, 5, 1))
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, linspace(0, 1, 5))

	got := linspace(0.05, 5.95, 60)
	assert.Equal(t, 5.95, got[59], "last value is exactly stop")
	for i := 1; i < len(got); i++ {
		assert.InDelta(t, 0.1, got[i]-got[i-1], 1e-12)
	}
}

func TestPlaneGrid_Order(t *testing.T) {
	g := newPlaneGrid(Range{0, 2}, Range{0, 3}, 1.2, 1, 1, true)

	assert.True(t, g.Planar())
	assert.Equal(t, []int{2, 3}, g.Shape())
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, []float64{0.5, 1.5}, g.XPoints())
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, g.YPoints())
	assert.Equal(t, []float64{1.2}, g.ZPoints())

	c := g.Coords()
	for i, x := range g.XPoints() {
		for j, y := range g.YPoints() {
			n := i*3 + j
			assert.Equal(t, x, c.X[n])
			assert.Equal(t, y, c.Y[n])
			assert.Equal(t, 1.2, c.Z[n])
		}
	}
}

func TestVolumeGrid_Order(t *testing.T) {
	g := newVolumeGrid(Range{0, 2}, Range{0, 3}, Range{0, 4}, 1, 1, 1, false)

	assert.False(t, g.Planar())
	shape := g.Shape()
	require.Equal(t, []int{2, 3, 4}, shape)
	assert.Equal(t, 24, g.Len())

	c := g.Coords()
	xs, ys, zs := g.XPoints(), g.YPoints(), g.ZPoints()
	for i := range xs {
		for j := range ys {
			for k := range zs {
				n := (i*shape[1]+j)*shape[2] + k
				assert.Equal(t, xs[i], c.X[n])
				assert.Equal(t, ys[j], c.Y[n])
				assert.Equal(t, zs[k], c.Z[n])
			}
		}
	}
}

func TestGrid_CopiesAreIndependent(t *testing.T) {
	g := newVolumeGrid(Range{0, 1}, Range{0, 1}, Range{0, 1}, 0.5, 0.5, 0.5, true)

	xs := g.XPoints()
	xs[0] = 99
	c := g.Coords()
	c.X[0] = 99

	assert.Equal(t, 0.25, g.XPoints()[0])
	assert.Equal(t, 0.25, g.Coords().X[0])
}
