package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircularLoopOnAxis(t *testing.T) {
	// Centre of a loop: μ₀·I / 2R
	assert.InDelta(t, Mu0/(2*2.0), CircularLoopOnAxis(1, 2, 0), 1e-18)

	// Far field falls off as 1/z³
	near := CircularLoopOnAxis(1, 0.1, 100)
	far := CircularLoopOnAxis(1, 0.1, 200)
	assert.InEpsilon(t, 8.0, near/far, 1e-4)
}

func TestSquareLoopOnAxis(t *testing.T) {
	// Centre of a square loop: 2√2·μ₀·I / (π·L)
	l := 2.0
	want := 2 * math.Sqrt2 * Mu0 / (math.Pi * l)
	assert.InEpsilon(t, want, SquareLoopOnAxis(1, l, 0), 1e-12)

	// Current sign does not change the magnitude
	assert.Equal(t, SquareLoopOnAxis(1, l, 0.5), SquareLoopOnAxis(-1, l, 0.5))
}

func TestOnAxis(t *testing.T) {
	zs := []float64{0, 0.5, 1}

	b, ok := OnAxis("circle", 1, 2, zs)
	assert.True(t, ok)
	assert.Len(t, b, len(zs))
	assert.Equal(t, CircularLoopOnAxis(1, 2, 0.5), b[1])

	b, ok = OnAxis("square", 1, 2, zs)
	assert.True(t, ok)
	assert.Equal(t, SquareLoopOnAxis(1, 2, 1), b[2])

	_, ok = OnAxis("triangle", 1, 2, zs)
	assert.False(t, ok)
}
