package cmd

import (
	"testing"

	"github.com/alexiusacademia/gobiot/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCurrent(t *testing.T) {
	p := wire.Params{Shape: wire.Circle, Radius: 1, PointCount: 10}

	got, err := withCurrent(p, 3, 2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Turns)
	assert.Equal(t, wire.PhasedCurrent{Amplitude: 2, Phase: 0.5}, got.Current)

	for _, turns := range []int{0, -1} {
		_, err := withCurrent(p, turns, 1, 0)
		assert.ErrorContains(t, err, "number of loops", "turns=%d", turns)
	}
}
