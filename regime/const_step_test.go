package regime

import (
	"testing"

	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstStepWellEndToEnd(t *testing.T) {
	well := NewConstStepWell(3, 2, 4, 4, 0.5)

	for row := 0; row < 3; row++ {
		for col := 0; col < 2; col++ {
			well.Kernel.PushCoef(row, col, float64(row+col+1), 1.0)
		}
	}
	well.Kernel.Advance()
	well.Time.SetInterval()

	well.Flux.PushWell([]float64{1, 2}, []float64{1, 1})

	result := well.Convolve()
	require.NotNil(t, result)
	assert.Equal(t, 3, result.Len())
}

// TestConstStepFracEndToEnd drives a full round of pushes through the
// round-robin fracture containers: one column pushed to each fracture,
// completing the round, then a commit and convolution.
func TestConstStepFracEndToEnd(t *testing.T) {
	c := NewConstStepFrac(3, 4, 4, 4, 0.5, []int{1, 1})
	require.Equal(t, 2, c.FracKernels.FracCount())
	require.Equal(t, 2, c.FracFluxes.FracCount())

	r := []float64{1, 1, 1}
	u := []float64{2, 2, 2}
	for i := 0; i < 2; i++ {
		c.FracKernels.PushCoef(0, r, u)
	}
	require.True(t, c.FracKernels.PushDone())
	c.FracKernels.Advance()

	for i := 0; i < 2; i++ {
		c.FracFluxes.PushCoef([]float64{1}, 1.0)
	}

	result := c.ConvolveFractures()
	require.NotNil(t, result)
	assert.Equal(t, 3, result.Len())
}

// TestConstStepFracMisusePanics is spec.md Scenario E: pushing into only
// one of two fractures, then trying to commit, must fail loudly rather
// than silently proceed with a half-filled round.
func TestConstStepFracMisusePanics(t *testing.T) {
	c := NewConstStepFrac(3, 4, 4, 4, 0.5, []int{1, 1})

	c.FracKernels.PushCoef(0, []float64{1, 1, 1}, []float64{2, 2, 2})
	require.False(t, c.FracKernels.PushDone(), "only one of two fractures has been pushed")

	assert.PanicsWithValue(t, contract.Violation{
		Container: "kernel.FracContainer",
		Reason:    "advance called before every fracture was pushed this step",
	}, func() {
		c.FracKernels.Advance()
	})

	c.FracFluxes.PushCoef([]float64{1}, 1.0)
	require.False(t, c.FracFluxes.AtStart())

	assert.PanicsWithValue(t, contract.Violation{
		Container: "flux.FracturesContainer",
		Reason:    "convolve called before every fracture was pushed this step",
	}, func() {
		c.ConvolveFractures()
	})
}
