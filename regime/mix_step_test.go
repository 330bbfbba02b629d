package regime

import (
	"testing"

	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixStepWellEndToEnd(t *testing.T) {
	well := NewMixStepWell(3, 2, 2, 0.5)

	for row := 0; row < 3; row++ {
		well.Kernel.PushCoef(row, 0, float64(row+1), 1.0)
	}
	well.Kernel.CachePCur(0)
	well.Kernel.Advance()
	well.Time.SetInterval()

	well.Flux.PushWell([]float64{1, 2}, []float64{1, 1})

	result := well.Convolve()
	require.NotNil(t, result)
	assert.Equal(t, 3, result.Len())
}

// TestMixStepWellMultiStepFluxStaysPinned drives a well flux container
// through several simulated steps on the same instance — the regime's
// actual intended usage per kernel.MixStepWell's per-step Advance cadence.
// A second push must land at the same fixed [0, S) window as the first,
// not slide past it and underflow.
func TestMixStepWellMultiStepFluxStaysPinned(t *testing.T) {
	well := NewMixStepWell(3, 2, 2, 0.5)

	for step := 0; step < 3; step++ {
		for row := 0; row < 3; row++ {
			well.Kernel.PushCoef(row, 0, float64(row+step+1), 1.0)
		}
		well.Kernel.CachePCur(0)
		well.Kernel.Advance()
		well.Time.SetInterval()

		well.Flux.PushWell([]float64{1, 2}, []float64{1, 1})

		result := well.Convolve()
		require.NotNil(t, result, "step %d", step)
		assert.Equal(t, 3, result.Len(), "step %d", step)
	}
}

// TestMixStepFracEndToEnd drives a full round of pushes through the
// round-robin fracture containers, then a commit and convolution. Fracture
// kernels use the plain accumulating kernel.Frac, not MixStepWell's P_cur
// replay cache, since original_source's FracKernel carries no MixStep-
// specific caching of its own.
func TestMixStepFracEndToEnd(t *testing.T) {
	c := NewMixStepFrac(3, 4, 2, 0.5, []int{1, 1})
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

// TestMixStepFracMultiStepFluxStaysPinned drives the fracture flux
// containers through several simulated steps on the same instances,
// mirroring TestMixStepWellMultiStepFluxStaysPinned: each fracture's flux
// pusher must land back at its fixed [0, S) window every round, never
// sliding past it.
func TestMixStepFracMultiStepFluxStaysPinned(t *testing.T) {
	c := NewMixStepFrac(3, 4, 2, 0.5, []int{1, 1})

	r := []float64{1, 1, 1}
	u := []float64{2, 2, 2}
	for step := 0; step < 3; step++ {
		for i := 0; i < 2; i++ {
			c.FracKernels.PushCoef(0, r, u)
		}
		require.True(t, c.FracKernels.PushDone(), "step %d", step)
		c.FracKernels.Advance()

		for i := 0; i < 2; i++ {
			c.FracFluxes.PushCoef([]float64{1}, 1.0)
		}

		result := c.ConvolveFractures()
		require.NotNil(t, result, "step %d", step)
		assert.Equal(t, 3, result.Len(), "step %d", step)
	}
}

// TestMixStepFracMisusePanics is spec.md Scenario E for the MixStep
// regime: pushing into only one of two fractures must fail loudly rather
// than silently proceeding with a half-filled round.
func TestMixStepFracMisusePanics(t *testing.T) {
	c := NewMixStepFrac(3, 4, 2, 0.5, []int{1, 1})

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
