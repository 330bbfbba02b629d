package flux

import (
	"testing"

	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/ArturSalamatin/convolution/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFracChild(t *testing.T, spatialSize, temporalSize, frameTemporalSize uint64) *Frac[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor] {
	t.Helper()
	pair := allocator.NewConstStepFlux(spatialSize, temporalSize, frameTemporalSize)
	return NewFrac[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](pair)
}

// TestFracturesContainerRoundRobin is spec.md Scenario E: frac_count=3.
func TestFracturesContainerRoundRobin(t *testing.T) {
	children := []*Frac[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor]{
		newFracChild(t, 1, 4, 4),
		newFracChild(t, 1, 4, 4),
		newFracChild(t, 1, 4, 4),
	}
	c := NewFracturesContainer(children)

	require.True(t, c.AtStart(), "round robin should start at fracture 0")

	c.PushCoef([]float64{1}, 1)
	assert.Equal(t, 1, c.CurFracID())

	// Only one of three fractures pushed: convolve must panic.
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "convolve before every fracture pushed should panic")
			_, ok := r.(contract.Violation)
			require.True(t, ok, "panic value should be a contract.Violation")
		}()
		_ = c.Convolve(nil)
	}()

	c.PushCoef([]float64{1}, 1)
	assert.Equal(t, 2, c.CurFracID())
	c.PushCoef([]float64{1}, 1)
	assert.Equal(t, 0, c.CurFracID())

	assert.True(t, c.AtStart())

	// A completed round convolves cleanly: every child has fresh,
	// unconsumed data and a matching kernel view.
	views := make([]KernelView, 3)
	for i := range views {
		kp := allocator.NewConstStepKernel(1, 4)
		k := kernel.NewFrac[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor](1, kp)
		k.PushCoef(0, []float64{1}, []float64{2})
		k.Advance()
		views[i] = k
	}

	result := c.Convolve(views)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Len())
}
