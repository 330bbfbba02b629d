package kernel

import (
	"testing"

	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFrac(gridNodesCount int) *Frac[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor] {
	pair := allocator.NewConstStepKernel(1, 2)
	return NewFrac[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor](gridNodesCount, pair)
}

// TestFracPushCoefWritesRawDeltaIntoK exercises the trace from the
// review that caught the original bug: R varying between steps must not
// leak the previous step's R-weighted value into P_prev.
func TestFracPushCoefWritesRawDeltaIntoK(t *testing.T) {
	f := newTestFrac(1)

	f.PushCoef(0, []float64{2}, []float64{3})
	assert.Equal(t, 3.0, f.GetPPrev(0, 0), "P_prev must hold raw U, not R*U")
	f.Advance()
	assert.Equal(t, 6.0, f.At(0, 0))

	f.PushCoef(0, []float64{5}, []float64{10})
	assert.Equal(t, 10.0, f.GetPPrev(0, 0))
	f.Advance()
	assert.Equal(t, 35.0, f.At(0, 1), "R_new*(U_new-U_old) = 5*(10-3), not 5*10-6")
}

func TestFracResetKernelZeroesK(t *testing.T) {
	f := newTestFrac(1)
	f.PushCoef(0, []float64{2}, []float64{3})
	f.Advance()
	require.Equal(t, 6.0, f.At(0, 0))

	f.ResetKernel()

	assert.Equal(t, 0.0, f.At(0, 0))
}

func TestFracContainerRoundRobinsAcrossFractures(t *testing.T) {
	fracs := []*Frac[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor]{
		newTestFrac(1), newTestFrac(1), newTestFrac(1),
	}
	c := NewFracContainer(fracs)
	require.Equal(t, 3, c.FracCount())
	require.True(t, c.PushDone())

	c.PushCoef(0, []float64{1}, []float64{1})
	assert.False(t, c.PushDone())
	assert.Equal(t, fracs[1], c.Irs())

	c.PushCoef(0, []float64{1}, []float64{1})
	c.PushCoef(0, []float64{1}, []float64{1})
	assert.True(t, c.PushDone())

	c.Advance()
	assert.False(t, c.NeedAdvance())
}

func TestFracContainerAdvancePanicsBeforeRoundRobinComplete(t *testing.T) {
	fracs := []*Frac[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor]{
		newTestFrac(1), newTestFrac(1),
	}
	c := NewFracContainer(fracs)

	c.PushCoef(0, []float64{1}, []float64{1})
	require.False(t, c.PushDone(), "only one of two fractures has been pushed")

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(contract.Violation)
		require.True(t, ok)
	}()
	c.Advance()
}
