package flux

import (
	"testing"

	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultiKernel(t *testing.T, value1, value2 float64) *kernel.Base[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor] {
	t.Helper()
	pair := allocator.NewConstStepKernel(1, 2)
	k := kernel.NewBase[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor](2, pair)
	k.PushCoef(0, 0, value1, 1.0)
	k.PushCoef(1, 0, value2, 1.0)
	k.Advance()
	return k
}

func TestMultiConvolveExtractsFluxOnceAndFansOut(t *testing.T) {
	fluxPair := allocator.NewConstStepFlux(1, 2, 2)
	f := NewBase[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](fluxPair)
	f.PushCoef([]float64{5})

	k1 := newMultiKernel(t, 1, 2)
	k2 := newMultiKernel(t, 3, 4)

	m := NewMulti[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](f, []KernelView{k1, k2})

	results := m.Convolve()
	require.Len(t, results, 2)
	assert.InDelta(t, 5.0, results[0].AtVec(0), 1e-12)
	assert.InDelta(t, 10.0, results[0].AtVec(1), 1e-12)
	assert.InDelta(t, 15.0, results[1].AtVec(0), 1e-12)
	assert.InDelta(t, 20.0, results[1].AtVec(1), 1e-12)

	// The flux extractor's cursor moved exactly once for both kernels.
	assert.Equal(t, uint64(1), f.CurrentWindowSize())
}

func TestMultiConvolvePanicsOnKernelCountMismatch(t *testing.T) {
	fluxPair := allocator.NewConstStepFlux(1, 2, 2)
	f := NewBase[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](fluxPair)
	f.PushCoef([]float64{5})

	k1 := newMultiKernel(t, 1, 2)
	m := NewMulti[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](f, []KernelView{k1})
	m.Kernels = append(m.Kernels, newMultiKernel(t, 3, 4))

	assert.Panics(t, func() { m.Convolve() })
}
