package flux

import (
	"testing"

	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/stretchr/testify/assert"
)

func newRingChild(t *testing.T, spatialSize, temporalSize, frameTemporalSize uint64) *Base[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor] {
	t.Helper()
	pair := allocator.NewConstStepFlux(spatialSize, temporalSize, frameTemporalSize)
	return NewBase[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](pair)
}

// TestMainStepRingAveraging is spec.md Scenario C: S=1, N=3, prev_flux=0.
func TestMainStepRingAveraging(t *testing.T) {
	children := []*Base[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor]{
		newRingChild(t, 1, 8, 8),
		newRingChild(t, 1, 8, 8),
		newRingChild(t, 1, 8, 8),
	}
	ring := NewMainStepRing[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](children, 1, 8)

	ring.Push([]float64{9})
	assert.InDelta(t, 3.0, children[0].Phi[7], 1e-12) // idxBegin after first push = 7
	assert.InDelta(t, 6.0, children[1].Phi[7], 1e-12)
	assert.InDelta(t, 9.0, children[2].Phi[7], 1e-12)

	ring.Push([]float64{3})
	assert.InDelta(t, 7.0, children[0].Phi[6], 1e-12) // idxBegin after second push = 6
	assert.InDelta(t, 5.0, children[1].Phi[6], 1e-12)
	assert.InDelta(t, 3.0, children[2].Phi[6], 1e-12)
}
