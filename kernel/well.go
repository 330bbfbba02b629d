package kernel

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
)

// PushFSource sets only the F (weighting) column for a well source term,
// leaving P_cur untouched — used when a well's flux weighting changes
// mid-step without a new pressure sample arriving.
func (b *Base[P, E]) PushFSource(col int, f []float64) {
	for row := 0; row < b.gridNodesCount; row++ {
		b.F.Set(row, col, f[row])
	}
	b.Pair.Pusher.SetNeedAdvance(true)
}

// MixStepWell is the MixStep-regime well kernel. Unlike the ConstStep and
// MainStep well kernels, MixStep keeps only a single live time slab (see
// allocator.NewMixStepKernel), but a well's P_cur sample from a small step
// still needs to survive until the main step it belongs to is committed.
// original_source caches those small-step P_cur columns in a fixed-size
// ring sized to (small_step_nmbr_per_main_step - 1): the small steps
// strictly between two main steps, since the boundary samples land
// straight in P_prev/P_cur without caching.
type MixStepWell struct {
	*Base[*allocator.MixStepKernelPusher, *allocator.MixStepKernelExtractor]

	cache         [][]float64
	head          int
	count         int
	cacheCapacity int

	// smallStepCounter tracks position within the main step for the
	// advance() gate below; it always increments and wraps, whether or
	// not the gate fires on a given call.
	smallStepCounter int
}

// NewMixStepWell builds a MixStep well kernel with a P_cur cache sized for
// smallStepNmbrPerMainStep - 1 pending small-step samples.
func NewMixStepWell(gridNodesCount int, pair allocator.MixStepKernelPair, smallStepNmbrPerMainStep uint64) *MixStepWell {
	capacity := int(smallStepNmbrPerMainStep) - 1
	if capacity < 1 {
		capacity = 1
	}
	return &MixStepWell{
		Base:          NewBase[*allocator.MixStepKernelPusher, *allocator.MixStepKernelExtractor](gridNodesCount, pair),
		cache:         make([][]float64, capacity),
		cacheCapacity: capacity,
	}
}

// Advance is gated by the small-step counter: only once every
// cacheCapacity small steps does a cached P_cur sample actually get
// consumed, mirroring original_source's WellKernel<KernelMixStep>::advance,
// which pops the next cache slot only when
// small_step_counter_within_main_step % (small_step_nmbr_per_main_step - 1) == 0
// and always advances the underlying BaseKernel afterward. The counter
// always increments and wraps regardless of whether the gate fired. The
// popped column is discarded: Advance commits whatever P_cur holds and does
// not write the cached column back into it.
func (w *MixStepWell) Advance() {
	if w.smallStepCounter%w.cacheCapacity == 0 {
		_ = w.PopCachedPCur()
	}
	w.smallStepCounter = (w.smallStepCounter + 1) % w.cacheCapacity

	w.Base.Advance()
}

// CachePCur snapshots the current P_cur column into the ring; Advance pops
// it at its gate (see Advance), and PopCachedPCur returns it. Panics if the
// cache is already full — a contract violation, since the driver should
// have drained it by committing the pending main step first.
func (w *MixStepWell) CachePCur(col int) {
	contract.Check(w.count == w.cacheCapacity, "kernel.MixStepWell",
		"P_cur cache overflow: too many small steps pushed before the owning main step was committed")

	column := make([]float64, w.gridNodesCount)
	for row := 0; row < w.gridNodesCount; row++ {
		column[row] = w.PCur.At(row, col)
	}
	slot := (w.head + w.count) % w.cacheCapacity
	w.cache[slot] = column
	w.count++
}

// PopCachedPCur returns and discards the oldest cached small-step P_cur
// column. Panics if the cache is empty — a contract violation, since a
// commit was requested with nothing pending.
func (w *MixStepWell) PopCachedPCur() []float64 {
	contract.Check(w.count == 0, "kernel.MixStepWell",
		"P_cur cache underflow: no cached small-step sample to replay")

	column := w.cache[w.head]
	w.cache[w.head] = nil
	w.head = (w.head + 1) % w.cacheCapacity
	w.count--
	return column
}

// CachedCount reports how many small-step samples are pending replay.
func (w *MixStepWell) CachedCount() int { return w.count }

// CacheCapacity is the maximum number of pending small-step samples the
// cache can hold before CachePCur panics.
func (w *MixStepWell) CacheCapacity() int { return w.cacheCapacity }
