// Package flux owns the flux buffer φ and the convolution entry point:
// kernel-live-view times flux-live-view, with the well/fracture coefficient
// derivations and the MainStep multi-child averaging ring layered on top.
package flux

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/ArturSalamatin/convolution/matvec"
	"gonum.org/v1/gonum/mat"
)

// KernelView is the subset of kernel.Base's API a flux container needs to
// drive a convolution without importing package kernel — Base, Frac and
// MixStepWell satisfy it through promoted methods; FracContainer does not,
// so callers pass its Fracs() one by one.
type KernelView interface {
	AdvanceReadCursor()
	LiveView() *mat.Dense
	CurrentWindowSize() uint64
}

// Base owns a flat flux buffer φ of length S*T and the allocator pair that
// governs where pushes land and what subrange is live.
type Base[P allocator.Pusher, E allocator.Extractor] struct {
	Pair allocator.Pair[P, E]
	Phi  []float64
}

// NewBase allocates a zeroed flux buffer sized to the allocator pair's full
// backing memory.
func NewBase[P allocator.Pusher, E allocator.Extractor](pair allocator.Pair[P, E]) *Base[P, E] {
	return &Base[P, E]{
		Pair: pair,
		Phi:  make([]float64, pair.Pusher.AllocatedMemory()),
	}
}

func (b *Base[P, E]) checkState() {
	contract.Check(!b.Pair.Pusher.NeedAdvance(), "flux.Base",
		"cannot be read before its state is fixed by a push")
}

// PushCoef commits one already-derived S-length coefficient slab: it moves
// the pusher's cursor first (on_push), writes data at the resulting
// position, then re-raises the need-advance flag — data pushed since the
// cursor last moved has not yet been consumed by a convolve.
func (b *Base[P, E]) PushCoef(data []float64) {
	b.Pair.Pusher.OnPush()
	begin := b.Pair.Pusher.IdxBegin()
	copy(b.Phi[begin:begin+uint64(len(data))], data)
	b.Pair.Pusher.SetNeedAdvance(true)
}

// LiveView returns the current read window as a vector, without moving the
// extractor's cursor.
func (b *Base[P, E]) LiveView() *mat.VecDense {
	begin := b.Pair.Extractor.IdxBegin()
	end := b.Pair.Extractor.IdxEnd()
	return mat.NewVecDense(int(end-begin), b.Phi[begin:end])
}

// AdvanceReadCursor moves the extractor's cursor, guarded by the
// need-advance flag, then lowers the flag: a second read without an
// intervening push panics the same way a read before any push does.
func (b *Base[P, E]) AdvanceReadCursor() {
	b.checkState()
	b.Pair.Extractor.OnExtract()
	b.Pair.Pusher.SetNeedAdvance(false)
}

// Extract advances the read cursor and returns the resulting live view.
func (b *Base[P, E]) Extract() *mat.VecDense {
	b.AdvanceReadCursor()
	return b.LiveView()
}

// CurrentWindowSize is the live window's length.
func (b *Base[P, E]) CurrentWindowSize() uint64 { return b.Pair.Extractor.CurrentWindowSize() }

// At addresses a sample by physical meaning: time index and source
// segment, using the same affine map the ConstStep flux pusher's
// newest-to-oldest packing implies: φ(nt, segm) = φ[segm + total − nt·S].
func (b *Base[P, E]) At(nt, segm int) float64 {
	total := int(b.Pair.Pusher.AllocatedMemory())
	s := int(b.Pair.Pusher.SpatialSize())
	return b.Phi[segm+total-nt*s]
}

// Convolve advances both sides' read cursors exactly once, checks their
// live windows agree in length, and returns kernelView * fluxView.
func (b *Base[P, E]) Convolve(k KernelView) *mat.VecDense {
	k.AdvanceReadCursor()
	kview := k.LiveView()
	fview := b.Extract()

	contract.Check(k.CurrentWindowSize() != b.CurrentWindowSize(), "flux.Base",
		"kernel and flux live windows disagree in size")

	return matvec.Convolve(kview, fview)
}
