// Package kernel owns the column-major-contract kernel matrix (realized
// here over a gonum dense matrix) and the P_prev/P_cur/F staging arrays
// that drive the push -> advance -> extract pipeline spec.md §4.3
// describes.
package kernel

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
	"gonum.org/v1/gonum/mat"
)

// Base owns a G x (S*T) kernel matrix and the G x S staging arrays
// (P_prev, P_cur, F) used to fill in each new time slab. P and E are the
// allocator pusher/extractor types for the regime in use (ConstStep,
// MainStep, or MixStep).
type Base[P allocator.Pusher, E allocator.Extractor] struct {
	Pair allocator.Pair[P, E]

	// K is convolved with fluxes; its columns hold F ⊙ (P_cur − P_prev)
	// products, one S-wide block per time step.
	K *mat.Dense

	PPrev *mat.Dense // G x S, previous step's committed coefficients
	PCur  *mat.Dense // G x S, staging buffer for the current step
	F     *mat.Dense // G x S, weighting coefficients, defaults to 1.0

	gridNodesCount int
}

// NewBase allocates a kernel with gridNodesCount rows over the allocator
// pair's full backing memory. F starts at all ones; P_prev and P_cur start
// at zero.
func NewBase[P allocator.Pusher, E allocator.Extractor](gridNodesCount int, pair allocator.Pair[P, E]) *Base[P, E] {
	width := int(pair.Pusher.SpatialSize())
	allocated := int(pair.Pusher.AllocatedMemory())

	b := &Base[P, E]{
		Pair:           pair,
		K:              mat.NewDense(gridNodesCount, allocated, nil),
		PPrev:          mat.NewDense(gridNodesCount, width, nil),
		F:              onesDense(gridNodesCount, width),
		gridNodesCount: gridNodesCount,
	}
	b.allocatePCur()
	return b
}

func onesDense(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = 1.0
	}
	return mat.NewDense(rows, cols, data)
}

func (b *Base[P, E]) allocatePCur() {
	b.PCur = mat.NewDense(b.gridNodesCount, b.BlockWidth(), nil)
}

// BlockHeight is the number of rows in a push/advance block: the grid
// node count.
func (b *Base[P, E]) BlockHeight() int { return b.gridNodesCount }

// BlockWidth is the number of columns filled per time step: the spatial
// size of the allocator's pusher.
func (b *Base[P, E]) BlockWidth() int { return int(b.Pair.Pusher.SpatialSize()) }

// BlockStrideInRow is where the next write slab starts.
func (b *Base[P, E]) BlockStrideInRow() int { return int(b.Pair.Pusher.IdxEnd()) }

func (b *Base[P, E]) checkState() {
	contract.Check(b.Pair.Pusher.NeedAdvance(), "kernel.Base",
		"cannot be read before its state is fixed with Advance()")
}

// PushCoef stages one coefficient: P_cur[row,col] = E, F[row,col] = f.
func (b *Base[P, E]) PushCoef(row, col int, e, f float64) {
	b.PCur.Set(row, col, e)
	b.F.Set(row, col, f)
	b.Pair.Pusher.SetNeedAdvance(true)
}

// PushCoefPrev writes directly into P_prev, bypassing the staging buffer —
// used when switching physics regimes between steps.
func (b *Base[P, E]) PushCoefPrev(row, col int, e float64) {
	b.PPrev.Set(row, col, e)
	b.Pair.Pusher.SetNeedAdvance(true)
}

// PushColumn bulk-pushes one full column of E and F values (length
// BlockHeight()) — the "push a full G-vector into one column" bulk
// variant spec.md §4.3 mentions for well kernels.
func (b *Base[P, E]) PushColumn(col int, e, f []float64) {
	for row := 0; row < b.gridNodesCount; row++ {
		b.PCur.Set(row, col, e[row])
		b.F.Set(row, col, f[row])
	}
	b.Pair.Pusher.SetNeedAdvance(true)
}

// PushColumnPrev bulk-pushes one full column directly into P_prev.
func (b *Base[P, E]) PushColumnPrev(col int, e []float64) {
	for row := 0; row < b.gridNodesCount; row++ {
		b.PPrev.Set(row, col, e[row])
	}
	b.Pair.Pusher.SetNeedAdvance(true)
}

// At returns K[row,col], guarded by the need-advance flag.
func (b *Base[P, E]) At(row, col int) float64 {
	b.checkState()
	return b.K.At(row, col)
}

// AtSourceTime addresses a coefficient by its physical meaning: mesh node,
// source segment, and time index.
func (b *Base[P, E]) AtSourceTime(meshNode, sourceNode, timeNode int) float64 {
	return b.At(meshNode, sourceNode+b.BlockWidth()*timeNode)
}

func (b *Base[P, E]) GetPCur(row, col int) float64  { return b.PCur.At(row, col) }
func (b *Base[P, E]) GetPPrev(row, col int) float64 { return b.PPrev.At(row, col) }
func (b *Base[P, E]) GetF(row, col int) float64     { return b.F.At(row, col) }

// Advance computes K[:, stride:stride+width] = F ⊙ (P_cur − P_prev), moves
// P_cur into P_prev, resets P_cur to zero, and commits the pusher's
// cursor move. It requires P_cur to have been fully populated by the
// caller via PushCoef/PushColumn.
func (b *Base[P, E]) Advance() {
	h, w := b.gridNodesCount, b.BlockWidth()

	diff := mat.NewDense(h, w, nil)
	diff.Sub(b.PCur, b.PPrev)
	block := mat.NewDense(h, w, nil)
	block.MulElem(b.F, diff)

	stride := b.BlockStrideInRow()
	for c := 0; c < w; c++ {
		for r := 0; r < h; r++ {
			b.K.Set(r, stride+c, block.At(r, c))
		}
	}

	b.PPrev = b.PCur
	b.allocatePCur()
	b.Pair.Pusher.OnPush()
}

// AdvanceReadCursor moves the extractor's cursor without returning a view.
// Calling convention: one AdvanceReadCursor per simulation step, at most
// once — callers that need to convolve against several kernels (see
// flux.Multi) call it once and reuse the resulting LiveView for every
// sub-convolution.
func (b *Base[P, E]) AdvanceReadCursor() {
	b.checkState()
	b.Pair.Extractor.OnExtract()
}

// LiveView returns the current read window K[:, idx_begin:idx_end] without
// moving the cursor — a pure accessor, paired with AdvanceReadCursor.
func (b *Base[P, E]) LiveView() *mat.Dense {
	begin := int(b.Pair.Extractor.IdxBegin())
	end := int(b.Pair.Extractor.IdxEnd())
	return b.K.Slice(0, b.gridNodesCount, begin, end).(*mat.Dense)
}

// Extract advances the read cursor and returns the resulting live view in
// one call — the convenience form for callers that convolve against a
// single kernel per step.
func (b *Base[P, E]) Extract() *mat.Dense {
	b.AdvanceReadCursor()
	return b.LiveView()
}

// CurrentWindowSize is the live window's column count.
func (b *Base[P, E]) CurrentWindowSize() uint64 { return b.Pair.Extractor.CurrentWindowSize() }

// GridNodesCount is the number of rows in the kernel matrix.
func (b *Base[P, E]) GridNodesCount() int { return b.gridNodesCount }
