package kernel

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/ArturSalamatin/convolution/internal/fraccontainer"
	"gonum.org/v1/gonum/mat"
)

// Frac is the accumulating kernel a fracture segment owns. Unlike Base,
// which stages a full column into P_cur and diffs it against P_prev once
// at Advance, Frac commits each push's contribution to K immediately:
// R[row]*(U[row]-P_prev[row,col]) is added into the live column as soon
// as it arrives, and P_prev is set to the raw U just pushed. This lets
// several sub-sources on the same fracture segment push onto the same
// column in sequence, each with its own R, before the step is
// committed — grounded in original_source's FracKernel::push_coef, which
// adds directly into Kernel and updates P_prev with raw U on every call,
// rather than deferring the diff to advance().
type Frac[P allocator.Pusher, E allocator.Extractor] struct {
	*Base[P, E]
}

// NewFrac wraps a freshly built Base for fracture-segment use.
func NewFrac[P allocator.Pusher, E allocator.Extractor](gridNodesCount int, pair allocator.Pair[P, E]) *Frac[P, E] {
	return &Frac[P, E]{Base: NewBase[P, E](gridNodesCount, pair)}
}

// PushCoef adds R[row]*(U[row]-P_prev[row,col]) into the live K column
// for col at the current write stride, then commits U as the new
// P_prev[row,col] — R and U must both have length BlockHeight().
func (f *Frac[P, E]) PushCoef(col int, r, u []float64) {
	stride := f.BlockStrideInRow()
	for row := 0; row < f.gridNodesCount; row++ {
		prev := f.PPrev.At(row, col)
		delta := r[row] * (u[row] - prev)
		f.K.Set(row, stride+col, f.K.At(row, stride+col)+delta)
		f.PPrev.Set(row, col, u[row])
	}
	f.Pair.Pusher.SetNeedAdvance(true)
}

// PushCoefPrev seeds P_prev directly with raw U, without touching K —
// used when switching physics regimes between steps.
func (f *Frac[P, E]) PushCoefPrev(col int, u []float64) {
	for row := 0; row < f.gridNodesCount; row++ {
		f.PPrev.Set(row, col, u[row])
	}
	f.Pair.Pusher.SetNeedAdvance(true)
}

// ResetKernel zeroes the entire K matrix — used to discard all history
// and start a fracture kernel over, mirroring original_source's
// FracKernel::reset_kernel.
func (f *Frac[P, E]) ResetKernel() {
	rows, cols := f.K.Dims()
	f.K = mat.NewDense(rows, cols, nil)
}

// Advance commits the pusher's cursor move. Every column for this step
// was already filled in by PushCoef, so there is no diff left to compute.
func (f *Frac[P, E]) Advance() {
	f.Pair.Pusher.OnPush()
}

// FracContainer round-robins pushes across a fixed set of fracture
// kernels, mirroring original_source's MultipleFracturesContainer: each
// PushCoef/PushCoefPrev call targets the currently selected fracture, and
// Advance only commits when the round robin is back at fracture zero (no
// partial round pending).
type FracContainer[P allocator.Pusher, E allocator.Extractor] struct {
	fraccontainer.RoundRobin
	fracs []*Frac[P, E]
}

// NewFracContainer builds a round-robin container over an existing slice
// of fracture kernels, one per fracture in the set.
func NewFracContainer[P allocator.Pusher, E allocator.Extractor](fracs []*Frac[P, E]) *FracContainer[P, E] {
	return &FracContainer[P, E]{
		RoundRobin: fraccontainer.New(len(fracs)),
		fracs:      fracs,
	}
}

// Irs returns the fracture kernel currently selected for push.
func (c *FracContainer[P, E]) Irs() *Frac[P, E] {
	return c.fracs[c.CurFracID()]
}

// Fracs returns the underlying set of fracture kernels, in fracture-id
// order — used by callers that need to pair each fracture kernel with its
// matching flux child for convolution.
func (c *FracContainer[P, E]) Fracs() []*Frac[P, E] { return c.fracs }

// PushCoef pushes into the currently selected fracture and moves to the
// next one in the round robin.
func (c *FracContainer[P, E]) PushCoef(col int, r, u []float64) {
	c.Irs().PushCoef(col, r, u)
	c.OnPushCoef()
	c.RoundRobin.Advance()
}

// PushCoefPrev is the PushCoef counterpart for seeding P_prev.
func (c *FracContainer[P, E]) PushCoefPrev(col int, u []float64) {
	c.Irs().PushCoefPrev(col, u)
	c.OnPushCoef()
	c.RoundRobin.Advance()
}

// ResetKernel resets every fracture's K matrix, used at the start of a
// simulation before any fracture receives its first push.
func (c *FracContainer[P, E]) ResetKernel() {
	for _, f := range c.fracs {
		f.ResetKernel()
	}
}

// Advance commits every fracture kernel for this step. It requires the
// round robin to be back at fracture zero, i.e. only whole rounds (none
// included) have been pushed since the id last wrapped — calling Advance
// after pushing only some fractures of a round is a contract violation
// rather than a silently wrong commit.
func (c *FracContainer[P, E]) Advance() {
	contract.Check(!c.AtStart(), "kernel.FracContainer",
		"advance called before every fracture was pushed this step")

	for _, f := range c.fracs {
		f.Advance()
	}
	c.ClearNeedAdvance()
}

// PushDone reports whether the round robin is back at fracture zero (no
// partial round pending), so it is safe to Advance. It is also true before
// any push.
func (c *FracContainer[P, E]) PushDone() bool {
	return c.AtStart()
}

// FracCount is the number of fractures in the round-robin set.
func (c *FracContainer[P, E]) FracCount() int { return c.RoundRobin.FracCount() }
