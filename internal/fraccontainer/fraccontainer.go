// Package fraccontainer factors out the fixed-capacity, round-robin
// per-fracture bookkeeping shared by the fracture kernel container and the
// fracture flux container. original_source's MultipleFracturesContainer
// template played this role for both; spec.md §4.4/§4.7 describe the
// round-robin behavior twice without naming the shared piece, so it is
// pulled out here to avoid duplicating the index arithmetic.
package fraccontainer

// RoundRobin tracks which fracture in a fixed-size set receives the next
// push, and gates "ready to advance" until every fracture has been pushed
// once this step.
type RoundRobin struct {
	fracCount   int
	curFracID   int
	needAdvance bool
}

// New builds a RoundRobin over a fixed number of fractures. The fracture
// count never changes after construction.
func New(fracCount int) RoundRobin {
	if fracCount <= 0 {
		panic("fraccontainer: frac_count must be positive")
	}
	return RoundRobin{fracCount: fracCount}
}

// FracCount is the total number of fractures in the set.
func (r *RoundRobin) FracCount() int { return r.fracCount }

// CurFracID is the fracture id the next push will land on.
func (r *RoundRobin) CurFracID() int { return r.curFracID }

// OnPushCoef marks the container as having unconsumed data; it does not by
// itself move to the next fracture — callers that push per fracture on
// every call also call Advance.
func (r *RoundRobin) OnPushCoef() { r.needAdvance = true }

// NeedAdvance reports whether data has been pushed since the last advance.
func (r *RoundRobin) NeedAdvance() bool { return r.needAdvance }

// ClearNeedAdvance clears the ready-to-advance flag.
func (r *RoundRobin) ClearNeedAdvance() { r.needAdvance = false }

// Advance moves to the next fracture in the closed loop.
func (r *RoundRobin) Advance() { r.curFracID = (r.curFracID + 1) % r.fracCount }

// AtStart reports whether every fracture has been visited since the id
// last wrapped to zero — i.e. it is safe to convolve.
func (r *RoundRobin) AtStart() bool { return r.curFracID == 0 }
