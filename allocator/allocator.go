// Package allocator implements the history-window allocator state
// machines: the index arithmetic that decides where, inside a fixed
// contiguous buffer, each new time slab is written (the pusher side) and
// which subrange is live for the next convolution (the extractor side).
//
// Four regimes are covered: ConstStep, MainStep, MixStep, and SmallStep
// (SmallStep is a pure alias of ConstStep — see regime.SmallStepWell /
// regime.SmallStepFrac). Each regime supplies a pusher/extractor pair for
// both kernel and flux data.
package allocator

// Pusher tracks where the next write slab goes and how many slabs have
// been pushed so far.
type Pusher interface {
	// OnPush commits the slab just written and clears the need-advance
	// flag. ConstStep/MainStep pushers also advance the write cursor and
	// increment the push counter; MixStep pushers keep both fixed.
	OnPush()
	IdxBegin() uint64
	IdxEnd() uint64
	SpatialSize() uint64
	AllocatedMemory() uint64
	PushedDataCounter() uint64
	PushDataNmbr() uint64
	NeedAdvance() bool
	SetNeedAdvance(bool)
}

// Extractor tracks the live read window and how it evolves as the
// simulation reaches the external boundary.
type Extractor interface {
	// OnExtract moves the read-window cursor; it has the side effect of
	// possibly growing, shrinking, or freezing the window depending on
	// the regime and whether the external boundary has been reached.
	OnExtract()
	IdxBegin() uint64
	IdxEnd() uint64
	SpatialSize() uint64
	CurrentWindowSize() uint64
}

// Pair binds one pusher and one extractor over the same logical buffer,
// mirroring the Allocator template in the original C++ design.
type Pair[P Pusher, E Extractor] struct {
	Pusher    P
	Extractor E
}

// PushedDataCounter returns the number of time slabs pushed so far.
func (p Pair[P, E]) PushedDataCounter() uint64 { return p.Pusher.PushedDataCounter() }

// PushDataNmbr returns the total number of slabs the buffer was sized for.
func (p Pair[P, E]) PushDataNmbr() uint64 { return p.Pusher.PushDataNmbr() }
