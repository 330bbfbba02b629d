package allocator

import "github.com/ArturSalamatin/convolution/memdesc"

// ConstStepKernelPusher writes new kernel-coefficient columns forever
// within the pre-sized buffer; the caller guarantees it never overshoots.
type ConstStepKernelPusher struct {
	desc        memdesc.Desc
	idxEnd      uint64
	needAdvance bool
}

// NewConstStepKernelPusher builds a pusher starting at an empty buffer.
func NewConstStepKernelPusher(desc memdesc.Desc) *ConstStepKernelPusher {
	return &ConstStepKernelPusher{desc: desc}
}

func (p *ConstStepKernelPusher) OnPush() {
	p.desc.CurTemporalWindow++
	p.idxEnd += p.desc.SpatialSize()
	p.needAdvance = false
}

func (p *ConstStepKernelPusher) IdxBegin() uint64            { return 0 }
func (p *ConstStepKernelPusher) IdxEnd() uint64               { return p.idxEnd }
func (p *ConstStepKernelPusher) SpatialSize() uint64          { return p.desc.SpatialSize() }
func (p *ConstStepKernelPusher) AllocatedMemory() uint64      { return p.desc.AllocatedMemory() }
func (p *ConstStepKernelPusher) PushedDataCounter() uint64    { return p.desc.CurTemporalWindow }
func (p *ConstStepKernelPusher) PushDataNmbr() uint64         { return p.desc.TemporalSize() }
func (p *ConstStepKernelPusher) NeedAdvance() bool            { return p.needAdvance }
func (p *ConstStepKernelPusher) SetNeedAdvance(v bool)        { p.needAdvance = v }

// ConstStepKernelExtractor is frozen at begin == 0; its end grows until it
// reaches the external boundary (the full allocated memory), after which
// further extracts are no-ops — the read window saturates.
type ConstStepKernelExtractor struct {
	desc   memdesc.Desc
	idxEnd uint64
}

// NewConstStepKernelExtractor builds an extractor starting at an empty window.
func NewConstStepKernelExtractor(desc memdesc.Desc) *ConstStepKernelExtractor {
	return &ConstStepKernelExtractor{desc: desc}
}

func (e *ConstStepKernelExtractor) isExternalBoundary() bool {
	return e.idxEnd == e.desc.AllocatedMemory()
}

func (e *ConstStepKernelExtractor) OnExtract() {
	if !e.isExternalBoundary() {
		e.desc.CurTemporalWindow++
		e.idxEnd += e.desc.SpatialSize()
	}
}

func (e *ConstStepKernelExtractor) IdxBegin() uint64   { return 0 }
func (e *ConstStepKernelExtractor) IdxEnd() uint64     { return e.idxEnd }
func (e *ConstStepKernelExtractor) SpatialSize() uint64 { return e.desc.SpatialSize() }
func (e *ConstStepKernelExtractor) CurrentWindowSize() uint64 {
	return e.IdxEnd() - e.IdxBegin()
}

// ConstStepFluxPusher writes newest-to-oldest from the high end of the
// buffer, so the most recent slab always sits at a stable offset from the
// buffer tail.
type ConstStepFluxPusher struct {
	desc        memdesc.Desc
	idxBegin    uint64
	needAdvance bool
}

// NewConstStepFluxPusher builds a pusher with begin pinned past the end of
// the buffer (no data pushed yet).
func NewConstStepFluxPusher(desc memdesc.Desc) *ConstStepFluxPusher {
	return &ConstStepFluxPusher{desc: desc, idxBegin: desc.AllocatedMemory()}
}

func (p *ConstStepFluxPusher) OnPush() {
	p.desc.CurTemporalWindow++
	p.idxBegin -= p.desc.SpatialSize()
	p.needAdvance = false
}

func (p *ConstStepFluxPusher) IdxBegin() uint64         { return p.idxBegin }
func (p *ConstStepFluxPusher) IdxEnd() uint64           { return p.desc.AllocatedMemory() }
func (p *ConstStepFluxPusher) SpatialSize() uint64      { return p.desc.SpatialSize() }
func (p *ConstStepFluxPusher) AllocatedMemory() uint64  { return p.desc.AllocatedMemory() }
func (p *ConstStepFluxPusher) PushedDataCounter() uint64 { return p.desc.CurTemporalWindow }
func (p *ConstStepFluxPusher) PushDataNmbr() uint64      { return p.desc.TemporalSize() }
func (p *ConstStepFluxPusher) NeedAdvance() bool         { return p.needAdvance }
func (p *ConstStepFluxPusher) SetNeedAdvance(v bool)     { p.needAdvance = v }

// ConstStepFluxExtractor slides its live window in from the back; once the
// external boundary is reached (its own window counter, incremented by
// OnExtract, hits frameTemporalSize), the window stops growing at the front and instead
// forgets the oldest slab at the back.
type ConstStepFluxExtractor struct {
	desc             memdesc.Desc
	idxBegin         uint64
	idxEnd           uint64
	frameTemporalSize uint64
}

// NewConstStepFluxExtractor builds an extractor with an empty window
// pinned past the end of the buffer.
func NewConstStepFluxExtractor(desc memdesc.Desc, frameTemporalSize uint64) *ConstStepFluxExtractor {
	return &ConstStepFluxExtractor{
		desc:              desc,
		idxBegin:          desc.AllocatedMemory(),
		idxEnd:            desc.AllocatedMemory(),
		frameTemporalSize: frameTemporalSize,
	}
}

func (e *ConstStepFluxExtractor) isExternalBoundary() bool {
	return e.desc.CurTemporalWindow == e.frameTemporalSize
}

func (e *ConstStepFluxExtractor) OnExtract() {
	if e.isExternalBoundary() {
		e.idxEnd -= e.desc.SpatialSize()
	} else {
		e.desc.CurTemporalWindow++
	}
	// idx_begin is capped at 0: once the window's front has slid all the
	// way to the start of the buffer, further extracts only shrink the
	// back (handled above).
	if e.idxBegin > 0 {
		e.idxBegin -= e.desc.SpatialSize()
	}
}

func (e *ConstStepFluxExtractor) IdxBegin() uint64    { return e.idxBegin }
func (e *ConstStepFluxExtractor) IdxEnd() uint64      { return e.idxEnd }
func (e *ConstStepFluxExtractor) SpatialSize() uint64 { return e.desc.SpatialSize() }
func (e *ConstStepFluxExtractor) CurrentWindowSize() uint64 {
	return e.IdxEnd() - e.IdxBegin()
}

// KernelPair is a ConstStep allocator pair for kernel coefficients.
type KernelPair = Pair[*ConstStepKernelPusher, *ConstStepKernelExtractor]

// NewConstStepKernel builds a ConstStep kernel allocator pair.
func NewConstStepKernel(spatialSize, frameTemporalSize uint64) KernelPair {
	desc := memdesc.New(spatialSize, frameTemporalSize)
	return KernelPair{
		Pusher:    NewConstStepKernelPusher(desc),
		Extractor: NewConstStepKernelExtractor(desc),
	}
}

// FluxPair is a ConstStep allocator pair for flux samples.
type FluxPair = Pair[*ConstStepFluxPusher, *ConstStepFluxExtractor]

// NewConstStepFlux builds a ConstStep flux allocator pair. frameTemporalSize
// must not exceed temporalSize.
func NewConstStepFlux(spatialSize, temporalSize, frameTemporalSize uint64) FluxPair {
	if frameTemporalSize > temporalSize {
		panic("allocator: frame_temporal_size must not exceed temporal_size")
	}
	desc := memdesc.New(spatialSize, temporalSize)
	return FluxPair{
		Pusher:    NewConstStepFluxPusher(desc),
		Extractor: NewConstStepFluxExtractor(desc, frameTemporalSize),
	}
}
