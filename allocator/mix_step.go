package allocator

import "github.com/ArturSalamatin/convolution/memdesc"

// MixStepKernelPusher keeps a single time segment in memory: pushes always
// land in the same columns, so there is nothing for on_push to move beyond
// clearing the need-advance flag.
type MixStepKernelPusher struct {
	desc        memdesc.Desc
	needAdvance bool
}

// NewMixStepKernelPusher builds a MixStep kernel pusher.
func NewMixStepKernelPusher(desc memdesc.Desc) *MixStepKernelPusher {
	return &MixStepKernelPusher{desc: desc}
}

func (p *MixStepKernelPusher) OnPush()                  { p.needAdvance = false }
func (p *MixStepKernelPusher) IdxBegin() uint64          { return 0 }
func (p *MixStepKernelPusher) IdxEnd() uint64            { return 0 }
func (p *MixStepKernelPusher) SpatialSize() uint64       { return p.desc.SpatialSize() }
func (p *MixStepKernelPusher) AllocatedMemory() uint64   { return p.desc.AllocatedMemory() }
func (p *MixStepKernelPusher) PushedDataCounter() uint64 { return p.desc.CurTemporalWindow }
func (p *MixStepKernelPusher) PushDataNmbr() uint64      { return p.desc.TemporalSize() }
func (p *MixStepKernelPusher) NeedAdvance() bool         { return p.needAdvance }
func (p *MixStepKernelPusher) SetNeedAdvance(v bool)     { p.needAdvance = v }

// MixStepKernelExtractor reads the whole allocated memory at all times;
// the real work for MixStep lives one layer up, in the kernel's P_cur
// cache (see kernel.MixStepWell).
type MixStepKernelExtractor struct {
	desc memdesc.Desc
}

// NewMixStepKernelExtractor builds a MixStep kernel extractor.
func NewMixStepKernelExtractor(desc memdesc.Desc) *MixStepKernelExtractor {
	return &MixStepKernelExtractor{desc: desc}
}

func (e *MixStepKernelExtractor) OnExtract()             {}
func (e *MixStepKernelExtractor) IdxBegin() uint64       { return 0 }
func (e *MixStepKernelExtractor) IdxEnd() uint64         { return e.desc.AllocatedMemory() }
func (e *MixStepKernelExtractor) SpatialSize() uint64    { return e.desc.SpatialSize() }
func (e *MixStepKernelExtractor) CurrentWindowSize() uint64 {
	return e.IdxEnd() - e.IdxBegin()
}

// MixStepFluxPusher keeps a single time slab live at a fixed location:
// every push lands at index 0, mirroring MixStepKernelPusher's own pinned
// idxBegin/idxEnd. Unlike ConstStepFluxPusher/MainStepFluxPusher, it must
// not slide idxBegin toward the front on each push — MixStep never holds
// more than one term at a time, so there is no "next slab" to slide into,
// and sliding would underflow the second time OnPush ran.
type MixStepFluxPusher struct {
	desc        memdesc.Desc
	needAdvance bool
}

// NewMixStepFluxPusher builds a MixStep flux pusher.
func NewMixStepFluxPusher(desc memdesc.Desc) *MixStepFluxPusher {
	return &MixStepFluxPusher{desc: desc}
}

func (p *MixStepFluxPusher) OnPush()                  { p.needAdvance = false }
func (p *MixStepFluxPusher) IdxBegin() uint64          { return 0 }
func (p *MixStepFluxPusher) IdxEnd() uint64            { return p.desc.AllocatedMemory() }
func (p *MixStepFluxPusher) SpatialSize() uint64       { return p.desc.SpatialSize() }
func (p *MixStepFluxPusher) AllocatedMemory() uint64   { return p.desc.AllocatedMemory() }
func (p *MixStepFluxPusher) PushedDataCounter() uint64 { return p.desc.CurTemporalWindow }
func (p *MixStepFluxPusher) PushDataNmbr() uint64      { return p.desc.TemporalSize() }
func (p *MixStepFluxPusher) NeedAdvance() bool         { return p.needAdvance }
func (p *MixStepFluxPusher) SetNeedAdvance(v bool)     { p.needAdvance = v }

// MixStepFluxExtractor keeps a single slab live, [0, S); OnExtract grows its
// own window counter until the external boundary is reached, then freezes.
type MixStepFluxExtractor struct {
	desc              memdesc.Desc
	frameTemporalSize uint64
}

// NewMixStepFluxExtractor builds a MixStep flux extractor.
func NewMixStepFluxExtractor(desc memdesc.Desc, frameTemporalSize uint64) *MixStepFluxExtractor {
	return &MixStepFluxExtractor{desc: desc, frameTemporalSize: frameTemporalSize}
}

func (e *MixStepFluxExtractor) isExternalBoundary() bool {
	return e.desc.CurTemporalWindow == e.frameTemporalSize
}

func (e *MixStepFluxExtractor) OnExtract() {
	if !e.isExternalBoundary() {
		e.desc.CurTemporalWindow++
	}
}

func (e *MixStepFluxExtractor) IdxBegin() uint64       { return 0 }
func (e *MixStepFluxExtractor) IdxEnd() uint64         { return e.desc.SpatialSize() }
func (e *MixStepFluxExtractor) SpatialSize() uint64    { return e.desc.SpatialSize() }
func (e *MixStepFluxExtractor) CurrentWindowSize() uint64 {
	return e.IdxEnd() - e.IdxBegin()
}

// MixStepKernelPair is a MixStep allocator pair for kernel coefficients.
type MixStepKernelPair = Pair[*MixStepKernelPusher, *MixStepKernelExtractor]

// NewMixStepKernel builds a MixStep kernel allocator pair. The P_cur cache
// bookkeeping lives in kernel.MixStepWell, which sizes its cache from
// smallStepNmbrPerMainStep alone (there is no separate capacity
// parameter); the allocator itself needs only spatialSize/frameTemporalSize.
func NewMixStepKernel(spatialSize, frameTemporalSize uint64) MixStepKernelPair {
	desc := memdesc.New(spatialSize, frameTemporalSize)
	return MixStepKernelPair{
		Pusher:    NewMixStepKernelPusher(desc),
		Extractor: NewMixStepKernelExtractor(desc),
	}
}

// MixStepFluxPair is a MixStep allocator pair for flux samples.
type MixStepFluxPair = Pair[*MixStepFluxPusher, *MixStepFluxExtractor]

// NewMixStepFlux builds a MixStep flux allocator pair. The backing buffer
// is sized for a single time slab (temporal size 1): only one term
// participates in the convolution at a time.
func NewMixStepFlux(spatialSize, frameTemporalSize uint64) MixStepFluxPair {
	desc := memdesc.New(spatialSize, 1)
	return MixStepFluxPair{
		Pusher:    NewMixStepFluxPusher(desc),
		Extractor: NewMixStepFluxExtractor(desc, frameTemporalSize),
	}
}
