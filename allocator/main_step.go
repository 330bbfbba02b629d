package allocator

import "github.com/ArturSalamatin/convolution/memdesc"

// MainStepKernelPusher is identical to ConstStepKernelPusher: averaging
// across small steps happens one layer up, in the flux averaging ring, so
// the kernel pusher needs no MainStep-specific behavior.
type MainStepKernelPusher = ConstStepKernelPusher

// NewMainStepKernelPusher builds a MainStep kernel pusher.
func NewMainStepKernelPusher(desc memdesc.Desc) *MainStepKernelPusher {
	return NewConstStepKernelPusher(desc)
}

// MainStepKernelExtractor behaves like ConstStepKernelExtractor for the
// first main_step_nmbr extracts (the dense "first history period"), then
// switches to coarser sub-step bookkeeping: the live window drops its
// oldest main-step slab and appends a new one only once every
// small_step_nmbr extracts.
type MainStepKernelExtractor struct {
	base ConstStepKernelExtractor

	idxBegin uint64

	smallStepNmbr    uint64
	smallStepCounter uint64

	cacheCapacity uint64 // M, number of main steps in the second history period

	mainStepNmbr    uint64
	mainStepCounter uint64
}

// NewMainStepKernelExtractor builds a MainStep kernel extractor.
func NewMainStepKernelExtractor(desc memdesc.Desc, cacheCapacity, smallStepNmbr, mainStepNmbr uint64) *MainStepKernelExtractor {
	return &MainStepKernelExtractor{
		base:          ConstStepKernelExtractor{desc: desc},
		smallStepNmbr: smallStepNmbr,
		cacheCapacity: cacheCapacity,
		mainStepNmbr:  mainStepNmbr,
	}
}

func (e *MainStepKernelExtractor) isFirstHistoryPeriod() bool {
	return e.mainStepCounter < e.mainStepNmbr
}

func (e *MainStepKernelExtractor) OnExtract() {
	if e.isFirstHistoryPeriod() {
		e.base.OnExtract()
		e.mainStepCounter++
		return
	}

	if e.smallStepCounter == 0 {
		e.idxBegin += e.base.desc.SpatialSize()
		if !e.base.isExternalBoundary() {
			e.base.idxEnd += e.base.desc.SpatialSize()
		}
	}
	e.smallStepCounter = (e.smallStepCounter + 1) % e.smallStepNmbr
}

func (e *MainStepKernelExtractor) IdxBegin() uint64   { return e.idxBegin }
func (e *MainStepKernelExtractor) IdxEnd() uint64     { return e.base.IdxEnd() }
func (e *MainStepKernelExtractor) SpatialSize() uint64 { return e.base.SpatialSize() }
func (e *MainStepKernelExtractor) CurrentWindowSize() uint64 {
	return e.IdxEnd() - e.IdxBegin()
}

// MainStepFluxPusher is identical to ConstStepFluxPusher: it decrements the
// begin-index of the frame on every push and does not consider the
// external boundary — that is checked on the extract side only.
type MainStepFluxPusher = ConstStepFluxPusher

// NewMainStepFluxPusher builds a MainStep flux pusher.
func NewMainStepFluxPusher(desc memdesc.Desc) *MainStepFluxPusher {
	return NewConstStepFluxPusher(desc)
}

// MainStepFluxExtractor delegates to ConstStepFluxExtractor while the
// buffer has not yet filled (first history period, idx_begin > 0). Once
// idx_begin reaches 0, no new slab arrives (the driver has switched to
// pushing pre-averaged per-main-step samples elsewhere); the extractor only
// drains remaining history by shrinking from the end once the boundary is
// reached.
type MainStepFluxExtractor struct {
	base ConstStepFluxExtractor
}

// NewMainStepFluxExtractor builds a MainStep flux extractor.
func NewMainStepFluxExtractor(desc memdesc.Desc, frameTemporalSize uint64) *MainStepFluxExtractor {
	return &MainStepFluxExtractor{
		base: *NewConstStepFluxExtractor(desc, frameTemporalSize),
	}
}

// isFirstHistoryPeriod reports whether pushes are still expected. The
// container only stores fluxes for the first period of history; idx_begin
// counts down from the full buffer size as pushes arrive, so "idx_begin >
// 0" means some pushes still remain before the buffer saturates.
func (e *MainStepFluxExtractor) isFirstHistoryPeriod() bool {
	return e.IdxBegin() > 0
}

func (e *MainStepFluxExtractor) OnExtract() {
	if e.isFirstHistoryPeriod() {
		e.base.OnExtract()
		return
	}

	if e.base.isExternalBoundary() {
		if e.IdxEnd() > e.IdxBegin() {
			e.base.idxEnd -= e.base.desc.SpatialSize()
		}
	} else {
		e.base.desc.CurTemporalWindow++
	}
}

func (e *MainStepFluxExtractor) IdxBegin() uint64   { return e.base.IdxBegin() }
func (e *MainStepFluxExtractor) IdxEnd() uint64     { return e.base.IdxEnd() }
func (e *MainStepFluxExtractor) SpatialSize() uint64 { return e.base.SpatialSize() }
func (e *MainStepFluxExtractor) CurrentWindowSize() uint64 {
	return e.IdxEnd() - e.IdxBegin()
}

// MainStepKernelPair is a MainStep allocator pair for kernel coefficients.
type MainStepKernelPair = Pair[*MainStepKernelPusher, *MainStepKernelExtractor]

// NewMainStepKernel builds a MainStep kernel allocator pair.
func NewMainStepKernel(spatialSize, frameTemporalSize, cacheCapacity, smallStepNmbr, mainStepNmbr uint64) MainStepKernelPair {
	desc := memdesc.New(spatialSize, frameTemporalSize)
	return MainStepKernelPair{
		Pusher:    NewMainStepKernelPusher(desc),
		Extractor: NewMainStepKernelExtractor(desc, cacheCapacity, smallStepNmbr, mainStepNmbr),
	}
}

// MainStepFluxPair is a MainStep allocator pair for flux samples.
type MainStepFluxPair = Pair[*MainStepFluxPusher, *MainStepFluxExtractor]

// NewMainStepFlux builds a MainStep flux allocator pair. mainStepNmbr is
// used as the buffer's temporal size (the number of history entries
// retained for fluxes); smallStepNmbr is recorded for the caller's
// averaging ring but not used by the allocator itself.
func NewMainStepFlux(spatialSize, mainStepNmbr, frameTemporalSize, smallStepNmbr uint64) MainStepFluxPair {
	desc := memdesc.New(spatialSize, mainStepNmbr)
	return MainStepFluxPair{
		Pusher:    NewMainStepFluxPusher(desc),
		Extractor: NewMainStepFluxExtractor(desc, frameTemporalSize),
	}
}
