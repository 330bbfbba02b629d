// Package memdesc defines the shared immutable sizing and mutable
// window-counter state that every allocator, kernel, and flux container in
// this module is built on.
package memdesc

// Desc is the common descriptor of allocated memory for source data (well,
// fracture segments) and influence-function data (convolution kernels).
//
// SpatialSize is the overall number of mass sources (well or fracture
// segments) per time step. TemporalSize is the overall number of time
// frames retained in the backing buffer — either the full history length
// (for flux data) or the number of frames needed to reach the external
// boundary (for kernel coefficients).
//
// A Desc is copied by value into every pusher and extractor constructed
// from it; CurTemporalWindow is therefore tracked independently on the push
// side and the extract side of an allocator pair, matching the
// push/extract asymmetry the allocator state machines rely on.
type Desc struct {
	spatialSize       uint64
	temporalSize      uint64
	allocatedMemory   uint64
	CurTemporalWindow uint64
}

// New builds a Desc for a given spatial and temporal size. Both must be
// strictly positive; the allocated memory is fixed for the Desc's lifetime.
func New(spatialSize, temporalSize uint64) Desc {
	if spatialSize == 0 || temporalSize == 0 {
		panic("memdesc: spatial_size and temporal_size must be positive")
	}
	return Desc{
		spatialSize:     spatialSize,
		temporalSize:    temporalSize,
		allocatedMemory: spatialSize * temporalSize,
	}
}

func (d Desc) SpatialSize() uint64     { return d.spatialSize }
func (d Desc) TemporalSize() uint64    { return d.temporalSize }
func (d Desc) AllocatedMemory() uint64 { return d.allocatedMemory }
