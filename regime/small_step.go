package regime

// SmallStepWell is a pure alias of ConstStepWell: original_source's
// AllocatorSmallStep.h is an empty file deferring entirely to
// AllocatorConstStep.h, and TimePolicySmallStep inherits
// TimePolicyConstStep without adding behavior.
type SmallStepWell = ConstStepWell

// NewSmallStepWell builds a SmallStep well regime (identical to
// ConstStep).
func NewSmallStepWell(gridNodesCount int, spatialSize, frameTemporalSize, temporalSize uint64, ht float64) *SmallStepWell {
	return NewConstStepWell(gridNodesCount, spatialSize, frameTemporalSize, temporalSize, ht)
}

// SmallStepFrac is a pure alias of ConstStepFrac.
type SmallStepFrac = ConstStepFrac

// NewSmallStepFrac builds a SmallStep regime with fracture support
// (identical to ConstStep).
func NewSmallStepFrac(gridNodesCount int, wellSpatialSize uint64, frameTemporalSize, temporalSize uint64, ht float64, fracNy []int) *SmallStepFrac {
	return NewConstStepFrac(gridNodesCount, wellSpatialSize, frameTemporalSize, temporalSize, ht, fracNy)
}
