// Package timepolicy tracks the pair of scalar times (previousTimeReal,
// currentTime) each regime advances by a different rule as the simulation
// steps forward. Time policies do not touch allocator state; they are the
// "external collaborator" spec.md §1 lists as advancing only a pair of
// scalar times.
package timepolicy

// Base holds the two scalar times every policy tracks.
type Base struct {
	PreviousTimeReal float64
	CurrentTime      float64
}

// ConstStep advances both times by a fixed step ht every interval — the
// dense, uniform time grid used by the ConstStep (and, identically,
// SmallStep) regime.
type ConstStep struct {
	Base
	ht float64
}

// NewConstStep builds a ConstStep time policy starting at
// (previousTimeReal, currentTime) = (-ht, 0), matching original_source's
// TimePolicyConstStep constructor.
func NewConstStep(ht float64) *ConstStep {
	return &ConstStep{Base: Base{PreviousTimeReal: -ht, CurrentTime: 0}, ht: ht}
}

// SetInterval advances both times by ht.
func (c *ConstStep) SetInterval() {
	c.CurrentTime += c.ht
	c.PreviousTimeReal += c.ht
}

// SmallStep is a pure alias of ConstStep: original_source's
// TimePolicySmallStep inherits TimePolicyConstStep without adding
// behavior.
type SmallStep = ConstStep

// NewSmallStep builds a SmallStep time policy (identical to ConstStep).
func NewSmallStep(ht float64) *SmallStep { return NewConstStep(ht) }

// MainStep is a pure alias of ConstStep: original_source's
// TimePolicyMainStep inherits TimePolicyConstStep without adding behavior
// either — the coarser main-step/small-step distinction is handled
// entirely by the allocator and flux averaging ring, not by the time
// policy.
type MainStep = ConstStep

// NewMainStep builds a MainStep time policy (identical to ConstStep).
func NewMainStep(ht float64) *MainStep { return NewConstStep(ht) }

// MixStep advances currentTime by a full main_step only at the start of
// each main step, but advances previousTimeReal by a small_step on every
// interval — the two times run at different granularities within the
// same main step.
type MixStep struct {
	Base

	smallStepNmbrPerMainStep uint64
	mainStep                 float64
	smallStep                float64

	smallStepCounterWithinMainStep uint64
}

// NewMixStep builds a MixStep time policy. smallStep is derived as
// mainStep / smallStepNmbrPerMainStep, matching original_source exactly.
func NewMixStep(smallStepNmbrPerMainStep uint64, mainStep float64) *MixStep {
	return &MixStep{
		Base:                     Base{PreviousTimeReal: 0, CurrentTime: 0},
		smallStepNmbrPerMainStep: smallStepNmbrPerMainStep,
		mainStep:                 mainStep,
		smallStep:                mainStep / float64(smallStepNmbrPerMainStep),
	}
}

// SetInterval advances currentTime by a full main step exactly when the
// small-step counter wraps to zero (the start of a new main step), and
// always advances previousTimeReal by one small step.
func (m *MixStep) SetInterval() {
	if m.smallStepCounterWithinMainStep%m.smallStepNmbrPerMainStep == 0 {
		m.CurrentTime += m.mainStep
	}
	m.PreviousTimeReal += m.smallStep

	m.smallStepCounterWithinMainStep++
	m.smallStepCounterWithinMainStep %= m.smallStepNmbrPerMainStep
}
