package timepolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstStepAdvancesBothTimes(t *testing.T) {
	c := NewConstStep(0.5)
	assert.Equal(t, -0.5, c.PreviousTimeReal)
	assert.Equal(t, 0.0, c.CurrentTime)

	c.SetInterval()
	assert.Equal(t, 0.0, c.PreviousTimeReal)
	assert.Equal(t, 0.5, c.CurrentTime)

	c.SetInterval()
	assert.Equal(t, 0.5, c.PreviousTimeReal)
	assert.Equal(t, 1.0, c.CurrentTime)
}

func TestMixStepAdvancesAtDifferentGranularities(t *testing.T) {
	m := NewMixStep(3, 0.9)
	assert.InDelta(t, 0.3, m.smallStep, 1e-12)

	// counter starts at 0, so the first interval also opens a main step.
	m.SetInterval()
	assert.InDelta(t, 0.9, m.CurrentTime, 1e-12)
	assert.InDelta(t, 0.3, m.PreviousTimeReal, 1e-12)

	m.SetInterval()
	assert.InDelta(t, 0.9, m.CurrentTime, 1e-12, "current time only advances at a main-step boundary")
	assert.InDelta(t, 0.6, m.PreviousTimeReal, 1e-12)

	m.SetInterval()
	assert.InDelta(t, 0.9, m.CurrentTime, 1e-12)
	assert.InDelta(t, 0.9, m.PreviousTimeReal, 1e-12)

	m.SetInterval()
	assert.InDelta(t, 1.8, m.CurrentTime, 1e-12, "counter wrapped back to zero, opening the next main step")
	assert.InDelta(t, 1.2, m.PreviousTimeReal, 1e-12)
}
