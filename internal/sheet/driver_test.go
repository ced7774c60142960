package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

func runUntilIdle(t *testing.T, d *Driver) {
	t.Helper()
	for i := 0; i < 600 && d.Animating(); i++ {
		d.Step(frame)
	}
	require.False(t, d.Animating(), "driver never settled")
}

func TestDriverTimingCompletesAfterDuration(t *testing.T) {
	d := NewDriver(0, DefaultSpring, 300*time.Millisecond)
	fired := 0
	d.TransitionTo(800, Timing, func() { fired++ })

	prev := d.Value()
	for i := 0; i < 29; i++ {
		d.Step(10 * time.Millisecond)
		assert.GreaterOrEqual(t, d.Value(), prev, "timing must be monotonic")
		prev = d.Value()
	}
	assert.Equal(t, 0, fired)
	assert.Less(t, d.Value(), 800.0)
	assert.True(t, d.Animating())

	d.Step(10 * time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 800.0, d.Value())
	assert.False(t, d.Animating())

	d.Step(10 * time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestDriverInterruptDropsCallback(t *testing.T) {
	d := NewDriver(0, DefaultSpring, 300*time.Millisecond)
	stale := 0
	d.TransitionTo(800, Timing, func() { stale++ })
	d.Step(100 * time.Millisecond)
	mid := d.Value()
	require.Greater(t, mid, 0.0)

	d.TransitionTo(200, Spring, nil)
	assert.Equal(t, mid, d.Value(), "new transition starts from the current value")
	runUntilIdle(t, d)

	assert.Equal(t, 0, stale)
	assert.Equal(t, 200.0, d.Value())
}

func TestDriverSpringSettlesOnTarget(t *testing.T) {
	d := NewDriver(800, DefaultSpring, 300*time.Millisecond)
	settled := 0
	d.TransitionTo(300, Spring, func() { settled++ })
	runUntilIdle(t, d)

	assert.Equal(t, 300.0, d.Value())
	assert.Equal(t, 1, settled)
}

func TestDriverSpringNeverGoesNegative(t *testing.T) {
	d := NewDriver(800, SpringParams{Stiffness: 300, Damping: 5, Mass: 1}, 0)
	d.TransitionTo(0, Spring, nil)
	for i := 0; i < 600 && d.Animating(); i++ {
		d.Step(frame)
		require.GreaterOrEqual(t, d.Value(), 0.0)
	}
	assert.Equal(t, 0.0, d.Value())
}

func TestDriverSetStopsAnimation(t *testing.T) {
	d := NewDriver(800, DefaultSpring, 300*time.Millisecond)
	fired := 0
	d.TransitionTo(0, Timing, func() { fired++ })
	d.Step(frame)

	d.Set(123)
	assert.False(t, d.Animating())
	assert.Equal(t, 123.0, d.Value())

	d.Step(time.Second)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 123.0, d.Value())

	d.Set(-20)
	assert.Equal(t, 0.0, d.Value())
}

func TestDriverCallbackCanChainTransition(t *testing.T) {
	d := NewDriver(0, DefaultSpring, 100*time.Millisecond)
	d.TransitionTo(400, Timing, func() {
		d.TransitionTo(100, Spring, nil)
	})
	d.Step(100 * time.Millisecond)

	assert.True(t, d.Animating())
	assert.Equal(t, 100.0, d.Destination())
	runUntilIdle(t, d)
	assert.Equal(t, 100.0, d.Value())
}

func TestDriverSpringIndependentOfFrameSlicing(t *testing.T) {
	coarse := NewDriver(800, DefaultSpring, 0)
	fine := NewDriver(800, DefaultSpring, 0)
	coarse.TransitionTo(300, Spring, nil)
	fine.TransitionTo(300, Spring, nil)

	for range 10 {
		coarse.Step(20 * time.Millisecond)
		for range 5 {
			fine.Step(4 * time.Millisecond)
		}
	}
	assert.InDelta(t, fine.Value(), coarse.Value(), 1e-9)
	assert.Less(t, coarse.Value(), 800.0)

	// Leftover time below one substep carries into the next frame.
	short := NewDriver(800, DefaultSpring, 0)
	short.TransitionTo(300, Spring, nil)
	short.Step(3 * time.Millisecond)
	assert.Equal(t, 800.0, short.Value())
	short.Step(time.Millisecond)
	assert.Less(t, short.Value(), 800.0)
}

func TestDriverSpringDampingControlsOvershoot(t *testing.T) {
	lowest := func(p SpringParams) float64 {
		d := NewDriver(800, p, 0)
		d.TransitionTo(300, Spring, nil)
		low := d.Value()
		for i := 0; i < 600 && d.Animating(); i++ {
			d.Step(frame)
			low = min(low, d.Value())
		}
		require.False(t, d.Animating())
		return low
	}

	assert.Less(t, lowest(SpringParams{Stiffness: 300, Damping: 5, Mass: 1}), 290.0, "underdamped springs overshoot")
	assert.GreaterOrEqual(t, lowest(SpringParams{Stiffness: 100, Damping: 40, Mass: 1}), 300.0, "overdamped springs approach from one side")
}
