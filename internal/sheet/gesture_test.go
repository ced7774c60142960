package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThresholdsDecide(t *testing.T) {
	th := Thresholds{Distance: DefaultDismissDistance, Velocity: DefaultDismissVelocity}

	tests := []struct {
		name string
		dy   float64
		vy   float64
		want Release
	}{
		{"jitter", 3, 0.01, ReleaseSettle},
		{"exact distance settles", 100, 0, ReleaseSettle},
		{"exact velocity settles", 0, 0.5, ReleaseSettle},
		{"exact upward distance settles", -100, 0, ReleaseSettle},
		{"exact upward velocity settles", 0, -0.5, ReleaseSettle},
		{"long drag down", 150, 0.1, ReleaseDismiss},
		{"fast flick down", 20, 0.8, ReleaseDismiss},
		{"long drag up", -150, -0.1, ReleaseExpand},
		{"fast flick up", -10, -0.6, ReleaseExpand},
		{"dismiss wins over expand", 120, -0.9, ReleaseDismiss},
		{"slow small drag up", -60, -0.2, ReleaseSettle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Decide(tt.dy, tt.vy))
		})
	}
}

func newTestTracker(start float64) (*Tracker, *Driver, *Arbiter) {
	d := NewDriver(start, DefaultSpring, 300*time.Millisecond)
	a := &Arbiter{}
	return NewTracker(d, a, Thresholds{Distance: 100, Velocity: 0.5}), d, a
}

func TestTrackerRejectsHorizontalGestures(t *testing.T) {
	tr, _, _ := newTestTracker(300)

	assert.False(t, tr.Begin(DragEvent{Phase: PhaseStart, DX: 12, DY: 4}))
	assert.False(t, tr.Begin(DragEvent{Phase: PhaseStart, DX: 10, DY: 10}), "diagonal ties are rejected")
	assert.False(t, tr.Active())

	assert.True(t, tr.Begin(DragEvent{Phase: PhaseStart, DX: 3, DY: 11}))
	assert.True(t, tr.Active())
}

func TestTrackerBeginHaltsAnimation(t *testing.T) {
	tr, d, _ := newTestTracker(800)
	d.TransitionTo(300, Spring, nil)
	d.Step(frame)
	d.Step(frame)
	at := d.Value()

	assert.True(t, tr.Begin(DragEvent{Phase: PhaseStart, DY: 11}))
	assert.False(t, d.Animating())

	tr.Move(DragEvent{Phase: PhaseMove, DY: 30})
	assert.Equal(t, at+30, d.Value())
}

func TestTrackerMoveClampsAtTop(t *testing.T) {
	tr, d, _ := newTestTracker(300)
	tr.Begin(DragEvent{Phase: PhaseStart, DY: -11})

	tr.Move(DragEvent{Phase: PhaseMove, DY: -120})
	assert.Equal(t, 180.0, d.Value())

	tr.Move(DragEvent{Phase: PhaseMove, DY: -420})
	assert.Equal(t, 0.0, d.Value())

	tr.Move(DragEvent{Phase: PhaseMove, DY: 900})
	assert.Equal(t, 1200.0, d.Value(), "dragging past the bottom edge is allowed")
}

func TestTrackerIgnoresMovesWithoutOwnership(t *testing.T) {
	tr, d, a := newTestTracker(300)
	a.SetNested(true)
	tr.Begin(DragEvent{Phase: PhaseStart, DY: 11})

	a.OnScroll(25)
	tr.Move(DragEvent{Phase: PhaseMove, DY: 80})
	assert.Equal(t, 300.0, d.Value())

	a.OnScroll(0)
	tr.Move(DragEvent{Phase: PhaseMove, DY: 80})
	assert.Equal(t, 380.0, d.Value())
}

func TestArbiterOwnership(t *testing.T) {
	a := &Arbiter{}
	assert.True(t, a.Ownership())
	a.OnScroll(50)
	assert.True(t, a.AllowsStart(), "without a nested region the sheet always owns the drag")

	a.SetNested(true)
	a.OnScroll(50)
	assert.False(t, a.Ownership())
	assert.False(t, a.AllowsStart())

	a.OnScroll(0)
	assert.True(t, a.Ownership())
	assert.True(t, a.AllowsStart())

	a.OnScroll(-12)
	assert.True(t, a.Ownership(), "overscroll past the top still yields")

	a.OnDragBegin()
	assert.False(t, a.AllowsStart())
	a.OnDragEnd()
	a.OnMomentumBegin()
	assert.True(t, a.Ownership())
	assert.False(t, a.AllowsStart())
	a.OnMomentumEnd()
	assert.True(t, a.AllowsStart())
}
