package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/hipster/internal/sheet"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestPointerTrackerRecognizesPastThreshold(t *testing.T) {
	p := PointerTracker{Threshold: 10}
	p.Down(100, 100, 0)

	_, ok := p.Move(100, 110, ms(16))
	assert.False(t, ok, "exactly the threshold is not a drag yet")
	assert.False(t, p.Recognized())

	ev, ok := p.Move(100, 111, ms(32))
	require.True(t, ok)
	assert.Equal(t, sheet.PhaseStart, ev.Phase)
	assert.Equal(t, 11.0, ev.DY)
	assert.True(t, p.Recognized())

	ev, ok = p.Move(103, 140, ms(48))
	require.True(t, ok)
	assert.Equal(t, sheet.PhaseMove, ev.Phase)
	assert.Equal(t, 3.0, ev.DX)
	assert.Equal(t, 40.0, ev.DY)

	ev, drag := p.Up(103, 140, ms(64))
	require.True(t, drag)
	assert.Equal(t, sheet.PhaseEnd, ev.Phase)
	assert.False(t, p.Pressed())
}

func TestPointerTrackerVelocity(t *testing.T) {
	p := PointerTracker{Threshold: 5}
	p.Down(0, 0, 0)
	for i := 1; i <= 10; i++ {
		p.Move(0, float64(i*16), ms(i*16))
	}
	assert.InDelta(t, 1.0, p.VelocityY(), 0.01)

	// Samples within the same instant don't produce a velocity spike.
	p.Move(0, 400, ms(160))
	assert.InDelta(t, 1.0, p.VelocityY(), 0.01)

	// Holding still decays it.
	for i := 11; i <= 20; i++ {
		p.Move(0, 400, ms(i*16))
	}
	assert.Less(t, p.VelocityY(), 0.01)
}

func TestPointerTrackerTapAndCancel(t *testing.T) {
	p := PointerTracker{Threshold: 10}

	_, action := p.Feed(PointerSample{X: 5, Y: 5, JustPressed: true, Pressed: true}, 0)
	assert.Equal(t, PointerNone, action)
	_, action = p.Feed(PointerSample{X: 8, Y: 9, Pressed: true}, ms(16))
	assert.Equal(t, PointerNone, action)
	_, action = p.Feed(PointerSample{X: 8, Y: 9, JustReleased: true}, ms(32))
	assert.Equal(t, PointerTap, action)

	// A release without a press is ignored.
	_, action = p.Feed(PointerSample{JustReleased: true}, ms(48))
	assert.Equal(t, PointerNone, action)

	p.Down(0, 0, 0)
	_, ok := p.Cancel()
	assert.False(t, ok, "an unrecognized press cancels silently")

	p.Down(0, 0, 0)
	p.Move(0, 50, ms(16))
	ev, ok := p.Cancel()
	require.True(t, ok)
	assert.Equal(t, sheet.PhaseCancel, ev.Phase)
	assert.Equal(t, 10.0, p.Threshold, "Down keeps the threshold")
}
