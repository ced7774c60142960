package ui

import (
	"math"
	"time"

	"github.com/depeter/hipster/internal/sheet"
)

// velocitySmoothing weights the newest sample in the running velocity.
const velocitySmoothing = 0.7

// PointerTracker turns raw press, move and release samples into drag
// events. A press becomes a drag once it travels further than Threshold;
// a press released before that is a tap. Times come from the frame clock.
type PointerTracker struct {
	Threshold float64

	down       bool
	recognized bool
	startX     float64
	startY     float64
	lastX      float64
	lastY      float64
	lastT      time.Duration
	velocityY  float64 // px/ms
}

// Down starts a press.
func (p *PointerTracker) Down(x, y float64, t time.Duration) {
	*p = PointerTracker{
		Threshold: p.Threshold,
		down:      true,
		startX:    x,
		startY:    y,
		lastX:     x,
		lastY:     y,
		lastT:     t,
	}
}

func (p *PointerTracker) Pressed() bool          { return p.down }
func (p *PointerTracker) Recognized() bool       { return p.down && p.recognized }
func (p *PointerTracker) Origin() (x, y float64) { return p.startX, p.startY }
func (p *PointerTracker) VelocityY() float64     { return p.velocityY }

// Move records a sample. It returns PhaseStart on the sample that crosses
// the threshold and PhaseMove after that.
func (p *PointerTracker) Move(x, y float64, t time.Duration) (sheet.DragEvent, bool) {
	if !p.down {
		return sheet.DragEvent{}, false
	}
	p.sample(x, y, t)

	dx, dy := x-p.startX, y-p.startY
	if !p.recognized {
		if math.Hypot(dx, dy) <= p.Threshold {
			return sheet.DragEvent{}, false
		}
		p.recognized = true
		return p.event(sheet.PhaseStart), true
	}
	return p.event(sheet.PhaseMove), true
}

// Up ends the press. drag is false for a tap.
func (p *PointerTracker) Up(x, y float64, t time.Duration) (ev sheet.DragEvent, drag bool) {
	if !p.down {
		return sheet.DragEvent{}, false
	}
	p.sample(x, y, t)
	p.down = false
	if !p.recognized {
		return sheet.DragEvent{}, false
	}
	return p.event(sheet.PhaseEnd), true
}

// Cancel abandons the press, for example when the window loses the pointer.
func (p *PointerTracker) Cancel() (sheet.DragEvent, bool) {
	if !p.down {
		return sheet.DragEvent{}, false
	}
	p.down = false
	if !p.recognized {
		return sheet.DragEvent{}, false
	}
	return p.event(sheet.PhaseCancel), true
}

func (p *PointerTracker) sample(x, y float64, t time.Duration) {
	if dt := float64(t-p.lastT) / float64(time.Millisecond); dt > 0 {
		inst := (y - p.lastY) / dt
		p.velocityY = velocitySmoothing*inst + (1-velocitySmoothing)*p.velocityY
		p.lastT = t
	}
	p.lastX, p.lastY = x, y
}

func (p *PointerTracker) event(phase sheet.Phase) sheet.DragEvent {
	return sheet.DragEvent{
		Phase:     phase,
		DX:        p.lastX - p.startX,
		DY:        p.lastY - p.startY,
		VelocityY: p.velocityY,
	}
}

// PointerAction is what one pointer sample amounted to.
type PointerAction int

const (
	PointerNone PointerAction = iota
	PointerTap
	PointerDrag
)

// Feed routes a polled sample through the tracker.
func (p *PointerTracker) Feed(s PointerSample, now time.Duration) (sheet.DragEvent, PointerAction) {
	switch {
	case s.JustPressed:
		p.Down(s.X, s.Y, now)
	case s.Pressed:
		if ev, ok := p.Move(s.X, s.Y, now); ok {
			return ev, PointerDrag
		}
	case s.JustReleased:
		wasDown := p.down
		ev, drag := p.Up(s.X, s.Y, now)
		if drag {
			return ev, PointerDrag
		}
		if wasDown {
			return ev, PointerTap
		}
	}
	return sheet.DragEvent{}, PointerNone
}
