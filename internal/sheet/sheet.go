// Package sheet implements a draggable bottom sheet: a surface that slides up
// from the bottom of a container, rests at a height derived from its content,
// and can be dragged to expand or dismiss without fighting a scroll region
// nested inside it.
//
// The package holds no rendering or input polling. A host feeds it drag
// events, scroll callbacks and content measurements, advances it once per
// frame with Step, and reads Offset to draw. All calls must come from one
// goroutine.
package sheet

import (
	"math"
	"time"
)

// Sheet ties the position driver, gesture tracker, scroll arbiter and
// content-size observer into the presentation state machine.
type Sheet struct {
	cfg     Config
	state   State
	driver  *Driver
	arbiter *Arbiter
	tracker *Tracker

	contentHeight float64
	onDismissed   func()
	alive         bool
}

// New creates a closed sheet positioned just below the container.
func New(cfg Config) *Sheet {
	driver := NewDriver(cfg.ContainerHeight, cfg.Spring, cfg.CloseDuration)
	arbiter := &Arbiter{}
	return &Sheet{
		cfg:           cfg,
		state:         Closed,
		driver:        driver,
		arbiter:       arbiter,
		tracker:       NewTracker(driver, arbiter, cfg.thresholds()),
		contentHeight: cfg.ContainerHeight / 2,
		alive:         true,
	}
}

func (s *Sheet) State() State          { return s.state }
func (s *Sheet) Offset() float64       { return s.driver.Value() }
func (s *Sheet) Config() Config        { return s.cfg }
func (s *Sheet) Animating() bool       { return s.driver.Animating() }
func (s *Sheet) Dragging() bool        { return s.tracker.Active() }
func (s *Sheet) ScrollOwnership() bool { return s.arbiter.Ownership() }

// Visible reports whether any part of a presentation cycle is under way.
func (s *Sheet) Visible() bool { return s.alive && s.state != Closed }

// Openness is 0 when the sheet is fully below the container and 1 at or
// above its rest target. Hosts use it to fade the backdrop.
func (s *Sheet) Openness() float64 {
	span := s.cfg.ContainerHeight - s.RestTarget()
	if span <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, (s.cfg.ContainerHeight-s.Offset())/span))
}

// Present opens the sheet and registers onDismissed, which runs exactly once
// after the closing animation completes. It returns false unless the sheet
// is closed.
func (s *Sheet) Present(onDismissed func()) bool {
	if !s.alive || s.state != Closed {
		return false
	}
	s.onDismissed = onDismissed
	s.driver.Set(s.cfg.ContainerHeight)
	s.state = Opening
	s.driver.TransitionTo(s.RestTarget(), Spring, s.opened)
	return true
}

// Dismiss closes the sheet on the host's behalf. A drag in progress is
// abandoned.
func (s *Sheet) Dismiss() {
	if !s.alive {
		return
	}
	switch s.state {
	case Opening, Resting, Expanded, Dragging:
		s.close()
	}
}

// BackdropTap closes the sheet unless the user is dragging it.
func (s *Sheet) BackdropTap() {
	if !s.alive {
		return
	}
	switch s.state {
	case Opening, Resting, Expanded:
		s.close()
	}
}

// HandleDrag feeds one drag event. It reports whether the sheet consumed it;
// a rejected start should be offered to other handlers.
func (s *Sheet) HandleDrag(ev DragEvent) bool {
	if !s.alive {
		return false
	}

	switch ev.Phase {
	case PhaseStart:
		if s.state != Resting && s.state != Expanded {
			return false
		}
		if !s.tracker.Begin(ev) {
			return false
		}
		s.state = Dragging
		return true

	case PhaseMove:
		if s.state != Dragging {
			return false
		}
		s.tracker.Move(ev)
		return true

	case PhaseEnd:
		if s.state != Dragging {
			return false
		}
		switch s.tracker.Release(ev) {
		case ReleaseDismiss:
			s.close()
		case ReleaseExpand:
			s.expand()
		default:
			s.settle()
		}
		return true

	case PhaseCancel:
		if s.state != Dragging {
			return false
		}
		s.tracker.Abort()
		s.settle()
		return true
	}
	return false
}

// SetNestedScroll declares whether the content has its own scroll region.
func (s *Sheet) SetNestedScroll(nested bool) { s.arbiter.SetNested(nested) }

// Scroll region callbacks.
func (s *Sheet) OnScroll(offsetY float64) { s.arbiter.OnScroll(offsetY) }
func (s *Sheet) OnScrollDragBegin()       { s.arbiter.OnDragBegin() }
func (s *Sheet) OnScrollDragEnd()         { s.arbiter.OnDragEnd() }
func (s *Sheet) OnMomentumBegin()         { s.arbiter.OnMomentumBegin() }
func (s *Sheet) OnMomentumEnd()           { s.arbiter.OnMomentumEnd() }

// Step advances animations by one frame.
func (s *Sheet) Step(dt time.Duration) {
	if !s.alive {
		return
	}
	s.driver.Step(dt)
}

// Unmount tears the sheet down. Pending callbacks, onDismissed included,
// are dropped and every later call is a no-op.
func (s *Sheet) Unmount() {
	s.alive = false
	s.driver.Stop()
	s.tracker.Abort()
	s.onDismissed = nil
}

func (s *Sheet) opened() {
	if s.alive && s.state == Opening {
		s.state = Resting
	}
}

func (s *Sheet) settle() {
	s.state = Resting
	s.driver.TransitionTo(s.RestTarget(), Spring, nil)
}

func (s *Sheet) expand() {
	s.state = Expanded
	s.driver.TransitionTo(0, Spring, nil)
}

func (s *Sheet) close() {
	s.tracker.Abort()
	s.state = Closing
	s.driver.TransitionTo(s.cfg.ContainerHeight, Timing, func() {
		if !s.alive || s.state != Closing {
			return
		}
		s.state = Closed
		done := s.onDismissed
		s.onDismissed = nil
		if done != nil {
			done()
		}
	})
}
