package ui

import (
	"math"
	"time"
)

const (
	minFlingVelocity = 0.05 // px/ms
	stopVelocity     = 0.02 // px/ms
	flingDecayMS     = 325.0
)

// ScrollState provides reusable vertical scroll tracking: wheel input with
// smooth animation, direct drags, and momentum after a fling. Embed it in
// screens or sheet content that scroll. The callbacks let a host follow the
// scroll offset and the drag and momentum lifecycles.
type ScrollState struct {
	ScrollY       float64
	TargetScrollY float64
	MaxScroll     float64

	OnScroll        func(offsetY float64)
	OnDragBegin     func()
	OnDragEnd       func()
	OnMomentumBegin func()
	OnMomentumEnd   func()

	dragging   bool
	momentum   bool
	velocity   float64 // px/ms, positive moves content up
	dragOrigin float64
}

// SetMax sets the scrollable extent and clamps the current position into it.
func (s *ScrollState) SetMax(maxScroll float64) {
	s.MaxScroll = math.Max(0, maxScroll)
	s.TargetScrollY = s.clamp(s.TargetScrollY)
	s.setScroll(s.clamp(s.ScrollY))
}

func (s *ScrollState) Dragging() bool     { return s.dragging }
func (s *ScrollState) Decelerating() bool { return s.momentum }

// HandleMouseWheel updates the target scroll position from mouse wheel input.
// Call this from Update().
func (s *ScrollState) HandleMouseWheel() {
	_, wy := MouseWheelDelta()
	s.Wheel(wy)
}

// Wheel applies one wheel delta.
func (s *ScrollState) Wheel(wy float64) {
	if wy == 0 || s.dragging {
		return
	}
	s.endMomentum()
	s.TargetScrollY = s.clamp(s.TargetScrollY - wy*ScrollWheelSpeed)
}

// BeginDrag starts a direct drag. Momentum in progress stops.
func (s *ScrollState) BeginDrag() {
	s.endMomentum()
	s.dragging = true
	s.dragOrigin = s.ScrollY
	if s.OnDragBegin != nil {
		s.OnDragBegin()
	}
}

// DragTo follows the pointer; dy is its total movement since BeginDrag.
func (s *ScrollState) DragTo(dy float64) {
	if !s.dragging {
		return
	}
	s.setScroll(s.clamp(s.dragOrigin - dy))
	s.TargetScrollY = s.ScrollY
}

// EndDrag releases the drag. A release faster than the fling threshold
// continues as momentum; velocityY is the pointer's, positive downward.
func (s *ScrollState) EndDrag(velocityY float64) {
	if !s.dragging {
		return
	}
	s.dragging = false
	if s.OnDragEnd != nil {
		s.OnDragEnd()
	}

	v := -velocityY
	if math.Abs(v) <= minFlingVelocity || (v < 0 && s.ScrollY <= 0) || (v > 0 && s.ScrollY >= s.MaxScroll) {
		return
	}
	s.velocity = v
	s.momentum = true
	if s.OnMomentumBegin != nil {
		s.OnMomentumBegin()
	}
}

// Step advances momentum or wheel animation by one frame.
func (s *ScrollState) Step(dt time.Duration) {
	if s.dragging {
		return
	}
	if !s.momentum {
		s.Animate()
		return
	}

	ms := float64(dt) / float64(time.Millisecond)
	next := s.ScrollY + s.velocity*ms
	s.velocity *= math.Exp(-ms / flingDecayMS)

	clamped := s.clamp(next)
	s.setScroll(clamped)
	s.TargetScrollY = clamped
	if clamped != next || math.Abs(s.velocity) < stopVelocity {
		s.endMomentum()
	}
}

// Animate performs smooth scroll interpolation toward the wheel target.
func (s *ScrollState) Animate() {
	y := Lerp(s.ScrollY, s.TargetScrollY, ScrollAnimSpeed)
	if math.Abs(y-s.TargetScrollY) < 0.5 {
		y = s.TargetScrollY
	}
	s.setScroll(y)
}

// Reset sets scroll position back to top.
func (s *ScrollState) Reset() {
	s.endMomentum()
	s.dragging = false
	s.TargetScrollY = 0
	s.setScroll(0)
}

// EnsureVisible scrolls so that the span [top, bottom] of the content fits
// in a viewport of viewHeight.
func (s *ScrollState) EnsureVisible(top, bottom, viewHeight float64) {
	if bottom > viewHeight+s.TargetScrollY {
		s.TargetScrollY = bottom - viewHeight
	}
	if top < s.TargetScrollY {
		s.TargetScrollY = top
	}
	s.TargetScrollY = s.clamp(s.TargetScrollY)
}

func (s *ScrollState) endMomentum() {
	if !s.momentum {
		return
	}
	s.momentum = false
	s.velocity = 0
	if s.OnMomentumEnd != nil {
		s.OnMomentumEnd()
	}
}

func (s *ScrollState) setScroll(y float64) {
	if y == s.ScrollY {
		return
	}
	s.ScrollY = y
	if s.OnScroll != nil {
		s.OnScroll(y)
	}
}

func (s *ScrollState) clamp(y float64) float64 {
	return math.Max(0, math.Min(s.MaxScroll, y))
}
