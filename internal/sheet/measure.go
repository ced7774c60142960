package sheet

import "math"

// RestTarget computes the resting offset for content of the given height:
// containerHeight - clamp(contentHeight+margin, minHeight, maxHeight),
// kept inside [0, containerHeight].
func RestTarget(containerHeight, contentHeight, margin, minHeight, maxHeight float64) float64 {
	h := math.Max(minHeight, math.Min(contentHeight+margin, maxHeight))
	return math.Max(0, math.Min(containerHeight-h, containerHeight))
}

// RestTarget returns the resting offset for the last measured content height.
func (s *Sheet) RestTarget() float64 {
	c := s.cfg
	return RestTarget(c.ContainerHeight, s.contentHeight, c.Margin, c.MinHeight, c.MaxHeight)
}

// ContentHeight returns the last measured content height.
func (s *Sheet) ContentHeight() float64 { return s.contentHeight }

// OnContentSize records a new content measurement. A resting sheet re-snaps
// when its rest target moved past the hysteresis band; an opening sheet is
// retargeted. Other states only record the value and pick it up on their
// next return to rest.
func (s *Sheet) OnContentSize(height float64) {
	if !s.alive || height < 0 {
		return
	}
	s.contentHeight = height
	target := s.RestTarget()

	switch s.state {
	case Resting:
		if math.Abs(target-s.driver.Destination()) > s.cfg.Hysteresis {
			s.driver.TransitionTo(target, Spring, nil)
		}
	case Opening:
		if math.Abs(target-s.driver.Destination()) > s.cfg.Hysteresis {
			s.driver.TransitionTo(target, Spring, s.opened)
		}
	}
}
