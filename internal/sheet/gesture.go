package sheet

import "math"

// Phase is the stage of a drag gesture.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

// DragEvent carries cumulative movement relative to the gesture's start
// point. VelocityY is in px/ms, positive downward.
type DragEvent struct {
	Phase     Phase
	DX, DY    float64
	VelocityY float64
}

// Release is the outcome of letting go of a drag.
type Release int

const (
	ReleaseSettle Release = iota
	ReleaseDismiss
	ReleaseExpand
)

func (r Release) String() string {
	switch r {
	case ReleaseDismiss:
		return "dismiss"
	case ReleaseExpand:
		return "expand"
	default:
		return "settle"
	}
}

// Thresholds decide a release. Both values are strict: a drag of exactly
// Distance pixels settles.
type Thresholds struct {
	Distance float64
	Velocity float64
}

// Decide maps a release's total movement and velocity to an outcome.
// Dismissal wins when both directions match, which only happens for a drag
// that moved one way and flicked the other.
func (t Thresholds) Decide(dy, velocityY float64) Release {
	switch {
	case dy > t.Distance || velocityY > t.Velocity:
		return ReleaseDismiss
	case dy < -t.Distance || velocityY < -t.Velocity:
		return ReleaseExpand
	default:
		return ReleaseSettle
	}
}

type dragSession struct {
	startOffset float64
}

// Tracker turns drag events into direct offset writes and a release outcome.
type Tracker struct {
	driver     *Driver
	arbiter    *Arbiter
	thresholds Thresholds
	session    *dragSession
}

// NewTracker creates a tracker writing to driver and gated by arbiter.
func NewTracker(driver *Driver, arbiter *Arbiter, thresholds Thresholds) *Tracker {
	return &Tracker{driver: driver, arbiter: arbiter, thresholds: thresholds}
}

// Active reports whether a drag session is open.
func (t *Tracker) Active() bool { return t.session != nil }

// Begin tries to open a session. Near-horizontal gestures and gestures the
// nested scroll region owns are rejected so other handlers can take them.
func (t *Tracker) Begin(ev DragEvent) bool {
	if t.session != nil {
		return true
	}
	if !t.arbiter.AllowsStart() {
		return false
	}
	if math.Abs(ev.DY) <= math.Abs(ev.DX) {
		return false
	}
	t.driver.Stop()
	t.session = &dragSession{startOffset: t.driver.Value()}
	return true
}

// Move tracks the finger 1:1. The sheet can't be pulled above offset 0.
func (t *Tracker) Move(ev DragEvent) {
	if t.session == nil || !t.arbiter.Ownership() {
		return
	}
	t.driver.Set(math.Max(0, t.session.startOffset+ev.DY))
}

// Release closes the session and reports what the sheet should do next.
func (t *Tracker) Release(ev DragEvent) Release {
	t.session = nil
	return t.thresholds.Decide(ev.DY, ev.VelocityY)
}

// Abort closes the session without a decision.
func (t *Tracker) Abort() {
	t.session = nil
}
