package sheet

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Mode selects how a transition approaches its target.
type Mode int

const (
	// Spring approaches with stiffness/damping and may overshoot slightly.
	Spring Mode = iota
	// Timing approaches monotonically over a fixed duration.
	Timing
)

const (
	springSubstep    = 4 * time.Millisecond
	restDisplacement = 0.5 // px
	restSpeed        = 2.0 // px/s
)

type animation struct {
	mode      Mode
	from, to  float64
	elapsed   time.Duration
	pending   time.Duration // spring time not yet stepped
	onSettled func()
}

// Driver owns the sheet's vertical offset. Only one animation runs at a time;
// starting a transition or writing the value directly stops the previous one
// before anything else happens, so its onSettled never fires.
type Driver struct {
	value    float64
	velocity float64 // px/s, spring only
	anim     *animation

	motion   harmonica.Spring
	duration time.Duration
}

// NewDriver creates a driver resting at initial.
func NewDriver(initial float64, spring SpringParams, duration time.Duration) *Driver {
	if spring.Mass <= 0 {
		spring.Mass = 1
	}
	if spring.Stiffness <= 0 {
		spring.Stiffness = DefaultSpring.Stiffness
	}
	return &Driver{
		value:    math.Max(0, initial),
		motion:   newMotion(spring),
		duration: duration,
	}
}

// newMotion maps stiffness, damping and mass onto the angular frequency and
// damping ratio of a damped harmonic oscillator stepped at springSubstep.
func newMotion(p SpringParams) harmonica.Spring {
	omega := math.Sqrt(p.Stiffness / p.Mass)
	zeta := p.Damping / (2 * math.Sqrt(p.Stiffness*p.Mass))
	return harmonica.NewSpring(springSubstep.Seconds(), omega, zeta)
}

// Value returns the instantaneous offset, mid-animation included.
func (d *Driver) Value() float64 { return d.value }

// Animating reports whether a transition is in flight.
func (d *Driver) Animating() bool { return d.anim != nil }

// Destination returns the in-flight target, or the current value when idle.
func (d *Driver) Destination() float64 {
	if d.anim != nil {
		return d.anim.to
	}
	return d.value
}

// Stop halts any in-flight transition where it is. Its callback is dropped.
func (d *Driver) Stop() {
	d.anim = nil
	d.velocity = 0
}

// Set writes the offset directly, bypassing animation.
func (d *Driver) Set(v float64) {
	d.Stop()
	d.value = math.Max(0, v)
}

// TransitionTo starts a new transition from the current value, replacing any
// in-flight one. onSettled runs once when this transition completes and never
// if it is interrupted.
func (d *Driver) TransitionTo(target float64, mode Mode, onSettled func()) {
	target = math.Max(0, target)
	if mode == Timing {
		d.velocity = 0
	}
	d.anim = &animation{
		mode:      mode,
		from:      d.value,
		to:        target,
		onSettled: onSettled,
	}
}

// Step advances the in-flight transition by dt.
func (d *Driver) Step(dt time.Duration) {
	a := d.anim
	if a == nil || dt <= 0 {
		return
	}

	var done bool
	switch a.mode {
	case Timing:
		done = d.stepTiming(a, dt)
	default:
		done = d.stepSpring(a, dt)
	}
	if !done {
		return
	}

	d.anim = nil
	if a.onSettled != nil {
		a.onSettled()
	}
}

func (d *Driver) stepTiming(a *animation, dt time.Duration) bool {
	a.elapsed += dt
	if d.duration <= 0 || a.elapsed >= d.duration {
		d.value = a.to
		return true
	}
	t := float64(a.elapsed) / float64(d.duration)
	d.value = a.from + (a.to-a.from)*easeInOut(t)
	return false
}

func (d *Driver) stepSpring(a *animation, dt time.Duration) bool {
	a.pending += dt
	for a.pending >= springSubstep {
		a.pending -= springSubstep
		d.value, d.velocity = d.motion.Update(d.value, d.velocity, a.to)
		if d.value < 0 {
			d.value = 0
			if d.velocity < 0 {
				d.velocity = 0
			}
		}
	}

	if math.Abs(d.value-a.to) < restDisplacement && math.Abs(d.velocity) < restSpeed {
		d.value = a.to
		d.velocity = 0
		return true
	}
	return false
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := -2*t + 2
	return 1 - p*p*p/2
}
