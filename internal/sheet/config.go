package sheet

import "time"

// Release thresholds. Drags further than DefaultDismissDistance pixels or
// faster than DefaultDismissVelocity px/ms decide the release.
const (
	DefaultDismissDistance = 100
	DefaultDismissVelocity = 0.5

	DefaultMargin        = 40
	DefaultMinRatio      = 0.25
	DefaultMaxRatio      = 0.8
	DefaultHysteresis    = 4
	DefaultCloseDuration = 300 * time.Millisecond
)

// SpringParams tunes the spring transition. Units are pixels and seconds.
type SpringParams struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// DefaultSpring settles in well under a second with a small overshoot.
var DefaultSpring = SpringParams{Stiffness: 180, Damping: 22, Mass: 1}

// Config holds the geometry and tuning for one sheet instance.
type Config struct {
	ContainerHeight float64
	// Margin is added to the measured content height before clamping.
	Margin    float64
	MinHeight float64
	MaxHeight float64

	DismissDistance float64
	DismissVelocity float64 // px/ms

	// Hysteresis is the smallest rest-target change that re-snaps a resting sheet.
	Hysteresis float64

	Spring        SpringParams
	CloseDuration time.Duration
}

// DefaultConfig returns the standard tuning for a container of the given height.
func DefaultConfig(containerHeight float64) Config {
	return Config{
		ContainerHeight: containerHeight,
		Margin:          DefaultMargin,
		MinHeight:       containerHeight * DefaultMinRatio,
		MaxHeight:       containerHeight * DefaultMaxRatio,
		DismissDistance: DefaultDismissDistance,
		DismissVelocity: DefaultDismissVelocity,
		Hysteresis:      DefaultHysteresis,
		Spring:          DefaultSpring,
		CloseDuration:   DefaultCloseDuration,
	}
}

func (c Config) thresholds() Thresholds {
	return Thresholds{Distance: c.DismissDistance, Velocity: c.DismissVelocity}
}
