package tracking

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

const earthRadiusM = 6371008.8

// Source produces positions until ctx is done. RouteID is left empty; the
// tracker stamps it.
type Source interface {
	Run(ctx context.Context, out chan<- Sample) error
}

// Distance returns the great-circle distance in meters between two points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := lat1 * math.Pi / 180
	p2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(p1)*math.Cos(p2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// SimulatedSource is a random walk for machines without a position sensor.
// Samples closer than MinDistance to the last emitted one are dropped.
type SimulatedSource struct {
	Interval    time.Duration
	MinDistance float64 // meters
	StepM       float64 // mean step per tick, meters

	lat, lng float64
	last     *Sample
	rng      *rand.Rand
	now      func() time.Time
}

func NewSimulatedSource(lat, lng float64, interval time.Duration, minDistance float64, seed uint64) *SimulatedSource {
	return &SimulatedSource{
		Interval:    interval,
		MinDistance: minDistance,
		StepM:       12,
		lat:         lat,
		lng:         lng,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:         time.Now,
	}
}

// Next advances the walk one tick. ok is false when the new position is
// within MinDistance of the last emitted sample.
func (s *SimulatedSource) Next() (Sample, bool) {
	bearing := s.rng.Float64() * 2 * math.Pi
	step := s.StepM * 2 * s.rng.Float64()

	dLat := step * math.Cos(bearing) / earthRadiusM * 180 / math.Pi
	dLng := step * math.Sin(bearing) / (earthRadiusM * math.Cos(s.lat*math.Pi/180)) * 180 / math.Pi
	s.lat += dLat
	s.lng += dLng

	sample := Sample{Lat: s.lat, Lng: s.lng, Time: s.now()}
	if s.last != nil && Distance(s.last.Lat, s.last.Lng, sample.Lat, sample.Lng) < s.MinDistance {
		return Sample{}, false
	}
	s.last = &sample
	return sample, true
}

func (s *SimulatedSource) Run(ctx context.Context, out chan<- Sample) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sample, ok := s.Next()
			if !ok {
				continue
			}
			select {
			case out <- sample:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
