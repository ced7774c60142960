package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/hipster/internal/places"
)

const (
	mapGridStep = 48
	// minRegionDelta keeps a single point or a straight east-west line from
	// collapsing the projection.
	minRegionDelta = 0.002
)

// MapView projects coordinates into a screen rectangle showing Region. The
// backdrop is a plain grid; there are no tiles.
type MapView struct {
	Rect   ButtonRect
	Region places.Region
}

// Fit centers the view on coords.
func (m *MapView) Fit(coords []places.Coord) {
	m.Region = places.Bounds(coords)
}

// Project returns the screen position of c. The region is scaled uniformly
// so that it fits inside Rect.
func (m *MapView) Project(c places.Coord) (x, y float64) {
	latD := math.Max(m.Region.LatDelta, minRegionDelta)
	lngD := math.Max(m.Region.LngDelta, minRegionDelta)
	scale := math.Min(m.Rect.W/lngD, m.Rect.H/latD)
	cx := m.Rect.X + m.Rect.W/2
	cy := m.Rect.Y + m.Rect.H/2
	return cx + (c.Lng-m.Region.Center.Lng)*scale, cy - (c.Lat-m.Region.Center.Lat)*scale
}

// DrawBackground fills the map area and draws the grid.
func (m *MapView) DrawBackground(dst *ebiten.Image) {
	r := m.Rect
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), ColorMapTile, false)
	for x := r.X + mapGridStep; x < r.X+r.W; x += mapGridStep {
		vector.StrokeLine(dst, float32(x), float32(r.Y), float32(x), float32(r.Y+r.H), 1, ColorSurface, false)
	}
	for y := r.Y + mapGridStep; y < r.Y+r.H; y += mapGridStep {
		vector.StrokeLine(dst, float32(r.X), float32(y), float32(r.X+r.W), float32(y), 1, ColorSurface, false)
	}
}

// DrawPolyline draws coords as a connected line.
func (m *MapView) DrawPolyline(dst *ebiten.Image, coords []places.Coord, width float32, clr color.Color) {
	for i := 1; i < len(coords); i++ {
		x0, y0 := m.Project(coords[i-1])
		x1, y1 := m.Project(coords[i])
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
	}
}

// DrawMarker draws a pin head at c.
func (m *MapView) DrawMarker(dst *ebiten.Image, c places.Coord, clr color.Color) {
	x, y := m.Project(c)
	vector.DrawFilledCircle(dst, float32(x), float32(y), 7, clr, true)
	vector.DrawFilledCircle(dst, float32(x), float32(y), 3, ColorBackground, true)
}
