package places

import (
	"context"
	"fmt"
	"math"
)

// RegionPadding is added to both deltas of a route's bounding region.
const RegionPadding = 0.05

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route fetches the driving route from one point to another.
func (c *Client) Route(ctx context.Context, from, to Coord) (*Route, error) {
	path := fmt.Sprintf("%s%s%f,%f;%f,%f?overview=full&geometries=geojson",
		c.routeURL, pathRoute, from.Lng, from.Lat, to.Lng, to.Lat)

	var resp routeResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	if len(resp.Routes) == 0 {
		return nil, ErrNoRoute
	}

	r := resp.Routes[0]
	route := &Route{DistanceM: r.Distance, DurationS: r.Duration}
	for _, pt := range r.Geometry.Coordinates {
		// GeoJSON order is [lng, lat].
		if len(pt) < 2 {
			continue
		}
		route.Coords = append(route.Coords, Coord{Lat: pt[1], Lng: pt[0]})
	}
	if len(route.Coords) == 0 {
		return nil, ErrNoRoute
	}
	return route, nil
}

// Region is a map viewport: a center and the span it covers.
type Region struct {
	Center   Coord
	LatDelta float64
	LngDelta float64
}

// Bounds returns the padded region enclosing coords.
func Bounds(coords []Coord) Region {
	if len(coords) == 0 {
		return Region{}
	}
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLng, maxLng := math.Inf(1), math.Inf(-1)
	for _, c := range coords {
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
		minLng = math.Min(minLng, c.Lng)
		maxLng = math.Max(maxLng, c.Lng)
	}
	return Region{
		Center:   Coord{Lat: (minLat + maxLat) / 2, Lng: (minLng + maxLng) / 2},
		LatDelta: maxLat - minLat + RegionPadding,
		LngDelta: maxLng - minLng + RegionPadding,
	}
}
