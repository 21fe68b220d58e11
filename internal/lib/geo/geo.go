package geo

import (
	"errors"
	"math"

	"github.com/twpayne/go-polyline"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// DefaultNearRouteThresholdKm is the detour tolerance used when deciding
// whether a camera sits on a straight-line route.
const DefaultNearRouteThresholdKm = 0.5

// DistanceKm calculates the great-circle distance between two points in
// kilometers using the Haversine formula. The result is symmetric and zero
// for coincident points. NaN or infinite inputs propagate into the result.
func DistanceKm(p1, p2 Point) float64 {
	if p1.Latitude == p2.Latitude && p1.Longitude == p2.Longitude {
		return 0
	}

	lat1 := p1.Latitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	dlat := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dlon := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// IsNearRoute reports whether a point lies on the straight-line route from
// start to end within thresholdKm. The test compares the detour through the
// point against the direct distance: |d1 + d2 - routeLen| < threshold. This
// is a cheap ellipse-like approximation, permissive near the endpoints and
// stricter at the route midpoint. When start equals end it degenerates to a
// radius check: d1 + d2 < threshold.
func IsNearRoute(point, routeStart, routeEnd Point, thresholdKm float64) bool {
	d1 := DistanceKm(point, routeStart)
	d2 := DistanceKm(point, routeEnd)
	routeLen := DistanceKm(routeStart, routeEnd)

	return math.Abs(d1+d2-routeLen) < thresholdKm
}

// PathDistanceKm sums the segment distances of a path. Paths with fewer
// than two points have zero length.
func PathDistanceKm(path []Point) float64 {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		total += DistanceKm(path[i], path[i+1])
	}
	return total
}

// Midpoint returns the linear midpoint of two points. Linear interpolation
// is adequate for the city-scale segments this server works with.
func Midpoint(p1, p2 Point) Point {
	return Point{
		Latitude:  (p1.Latitude + p2.Latitude) / 2,
		Longitude: (p1.Longitude + p2.Longitude) / 2,
	}
}

// Offset returns the point displaced by the given lat/lng deltas in degrees.
func Offset(p Point, latDelta, lngDelta float64) Point {
	return Point{
		Latitude:  p.Latitude + latDelta,
		Longitude: p.Longitude + lngDelta,
	}
}

// DecodePath decodes a Google encoded polyline string into a point sequence.
func DecodePath(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, errors.New("failed to decode polyline: " + err.Error())
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{
			Latitude:  coord[0],
			Longitude: coord[1],
		}
		if !points[i].Valid() {
			return nil, errors.New("decoded polyline contains invalid coordinates")
		}
	}

	return points, nil
}
