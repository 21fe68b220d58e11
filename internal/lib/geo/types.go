package geo

// Point represents a geographic coordinate
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Valid reports whether the point's coordinates are within the usual
// lat/lng ranges. Distance math does not call this; malformed coordinates
// propagate as NaN results and callers guard upstream where they care.
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Equal reports whether two points have identical coordinates.
func (p Point) Equal(other Point) bool {
	return p.Latitude == other.Latitude && p.Longitude == other.Longitude
}
