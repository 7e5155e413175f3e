package domain

// GeoPoint is a single geographic coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Region is a closed simple polygon describing a user-drawn search area.
// Exactly 4 input corners are treated as a rectangle: corners[0] and
// corners[2] give the latitude bounds, corners[0] and corners[1] the
// longitude bounds. More than 4 corners form an arbitrary polygon whose
// ring is closed automatically when the first and last vertex differ.
type Region struct {
	ring        []GeoPoint
	isRectangle bool
}

// RegionFromCoordinates normalizes raw drawn coordinates into a Region.
func RegionFromCoordinates(coords []GeoPoint) (Region, error) {
	if len(coords) < 4 {
		return Region{}, ErrInvalidRegion
	}

	if len(coords) == 4 {
		south, north := minMax(coords[0].Latitude, coords[2].Latitude)
		west, east := minMax(coords[0].Longitude, coords[1].Longitude)
		return Region{
			ring: []GeoPoint{
				{Latitude: south, Longitude: west},
				{Latitude: south, Longitude: east},
				{Latitude: north, Longitude: east},
				{Latitude: north, Longitude: west},
				{Latitude: south, Longitude: west},
			},
			isRectangle: true,
		}, nil
	}

	ring := make([]GeoPoint, len(coords), len(coords)+1)
	copy(ring, coords)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return Region{ring: ring}, nil
}

// Ring returns the closed vertex ring (first vertex == last vertex).
func (r Region) Ring() []GeoPoint {
	return r.ring
}

// IsRectangle reports whether the region came from the 4-corner fast path.
func (r Region) IsRectangle() bool {
	return r.isRectangle
}

// Contains reports whether p lies inside the region. Points exactly on
// an edge or vertex are treated as contained (boundary-inclusive).
func (r Region) Contains(p GeoPoint) bool {
	if len(r.ring) < 4 {
		return false
	}

	inside := false
	for i := 0; i < len(r.ring)-1; i++ {
		a, b := r.ring[i], r.ring[i+1]
		if onSegment(p, a, b) {
			return true
		}
		intersects := (a.Latitude > p.Latitude) != (b.Latitude > p.Latitude) &&
			p.Longitude < (b.Longitude-a.Longitude)*(p.Latitude-a.Latitude)/(b.Latitude-a.Latitude)+a.Longitude
		if intersects {
			inside = !inside
		}
	}
	return inside
}

func onSegment(p, a, b GeoPoint) bool {
	cross := (b.Longitude-a.Longitude)*(p.Latitude-a.Latitude) -
		(b.Latitude-a.Latitude)*(p.Longitude-a.Longitude)
	if cross != 0 {
		return false
	}
	withinLat := (a.Latitude <= p.Latitude && p.Latitude <= b.Latitude) ||
		(b.Latitude <= p.Latitude && p.Latitude <= a.Latitude)
	withinLon := (a.Longitude <= p.Longitude && p.Longitude <= b.Longitude) ||
		(b.Longitude <= p.Longitude && p.Longitude <= a.Longitude)
	return withinLat && withinLon
}

func minMax(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
