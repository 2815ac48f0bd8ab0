package isea

import (
	"fmt"
	"math"

	"github.com/banshee-data/dggs/internal/units"
)

// FaceCount is the number of icosahedron faces; face ids run 1..FaceCount.
const FaceCount = 20

// GeoPoint is a geographic position in radians.
type GeoPoint struct {
	Lon float64
	Lat float64
}

// NewGeoPoint returns the point with longitude folded into (-pi, pi] and
// latitude clamped to [-pi/2, pi/2]. NaN coordinates are kept so that the
// transform can report them.
func NewGeoPoint(lon, lat float64) GeoPoint {
	return GeoPoint{Lon: units.WrapLongitude(lon), Lat: units.ClampLatitude(lat)}
}

// GeoPointFromDegrees is NewGeoPoint for coordinates in degrees.
func GeoPointFromDegrees(lonDeg, latDeg float64) GeoPoint {
	return NewGeoPoint(units.ToRadians(lonDeg, units.Degrees), units.ToRadians(latDeg, units.Degrees))
}

// Degrees returns the point's longitude and latitude in degrees.
func (p GeoPoint) Degrees() (lon, lat float64) {
	return units.FromRadians(p.Lon, units.Degrees), units.FromRadians(p.Lat, units.Degrees)
}

func (p GeoPoint) String() string {
	lon, lat := p.Degrees()
	return fmt.Sprintf("(%.6f, %.6f)", lon, lat)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p GeoPoint) IsFinite() bool {
	return !math.IsNaN(p.Lon) && !math.IsNaN(p.Lat) && !math.IsInf(p.Lon, 0) && !math.IsInf(p.Lat, 0)
}

// isDownTriangle reports whether face id points south in the planar layout.
func isDownTriangle(id int) bool {
	return ((id-1)/5)%2 == 1
}

// sphAzimuth is Snyder eq. 14: the azimuth of to as seen from from.
func sphAzimuth(from, to GeoPoint) float64 {
	return math.Atan2(
		math.Cos(to.Lat)*math.Sin(to.Lon-from.Lon),
		math.Cos(from.Lat)*math.Sin(to.Lat)-
			math.Sin(from.Lat)*math.Cos(to.Lat)*math.Cos(to.Lon-from.Lon),
	)
}

// greatCircleDistance is the central angle between two points.
func greatCircleDistance(a, b GeoPoint) float64 {
	return units.SafeAcos(math.Sin(a.Lat)*math.Sin(b.Lat) +
		math.Cos(a.Lat)*math.Cos(b.Lat)*math.Cos(b.Lon-a.Lon))
}
