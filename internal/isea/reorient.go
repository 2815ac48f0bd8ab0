package isea

import (
	"math"

	"github.com/banshee-data/dggs/internal/units"
)

// Pole orients the icosahedron relative to the geographic frame. Lat and Lon
// give the position that becomes vertex 0; Azimuth rotates the grid about it.
// All values are radians.
type Pole struct {
	Lat     float64
	Lon     float64
	Azimuth float64
}

// StandardPole is the ISEA default orientation.
func StandardPole() Pole {
	return Pole{Lat: StdPoleLat, Lon: StdPoleLon}
}

// NorthPole puts vertex 0 on the geographic north pole, so the grid frame
// equals the geographic frame.
func NorthPole() Pole {
	return Pole{Lat: math.Pi / 2}
}

// Reorient returns pt in the pole's frame.
//
// The rotation is Snyder's "old pole in new coordinates" transform (Map
// Projections: A Working Manual, p. 31) with the pole longitude shifted by pi,
// followed by the correction that puts the shared edge of faces 1 and 2 on
// the vertex 0 to vertex 1 line.
func (p Pole) Reorient(pt GeoPoint) GeoPoint {
	np := GeoPoint{Lat: p.Lat, Lon: p.Lon + math.Pi}
	out := rotatePole(np, pt)

	out.Lon -= math.Pi - p.Azimuth + p.Lon
	out.Lon += math.Pi
	out.Lon = units.WrapLongitude(out.Lon)
	return out
}

// rotatePole expresses pt in the frame whose north pole sits at np.
func rotatePole(np, pt GeoPoint) GeoPoint {
	phi, lambda := pt.Lat, pt.Lon
	alpha, beta := np.Lat, np.Lon

	cosPhi := math.Cos(phi)
	sinAlpha := math.Sin(alpha)
	dLambda := lambda - beta

	// MPAWM 5-7
	sinPhiP := sinAlpha*math.Sin(phi) - math.Cos(alpha)*cosPhi*math.Cos(dLambda)

	// MPAWM 5-8b, two-argument form to land in the right quadrant
	lpb := math.Atan2(cosPhi*math.Sin(dLambda),
		sinAlpha*cosPhi*math.Cos(dLambda)+math.Cos(alpha)*math.Sin(phi))

	return GeoPoint{
		Lon: units.WrapLongitude(lpb + beta),
		Lat: units.SafeAsin(sinPhiP),
	}
}
