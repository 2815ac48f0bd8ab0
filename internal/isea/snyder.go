package isea

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/dggs/internal/units"
)

// LocateFace finds the face containing p (already in the grid frame) and
// returns its id with p's position in that face's equal-area plane, for a
// sphere of unit radius.
//
// Faces are scanned in id order and the first match wins, so a point on a
// shared edge goes to the lower id.
func LocateFace(p GeoPoint) (int, r2.Vec, error) {
	for id := 1; id <= FaceCount; id++ {
		if pt, ok := onFace(id, p, faceTolerance); ok {
			return id, pt, nil
		}
	}
	return 0, r2.Vec{}, &GeometryError{Lon: p.Lon, Lat: p.Lat}
}

// onFace projects p with the equations of face id and reports whether p is
// on that face, allowing tol radians past its edges.
func onFace(id int, p GeoPoint, tol float64) (r2.Vec, bool) {
	fg := icosahedron
	// NaN distances fail both tests below and skip every face.
	z := greatCircleDistance(faceCenters[id-1], p)
	if !(z <= fg.g+tol) {
		return r2.Vec{}, false
	}

	az, shifts := faceAzimuth(id, p)

	// eq 9
	q := math.Atan2(fg.tanG, math.Cos(az)+math.Sin(az)*fg.cotTheta)
	if !(z <= q+tol) {
		return r2.Vec{}, false
	}
	return fg.planar(az, q, z, shifts), true
}

// faceAzimuth is the azimuth from the face center to p measured from the
// face's reference vertex, reduced into [0, 120 deg]. shifts counts the
// 120 degree steps removed.
func faceAzimuth(id int, p GeoPoint) (az float64, shifts int) {
	az = sphAzimuth(faceCenters[id-1], p) - azimuthAdjust[id-1]
	if az < 0 {
		az += 2 * math.Pi
	}
	for az < 0 {
		az += deg120
		shifts--
	}
	for az > deg120+dblEpsilon {
		az -= deg120
		shifts++
	}
	return az, shifts
}

// planar applies Snyder eqs 5-8 and 10-12 and converts the plane polar
// coordinates to rectangular ones.
func (fg faceGeometry) planar(az, q, z float64, shifts int) r2.Vec {
	// eq 6
	h := units.SafeAcos(math.Sin(az)*fg.sinG*fg.cosg - math.Cos(az)*fg.cosG)
	// eq 7, in units of R^2
	ag := az + fg.G + h - math.Pi
	// eq 8
	azp := math.Atan2(2.0*ag, rPrime*rPrime*fg.tanG*fg.tanG-2.0*ag*fg.cotTheta)
	// eq 10
	dp := rPrime * fg.tanG / (math.Cos(azp) + math.Sin(azp)*fg.cotTheta)
	// eq 11
	f := dp / (2.0 * rPrime * math.Sin(q/2.0))
	// eq 12
	rho := 2.0 * rPrime * f * math.Sin(z/2.0)

	azp += deg120 * float64(shifts)
	return r2.Vec{X: rho * math.Sin(azp), Y: rho * math.Cos(azp)}
}
