package isea

import (
	"fmt"
	"math"
)

const (
	// ISEAScale is sqrt(5)/pi, the factor that maps a face of the unit-radius
	// projection onto a triangle with unit edge length.
	ISEAScale = 0.8301572857837594396028083

	// StdPoleLat and StdPoleLon place the standard ISEA orientation so that
	// only one icosahedron vertex falls on land.
	StdPoleLat = 1.01722196792335072101
	StdPoleLon = 0.19634954084936207740

	// vertexLat is the latitude of the ten non-polar vertices (26.565051177 deg).
	vertexLat = 0.46364760899944494524
	// eRad and fRad are the latitudes of the polar and equatorial face
	// centers (52.62263186 and 10.81231696 deg).
	eRad = 0.91843818702186776133
	fRad = 0.18871053072122403508

	// tableG is R tan(g) sin(60), tableH is 0.25 R tan(g).
	tableG = 0.6615845383
	tableH = 0.1909830056
	// rPrime is the radius of the sphere scaled to the truncated icosahedron.
	rPrime = 0.91038328153090290025

	// faceTolerance widens every face membership test.
	faceTolerance = 0.000005

	// centroidOffset is tan(30 deg)/4; twice it lifts the face origin from the
	// centroid to the base of the unit triangle.
	centroidOffset = 0.14433756729740644112

	// sin60 is the y offset applied to down faces in the quad frame.
	sin60 = 0.86602540378443864672

	dblEpsilon = 2.220446049250313e-16
)

var (
	degToRad = math.Pi / 180.0

	deg30  = 30 * degToRad
	deg36  = 36 * degToRad
	deg72  = 72 * degToRad
	deg108 = 108 * degToRad
	deg120 = 120 * degToRad
	deg144 = 144 * degToRad
)

type polyhedron int

const (
	polyHexagon polyhedron = iota
	polyPentagon
	polyTetrahedron
	polyCube
	polyOctahedron
	polyDodecahedron
	polyIcosahedron
)

// snyderConstants are the per-polyhedron values from Snyder (1992), table 1,
// in degrees. g is the spherical distance from face center to vertex, G the
// spherical angle between the center-vertex radius and the adjacent edge, and
// theta the matching plane angle. The remaining columns are the maximum
// angular and areal distortion figures and are carried for reference only.
type snyderConstants struct {
	g, G, theta               float64
	eaW, eaA, eaB, gW, gA, gB float64
}

var snyderTable = [...]snyderConstants{
	polyHexagon:      {23.80018260, 62.15458023, 60.0, 3.75, 1.033, 0.968, 5.09, 1.195, 1.0},
	polyPentagon:     {20.07675127, 55.69063953, 54.0, 2.65, 1.030, 0.983, 3.59, 1.141, 1.027},
	polyTetrahedron:  {},
	polyCube:         {},
	polyOctahedron:   {},
	polyDodecahedron: {},
	polyIcosahedron:  {37.37736814, 36.0, 30.0, 17.27, 1.163, 0.860, 13.14, 1.584, 1.0},
}

func lookupSnyder(p polyhedron) (snyderConstants, error) {
	if p < 0 || int(p) >= len(snyderTable) {
		return snyderConstants{}, fmt.Errorf("%w: polyhedron index %d out of range", ErrConfiguration, p)
	}
	c := snyderTable[p]
	if c.g == 0 {
		return snyderConstants{}, fmt.Errorf("%w: no Snyder constants for polyhedron %d", ErrConfiguration, p)
	}
	return c, nil
}

// faceGeometry holds the icosahedron constants in radians together with the
// derived terms the face locator reuses for every point.
type faceGeometry struct {
	g, G, theta float64
	tanG        float64
	cotTheta    float64
	cosG        float64
	sinG, cosg  float64
}

func newFaceGeometry(p polyhedron) (faceGeometry, error) {
	c, err := lookupSnyder(p)
	if err != nil {
		return faceGeometry{}, err
	}
	fg := faceGeometry{
		g:     c.g * degToRad,
		G:     c.G * degToRad,
		theta: c.theta * degToRad,
	}
	fg.tanG = math.Tan(fg.g)
	fg.cotTheta = 1.0 / math.Tan(fg.theta)
	fg.cosG = math.Cos(fg.G)
	fg.sinG = math.Sin(fg.G)
	fg.cosg = math.Cos(fg.g)
	return fg, nil
}

// icosahedron is the only polyhedron the grid supports.
var icosahedron = mustFaceGeometry(polyIcosahedron)

func mustFaceGeometry(p polyhedron) faceGeometry {
	fg, err := newFaceGeometry(p)
	if err != nil {
		panic(err)
	}
	return fg
}

// vertices are the 12 icosahedron vertices in the unrotated frame.
var vertices = [12]GeoPoint{
	{Lon: 0.0, Lat: math.Pi / 2},
	{Lon: math.Pi, Lat: vertexLat},
	{Lon: -deg108, Lat: vertexLat},
	{Lon: -deg36, Lat: vertexLat},
	{Lon: deg36, Lat: vertexLat},
	{Lon: deg108, Lat: vertexLat},
	{Lon: -deg144, Lat: -vertexLat},
	{Lon: -deg72, Lat: -vertexLat},
	{Lon: 0.0, Lat: -vertexLat},
	{Lon: deg72, Lat: -vertexLat},
	{Lon: deg144, Lat: -vertexLat},
	{Lon: 0.0, Lat: -math.Pi / 2},
}

// faceVertex names, for each face, the vertex its azimuths are measured from.
var faceVertex = [FaceCount]int{0, 0, 0, 0, 0, 6, 7, 8, 9, 10, 2, 3, 4, 5, 1, 11, 11, 11, 11, 11}

// faceCenters are the 20 face centers; face id n is at index n-1.
var faceCenters = [FaceCount]GeoPoint{
	{Lon: -deg144, Lat: eRad},
	{Lon: -deg72, Lat: eRad},
	{Lon: 0.0, Lat: eRad},
	{Lon: deg72, Lat: eRad},
	{Lon: deg144, Lat: eRad},
	{Lon: -deg144, Lat: fRad},
	{Lon: -deg72, Lat: fRad},
	{Lon: 0.0, Lat: fRad},
	{Lon: deg72, Lat: fRad},
	{Lon: deg144, Lat: fRad},
	{Lon: -deg108, Lat: -fRad},
	{Lon: -deg36, Lat: -fRad},
	{Lon: deg36, Lat: -fRad},
	{Lon: deg108, Lat: -fRad},
	{Lon: math.Pi, Lat: -fRad},
	{Lon: -deg108, Lat: -eRad},
	{Lon: -deg36, Lat: -eRad},
	{Lon: deg36, Lat: -eRad},
	{Lon: deg108, Lat: -eRad},
	{Lon: math.Pi, Lat: -eRad},
}

// azimuthAdjust is the azimuth from each face center to its reference vertex.
var azimuthAdjust = func() [FaceCount]float64 {
	var adj [FaceCount]float64
	for i := range adj {
		v := vertices[faceVertex[i]]
		c := faceCenters[i]
		adj[i] = sphAzimuth(c, v)
	}
	return adj
}()
