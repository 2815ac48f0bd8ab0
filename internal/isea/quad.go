package isea

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// NorthPoleQuad and SouthPoleQuad are the two single-cell polar quads.
	NorthPoleQuad = 0
	SouthPoleQuad = 11
	// QuadCount is the number of quads, polar ones included.
	QuadCount = 12
)

// roundedPow is int(base^exp + 0.5). The +0.5 absorbs libm error in pow;
// every power used for lattice sizing is an exact integer below 2^53, which
// MaxResolution guarantees.
func roundedPow(base, exp float64) int64 {
	return int64(math.Pow(base, exp) + 0.5)
}

// lattice holds the resolution dependent sizes of the quad lattice.
type lattice struct {
	aperture   int
	resolution int

	// odd is the aperture 3, odd resolution class II lattice.
	odd bool

	// sidelength is the number of cells along a quad edge. It is not an
	// integer for the odd lattice.
	sidelength float64
	maxcoord   int
	hexwidth   float64

	hexes  int64 // cells per quad
	height int64 // odd lattice serial stride
}

func newLattice(aperture, resolution int) lattice {
	l := lattice{
		aperture:   aperture,
		resolution: resolution,
		odd:        aperture == 3 && resolution%2 != 0,
		hexes:      roundedPow(float64(aperture), float64(resolution)),
	}
	if l.odd {
		// The class II quad is 3^((res+1)/2) cells across in (d, i) and each
		// row holds every third i.
		l.maxcoord = int(roundedPow(3, float64((resolution+1)/2)))
		l.sidelength = float64(l.maxcoord) / 2.0
		// apex to base is cos(30 deg)
		l.hexwidth = math.Cos(math.Pi/6.0) / l.sidelength
		l.height = roundedPow(3, float64((resolution-1)/2))
		return l
	}
	l.sidelength = float64(roundedPow(float64(aperture), float64(resolution)/2.0))
	l.hexwidth = 1.0 / l.sidelength
	l.maxcoord = int(l.sidelength)
	return l
}

// address bins a point in quad coordinates and resolves cells that sit on a
// boundary owned by another quad. It returns the owning quad and the cell's
// (d, i) coordinates there.
func (l lattice) address(quad int, pt r2.Vec) (int, int, int) {
	if l.odd {
		h := HexBin(l.hexwidth, pt.X, pt.Y).Cube()
		return resolveOdd(quad, h.X-h.Z, h.X+2*h.Y, l.maxcoord)
	}
	v := Rotate(pt, -30.0)
	h := HexBin(l.hexwidth, v.X, v.Y).Cube()
	quad, h = resolveCube(quad, h, l.maxcoord)
	return quad, h.X, -h.Z
}

// boundaryRule moves a cell that lies on the far edge of its quad into the
// quad that owns that edge. Rules for quads 1..5 and 6..10 are disjoint and
// each transition is listed once.
//
// In (d, i) = (X, -Z) every rule sends the edge d == s or i == s of quad q
// onto the d == 0 or i == 0 edge of the neighbour, so a remapped cell never
// matches a rule again.
type boundaryRule struct {
	name    string
	matches func(quad int, h Hex, s int) bool
	remap   func(quad int, h Hex, s int) (int, Hex)
}

func northern(quad int) bool { return quad >= 1 && quad <= 5 }
func southern(quad int) bool { return quad >= 6 && quad <= 10 }

// nextInRing steps to the next quad east within the same ring of five.
func nextInRing(quad int) int {
	if quad <= 5 {
		if quad == 5 {
			return 1
		}
		return quad + 1
	}
	if quad == 10 {
		return 6
	}
	return quad + 1
}

// prevInRing steps to the next quad west within the same ring of five.
func prevInRing(quad int) int {
	if quad <= 5 {
		if quad == 1 {
			return 5
		}
		return quad - 1
	}
	if quad == 6 {
		return 10
	}
	return quad - 1
}

// northOf is the northern quad sharing the upper right edge of southern quad q.
func northOf(quad int) int {
	return (quad-5)%5 + 1
}

// southOf is the southern quad whose upper right edge is the lower left edge
// of northern quad q. It inverts northOf.
func southOf(quad int) int {
	if quad == 1 {
		return 10
	}
	return quad + 4
}

// cubeRules is checked in order; the first match applies. Pole rules come
// first so that the shared corner goes to the pole.
var cubeRules = []boundaryRule{
	{
		name: "north pole",
		matches: func(q int, h Hex, s int) bool {
			return northern(q) && h.X == 0 && h.Z == -s
		},
		remap: func(q int, h Hex, s int) (int, Hex) {
			return NorthPoleQuad, Hex{Iso: true}
		},
	},
	{
		name: "north upper right",
		matches: func(q int, h Hex, s int) bool {
			return northern(q) && h.Z == -s
		},
		remap: func(q int, h Hex, s int) (int, Hex) {
			return nextInRing(q), Hex{X: 0, Y: s - h.X, Z: h.X - s, Iso: true}
		},
	},
	{
		name: "north lower right",
		matches: func(q int, h Hex, s int) bool {
			return northern(q) && h.X == s
		},
		remap: func(q int, h Hex, s int) (int, Hex) {
			return q + 5, Hex{X: 0, Y: -h.Z, Z: h.Z, Iso: true}
		},
	},
	{
		name: "south pole",
		matches: func(q int, h Hex, s int) bool {
			return southern(q) && h.Z == 0 && h.X == s
		},
		remap: func(q int, h Hex, s int) (int, Hex) {
			return SouthPoleQuad, Hex{Iso: true}
		},
	},
	{
		name: "south lower right",
		matches: func(q int, h Hex, s int) bool {
			return southern(q) && h.X == s
		},
		remap: func(q int, h Hex, s int) (int, Hex) {
			x := s + h.Z
			return nextInRing(q), Hex{X: x, Y: -x, Z: 0, Iso: true}
		},
	},
	{
		name: "south upper right",
		matches: func(q int, h Hex, s int) bool {
			return southern(q) && h.Z == -s
		},
		remap: func(q int, h Hex, s int) (int, Hex) {
			return northOf(q), Hex{X: h.X, Y: -h.X, Z: 0, Iso: true}
		},
	},
}

func resolveCube(quad int, h Hex, s int) (int, Hex) {
	for _, r := range cubeRules {
		if r.matches(quad, h, s) {
			return r.remap(quad, h, s)
		}
	}
	return quad, h
}

// resolveOdd is the boundary resolution for the class II lattice, which is
// expressed directly in (d, i).
//
// Class II cells either sit on a quad edge or touch it from outside, and a
// point that a face accepts within faceTolerance can bin to a cell with d or
// i of -1 or maxcoord+1. Each case below moves the cell across one edge into
// the neighbour's frame. Equatorial edges are translations; the others turn
// 60 degrees about the polar corner the two quads share. A cell next to a
// corner may cross two edges, and three crossings reach every cell that touches
// the quad.
func resolveOdd(quad, d, i, maxcoord int) (int, int, int) {
	m := maxcoord
	for step := 0; step <= 3; step++ {
		switch {
		case northern(quad):
			switch {
			case d == 0 && i == m:
				return NorthPoleQuad, 0, 0
			case i >= m:
				quad, d, i = nextInRing(quad), i-m, i-d
			case d >= m:
				quad, d, i = quad+5, d-m, i
			case d < 0:
				quad, d, i = prevInRing(quad), m+d-i, m+d
			case i < 0:
				quad, d, i = southOf(quad), d, i+m
			default:
				return quad, d, i
			}
		case southern(quad):
			switch {
			case i == 0 && d == m:
				return SouthPoleQuad, 0, 0
			case d >= m:
				quad, d, i = nextInRing(quad), d-i, d-m
			case i >= m:
				quad, d, i = northOf(quad), d, i-m
			case d < 0:
				quad, d, i = quad-5, d+m, i
			case i < 0:
				quad, d, i = prevInRing(quad), m+i, m+i-d
			default:
				return quad, d, i
			}
		default:
			return quad, d, i
		}
	}
	return quad, d, i
}
