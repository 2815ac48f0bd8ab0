package isea

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rotate turns pt counter-clockwise about the origin by degrees.
// Rotations by whole turns return pt unchanged.
func Rotate(pt r2.Vec, degrees float64) r2.Vec {
	rad := -degrees * degToRad
	for rad >= 2*math.Pi {
		rad -= 2 * math.Pi
	}
	for rad <= -2*math.Pi {
		rad += 2 * math.Pi
	}
	sin, cos := math.Sin(rad), math.Cos(rad)
	return r2.Vec{
		X: pt.X*cos + pt.Y*sin,
		Y: -pt.X*sin + pt.Y*cos,
	}
}

// planeCenter is the position of face id's center in the global layout of
// four rows of five triangles, for a unit sphere.
func planeCenter(id int) r2.Vec {
	t := (id - 1) % FaceCount

	var c r2.Vec
	c.X = tableG * float64((t%5)-2) * 2.0
	if t > 9 {
		c.X += tableG
	}
	switch t / 5 {
	case 0:
		c.Y = 5.0 * tableH
	case 1:
		c.Y = tableH
	case 2:
		c.Y = -tableH
	case 3:
		c.Y = -5.0 * tableH
	}
	return r2.Scale(rPrime, c)
}

// placeOnPlane moves a face-local point into the global triangle layout.
func placeOnPlane(id int, pt r2.Vec, radius float64) r2.Vec {
	if isDownTriangle(id) {
		pt = Rotate(pt, 180.0)
	}
	return r2.Add(pt, r2.Scale(radius, planeCenter(id)))
}

// toUnitTriangle rescales a face-local point to the standard ISEA triangle
// with unit edge and its base on the x axis.
func toUnitTriangle(pt r2.Vec, radius float64) r2.Vec {
	pt.X = pt.X / radius * ISEAScale
	pt.Y = pt.Y / radius * ISEAScale
	pt.X += 0.5
	pt.Y += 2.0 * centroidOffset
	return pt
}

// QuadForFace returns the quad that holds face id in the diamond layout.
func QuadForFace(id int) int {
	return ((id - 1) % 5) + ((id-1)/10)*5 + 1
}

// placeInQuad converts a unit-triangle point on face id to the coordinates
// of the diamond quad containing that face.
func placeInQuad(id int, pt r2.Vec) (int, r2.Vec) {
	down := isDownTriangle(id)
	if down {
		pt = Rotate(pt, 240.0)
		pt.X += 0.5
		pt.Y += sin60
	} else {
		pt = Rotate(pt, 60.0)
	}
	return QuadForFace(id), pt
}
