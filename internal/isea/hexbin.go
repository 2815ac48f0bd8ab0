package isea

import "math"

// Hex is a cell of the hexagonal lattice. With Iso set it is in cube form and
// X+Y+Z == 0. Without Iso it is in offset form: X is the column, Y the row
// with y positive down, and Z is unused.
type Hex struct {
	X, Y, Z int
	Iso     bool
}

// offsetShift is ceil(x/2), written with truncating division the way the
// offset row stagger expects: (x+1)/2 for x >= 0 and x/2 below zero.
func offsetShift(x int) int {
	if x >= 0 {
		return (x + 1) / 2
	}
	return x / 2
}

// Offset returns h in offset form.
func (h Hex) Offset() Hex {
	if !h.Iso {
		return h
	}
	h.Y = -h.Y - offsetShift(h.X)
	h.Z = 0
	h.Iso = false
	return h
}

// Cube returns h in cube form.
func (h Hex) Cube() Hex {
	if h.Iso {
		return h
	}
	h.Y = -h.Y - offsetShift(h.X)
	h.Z = -h.X - h.Y
	h.Iso = true
	return h
}

// HexBin snaps the planar point (x, y) to the nearest node of a lattice whose
// cells are width apart and returns it in offset form.
//
// Each cube axis is rounded on its own; when the three rounded values do not
// sum to zero the axis with the largest rounding residual absorbs the
// difference, checking x, then y, then z on ties.
func HexBin(width, x, y float64) Hex {
	x = x / math.Cos(deg30)
	y = y - x/2.0

	x /= width
	y /= width
	z := -x - y

	rx := math.Floor(x + 0.5)
	ry := math.Floor(y + 0.5)
	rz := math.Floor(z + 0.5)
	ix, iy, iz := int(rx), int(ry), int(rz)

	if s := ix + iy + iz; s != 0 {
		dx := math.Abs(rx - x)
		dy := math.Abs(ry - y)
		dz := math.Abs(rz - z)

		switch {
		case dx >= dy && dx >= dz:
			ix -= s
		case dy >= dx && dy >= dz:
			iy -= s
		default:
			iz -= s
		}
	}

	return Hex{X: ix, Y: iy, Z: iz, Iso: true}.Offset()
}
