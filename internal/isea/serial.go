package isea

// serial linearizes a quad cell. The north pole is 1, the equatorial quads
// follow in order and the south pole is 10*hexes + 2.
//
// On the class II lattice i steps by three within a row of height cells, so
// i/3 is the position in the row.
func (l lattice) serial(quad, d, i int) uint64 {
	switch quad {
	case NorthPoleQuad:
		return 1
	case SouthPoleQuad:
		return uint64(1 + 10*l.hexes + 1)
	}

	q := int64(quad - 1)
	if l.odd {
		sn := int64(d) * l.height
		sn += int64(i) / 3
		sn += q * l.hexes
		sn += 2
		return uint64(sn)
	}
	return uint64(q*l.hexes + int64(l.sidelength)*int64(d) + int64(i) + 2)
}

// maxSerial is the serial number of the south pole, the largest in the grid.
func (l lattice) maxSerial() uint64 {
	return l.serial(SouthPoleQuad, 0, 0)
}
