package isea

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerial(t *testing.T) {
	t.Parallel()

	even := newLattice(3, 4)
	odd := newLattice(3, 3)

	tests := []struct {
		name       string
		l          lattice
		quad, d, i int
		want       uint64
	}{
		{"north pole", even, NorthPoleQuad, 0, 0, 1},
		{"south pole", even, SouthPoleQuad, 0, 0, 812},
		{"first equatorial", even, 1, 0, 0, 2},
		{"last of quad 1", even, 1, 8, 8, 82},
		{"first of quad 2", even, 2, 0, 0, 83},
		{"last equatorial", even, 10, 8, 8, 811},
		{"odd north pole", odd, NorthPoleQuad, 0, 0, 1},
		{"odd south pole", odd, SouthPoleQuad, 0, 0, 272},
		{"odd first", odd, 1, 0, 0, 2},
		{"odd row step", odd, 1, 1, 2, 5},
		{"odd last of quad 1", odd, 1, 8, 7, 28},
		{"odd last equatorial", odd, 10, 8, 7, 271},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.l.serial(tt.quad, tt.d, tt.i))
		})
	}
}

func TestMaxSerial(t *testing.T) {
	t.Parallel()

	for res := 0; res <= 6; res++ {
		for _, ap := range []int{3, 4} {
			l := newLattice(ap, res)
			assert.Equal(t, uint64(10*l.hexes+2), l.maxSerial(), "aperture %d resolution %d", ap, res)
		}
	}
}
