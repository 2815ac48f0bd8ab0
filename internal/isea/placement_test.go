package isea

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func vecClose(a, b r2.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol)
}

func TestRotateWholeTurnsAreIdentity(t *testing.T) {
	t.Parallel()

	pts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -0.25, Y: 0.75}, {X: 12.5, Y: -3}}
	for _, pt := range pts {
		for _, deg := range []float64{0, 360, -360, 720} {
			got := Rotate(pt, deg)
			assert.True(t, vecClose(pt, got, 1e-9), "Rotate(%v, %v) = %v", pt, deg, got)
		}
	}
}

func TestRotateDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		deg  float64
		want r2.Vec
	}{
		{"quarter turn", 90, r2.Vec{X: 0, Y: 1}},
		{"half turn", 180, r2.Vec{X: -1, Y: 0}},
		{"negative quarter", -90, r2.Vec{X: 0, Y: -1}},
		{"sixty", 60, r2.Vec{X: 0.5, Y: sin60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Rotate(r2.Vec{X: 1}, tt.deg)
			assert.True(t, vecClose(tt.want, got, 1e-12), "got %v want %v", got, tt.want)
		})
	}
}

func TestQuadForFace(t *testing.T) {
	t.Parallel()

	want := [FaceCount]int{
		1, 2, 3, 4, 5,
		1, 2, 3, 4, 5,
		6, 7, 8, 9, 10,
		6, 7, 8, 9, 10,
	}
	for id := 1; id <= FaceCount; id++ {
		assert.Equal(t, want[id-1], QuadForFace(id), "face %d", id)
	}
}

func TestIsDownTriangle(t *testing.T) {
	t.Parallel()

	for id := 1; id <= FaceCount; id++ {
		want := (id >= 6 && id <= 10) || id >= 16
		assert.Equal(t, want, isDownTriangle(id), "face %d", id)
	}
}

func TestPlaneCenterLayout(t *testing.T) {
	t.Parallel()

	// Rows of five, the lower two shifted half a triangle east.
	for id := 1; id <= FaceCount; id++ {
		c := planeCenter(id)
		row := (id - 1) / 5
		col := (id - 1) % 5

		wantX := rPrime * tableG * float64(col-2) * 2
		if row >= 2 {
			wantX += rPrime * tableG
		}
		assert.InDelta(t, wantX, c.X, 1e-12, "face %d x", id)

		wantY := map[int]float64{0: 5 * tableH, 1: tableH, 2: -tableH, 3: -5 * tableH}[row] * rPrime
		assert.InDelta(t, wantY, c.Y, 1e-12, "face %d y", id)
	}
}

func TestToUnitTriangleCentroid(t *testing.T) {
	t.Parallel()

	// A face centre lands on the centroid of the unit triangle.
	for _, radius := range []float64{1, ISEAScale, 6371} {
		got := toUnitTriangle(r2.Vec{}, radius)
		assert.True(t, vecClose(r2.Vec{X: 0.5, Y: math.Sqrt(3) / 6}, got, 1e-12), "radius %v: %v", radius, got)
	}
}

func TestPlaceInQuadApex(t *testing.T) {
	t.Parallel()

	// The apex of an up face is the quad's far corner; rotated by -30
	// degrees it sits on the y axis at unit distance.
	apex := r2.Vec{X: 0.5, Y: sin60}
	for id := 1; id <= 5; id++ {
		quad, pt := placeInQuad(id, apex)
		assert.Equal(t, id, quad)
		assert.True(t, vecClose(r2.Vec{X: 0, Y: 1}, Rotate(pt, -30), 1e-12), "face %d: %v", id, pt)
	}
}
