package isea

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func mustGrid(t *testing.T, mutate func(*GridConfig)) *Grid {
	t.Helper()
	cfg := DefaultGridConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := NewGrid(cfg)
	require.NoError(t, err)
	return g
}

func TestGridConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*GridConfig)
		wantErr bool
	}{
		{"defaults", func(*GridConfig) {}, false},
		{"aperture 4", func(c *GridConfig) { c.Aperture = 4 }, false},
		{"aperture 5", func(c *GridConfig) { c.Aperture = 5 }, true},
		{"aperture 0", func(c *GridConfig) { c.Aperture = 0 }, true},
		{"resolution 0", func(c *GridConfig) { c.Resolution = 0 }, false},
		{"negative resolution", func(c *GridConfig) { c.Resolution = -1 }, true},
		{"aperture 3 at limit", func(c *GridConfig) { c.Resolution = 33 }, false},
		{"aperture 3 past limit", func(c *GridConfig) { c.Resolution = 34 }, true},
		{"aperture 4 past limit", func(c *GridConfig) { c.Aperture, c.Resolution = 4, 30 }, true},
		{"unknown output", func(c *GridConfig) { c.Output = AddressForm(99) }, true},
		{"negative output", func(c *GridConfig) { c.Output = AddressForm(-1) }, true},
		{"zero radius", func(c *GridConfig) { c.Radius = 0 }, true},
		{"NaN radius", func(c *GridConfig) { c.Radius = math.NaN() }, true},
		{"infinite radius", func(c *GridConfig) { c.Radius = math.Inf(1) }, true},
		{"rescaled radius", func(c *GridConfig) { c.Radius = ISEAScale }, false},
		{"NaN pole", func(c *GridConfig) { c.Pole.Lat = math.NaN() }, true},
		{"infinite azimuth", func(c *GridConfig) { c.Pole.Azimuth = math.Inf(-1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultGridConfig()
			tt.mutate(&cfg)

			g, err := NewGrid(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg, g.Config())
		})
	}
}

func TestDefaultGridConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultGridConfig()
	assert.Equal(t, StandardPole(), cfg.Pole)
	assert.Equal(t, 3, cfg.Aperture)
	assert.Equal(t, 4, cfg.Resolution)
	assert.Equal(t, FormPlane, cfg.Output)
	assert.Equal(t, 1.0, cfg.Radius)

	g := mustGrid(t, nil)
	assert.Equal(t, int64(81), g.HexesPerQuad())
	assert.Equal(t, uint64(812), g.MaxSerial())
}

var paris = GeoPointFromDegrees(2.35, 48.85)

func TestProjectForms(t *testing.T) {
	t.Parallel()

	const tol = 1e-9
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) <= tol })

	tests := []struct {
		form AddressForm
		want Address
	}{
		{FormPlane, PlaneAddress{Point: r2.Vec{X: -0.097251879495, Y: 1.378118598857}}},
		{FormProjTri, ProjTriAddress{Triangle: 3, Point: r2.Vec{X: 0.419265643681, Y: 0.711042493773}}},
		{FormVertex2DD, QuadPointAddress{Quad: 3, Point: r2.Vec{X: -0.406148040937, Y: 0.718615945248}, Vertex: true}},
		{FormQ2DD, QuadPointAddress{Quad: 3, Point: r2.Vec{X: -0.406148040937, Y: 0.718615945248}}},
		{FormQ2DI, QuadCellAddress{Quad: 3, D: 0, I: 7}},
		{FormSeqNum, SerialAddress{Serial: 171}},
		{FormHex, HexAddress{Quad: 3, X: 0, Y: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.form.String(), func(t *testing.T) {
			t.Parallel()
			g := mustGrid(t, func(c *GridConfig) { c.Output = tt.form })

			got, err := g.Project(paris)
			require.NoError(t, err)
			assert.Equal(t, tt.form, got.Form())
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Project mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProjectRescaled(t *testing.T) {
	t.Parallel()

	plane := mustGrid(t, func(c *GridConfig) { c.Radius = ISEAScale })
	got, err := plane.Project(paris)
	require.NoError(t, err)
	pa, ok := got.(PlaneAddress)
	require.True(t, ok, "got %T", got)
	assert.InDelta(t, -0.080734356319, pa.Point.X, 1e-9)
	assert.InDelta(t, 1.144055195515, pa.Point.Y, 1e-9)

	// The unit triangle does not depend on the radius.
	tri := mustGrid(t, func(c *GridConfig) { c.Radius = ISEAScale; c.Output = FormProjTri })
	got, err = tri.Project(paris)
	require.NoError(t, err)
	pt, ok := got.(ProjTriAddress)
	require.True(t, ok, "got %T", got)
	assert.InDelta(t, 0.419265643681, pt.Point.X, 1e-9)
	assert.InDelta(t, 0.711042493773, pt.Point.Y, 1e-9)
}

func TestLocateKnownPlaces(t *testing.T) {
	t.Parallel()

	type setup struct{ ap, res int }
	places := []struct {
		name     string
		lon, lat float64
		want     map[setup]Cell
	}{
		{"paris", 2.35, 48.85, map[setup]Cell{
			{3, 4}: {Triangle: 3, Quad: 3, D: 0, I: 7, Serial: 171},
			{4, 3}: {Triangle: 3, Quad: 3, D: 0, I: 7, Serial: 137},
			{3, 5}: {Triangle: 3, Quad: 3, D: 1, I: 23, Serial: 504},
		}},
		{"sydney", 151.2, -33.9, map[setup]Cell{
			{3, 4}: {Triangle: 19, Quad: 9, D: 7, I: 4, Serial: 717},
			{4, 3}: {Triangle: 19, Quad: 9, D: 6, I: 3, Serial: 565},
			{3, 5}: {Triangle: 19, Quad: 9, D: 20, I: 10, Serial: 2129},
		}},
		{"quito", -78.5, -0.2, map[setup]Cell{
			{3, 4}: {Triangle: 7, Quad: 2, D: 5, I: 0, Serial: 128},
			{4, 3}: {Triangle: 7, Quad: 2, D: 4, I: 0, Serial: 98},
			{3, 5}: {Triangle: 7, Quad: 2, D: 14, I: 1, Serial: 371},
		}},
		{"anchorage", -149.9, 61.2, map[setup]Cell{
			{3, 4}: {Triangle: 1, Quad: 1, D: 1, I: 1, Serial: 12},
			{4, 3}: {Triangle: 1, Quad: 1, D: 1, I: 1, Serial: 11},
			{3, 5}: {Triangle: 1, Quad: 1, D: 4, I: 5, Serial: 39},
		}},
		{"cape town", 18.42, -33.92, map[setup]Cell{
			{3, 4}: {Triangle: 8, Quad: 3, D: 8, I: 3, Serial: 239},
			{4, 3}: {Triangle: 8, Quad: 3, D: 7, I: 2, Serial: 188},
			{3, 5}: {Triangle: 8, Quad: 3, D: 24, I: 9, Serial: 707},
		}},
	}

	for _, pl := range places {
		t.Run(pl.name, func(t *testing.T) {
			t.Parallel()
			for l, want := range pl.want {
				g := mustGrid(t, func(c *GridConfig) { c.Aperture, c.Resolution = l.ap, l.res })
				got, err := g.Locate(GeoPointFromDegrees(pl.lon, pl.lat))
				require.NoError(t, err)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("aperture %d resolution %d (-want +got):\n%s", l.ap, l.res, diff)
				}
			}
		})
	}
}

func TestPoleFixedPoints(t *testing.T) {
	t.Parallel()

	lattices := []struct{ ap, res int }{{3, 0}, {3, 1}, {3, 4}, {3, 5}, {4, 0}, {4, 3}}
	for _, l := range lattices {
		g := mustGrid(t, func(c *GridConfig) {
			c.Pole = NorthPole()
			c.Aperture, c.Resolution = l.ap, l.res
			c.Output = FormSeqNum
		})

		north, err := g.Locate(GeoPointFromDegrees(0, 90))
		require.NoError(t, err)
		assert.Equal(t, NorthPoleQuad, north.Quad)
		assert.Equal(t, 0, north.D)
		assert.Equal(t, 0, north.I)
		assert.Equal(t, uint64(1), north.Serial)

		south, err := g.Project(GeoPointFromDegrees(0, -90))
		require.NoError(t, err)
		assert.Equal(t, SerialAddress{Serial: g.MaxSerial()}, south, "aperture %d resolution %d", l.ap, l.res)
		assert.Equal(t, uint64(10*g.HexesPerQuad()+2), g.MaxSerial())
	}

	// With the standard orientation the grid pole is the configured pole.
	g := mustGrid(t, nil)
	c, err := g.Locate(GeoPoint{Lon: StdPoleLon, Lat: StdPoleLat})
	require.NoError(t, err)
	assert.Equal(t, NorthPoleQuad, c.Quad)
	assert.Equal(t, uint64(1), c.Serial)
}

func TestSerialsAreDense(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		pole    Pole
		ap, res int
	}{
		{"pole 4/1", NorthPole(), 4, 1},
		{"pole 4/2", NorthPole(), 4, 2},
		{"pole 3/1", NorthPole(), 3, 1},
		{"pole 3/2", NorthPole(), 3, 2},
		{"pole 3/3", NorthPole(), 3, 3},
		{"pole 3/5", NorthPole(), 3, 5},
		{"isea 4/2", StandardPole(), 4, 2},
		{"isea 3/1", StandardPole(), 3, 1},
		{"isea 3/3", StandardPole(), 3, 3},
		{"isea 3/5", StandardPole(), 3, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := mustGrid(t, func(c *GridConfig) {
				c.Pole = tc.pole
				c.Aperture, c.Resolution = tc.ap, tc.res
			})

			m := g.lat.maxcoord
			seen := make(map[uint64][3]int)
			sweepSphere(func(p GeoPoint) {
				c, err := g.Locate(p)
				require.NoError(t, err)
				require.True(t, c.Serial >= 1 && c.Serial <= g.MaxSerial(), "serial %d at %v", c.Serial, p)
				if c.Quad != NorthPoleQuad && c.Quad != SouthPoleQuad {
					require.True(t, c.D >= 0 && c.D < m && c.I >= 0 && c.I < m, "cell %+v at %v outside its quad", c, p)
				}

				key := [3]int{c.Quad, c.D, c.I}
				if prev, ok := seen[c.Serial]; ok {
					require.Equal(t, prev, key, "serial %d names two cells", c.Serial)
				}
				seen[c.Serial] = key
			})
			assert.Len(t, seen, int(g.MaxSerial()), "every serial from 1 to %d is used", g.MaxSerial())
		})
	}
}

// seamPoints bisects between nearby points on different faces. Both ends of
// each bisection are kept; they sit where LocateFace switches faces, up to
// faceTolerance past the shared edge.
func seamPoints(t *testing.T, n int, seed int64) []GeoPoint {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var pts []GeoPoint
	for k := 0; k < n; k++ {
		a := GeoPoint{Lon: (2*rng.Float64() - 1) * math.Pi, Lat: math.Asin(2*rng.Float64() - 1)}
		b := NewGeoPoint(a.Lon+0.6*rng.Float64()-0.3, math.Max(-1.57, math.Min(1.57, a.Lat+0.6*rng.Float64()-0.3)))
		fa, _, err := LocateFace(a)
		require.NoError(t, err)
		fb, _, err := LocateFace(b)
		require.NoError(t, err)
		if fa == fb {
			continue
		}
		for step := 0; step < 60; step++ {
			mid := GeoPoint{Lon: (a.Lon + b.Lon) / 2, Lat: (a.Lat + b.Lat) / 2}
			f, _, err := LocateFace(mid)
			require.NoError(t, err)
			if f == fa {
				a = mid
			} else {
				b = mid
			}
		}
		pts = append(pts, a, b)
	}
	return pts
}

func TestSeamCellsAgreeAcrossFaces(t *testing.T) {
	t.Parallel()

	pts := seamPoints(t, 3000, 7)
	require.NotEmpty(t, pts)

	lattices := []struct{ ap, res int }{{3, 1}, {3, 2}, {3, 3}, {3, 4}, {3, 5}, {4, 2}, {4, 3}}
	for _, l := range lattices {
		g := mustGrid(t, func(c *GridConfig) { c.Aperture, c.Resolution = l.ap, l.res })
		m := g.lat.maxcoord

		for _, p := range pts {
			// Every face that accepts p, not only the first, must give the
			// same cell.
			var cells []Cell
			for id := 1; id <= FaceCount; id++ {
				pt, ok := onFace(id, p, 2*faceTolerance)
				if !ok {
					continue
				}
				c := g.cell(id, toUnitTriangle(pt, 1))
				if c.Quad != NorthPoleQuad && c.Quad != SouthPoleQuad {
					assert.True(t, c.D >= 0 && c.D < m && c.I >= 0 && c.I < m,
						"aperture %d resolution %d: face %d puts %v in %+v", l.ap, l.res, id, p, c)
				}
				cells = append(cells, c)
			}
			require.GreaterOrEqual(t, len(cells), 2, "seam point %v", p)
			for _, c := range cells[1:] {
				assert.Equal(t, cells[0].Serial, c.Serial,
					"aperture %d resolution %d: %v is %+v and %+v", l.ap, l.res, p, cells[0], c)
			}
		}
	}
}

func TestApertureFourResolutionMonotonic(t *testing.T) {
	t.Parallel()

	var prev *Grid
	for res := 0; res <= MaxResolution(4); res++ {
		g := mustGrid(t, func(c *GridConfig) { c.Aperture, c.Resolution = 4, res })
		if prev != nil {
			assert.Equal(t, 4*prev.HexesPerQuad(), g.HexesPerQuad(), "resolution %d", res)
			assert.Greater(t, g.MaxSerial(), prev.MaxSerial(), "resolution %d", res)
		}
		prev = g
	}

	// Refinement never loses cells on a fixed sample.
	counts := make([]int, 0, 4)
	for res := 0; res <= 3; res++ {
		g := mustGrid(t, func(c *GridConfig) { c.Aperture, c.Resolution = 4, res })
		seen := make(map[uint64]bool)
		for lat := -90; lat <= 90; lat += 3 {
			for lon := -180; lon < 180; lon += 3 {
				c, err := g.Locate(GeoPointFromDegrees(float64(lon), float64(lat)))
				require.NoError(t, err)
				seen[c.Serial] = true
			}
		}
		counts = append(counts, len(seen))
	}
	for i := 1; i < len(counts); i++ {
		assert.Greater(t, counts[i], counts[i-1], "counts %v", counts)
	}
}

func TestProjectDeterministicAndConcurrent(t *testing.T) {
	t.Parallel()

	g := mustGrid(t, func(c *GridConfig) { c.Output = FormHex })

	var pts []GeoPoint
	for lat := -85; lat <= 85; lat += 17 {
		for lon := -180; lon < 180; lon += 23 {
			pts = append(pts, GeoPointFromDegrees(float64(lon), float64(lat)))
		}
	}
	want := make([]Address, len(pts))
	for i, p := range pts {
		a, err := g.Project(p)
		require.NoError(t, err)
		want[i] = a
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, p := range pts {
				a, err := g.Project(p)
				if err != nil || a != want[i] {
					errs <- p.String()
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("concurrent Project disagreed at %s", e)
	}
}

func TestResolveMatchesProjectAndLocate(t *testing.T) {
	t.Parallel()

	for _, form := range []AddressForm{FormPlane, FormQ2DD, FormQ2DI, FormSeqNum, FormHex} {
		g := mustGrid(t, func(c *GridConfig) { c.Output = form })
		for _, p := range []GeoPoint{GeoPointFromDegrees(2.35, 48.85), GeoPointFromDegrees(151.2, -33.9)} {
			a, c, err := g.Resolve(p)
			require.NoError(t, err)

			want, err := g.Project(p)
			require.NoError(t, err)
			wantCell, err := g.Locate(p)
			require.NoError(t, err)

			assert.Equal(t, want, a, "form %s", form)
			assert.Equal(t, wantCell, c, "form %s", form)
		}
	}

	_, _, err := mustGrid(t, nil).Resolve(GeoPoint{Lon: math.NaN()})
	assert.ErrorIs(t, err, ErrGeometry)
}

func TestGeometryErrorReportsInput(t *testing.T) {
	t.Parallel()

	g := mustGrid(t, nil)
	_, err := g.Locate(GeoPoint{Lon: math.NaN(), Lat: 0.5})

	var ge *GeometryError
	require.True(t, errors.As(err, &ge))
	assert.True(t, math.IsNaN(ge.Lon))
	assert.Equal(t, 0.5, ge.Lat)
	assert.Contains(t, err.Error(), "28.647890")
}

func TestProjectNonFinite(t *testing.T) {
	t.Parallel()

	for _, form := range []AddressForm{FormPlane, FormQ2DI, FormSeqNum} {
		g := mustGrid(t, func(c *GridConfig) { c.Output = form })
		a, err := g.Project(GeoPoint{Lon: math.NaN(), Lat: 0.1})
		assert.Nil(t, a)
		assert.ErrorIs(t, err, ErrGeometry)

		_, err = g.Locate(GeoPoint{Lon: 0.1, Lat: math.NaN()})
		assert.ErrorIs(t, err, ErrGeometry)
	}
}

func TestHexAddressPacking(t *testing.T) {
	t.Parallel()

	h := HexAddress{Quad: 9, X: 37, Y: -4}
	packed, y := h.Packed()
	assert.Equal(t, 37<<4|9, packed)
	assert.Equal(t, -4, y)
	assert.Equal(t, h, UnpackHex(packed, y))

	for quad := 0; quad < QuadCount; quad++ {
		for x := 0; x < 40; x += 7 {
			h := HexAddress{Quad: quad, X: x, Y: x - 3}
			assert.Equal(t, h, UnpackHex(h.Packed()))
		}
	}
}

func TestAddressFormNames(t *testing.T) {
	t.Parallel()

	for f := FormPlane; f <= FormHex; f++ {
		got, err := ParseAddressForm(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseAddressForm(" Q2DI ")
	require.NoError(t, err)
	assert.Equal(t, FormQ2DI, got)

	_, err = ParseAddressForm("triangle")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "AddressForm(42)", AddressForm(42).String())
	assert.False(t, AddressForm(42).Valid())

	modes := map[string]AddressForm{"plane": FormPlane, "di": FormQ2DI, "DD": FormQ2DD, "hex": FormHex}
	for s, want := range modes {
		got, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got, "mode %q", s)
	}
	_, err = ParseMode("seqnum")
	assert.ErrorIs(t, err, ErrConfiguration)
}
