package isea

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultAperture and DefaultResolution match the reference setup.
	DefaultAperture   = 3
	DefaultResolution = 4
)

// MaxResolution returns the finest resolution supported for an aperture.
// Above it the cell count per quad is no longer an exact float64 integer or
// the largest serial overflows.
func MaxResolution(aperture int) int {
	switch aperture {
	case 3:
		return 33
	case 4:
		return 29
	default:
		return 0
	}
}

// GridConfig describes a grid. The polyhedron is always the icosahedron.
type GridConfig struct {
	Pole       Pole
	Aperture   int
	Resolution int
	Output     AddressForm
	// Radius scales plane output. 1 for a unit sphere, ISEAScale when
	// rescaled to unit triangles.
	Radius float64
}

// DefaultGridConfig is the standard ISEA orientation with aperture 3,
// resolution 4, plane output on a unit sphere.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Pole:       StandardPole(),
		Aperture:   DefaultAperture,
		Resolution: DefaultResolution,
		Output:     FormPlane,
		Radius:     1.0,
	}
}

// Validate checks that the configuration values are supported.
func (c GridConfig) Validate() error {
	for name, v := range map[string]float64{
		"pole latitude":  c.Pole.Lat,
		"pole longitude": c.Pole.Lon,
		"azimuth":        c.Pole.Azimuth,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrConfiguration, name, v)
		}
	}
	if c.Aperture != 3 && c.Aperture != 4 {
		return fmt.Errorf("%w: aperture must be 3 or 4, got %d", ErrConfiguration, c.Aperture)
	}
	if c.Resolution < 0 {
		return fmt.Errorf("%w: resolution must be non-negative, got %d", ErrConfiguration, c.Resolution)
	}
	if max := MaxResolution(c.Aperture); c.Resolution > max {
		return fmt.Errorf("%w: resolution %d exceeds %d for aperture %d", ErrConfiguration, c.Resolution, max, c.Aperture)
	}
	if !c.Output.Valid() {
		return fmt.Errorf("%w: unknown output form %d", ErrConfiguration, int(c.Output))
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("%w: radius must be positive and finite, got %v", ErrConfiguration, c.Radius)
	}
	return nil
}

// Grid is a validated, immutable grid. It is safe for concurrent use.
type Grid struct {
	cfg GridConfig
	lat lattice
}

// NewGrid validates cfg and precomputes the lattice sizes.
func NewGrid(cfg GridConfig) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Grid{cfg: cfg, lat: newLattice(cfg.Aperture, cfg.Resolution)}, nil
}

// Config returns a copy of the grid's configuration.
func (g *Grid) Config() GridConfig { return g.cfg }

// HexesPerQuad is aperture^resolution.
func (g *Grid) HexesPerQuad() int64 { return g.lat.hexes }

// MaxSerial is 10*HexesPerQuad + 2, the south pole's serial number.
func (g *Grid) MaxSerial() uint64 { return g.lat.maxSerial() }

// Cell is the full discrete location of a point, independent of the output
// form.
type Cell struct {
	Triangle int
	Quad     int
	D, I     int
	Serial   uint64
}

// Project runs the forward transform and returns the address in the grid's
// output form. The only possible error is a *GeometryError.
func (g *Grid) Project(p GeoPoint) (Address, error) {
	tri, pt, err := g.transform(p)
	if err != nil {
		return nil, err
	}
	var c Cell
	if g.cfg.Output.cellular() {
		c = g.cell(tri, toUnitTriangle(pt, g.cfg.Radius))
	}
	return g.address(tri, pt, c)
}

// Locate returns the cell containing p whatever the output form.
func (g *Grid) Locate(p GeoPoint) (Cell, error) {
	tri, pt, err := g.transform(p)
	if err != nil {
		return Cell{}, err
	}
	return g.cell(tri, toUnitTriangle(pt, g.cfg.Radius)), nil
}

// Resolve is Project and Locate together, sharing one forward transform.
func (g *Grid) Resolve(p GeoPoint) (Address, Cell, error) {
	tri, pt, err := g.transform(p)
	if err != nil {
		return nil, Cell{}, err
	}
	c := g.cell(tri, toUnitTriangle(pt, g.cfg.Radius))
	a, err := g.address(tri, pt, c)
	if err != nil {
		return nil, Cell{}, err
	}
	return a, c, nil
}

// address formats a transformed point. c is only read by the cellular
// forms.
func (g *Grid) address(tri int, pt r2.Vec, c Cell) (Address, error) {
	if g.cfg.Output == FormPlane {
		return PlaneAddress{Point: placeOnPlane(tri, pt, g.cfg.Radius)}, nil
	}

	u := toUnitTriangle(pt, g.cfg.Radius)

	switch g.cfg.Output {
	case FormProjTri:
		return ProjTriAddress{Triangle: tri, Point: u}, nil
	case FormVertex2DD:
		quad, q := placeInQuad(tri, u)
		return QuadPointAddress{Quad: quad, Point: q, Vertex: true}, nil
	case FormQ2DD:
		quad, q := placeInQuad(tri, u)
		return QuadPointAddress{Quad: quad, Point: q}, nil
	case FormQ2DI:
		return QuadCellAddress{Quad: c.Quad, D: c.D, I: c.I}, nil
	case FormSeqNum:
		return SerialAddress{Serial: c.Serial}, nil
	case FormHex:
		return HexAddress{Quad: c.Quad, X: c.D, Y: c.I}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output form %d", ErrConfiguration, int(g.cfg.Output))
	}
}

// transform reorients p, finds its face and scales the face-local point by
// the radius. A GeometryError carries p as given, not the reoriented point.
func (g *Grid) transform(p GeoPoint) (int, r2.Vec, error) {
	tri, pt, err := LocateFace(g.cfg.Pole.Reorient(p))
	if err != nil {
		return 0, r2.Vec{}, &GeometryError{Lon: p.Lon, Lat: p.Lat}
	}
	return tri, r2.Scale(g.cfg.Radius, pt), nil
}

func (g *Grid) cell(tri int, u r2.Vec) Cell {
	quad, q := placeInQuad(tri, u)
	quad, d, i := g.lat.address(quad, q)
	return Cell{
		Triangle: tri,
		Quad:     quad,
		D:        d,
		I:        i,
		Serial:   g.lat.serial(quad, d, i),
	}
}
