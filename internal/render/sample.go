// Package render draws projected samples: the global plane layout as an
// image coloured by face, and the sphere as an interactive HTML scatter
// coloured by cell serial.
package render

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/dggs/internal/batch"
	"github.com/banshee-data/dggs/internal/isea"
)

// Point is one rendered sample.
type Point struct {
	Lon, Lat float64 // degrees
	Plane    r2.Vec
	Cell     isea.Cell
}

// Sample projects a regular lon/lat lattice with spacing stepDeg, offset by
// half a step so that no sample sits on a pole or the antimeridian.
func Sample(cfg isea.GridConfig, stepDeg float64) ([]Point, error) {
	if !(stepDeg > 0) || stepDeg > 90 {
		return nil, fmt.Errorf("sample step must be in (0, 90] degrees, got %v", stepDeg)
	}
	plane, cells, err := grids(cfg)
	if err != nil {
		return nil, err
	}

	var pts []Point
	for lat := -90 + stepDeg/2; lat < 90; lat += stepDeg {
		for lon := -180 + stepDeg/2; lon < 180; lon += stepDeg {
			pt, err := project(plane, cells, isea.GeoPointFromDegrees(lon, lat))
			if err != nil {
				return nil, err
			}
			pts = append(pts, pt)
		}
	}
	return pts, nil
}

// FromResults converts the successful results of a batch run made with cfg.
func FromResults(cfg isea.GridConfig, results []batch.Result) ([]Point, error) {
	plane, cells, err := grids(cfg)
	if err != nil {
		return nil, err
	}

	pts := make([]Point, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		pt, err := project(plane, cells, r.Point)
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}

// grids returns a plane-form grid alongside the configured one; the image
// needs plane coordinates whatever the requested output form.
func grids(cfg isea.GridConfig) (plane, cells *isea.Grid, err error) {
	cells, err = isea.NewGrid(cfg)
	if err != nil {
		return nil, nil, err
	}
	cfg.Output = isea.FormPlane
	plane, err = isea.NewGrid(cfg)
	if err != nil {
		return nil, nil, err
	}
	return plane, cells, nil
}

func project(plane, cells *isea.Grid, p isea.GeoPoint) (Point, error) {
	addr, err := plane.Project(p)
	if err != nil {
		return Point{}, err
	}
	cell, err := cells.Locate(p)
	if err != nil {
		return Point{}, err
	}
	lon, lat := p.Degrees()
	return Point{Lon: lon, Lat: lat, Plane: addr.(isea.PlaneAddress).Point, Cell: cell}, nil
}
