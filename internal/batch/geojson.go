package batch

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// maxGeoJSONSize bounds GeoJSON input read into memory.
const maxGeoJSONSize = 256 * 1024 * 1024

// ReadGeoJSON reads a FeatureCollection whose geometries are Point or
// MultiPoint. Each point becomes one sample carrying its feature's id and
// properties. Coordinates are interpreted in crs.
func ReadGeoJSON(r io.Reader, crs CRS) ([]Sample, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxGeoJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON: %w", err)
	}
	if len(data) > maxGeoJSONSize {
		return nil, fmt.Errorf("GeoJSON input too large (max %d bytes)", maxGeoJSONSize)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	var samples []Sample
	for n, f := range fc.Features {
		var pts []orb.Point
		switch geom := f.Geometry.(type) {
		case orb.Point:
			pts = []orb.Point{geom}
		case orb.MultiPoint:
			pts = geom
		case nil:
			return nil, fmt.Errorf("feature %d has no geometry", n)
		default:
			return nil, fmt.Errorf("feature %d: unsupported geometry %s", n, geom.GeoJSONType())
		}
		for _, p := range pts {
			samples = append(samples, Sample{
				Point:      crs.GeoPoint(p.X(), p.Y()),
				ID:         f.ID,
				Properties: f.Properties,
			})
		}
	}
	return samples, nil
}

// WriteGeoJSON writes one Point feature per result at the sample's lon/lat.
// The feature keeps the input id and properties and gains a "dggs" object
// holding the cell and the output address, or an "error" string.
func WriteGeoJSON(w io.Writer, results []Result) error {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		lon, lat := r.Point.Degrees()
		f := geojson.NewFeature(orb.Point{lon, lat})
		f.ID = r.ID
		for k, v := range r.Properties {
			f.Properties[k] = v
		}

		dggs := map[string]interface{}{}
		if r.Err != nil {
			dggs["error"] = r.Err.Error()
		} else {
			dggs["triangle"] = r.Cell.Triangle
			dggs["quad"] = r.Cell.Quad
			dggs["d"] = r.Cell.D
			dggs["i"] = r.Cell.I
			dggs["serial"] = r.Cell.Serial
			dggs["address"] = addressProperties(r.Address)
		}
		f.Properties["dggs"] = dggs
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}
