package batch

import (
	"fmt"
	"strings"

	"github.com/wroge/wgs84"

	"github.com/banshee-data/dggs/internal/isea"
)

// CRS names the coordinate system of input coordinates.
type CRS string

const (
	// LonLat is WGS84 longitude and latitude in degrees.
	LonLat CRS = "lonlat"
	// WebMercator is EPSG:3857 easting and northing in metres.
	WebMercator CRS = "webmercator"
)

var fromWebMercator = wgs84.WebMercator().To(wgs84.LonLat())

// ParseCRS accepts "lonlat" (also "wgs84", "epsg:4326") and "webmercator"
// (also "epsg:3857").
func ParseCRS(s string) (CRS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lonlat", "wgs84", "epsg:4326":
		return LonLat, nil
	case "webmercator", "epsg:3857":
		return WebMercator, nil
	default:
		return "", fmt.Errorf("unknown CRS %q (want lonlat or webmercator)", s)
	}
}

// GeoPoint converts an (x, y) pair in c to a geographic point.
func (c CRS) GeoPoint(x, y float64) isea.GeoPoint {
	if c == WebMercator {
		x, y, _ = fromWebMercator(x, y, 0)
	}
	return isea.GeoPointFromDegrees(x, y)
}
