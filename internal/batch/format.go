package batch

import (
	"fmt"
	"strconv"

	"github.com/banshee-data/dggs/internal/isea"
)

// FormatAddress renders a as whitespace-separated fields, the way proj-style
// tools print one output coordinate per line. Hex addresses use the packed
// (x<<4 | quad, y) pair.
func FormatAddress(a isea.Address) string {
	switch a := a.(type) {
	case isea.PlaneAddress:
		return fmt.Sprintf("%.12f %.12f", a.Point.X, a.Point.Y)
	case isea.ProjTriAddress:
		return fmt.Sprintf("%d %.12f %.12f", a.Triangle, a.Point.X, a.Point.Y)
	case isea.QuadPointAddress:
		return fmt.Sprintf("%d %.12f %.12f", a.Quad, a.Point.X, a.Point.Y)
	case isea.QuadCellAddress:
		return fmt.Sprintf("%d %d %d", a.Quad, a.D, a.I)
	case isea.SerialAddress:
		return strconv.FormatUint(a.Serial, 10)
	case isea.HexAddress:
		x, y := a.Packed()
		return fmt.Sprintf("%d %d", x, y)
	default:
		return ""
	}
}

// addressProperties flattens a into GeoJSON property values.
func addressProperties(a isea.Address) map[string]interface{} {
	props := map[string]interface{}{"form": a.Form().String()}
	switch a := a.(type) {
	case isea.PlaneAddress:
		props["x"], props["y"] = a.Point.X, a.Point.Y
	case isea.ProjTriAddress:
		props["triangle"] = a.Triangle
		props["x"], props["y"] = a.Point.X, a.Point.Y
	case isea.QuadPointAddress:
		props["quad"] = a.Quad
		props["x"], props["y"] = a.Point.X, a.Point.Y
	case isea.QuadCellAddress:
		props["quad"], props["d"], props["i"] = a.Quad, a.D, a.I
	case isea.SerialAddress:
		props["serial"] = a.Serial
	case isea.HexAddress:
		props["quad"], props["x"], props["y"] = a.Quad, a.X, a.Y
	}
	return props
}
