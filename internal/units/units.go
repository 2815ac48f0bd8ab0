// Package units provides shared constants, validation and conversion for angle units
package units

import "math"

// Unit constants
const (
	Degrees = "deg"
	Radians = "rad"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Degrees, Radians}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "deg, rad"
}

// ToRadians converts an angle expressed in the given units to radians.
// Unknown units are treated as radians.
func ToRadians(angle float64, fromUnits string) float64 {
	switch fromUnits {
	case Degrees:
		return angle * math.Pi / 180.0
	default:
		return angle
	}
}

// FromRadians converts an angle in radians to the target units.
func FromRadians(angleRad float64, targetUnits string) float64 {
	switch targetUnits {
	case Degrees:
		return angleRad * 180.0 / math.Pi
	default:
		return angleRad
	}
}
