package units

import "math"

const twoPi = 2 * math.Pi

// WrapLongitude folds a longitude in radians into (-pi, pi].
func WrapLongitude(lon float64) float64 {
	lon = math.Mod(lon, twoPi)
	for lon > math.Pi {
		lon -= twoPi
	}
	for lon <= -math.Pi {
		lon += twoPi
	}
	return lon
}

// ClampLatitude limits a latitude in radians to [-pi/2, pi/2].
func ClampLatitude(lat float64) float64 {
	if lat > math.Pi/2 {
		return math.Pi / 2
	}
	if lat < -math.Pi/2 {
		return -math.Pi / 2
	}
	return lat
}

// SafeAsin is math.Asin with its argument clamped to [-1, 1] so that
// rounding just outside the domain does not produce NaN. NaN stays NaN.
func SafeAsin(v float64) float64 {
	if v >= 1 {
		return math.Pi / 2
	}
	if v <= -1 {
		return -math.Pi / 2
	}
	return math.Asin(v)
}

// SafeAcos is the math.Acos counterpart of SafeAsin.
func SafeAcos(v float64) float64 {
	if v >= 1 {
		return 0
	}
	if v <= -1 {
		return math.Pi
	}
	return math.Acos(v)
}
