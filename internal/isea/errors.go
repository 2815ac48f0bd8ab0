package isea

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is wrapped by every error caused by an unsupported
	// grid setting. It is raised before any point is transformed.
	ErrConfiguration = errors.New("isea: invalid grid configuration")

	// ErrGeometry matches GeometryError with errors.Is.
	ErrGeometry = errors.New("isea: point is not on any icosahedron face")
)

// GeometryError reports a point that no face accepted. For finite input this
// indicates a projection defect; in practice it is produced by NaN or
// infinite coordinates.
//
// LocateFace reports the point in the grid frame it was given. Grid methods
// report the caller's point before reorientation.
type GeometryError struct {
	Lon, Lat float64 // radians
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("impossible transform: %f %f is not on any triangle",
		e.Lon/degToRad, e.Lat/degToRad)
}

// Is lets errors.Is(err, ErrGeometry) match.
func (e *GeometryError) Is(target error) bool {
	return target == ErrGeometry
}
