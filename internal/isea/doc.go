// Package isea implements the forward Icosahedral Snyder Equal Area (ISEA)
// discrete global grid transform.
//
// A geographic point flows through a fixed pipeline:
//
//	reorient -> locate face (Snyder forward) -> place on plane or quad
//	         -> bin into hex lattice -> resolve quad boundaries -> serialize
//
// A Grid is built once from a GridConfig, validated, and is then safe for
// concurrent use: every stage is a pure function of the grid and the point.
// The inverse transform is not provided.
package isea
