package isea

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// AddressForm selects the shape of the value returned by Grid.Project.
type AddressForm int

const (
	// FormPlane is a continuous point in the global layout of 20 triangles.
	FormPlane AddressForm = iota
	// FormProjTri is a continuous point in the face's unit triangle.
	FormProjTri
	// FormVertex2DD is a quad with a continuous point in the quad frame.
	FormVertex2DD
	// FormQ2DD is the same value as FormVertex2DD.
	FormQ2DD
	// FormQ2DI is a quad with integer (d, i) lattice coordinates.
	FormQ2DI
	// FormSeqNum is a single serial number.
	FormSeqNum
	// FormHex is a quad with lattice (x, y), see HexAddress.Packed.
	FormHex
)

var formNames = [...]string{
	FormPlane:     "plane",
	FormProjTri:   "projtri",
	FormVertex2DD: "vertex2dd",
	FormQ2DD:      "q2dd",
	FormQ2DI:      "q2di",
	FormSeqNum:    "seqnum",
	FormHex:       "hex",
}

// modeNames maps the short option strings accepted by the "mode" setting.
var modeNames = map[string]AddressForm{
	"plane": FormPlane,
	"di":    FormQ2DI,
	"dd":    FormQ2DD,
	"hex":   FormHex,
}

func (f AddressForm) String() string {
	if f.Valid() {
		return formNames[f]
	}
	return fmt.Sprintf("AddressForm(%d)", int(f))
}

// Valid reports whether f is one of the seven supported forms.
func (f AddressForm) Valid() bool {
	return f >= FormPlane && int(f) < len(formNames)
}

// cellular reports whether the form is derived from the quad cell.
func (f AddressForm) cellular() bool {
	return f == FormQ2DI || f == FormSeqNum || f == FormHex
}

// ParseAddressForm accepts any form name as returned by String.
func ParseAddressForm(s string) (AddressForm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range formNames {
		if n == name {
			return AddressForm(f), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown address form %q", ErrConfiguration, s)
}

// ParseMode accepts the short mode names plane, di, dd and hex.
func ParseMode(s string) (AddressForm, error) {
	f, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown mode %q (want plane, di, dd or hex)", ErrConfiguration, s)
	}
	return f, nil
}

// Address is the result of Grid.Project. The concrete type depends on the
// grid's output form:
//
//	FormPlane                PlaneAddress
//	FormProjTri              ProjTriAddress
//	FormVertex2DD, FormQ2DD  QuadPointAddress
//	FormQ2DI                 QuadCellAddress
//	FormSeqNum               SerialAddress
//	FormHex                  HexAddress
type Address interface {
	Form() AddressForm
	isAddress()
}

// PlaneAddress is a point in the global triangle layout, scaled by radius.
type PlaneAddress struct {
	Point r2.Vec
}

// ProjTriAddress is a point in the face's unit triangle.
type ProjTriAddress struct {
	Triangle int
	Point    r2.Vec
}

// QuadPointAddress is a continuous point in a quad frame. Vertex marks a
// result requested as FormVertex2DD.
type QuadPointAddress struct {
	Quad   int
	Point  r2.Vec
	Vertex bool
}

// QuadCellAddress is a lattice cell in quad (d, i) coordinates.
type QuadCellAddress struct {
	Quad int
	D, I int
}

// SerialAddress is the cell's serial number.
type SerialAddress struct {
	Serial uint64
}

// HexAddress is a lattice cell with its quad kept as a separate field.
type HexAddress struct {
	Quad int
	X, Y int
}

// Packed returns the legacy single-integer encoding: x shifted left by four
// bits with the quad in the low bits, paired with y.
func (h HexAddress) Packed() (int, int) {
	return h.X<<4 | h.Quad, h.Y
}

// UnpackHex reverses HexAddress.Packed.
func UnpackHex(packed, y int) HexAddress {
	return HexAddress{Quad: packed & 0xf, X: packed >> 4, Y: y}
}

func (PlaneAddress) Form() AddressForm   { return FormPlane }
func (ProjTriAddress) Form() AddressForm { return FormProjTri }

func (a QuadPointAddress) Form() AddressForm {
	if a.Vertex {
		return FormVertex2DD
	}
	return FormQ2DD
}

func (QuadCellAddress) Form() AddressForm { return FormQ2DI }
func (SerialAddress) Form() AddressForm   { return FormSeqNum }
func (HexAddress) Form() AddressForm      { return FormHex }

func (PlaneAddress) isAddress()     {}
func (ProjTriAddress) isAddress()   {}
func (QuadPointAddress) isAddress() {}
func (QuadCellAddress) isAddress()  {}
func (SerialAddress) isAddress()    {}
func (HexAddress) isAddress()       {}
