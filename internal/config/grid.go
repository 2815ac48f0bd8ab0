package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/dggs/internal/isea"
	"github.com/banshee-data/dggs/internal/units"
)

// Orientation presets accepted by the orient option.
const (
	OrientISEA = "isea"
	OrientPole = "pole"
)

// GridFile is the on-disk and command-line form of a grid configuration.
// Angles are in Units, degrees by default. Unset fields fall back to the
// Get* defaults, so partial files are safe.
type GridFile struct {
	Orient     *string  `json:"orient,omitempty" yaml:"orient,omitempty"`
	Units      *string  `json:"units,omitempty" yaml:"units,omitempty"`
	Azimuth    *float64 `json:"azi,omitempty" yaml:"azi,omitempty"`
	Lon0       *float64 `json:"lon_0,omitempty" yaml:"lon_0,omitempty"`
	Lat0       *float64 `json:"lat_0,omitempty" yaml:"lat_0,omitempty"`
	Aperture   *int     `json:"aperture,omitempty" yaml:"aperture,omitempty"`
	Resolution *int     `json:"resolution,omitempty" yaml:"resolution,omitempty"`

	// Mode is the short output selector: plane, di, dd or hex.
	Mode *string `json:"mode,omitempty" yaml:"mode,omitempty"`
	// Output names any of the seven address forms and wins over Mode.
	Output *string `json:"output,omitempty" yaml:"output,omitempty"`

	// Rescale forces the radius to isea.ISEAScale.
	Rescale *bool    `json:"rescale,omitempty" yaml:"rescale,omitempty"`
	Radius  *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

const maxFileSize = 1 * 1024 * 1024 // 1MB

// DefaultGridFile returns a GridFile with every default spelled out.
func DefaultGridFile() *GridFile {
	return &GridFile{
		Orient:     ptrString(OrientISEA),
		Units:      ptrString(units.Degrees),
		Azimuth:    ptrFloat64(0),
		Aperture:   ptrInt(isea.DefaultAperture),
		Resolution: ptrInt(isea.DefaultResolution),
		Mode:       ptrString("plane"),
		Rescale:    ptrBool(false),
		Radius:     ptrFloat64(1.0),
	}
}

// LoadGridFile reads a grid configuration from a .json, .yaml or .yml file
// under 1MB and validates it.
func LoadGridFile(path string) (*GridFile, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f := &GridFile{}
	if ext == ".json" {
		if err := json.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return f, nil
}

// ParseProjString reads proj-style options such as
// "+orient=pole +mode=di +resolution=5 +rescale". A bare +rescale means true.
// +proj=isea is accepted and ignored; any other key is an error.
func ParseProjString(s string) (*GridFile, error) {
	f := &GridFile{}
	for _, tok := range strings.Fields(s) {
		tok = strings.TrimPrefix(tok, "+")
		key, val, hasVal := strings.Cut(tok, "=")

		var err error
		switch key {
		case "proj":
			if val != "isea" {
				err = fmt.Errorf("unsupported projection %q", val)
			}
		case "orient":
			f.Orient = ptrString(val)
		case "units":
			f.Units = ptrString(val)
		case "mode":
			f.Mode = ptrString(val)
		case "output":
			f.Output = ptrString(val)
		case "azi":
			f.Azimuth, err = parseFloat(key, val)
		case "lon_0":
			f.Lon0, err = parseFloat(key, val)
		case "lat_0":
			f.Lat0, err = parseFloat(key, val)
		case "radius":
			f.Radius, err = parseFloat(key, val)
		case "aperture":
			f.Aperture, err = parseInt(key, val)
		case "resolution":
			f.Resolution, err = parseInt(key, val)
		case "rescale":
			if !hasVal {
				f.Rescale = ptrBool(true)
				break
			}
			var b bool
			b, err = strconv.ParseBool(val)
			f.Rescale = ptrBool(b)
		default:
			err = fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", isea.ErrConfiguration, err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func parseFloat(key, val string) (*float64, error) {
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return ptrFloat64(v), nil
}

func parseInt(key, val string) (*int, error) {
	v, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return ptrInt(v), nil
}

// Merge copies every field set in other over f.
func (f *GridFile) Merge(other *GridFile) {
	if other == nil {
		return
	}
	if other.Orient != nil {
		f.Orient = other.Orient
	}
	if other.Units != nil {
		f.Units = other.Units
	}
	if other.Azimuth != nil {
		f.Azimuth = other.Azimuth
	}
	if other.Lon0 != nil {
		f.Lon0 = other.Lon0
	}
	if other.Lat0 != nil {
		f.Lat0 = other.Lat0
	}
	if other.Aperture != nil {
		f.Aperture = other.Aperture
	}
	if other.Resolution != nil {
		f.Resolution = other.Resolution
	}
	if other.Mode != nil {
		f.Mode = other.Mode
	}
	if other.Output != nil {
		f.Output = other.Output
	}
	if other.Rescale != nil {
		f.Rescale = other.Rescale
	}
	if other.Radius != nil {
		f.Radius = other.Radius
	}
}

// Validate checks that every set value is supported. Errors wrap
// isea.ErrConfiguration.
func (f *GridFile) Validate() error {
	if f.Orient != nil && *f.Orient != OrientISEA && *f.Orient != OrientPole {
		return fmt.Errorf("%w: orient must be %q or %q, got %q", isea.ErrConfiguration, OrientISEA, OrientPole, *f.Orient)
	}
	if f.Units != nil && !units.IsValid(*f.Units) {
		return fmt.Errorf("%w: units must be one of: %s, got %q", isea.ErrConfiguration, units.GetValidUnitsString(), *f.Units)
	}
	for name, v := range map[string]*float64{"azi": f.Azimuth, "lon_0": f.Lon0, "lat_0": f.Lat0} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s must be finite", isea.ErrConfiguration, name)
		}
	}
	if f.Lat0 != nil && math.Abs(units.ToRadians(*f.Lat0, f.GetUnits())) > math.Pi/2 {
		return fmt.Errorf("%w: lat_0 must be within [-90, 90] degrees, got %v %s", isea.ErrConfiguration, *f.Lat0, f.GetUnits())
	}
	if f.Mode != nil {
		if _, err := isea.ParseMode(*f.Mode); err != nil {
			return err
		}
	}
	if f.Output != nil {
		if _, err := isea.ParseAddressForm(*f.Output); err != nil {
			return err
		}
	}
	if f.Radius != nil && (!(*f.Radius > 0) || math.IsInf(*f.Radius, 0)) {
		return fmt.Errorf("%w: radius must be positive and finite, got %v", isea.ErrConfiguration, *f.Radius)
	}
	// Aperture and resolution limits live with the grid.
	_, err := f.GridConfig()
	return err
}

// GetOrient returns the orientation preset, default "isea".
func (f *GridFile) GetOrient() string {
	if f.Orient == nil {
		return OrientISEA
	}
	return *f.Orient
}

// GetUnits returns the angle units for azi, lon_0 and lat_0, default degrees.
func (f *GridFile) GetUnits() string {
	if f.Units == nil {
		return units.Degrees
	}
	return *f.Units
}

// GetAperture returns the aperture or the default of 3.
func (f *GridFile) GetAperture() int {
	if f.Aperture == nil {
		return isea.DefaultAperture
	}
	return *f.Aperture
}

// GetResolution returns the resolution or the default of 4.
func (f *GridFile) GetResolution() int {
	if f.Resolution == nil {
		return isea.DefaultResolution
	}
	return *f.Resolution
}

// GetOutput resolves output and mode to an address form, default plane.
func (f *GridFile) GetOutput() (isea.AddressForm, error) {
	if f.Output != nil {
		return isea.ParseAddressForm(*f.Output)
	}
	if f.Mode != nil {
		return isea.ParseMode(*f.Mode)
	}
	return isea.FormPlane, nil
}

// GetRadius returns isea.ISEAScale when rescaling, else the radius or 1.
func (f *GridFile) GetRadius() float64 {
	if f.Rescale != nil && *f.Rescale {
		return isea.ISEAScale
	}
	if f.Radius == nil {
		return 1.0
	}
	return *f.Radius
}

// GetPole applies the orientation preset and then the azi, lon_0 and lat_0
// overrides.
func (f *GridFile) GetPole() isea.Pole {
	pole := isea.StandardPole()
	if f.GetOrient() == OrientPole {
		pole = isea.NorthPole()
	}
	u := f.GetUnits()
	if f.Azimuth != nil {
		pole.Azimuth = units.ToRadians(*f.Azimuth, u)
	}
	if f.Lon0 != nil {
		pole.Lon = units.ToRadians(*f.Lon0, u)
	}
	if f.Lat0 != nil {
		pole.Lat = units.ToRadians(*f.Lat0, u)
	}
	return pole
}

// GridConfig builds and validates the isea.GridConfig described by f.
func (f *GridFile) GridConfig() (isea.GridConfig, error) {
	out, err := f.GetOutput()
	if err != nil {
		return isea.GridConfig{}, err
	}
	cfg := isea.GridConfig{
		Pole:       f.GetPole(),
		Aperture:   f.GetAperture(),
		Resolution: f.GetResolution(),
		Output:     out,
		Radius:     f.GetRadius(),
	}
	if err := cfg.Validate(); err != nil {
		return isea.GridConfig{}, err
	}
	return cfg, nil
}

// ProjString renders the set fields in a stable order that ParseProjString
// reads back.
func (f *GridFile) ProjString() string {
	opts := map[string]string{}
	if f.Orient != nil {
		opts["orient"] = *f.Orient
	}
	if f.Units != nil {
		opts["units"] = *f.Units
	}
	if f.Azimuth != nil {
		opts["azi"] = strconv.FormatFloat(*f.Azimuth, 'g', -1, 64)
	}
	if f.Lon0 != nil {
		opts["lon_0"] = strconv.FormatFloat(*f.Lon0, 'g', -1, 64)
	}
	if f.Lat0 != nil {
		opts["lat_0"] = strconv.FormatFloat(*f.Lat0, 'g', -1, 64)
	}
	if f.Aperture != nil {
		opts["aperture"] = strconv.Itoa(*f.Aperture)
	}
	if f.Resolution != nil {
		opts["resolution"] = strconv.Itoa(*f.Resolution)
	}
	if f.Mode != nil {
		opts["mode"] = *f.Mode
	}
	if f.Output != nil {
		opts["output"] = *f.Output
	}
	if f.Radius != nil {
		opts["radius"] = strconv.FormatFloat(*f.Radius, 'g', -1, 64)
	}
	if f.Rescale != nil {
		opts["rescale"] = strconv.FormatBool(*f.Rescale)
	}

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{"+proj=isea"}
	for _, k := range keys {
		parts = append(parts, "+"+k+"="+opts[k])
	}
	return strings.Join(parts, " ")
}
