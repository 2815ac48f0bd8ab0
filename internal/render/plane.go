package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/dggs/internal/isea"
)

// WritePlanePNG saves a scatter of the samples' plane coordinates, one
// series per icosahedron face. The format follows the file extension
// (.png, .svg, .pdf, ...).
func WritePlanePNG(path, title string, pts []Point) error {
	if len(pts) == 0 {
		return fmt.Errorf("no points to plot")
	}

	byFace := make([]plotter.XYs, isea.FaceCount+1)
	for _, pt := range pts {
		byFace[pt.Cell.Triangle] = append(byFace[pt.Cell.Triangle], plotter.XY{X: pt.Plane.X, Y: pt.Plane.Y})
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	colors := faceColors()
	for face := 1; face <= isea.FaceCount; face++ {
		if len(byFace[face]) == 0 {
			continue
		}
		s, err := plotter.NewScatter(byFace[face])
		if err != nil {
			return fmt.Errorf("face %d: %w", face, err)
		}
		s.GlyphStyle.Color = colors[face]
		s.GlyphStyle.Radius = vg.Points(1.2)
		p.Add(s)
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plane plot: %w", err)
	}
	return nil
}

// faceColors spreads hues over the five columns of the layout and varies
// lightness by row, so that neighbouring faces differ. Index 0 is unused.
func faceColors() []color.Color {
	colors := make([]color.Color, isea.FaceCount+1)
	for face := 1; face <= isea.FaceCount; face++ {
		col := (face - 1) % 5
		row := (face - 1) / 5
		hue := float64(col)/5 + float64(row)/20
		light := 0.35 + 0.1*float64(row)
		r, g, b := hslToRGB(hue, 0.7, light)
		colors[face] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL in [0, 1] to 8-bit RGB.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}
	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return uint8(hueToRGB(p, q, h+1.0/3.0) * 255),
		uint8(hueToRGB(p, q, h) * 255),
		uint8(hueToRGB(p, q, h-1.0/3.0) * 255)
}

func hueToRGB(p, q, t float64) float64 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
