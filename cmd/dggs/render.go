package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banshee-data/dggs/internal/batch"
	"github.com/banshee-data/dggs/internal/render"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags]",
		Short: "Draw the grid as a plane-layout image and a serial-coloured HTML map",
		Args:  cobra.NoArgs,
		RunE:  doRender,
	}
	cmd.Flags().String("png", "", "`<path>` of the plane layout image (.png, .svg or .pdf)")
	cmd.Flags().String("html", "", "`<path>` of the serial map page")
	cmd.Flags().Float64("step", 2, "sample spacing in degrees when no --in is given")
	cmd.Flags().StringP("in", "i", "", "`<path>` of GeoJSON points to draw instead of a regular lattice")
	cmd.Flags().String("crs", "lonlat", "input coordinates: lonlat or webmercator")
	return cmd
}

func doRender(cmd *cobra.Command, args []string) error {
	file, g, err := loadGrid(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	pngPath, _ := flags.GetString("png")
	htmlPath, _ := flags.GetString("html")
	step, _ := flags.GetFloat64("step")
	in, _ := flags.GetString("in")

	if pngPath == "" && htmlPath == "" {
		return fmt.Errorf("nothing to do: give --png and/or --html")
	}

	var pts []render.Point
	if in != "" {
		crs, err := crsFlag(cmd)
		if err != nil {
			return err
		}
		samples, err := readSamples(cmd, in, formatFor(in), crs)
		if err != nil {
			return err
		}
		results, err := batch.Run(cmd.Context(), g, samples, batch.Options{SkipInvalid: true})
		if err != nil {
			return err
		}
		pts, err = render.FromResults(g.Config(), results)
		if err != nil {
			return err
		}
	} else {
		pts, err = render.Sample(g.Config(), step)
		if err != nil {
			return err
		}
	}

	title := file.ProjString()
	if pngPath != "" {
		if err := render.WritePlanePNG(pngPath, title, pts); err != nil {
			return err
		}
	}
	if htmlPath != "" {
		f, err := os.Create(filepath.Clean(htmlPath))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", htmlPath, err)
		}
		if err := render.WriteSerialHTML(f, title, pts, g.MaxSerial()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", htmlPath, err)
		}
	}
	return nil
}
