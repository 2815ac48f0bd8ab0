package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/banshee-data/dggs/internal/batch"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [flags] [<lon> <lat>]...",
		Short: "Project coordinate pairs given as arguments or one pair per line on stdin",
		Long: "Project coordinate pairs given as arguments or one pair per line on stdin.\n" +
			"Use -- before the first pair when a coordinate is negative.",
		RunE: doProject,
	}
	cmd.Flags().String("crs", "lonlat", "input coordinates: lonlat or webmercator")
	return cmd
}

func doProject(cmd *cobra.Command, args []string) error {
	_, g, err := loadGrid(cmd)
	if err != nil {
		return err
	}
	crs, err := crsFlag(cmd)
	if err != nil {
		return err
	}

	var samples []batch.Sample
	if len(args) > 0 {
		if samples, err = argSamples(args, crs); err != nil {
			return err
		}
	} else {
		if samples, err = batch.ReadText(cmd.InOrStdin(), crs); err != nil {
			return err
		}
	}

	results, err := batch.Run(cmd.Context(), g, samples, batch.Options{SkipInvalid: true})
	if err != nil {
		return err
	}
	return batch.WriteText(cmd.OutOrStdout(), results)
}

func argSamples(args []string, crs batch.CRS) ([]batch.Sample, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("coordinates come in pairs, got %d values", len(args))
	}
	samples := make([]batch.Sample, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", args[i], err)
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", args[i+1], err)
		}
		samples = append(samples, batch.Sample{Point: crs.GeoPoint(x, y), ID: i / 2})
	}
	return samples, nil
}

func crsFlag(cmd *cobra.Command) (batch.CRS, error) {
	s, err := cmd.Flags().GetString("crs")
	if err != nil {
		return "", err
	}
	return batch.ParseCRS(s)
}
