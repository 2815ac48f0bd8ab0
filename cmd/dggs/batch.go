package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/banshee-data/dggs/internal/batch"
	"github.com/banshee-data/dggs/internal/celldb"
	"github.com/banshee-data/dggs/internal/config"
	"github.com/banshee-data/dggs/internal/isea"
)

const (
	formatGeoJSON = "geojson"
	formatText    = "text"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags]",
		Short: "Project a GeoJSON or text point file concurrently",
		Args:  cobra.NoArgs,
		RunE:  doBatch,
	}
	cmd.Flags().StringP("in", "i", "-", "`<path>` of the input points, - for stdin")
	cmd.Flags().StringP("out", "o", "-", "`<path>` of the output, - for stdout")
	cmd.Flags().String("format", "", "input and output format: geojson or text (default from the input extension)")
	cmd.Flags().String("crs", "lonlat", "input coordinates: lonlat or webmercator")
	cmd.Flags().IntP("workers", "w", 0, "worker count (default one per CPU)")
	cmd.Flags().Bool("skip-invalid", false, "keep going past points that cannot be projected")
	cmd.Flags().String("db", "", "`<path>` of a cell database to record the run in")
	return cmd
}

func doBatch(cmd *cobra.Command, args []string) error {
	file, g, err := loadGrid(cmd)
	if err != nil {
		return err
	}
	crs, err := crsFlag(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	in, _ := flags.GetString("in")
	out, _ := flags.GetString("out")
	format, _ := flags.GetString("format")
	workers, _ := flags.GetInt("workers")
	skip, _ := flags.GetBool("skip-invalid")
	dbPath, _ := flags.GetString("db")

	if format == "" {
		format = formatFor(in)
	}
	if format != formatGeoJSON && format != formatText {
		return fmt.Errorf("unknown format %q (want geojson or text)", format)
	}

	samples, err := readSamples(cmd, in, format, crs)
	if err != nil {
		return err
	}

	results, err := batch.Run(cmd.Context(), g, samples, batch.Options{Workers: workers, SkipInvalid: skip})
	if err != nil {
		return err
	}

	if err := writeResults(cmd, out, format, results); err != nil {
		return err
	}

	if dbPath != "" {
		return recordRun(cmd, dbPath, file, g.Config(), results)
	}
	return nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return formatGeoJSON
	default:
		return formatText
	}
}

func readSamples(cmd *cobra.Command, path, format string, crs batch.CRS) ([]batch.Sample, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if format == formatGeoJSON {
		return batch.ReadGeoJSON(r, crs)
	}
	return batch.ReadText(r, crs)
}

func writeResults(cmd *cobra.Command, path, format string, results []batch.Result) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, ferr := os.Create(filepath.Clean(path))
		if ferr != nil {
			return fmt.Errorf("failed to create output: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output: %w", cerr)
			}
		}()
		w = f
	}
	if format == formatGeoJSON {
		return batch.WriteGeoJSON(w, results)
	}
	return batch.WriteText(w, results)
}

func recordRun(cmd *cobra.Command, path string, file *config.GridFile, cfg isea.GridConfig, results []batch.Result) error {
	db, err := celldb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.RecordRun(cmd.Context(), cfg, file.ProjString(), results)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "run %s: %d samples, %d skipped\n", run.RunID, run.Samples, run.Skipped)
	return nil
}
