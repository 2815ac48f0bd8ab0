package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/banshee-data/dggs/internal/celldb"
)

func newCellsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cells [flags] [<run id>]",
		Short: "List recorded runs, the busiest cells of one run, or the samples in one cell",
		Args:  cobra.MaximumNArgs(1),
		RunE:  doCells,
	}
	cmd.Flags().String("db", "", "`<path>` of the cell database")
	cmd.Flags().IntP("limit", "n", 20, "number of cells to list, 0 for all")
	cmd.Flags().Uint64("serial", 0, "list the samples in the cell with this `<serial>` instead")
	cmd.Flags().Bool("delete", false, "delete the run instead of listing it")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func doCells(cmd *cobra.Command, args []string) (err error) {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")
	serial, _ := cmd.Flags().GetUint64("serial")
	del, _ := cmd.Flags().GetBool("delete")

	db, err := celldb.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer func() {
		if ferr := tw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to write output: %w", ferr)
		}
	}()

	if len(args) == 0 {
		if del || serial != 0 {
			return fmt.Errorf("--delete and --serial need a run id")
		}
		runs, err := db.Runs(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "RUN\tCREATED\tOUTPUT\tAPERTURE\tRESOLUTION\tSAMPLES\tSKIPPED")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
				r.RunID, r.Created().UTC().Format(time.RFC3339), r.Output, r.Aperture, r.Resolution, r.Samples, r.Skipped)
		}
		return nil
	}

	runID := args[0]
	if del {
		if err := db.DeleteRun(ctx, runID); err != nil {
			return err
		}
		fmt.Fprintf(tw, "deleted run %s\n", runID)
		return nil
	}

	if _, err := db.GetRun(ctx, runID); err != nil {
		return err
	}

	if serial != 0 {
		hits, err := db.CellHits(ctx, runID, serial)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "SAMPLE\tLON\tLAT\tTRIANGLE")
		for _, h := range hits {
			fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%d\n", h.Sample, h.Lon, h.Lat, h.Triangle)
		}
		return nil
	}

	counts, err := db.CellCounts(ctx, runID, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "SERIAL\tQUAD\tD\tI\tHITS")
	for _, c := range counts {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n", c.Serial, c.Quad, c.D, c.I, c.Hits)
	}
	return nil
}
