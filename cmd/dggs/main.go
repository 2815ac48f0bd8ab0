// Command dggs projects geographic points onto the ISEA discrete global grid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/banshee-data/dggs/internal/config"
	"github.com/banshee-data/dggs/internal/isea"
	"github.com/banshee-data/dggs/internal/monitoring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "dggs:", err)
		os.Exit(1)
	}
}

// NewCmd builds the command tree.
func NewCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dggs [command] [flags]",
		Short:         "ISEA discrete global grid tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
				monitoring.SetLogger(nil)
			}
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "`<path>` to a .json or .yaml grid configuration")
	rootCmd.PersistentFlags().StringP("proj", "p", "", "grid options, e.g. \"+orient=pole +mode=di +resolution=5\"; overrides --config")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress diagnostic logging")

	rootCmd.AddCommand(
		newProjectCmd(),
		newBatchCmd(),
		newCellsCmd(),
		newRenderCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadGrid merges --config and --proj, in that order, into a grid.
func loadGrid(cmd *cobra.Command) (*config.GridFile, *isea.Grid, error) {
	file := &config.GridFile{}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	if path != "" {
		loaded, err := config.LoadGridFile(path)
		if err != nil {
			return nil, nil, err
		}
		file.Merge(loaded)
	}

	proj, err := cmd.Flags().GetString("proj")
	if err != nil {
		return nil, nil, err
	}
	if proj != "" {
		parsed, err := config.ParseProjString(proj)
		if err != nil {
			return nil, nil, err
		}
		file.Merge(parsed)
	}

	cfg, err := file.GridConfig()
	if err != nil {
		return nil, nil, err
	}
	g, err := isea.NewGrid(cfg)
	if err != nil {
		return nil, nil, err
	}
	return file, g, nil
}
