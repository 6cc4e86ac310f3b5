// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fnery/cumulative-publications/internal/plot"
	"github.com/fnery/cumulative-publications/internal/survey"
	"github.com/fnery/cumulative-publications/pkg/types"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the cumulative-publications chart from the counts artifact",
	Long: `Plot reads the persisted counts artifact, computes the running cumulative
sum per technique, and draws one labeled line per technique. The number of
configured technique labels must match the number of series in the counts
file.`,
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().String("counts-file", "", "path of the yearly counts artifact")
	plotCmd.Flags().String("output", "", "path for the rendered PNG")
	plotCmd.Flags().Int("dpi", 0, "raster resolution (default 300)")

	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyPlotFlags(cmd, &cfg)
	return doPlot(cfg)
}

func applyPlotFlags(cmd *cobra.Command, cfg *types.Config) {
	if cmd.Flags().Changed("counts-file") {
		cfg.Survey.CountsFile, _ = cmd.Flags().GetString("counts-file")
	}
	if cmd.Flags().Changed("output") {
		cfg.Plot.OutputFile, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("dpi") {
		cfg.Plot.DPI, _ = cmd.Flags().GetInt("dpi")
	}
}

// doPlot reads the counts artifact and renders the chart.
func doPlot(cfg types.Config) error {
	counts, err := survey.ReadCounts(cfg.Survey.CountsFile)
	if err != nil {
		return err
	}

	if err := plot.Render(counts, cfg.Survey.Labels(), cfg.Plot); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", cfg.Plot.OutputFile)
	return nil
}
