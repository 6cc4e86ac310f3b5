// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fnery/cumulative-publications/internal/entrez"
	"github.com/fnery/cumulative-publications/internal/survey"
	"github.com/fnery/cumulative-publications/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query PubMed per technique and year, writing the JSON artifacts",
	Long: `Search issues one ESearch query per (technique, year) pair in order,
counts only record identifiers not already seen for an earlier year of the
same technique, and writes the counts and queries artifacts as JSON. The
issuing rate is held below the configured requests-per-second ceiling.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("email", "", "requester contact address (NCBI policy)")
	searchCmd.Flags().Int("year-from", 0, "first publication year (inclusive)")
	searchCmd.Flags().Int("year-to", 0, "last publication year (inclusive)")
	searchCmd.Flags().String("counts-file", "", "path for the yearly counts artifact")
	searchCmd.Flags().String("queries-file", "", "path for the queries artifact")
	searchCmd.Flags().Int("retmax", 0, "ESearch result-page size")
	searchCmd.Flags().Bool("quiet", false, "suppress per-query progress output")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySearchFlags(cmd, &cfg)
	return doSearch(cmd, cfg)
}

func applySearchFlags(cmd *cobra.Command, cfg *types.Config) {
	if cmd.Flags().Changed("email") {
		cfg.Entrez.Email, _ = cmd.Flags().GetString("email")
	}
	if cmd.Flags().Changed("year-from") {
		cfg.Survey.YearFrom, _ = cmd.Flags().GetInt("year-from")
	}
	if cmd.Flags().Changed("year-to") {
		cfg.Survey.YearTo, _ = cmd.Flags().GetInt("year-to")
	}
	if cmd.Flags().Changed("counts-file") {
		cfg.Survey.CountsFile, _ = cmd.Flags().GetString("counts-file")
	}
	if cmd.Flags().Changed("queries-file") {
		cfg.Survey.QueriesFile, _ = cmd.Flags().GetString("queries-file")
	}
	if cmd.Flags().Changed("retmax") {
		cfg.Entrez.RetMax, _ = cmd.Flags().GetInt("retmax")
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Survey.Quiet, _ = cmd.Flags().GetBool("quiet")
	}
}

// doSearch runs the survey against the live ESearch endpoint and persists
// both artifacts.
func doSearch(cmd *cobra.Command, cfg types.Config) error {
	if cfg.Entrez.Email == "" {
		return fmt.Errorf("no requester email configured: NCBI requires a real contact address (set entrez.email, --email, or .secrets/entrez-email)")
	}

	client := entrez.NewClient(cfg.Entrez)
	arts, err := survey.Run(cmd.Context(), cfg.Survey, client, os.Stdout)
	if err != nil {
		return err
	}

	if err := survey.WriteArtifacts(arts, cfg.Survey.CountsFile, cfg.Survey.QueriesFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s and %s\n", cfg.Survey.CountsFile, cfg.Survey.QueriesFile)
	return nil
}
