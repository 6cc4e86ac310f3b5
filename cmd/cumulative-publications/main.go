// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cumulative-publications CLI.
// Running it with no arguments searches PubMed for the configured
// technique/year grid and then renders the cumulative chart; the search
// and plot halves are also available as separate subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fnery/cumulative-publications/internal/secrets"
	"github.com/fnery/cumulative-publications/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, otherwise the secret
// value for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd runs the full pipeline: search then plot.
var rootCmd = &cobra.Command{
	Use:   "cumulative-publications",
	Short: "Survey PubMed publication counts per MRI technique and plot their growth",
	Long: `cumulative-publications queries PubMed once per (technique, year) pair,
removes record identifiers already counted for an earlier year of the same
technique, saves the yearly counts and the literal queries as JSON, and
renders a cumulative-count-over-time chart.

With no arguments the search and plot stages run in sequence. Use the
search and plot subcommands to run either half on its own; a finished
search can be re-plotted without touching the network.

NCBI requires a real contact address of the software developer with every
request. Set it in the config file (entrez.email), the --email flag, or
.secrets/entrez-email.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := doSearch(cmd, cfg); err != nil {
			return err
		}
		return doPlot(cfg)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cumulative-publications.yaml or ~/.config/cumulative-publications/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cumulative-publications")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cumulative-publications"))
		}
	}

	viper.SetEnvPrefix("CUMULATIVE_PUBLICATIONS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: study defaults, then
// config-file and environment overrides, then secrets fallbacks for the
// requester identity.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()

	if v := viper.GetString("entrez.email"); v != "" {
		cfg.Entrez.Email = v
	}
	if v := viper.GetString("entrez.api_key"); v != "" {
		cfg.Entrez.APIKey = v
	}
	if viper.IsSet("entrez.timeout") {
		cfg.Entrez.Timeout = viper.GetDuration("entrez.timeout")
	}
	if v := viper.GetString("entrez.user_agent"); v != "" {
		cfg.Entrez.UserAgent = v
	}
	if v := viper.GetString("entrez.database"); v != "" {
		cfg.Entrez.Database = v
	}
	if v := viper.GetString("entrez.sort"); v != "" {
		cfg.Entrez.Sort = v
	}
	if viper.IsSet("entrez.retmax") {
		cfg.Entrez.RetMax = viper.GetInt("entrez.retmax")
	}
	if viper.IsSet("entrez.max_retries") {
		cfg.Entrez.MaxRetries = viper.GetInt("entrez.max_retries")
	}

	if v := viper.GetString("survey.organ"); v != "" {
		cfg.Survey.Organ = v
	}
	if v := viper.GetString("survey.modality"); v != "" {
		cfg.Survey.Modality = v
	}
	if viper.IsSet("survey.techniques") {
		var techniques []types.Technique
		if err := viper.UnmarshalKey("survey.techniques", &techniques); err != nil {
			return cfg, fmt.Errorf("parsing survey.techniques: %w", err)
		}
		cfg.Survey.Techniques = techniques
	}
	if viper.IsSet("survey.year_from") {
		cfg.Survey.YearFrom = viper.GetInt("survey.year_from")
	}
	if viper.IsSet("survey.year_to") {
		cfg.Survey.YearTo = viper.GetInt("survey.year_to")
	}
	if viper.IsSet("survey.max_requests_per_second") {
		cfg.Survey.MaxRequestsPerSecond = viper.GetFloat64("survey.max_requests_per_second")
	}
	if viper.IsSet("survey.safety_margin") {
		cfg.Survey.SafetyMargin = viper.GetDuration("survey.safety_margin")
	}
	if v := viper.GetString("survey.counts_file"); v != "" {
		cfg.Survey.CountsFile = v
	}
	if v := viper.GetString("survey.queries_file"); v != "" {
		cfg.Survey.QueriesFile = v
	}
	if viper.IsSet("survey.quiet") {
		cfg.Survey.Quiet = viper.GetBool("survey.quiet")
	}

	if v := viper.GetString("plot.output_file"); v != "" {
		cfg.Plot.OutputFile = v
	}
	if viper.IsSet("plot.dpi") {
		cfg.Plot.DPI = viper.GetInt("plot.dpi")
	}
	if viper.IsSet("plot.width_inches") {
		cfg.Plot.WidthInches = viper.GetFloat64("plot.width_inches")
	}
	if viper.IsSet("plot.height_inches") {
		cfg.Plot.HeightInches = viper.GetFloat64("plot.height_inches")
	}
	if viper.IsSet("plot.x_min") {
		cfg.Plot.XMin = viper.GetInt("plot.x_min")
	}
	if viper.IsSet("plot.x_max") {
		cfg.Plot.XMax = viper.GetInt("plot.x_max")
	}

	cfg.Entrez.Email = secretDefault("entrez-email", cfg.Entrez.Email)
	cfg.Entrez.APIKey = secretDefault("entrez-api-key", cfg.Entrez.APIKey)

	if cfg.Entrez.Timeout <= 0 {
		cfg.Entrez.Timeout = 60 * time.Second
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
