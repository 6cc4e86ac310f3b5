// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared configuration and data-model types for
// the cumulative-publications pipeline: the Entrez search client settings,
// the survey (search-and-aggregate) settings, and the plot settings.
package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cumulative-publications/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EntrezConfig holds settings for the NCBI E-utilities ESearch client.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is the requester contact address. NCBI requires a real,
	// reachable address of the software developer and will attempt
	// contact before blocking access on policy violations.
	Email string `json:"email" yaml:"email"`

	// Tool identifies this program to NCBI (tool parameter).
	Tool string `json:"tool" yaml:"tool"`

	// APIKey is an optional NCBI API key. With a key NCBI allows a
	// higher request ceiling (10/s instead of 3/s).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Database is the Entrez database to search (default "pubmed").
	Database string `json:"database" yaml:"database"`

	// Sort is the result ordering requested from the backend.
	Sort string `json:"sort" yaml:"sort"`

	// RetMax is the result-page size. It must be large enough to hold
	// every match for a single yearly query; when the backend reports
	// more matches than were returned the search fails rather than
	// truncating.
	RetMax int `json:"retmax" yaml:"retmax"`

	// MaxRetries bounds the HTTP 429 backoff loop (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// Technique is one search category tracked as a separate output series.
type Technique struct {
	// Fragment is the query-term fragment for this technique,
	// e.g. "arterial spin label*".
	Fragment string `json:"fragment" yaml:"fragment"`

	// Label is the display name used in the plot legend.
	Label string `json:"label" yaml:"label"`
}

// SurveyConfig holds settings for the search-and-aggregate stage.
type SurveyConfig struct {
	// Organ is the fixed organ filter prepended to every query.
	Organ string `json:"organ" yaml:"organ"`

	// Modality is the fixed modality filter appended to every query.
	Modality string `json:"modality" yaml:"modality"`

	// Techniques lists the tracked search categories in output order.
	Techniques []Technique `json:"techniques" yaml:"techniques"`

	// YearFrom and YearTo bound the inclusive publication-year range,
	// processed in ascending order.
	YearFrom int `json:"year_from" yaml:"year_from"`
	YearTo   int `json:"year_to" yaml:"year_to"`

	// MaxRequestsPerSecond is the backend's documented request ceiling.
	MaxRequestsPerSecond float64 `json:"max_requests_per_second" yaml:"max_requests_per_second"`

	// SafetyMargin is added to the inter-request interval so the issuing
	// rate stays below the ceiling.
	SafetyMargin time.Duration `json:"safety_margin" yaml:"safety_margin"`

	// CountsFile and QueriesFile name the persisted JSON artifacts.
	CountsFile  string `json:"counts_file" yaml:"counts_file"`
	QueriesFile string `json:"queries_file" yaml:"queries_file"`

	// Quiet suppresses per-query progress output.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// Years returns the inclusive year range as an ascending slice. An
// inverted range yields an empty slice.
func (c SurveyConfig) Years() []int {
	if c.YearTo < c.YearFrom {
		return nil
	}
	years := make([]int, 0, c.YearTo-c.YearFrom+1)
	for y := c.YearFrom; y <= c.YearTo; y++ {
		years = append(years, y)
	}
	return years
}

// Labels returns the technique display labels in declaration order.
func (c SurveyConfig) Labels() []string {
	labels := make([]string, len(c.Techniques))
	for i, t := range c.Techniques {
		labels[i] = t.Label
	}
	return labels
}

// PlotConfig holds settings for the chart renderer.
type PlotConfig struct {
	// OutputFile names the rendered PNG.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// DPI is the raster resolution (default 300).
	DPI int `json:"dpi" yaml:"dpi"`

	// WidthInches and HeightInches set the canvas size.
	WidthInches  float64 `json:"width_inches" yaml:"width_inches"`
	HeightInches float64 `json:"height_inches" yaml:"height_inches"`

	// XMin and XMax bound the x axis when non-zero.
	XMin int `json:"x_min" yaml:"x_min"`
	XMax int `json:"x_max" yaml:"x_max"`
}

// Config groups all stage configurations.
type Config struct {
	Entrez EntrezConfig `json:"entrez" yaml:"entrez"`
	Survey SurveyConfig `json:"survey" yaml:"survey"`
	Plot   PlotConfig   `json:"plot" yaml:"plot"`
}

// DefaultConfig returns the configuration of the original renal-MRI study:
// four functional MRI techniques searched against PubMed for publication
// years 1989-2020 at the documented 3 requests/second ceiling.
func DefaultConfig() Config {
	return Config{
		Entrez: EntrezConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   60 * time.Second,
				UserAgent: "cumulative-publications/0.1",
			},
			Tool:       "cumulative-publications",
			Database:   "pubmed",
			Sort:       "relevance",
			RetMax:     2000,
			MaxRetries: 5,
		},
		Survey: SurveyConfig{
			Organ:    "(kidney* OR renal)",
			Modality: "MRI",
			Techniques: []Technique{
				{
					Fragment: "(diffusion weighted imaging OR diffusion tensor imaging OR intravoxel incoherent motion)",
					Label:    "Diffusion imaging",
				},
				{
					Fragment: "arterial spin label*",
					Label:    "Arterial spin labeling",
				},
				{
					Fragment: "blood oxygenation level-dependent",
					Label:    "BOLD",
				},
				{
					Fragment: "(T1 mapping OR T2 mapping)",
					Label:    "T1&T2 mapping",
				},
			},
			YearFrom:             1989,
			YearTo:               2020,
			MaxRequestsPerSecond: 3,
			SafetyMargin:         100 * time.Millisecond,
			CountsFile:           "n_ids.json",
			QueriesFile:          "queries.json",
		},
		Plot: PlotConfig{
			OutputFile:   "cumulative_publications.png",
			DPI:          300,
			WidthInches:  8,
			HeightInches: 5,
			XMin:         1989,
			XMax:         2020,
		},
	}
}
