// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package survey runs the yearly publication-count survey: one query per
// (technique, year) pair, cross-year deduplication of record identifiers
// within each technique, and the two JSON artifacts recording the counts
// and the literal queries issued.
package survey

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/fnery/cumulative-publications/internal/entrez"
	"github.com/fnery/cumulative-publications/pkg/types"
)

// Artifacts holds the survey outputs: one map per technique, in technique
// declaration order. Counts maps year to the number of record identifiers
// first seen in that year; Queries maps year to the literal query string
// issued for it.
type Artifacts struct {
	Counts  []map[int]int
	Queries []map[int]string
}

// BuildQuery joins the organ filter, the technique fragment, the modality
// filter, and the publication-year filter with a logical AND in the Entrez
// term syntax.
func BuildQuery(organ, fragment, modality string, year int) string {
	return fmt.Sprintf("%s AND %s AND %s AND %d[PDAT]", organ, fragment, modality, year)
}

// Run executes the survey: for each technique in declaration order it
// queries every year in ascending order, counts only identifiers not
// already seen for that technique in an earlier year, and records the
// count and the query string. Per-query progress lines go to w unless
// cfg.Quiet is set.
//
// Within one technique the sum of the yearly counts equals the number of
// distinct identifiers the backend ever returned for it; an identifier
// returned again in a later year is not counted twice. The seen set is
// reset between techniques.
//
// The issuing rate never exceeds cfg.MaxRequestsPerSecond: a token-bucket
// limiter with interval 1/rate + cfg.SafetyMargin gates every request.
// Execution is strictly sequential; the first failed query aborts the run.
// Empty technique or year lists yield empty artifacts.
func Run(ctx context.Context, cfg types.SurveyConfig, searcher entrez.Searcher, w io.Writer) (Artifacts, error) {
	years := cfg.Years()
	techniques := cfg.Techniques

	arts := Artifacts{
		Counts:  make([]map[int]int, 0, len(techniques)),
		Queries: make([]map[int]string, 0, len(techniques)),
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.MaxRequestsPerSecond > 0 {
		interval := time.Duration(float64(time.Second)/cfg.MaxRequestsPerSecond) + cfg.SafetyMargin
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	total := len(techniques) * len(years)
	queryNum := 0

	for _, tech := range techniques {
		seen := make(map[string]struct{})
		counts := make(map[int]int, len(years))
		queries := make(map[int]string, len(years))

		for _, year := range years {
			queryNum++
			query := BuildQuery(cfg.Organ, tech.Fragment, cfg.Modality, year)

			if err := limiter.Wait(ctx); err != nil {
				return Artifacts{}, err
			}

			ids, err := searcher.Search(ctx, query)
			if err != nil {
				return Artifacts{}, fmt.Errorf("query %d/%d %q: %w", queryNum, total, query, err)
			}

			// Count only identifiers not seen in an earlier year for
			// this technique. Uniqueness within one response is the
			// collaborator's contract, not re-checked here.
			newCount := 0
			for _, id := range ids {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				newCount++
			}

			counts[year] = newCount
			queries[year] = query

			if !cfg.Quiet {
				fmt.Fprintf(w, "Query #%d/%d: %s; found: %d; after removing duplicates: %d\n",
					queryNum, total, query, len(ids), newCount)
			}
		}

		arts.Counts = append(arts.Counts, counts)
		arts.Queries = append(arts.Queries, queries)
	}

	return arts, nil
}
