// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import "fmt"

// IncompleteResultsError reports that the backend matched more records
// than it returned, meaning the configured retmax page size is too small.
// Silent truncation would corrupt the yearly counts, so the run stops.
type IncompleteResultsError struct {
	Found    int
	Returned int
	Query    string
}

func (e *IncompleteResultsError) Error() string {
	return fmt.Sprintf("found %d records but only %d returned for %q: increase retmax",
		e.Found, e.Returned, e.Query)
}

// DuplicateIdentifiersError reports a repeated identifier within a single
// response, which violates the backend's uniqueness guarantee.
type DuplicateIdentifiersError struct {
	ID    string
	Query string
}

func (e *DuplicateIdentifiersError) Error() string {
	return fmt.Sprintf("non-unique identifier %s in results for %q", e.ID, e.Query)
}
