// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez queries the NCBI E-utilities ESearch endpoint and returns
// the matching PubMed record identifiers for a query. It owns all
// backend-specific protocol detail: transport, requester identity, and XML
// parsing. Callers treat the returned identifiers as opaque strings.
package entrez

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fnery/cumulative-publications/internal/httputil"
	"github.com/fnery/cumulative-publications/pkg/types"
)

// esearchBase is the E-utilities ESearch endpoint. Declared as a var so
// tests can substitute an httptest server.
var esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

// Searcher performs one remote lookup and returns every matching record
// identifier. The survey loop depends on this interface rather than the
// concrete client so tests can drive the aggregation with canned results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Client queries the ESearch endpoint.
type Client struct {
	Client *http.Client
	Config types.EntrezConfig
}

// NewClient returns a Client with an http.Client built from cfg.
func NewClient(cfg types.EntrezConfig) *Client {
	return &Client{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}
}

// Search runs one ESearch query and returns the matching identifiers.
//
// The result-page size (retmax) must capture the true total match count:
// when the backend reports more matches than it returned, Search fails
// with IncompleteResultsError rather than silently truncating. A repeated
// identifier within one response fails with DuplicateIdentifiersError;
// the backend guarantees uniqueness and a repeat indicates a backend bug
// that deduplication here would mask.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"db":      {c.Config.Database},
		"term":    {query},
		"sort":    {c.Config.Sort},
		"retmax":  {strconv.Itoa(c.Config.RetMax)},
		"retmode": {"xml"},
		"tool":    {c.Config.Tool},
		"email":   {c.Config.Email},
	}
	if c.Config.APIKey != "" {
		params.Set("api_key", c.Config.APIKey)
	}

	reqURL := esearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, c.Config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("ESearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESearch returned HTTP %d", resp.StatusCode)
	}

	var result esearchResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing ESearch response: %w", err)
	}

	ids := result.IDList.IDs

	if result.Count != len(ids) {
		return nil, &IncompleteResultsError{
			Found:    result.Count,
			Returned: len(ids),
			Query:    query,
		}
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, &DuplicateIdentifiersError{ID: id, Query: query}
		}
		seen[id] = struct{}{}
	}

	return ids, nil
}

// ESearch XML structures.
type esearchResult struct {
	XMLName  xml.Name      `xml:"eSearchResult"`
	Count    int           `xml:"Count"`
	RetMax   int           `xml:"RetMax"`
	RetStart int           `xml:"RetStart"`
	IDList   esearchIDList `xml:"IdList"`
}

type esearchIDList struct {
	IDs []string `xml:"Id"`
}
