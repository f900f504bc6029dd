// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate

import (
	"strings"

	"github.com/sigil-dev/rdfexplorer/internal/ontology"
)

// DefaultSearchResults caps node matches when no limit is given.
const DefaultSearchResults = 50

var searchReplacer = strings.NewReplacer("_", " ", "-", " ")

// SearchResult holds node and class matches for a query.
type SearchResult struct {
	Query     string             `json:"query"`
	Nodes     []*ontology.Entity `json:"nodes"`
	Classes   []ontology.Class   `json:"classes"`
	Truncated bool               `json:"truncated"`
}

// Search matches domain node labels and class labels or URIs. Matching is
// case-insensitive and treats underscores and hyphens as spaces.
func Search(g *ontology.DomainGraph, query string, maxResults int) SearchResult {
	res := SearchResult{Query: query, Nodes: []*ontology.Entity{}, Classes: []ontology.Class{}}
	if strings.TrimSpace(query) == "" {
		return res
	}
	if maxResults <= 0 {
		maxResults = DefaultSearchResults
	}
	q := normalize(query)

	for _, n := range g.Nodes {
		if !strings.Contains(normalize(n.Label), q) {
			continue
		}
		res.Nodes = append(res.Nodes, n)
		if len(res.Nodes) >= maxResults {
			res.Truncated = true
			break
		}
	}

	for _, c := range g.Classes {
		if strings.Contains(normalize(c.Label), q) || strings.Contains(normalize(c.URI), q) {
			res.Classes = append(res.Classes, c)
		}
	}
	return res
}

func normalize(s string) string {
	return searchReplacer.Replace(strings.ToLower(s))
}
