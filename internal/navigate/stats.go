// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate

import (
	"sort"

	"github.com/sigil-dev/rdfexplorer/internal/ontology"
)

// Stats summarizes a loaded dataset.
type Stats struct {
	Statements  int             `json:"statements"`
	Entities    int             `json:"entities"`
	Relations   int             `json:"relations"`
	DomainNodes int             `json:"domainNodes"`
	DomainLinks int             `json:"domainLinks"`
	Classes     []ClassCount    `json:"classes"`
	Categories  []CategoryCount `json:"categories"`
	TopRoots    []RootCount     `json:"topRoots"`
	Roots       int             `json:"roots"`
	Promoted    int             `json:"promoted"`
}

// ClassCount is the number of domain nodes of one type.
type ClassCount struct {
	ontology.Class
	Nodes int `json:"nodes"`
}

// CategoryCount is the size of one category cluster.
type CategoryCount struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Nodes int    `json:"nodes"`
}

// RootCount describes one tree root.
type RootCount struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	DirectChildren int    `json:"directChildren"`
	Descendants    int    `json:"descendants"`
}

// ComputeStats counts the dataset and lists the top roots by descendants.
// Categories must already be assigned on g's nodes.
func ComputeStats(t *ontology.Table, g *ontology.DomainGraph, f *Forest, top int) Stats {
	s := Stats{
		Statements:  t.Statements(),
		Entities:    t.Len(),
		Relations:   len(t.Relations()),
		DomainNodes: len(g.Nodes),
		DomainLinks: len(g.Links),
		Roots:       len(f.Roots()),
		Promoted:    len(f.Promoted()),
	}

	classIdx := make(map[string]int, len(g.Classes))
	s.Classes = make([]ClassCount, 0, len(g.Classes))
	for _, c := range g.Classes {
		classIdx[c.URI] = len(s.Classes)
		s.Classes = append(s.Classes, ClassCount{Class: c})
	}

	catIdx := make(map[string]int)
	s.Categories = []CategoryCount{}
	for _, n := range g.Nodes {
		s.Classes[classIdx[n.Type]].Nodes++
		if n.Category == "" {
			continue
		}
		i, ok := catIdx[n.Category]
		if !ok {
			i = len(s.Categories)
			catIdx[n.Category] = i
			s.Categories = append(s.Categories, CategoryCount{ID: n.Category, Label: n.CategoryLabel})
		}
		s.Categories[i].Nodes++
	}
	sort.SliceStable(s.Categories, func(i, j int) bool {
		return s.Categories[i].Nodes > s.Categories[j].Nodes
	})

	roots := f.Roots()
	if top > 0 && len(roots) > top {
		roots = roots[:top]
	}
	s.TopRoots = make([]RootCount, 0, len(roots))
	for _, r := range roots {
		s.TopRoots = append(s.TopRoots, RootCount{
			ID:             r,
			Label:          t.ResolveLabel(r),
			DirectChildren: len(f.Children(r)),
			Descendants:    f.Descendants(r),
		})
	}
	return s
}
