// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate

import (
	"sort"

	"github.com/sigil-dev/rdfexplorer/internal/ontology"
)

// Limits used by the explorer's node-count control.
const (
	DefaultLimit          = 500
	LargeDatasetThreshold = 1000
)

// DefaultLimitSteps are the positions of the node-limit control.
var DefaultLimitSteps = []int{100, 250, 500, 1000, 2000, 5000, 10000}

// WindowRequest selects what to render. Zero values mean no class filter, no
// focus, and DefaultLimit.
type WindowRequest struct {
	Class string
	Focus string
	Limit int
}

// Window is a node subset plus exactly the domain links between its nodes.
type Window struct {
	Nodes []*ontology.Entity  `json:"nodes"`
	Links []ontology.Relation `json:"links"`
}

// Windower computes windows over one domain graph. Degree and adjacency are
// indexed once; Window itself has no side effects and is safe for concurrent
// use.
type Windower struct {
	graph     *ontology.DomainGraph
	degree    map[string]int
	neighbors map[string][]string
}

// NewWindower indexes g.
func NewWindower(g *ontology.DomainGraph) *Windower {
	w := &Windower{
		graph:     g,
		degree:    make(map[string]int, len(g.Nodes)),
		neighbors: make(map[string][]string, len(g.Nodes)),
	}
	for _, l := range g.Links {
		w.degree[l.Source]++
		w.degree[l.Target]++
		w.neighbors[l.Source] = append(w.neighbors[l.Source], l.Target)
		w.neighbors[l.Target] = append(w.neighbors[l.Target], l.Source)
	}
	return w
}

// Degree is the number of domain links touching id.
func (w *Windower) Degree(id string) int { return w.degree[id] }

// Neighborhood returns id and its direct neighbors as a set.
func (w *Windower) Neighborhood(id string) map[string]bool {
	set := map[string]bool{id: true}
	for _, n := range w.neighbors[id] {
		set[n] = true
	}
	return set
}

// Window applies the class filter, focus inclusion and limit, in that order.
// A focus node present in the graph and all its neighbors are always kept.
func (w *Windower) Window(req WindowRequest) Window {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	nodes := w.graph.Nodes
	if req.Class != "" {
		nodes = w.classFilter(req.Class)
	}

	var focus map[string]bool
	if req.Focus != "" && w.graph.Has(req.Focus) {
		// Merged even when the focus passed the class filter, so its whole
		// neighborhood survives.
		focus = w.Neighborhood(req.Focus)
		nodes = w.includeFocus(nodes, focus)
	}

	if len(nodes) > limit {
		nodes = w.rank(nodes, focus, limit)
	}

	return Window{Nodes: nodes, Links: w.linksWithin(nodes)}
}

func (w *Windower) classFilter(class string) []*ontology.Entity {
	keep := make(map[string]bool)
	for _, n := range w.graph.Nodes {
		if n.Type == class {
			keep[n.ID] = true
		}
	}
	matched := make([]string, 0, len(keep))
	for id := range keep {
		matched = append(matched, id)
	}
	for _, id := range matched {
		for _, nb := range w.neighbors[id] {
			keep[nb] = true
		}
	}

	out := make([]*ontology.Entity, 0, len(keep))
	for _, n := range w.graph.Nodes {
		if keep[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// includeFocus appends focus-neighborhood nodes missing from nodes, in graph
// order. It never removes anything.
func (w *Windower) includeFocus(nodes []*ontology.Entity, focus map[string]bool) []*ontology.Entity {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}
	out := nodes
	copied := false
	for _, n := range w.graph.Nodes {
		if !focus[n.ID] || present[n.ID] {
			continue
		}
		if !copied {
			out = append(make([]*ontology.Entity, 0, len(nodes)+len(focus)), nodes...)
			copied = true
		}
		out = append(out, n)
	}
	return out
}

// rank orders by degree descending, stable on ties. The focus neighborhood
// is kept whole; remaining slots go to the best-ranked other nodes.
func (w *Windower) rank(nodes []*ontology.Entity, focus map[string]bool, limit int) []*ontology.Entity {
	sorted := append([]*ontology.Entity(nil), nodes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return w.degree[sorted[i].ID] > w.degree[sorted[j].ID]
	})

	if focus == nil {
		return sorted[:limit]
	}

	kept := make([]*ontology.Entity, 0, limit)
	rest := make([]*ontology.Entity, 0, len(sorted))
	for _, n := range sorted {
		if focus[n.ID] {
			kept = append(kept, n)
		} else {
			rest = append(rest, n)
		}
	}
	slots := max(0, limit-len(kept))
	return append(kept, rest[:min(slots, len(rest))]...)
}

func (w *Windower) linksWithin(nodes []*ontology.Entity) []ontology.Relation {
	in := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		in[n.ID] = true
	}
	links := make([]ontology.Relation, 0)
	for _, l := range w.graph.Links {
		if in[l.Source] && in[l.Target] {
			links = append(links, l)
		}
	}
	return links
}

// SnapLimit returns the first step at or above limit, or the last step.
func SnapLimit(steps []int, limit int) int {
	if len(steps) == 0 {
		return limit
	}
	for _, s := range steps {
		if s >= limit {
			return s
		}
	}
	return steps[len(steps)-1]
}

// LargeDataset reports whether the node-limit control should be shown.
func LargeDataset(g *ontology.DomainGraph, threshold int) bool {
	if threshold <= 0 {
		threshold = LargeDatasetThreshold
	}
	return len(g.Nodes) > threshold
}
