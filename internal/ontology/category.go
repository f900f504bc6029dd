// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package ontology

import (
	"sync"

	"github.com/sigil-dev/rdfexplorer/internal/vocab"
)

// CategoryMemo caches resolved categories. It is append-only for the life
// of one domain graph; callers swap in a fresh memo when the graph changes.
// Safe for concurrent use.
type CategoryMemo struct {
	mu      sync.Mutex
	entries map[string]categoryEntry
}

type categoryEntry struct {
	category string
	cycle    bool
}

// NewCategoryMemo returns an empty memo.
func NewCategoryMemo() *CategoryMemo {
	return &CategoryMemo{entries: make(map[string]categoryEntry)}
}

// Len reports how many nodes have a cached category.
func (m *CategoryMemo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Resolver assigns each domain node its topmost non-abstract ancestor along
// the hierarchy predicate. Only the first qualifying parent in declaration
// order is followed.
type Resolver struct {
	table   *Table
	graph   *DomainGraph
	vocab   *vocab.Vocabulary
	parents map[string][]string
	memo    *CategoryMemo
}

// NewResolver indexes hierarchy parents of domain nodes. A nil memo gets a
// private one.
func NewResolver(t *Table, g *DomainGraph, v *vocab.Vocabulary, memo *CategoryMemo) *Resolver {
	if memo == nil {
		memo = NewCategoryMemo()
	}
	parents := make(map[string][]string)
	for _, r := range t.relations {
		if r.Predicate != v.HierarchyPredicate || !g.Has(r.Source) {
			continue
		}
		parents[r.Source] = append(parents[r.Source], r.Target)
	}
	return &Resolver{table: t, graph: g, vocab: v, parents: parents, memo: memo}
}

// Category returns the category of a domain node. cycle is true when the
// walk had to skip a parent it had already visited. Non-domain ids resolve
// to "".
func (r *Resolver) Category(id string) (category string, cycle bool) {
	if !r.graph.Has(id) {
		return "", false
	}
	r.memo.mu.Lock()
	defer r.memo.mu.Unlock()
	e := r.resolve(id, make(map[string]struct{}))
	return e.category, e.cycle
}

func (r *Resolver) resolve(id string, visited map[string]struct{}) categoryEntry {
	if e, ok := r.memo.entries[id]; ok {
		return e
	}
	visited[id] = struct{}{}

	var (
		next  string
		cycle bool
	)
	for _, p := range r.parents[id] {
		if !r.graph.Has(p) || r.vocab.IsAbstractRoot(p) {
			continue
		}
		if _, seen := visited[p]; seen {
			cycle = true
			continue
		}
		if next == "" {
			next = p
		}
	}

	// No usable parent: the node is its own category, abstract root or not.
	e := categoryEntry{category: id, cycle: cycle}
	if next != "" {
		up := r.resolve(next, visited)
		e = categoryEntry{category: up.category, cycle: cycle || up.cycle}
	}
	r.memo.entries[id] = e
	return e
}

// Assign sets Category and CategoryLabel on every domain node and returns
// how many resolutions touched a cycle.
func (r *Resolver) Assign() (cycles int) {
	for _, n := range r.graph.Nodes {
		category, cycle := r.Category(n.ID)
		n.Category = category
		n.CategoryLabel = r.table.categoryLabel(category)
		if cycle {
			cycles++
		}
	}
	return cycles
}
