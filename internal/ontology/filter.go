// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package ontology

import "github.com/sigil-dev/rdfexplorer/internal/vocab"

// Class is a distinct node type present in the domain graph.
type Class struct {
	URI   string `json:"uri"`
	Label string `json:"label"`
}

// DomainGraph is the reduced view: named, allow-listed nodes and the
// semantic links between them. Every link endpoint is in Nodes.
type DomainGraph struct {
	Nodes   []*Entity  `json:"nodes"`
	Links   []Relation `json:"links"`
	Classes []Class    `json:"classes"`

	index map[string]*Entity
}

// Filter applies the vocabulary's allow-lists to the table. Unknown types and
// predicates are dropped, never reported.
func Filter(t *Table, v *vocab.Vocabulary) *DomainGraph {
	g := &DomainGraph{
		Nodes:   []*Entity{},
		Links:   []Relation{},
		Classes: []Class{},
		index:   make(map[string]*Entity),
	}

	seenClass := make(map[string]struct{})
	for _, e := range t.entities {
		if e.Anonymous || e.Type == "" || !v.IsDomainType(e.Type) {
			continue
		}
		g.Nodes = append(g.Nodes, e)
		g.index[e.ID] = e
		if _, ok := seenClass[e.Type]; !ok {
			seenClass[e.Type] = struct{}{}
			g.Classes = append(g.Classes, Class{URI: e.Type, Label: v.ClassLabel(e.Type)})
		}
	}

	for _, r := range t.relations {
		if !v.IsSemanticPredicate(r.Predicate) {
			continue
		}
		if !g.Has(r.Source) || !g.Has(r.Target) {
			continue
		}
		g.Links = append(g.Links, r)
	}

	return g
}

// Has reports whether id is a domain node.
func (g *DomainGraph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the domain node for id.
func (g *DomainGraph) Node(id string) (*Entity, bool) {
	e, ok := g.index[id]
	return e, ok
}

// Class returns the class entry for a type URI.
func (g *DomainGraph) Class(uri string) (Class, bool) {
	for _, c := range g.Classes {
		if c.URI == uri {
			return c, true
		}
	}
	return Class{}, false
}
