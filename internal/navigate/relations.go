// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate

import (
	"github.com/sigil-dev/rdfexplorer/internal/ontology"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
)

// RelationRef is one edge seen from the selected node. ID and Label name the
// other endpoint.
type RelationRef struct {
	Predicate    string `json:"predicate"`
	PredicateURI string `json:"predicateUri"`
	ID           string `json:"id"`
	Label        string `json:"label"`
	Anonymous    bool   `json:"anonymous,omitempty"`
}

// RelationGroups buckets a node's edges for display. Anonymous endpoints
// never appear here.
type RelationGroups struct {
	Parents     []RelationRef `json:"parents"`
	Children    []RelationRef `json:"children"`
	Equivalents []RelationRef `json:"equivalents"`
	Tags        []RelationRef `json:"tags"`
	Quantities  []RelationRef `json:"quantities"`
	Substances  []RelationRef `json:"substances"`
	Units       []RelationRef `json:"units"`
	OtherOut    []RelationRef `json:"otherOut"`
	OtherIn     []RelationRef `json:"otherIn"`
}

// Ancestor is one entry of the inherited-from chain.
type Ancestor struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NodeRelations is everything the detail view shows about a node's edges.
type NodeRelations struct {
	Outgoing  []RelationRef  `json:"outgoing"`
	Incoming  []RelationRef  `json:"incoming"`
	Groups    RelationGroups `json:"groups"`
	Ancestors []Ancestor     `json:"ancestors"`
	// Cycle is set when the ancestor walk came back to the node itself.
	Cycle bool `json:"cycle,omitempty"`
}

// RelationIndex resolves relations against the full table, not the domain
// graph, so references to non-domain entities still get labels.
type RelationIndex struct {
	table   *ontology.Table
	vocab   *vocab.Vocabulary
	out     map[string][]int
	in      map[string][]int
	superOf map[string][]string
}

// NewRelationIndex indexes every relation of t by endpoint.
func NewRelationIndex(t *ontology.Table, v *vocab.Vocabulary) *RelationIndex {
	x := &RelationIndex{
		table:   t,
		vocab:   v,
		out:     make(map[string][]int),
		in:      make(map[string][]int),
		superOf: make(map[string][]string),
	}
	for i, r := range t.Relations() {
		x.out[r.Source] = append(x.out[r.Source], i)
		x.in[r.Target] = append(x.in[r.Target], i)
		if r.Label == v.HierarchyLabel {
			x.superOf[r.Source] = append(x.superOf[r.Source], r.Target)
		}
	}
	return x
}

// Resolve builds the relation view for id. ok is false for ids unknown to the
// table.
func (x *RelationIndex) Resolve(id string) (nr NodeRelations, ok bool) {
	if _, ok := x.table.Entity(id); !ok {
		return NodeRelations{}, false
	}

	rels := x.table.Relations()
	nr.Outgoing = make([]RelationRef, 0, len(x.out[id]))
	for _, i := range x.out[id] {
		nr.Outgoing = append(nr.Outgoing, x.ref(rels[i], rels[i].Target))
	}
	nr.Incoming = make([]RelationRef, 0, len(x.in[id]))
	for _, i := range x.in[id] {
		nr.Incoming = append(nr.Incoming, x.ref(rels[i], rels[i].Source))
	}

	nr.Groups = x.group(nr.Outgoing, nr.Incoming)
	nr.Ancestors, nr.Cycle = x.ancestors(id)
	return nr, true
}

func (x *RelationIndex) ref(r ontology.Relation, other string) RelationRef {
	anon := false
	if e, ok := x.table.Entity(other); ok {
		anon = e.Anonymous
	}
	return RelationRef{
		Predicate:    r.Label,
		PredicateURI: r.Predicate,
		ID:           other,
		Label:        x.table.ResolveLabel(other),
		Anonymous:    anon,
	}
}

func (x *RelationIndex) group(outgoing, incoming []RelationRef) RelationGroups {
	g := RelationGroups{
		Parents:     []RelationRef{},
		Children:    []RelationRef{},
		Equivalents: []RelationRef{},
		Tags:        []RelationRef{},
		Quantities:  []RelationRef{},
		Substances:  []RelationRef{},
		Units:       []RelationRef{},
		OtherOut:    []RelationRef{},
		OtherIn:     []RelationRef{},
	}

	for _, r := range outgoing {
		if r.Anonymous {
			continue
		}
		switch x.vocab.GroupOf(r.Predicate) {
		case vocab.GroupHierarchy:
			g.Parents = append(g.Parents, r)
		case vocab.GroupEquivalents:
			g.Equivalents = append(g.Equivalents, r)
		case vocab.GroupTags:
			g.Tags = append(g.Tags, r)
		case vocab.GroupQuantities:
			g.Quantities = append(g.Quantities, r)
		case vocab.GroupSubstances:
			g.Substances = append(g.Substances, r)
		case vocab.GroupUnits:
			g.Units = append(g.Units, r)
		default:
			g.OtherOut = append(g.OtherOut, r)
		}
	}

	for _, r := range incoming {
		if r.Anonymous {
			continue
		}
		switch x.vocab.GroupOf(r.Predicate) {
		case vocab.GroupHierarchy:
			g.Children = append(g.Children, r)
		case vocab.GroupEquivalents:
			// Equivalence is symmetric; keep one entry per other node.
			if !hasRef(g.Equivalents, r.ID) {
				g.Equivalents = append(g.Equivalents, r)
			}
		default:
			g.OtherIn = append(g.OtherIn, r)
		}
	}
	return g
}

// ancestors walks hierarchy parents breadth first, skipping direct parents.
func (x *RelationIndex) ancestors(id string) (chain []Ancestor, cycle bool) {
	chain = []Ancestor{}
	direct := x.superOf[id]
	visited := map[string]bool{id: true}
	for _, p := range direct {
		if p == id {
			cycle = true
		}
		visited[p] = true
	}

	current := direct
	for len(current) > 0 {
		var next []string
		for _, c := range current {
			for _, gp := range x.superOf[c] {
				if visited[gp] {
					if gp == id {
						cycle = true
					}
					continue
				}
				visited[gp] = true
				next = append(next, gp)
				if e, ok := x.table.Entity(gp); ok && e.Anonymous {
					continue
				}
				chain = append(chain, Ancestor{ID: gp, Label: x.table.ResolveLabel(gp)})
			}
		}
		current = next
	}
	return chain, cycle
}

func hasRef(refs []RelationRef, id string) bool {
	for _, r := range refs {
		if r.ID == id {
			return true
		}
	}
	return false
}
