// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package navigate holds the read-side views built over a domain graph: the
// ontology tree, windowed subsets for rendering, per-node relation groups,
// search, statistics and DOT export.
package navigate

import (
	"sort"
	"strings"

	"github.com/sigil-dev/rdfexplorer/internal/ontology"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
)

// Forest is the parent/child tree over domain nodes. Every domain node
// appears exactly once: under its first-declared hierarchy parent, or as a
// root.
type Forest struct {
	table *ontology.Table
	graph *ontology.DomainGraph

	roots       []string
	children    map[string][]string
	parent      map[string]string
	parents     map[string][]string
	descendants map[string]int
	promoted    []string
}

// TreeNode is the serialized form of one tree entry.
type TreeNode struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Children    int    `json:"children"`
	Descendants int    `json:"descendants"`
}

// TreeView is the whole forest keyed by parent id.
type TreeView struct {
	Roots    []TreeNode            `json:"roots"`
	Children map[string][]TreeNode `json:"children"`
	Promoted []string              `json:"promoted,omitempty"`
}

// BuildForest builds the tree from domain links labelled with the
// vocabulary's hierarchy label.
func BuildForest(t *ontology.Table, g *ontology.DomainGraph, v *vocab.Vocabulary) *Forest {
	f := &Forest{
		table:       t,
		graph:       g,
		children:    make(map[string][]string),
		parent:      make(map[string]string),
		parents:     make(map[string][]string),
		descendants: make(map[string]int),
	}

	for _, l := range g.Links {
		if l.Label != v.HierarchyLabel {
			continue
		}
		if !contains(f.parents[l.Source], l.Target) {
			f.parents[l.Source] = append(f.parents[l.Source], l.Target)
		}
		if _, ok := f.parent[l.Source]; !ok {
			f.parent[l.Source] = l.Target
			f.children[l.Target] = append(f.children[l.Target], l.Source)
		}
	}

	for _, n := range g.Nodes {
		if _, ok := f.parent[n.ID]; !ok {
			f.roots = append(f.roots, n.ID)
		}
	}

	// First-parent chains that loop never reach a root. Promote the first
	// such node in table order and detach it from its parent.
	reached := make(map[string]bool, len(g.Nodes))
	for _, r := range f.roots {
		f.mark(r, reached)
	}
	for _, n := range g.Nodes {
		if reached[n.ID] {
			continue
		}
		f.detach(n.ID)
		f.roots = append(f.roots, n.ID)
		f.promoted = append(f.promoted, n.ID)
		f.mark(n.ID, reached)
	}

	for _, r := range f.roots {
		f.count(r)
	}

	for p, kids := range f.children {
		sort.SliceStable(kids, func(i, j int) bool {
			return f.sortKey(kids[i]) < f.sortKey(kids[j])
		})
		f.children[p] = kids
	}
	sort.SliceStable(f.roots, func(i, j int) bool {
		return f.descendants[f.roots[i]] > f.descendants[f.roots[j]]
	})

	return f
}

func (f *Forest) mark(id string, reached map[string]bool) {
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[cur] {
			continue
		}
		reached[cur] = true
		stack = append(stack, f.children[cur]...)
	}
}

func (f *Forest) detach(id string) {
	p, ok := f.parent[id]
	if !ok {
		return
	}
	delete(f.parent, id)
	kids := f.children[p]
	for i, k := range kids {
		if k == id {
			f.children[p] = append(kids[:i:i], kids[i+1:]...)
			break
		}
	}
}

func (f *Forest) count(id string) int {
	total := 0
	for _, k := range f.children[id] {
		total += 1 + f.count(k)
	}
	f.descendants[id] = total
	return total
}

func (f *Forest) sortKey(id string) string {
	if e, ok := f.table.Entity(id); ok {
		return strings.ToLower(f.table.DisplayLabel(e))
	}
	return strings.ToLower(id)
}

// Roots returns root ids, most descendants first.
func (f *Forest) Roots() []string { return f.roots }

// Children returns the sorted child ids of id.
func (f *Forest) Children(id string) []string { return f.children[id] }

// Parent returns the tree parent of id.
func (f *Forest) Parent(id string) (string, bool) {
	p, ok := f.parent[id]
	return p, ok
}

// Descendants counts every node below id in the tree.
func (f *Forest) Descendants(id string) int { return f.descendants[id] }

// Promoted lists nodes made roots because their first-parent chain loops.
// A non-empty result means the hierarchy has a cycle.
func (f *Forest) Promoted() []string { return f.promoted }

// ExpandPath returns every hierarchy ancestor of id, nearest first, following
// all declared parents. cycle reports whether the ancestor graph loops.
func (f *Forest) ExpandPath(id string) (ancestors []string, cycle bool) {
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range f.parents[cur] {
			if visited[p] {
				continue
			}
			visited[p] = true
			ancestors = append(ancestors, p)
			queue = append(queue, p)
		}
	}
	return ancestors, f.loops(id)
}

// loops runs a colouring DFS over the ancestors of id.
func (f *Forest) loops(id string) bool {
	const (
		white = iota
		grey
		black
	)
	state := make(map[string]int)
	var visit func(string) bool
	visit = func(n string) bool {
		state[n] = grey
		for _, p := range f.parents[n] {
			switch state[p] {
			case grey:
				return true
			case white:
				if visit(p) {
					return true
				}
			}
		}
		state[n] = black
		return false
	}
	return visit(id)
}

// View serializes the forest.
func (f *Forest) View() TreeView {
	view := TreeView{
		Roots:    make([]TreeNode, 0, len(f.roots)),
		Children: make(map[string][]TreeNode, len(f.children)),
		Promoted: f.promoted,
	}
	for _, r := range f.roots {
		view.Roots = append(view.Roots, f.node(r))
	}
	for p, kids := range f.children {
		if len(kids) == 0 {
			continue
		}
		nodes := make([]TreeNode, 0, len(kids))
		for _, k := range kids {
			nodes = append(nodes, f.node(k))
		}
		view.Children[p] = nodes
	}
	return view
}

func (f *Forest) node(id string) TreeNode {
	return TreeNode{
		ID:          id,
		Label:       f.table.ResolveLabel(id),
		Children:    len(f.children[id]),
		Descendants: f.descendants[id],
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
