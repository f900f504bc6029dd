// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate_test

import (
	"testing"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hasTag      = ex + "hasAssociatedTag"
	hasQuantity = ex + "hasQuantity"
)

func refIDs(refs []navigate.RelationRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ID[len(ex):])
	}
	return out
}

func TestRelationIndex_Groups(t *testing.T) {
	f := newFixture(t, concat(
		isA(thing, "N", "P", "G", "C", "E", "O"),
		[]types.Statement{
			rel("N", subClassOf, "P"),
			rel("P", subClassOf, "G"),
			rel("G", subClassOf, "GG"),
			rel("N", hasTag, "Hot"),
			rel("N", hasQuantity, "Temperature"),
			rel("N", equivalent, "E"),
			rel("E", equivalent, "N"),
			{Subject: types.Named(ex + "N"), Predicate: types.Named(ex + "shape"), Object: types.Resource(types.Anonymous("b0"))},
			rel("C", subClassOf, "N"),
			rel("O", relatedTo, "N"),
			lit("P", labelPred, "Parent Class"),
		},
	)...)
	x := navigate.NewRelationIndex(f.table, f.vocab)

	nr, ok := x.Resolve(ex + "N")
	require.True(t, ok)

	assert.Len(t, nr.Outgoing, 5)
	assert.Len(t, nr.Incoming, 3)
	assert.True(t, nr.Outgoing[4].Anonymous, "raw lists keep anonymous endpoints")

	g := nr.Groups
	assert.Equal(t, []string{"P"}, refIDs(g.Parents))
	assert.Equal(t, "Parent Class", g.Parents[0].Label)
	assert.Equal(t, "subClassOf", g.Parents[0].Predicate)
	assert.Equal(t, subClassOf, g.Parents[0].PredicateURI)
	assert.Equal(t, []string{"C"}, refIDs(g.Children))
	assert.Equal(t, []string{"E"}, refIDs(g.Equivalents), "symmetric equivalence listed once")
	assert.Equal(t, []string{"Hot"}, refIDs(g.Tags))
	assert.Equal(t, []string{"Temperature"}, refIDs(g.Quantities))
	assert.Empty(t, g.Substances)
	assert.Empty(t, g.Units)
	assert.Empty(t, g.OtherOut, "anonymous target dropped")
	assert.Equal(t, []string{"O"}, refIDs(g.OtherIn))

	require.Len(t, nr.Ancestors, 2)
	assert.Equal(t, ex+"G", nr.Ancestors[0].ID)
	assert.Equal(t, ex+"GG", nr.Ancestors[1].ID)
	assert.Equal(t, "GG", nr.Ancestors[1].Label)
	assert.False(t, nr.Cycle)
}

func TestRelationIndex_AnonymousHierarchy(t *testing.T) {
	f := newFixture(t,
		types.Statement{Subject: types.Named(ex + "N"), Predicate: types.Named(subClassOf), Object: types.Resource(types.Anonymous("r"))},
		types.Statement{Subject: types.Anonymous("r"), Predicate: types.Named(subClassOf), Object: types.Resource(types.Named(ex + "X"))},
		types.Statement{Subject: types.Named(ex + "X"), Predicate: types.Named(subClassOf), Object: types.Resource(types.Anonymous("s"))},
	)
	x := navigate.NewRelationIndex(f.table, f.vocab)

	nr, ok := x.Resolve(ex + "N")
	require.True(t, ok)
	assert.Empty(t, nr.Groups.Parents)
	require.Len(t, nr.Ancestors, 1, "anonymous nodes are walked through but not displayed")
	assert.Equal(t, ex+"X", nr.Ancestors[0].ID)
}

func TestRelationIndex_Cycle(t *testing.T) {
	f := newFixture(t, concat(
		isA(thing, "A", "B"),
		[]types.Statement{rel("A", subClassOf, "B"), rel("B", subClassOf, "A")},
	)...)
	x := navigate.NewRelationIndex(f.table, f.vocab)

	nr, ok := x.Resolve(ex + "A")
	require.True(t, ok)
	assert.Empty(t, nr.Ancestors)
	assert.True(t, nr.Cycle)
	assert.Equal(t, []string{"B"}, refIDs(nr.Groups.Parents))
	assert.Equal(t, []string{"B"}, refIDs(nr.Groups.Children))
}

func TestRelationIndex_UnknownNode(t *testing.T) {
	f := newFixture(t, isA(thing, "A")...)
	_, ok := navigate.NewRelationIndex(f.table, f.vocab).Resolve(ex + "missing")
	assert.False(t, ok)
}
