// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package ontology_test

import (
	"encoding/json"
	"testing"

	"github.com/sigil-dev/rdfexplorer/internal/ontology"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ex         = "http://example.org/"
	rdfType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	subClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	label      = "http://www.w3.org/2000/01/rdf-schema#label"
	thing      = ex + "Thing"
)

func testVocab(t *testing.T) *vocab.Vocabulary {
	t.Helper()
	p := &vocab.Profile{
		Name:               "test",
		TypePredicate:      rdfType,
		HierarchyPredicate: subClassOf,
		DomainTypes:        []string{thing},
		SemanticPredicates: []string{subClassOf, ex + "relatedTo"},
		AbstractRoots:      []string{ex + "Root"},
		ClassLabels:        map[string]string{thing: "Thing Class"},
	}
	v, err := p.Compile()
	require.NoError(t, err)
	return v
}

func rel(s, p, o string) types.Statement {
	return types.Statement{Subject: types.Named(s), Predicate: types.Named(p), Object: types.Resource(types.Named(o))}
}

func lit(s, p, v string) types.Statement {
	return types.Statement{Subject: types.Named(s), Predicate: types.Named(p), Object: types.Literal(v)}
}

func typed(ids ...string) []types.Statement {
	out := make([]types.Statement, 0, len(ids))
	for _, id := range ids {
		out = append(out, rel(ex+id, rdfType, thing))
	}
	return out
}

func build(t *testing.T, stmts []types.Statement) (*ontology.Table, *ontology.DomainGraph, *ontology.Resolver) {
	t.Helper()
	v := testVocab(t)
	table := ontology.Build(stmts, v)
	graph := ontology.Filter(table, v)
	return table, graph, ontology.NewResolver(table, graph, v, ontology.NewCategoryMemo())
}

func ids(nodes []*ontology.Entity) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuild_EntitiesAndRelations(t *testing.T) {
	stmts := []types.Statement{
		rel(ex+"A", rdfType, thing),
		lit(ex+"A", label, "Air Handler"),
		lit(ex+"A", label, "AHU"),
		rel(ex+"A", ex+"relatedTo", ex+"B"),
		{Subject: types.Named(ex + "A"), Predicate: types.Named(ex + "shape"), Object: types.Resource(types.Anonymous("b0"))},
		rel(ex+"A", rdfType, ex+"Other"),
	}
	table, _, _ := build(t, stmts)

	assert.Equal(t, []string{ex + "A", thing, ex + "B", "_:b0", ex + "Other"}, ids(table.Entities()))
	assert.Equal(t, 6, table.Statements())

	a, ok := table.Entity(ex + "A")
	require.True(t, ok)
	assert.Equal(t, "A", a.Label)
	assert.Equal(t, ex+"Other", a.Type, "last type statement wins")
	assert.Equal(t, []string{"Air Handler", "AHU"}, a.Properties["label"])

	blank, ok := table.Entity("_:b0")
	require.True(t, ok)
	assert.True(t, blank.Anonymous)

	require.Len(t, table.Relations(), 2, "type statements never become relations")
	assert.Equal(t, ontology.Relation{Source: ex + "A", Target: ex + "B", Predicate: ex + "relatedTo", Label: "relatedTo"}, table.Relations()[0])
	assert.Equal(t, "_:b0", table.Relations()[1].Target)
}

func TestThreeStatementScenario(t *testing.T) {
	stmts := append(typed("A", "B"), rel(ex+"A", subClassOf, ex+"B"))
	_, graph, resolver := build(t, stmts)

	assert.Equal(t, []string{ex + "A", ex + "B"}, ids(graph.Nodes))
	assert.Equal(t, []ontology.Relation{{Source: ex + "A", Target: ex + "B", Predicate: subClassOf, Label: "subClassOf"}}, graph.Links)
	assert.Equal(t, []ontology.Class{{URI: thing, Label: "Thing Class"}}, graph.Classes)

	catA, _ := resolver.Category(ex + "A")
	catB, _ := resolver.Category(ex + "B")
	assert.Equal(t, ex+"B", catA)
	assert.Equal(t, ex+"B", catB)
}

func TestFilter_ExcludesAnonymousAndUnknown(t *testing.T) {
	stmts := []types.Statement{
		rel(ex+"A", rdfType, thing),
		{Subject: types.Anonymous("b1"), Predicate: types.Named(rdfType), Object: types.Resource(types.Named(thing))},
		rel(ex+"C", rdfType, ex+"Unknown"),
		rel(ex+"A", subClassOf, "_:b1"),
		rel(ex+"A", ex+"ignored", ex+"A"),
		rel(ex+"A", subClassOf, ex+"C"),
	}
	table, graph, _ := build(t, stmts)

	assert.Equal(t, []string{ex + "A"}, ids(graph.Nodes))
	assert.Empty(t, graph.Links)
	assert.Len(t, table.Relations(), 3, "detail view keeps everything")
}

func TestFilter_LinkContainment(t *testing.T) {
	stmts := append(typed("A", "B", "C"),
		rel(ex+"A", subClassOf, ex+"B"),
		rel(ex+"B", ex+"relatedTo", ex+"C"),
		rel(ex+"C", subClassOf, ex+"D"),
		rel(ex+"D", subClassOf, ex+"A"),
	)
	_, graph, _ := build(t, stmts)

	for _, l := range graph.Links {
		assert.True(t, graph.Has(l.Source), l.Source)
		assert.True(t, graph.Has(l.Target), l.Target)
	}
	assert.Len(t, graph.Links, 2)
}

func TestCategory_SkipsAbstractRoots(t *testing.T) {
	stmts := append(typed("A", "B", "Root"),
		rel(ex+"A", subClassOf, ex+"B"),
		rel(ex+"B", subClassOf, ex+"Root"),
	)
	_, graph, resolver := build(t, stmts)

	for _, n := range graph.Nodes {
		cat, _ := resolver.Category(n.ID)
		assert.True(t, graph.Has(cat), "category of %s is a domain node", n.ID)
		if n.ID != ex+"Root" {
			assert.NotEqual(t, ex+"Root", cat)
		}
	}
	cat, _ := resolver.Category(ex + "A")
	assert.Equal(t, ex+"B", cat)
}

func TestCategory_ParentlessAbstractRootIsItsOwnCategory(t *testing.T) {
	stmts := append(typed("A", "Root"),
		rel(ex+"A", subClassOf, ex+"Root"),
	)
	_, _, resolver := build(t, stmts)

	cat, cycle := resolver.Category(ex + "Root")
	assert.Equal(t, ex+"Root", cat)
	assert.False(t, cycle)

	cat, _ = resolver.Category(ex + "A")
	assert.Equal(t, ex+"A", cat, "an abstract parent is never followed")
}

func TestCategory_FirstParentWins(t *testing.T) {
	stmts := append(typed("A", "P1", "P2"),
		rel(ex+"A", subClassOf, ex+"P1"),
		rel(ex+"A", subClassOf, ex+"P2"),
	)
	_, _, resolver := build(t, stmts)

	cat, cycle := resolver.Category(ex + "A")
	assert.Equal(t, ex+"P1", cat)
	assert.False(t, cycle)
}

func TestCategory_CyclicHierarchy(t *testing.T) {
	stmts := append(typed("A", "B"),
		rel(ex+"A", subClassOf, ex+"B"),
		rel(ex+"B", subClassOf, ex+"A"),
	)
	_, _, resolver := build(t, stmts)

	catA, cycleA := resolver.Category(ex + "A")
	catB, cycleB := resolver.Category(ex + "B")
	assert.Equal(t, ex+"B", catA)
	assert.Equal(t, ex+"B", catB)
	assert.True(t, cycleA)
	assert.True(t, cycleB)
}

func TestCategory_Idempotent(t *testing.T) {
	stmts := append(typed("A", "B", "C"),
		rel(ex+"A", subClassOf, ex+"B"),
		rel(ex+"B", subClassOf, ex+"C"),
	)
	_, graph, resolver := build(t, stmts)

	for _, n := range graph.Nodes {
		first, _ := resolver.Category(n.ID)
		second, _ := resolver.Category(n.ID)
		assert.Equal(t, first, second)
		assert.Equal(t, ex+"C", first)
	}
}

func TestCategory_SharedMemo(t *testing.T) {
	v := testVocab(t)
	stmts := append(typed("A", "B"), rel(ex+"A", subClassOf, ex+"B"))
	table := ontology.Build(stmts, v)
	graph := ontology.Filter(table, v)

	memo := ontology.NewCategoryMemo()
	ontology.NewResolver(table, graph, v, memo).Category(ex + "A")
	assert.Equal(t, 2, memo.Len())

	cat, _ := ontology.NewResolver(table, graph, v, memo).Category(ex + "A")
	assert.Equal(t, ex+"B", cat)
}

func TestCategory_NonDomainNode(t *testing.T) {
	_, _, resolver := build(t, typed("A"))
	cat, cycle := resolver.Category(thing)
	assert.Empty(t, cat)
	assert.False(t, cycle)
}

func TestAssign_SetsCategoryLabels(t *testing.T) {
	stmts := append(typed("Air_Handler", "Big_Thing", "Self_Loop"),
		rel(ex+"Air_Handler", subClassOf, ex+"Big_Thing"),
		lit(ex+"Air_Handler", label, "Air Handling Unit"),
		rel(ex+"Self_Loop", subClassOf, ex+"Self_Loop"),
	)
	table, _, resolver := build(t, stmts)

	assert.Equal(t, 1, resolver.Assign())

	a, _ := table.Entity(ex + "Air_Handler")
	assert.Equal(t, ex+"Big_Thing", a.Category)
	assert.Equal(t, "Big Thing", a.CategoryLabel)

	loop, _ := table.Entity(ex + "Self_Loop")
	assert.Equal(t, ex+"Self_Loop", loop.Category)
}

func TestEntity_MarshalJSON(t *testing.T) {
	e := ontology.Entity{ID: ex + "A", Label: "A", Properties: map[string][]string{}}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"http://example.org/A","label":"A","type":null,"properties":{},"category":null}`, string(data))

	e.Type = thing
	e.Category = ex + "A"
	e.CategoryLabel = "A"
	data, err = json.Marshal(&e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"http://example.org/A","label":"A","type":"http://example.org/Thing","properties":{},"category":"http://example.org/A","categoryLabel":"A"}`, string(data))
}

func TestLabels(t *testing.T) {
	stmts := append(typed("airHandler_Unit", "Labelled"), lit(ex+"Labelled", label, "Nice Name"))
	table, _, _ := build(t, stmts)

	assert.Equal(t, "air Handler Unit", ontology.Humanize("airHandler_Unit"))
	assert.Equal(t, "Nice Name", table.ResolveLabel(ex+"Labelled"))
	assert.Equal(t, "air Handler Unit", table.ResolveLabel(ex+"airHandler_Unit"))
	assert.Equal(t, "never_seen", table.ResolveLabel("http://other.org/ns#never_seen"), "unknown ids keep their raw local name")
}
